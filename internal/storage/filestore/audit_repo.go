package filestore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/careledger/medrec/internal/domain"
)

// AuditRepository appends one JSON line per audit entry. The trail is
// append-only, so unlike the resource stores it never rewrites the file.
type AuditRepository struct {
	mu   sync.Mutex
	path string
	log  *zap.Logger
}

func NewAuditRepository(dataDir string, log *zap.Logger) (*AuditRepository, error) {
	path := filepath.Join(dataDir, "audit.log")
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	return &AuditRepository{path: path, log: log}, nil
}

func (r *AuditRepository) Create(ctx context.Context, entry *domain.AuditLog) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	if entry.OccurredAt.IsZero() {
		entry.OccurredAt = time.Now().UTC()
	}

	raw, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encoding audit entry: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	f, err := os.OpenFile(r.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("opening audit log: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(append(raw, '\n')); err != nil {
		return fmt.Errorf("appending audit entry: %w", err)
	}
	return nil
}
