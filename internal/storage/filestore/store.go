// Package filestore persists each resource as a JSON array in its own
// file under a data directory. Records are never removed from the file;
// deletion stamps date_deleted and every read skips stamped rows.
package filestore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/careledger/medrec/internal/domain"
)

var (
	errNotFound = errors.New("filestore: record not found")
	errConflict = errors.New("filestore: record conflicts with an existing record")
)

// store holds every record of one resource type, live and deleted.
// All operations run under one mutex so a read-modify-write cycle is
// atomic with respect to other operations on the same store.
type store[T any, PT interface {
	*T
	domain.Entity
}] struct {
	mu     sync.Mutex
	path   string
	log    *zap.Logger
	recs   []PT
	lastID int64
}

func open[T any, PT interface {
	*T
	domain.Entity
}](path string, log *zap.Logger) (*store[T, PT], error) {
	s := &store[T, PT]{path: path, log: log}

	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("creating data directory: %w", err)
		}
		if err := s.persist(); err != nil {
			return nil, err
		}
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	if err := json.Unmarshal(raw, &s.recs); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	// Ids are never reused, so seed the generator from every record ever
	// written, deleted ones included.
	for _, rec := range s.recs {
		if id := rec.AuditRef().ID; id > s.lastID {
			s.lastID = id
		}
	}
	return s, nil
}

// persist writes the full record set to a temp file and renames it into
// place, so a failed write never leaves a half-written store behind.
func (s *store[T, PT]) persist() error {
	raw, err := json.MarshalIndent(s.recs, "", "    ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", s.path, err)
	}
	if s.recs == nil {
		raw = []byte("[]")
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replacing %s: %w", s.path, err)
	}
	return nil
}

// insert assigns the next id and the creation timestamp, then persists.
// When conflicts is non-nil it is evaluated against every live record
// inside the same critical section as the append, so two concurrent
// inserts cannot both pass the check.
func (s *store[T, PT]) insert(rec PT, conflicts func(existing PT) bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if conflicts != nil {
		for _, other := range s.recs {
			if other.AuditRef().IsLive() && conflicts(other) {
				return errConflict
			}
		}
	}

	a := rec.AuditRef()
	s.lastID++
	a.ID = s.lastID
	a.DateCreated = time.Now().UTC()

	s.recs = append(s.recs, rec)
	if err := s.persist(); err != nil {
		s.recs = s.recs[:len(s.recs)-1]
		s.lastID--
		return err
	}
	return nil
}

// getByID returns the live record with the given id. Soft-deleted and
// nonexistent ids both report absent.
func (s *store[T, PT]) getByID(id int64) (PT, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, rec := range s.recs {
		if a := rec.AuditRef(); a.ID == id && a.IsLive() {
			return rec, true
		}
	}
	var zero PT
	return zero, false
}

// list returns every live record matching the filter, in insertion order.
func (s *store[T, PT]) list(match func(PT) bool) []PT {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]PT, 0, len(s.recs))
	for _, rec := range s.recs {
		if !rec.AuditRef().IsLive() {
			continue
		}
		if match == nil || match(rec) {
			out = append(out, rec)
		}
	}
	return out
}

// update applies the mutation to a copy of the target record, checks it
// against every other live record, and only then swaps the copy in and
// persists. Readers holding the old pointer keep seeing the old state.
func (s *store[T, PT]) update(id int64, apply func(PT), conflicts func(updated, other PT) bool) (PT, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var zero PT
	idx := -1
	for i, rec := range s.recs {
		if a := rec.AuditRef(); a.ID == id && a.IsLive() {
			idx = i
			break
		}
	}
	if idx < 0 {
		return zero, errNotFound
	}

	clone := *s.recs[idx]
	updated := PT(&clone)
	apply(updated)

	if conflicts != nil {
		for i, other := range s.recs {
			if i == idx || !other.AuditRef().IsLive() {
				continue
			}
			if conflicts(updated, other) {
				return zero, errConflict
			}
		}
	}

	now := time.Now().UTC()
	updated.AuditRef().DateUpdated = &now

	prev := s.recs[idx]
	s.recs[idx] = updated
	if err := s.persist(); err != nil {
		s.recs[idx] = prev
		return zero, err
	}
	return updated, nil
}

// softDelete stamps date_deleted on a live record. Deleting an absent or
// already-deleted id reports errNotFound.
func (s *store[T, PT]) softDelete(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, rec := range s.recs {
		a := rec.AuditRef()
		if a.ID != id || !a.IsLive() {
			continue
		}

		clone := *rec
		deleted := PT(&clone)
		now := time.Now().UTC()
		deleted.AuditRef().DateDeleted = &now

		s.recs[i] = deleted
		if err := s.persist(); err != nil {
			s.recs[i] = rec
			return err
		}
		return nil
	}
	return errNotFound
}

// paginate slices one page out of the filtered result set. Pages past the
// available data come back empty, never as an error.
func paginate[T any](items []T, page, pageSize int) []T {
	start := (page - 1) * pageSize
	if start >= len(items) {
		return []T{}
	}
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
