// Package session mints the session_id cookie value set after every
// successful resource creation. The cookie is a compatibility artifact:
// its value is derived from the new entity's id, and nothing server-side
// ever validates or consumes it.
package session

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/careledger/medrec/internal/config"
)

type Minter struct {
	secret []byte
	ttl    time.Duration
	issuer string
}

func NewMinter(cfg config.SessionConfig) *Minter {
	return &Minter{
		secret: []byte(cfg.Secret),
		ttl:    cfg.TTL,
		issuer: cfg.Issuer,
	}
}

// Mint signs an opaque token for the freshly created entity.
func (m *Minter) Mint(resourceType string, id int64) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":      fmt.Sprintf("%s:%d", resourceType, id),
		"resource": resourceType,
		"iss":      m.issuer,
		"iat":      now.Unix(),
		"exp":      now.Add(m.ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("signing session token: %w", err)
	}
	return signed, nil
}

// TTL reports the configured cookie lifetime.
func (m *Minter) TTL() time.Duration {
	return m.ttl
}
