package ports

import (
	"context"

	"github.com/urbanrenew/renewal-platform/internal/core/domain"
)

// SessionStore persists and retrieves sessions. The principal and its
// bearer token live in one record; Save and Delete touch that record as a
// whole, so the two can never be updated independently.
//
// A Get on a record that fails to decode must remove the record and report
// domain.ErrSessionNotFound (silent self-healing, never a fatal error).
type SessionStore interface {
	Save(ctx context.Context, sess domain.Session) error
	Get(ctx context.Context, id string) (domain.Session, error)
	Delete(ctx context.Context, id string) error
}
