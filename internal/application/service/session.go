package service

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// SessionStore tracks which issued tokens are still live. The identity
// provider owns session lifecycle: login records a session, logout
// revokes it, and the authorization gate refuses tokens whose session
// is gone even if the token itself has not expired.
type SessionStore interface {
	Put(ctx context.Context, sessionID string, ownerID uuid.UUID, ttl time.Duration) error
	IsActive(ctx context.Context, sessionID string) (bool, error)
	Revoke(ctx context.Context, sessionID string) error
}
