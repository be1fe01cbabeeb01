package user

import (
	"context"

	"github.com/google/uuid"
)

// User is the single admin identity. Password storage and session
// lifecycle belong to the identity provider side of the codebase; the
// content handlers only ever see the verified owner id.
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
}

type Repository interface {
	FindByEmail(ctx context.Context, email string) (*User, error)
}
