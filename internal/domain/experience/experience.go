package experience

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Entry is one work-experience record. A nil EndDate reads as "present".
type Entry struct {
	ID             uuid.UUID  `json:"id"`
	Company        string     `json:"company"`
	Role           string     `json:"role"`
	StartDate      time.Time  `json:"start_date"`
	EndDate        *time.Time `json:"end_date"`
	Description    string     `json:"description"`
	Responsibility *string    `json:"responsibility"`
	CreatedAt      time.Time  `json:"created_at"`
}

var ErrEmptyCompany = errors.New("company must not be empty")

func (e *Entry) Validate() error {
	if e.Company == "" {
		return ErrEmptyCompany
	}
	return nil
}

// Reader lists entries newest first (start_date descending).
type Reader interface {
	List(ctx context.Context) ([]*Entry, error)
}

type Writer interface {
	Insert(ctx context.Context, e *Entry) error
	DeleteByID(ctx context.Context, id uuid.UUID) error
}

type WriterFactory interface {
	WriterFor(ownerID uuid.UUID) Writer
}
