package education

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Entry is one education record. A nil EndDate reads as "present".
type Entry struct {
	ID          uuid.UUID  `json:"id"`
	Institution string     `json:"institution"`
	Degree      string     `json:"degree"`
	StartDate   time.Time  `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
	Description string     `json:"description"`
	CreatedAt   time.Time  `json:"created_at"`
}

var ErrEmptyInstitution = errors.New("institution must not be empty")

func (e *Entry) Validate() error {
	if e.Institution == "" {
		return ErrEmptyInstitution
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
