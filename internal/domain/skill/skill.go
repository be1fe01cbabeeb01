package skill

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

type Skill struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	Level     string    `json:"level"`
	CreatedAt time.Time `json:"created_at"`
}

var ErrEmptyName = errors.New("skill name must not be empty")

func (s *Skill) Validate() error {
	if s.Name == "" {
		return ErrEmptyName
	}
	return nil
}

// Reader lists skills in insertion order (created_at ascending);
// display order is the order the admin added them.
type Reader interface {
	List(ctx context.Context) ([]*Skill, error)
}

type Writer interface {
	Insert(ctx context.Context, s *Skill) error
	// DeleteByID reports no error when the id does not exist.
	DeleteByID(ctx context.Context, id uuid.UUID) error
}

type WriterFactory interface {
	WriterFor(ownerID uuid.UUID) Writer
}
