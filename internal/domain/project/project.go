package project

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

type Project struct {
	ID             uuid.UUID `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Responsibility *string   `json:"responsibility"`
	ImageURL       *string   `json:"image_url"`
	LiveLink       *string   `json:"live_link"`
	RepoLink       *string   `json:"repo_link"`
	Tags           []string  `json:"tags"`
	CreatedAt      time.Time `json:"created_at"`
}

var ErrEmptyTitle = errors.New("project title must not be empty")

func (p *Project) Validate() error {
	if p.Title == "" {
		return ErrEmptyTitle
	}
	return nil
}

// Reader lists projects newest first (created_at descending).
type Reader interface {
	List(ctx context.Context) ([]*Project, error)
}

type Writer interface {
	Insert(ctx context.Context, p *Project) error
	DeleteByID(ctx context.Context, id uuid.UUID) error
}

type WriterFactory interface {
	WriterFor(ownerID uuid.UUID) Writer
}
