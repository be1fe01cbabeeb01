package profile

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Profile is the singleton identity card shown on the landing page.
// Nothing at the store level enforces singleton-ness; upsert is a
// fetch-existing-then-update-or-insert sequence.
type Profile struct {
	ID        uuid.UUID `json:"id"`
	FullName  string    `json:"full_name"`
	Title     string    `json:"title"`
	Bio       string    `json:"bio"`
	PhotoURL  *string   `json:"photo_url"`
	ResumeURL *string   `json:"resume_url"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Reader is the public, unscoped read capability.
type Reader interface {
	// Get returns the current profile, or nil when none exists yet.
	Get(ctx context.Context) (*Profile, error)
}

// Writer is bound to one verified caller identity.
type Writer interface {
	// FindCurrent returns the existing row, or nil when none exists.
	FindCurrent(ctx context.Context) (*Profile, error)
	Insert(ctx context.Context, p *Profile) error
	UpdateByID(ctx context.Context, p *Profile) error
}

// WriterFactory constructs a fresh Writer bound to one verified
// identity. Writers must not be cached or reused across requests.
type WriterFactory interface {
	WriterFor(ownerID uuid.UUID) Writer
}
