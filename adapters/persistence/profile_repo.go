package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/tmnguyen/portfolio-api/internal/domain/profile"
	"github.com/tmnguyen/portfolio-api/pkg/apperror"
	"github.com/tmnguyen/portfolio-api/pkg/logger"
)

const profileColumns = "id, full_name, title, bio, photo_url, resume_url, updated_at"

func scanProfile(row pgx.Row) (*profile.Profile, error) {
	p := &profile.Profile{}
	err := row.Scan(
		&p.ID,
		&p.FullName,
		&p.Title,
		&p.Bio,
		&p.PhotoURL,
		&p.ResumeURL,
		&p.UpdatedAt,
	)
	if err != nil {
		// A missing singleton row is a normal empty result, never
		// an error.
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, apperror.NewStoreFailure("failed to scan profile row", err)
	}
	return p, nil
}

type pgProfileReader struct {
	db     *PublicReader
	logger logger.Logger
}

func NewProfileReader(db *PublicReader, log logger.Logger) profile.Reader {
	return &pgProfileReader{db: db, logger: log}
}

func (r *pgProfileReader) Get(ctx context.Context) (*profile.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles LIMIT 1`
	return scanProfile(r.db.QueryRow(ctx, query))
}

type pgProfileWriter struct {
	scope  *ScopedWriter
	logger logger.Logger
}

type profileWriterFactory struct {
	newScope func(ownerID uuid.UUID) *ScopedWriter
	logger   logger.Logger
}

func NewProfileWriterFactory(newScope func(uuid.UUID) *ScopedWriter, log logger.Logger) profile.WriterFactory {
	return &profileWriterFactory{newScope: newScope, logger: log}
}

func (f *profileWriterFactory) WriterFor(ownerID uuid.UUID) profile.Writer {
	return &pgProfileWriter{scope: f.newScope(ownerID), logger: f.logger}
}

func (w *pgProfileWriter) FindCurrent(ctx context.Context) (*profile.Profile, error) {
	var found *profile.Profile
	err := w.scope.Do(ctx, func(tx pgx.Tx) error {
		query := `SELECT ` + profileColumns + ` FROM profiles LIMIT 1`
		p, err := scanProfile(tx.QueryRow(ctx, query))
		if err != nil {
			return err
		}
		found = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

func (w *pgProfileWriter) Insert(ctx context.Context, p *profile.Profile) error {
	query := `
		INSERT INTO profiles (id, full_name, title, bio, photo_url, resume_url, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := w.scope.Exec(ctx, query,
		p.ID, p.FullName, p.Title, p.Bio, p.PhotoURL, p.ResumeURL, p.UpdatedAt,
	)
	if err != nil {
		return apperror.NewStoreFailure("failed to insert profile", err)
	}
	return nil
}

func (w *pgProfileWriter) UpdateByID(ctx context.Context, p *profile.Profile) error {
	query := `
		UPDATE profiles SET
			full_name = $2, title = $3, bio = $4, photo_url = $5, resume_url = $6, updated_at = $7
		WHERE id = $1
	`
	_, err := w.scope.Exec(ctx, query,
		p.ID, p.FullName, p.Title, p.Bio, p.PhotoURL, p.ResumeURL, p.UpdatedAt,
	)
	if err != nil {
		return apperror.NewStoreFailure("failed to update profile", err)
	}
	return nil
}
