package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tmnguyen/portfolio-api/pkg/apperror"
)

// PublicReader is the process-wide unscoped read handle. It carries no
// caller identity and is safe for concurrent use; every public list and
// get goes through it.
type PublicReader struct {
	db *pgxpool.Pool
}

func NewPublicReader(db *pgxpool.Pool) *PublicReader {
	return &PublicReader{db: db}
}

func (r *PublicReader) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return r.db.Query(ctx, sql, args...)
}

func (r *PublicReader) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return r.db.QueryRow(ctx, sql, args...)
}

// ScopedWriter binds one verified caller identity. Each unit of work
// runs in its own transaction whose connection carries the identity via
// set_config, so row-level security policies evaluate against the
// caller rather than the service role. Writers are constructed per
// request and must not be cached or shared.
type ScopedWriter struct {
	db      *pgxpool.Pool
	ownerID uuid.UUID
}

func NewScopedWriter(db *pgxpool.Pool, ownerID uuid.UUID) *ScopedWriter {
	return &ScopedWriter{db: db, ownerID: ownerID}
}

func (w *ScopedWriter) OwnerID() uuid.UUID {
	return w.ownerID
}

// Do runs fn inside an identity-scoped transaction.
func (w *ScopedWriter) Do(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := w.db.Begin(ctx)
	if err != nil {
		return apperror.NewStoreFailure("failed to begin scoped transaction", err)
	}
	defer tx.Rollback(ctx)

	// set_config with is_local=true keeps the identity confined to
	// this transaction.
	if _, err := tx.Exec(ctx, "SELECT set_config('app.owner_id', $1, true)", w.ownerID.String()); err != nil {
		return apperror.NewStoreFailure("failed to apply caller identity", err)
	}

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return apperror.NewStoreFailure("failed to commit scoped transaction", err)
	}
	return nil
}

// Exec runs a single statement inside an identity-scoped transaction.
func (w *ScopedWriter) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	var tag pgconn.CommandTag
	err := w.Do(ctx, func(tx pgx.Tx) error {
		var execErr error
		tag, execErr = tx.Exec(ctx, sql, args...)
		return execErr
	})
	return tag, err
}
