package persistence

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/tmnguyen/portfolio-api/internal/domain/education"
	"github.com/tmnguyen/portfolio-api/pkg/apperror"
	"github.com/tmnguyen/portfolio-api/pkg/logger"
)

var psqlEducation = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

func scanEducationEntry(row pgx.Row) (*education.Entry, error) {
	e := &education.Entry{}
	err := row.Scan(
		&e.ID, &e.Institution, &e.Degree,
		&e.StartDate, &e.EndDate, &e.Description, &e.CreatedAt,
	)
	if err != nil {
		return nil, apperror.NewStoreFailure("failed to scan education row", err)
	}
	return e, nil
}

func scanEducationEntries(rows pgx.Rows) ([]*education.Entry, error) {
	defer rows.Close()
	entries := make([]*education.Entry, 0)

	for rows.Next() {
		e, err := scanEducationEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewStoreFailure("error iterating education rows", err)
	}
	return entries, nil
}

type pgEducationReader struct {
	db     *PublicReader
	logger logger.Logger
}

func NewEducationReader(db *PublicReader, log logger.Logger) education.Reader {
	return &pgEducationReader{db: db, logger: log}
}

func (r *pgEducationReader) List(ctx context.Context) ([]*education.Entry, error) {
	builder := psqlEducation.Select("id, institution, degree, start_date, end_date, description, created_at").
		From("education").
		OrderBy("start_date DESC")

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build list education query", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, apperror.NewStoreFailure("failed to query education", err)
	}

	return scanEducationEntries(rows)
}

type pgEducationWriter struct {
	scope  *ScopedWriter
	logger logger.Logger
}

type educationWriterFactory struct {
	newScope func(ownerID uuid.UUID) *ScopedWriter
	logger   logger.Logger
}

func NewEducationWriterFactory(newScope func(uuid.UUID) *ScopedWriter, log logger.Logger) education.WriterFactory {
	return &educationWriterFactory{newScope: newScope, logger: log}
}

func (f *educationWriterFactory) WriterFor(ownerID uuid.UUID) education.Writer {
	return &pgEducationWriter{scope: f.newScope(ownerID), logger: f.logger}
}

func (w *pgEducationWriter) Insert(ctx context.Context, e *education.Entry) error {
	query := `
		INSERT INTO education (id, institution, degree, start_date, end_date, description, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := w.scope.Exec(ctx, query,
		e.ID, e.Institution, e.Degree, e.StartDate, e.EndDate, e.Description, e.CreatedAt,
	)
	if err != nil {
		return apperror.NewStoreFailure("failed to insert education entry", err)
	}
	return nil
}

func (w *pgEducationWriter) DeleteByID(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM education WHERE id = $1`
	if _, err := w.scope.Exec(ctx, query, id); err != nil {
		return apperror.NewStoreFailure("failed to delete education entry", err)
	}
	return nil
}
