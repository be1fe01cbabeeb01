package persistence

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/tmnguyen/portfolio-api/internal/domain/experience"
	"github.com/tmnguyen/portfolio-api/pkg/apperror"
	"github.com/tmnguyen/portfolio-api/pkg/logger"
)

var psqlExperience = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

func scanExperienceEntry(row pgx.Row) (*experience.Entry, error) {
	e := &experience.Entry{}
	err := row.Scan(
		&e.ID, &e.Company, &e.Role, &e.StartDate, &e.EndDate,
		&e.Description, &e.Responsibility, &e.CreatedAt,
	)
	if err != nil {
		return nil, apperror.NewStoreFailure("failed to scan experience row", err)
	}
	return e, nil
}

func scanExperienceEntries(rows pgx.Rows) ([]*experience.Entry, error) {
	defer rows.Close()
	entries := make([]*experience.Entry, 0)

	for rows.Next() {
		e, err := scanExperienceEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewStoreFailure("error iterating experience rows", err)
	}
	return entries, nil
}

type pgExperienceReader struct {
	db     *PublicReader
	logger logger.Logger
}

func NewExperienceReader(db *PublicReader, log logger.Logger) experience.Reader {
	return &pgExperienceReader{db: db, logger: log}
}

func (r *pgExperienceReader) List(ctx context.Context) ([]*experience.Entry, error) {
	builder := psqlExperience.Select("id, company, role, start_date, end_date, description, responsibility, created_at").
		From("experience").
		OrderBy("start_date DESC")

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build list experience query", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, apperror.NewStoreFailure("failed to query experience", err)
	}

	return scanExperienceEntries(rows)
}

type pgExperienceWriter struct {
	scope  *ScopedWriter
	logger logger.Logger
}

type experienceWriterFactory struct {
	newScope func(ownerID uuid.UUID) *ScopedWriter
	logger   logger.Logger
}

func NewExperienceWriterFactory(newScope func(uuid.UUID) *ScopedWriter, log logger.Logger) experience.WriterFactory {
	return &experienceWriterFactory{newScope: newScope, logger: log}
}

func (f *experienceWriterFactory) WriterFor(ownerID uuid.UUID) experience.Writer {
	return &pgExperienceWriter{scope: f.newScope(ownerID), logger: f.logger}
}

func (w *pgExperienceWriter) Insert(ctx context.Context, e *experience.Entry) error {
	query := `
		INSERT INTO experience (id, company, role, start_date, end_date, description, responsibility, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := w.scope.Exec(ctx, query,
		e.ID, e.Company, e.Role, e.StartDate, e.EndDate, e.Description, e.Responsibility, e.CreatedAt,
	)
	if err != nil {
		return apperror.NewStoreFailure("failed to insert experience entry", err)
	}
	return nil
}

func (w *pgExperienceWriter) DeleteByID(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM experience WHERE id = $1`
	if _, err := w.scope.Exec(ctx, query, id); err != nil {
		return apperror.NewStoreFailure("failed to delete experience entry", err)
	}
	return nil
}
