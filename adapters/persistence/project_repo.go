package persistence

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/tmnguyen/portfolio-api/internal/domain/project"
	"github.com/tmnguyen/portfolio-api/pkg/apperror"
	"github.com/tmnguyen/portfolio-api/pkg/logger"
)

var psqlProject = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

func scanProject(row pgx.Row) (*project.Project, error) {
	p := &project.Project{}
	err := row.Scan(
		&p.ID, &p.Title, &p.Description, &p.Responsibility,
		&p.ImageURL, &p.LiveLink, &p.RepoLink, &p.Tags, &p.CreatedAt,
	)
	if err != nil {
		return nil, apperror.NewStoreFailure("failed to scan project row", err)
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}
	return p, nil
}

func scanProjects(rows pgx.Rows) ([]*project.Project, error) {
	defer rows.Close()
	projects := make([]*project.Project, 0)

	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewStoreFailure("error iterating project rows", err)
	}
	return projects, nil
}

type pgProjectReader struct {
	db     *PublicReader
	logger logger.Logger
}

func NewProjectReader(db *PublicReader, log logger.Logger) project.Reader {
	return &pgProjectReader{db: db, logger: log}
}

func (r *pgProjectReader) List(ctx context.Context) ([]*project.Project, error) {
	builder := psqlProject.Select("id, title, description, responsibility, image_url, live_link, repo_link, tags, created_at").
		From("projects").
		OrderBy("created_at DESC")

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build list projects query", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, apperror.NewStoreFailure("failed to query projects", err)
	}

	return scanProjects(rows)
}

type pgProjectWriter struct {
	scope  *ScopedWriter
	logger logger.Logger
}

type projectWriterFactory struct {
	newScope func(ownerID uuid.UUID) *ScopedWriter
	logger   logger.Logger
}

func NewProjectWriterFactory(newScope func(uuid.UUID) *ScopedWriter, log logger.Logger) project.WriterFactory {
	return &projectWriterFactory{newScope: newScope, logger: log}
}

func (f *projectWriterFactory) WriterFor(ownerID uuid.UUID) project.Writer {
	return &pgProjectWriter{scope: f.newScope(ownerID), logger: f.logger}
}

func (w *pgProjectWriter) Insert(ctx context.Context, p *project.Project) error {
	query := `
		INSERT INTO projects (id, title, description, responsibility, image_url, live_link, repo_link, tags, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := w.scope.Exec(ctx, query,
		p.ID, p.Title, p.Description, p.Responsibility,
		p.ImageURL, p.LiveLink, p.RepoLink, p.Tags, p.CreatedAt,
	)
	if err != nil {
		return apperror.NewStoreFailure("failed to insert project", err)
	}
	return nil
}

func (w *pgProjectWriter) DeleteByID(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM projects WHERE id = $1`
	if _, err := w.scope.Exec(ctx, query, id); err != nil {
		return apperror.NewStoreFailure("failed to delete project", err)
	}
	return nil
}
