package persistence

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/tmnguyen/portfolio-api/internal/domain/skill"
	"github.com/tmnguyen/portfolio-api/pkg/apperror"
	"github.com/tmnguyen/portfolio-api/pkg/logger"
)

var psqlSkill = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

func scanSkill(row pgx.Row) (*skill.Skill, error) {
	s := &skill.Skill{}
	err := row.Scan(&s.ID, &s.Name, &s.Category, &s.Level, &s.CreatedAt)
	if err != nil {
		return nil, apperror.NewStoreFailure("failed to scan skill row", err)
	}
	return s, nil
}

func scanSkills(rows pgx.Rows) ([]*skill.Skill, error) {
	defer rows.Close()
	skills := make([]*skill.Skill, 0)

	for rows.Next() {
		s, err := scanSkill(rows)
		if err != nil {
			return nil, err
		}
		skills = append(skills, s)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewStoreFailure("error iterating skill rows", err)
	}
	return skills, nil
}

type pgSkillReader struct {
	db     *PublicReader
	logger logger.Logger
}

func NewSkillReader(db *PublicReader, log logger.Logger) skill.Reader {
	return &pgSkillReader{db: db, logger: log}
}

func (r *pgSkillReader) List(ctx context.Context) ([]*skill.Skill, error) {
	// Insertion order is the display order; id breaks created_at ties.
	builder := psqlSkill.Select("id, name, category, level, created_at").
		From("skills").
		OrderBy("created_at ASC", "id ASC")

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build list skills query", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, apperror.NewStoreFailure("failed to query skills", err)
	}

	return scanSkills(rows)
}

type pgSkillWriter struct {
	scope  *ScopedWriter
	logger logger.Logger
}

type skillWriterFactory struct {
	newScope func(ownerID uuid.UUID) *ScopedWriter
	logger   logger.Logger
}

func NewSkillWriterFactory(newScope func(uuid.UUID) *ScopedWriter, log logger.Logger) skill.WriterFactory {
	return &skillWriterFactory{newScope: newScope, logger: log}
}

func (f *skillWriterFactory) WriterFor(ownerID uuid.UUID) skill.Writer {
	return &pgSkillWriter{scope: f.newScope(ownerID), logger: f.logger}
}

func (w *pgSkillWriter) Insert(ctx context.Context, s *skill.Skill) error {
	query := `
		INSERT INTO skills (id, name, category, level, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := w.scope.Exec(ctx, query, s.ID, s.Name, s.Category, s.Level, s.CreatedAt)
	if err != nil {
		return apperror.NewStoreFailure("failed to insert skill", err)
	}
	return nil
}

func (w *pgSkillWriter) DeleteByID(ctx context.Context, id uuid.UUID) error {
	// Zero rows affected is still success; delete is idempotent.
	query := `DELETE FROM skills WHERE id = $1`
	if _, err := w.scope.Exec(ctx, query, id); err != nil {
		return apperror.NewStoreFailure("failed to delete skill", err)
	}
	return nil
}
