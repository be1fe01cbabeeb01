package skill

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tmnguyen/portfolio-api/internal/application/service"
	"github.com/tmnguyen/portfolio-api/internal/domain/skill"
	"github.com/tmnguyen/portfolio-api/pkg/apperror"
	"github.com/tmnguyen/portfolio-api/pkg/logger"
)

type SkillUseCase struct {
	reader  skill.Reader
	writers skill.WriterFactory
	events  service.EventPublisher
	logger  logger.Logger
}

func NewSkillUseCase(reader skill.Reader, writers skill.WriterFactory, events service.EventPublisher, log logger.Logger) *SkillUseCase {
	return &SkillUseCase{reader: reader, writers: writers, events: events, logger: log}
}

func (uc *SkillUseCase) List(ctx context.Context) ([]*skill.Skill, error) {
	return uc.reader.List(ctx)
}

type CreateSkillInput struct {
	OwnerID  uuid.UUID
	Name     string
	Category string
	Level    string
}

func (uc *SkillUseCase) Create(ctx context.Context, in CreateSkillInput) (*skill.Skill, error) {
	s := &skill.Skill{
		ID:        uuid.New(),
		Name:      in.Name,
		Category:  in.Category,
		Level:     in.Level,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.Validate(); err != nil {
		return nil, apperror.NewInvalidInput("skill validation failed", err)
	}
	if err := uc.writers.WriterFor(in.OwnerID).Insert(ctx, s); err != nil {
		return nil, err
	}
	uc.emit(ctx, "create", s.ID)
	return s, nil
}

func (uc *SkillUseCase) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	if err := uc.writers.WriterFor(ownerID).DeleteByID(ctx, id); err != nil {
		return err
	}
	uc.emit(ctx, "delete", id)
	return nil
}

func (uc *SkillUseCase) emit(ctx context.Context, action string, id uuid.UUID) {
	ev := service.ContentEvent{Resource: "skill", Action: action, ID: id.String()}
	if err := uc.events.PublishContentChanged(ctx, ev); err != nil {
		uc.logger.Warn("Failed to publish content event", zap.String("resource", ev.Resource), zap.Error(err))
	}
}
