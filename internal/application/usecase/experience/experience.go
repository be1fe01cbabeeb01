package experience

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tmnguyen/portfolio-api/internal/application/service"
	"github.com/tmnguyen/portfolio-api/internal/domain/experience"
	"github.com/tmnguyen/portfolio-api/pkg/apperror"
	"github.com/tmnguyen/portfolio-api/pkg/logger"
)

type ExperienceUseCase struct {
	reader  experience.Reader
	writers experience.WriterFactory
	events  service.EventPublisher
	logger  logger.Logger
}

func NewExperienceUseCase(reader experience.Reader, writers experience.WriterFactory, events service.EventPublisher, log logger.Logger) *ExperienceUseCase {
	return &ExperienceUseCase{reader: reader, writers: writers, events: events, logger: log}
}

func (uc *ExperienceUseCase) List(ctx context.Context) ([]*experience.Entry, error) {
	return uc.reader.List(ctx)
}

type CreateEntryInput struct {
	OwnerID        uuid.UUID
	Company        string
	Role           string
	StartDate      time.Time
	EndDate        *time.Time
	Description    string
	Responsibility *string
}

func (uc *ExperienceUseCase) Create(ctx context.Context, in CreateEntryInput) (*experience.Entry, error) {
	e := &experience.Entry{
		ID:             uuid.New(),
		Company:        in.Company,
		Role:           in.Role,
		StartDate:      in.StartDate,
		EndDate:        in.EndDate,
		Description:    in.Description,
		Responsibility: in.Responsibility,
		CreatedAt:      time.Now().UTC(),
	}
	if err := e.Validate(); err != nil {
		return nil, apperror.NewInvalidInput("experience entry validation failed", err)
	}
	if err := uc.writers.WriterFor(in.OwnerID).Insert(ctx, e); err != nil {
		return nil, err
	}
	uc.emit(ctx, "create", e.ID)
	return e, nil
}

func (uc *ExperienceUseCase) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	if err := uc.writers.WriterFor(ownerID).DeleteByID(ctx, id); err != nil {
		return err
	}
	uc.emit(ctx, "delete", id)
	return nil
}

func (uc *ExperienceUseCase) emit(ctx context.Context, action string, id uuid.UUID) {
	ev := service.ContentEvent{Resource: "experience", Action: action, ID: id.String()}
	if err := uc.events.PublishContentChanged(ctx, ev); err != nil {
		uc.logger.Warn("Failed to publish content event", zap.String("resource", ev.Resource), zap.Error(err))
	}
}
