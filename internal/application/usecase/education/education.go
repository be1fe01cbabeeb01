package education

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tmnguyen/portfolio-api/internal/application/service"
	"github.com/tmnguyen/portfolio-api/internal/domain/education"
	"github.com/tmnguyen/portfolio-api/pkg/apperror"
	"github.com/tmnguyen/portfolio-api/pkg/logger"
)

type EducationUseCase struct {
	reader  education.Reader
	writers education.WriterFactory
	events  service.EventPublisher
	logger  logger.Logger
}

func NewEducationUseCase(reader education.Reader, writers education.WriterFactory, events service.EventPublisher, log logger.Logger) *EducationUseCase {
	return &EducationUseCase{reader: reader, writers: writers, events: events, logger: log}
}

func (uc *EducationUseCase) List(ctx context.Context) ([]*education.Entry, error) {
	return uc.reader.List(ctx)
}

type CreateEntryInput struct {
	OwnerID     uuid.UUID
	Institution string
	Degree      string
	StartDate   time.Time
	EndDate     *time.Time
	Description string
}

func (uc *EducationUseCase) Create(ctx context.Context, in CreateEntryInput) (*education.Entry, error) {
	e := &education.Entry{
		ID:          uuid.New(),
		Institution: in.Institution,
		Degree:      in.Degree,
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
		Description: in.Description,
		CreatedAt:   time.Now().UTC(),
	}
	if err := e.Validate(); err != nil {
		return nil, apperror.NewInvalidInput("education entry validation failed", err)
	}
	if err := uc.writers.WriterFor(in.OwnerID).Insert(ctx, e); err != nil {
		return nil, err
	}
	uc.emit(ctx, "create", e.ID)
	return e, nil
}

func (uc *EducationUseCase) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	if err := uc.writers.WriterFor(ownerID).DeleteByID(ctx, id); err != nil {
		return err
	}
	uc.emit(ctx, "delete", id)
	return nil
}

func (uc *EducationUseCase) emit(ctx context.Context, action string, id uuid.UUID) {
	ev := service.ContentEvent{Resource: "education", Action: action, ID: id.String()}
	if err := uc.events.PublishContentChanged(ctx, ev); err != nil {
		uc.logger.Warn("Failed to publish content event", zap.String("resource", ev.Resource), zap.Error(err))
	}
}
