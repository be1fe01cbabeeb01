package project

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tmnguyen/portfolio-api/internal/application/service"
	"github.com/tmnguyen/portfolio-api/internal/domain/project"
	"github.com/tmnguyen/portfolio-api/pkg/apperror"
	"github.com/tmnguyen/portfolio-api/pkg/logger"
)

type ProjectUseCase struct {
	reader  project.Reader
	writers project.WriterFactory
	events  service.EventPublisher
	logger  logger.Logger
}

func NewProjectUseCase(reader project.Reader, writers project.WriterFactory, events service.EventPublisher, log logger.Logger) *ProjectUseCase {
	return &ProjectUseCase{reader: reader, writers: writers, events: events, logger: log}
}

func (uc *ProjectUseCase) List(ctx context.Context) ([]*project.Project, error) {
	return uc.reader.List(ctx)
}

type CreateProjectInput struct {
	OwnerID        uuid.UUID
	Title          string
	Description    string
	Responsibility *string
	ImageURL       *string
	LiveLink       *string
	RepoLink       *string
	Tags           []string
}

func (uc *ProjectUseCase) Create(ctx context.Context, in CreateProjectInput) (*project.Project, error) {
	tags := in.Tags
	if tags == nil {
		tags = []string{}
	}
	p := &project.Project{
		ID:             uuid.New(),
		Title:          in.Title,
		Description:    in.Description,
		Responsibility: in.Responsibility,
		ImageURL:       in.ImageURL,
		LiveLink:       in.LiveLink,
		RepoLink:       in.RepoLink,
		Tags:           tags,
		CreatedAt:      time.Now().UTC(),
	}
	if err := p.Validate(); err != nil {
		return nil, apperror.NewInvalidInput("project validation failed", err)
	}
	if err := uc.writers.WriterFor(in.OwnerID).Insert(ctx, p); err != nil {
		return nil, err
	}
	uc.emit(ctx, "create", p.ID)
	return p, nil
}

func (uc *ProjectUseCase) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	if err := uc.writers.WriterFor(ownerID).DeleteByID(ctx, id); err != nil {
		return err
	}
	uc.emit(ctx, "delete", id)
	return nil
}

func (uc *ProjectUseCase) emit(ctx context.Context, action string, id uuid.UUID) {
	ev := service.ContentEvent{Resource: "project", Action: action, ID: id.String()}
	if err := uc.events.PublishContentChanged(ctx, ev); err != nil {
		uc.logger.Warn("Failed to publish content event", zap.String("resource", ev.Resource), zap.Error(err))
	}
}
