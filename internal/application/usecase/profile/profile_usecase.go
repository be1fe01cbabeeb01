package profile

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"github.com/tmnguyen/portfolio-api/internal/application/service"
	"github.com/tmnguyen/portfolio-api/internal/domain/profile"
	"github.com/tmnguyen/portfolio-api/pkg/logger"
)

var tracer = otel.Tracer("profile_usecase")

type ProfileUseCase struct {
	reader  profile.Reader
	writers profile.WriterFactory
	events  service.EventPublisher
	logger  logger.Logger
}

func NewProfileUseCase(reader profile.Reader, writers profile.WriterFactory, events service.EventPublisher, log logger.Logger) *ProfileUseCase {
	return &ProfileUseCase{
		reader:  reader,
		writers: writers,
		events:  events,
		logger:  log,
	}
}

// ExecuteGetProfile returns the public profile; nil means none exists
// yet and renders as JSON null.
func (uc *ProfileUseCase) ExecuteGetProfile(ctx context.Context) (*profile.Profile, error) {
	p, err := uc.reader.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("get profile failed: %w", err)
	}
	return p, nil
}

type UpsertProfileInput struct {
	OwnerID   uuid.UUID
	FullName  string
	Title     string
	Bio       string
	PhotoURL  *string
	ResumeURL *string
}

// ExecuteUpsertProfile locates the existing row and updates it, or
// inserts the first one. The check-then-act pair is not guarded
// against a concurrent second writer; with a single admin the race is
// accepted.
func (uc *ProfileUseCase) ExecuteUpsertProfile(ctx context.Context, input UpsertProfileInput) (*profile.Profile, error) {

	ctx, span := tracer.Start(ctx, "ExecuteUpsertProfile")
	defer span.End()

	w := uc.writers.WriterFor(input.OwnerID)

	existing, err := w.FindCurrent(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	p := &profile.Profile{
		FullName:  input.FullName,
		Title:     input.Title,
		Bio:       input.Bio,
		PhotoURL:  input.PhotoURL,
		ResumeURL: input.ResumeURL,
		UpdatedAt: time.Now().UTC(),
	}

	if existing != nil {
		p.ID = existing.ID
		if err := w.UpdateByID(ctx, p); err != nil {
			span.RecordError(err)
			return nil, err
		}
	} else {
		p.ID = uuid.New()
		if err := w.Insert(ctx, p); err != nil {
			span.RecordError(err)
			return nil, err
		}
	}

	uc.emit(ctx, p.ID)
	return p, nil
}

func (uc *ProfileUseCase) emit(ctx context.Context, id uuid.UUID) {
	ev := service.ContentEvent{Resource: "profile", Action: "upsert", ID: id.String()}
	if err := uc.events.PublishContentChanged(ctx, ev); err != nil {
		uc.logger.Warn("Failed to publish content event", zap.String("resource", ev.Resource), zap.Error(err))
	}
}
