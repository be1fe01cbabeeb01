package profile

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/tmnguyen/portfolio-api/adapters/persistence"
	"github.com/tmnguyen/portfolio-api/internal/application/service"
	"github.com/tmnguyen/portfolio-api/pkg/logger"
)

func newTestUseCase() (*ProfileUseCase, *persistence.MemoryStore) {
	mem := persistence.NewMemoryStore()
	uc := NewProfileUseCase(mem.ProfileReader(), mem.ProfileWriters(), service.NewNoopPublisher(), logger.NewNop())
	return uc, mem
}

func TestGetProfile_Empty(t *testing.T) {
	uc, _ := newTestUseCase()

	p, err := uc.ExecuteGetProfile(context.Background())

	assert.NoError(t, err)
	assert.Nil(t, p)
}

func TestUpsertProfile_CreatesThenUpdates(t *testing.T) {
	uc, mem := newTestUseCase()
	ownerID := uuid.New()

	first, err := uc.ExecuteUpsertProfile(context.Background(), UpsertProfileInput{
		OwnerID:  ownerID,
		FullName: "Tam Nguyen",
		Title:    "Software Engineer",
	})
	assert.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, first.ID)

	second, err := uc.ExecuteUpsertProfile(context.Background(), UpsertProfileInput{
		OwnerID:  ownerID,
		FullName: "Tam Nguyen",
		Title:    "Staff Engineer",
	})
	assert.NoError(t, err)

	// The second call must update the first row, not add another.
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 1, mem.ProfileCount())
	assert.Equal(t, 1, mem.Calls("profile.insert"))
	assert.Equal(t, 1, mem.Calls("profile.update"))

	got, err := uc.ExecuteGetProfile(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, "Staff Engineer", got.Title)
}

func TestUpsertProfile_FreshWriterPerCall(t *testing.T) {
	uc, mem := newTestUseCase()

	_, err := uc.ExecuteUpsertProfile(context.Background(), UpsertProfileInput{
		OwnerID:  uuid.New(),
		FullName: "Tam Nguyen",
	})
	assert.NoError(t, err)
	_, err = uc.ExecuteUpsertProfile(context.Background(), UpsertProfileInput{
		OwnerID:  uuid.New(),
		FullName: "Tam Nguyen",
	})
	assert.NoError(t, err)

	assert.Equal(t, 2, mem.Calls("profile.writer_for"))
}
