package skill

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/tmnguyen/portfolio-api/adapters/persistence"
	"github.com/tmnguyen/portfolio-api/internal/application/service"
	"github.com/tmnguyen/portfolio-api/pkg/apperror"
	"github.com/tmnguyen/portfolio-api/pkg/logger"
)

func newTestUseCase() (*SkillUseCase, *persistence.MemoryStore) {
	mem := persistence.NewMemoryStore()
	uc := NewSkillUseCase(mem.SkillReader(), mem.SkillWriters(), service.NewNoopPublisher(), logger.NewNop())
	return uc, mem
}

func TestCreateSkill_EmptyName(t *testing.T) {
	uc, mem := newTestUseCase()

	_, err := uc.Create(context.Background(), CreateSkillInput{OwnerID: uuid.New()})

	assert.True(t, errors.Is(err, apperror.ErrInvalidInput))
	assert.Equal(t, 0, mem.Calls("skill.insert"))
}

func TestListSkills_InsertionOrder(t *testing.T) {
	uc, _ := newTestUseCase()
	ownerID := uuid.New()

	for _, name := range []string{"Go", "Postgres", "Kafka"} {
		_, err := uc.Create(context.Background(), CreateSkillInput{OwnerID: ownerID, Name: name})
		assert.NoError(t, err)
	}

	got, err := uc.List(context.Background())
	assert.NoError(t, err)
	assert.Len(t, got, 3)
	assert.Equal(t, "Go", got[0].Name)
	assert.Equal(t, "Postgres", got[1].Name)
	assert.Equal(t, "Kafka", got[2].Name)
}

func TestDeleteSkill_MissingIDIsNotAnError(t *testing.T) {
	uc, _ := newTestUseCase()

	err := uc.Delete(context.Background(), uuid.New(), uuid.New())

	assert.NoError(t, err)
}

func TestDeleteSkill_RemovesRow(t *testing.T) {
	uc, _ := newTestUseCase()
	ownerID := uuid.New()

	created, err := uc.Create(context.Background(), CreateSkillInput{OwnerID: ownerID, Name: "Go"})
	assert.NoError(t, err)

	assert.NoError(t, uc.Delete(context.Background(), ownerID, created.ID))

	got, err := uc.List(context.Background())
	assert.NoError(t, err)
	assert.Empty(t, got)
}
