package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/tmnguyen/portfolio-api/internal/domain/education"
	"github.com/tmnguyen/portfolio-api/internal/domain/experience"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestMemoryEducation_NewestFirst(t *testing.T) {
	mem := NewMemoryStore()
	w := mem.EducationWriters().WriterFor(uuid.New())
	ctx := context.Background()

	for _, e := range []*education.Entry{
		{ID: uuid.New(), Institution: "HUST", StartDate: date(2015, time.September, 1)},
		{ID: uuid.New(), Institution: "MIT", StartDate: date(2020, time.September, 1)},
		{ID: uuid.New(), Institution: "KAIST", StartDate: date(2018, time.March, 1)},
	} {
		assert.NoError(t, w.Insert(ctx, e))
	}

	got, err := mem.EducationReader().List(ctx)
	assert.NoError(t, err)
	assert.Equal(t, []string{"MIT", "KAIST", "HUST"},
		[]string{got[0].Institution, got[1].Institution, got[2].Institution})
}

func TestMemoryExperience_NewestFirst(t *testing.T) {
	mem := NewMemoryStore()
	w := mem.ExperienceWriters().WriterFor(uuid.New())
	ctx := context.Background()

	for _, e := range []*experience.Entry{
		{ID: uuid.New(), Company: "first-job", StartDate: date(2019, time.June, 1)},
		{ID: uuid.New(), Company: "current-job", StartDate: date(2023, time.January, 1)},
	} {
		assert.NoError(t, w.Insert(ctx, e))
	}

	got, err := mem.ExperienceReader().List(ctx)
	assert.NoError(t, err)
	assert.Equal(t, "current-job", got[0].Company)
	assert.Equal(t, "first-job", got[1].Company)
}

func TestMemoryDelete_Idempotent(t *testing.T) {
	mem := NewMemoryStore()
	w := mem.EducationWriters().WriterFor(uuid.New())
	ctx := context.Background()

	entry := &education.Entry{ID: uuid.New(), Institution: "HUST", StartDate: date(2015, time.September, 1)}
	assert.NoError(t, w.Insert(ctx, entry))

	assert.NoError(t, w.DeleteByID(ctx, entry.ID))
	assert.NoError(t, w.DeleteByID(ctx, entry.ID))

	got, err := mem.EducationReader().List(ctx)
	assert.NoError(t, err)
	assert.Empty(t, got)
}

func TestMemorySessionStore_Lifecycle(t *testing.T) {
	sessions := NewMemorySessionStore()
	ctx := context.Background()

	active, err := sessions.IsActive(ctx, "missing")
	assert.NoError(t, err)
	assert.False(t, active)

	assert.NoError(t, sessions.Put(ctx, "sess-1", uuid.New(), time.Hour))

	active, err = sessions.IsActive(ctx, "sess-1")
	assert.NoError(t, err)
	assert.True(t, active)

	assert.NoError(t, sessions.Revoke(ctx, "sess-1"))

	active, err = sessions.IsActive(ctx, "sess-1")
	assert.NoError(t, err)
	assert.False(t, active)
}
