package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/linguoapp/linguo/internal/common"
	"github.com/linguoapp/linguo/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReviewGet_ReadThroughDefault(t *testing.T) {
	repos := setupRepos(t)
	s := NewReviewService(repos.ReviewMeta)
	ctx := context.Background()

	meta, err := s.Get(ctx, "fresh")
	require.NoError(t, err)
	assert.Equal(t, "fresh", meta.DeckID)
	assert.Equal(t, int64(0), meta.ViewCount)
	assert.Nil(t, meta.PostponedUntil)
	assert.Nil(t, meta.LastViewed)

	// the default must not have been persisted as a side effect
	_, err = repos.ReviewMeta.Get(ctx, "fresh")
	assert.True(t, errors.Is(err, common.ErrorNotFound))
}

func TestRecordCompletion_MonotonicViewCount(t *testing.T) {
	repos := setupRepos(t)
	s := NewReviewService(repos.ReviewMeta)
	ctx := context.Background()

	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	for i := 1; i <= 5; i++ {
		meta, err := s.RecordCompletion(ctx, "d1", models.PostponeNone(), now.Add(time.Duration(i)*time.Hour))
		require.NoError(t, err)
		assert.Equal(t, int64(i), meta.ViewCount)
	}

	stored, err := repos.ReviewMeta.Get(ctx, "d1")
	require.NoError(t, err)
	assert.Equal(t, int64(5), stored.ViewCount)
}

func TestRecordCompletion_WritesAllPairs(t *testing.T) {
	repos := setupRepos(t)
	s := NewReviewService(repos.ReviewMeta)
	ctx := context.Background()

	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	meta, err := s.RecordCompletion(ctx, "d1", models.PostponeDays(14), now)
	require.NoError(t, err)

	require.NotNil(t, meta.PostponedUntil)
	assert.True(t, meta.PostponedUntil.Equal(time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)))
	require.NotNil(t, meta.ViewCountUpdated)
	assert.True(t, meta.ViewCountUpdated.Equal(now))
	require.NotNil(t, meta.PostponedUntilUpdated)
	assert.True(t, meta.PostponedUntilUpdated.Equal(now))
	require.NotNil(t, meta.LastViewed)
	assert.True(t, meta.LastViewed.Equal(now))
}

func TestReschedule_PostponementMath(t *testing.T) {
	repos := setupRepos(t)
	s := NewReviewService(repos.ReviewMeta)
	ctx := context.Background()

	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	meta, err := s.Reschedule(ctx, "d1", models.PostponeDays(14), now)
	require.NoError(t, err)
	require.NotNil(t, meta.PostponedUntil)
	assert.True(t, meta.PostponedUntil.Equal(time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)))
}

func TestReschedule_LeavesViewFieldsUntouched(t *testing.T) {
	repos := setupRepos(t)
	s := NewReviewService(repos.ReviewMeta)
	ctx := context.Background()

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	_, err := s.RecordCompletion(ctx, "d1", models.PostponeNone(), base)
	require.NoError(t, err)

	later := base.Add(24 * time.Hour)
	meta, err := s.Reschedule(ctx, "d1", models.PostponeMonths(2), later)
	require.NoError(t, err)

	assert.Equal(t, int64(1), meta.ViewCount)
	require.NotNil(t, meta.ViewCountUpdated)
	assert.True(t, meta.ViewCountUpdated.Equal(base), "view pair must not move on reschedule")
	require.NotNil(t, meta.LastViewed)
	assert.True(t, meta.LastViewed.Equal(base))
	require.NotNil(t, meta.PostponedUntil)
	assert.True(t, meta.PostponedUntil.Equal(time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)))
}

func TestIsDue(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	past := now.AddDate(0, 0, -1)
	future := now.AddDate(0, 0, 1)

	assert.False(t, IsDue(&models.ReviewMeta{DeckID: "d1"}, now), "unscheduled is never due")
	assert.True(t, IsDue(&models.ReviewMeta{DeckID: "d1", PostponedUntil: &past}, now))
	assert.False(t, IsDue(&models.ReviewMeta{DeckID: "d1", PostponedUntil: &future}, now))
	assert.False(t, IsDue(&models.ReviewMeta{DeckID: "d1", PostponedUntil: &now}, now), "strict comparison")
}
