package tracking_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/guanwo/internal/database"
	"github.com/at-ishikawa/guanwo/internal/entry"
	"github.com/at-ishikawa/guanwo/internal/tag"
	"github.com/at-ishikawa/guanwo/internal/testutil"
	"github.com/at-ishikawa/guanwo/internal/tracking"
)

func TestAggregator_SQLite(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	cfg := testutil.NewConfig()
	entries := entry.NewDBRepository(db)
	registry := tag.NewRegistry(tag.NewDBRepository(db), cfg.Tags, testutil.Logger())

	seeds, err := tag.LoadSeeds("")
	require.NoError(t, err)
	_, err = registry.SeedSystemTags(ctx, seeds)
	require.NoError(t, err)
	available, err := registry.ListAvailableTags(ctx, "user-1")
	require.NoError(t, err)
	byName := make(map[string]tag.Tag, len(available))
	for _, tg := range available {
		byName[tg.Name] = tg
	}
	health := byName["健康"]
	require.NotEmpty(t, health.ID)

	insert := func(ownerID string, at time.Time, status entry.Status, tagIDs ...string) {
		positive := entry.EmotionPositive
		at = database.Timestamp(at)
		require.NoError(t, entries.Create(ctx, &entry.Entry{
			ID:         uuid.NewString(),
			OwnerID:    ownerID,
			Content:    "跑步五公里",
			Emotion:    &positive,
			Status:     status,
			IsVisible:  status == entry.StatusSuccess,
			SourceType: entry.SourceText,
			WordCount:  5,
			Attempt:    1,
			CreatedAt:  at,
			UpdatedAt:  at,
		}, tagIDs))
	}

	window := tracking.Window{Start: weekStart, End: weekStart.AddDate(0, 0, 7)}
	insert("user-1", weekStart.Add(10*time.Hour), entry.StatusSuccess, health.ID)
	// Not counted: hidden, another owner, outside the window, untagged.
	insert("user-1", weekStart.Add(11*time.Hour), entry.StatusViolated, health.ID)
	insert("user-2", weekStart.Add(12*time.Hour), entry.StatusSuccess, health.ID)
	insert("user-1", weekStart.AddDate(0, 0, 7), entry.StatusSuccess, health.ID)
	insert("user-1", weekStart.Add(13*time.Hour), entry.StatusSuccess)

	aggregator := tracking.NewAggregator(entries, registry, cfg, testutil.Logger())

	trend, err := aggregator.TagTrend(ctx, "user-1", health.ID, window)
	require.NoError(t, err)
	assert.Equal(t, 1, trend.Count)
	assert.False(t, trend.HasEnoughData)
	assert.Empty(t, trend.Direction)

	for i := 1; i <= 4; i++ {
		insert("user-1", weekStart.AddDate(0, 0, i).Add(9*time.Hour), entry.StatusSuccess, health.ID)
	}
	trend, err = aggregator.TagTrend(ctx, "user-1", health.ID, window)
	require.NoError(t, err)
	assert.Equal(t, 5, trend.Count)
	assert.True(t, trend.HasEnoughData)
	assert.Len(t, trend.Buckets, 7)
	assert.Len(t, trend.Representatives, 3)

	overview, err := aggregator.Overview(ctx, "user-1", window)
	require.NoError(t, err)
	assert.Equal(t, 6, overview.TotalEntries)
	assert.True(t, overview.HasEnoughData)
	require.NotEmpty(t, overview.Tags)
	assert.Equal(t, health.ID, overview.Tags[0].Tag.ID)
	assert.Equal(t, 5, overview.Tags[0].Count)
	assert.True(t, overview.Tags[0].HasEnoughData)
}
