package tag_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/guanwo/internal/apperr"
	"github.com/at-ishikawa/guanwo/internal/config"
	"github.com/at-ishikawa/guanwo/internal/tag"
	"github.com/at-ishikawa/guanwo/internal/testutil"
)

func newSQLiteRegistry(t *testing.T) (*tag.Registry, *sqlx.DB) {
	t.Helper()
	db := testutil.NewDB(t)
	registry := tag.NewRegistry(tag.NewDBRepository(db), config.TagsConfig{MaxCustomPerUser: 10}, testutil.Logger())
	return registry, db
}

func insertEntry(t *testing.T, db *sqlx.DB, id, ownerID string) {
	t.Helper()
	now := time.Now().UTC()
	_, err := db.Exec(`INSERT INTO entries (id, owner_id, content, status, is_visible, source_type, word_count, attempt, created_at, updated_at)
		VALUES (?, ?, ?, 'success', 1, 'text', 2, 1, ?, ?)`, id, ownerID, "今天", now, now)
	require.NoError(t, err)
}

func TestRegistry_CustomTagQuota_SQLite(t *testing.T) {
	ctx := context.Background()
	registry, _ := newSQLiteRegistry(t)

	for i := 0; i < 10; i++ {
		_, err := registry.CreateCustomTag(ctx, "user-1", tag.NewTag{Name: fmt.Sprintf("tag-%d", i)})
		require.NoError(t, err)
	}

	_, err := registry.CreateCustomTag(ctx, "user-1", tag.NewTag{Name: "tag-10"})
	assert.ErrorIs(t, err, apperr.ErrQuotaExceeded)

	// Quotas are per owner.
	_, err = registry.CreateCustomTag(ctx, "user-2", tag.NewTag{Name: "tag-10"})
	assert.NoError(t, err)
}

func TestRegistry_CustomTagQuota_Concurrent(t *testing.T) {
	ctx := context.Background()
	registry, db := newSQLiteRegistry(t)

	const attempts = 25
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		quota     int
		other     []error
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := registry.CreateCustomTag(ctx, "user-1", tag.NewTag{Name: fmt.Sprintf("concurrent-%d", i)})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, apperr.ErrQuotaExceeded):
				quota++
			default:
				other = append(other, err)
			}
		}(i)
	}
	wg.Wait()

	require.Empty(t, other)
	assert.Equal(t, 10, succeeded)
	assert.Equal(t, attempts-10, quota)

	var stored int
	require.NoError(t, db.Get(&stored, "SELECT COUNT(*) FROM tags WHERE owner_id = ?", "user-1"))
	assert.Equal(t, 10, stored)
}

func TestRegistry_DuplicateNames_SQLite(t *testing.T) {
	ctx := context.Background()
	registry, _ := newSQLiteRegistry(t)

	_, err := registry.CreateSystemTag(ctx, tag.NewTag{Name: "健康"})
	require.NoError(t, err)
	_, err = registry.CreateSystemTag(ctx, tag.NewTag{Name: "健康"})
	assert.ErrorIs(t, err, apperr.ErrDuplicateTag)

	_, err = registry.CreateCustomTag(ctx, "user-1", tag.NewTag{Name: "阅读"})
	require.NoError(t, err)
	_, err = registry.CreateCustomTag(ctx, "user-1", tag.NewTag{Name: "阅读"})
	assert.ErrorIs(t, err, apperr.ErrDuplicateTag)

	// Custom names are scoped to their owner, also against system names.
	_, err = registry.CreateCustomTag(ctx, "user-2", tag.NewTag{Name: "阅读"})
	assert.NoError(t, err)
	_, err = registry.CreateCustomTag(ctx, "user-2", tag.NewTag{Name: "健康"})
	assert.NoError(t, err)
}

func TestRegistry_ListAvailableTags_SQLite(t *testing.T) {
	ctx := context.Background()
	registry, _ := newSQLiteRegistry(t)

	_, err := registry.CreateCustomTag(ctx, "user-1", tag.NewTag{Name: "阅读"})
	require.NoError(t, err)
	seeds, err := tag.LoadSeeds("")
	require.NoError(t, err)
	created, err := registry.SeedSystemTags(ctx, seeds)
	require.NoError(t, err)
	assert.Equal(t, 3, created)
	disabled, err := registry.CreateCustomTag(ctx, "user-1", tag.NewTag{Name: "旧标签"})
	require.NoError(t, err)
	require.NoError(t, registry.SetCustomTagEnabled(ctx, "user-1", disabled.ID, false))
	_, err = registry.CreateCustomTag(ctx, "user-2", tag.NewTag{Name: "别人的"})
	require.NoError(t, err)

	got, err := registry.ListAvailableTags(ctx, "user-1")
	require.NoError(t, err)

	var names []string
	for _, g := range got {
		names = append(names, g.Name)
	}
	assert.Equal(t, []string{"学习工作", "社交", "健康", "阅读"}, names)

	// Seeding again creates nothing.
	created, err = registry.SeedSystemTags(ctx, seeds)
	require.NoError(t, err)
	assert.Equal(t, 0, created)
}

func TestRegistry_ReplaceEntryTags_SQLite(t *testing.T) {
	ctx := context.Background()
	registry, db := newSQLiteRegistry(t)

	health, err := registry.CreateSystemTag(ctx, tag.NewTag{Name: "健康"})
	require.NoError(t, err)
	social, err := registry.CreateSystemTag(ctx, tag.NewTag{Name: "社交"})
	require.NoError(t, err)
	reading, err := registry.CreateCustomTag(ctx, "user-1", tag.NewTag{Name: "阅读"})
	require.NoError(t, err)
	foreign, err := registry.CreateCustomTag(ctx, "user-2", tag.NewTag{Name: "跑步"})
	require.NoError(t, err)
	insertEntry(t, db, "entry-1", "user-1")

	change, err := registry.ReplaceEntryTags(ctx, "user-1", "entry-1", []string{health.ID, social.ID})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{health.ID, social.ID}, change.Added)
	assert.Empty(t, change.Removed)

	change, err = registry.ReplaceEntryTags(ctx, "user-1", "entry-1", []string{social.ID, reading.ID})
	require.NoError(t, err)
	assert.Equal(t, []string{reading.ID}, change.Added)
	assert.Equal(t, []string{health.ID}, change.Removed)

	got, err := registry.TagsForEntries(ctx, []string{"entry-1"})
	require.NoError(t, err)
	var ids []string
	for _, g := range got["entry-1"] {
		ids = append(ids, g.ID)
	}
	assert.ElementsMatch(t, []string{social.ID, reading.ID}, ids)

	t.Run("unavailable tag leaves links unchanged", func(t *testing.T) {
		_, err := registry.ReplaceEntryTags(ctx, "user-1", "entry-1", []string{health.ID, foreign.ID})
		assert.ErrorIs(t, err, apperr.ErrNotFound)

		got, err := registry.TagsForEntries(ctx, []string{"entry-1"})
		require.NoError(t, err)
		assert.Len(t, got["entry-1"], 2)
	})

	t.Run("another owner's entry", func(t *testing.T) {
		_, err := registry.ReplaceEntryTags(ctx, "user-2", "entry-1", nil)
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})

	t.Run("deleting a tag removes its links", func(t *testing.T) {
		require.NoError(t, registry.DeleteCustomTag(ctx, "user-1", reading.ID))
		got, err := registry.TagsForEntries(ctx, []string{"entry-1"})
		require.NoError(t, err)
		require.Len(t, got["entry-1"], 1)
		assert.Equal(t, social.ID, got["entry-1"][0].ID)
	})
}

func TestRegistry_AttachSystemTags_SQLite(t *testing.T) {
	ctx := context.Background()
	registry, db := newSQLiteRegistry(t)
	insertEntry(t, db, "entry-1", "user-1")

	reading, err := registry.CreateCustomTag(ctx, "user-1", tag.NewTag{Name: "阅读"})
	require.NoError(t, err)
	_, err = registry.ReplaceEntryTags(ctx, "user-1", "entry-1", []string{reading.ID})
	require.NoError(t, err)

	require.NoError(t, registry.AttachSystemTags(ctx, "entry-1", []string{"健康"}))
	require.NoError(t, registry.AttachSystemTags(ctx, "entry-1", []string{"健康", "社交"}))

	got, err := registry.TagsForEntries(ctx, []string{"entry-1"})
	require.NoError(t, err)
	var names []string
	for _, g := range got["entry-1"] {
		names = append(names, g.Name)
	}
	assert.ElementsMatch(t, []string{"阅读", "健康", "社交"}, names)
}
