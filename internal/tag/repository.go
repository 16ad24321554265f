package tag

import (
	"context"
	"database/sql"
	"fmt"
	"slices"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/at-ishikawa/guanwo/internal/apperr"
	"github.com/at-ishikawa/guanwo/internal/database"
)

//go:generate mockgen -source=repository.go -destination=../mocks/tag/mock_repository.go -package=mock_tag

// Repository defines operations for managing tags and entry-tag links.
type Repository interface {
	CreateSystem(ctx context.Context, t *Tag) error
	CreateCustom(ctx context.Context, t *Tag, maxCustom int) error
	FindAvailable(ctx context.Context, ownerID string) ([]Tag, error)
	FindByIDs(ctx context.Context, ids []string) ([]Tag, error)
	FindSystemByNames(ctx context.Context, names []string) ([]Tag, error)
	FindByEntryIDs(ctx context.Context, entryIDs []string) (map[string][]Tag, error)
	SetEnabled(ctx context.Context, scope, id string, enabled bool) error
	Delete(ctx context.Context, scope, id string) error
	ReplaceEntryTags(ctx context.Context, ownerID, entryID string, tagIDs []string) (EntryTagChange, error)
	LinkEntryTags(ctx context.Context, entryID string, tagIDs []string) error
}

// DBRepository implements Repository using sqlx.
type DBRepository struct {
	db  *sqlx.DB
	now func() time.Time
}

// NewDBRepository creates a new DBRepository.
func NewDBRepository(db *sqlx.DB) *DBRepository {
	return &DBRepository{db: db, now: time.Now}
}

const insertTagQuery = `INSERT INTO tags
	(id, name, tag_type, owner_id, name_scope, quota_slot, is_enabled, color, icon, description, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

func insertTag(ctx context.Context, ext sqlx.ExtContext, t *Tag) error {
	_, err := ext.ExecContext(ctx, insertTagQuery,
		t.ID, t.Name, t.Type, t.OwnerID, t.NameScope, t.QuotaSlot, t.IsEnabled,
		t.Color, t.Icon, t.Description, t.CreatedAt, t.UpdatedAt)
	return err
}

// CreateSystem inserts a system tag. A clash on the name is reported as a duplicate.
func (r *DBRepository) CreateSystem(ctx context.Context, t *Tag) error {
	if err := insertTag(ctx, r.db, t); err != nil {
		if database.IsUniqueViolation(err) {
			return apperr.DuplicateTag("system tag %q already exists", t.Name)
		}
		return fmt.Errorf("insert system tag: %w", err)
	}
	return nil
}

// CreateCustom inserts a custom tag into the lowest free quota slot of its owner.
// The (owner_id, quota_slot) and (name_scope, name) unique keys make concurrent
// creates lose with a unique violation, in which case the checks are re-run.
func (r *DBRepository) CreateCustom(ctx context.Context, t *Tag, maxCustom int) error {
	if t.OwnerID == nil {
		return fmt.Errorf("custom tag %q has no owner", t.Name)
	}
	ownerID := *t.OwnerID

	for attempt := 0; attempt <= maxCustom; attempt++ {
		err := database.RunInTx(ctx, r.db, func(ctx context.Context, tx *sqlx.Tx) error {
			var sameName int
			if err := tx.GetContext(ctx, &sameName,
				"SELECT COUNT(*) FROM tags WHERE name_scope = ? AND name = ?", t.NameScope, t.Name); err != nil {
				return fmt.Errorf("count tags by name: %w", err)
			}
			if sameName > 0 {
				return apperr.DuplicateTag("tag %q already exists", t.Name)
			}

			var used []int
			if err := tx.SelectContext(ctx, &used,
				"SELECT quota_slot FROM tags WHERE owner_id = ? AND quota_slot IS NOT NULL", ownerID); err != nil {
				return fmt.Errorf("load quota slots: %w", err)
			}
			slot := database.LowestFreeSlot(used, maxCustom)
			if slot == 0 {
				return apperr.QuotaExceeded("custom tag limit of %d reached", maxCustom)
			}
			t.QuotaSlot = &slot

			if err := insertTag(ctx, tx, t); err != nil {
				return fmt.Errorf("insert custom tag: %w", err)
			}
			return nil
		})
		if err == nil {
			return nil
		}
		if !database.IsUniqueViolation(err) {
			t.QuotaSlot = nil
			return err
		}
	}
	t.QuotaSlot = nil
	return fmt.Errorf("create custom tag %q: gave up after repeated conflicts", t.Name)
}

// FindAvailable returns enabled system tags, then the owner's enabled custom tags,
// each group in creation order.
func (r *DBRepository) FindAvailable(ctx context.Context, ownerID string) ([]Tag, error) {
	query := `SELECT * FROM tags
		WHERE is_enabled = ? AND (tag_type = ? OR owner_id = ?)
		ORDER BY CASE WHEN tag_type = ? THEN 0 ELSE 1 END, created_at, id`
	var tags []Tag
	if err := r.db.SelectContext(ctx, &tags, query, true, TypeSystem, ownerID, TypeSystem); err != nil {
		return nil, fmt.Errorf("load available tags: %w", err)
	}
	return tags, nil
}

// FindByIDs returns the tags with the given ids. Unknown ids are skipped.
func (r *DBRepository) FindByIDs(ctx context.Context, ids []string) ([]Tag, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query, args, err := sqlx.In("SELECT * FROM tags WHERE id IN (?) ORDER BY created_at, id", ids)
	if err != nil {
		return nil, fmt.Errorf("build tags query: %w", err)
	}
	var tags []Tag
	if err := r.db.SelectContext(ctx, &tags, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("load tags by ids: %w", err)
	}
	return tags, nil
}

// FindSystemByNames returns the system tags with the given names.
func (r *DBRepository) FindSystemByNames(ctx context.Context, names []string) ([]Tag, error) {
	if len(names) == 0 {
		return nil, nil
	}
	query, args, err := sqlx.In("SELECT * FROM tags WHERE name_scope = '' AND name IN (?) ORDER BY created_at, id", names)
	if err != nil {
		return nil, fmt.Errorf("build system tags query: %w", err)
	}
	var tags []Tag
	if err := r.db.SelectContext(ctx, &tags, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("load system tags by names: %w", err)
	}
	return tags, nil
}

type entryTagRow struct {
	EntryID string `db:"entry_id"`
	Tag
}

// FindByEntryIDs returns the tags linked to each entry.
func (r *DBRepository) FindByEntryIDs(ctx context.Context, entryIDs []string) (map[string][]Tag, error) {
	result := make(map[string][]Tag, len(entryIDs))
	if len(entryIDs) == 0 {
		return result, nil
	}
	query, args, err := sqlx.In(`SELECT et.entry_id, t.* FROM entry_tags et
		JOIN tags t ON t.id = et.tag_id
		WHERE et.entry_id IN (?)
		ORDER BY t.created_at, t.id`, entryIDs)
	if err != nil {
		return nil, fmt.Errorf("build entry tags query: %w", err)
	}
	var rows []entryTagRow
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("load entry tags: %w", err)
	}
	for _, row := range rows {
		result[row.EntryID] = append(result[row.EntryID], row.Tag)
	}
	return result, nil
}

// SetEnabled toggles a tag within scope ("" for system tags, the owner id for custom tags).
func (r *DBRepository) SetEnabled(ctx context.Context, scope, id string, enabled bool) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE tags SET is_enabled = ?, updated_at = ? WHERE id = ? AND name_scope = ?",
		enabled, database.Timestamp(r.now()), id, scope)
	if err != nil {
		return fmt.Errorf("update tag: %w", err)
	}
	return requireAffected(result, "tag %s", id)
}

// Delete removes a tag within scope; its entry links are removed by cascade.
func (r *DBRepository) Delete(ctx context.Context, scope, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM tags WHERE id = ? AND name_scope = ?", id, scope)
	if err != nil {
		return fmt.Errorf("delete tag: %w", err)
	}
	return requireAffected(result, "tag %s", id)
}

// ReplaceEntryTags makes tagIDs the exact tag set of the owner's entry.
// Only the difference against the current links is written.
func (r *DBRepository) ReplaceEntryTags(ctx context.Context, ownerID, entryID string, tagIDs []string) (EntryTagChange, error) {
	var change EntryTagChange
	desired := uniqueStrings(tagIDs)

	err := database.RunInTx(ctx, r.db, func(ctx context.Context, tx *sqlx.Tx) error {
		var owned int
		if err := tx.GetContext(ctx, &owned,
			"SELECT COUNT(*) FROM entries WHERE id = ? AND owner_id = ?", entryID, ownerID); err != nil {
			return fmt.Errorf("check entry owner: %w", err)
		}
		if owned == 0 {
			return apperr.NotFound("entry %s", entryID)
		}

		if len(desired) > 0 {
			query, args, err := sqlx.In("SELECT * FROM tags WHERE id IN (?)", desired)
			if err != nil {
				return fmt.Errorf("build tags query: %w", err)
			}
			var tags []Tag
			if err := tx.SelectContext(ctx, &tags, tx.Rebind(query), args...); err != nil {
				return fmt.Errorf("load tags by ids: %w", err)
			}
			available := make(map[string]bool, len(tags))
			for _, t := range tags {
				available[t.ID] = t.IsAvailableTo(ownerID)
			}
			for _, id := range desired {
				if !available[id] {
					return apperr.NotFound("tag %s", id)
				}
			}
		}

		var current []string
		if err := tx.SelectContext(ctx, &current,
			"SELECT tag_id FROM entry_tags WHERE entry_id = ?", entryID); err != nil {
			return fmt.Errorf("load entry tag ids: %w", err)
		}
		change = diff(current, desired)

		if len(change.Removed) > 0 {
			query, args, err := sqlx.In("DELETE FROM entry_tags WHERE entry_id = ? AND tag_id IN (?)", entryID, change.Removed)
			if err != nil {
				return fmt.Errorf("build entry tags delete: %w", err)
			}
			if _, err := tx.ExecContext(ctx, tx.Rebind(query), args...); err != nil {
				return fmt.Errorf("delete entry tags: %w", err)
			}
		}
		return insertEntryTags(ctx, tx, entryID, change.Added, database.Timestamp(r.now()))
	})
	if err != nil {
		return EntryTagChange{}, err
	}
	return change, nil
}

// LinkEntryTags adds links that do not exist yet; existing links are kept.
func (r *DBRepository) LinkEntryTags(ctx context.Context, entryID string, tagIDs []string) error {
	wanted := uniqueStrings(tagIDs)
	if len(wanted) == 0 {
		return nil
	}
	err := database.RunInTx(ctx, r.db, func(ctx context.Context, tx *sqlx.Tx) error {
		var current []string
		if err := tx.SelectContext(ctx, &current,
			"SELECT tag_id FROM entry_tags WHERE entry_id = ?", entryID); err != nil {
			return fmt.Errorf("load entry tag ids: %w", err)
		}
		var missing []string
		for _, id := range wanted {
			if !slices.Contains(current, id) {
				missing = append(missing, id)
			}
		}
		return insertEntryTags(ctx, tx, entryID, missing, database.Timestamp(r.now()))
	})
	if err != nil && database.IsUniqueViolation(err) {
		// linked concurrently
		return nil
	}
	return err
}

func insertEntryTags(ctx context.Context, tx *sqlx.Tx, entryID string, tagIDs []string, now time.Time) error {
	if len(tagIDs) == 0 {
		return nil
	}
	query := database.MultiRowInsert("entry_tags", []string{"entry_id", "tag_id", "created_at"}, len(tagIDs))
	args := make([]any, 0, len(tagIDs)*3)
	for _, id := range tagIDs {
		args = append(args, entryID, id, now)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert entry tags: %w", err)
	}
	return nil
}

func diff(current, desired []string) EntryTagChange {
	var change EntryTagChange
	for _, id := range desired {
		if !slices.Contains(current, id) {
			change.Added = append(change.Added, id)
		}
	}
	for _, id := range current {
		if !slices.Contains(desired, id) {
			change.Removed = append(change.Removed, id)
		}
	}
	return change
}

func uniqueStrings(values []string) []string {
	seen := make(map[string]bool, len(values))
	result := make([]string, 0, len(values))
	for _, v := range values {
		if seen[v] {
			continue
		}
		seen[v] = true
		result = append(result, v)
	}
	return result
}

func requireAffected(result sql.Result, format string, args ...any) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return apperr.NotFound(format, args...)
	}
	return nil
}
