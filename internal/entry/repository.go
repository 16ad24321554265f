package entry

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/at-ishikawa/guanwo/internal/apperr"
	"github.com/at-ishikawa/guanwo/internal/database"
)

//go:generate mockgen -source=repository.go -destination=../mocks/entry/mock_repository.go -package=mock_entry

// Repository defines the persistence operations of entries.
type Repository interface {
	Create(ctx context.Context, e *Entry, tagIDs []string) error
	Get(ctx context.Context, id string) (*Entry, error)
	List(ctx context.Context, filter ListFilter) ([]Entry, error)
	Count(ctx context.Context, filter ListFilter) (int, error)
	ImagesByEntryIDs(ctx context.Context, entryIDs []string) (map[string][]Image, error)
	CompareAndSetStatus(ctx context.Context, t Transition) (bool, error)
	ResetForRetry(ctx context.Context, ownerID, id string, at time.Time) (*Entry, error)
	SaveAnalysis(ctx context.Context, id string, emotion Emotion, events Events, at time.Time) error
	IncrementShareCount(ctx context.Context, ownerID, id string, at time.Time) error
	Delete(ctx context.Context, ownerID, id string) error
	FailStale(ctx context.Context, before time.Time, reason string, at time.Time) (int64, error)
	ListOwnersWithEntries(ctx context.Context, since time.Time) ([]string, error)
}

// ListFilter selects entries of one owner. Zero values leave a condition out.
type ListFilter struct {
	OwnerID string
	From    time.Time
	To      time.Time
	Emotion *Emotion
	// IncludeHidden also returns entries that are not visible (sending, failed, violated).
	IncludeHidden bool
	// Statuses is only applied together with IncludeHidden.
	Statuses  []Status
	TagID     string
	Limit     int
	Offset    int
	Ascending bool
}

// Transition is a compare-and-swap of an entry's status for one moderation attempt.
type Transition struct {
	EntryID       string
	Attempt       int
	To            Status
	FailureReason *string
	At            time.Time
}

// DBRepository implements Repository using sqlx.
type DBRepository struct {
	db *sqlx.DB
}

func NewDBRepository(db *sqlx.DB) *DBRepository {
	return &DBRepository{db: db}
}

const insertEntryQuery = `INSERT INTO entries
	(id, owner_id, content, emotion, status, is_visible, source_type, word_count,
	 audio_duration, audio_url, events, attempt, failure_reason, share_count, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

var imageColumns = []string{
	"id", "entry_id", "image_url", "thumbnail_url", "upload_status", "is_live_photo", "sort_order", "created_at",
}

// Create inserts an entry with its images and tag links in one transaction.
func (r *DBRepository) Create(ctx context.Context, e *Entry, tagIDs []string) error {
	return database.RunInTx(ctx, r.db, func(ctx context.Context, tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, insertEntryQuery,
			e.ID, e.OwnerID, e.Content, e.Emotion, e.Status, e.IsVisible, e.SourceType, e.WordCount,
			e.AudioDuration, e.AudioURL, e.Events, e.Attempt, e.FailureReason, e.ShareCount,
			e.CreatedAt, e.UpdatedAt,
		); err != nil {
			return fmt.Errorf("insert entry: %w", err)
		}

		if len(e.Images) > 0 {
			args := make([]any, 0, len(e.Images)*len(imageColumns))
			for _, img := range e.Images {
				args = append(args, img.ID, e.ID, img.ImageURL, img.ThumbnailURL, img.UploadStatus,
					img.IsLivePhoto, img.SortOrder, img.CreatedAt)
			}
			query := database.MultiRowInsert("entry_images", imageColumns, len(e.Images))
			if _, err := tx.ExecContext(ctx, query, args...); err != nil {
				return fmt.Errorf("insert entry images: %w", err)
			}
		}

		if len(tagIDs) > 0 {
			args := make([]any, 0, len(tagIDs)*3)
			for _, id := range tagIDs {
				args = append(args, e.ID, id, e.CreatedAt)
			}
			query := database.MultiRowInsert("entry_tags", []string{"entry_id", "tag_id", "created_at"}, len(tagIDs))
			if _, err := tx.ExecContext(ctx, query, args...); err != nil {
				return fmt.Errorf("insert entry tags: %w", err)
			}
		}
		return nil
	})
}

// Get returns the entry with id or a not found error.
func (r *DBRepository) Get(ctx context.Context, id string) (*Entry, error) {
	var e Entry
	if err := r.db.GetContext(ctx, &e, "SELECT * FROM entries WHERE id = ?", id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("entry %s", id)
		}
		return nil, fmt.Errorf("get entry: %w", err)
	}
	return &e, nil
}

func (f ListFilter) where() (string, []any) {
	conds := []string{"e.owner_id = ?"}
	args := []any{f.OwnerID}
	if !f.IncludeHidden {
		conds = append(conds, "e.is_visible = ?")
		args = append(args, true)
	} else if len(f.Statuses) > 0 {
		conds = append(conds, "e.status IN (?)")
		args = append(args, f.Statuses)
	}
	if !f.From.IsZero() {
		conds = append(conds, "e.created_at >= ?")
		args = append(args, database.Timestamp(f.From))
	}
	if !f.To.IsZero() {
		conds = append(conds, "e.created_at < ?")
		args = append(args, database.Timestamp(f.To))
	}
	if f.Emotion != nil {
		conds = append(conds, "e.emotion = ?")
		args = append(args, *f.Emotion)
	}
	if f.TagID != "" {
		conds = append(conds, "EXISTS (SELECT 1 FROM entry_tags et WHERE et.entry_id = e.id AND et.tag_id = ?)")
		args = append(args, f.TagID)
	}
	return strings.Join(conds, " AND "), args
}

// List returns matching entries, newest first unless Ascending is set.
func (r *DBRepository) List(ctx context.Context, filter ListFilter) ([]Entry, error) {
	where, args := filter.where()
	order := "DESC"
	if filter.Ascending {
		order = "ASC"
	}
	query := fmt.Sprintf("SELECT e.* FROM entries e WHERE %s ORDER BY e.created_at %s, e.id %s", where, order, order)
	if filter.Limit > 0 {
		query += " LIMIT ? OFFSET ?"
		args = append(args, filter.Limit, filter.Offset)
	}

	query, args, err := sqlx.In(query, args...)
	if err != nil {
		return nil, fmt.Errorf("build entries query: %w", err)
	}
	var entries []Entry
	if err := r.db.SelectContext(ctx, &entries, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	return entries, nil
}

func (r *DBRepository) Count(ctx context.Context, filter ListFilter) (int, error) {
	where, args := filter.where()
	query, args, err := sqlx.In("SELECT COUNT(*) FROM entries e WHERE "+where, args...)
	if err != nil {
		return 0, fmt.Errorf("build entries count: %w", err)
	}
	var count int
	if err := r.db.GetContext(ctx, &count, r.db.Rebind(query), args...); err != nil {
		return 0, fmt.Errorf("count entries: %w", err)
	}
	return count, nil
}

func (r *DBRepository) ImagesByEntryIDs(ctx context.Context, entryIDs []string) (map[string][]Image, error) {
	result := make(map[string][]Image, len(entryIDs))
	if len(entryIDs) == 0 {
		return result, nil
	}
	query, args, err := sqlx.In("SELECT * FROM entry_images WHERE entry_id IN (?) ORDER BY sort_order, created_at", entryIDs)
	if err != nil {
		return nil, fmt.Errorf("build entry images query: %w", err)
	}
	var images []Image
	if err := r.db.SelectContext(ctx, &images, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("load entry images: %w", err)
	}
	for _, img := range images {
		result[img.EntryID] = append(result[img.EntryID], img)
	}
	return result, nil
}

// CompareAndSetStatus moves an entry out of sending for the given attempt.
// It returns false when the entry is no longer sending or another attempt started.
// Visibility follows the target status.
func (r *DBRepository) CompareAndSetStatus(ctx context.Context, t Transition) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`UPDATE entries SET status = ?, is_visible = ?, failure_reason = ?, updated_at = ?
		WHERE id = ? AND status = ? AND attempt = ?`,
		t.To, t.To == StatusSuccess, t.FailureReason, database.Timestamp(t.At),
		t.EntryID, StatusSending, t.Attempt)
	if err != nil {
		return false, fmt.Errorf("update entry status: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return n == 1, nil
}

// ResetForRetry starts a new moderation attempt of a failed or violated entry.
func (r *DBRepository) ResetForRetry(ctx context.Context, ownerID, id string, at time.Time) (*Entry, error) {
	var e Entry
	err := database.RunInTx(ctx, r.db, func(ctx context.Context, tx *sqlx.Tx) error {
		result, err := tx.ExecContext(ctx,
			`UPDATE entries SET status = ?, is_visible = ?, attempt = attempt + 1, failure_reason = NULL, updated_at = ?
			WHERE id = ? AND owner_id = ? AND status IN (?, ?)`,
			StatusSending, false, database.Timestamp(at), id, ownerID, StatusFailed, StatusViolated)
		if err != nil {
			return fmt.Errorf("reset entry for retry: %w", err)
		}
		n, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("rows affected: %w", err)
		}
		if n == 0 {
			var status Status
			if err := tx.GetContext(ctx, &status,
				"SELECT status FROM entries WHERE id = ? AND owner_id = ?", id, ownerID); err != nil {
				if errors.Is(err, sql.ErrNoRows) {
					return apperr.NotFound("entry %s", id)
				}
				return fmt.Errorf("get entry status: %w", err)
			}
			return apperr.InvalidState("entry %s is %s and cannot be retried", id, status)
		}
		if err := tx.GetContext(ctx, &e, "SELECT * FROM entries WHERE id = ?", id); err != nil {
			return fmt.Errorf("get entry: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *DBRepository) SaveAnalysis(ctx context.Context, id string, emotion Emotion, events Events, at time.Time) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE entries SET emotion = ?, events = ?, updated_at = ? WHERE id = ?",
		emotion, events, database.Timestamp(at), id)
	if err != nil {
		return fmt.Errorf("save entry analysis: %w", err)
	}
	return requireAffected(result, "entry %s", id)
}

// IncrementShareCount counts a share of a visible positive entry.
func (r *DBRepository) IncrementShareCount(ctx context.Context, ownerID, id string, at time.Time) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE entries SET share_count = share_count + 1, updated_at = ?
		WHERE id = ? AND owner_id = ? AND is_visible = ? AND emotion = ?`,
		database.Timestamp(at), id, ownerID, true, EmotionPositive)
	if err != nil {
		return fmt.Errorf("increment share count: %w", err)
	}
	return requireAffected(result, "flash moment %s", id)
}

// Delete removes an entry; images and tag links are removed by cascade.
func (r *DBRepository) Delete(ctx context.Context, ownerID, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM entries WHERE id = ? AND owner_id = ?", id, ownerID)
	if err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}
	return requireAffected(result, "entry %s", id)
}

// FailStale fails every entry that has been sending since before the given time.
func (r *DBRepository) FailStale(ctx context.Context, before time.Time, reason string, at time.Time) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		`UPDATE entries SET status = ?, is_visible = ?, failure_reason = ?, updated_at = ?
		WHERE status = ? AND updated_at < ?`,
		StatusFailed, false, reason, database.Timestamp(at), StatusSending, database.Timestamp(before))
	if err != nil {
		return 0, fmt.Errorf("fail stale entries: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return n, nil
}

// ListOwnersWithEntries returns owners with visible entries created since the given time.
func (r *DBRepository) ListOwnersWithEntries(ctx context.Context, since time.Time) ([]string, error) {
	var owners []string
	if err := r.db.SelectContext(ctx, &owners,
		"SELECT DISTINCT owner_id FROM entries WHERE is_visible = ? AND created_at >= ? ORDER BY owner_id",
		true, database.Timestamp(since)); err != nil {
		return nil, fmt.Errorf("list owners with entries: %w", err)
	}
	return owners, nil
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
