package insight

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/at-ishikawa/guanwo/internal/apperr"
	"github.com/at-ishikawa/guanwo/internal/database"
)

//go:generate mockgen -source=config_repository.go -destination=../mocks/insight/mock_config_repository.go -package=mock_insight

// ConfigRepository stores custom card configurations.
type ConfigRepository interface {
	Create(ctx context.Context, c *Config, maxEnabled int) error
	Get(ctx context.Context, ownerID, id string) (*Config, error)
	List(ctx context.Context, ownerID string) ([]Config, error)
	ListEnabled(ctx context.Context, ownerID string) ([]Config, error)
	SetEnabled(ctx context.Context, ownerID, id string, enabled bool, maxEnabled int, at time.Time) (*Config, error)
	Delete(ctx context.Context, ownerID, id string) error
	Reorder(ctx context.Context, ownerID string, ids []string, at time.Time) error
	RecordRun(ctx context.Context, id string, status RunStatus, runErr *string, at time.Time) error
}

// DBConfigRepository implements ConfigRepository using sqlx.
type DBConfigRepository struct {
	db *sqlx.DB
}

func NewDBConfigRepository(db *sqlx.DB) *DBConfigRepository {
	return &DBConfigRepository{db: db}
}

func usedEnabledSlots(ctx context.Context, tx *sqlx.Tx, ownerID string) ([]int, error) {
	var used []int
	if err := tx.SelectContext(ctx, &used,
		"SELECT enabled_slot FROM insight_card_configs WHERE owner_id = ? AND enabled_slot IS NOT NULL", ownerID); err != nil {
		return nil, fmt.Errorf("load enabled slots: %w", err)
	}
	return used, nil
}

// retryOnConflict runs fn until it does not fail with a unique violation.
// Concurrent writers claiming the same enabled slot lose with one.
func retryOnConflict(attempts int, fn func() error) error {
	var err error
	for i := 0; i <= attempts; i++ {
		err = fn()
		if err == nil || !database.IsUniqueViolation(err) {
			return err
		}
	}
	return fmt.Errorf("gave up after repeated conflicts: %w", err)
}

// Create inserts c at the end of the owner's order. An enabled config claims
// the lowest free enabled slot, failing with a quota error when none is left.
func (r *DBConfigRepository) Create(ctx context.Context, c *Config, maxEnabled int) error {
	err := retryOnConflict(maxEnabled, func() error {
		return database.RunInTx(ctx, r.db, func(ctx context.Context, tx *sqlx.Tx) error {
			c.EnabledSlot = nil
			if c.IsEnabled {
				used, err := usedEnabledSlots(ctx, tx, c.OwnerID)
				if err != nil {
					return err
				}
				slot := database.LowestFreeSlot(used, maxEnabled)
				if slot == 0 {
					return apperr.QuotaExceeded("enabled insight card limit of %d reached", maxEnabled)
				}
				c.EnabledSlot = &slot
			}

			var maxOrder sql.NullInt64
			if err := tx.GetContext(ctx, &maxOrder,
				"SELECT MAX(sort_order) FROM insight_card_configs WHERE owner_id = ?", c.OwnerID); err != nil {
				return fmt.Errorf("load max sort order: %w", err)
			}
			c.SortOrder = 0
			if maxOrder.Valid {
				c.SortOrder = int(maxOrder.Int64) + 1
			}

			if _, err := tx.ExecContext(ctx, `INSERT INTO insight_card_configs
				(id, owner_id, name, time_range, prompt, sort_order, is_enabled, enabled_slot,
				last_run_status, last_run_error, last_run_at, created_at, updated_at)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				c.ID, c.OwnerID, c.Name, c.TimeRange, c.Prompt, c.SortOrder, c.IsEnabled, c.EnabledSlot,
				c.LastRunStatus, c.LastRunError, c.LastRunAt,
				database.Timestamp(c.CreatedAt), database.Timestamp(c.UpdatedAt)); err != nil {
				return fmt.Errorf("insert insight card config: %w", err)
			}
			return nil
		})
	})
	if err != nil {
		c.EnabledSlot = nil
		return err
	}
	return nil
}

func getConfig(ctx context.Context, q sqlx.QueryerContext, ownerID, id string) (*Config, error) {
	var c Config
	if err := sqlx.GetContext(ctx, q, &c,
		"SELECT * FROM insight_card_configs WHERE id = ? AND owner_id = ?", id, ownerID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("insight card config %s", id)
		}
		return nil, fmt.Errorf("get insight card config: %w", err)
	}
	return &c, nil
}

func (r *DBConfigRepository) Get(ctx context.Context, ownerID, id string) (*Config, error) {
	return getConfig(ctx, r.db, ownerID, id)
}

// List returns the owner's configs in display order.
func (r *DBConfigRepository) List(ctx context.Context, ownerID string) ([]Config, error) {
	var configs []Config
	if err := r.db.SelectContext(ctx, &configs,
		"SELECT * FROM insight_card_configs WHERE owner_id = ? ORDER BY sort_order, created_at, id", ownerID); err != nil {
		return nil, fmt.Errorf("list insight card configs: %w", err)
	}
	return configs, nil
}

func (r *DBConfigRepository) ListEnabled(ctx context.Context, ownerID string) ([]Config, error) {
	var configs []Config
	if err := r.db.SelectContext(ctx, &configs,
		"SELECT * FROM insight_card_configs WHERE owner_id = ? AND is_enabled = ? ORDER BY sort_order, created_at, id",
		ownerID, true); err != nil {
		return nil, fmt.Errorf("list enabled insight card configs: %w", err)
	}
	return configs, nil
}

// SetEnabled enables or disables a config. Enabling claims an enabled slot and
// disabling releases it; setting the current state again changes nothing.
func (r *DBConfigRepository) SetEnabled(ctx context.Context, ownerID, id string, enabled bool, maxEnabled int, at time.Time) (*Config, error) {
	var updated *Config
	err := retryOnConflict(maxEnabled, func() error {
		return database.RunInTx(ctx, r.db, func(ctx context.Context, tx *sqlx.Tx) error {
			c, err := getConfig(ctx, tx, ownerID, id)
			if err != nil {
				return err
			}
			if c.IsEnabled == enabled {
				updated = c
				return nil
			}

			var slot *int
			if enabled {
				used, err := usedEnabledSlots(ctx, tx, ownerID)
				if err != nil {
					return err
				}
				free := database.LowestFreeSlot(used, maxEnabled)
				if free == 0 {
					return apperr.QuotaExceeded("enabled insight card limit of %d reached", maxEnabled)
				}
				slot = &free
			}
			if _, err := tx.ExecContext(ctx,
				"UPDATE insight_card_configs SET is_enabled = ?, enabled_slot = ?, updated_at = ? WHERE id = ?",
				enabled, slot, database.Timestamp(at), id); err != nil {
				return fmt.Errorf("update insight card config enabled: %w", err)
			}
			c.IsEnabled = enabled
			c.EnabledSlot = slot
			c.UpdatedAt = database.Timestamp(at)
			updated = c
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes a config. Its cards stay with config_id set to NULL.
func (r *DBConfigRepository) Delete(ctx context.Context, ownerID, id string) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM insight_card_configs WHERE id = ? AND owner_id = ?", id, ownerID)
	if err != nil {
		return fmt.Errorf("delete insight card config: %w", err)
	}
	return requireAffected(result, "insight card config %s", id)
}

// Reorder sets the display order of the owner's configs to the order of ids,
// which must list every config of the owner exactly once.
func (r *DBConfigRepository) Reorder(ctx context.Context, ownerID string, ids []string, at time.Time) error {
	return database.RunInTx(ctx, r.db, func(ctx context.Context, tx *sqlx.Tx) error {
		var current []string
		if err := tx.SelectContext(ctx, &current,
			"SELECT id FROM insight_card_configs WHERE owner_id = ?", ownerID); err != nil {
			return fmt.Errorf("load insight card config ids: %w", err)
		}
		if len(current) != len(ids) {
			return apperr.Invalid("config_ids", "expected %d config ids, got %d", len(current), len(ids))
		}
		seen := make(map[string]bool, len(ids))
		for _, id := range ids {
			if seen[id] {
				return apperr.Invalid("config_ids", "config %s is listed twice", id)
			}
			seen[id] = true
			if !slices.Contains(current, id) {
				return apperr.NotFound("insight card config %s", id)
			}
		}

		for i, id := range ids {
			if _, err := tx.ExecContext(ctx,
				"UPDATE insight_card_configs SET sort_order = ?, updated_at = ? WHERE id = ? AND owner_id = ?",
				i, database.Timestamp(at), id, ownerID); err != nil {
				return fmt.Errorf("update insight card config order: %w", err)
			}
		}
		return nil
	})
}

// RecordRun stores the outcome of the latest generation from a config.
func (r *DBConfigRepository) RecordRun(ctx context.Context, id string, status RunStatus, runErr *string, at time.Time) error {
	ts := database.Timestamp(at)
	result, err := r.db.ExecContext(ctx,
		"UPDATE insight_card_configs SET last_run_status = ?, last_run_error = ?, last_run_at = ?, updated_at = ? WHERE id = ?",
		status, runErr, ts, ts, id)
	if err != nil {
		return fmt.Errorf("record insight card config run: %w", err)
	}
	return requireAffected(result, "insight card config %s", id)
}
