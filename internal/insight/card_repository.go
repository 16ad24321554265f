package insight

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

//go:generate mockgen -source=card_repository.go -destination=../mocks/insight/mock_card_repository.go -package=mock_insight

// CardRepository stores insight cards. Cards are inserted once and afterwards
// only their view, hide and share state changes.
type CardRepository interface {
	Create(ctx context.Context, card *Card) error
	Get(ctx context.Context, ownerID, id string) (*Card, error)
	List(ctx context.Context, filter CardFilter) ([]Card, error)
	MarkViewed(ctx context.Context, ownerID, id string, at time.Time) error
	SetHidden(ctx context.Context, ownerID, id string, hidden bool, at time.Time) error
	IncrementShareCount(ctx context.Context, ownerID, id string, at time.Time) error
}

type CardFilter struct {
	OwnerID string
	// CardType is optional.
	CardType      CardType
	IncludeHidden bool
	Limit         int
	Offset        int
}

// DBCardRepository implements CardRepository using sqlx.
type DBCardRepository struct {
	db *sqlx.DB
}

func NewDBCardRepository(db *sqlx.DB) *DBCardRepository {
	return &DBCardRepository{db: db}
}

func (r *DBCardRepository) Create(ctx context.Context, card *Card) error {
	_, err := r.db.ExecContext(ctx, `INSERT INTO insight_cards
		(id, owner_id, card_type, content, data_start_time, data_end_time, is_viewed, is_hidden,
		share_count, view_count, config_id, generated_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		card.ID, card.OwnerID, card.CardType, card.Content,
		database.Timestamp(card.DataStartTime), database.Timestamp(card.DataEndTime),
		card.IsViewed, card.IsHidden, card.ShareCount, card.ViewCount, card.ConfigID,
		database.Timestamp(card.GeneratedAt), database.Timestamp(card.CreatedAt), database.Timestamp(card.UpdatedAt))
	if err != nil {
		return fmt.Errorf("insert insight card: %w", err)
	}
	return nil
}

// Get returns the owner's card, or a not found error for cards of other owners.
func (r *DBCardRepository) Get(ctx context.Context, ownerID, id string) (*Card, error) {
	var card Card
	if err := r.db.GetContext(ctx, &card,
		"SELECT * FROM insight_cards WHERE id = ? AND owner_id = ?", id, ownerID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("insight card %s", id)
		}
		return nil, fmt.Errorf("get insight card: %w", err)
	}
	return &card, nil
}

// List returns the matching cards, most recently generated first.
func (r *DBCardRepository) List(ctx context.Context, filter CardFilter) ([]Card, error) {
	conds := []string{"owner_id = ?"}
	args := []any{filter.OwnerID}
	if !filter.IncludeHidden {
		conds = append(conds, "is_hidden = ?")
		args = append(args, false)
	}
	if filter.CardType != "" {
		conds = append(conds, "card_type = ?")
		args = append(args, filter.CardType)
	}
	query := "SELECT * FROM insight_cards WHERE " + strings.Join(conds, " AND ") +
		" ORDER BY generated_at DESC, id DESC"
	if filter.Limit > 0 {
		query += " LIMIT ? OFFSET ?"
		args = append(args, filter.Limit, filter.Offset)
	}

	var cards []Card
	if err := r.db.SelectContext(ctx, &cards, query, args...); err != nil {
		return nil, fmt.Errorf("list insight cards: %w", err)
	}
	return cards, nil
}

func (r *DBCardRepository) MarkViewed(ctx context.Context, ownerID, id string, at time.Time) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE insight_cards SET is_viewed = ?, view_count = view_count + 1, updated_at = ? WHERE id = ? AND owner_id = ?",
		true, database.Timestamp(at), id, ownerID)
	if err != nil {
		return fmt.Errorf("mark insight card viewed: %w", err)
	}
	return requireAffected(result, "insight card %s", id)
}

// SetHidden hides or shows a card. Setting the current state again succeeds.
func (r *DBCardRepository) SetHidden(ctx context.Context, ownerID, id string, hidden bool, at time.Time) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE insight_cards SET is_hidden = ?, updated_at = ? WHERE id = ? AND owner_id = ?",
		hidden, database.Timestamp(at), id, ownerID)
	if err != nil {
		return fmt.Errorf("set insight card hidden: %w", err)
	}
	return requireAffected(result, "insight card %s", id)
}

func (r *DBCardRepository) IncrementShareCount(ctx context.Context, ownerID, id string, at time.Time) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE insight_cards SET share_count = share_count + 1, updated_at = ? WHERE id = ? AND owner_id = ?",
		database.Timestamp(at), id, ownerID)
	if err != nil {
		return fmt.Errorf("increment insight card share count: %w", err)
	}
	return requireAffected(result, "insight card %s", id)
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
