package insight

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/at-ishikawa/guanwo/internal/apperr"
	"github.com/at-ishikawa/guanwo/internal/assets"
	"github.com/at-ishikawa/guanwo/internal/config"
	"github.com/at-ishikawa/guanwo/internal/database"
	"github.com/at-ishikawa/guanwo/internal/validation"
)

const (
	defaultCardLimit = 20
	maxCardLimit     = 100
)

// Service implements the card and config actions of the insight surface.
type Service struct {
	cards      CardRepository
	configs    ConfigRepository
	validator  *validation.Validator
	maxEnabled int
	now        func() time.Time
	logger     *slog.Logger
}

func NewService(cards CardRepository, configs ConfigRepository, cfg *config.Config, logger *slog.Logger) (*Service, error) {
	validate, err := validation.New("json")
	if err != nil {
		return nil, fmt.Errorf("validation.New() > %w", err)
	}
	return &Service{
		cards:      cards,
		configs:    configs,
		validator:  validate,
		maxEnabled: cfg.Insights.MaxEnabledConfigs,
		now: func() time.Time {
			return database.Timestamp(time.Now())
		},
		logger: logger.With("component", "insight"),
	}, nil
}

func requireOwner(ownerID string) error {
	if strings.TrimSpace(ownerID) == "" {
		return apperr.Invalid("owner_id", "owner is required")
	}
	return nil
}

// ListCards returns the owner's cards, newest first. Hidden cards are only
// returned with IncludeHidden.
func (s *Service) ListCards(ctx context.Context, filter CardFilter) ([]Card, error) {
	if err := requireOwner(filter.OwnerID); err != nil {
		return nil, err
	}
	if filter.CardType != "" && !filter.CardType.Valid() {
		return nil, apperr.Invalid("card_type", "unknown card type %q", filter.CardType)
	}
	if filter.Offset < 0 {
		return nil, apperr.Invalid("offset", "must not be negative")
	}
	switch {
	case filter.Limit <= 0:
		filter.Limit = defaultCardLimit
	case filter.Limit > maxCardLimit:
		filter.Limit = maxCardLimit
	}
	return s.cards.List(ctx, filter)
}

// GetCard returns one of the owner's cards and marks it viewed.
func (s *Service) GetCard(ctx context.Context, ownerID, id string) (*Card, error) {
	if err := s.MarkViewed(ctx, ownerID, id); err != nil {
		return nil, err
	}
	return s.cards.Get(ctx, ownerID, id)
}

func (s *Service) MarkViewed(ctx context.Context, ownerID, id string) error {
	if err := requireOwner(ownerID); err != nil {
		return err
	}
	return s.cards.MarkViewed(ctx, ownerID, id, s.now())
}

func (s *Service) Hide(ctx context.Context, ownerID, id string) error {
	if err := requireOwner(ownerID); err != nil {
		return err
	}
	return s.cards.SetHidden(ctx, ownerID, id, true, s.now())
}

func (s *Service) Show(ctx context.Context, ownerID, id string) error {
	if err := requireOwner(ownerID); err != nil {
		return err
	}
	return s.cards.SetHidden(ctx, ownerID, id, false, s.now())
}

func (s *Service) Share(ctx context.Context, ownerID, id string) error {
	if err := requireOwner(ownerID); err != nil {
		return err
	}
	return s.cards.IncrementShareCount(ctx, ownerID, id, s.now())
}

func (s *Service) ListConfigs(ctx context.Context, ownerID string) ([]Config, error) {
	if err := requireOwner(ownerID); err != nil {
		return nil, err
	}
	return s.configs.List(ctx, ownerID)
}

// NewConfig holds the caller-supplied fields of a config to create.
type NewConfig struct {
	Name      string    `json:"name" validate:"notblank,max=50"`
	TimeRange TimeRange `json:"time_range" validate:"oneof=daily weekly monthly"`
	Prompt    string    `json:"prompt" validate:"notblank,max=2000"`
	// Enabled defaults to true.
	Enabled *bool `json:"enabled"`
}

// CreateConfig stores a new custom card config. The prompt is a template
// over the same data as the built-in cards and must render on empty data.
func (s *Service) CreateConfig(ctx context.Context, ownerID string, in NewConfig) (*Config, error) {
	if err := requireOwner(ownerID); err != nil {
		return nil, err
	}
	in.Name = strings.TrimSpace(in.Name)
	violations, err := s.validator.Struct(in)
	if err != nil {
		return nil, fmt.Errorf("validator.Struct() > %w", err)
	}
	if len(violations) > 0 {
		return nil, apperr.Invalid(violations[0].Field, "%s", validation.Join(violations))
	}
	if _, err := assets.RenderText(in.Name, in.Prompt, assets.InsightData{}); err != nil {
		return nil, apperr.Invalid("prompt", "%v", err)
	}

	enabled := true
	if in.Enabled != nil {
		enabled = *in.Enabled
	}
	now := s.now()
	c := &Config{
		ID:            uuid.NewString(),
		OwnerID:       ownerID,
		Name:          in.Name,
		TimeRange:     in.TimeRange,
		Prompt:        in.Prompt,
		IsEnabled:     enabled,
		LastRunStatus: RunNever,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.configs.Create(ctx, c, s.maxEnabled); err != nil {
		return nil, fmt.Errorf("create insight card config: %w", err)
	}
	s.logger.Info("created insight card config",
		slog.String("owner_id", ownerID),
		slog.String("config_id", c.ID),
	)
	return c, nil
}

// ToggleConfig enables or disables a config. Enabling past the limit fails
// with a quota error.
func (s *Service) ToggleConfig(ctx context.Context, ownerID, id string, enabled bool) (*Config, error) {
	if err := requireOwner(ownerID); err != nil {
		return nil, err
	}
	c, err := s.configs.SetEnabled(ctx, ownerID, id, enabled, s.maxEnabled, s.now())
	if err != nil {
		return nil, fmt.Errorf("toggle insight card config: %w", err)
	}
	return c, nil
}

// DeleteConfig removes a config. Cards generated from it are kept.
func (s *Service) DeleteConfig(ctx context.Context, ownerID, id string) error {
	if err := requireOwner(ownerID); err != nil {
		return err
	}
	if err := s.configs.Delete(ctx, ownerID, id); err != nil {
		return fmt.Errorf("delete insight card config: %w", err)
	}
	return nil
}

func (s *Service) ReorderConfigs(ctx context.Context, ownerID string, ids []string) error {
	if err := requireOwner(ownerID); err != nil {
		return err
	}
	if err := s.configs.Reorder(ctx, ownerID, ids, s.now()); err != nil {
		return fmt.Errorf("reorder insight card configs: %w", err)
	}
	return nil
}
