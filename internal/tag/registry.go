package tag

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/at-ishikawa/guanwo/internal/apperr"
	"github.com/at-ishikawa/guanwo/internal/config"
	"github.com/at-ishikawa/guanwo/internal/database"
)

// Registry enforces tag naming, scope and quota rules on top of a Repository.
type Registry struct {
	repo      Repository
	maxCustom int
	logger    *slog.Logger
	now       func() time.Time
}

func NewRegistry(repo Repository, cfg config.TagsConfig, logger *slog.Logger) *Registry {
	return &Registry{
		repo:      repo,
		maxCustom: cfg.MaxCustomPerUser,
		logger:    logger.With("component", "tag_registry"),
		now:       time.Now,
	}
}

// CreateSystemTag creates a globally visible tag.
func (r *Registry) CreateSystemTag(ctx context.Context, in NewTag) (*Tag, error) {
	t, err := r.newTag(in, TypeSystem, "")
	if err != nil {
		return nil, err
	}
	if err := r.repo.CreateSystem(ctx, t); err != nil {
		return nil, fmt.Errorf("create system tag: %w", err)
	}
	return t, nil
}

// CreateCustomTag creates a tag private to ownerID, failing with a quota error
// once the owner holds the configured number of custom tags.
func (r *Registry) CreateCustomTag(ctx context.Context, ownerID string, in NewTag) (*Tag, error) {
	if strings.TrimSpace(ownerID) == "" {
		return nil, apperr.Invalid("owner_id", "must not be blank")
	}
	t, err := r.newTag(in, TypeCustom, ownerID)
	if err != nil {
		return nil, err
	}
	if err := r.repo.CreateCustom(ctx, t, r.maxCustom); err != nil {
		return nil, fmt.Errorf("create custom tag: %w", err)
	}
	r.logger.Debug("custom tag created",
		slog.String("owner_id", ownerID),
		slog.String("tag_id", t.ID),
		slog.Int("slot", *t.QuotaSlot),
	)
	return t, nil
}

func (r *Registry) newTag(in NewTag, tagType Type, ownerID string) (*Tag, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, apperr.Invalid("name", "must not be blank")
	}
	if n := utf8.RuneCountInString(name); n > MaxNameLength {
		return nil, apperr.Invalid("name", "must be at most %d characters, got %d", MaxNameLength, n)
	}
	now := database.Timestamp(r.now())
	t := &Tag{
		ID:          uuid.NewString(),
		Name:        name,
		Type:        tagType,
		NameScope:   ownerID,
		IsEnabled:   true,
		Color:       in.Color,
		Icon:        in.Icon,
		Description: in.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if tagType == TypeCustom {
		t.OwnerID = &ownerID
	}
	return t, nil
}

// ListAvailableTags returns the tags ownerID may attach: enabled system tags
// first, then the owner's enabled custom tags, both in creation order.
func (r *Registry) ListAvailableTags(ctx context.Context, ownerID string) ([]Tag, error) {
	tags, err := r.repo.FindAvailable(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list available tags: %w", err)
	}
	return tags, nil
}

// ResolveAvailable returns the tags for ids, failing with a validation error
// naming field when one of them is not available to ownerID.
func (r *Registry) ResolveAvailable(ctx context.Context, ownerID string, ids []string, field string) ([]Tag, error) {
	ids = uniqueStrings(ids)
	if len(ids) == 0 {
		return nil, nil
	}
	tags, err := r.repo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("resolve tags: %w", err)
	}
	byID := make(map[string]Tag, len(tags))
	for _, t := range tags {
		byID[t.ID] = t
	}
	result := make([]Tag, 0, len(ids))
	for _, id := range ids {
		t, ok := byID[id]
		if !ok || !t.IsAvailableTo(ownerID) {
			return nil, apperr.Invalid(field, "tag %s is not available", id)
		}
		result = append(result, t)
	}
	return result, nil
}

// ReplaceEntryTags makes tagIDs the tag set of the owner's entry in one transaction.
func (r *Registry) ReplaceEntryTags(ctx context.Context, ownerID, entryID string, tagIDs []string) (EntryTagChange, error) {
	change, err := r.repo.ReplaceEntryTags(ctx, ownerID, entryID, tagIDs)
	if err != nil {
		return EntryTagChange{}, fmt.Errorf("replace entry tags: %w", err)
	}
	return change, nil
}

// AttachSystemTags links the named system tags to an entry, creating missing
// system tags first. Existing links, including user-chosen ones, are kept.
func (r *Registry) AttachSystemTags(ctx context.Context, entryID string, names []string) error {
	names = uniqueStrings(names)
	if len(names) == 0 {
		return nil
	}
	tags, err := r.ensureSystemTags(ctx, names)
	if err != nil {
		return err
	}
	ids := make([]string, 0, len(tags))
	for _, t := range tags {
		if t.IsEnabled {
			ids = append(ids, t.ID)
		}
	}
	if err := r.repo.LinkEntryTags(ctx, entryID, ids); err != nil {
		return fmt.Errorf("attach system tags: %w", err)
	}
	return nil
}

func (r *Registry) ensureSystemTags(ctx context.Context, names []string) ([]Tag, error) {
	existing, err := r.repo.FindSystemByNames(ctx, names)
	if err != nil {
		return nil, fmt.Errorf("find system tags: %w", err)
	}
	found := make(map[string]bool, len(existing))
	for _, t := range existing {
		found[t.Name] = true
	}
	for _, name := range names {
		if found[name] {
			continue
		}
		t, err := r.CreateSystemTag(ctx, NewTag{Name: name})
		if err != nil {
			if errors.Is(err, apperr.ErrDuplicateTag) {
				continue
			}
			return nil, err
		}
		r.logger.Info("system tag created from analysis", slog.String("name", t.Name))
	}
	if len(existing) == len(names) {
		return existing, nil
	}
	tags, err := r.repo.FindSystemByNames(ctx, names)
	if err != nil {
		return nil, fmt.Errorf("find system tags: %w", err)
	}
	return tags, nil
}

// TagsForEntries returns the tags linked to each entry id.
func (r *Registry) TagsForEntries(ctx context.Context, entryIDs []string) (map[string][]Tag, error) {
	tags, err := r.repo.FindByEntryIDs(ctx, entryIDs)
	if err != nil {
		return nil, fmt.Errorf("tags for entries: %w", err)
	}
	return tags, nil
}

// SetCustomTagEnabled enables or disables one of the owner's custom tags.
// Disabled tags keep their quota slot.
func (r *Registry) SetCustomTagEnabled(ctx context.Context, ownerID, tagID string, enabled bool) error {
	if err := r.repo.SetEnabled(ctx, ownerID, tagID, enabled); err != nil {
		return fmt.Errorf("set custom tag enabled: %w", err)
	}
	return nil
}

// SetSystemTagEnabled enables or disables a system tag for everyone.
func (r *Registry) SetSystemTagEnabled(ctx context.Context, tagID string, enabled bool) error {
	if err := r.repo.SetEnabled(ctx, "", tagID, enabled); err != nil {
		return fmt.Errorf("set system tag enabled: %w", err)
	}
	return nil
}

// DeleteCustomTag deletes one of the owner's custom tags, freeing its quota slot.
func (r *Registry) DeleteCustomTag(ctx context.Context, ownerID, tagID string) error {
	if err := r.repo.Delete(ctx, ownerID, tagID); err != nil {
		return fmt.Errorf("delete custom tag: %w", err)
	}
	return nil
}
