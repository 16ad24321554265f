package server

import (
	"context"
	"time"

	"github.com/at-ishikawa/guanwo/internal/entry"
	"github.com/at-ishikawa/guanwo/internal/insight"
	"github.com/at-ishikawa/guanwo/internal/tag"
	"github.com/at-ishikawa/guanwo/internal/tracking"
)

//go:generate mockgen -source=interfaces.go -destination=../mocks/server/mock_interfaces.go -package=mock_server

type EntryService interface {
	Submit(ctx context.Context, req entry.SubmitRequest) (*entry.Entry, error)
	Retry(ctx context.Context, ownerID, entryID string) (*entry.Entry, error)
	Get(ctx context.Context, ownerID, entryID string) (*entry.Entry, error)
	List(ctx context.Context, filter entry.ListFilter) (entry.ListResult, error)
	CalendarSummary(ctx context.Context, ownerID string, month time.Time) ([]entry.DaySummary, error)
	Delete(ctx context.Context, ownerID, entryID string) error
	ListFlashMoments(ctx context.Context, ownerID string, limit, offset int) (entry.ListResult, error)
	ShareFlashMoment(ctx context.Context, ownerID, entryID string) (*entry.Entry, error)
}

type EntryTagReplacer interface {
	ReplaceEntryTags(ctx context.Context, ownerID, entryID string, tagIDs []string) (tag.EntryTagChange, error)
}

type InsightService interface {
	ListCards(ctx context.Context, filter insight.CardFilter) ([]insight.Card, error)
	GetCard(ctx context.Context, ownerID, id string) (*insight.Card, error)
	Hide(ctx context.Context, ownerID, id string) error
	Show(ctx context.Context, ownerID, id string) error
	Share(ctx context.Context, ownerID, id string) error
	ListConfigs(ctx context.Context, ownerID string) ([]insight.Config, error)
	CreateConfig(ctx context.Context, ownerID string, in insight.NewConfig) (*insight.Config, error)
	ToggleConfig(ctx context.Context, ownerID, id string, enabled bool) (*insight.Config, error)
	DeleteConfig(ctx context.Context, ownerID, id string) error
	ReorderConfigs(ctx context.Context, ownerID string, ids []string) error
}

type CardGenerator interface {
	Generate(ctx context.Context, req insight.GenerateRequest) (*insight.Card, error)
}

type TagRegistry interface {
	ListAvailableTags(ctx context.Context, ownerID string) ([]tag.Tag, error)
	CreateCustomTag(ctx context.Context, ownerID string, in tag.NewTag) (*tag.Tag, error)
}

type TagTrends interface {
	Overview(ctx context.Context, ownerID string, window tracking.Window) (*tracking.Overview, error)
	TagTrend(ctx context.Context, ownerID, tagID string, window tracking.Window) (*tracking.TagTrend, error)
}
