package server

import (
	"encoding/json"
	"time"

	"github.com/at-ishikawa/guanwo/internal/entry"
	"github.com/at-ishikawa/guanwo/internal/insight"
	"github.com/at-ishikawa/guanwo/internal/tag"
	"github.com/at-ishikawa/guanwo/internal/tracking"
)

type Tag struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Type        string    `json:"tag_type"`
	IsEnabled   bool      `json:"is_enabled"`
	Color       string    `json:"color,omitempty"`
	Icon        string    `json:"icon,omitempty"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func toTag(t tag.Tag) Tag {
	return Tag{
		ID:          t.ID,
		Name:        t.Name,
		Type:        string(t.Type),
		IsEnabled:   t.IsEnabled,
		Color:       t.Color,
		Icon:        t.Icon,
		Description: t.Description,
		CreatedAt:   t.CreatedAt,
	}
}

func toTags(tags []tag.Tag) []Tag {
	out := make([]Tag, 0, len(tags))
	for _, t := range tags {
		out = append(out, toTag(t))
	}
	return out
}

type Image struct {
	ID           string  `json:"id"`
	ImageURL     string  `json:"image_url"`
	ThumbnailURL *string `json:"thumbnail_url,omitempty"`
	UploadStatus string  `json:"upload_status"`
	IsLivePhoto  bool    `json:"is_live_photo"`
	SortOrder    int     `json:"sort_order"`
}

type Entry struct {
	ID            string    `json:"id"`
	Content       string    `json:"content"`
	Emotion       *string   `json:"emotion"`
	Status        string    `json:"status"`
	IsVisible     bool      `json:"is_visible"`
	SourceType    string    `json:"source_type"`
	WordCount     int       `json:"word_count"`
	AudioDuration *int      `json:"audio_duration,omitempty"`
	AudioURL      *string   `json:"audio_url,omitempty"`
	Events        []string  `json:"events"`
	Attempt       int       `json:"attempt"`
	FailureReason *string   `json:"failure_reason,omitempty"`
	ShareCount    int       `json:"share_count"`
	Images        []Image   `json:"images"`
	Tags          []Tag     `json:"tags"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func toEntry(e entry.Entry) Entry {
	out := Entry{
		ID:            e.ID,
		Content:       e.Content,
		Status:        string(e.Status),
		IsVisible:     e.IsVisible,
		SourceType:    string(e.SourceType),
		WordCount:     e.WordCount,
		AudioDuration: e.AudioDuration,
		AudioURL:      e.AudioURL,
		Events:        e.Events,
		Attempt:       e.Attempt,
		FailureReason: e.FailureReason,
		ShareCount:    e.ShareCount,
		Images:        make([]Image, 0, len(e.Images)),
		Tags:          toTags(e.Tags),
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
	if e.Emotion != nil {
		emotion := string(*e.Emotion)
		out.Emotion = &emotion
	}
	if out.Events == nil {
		out.Events = []string{}
	}
	for _, img := range e.Images {
		out.Images = append(out.Images, Image{
			ID:           img.ID,
			ImageURL:     img.ImageURL,
			ThumbnailURL: img.ThumbnailURL,
			UploadStatus: string(img.UploadStatus),
			IsLivePhoto:  img.IsLivePhoto,
			SortOrder:    img.SortOrder,
		})
	}
	return out
}

func toEntries(entries []entry.Entry) []Entry {
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		out = append(out, toEntry(e))
	}
	return out
}

type Card struct {
	ID            string          `json:"id"`
	CardType      string          `json:"card_type"`
	Content       json.RawMessage `json:"content"`
	DataStartTime time.Time       `json:"data_start_time"`
	DataEndTime   time.Time       `json:"data_end_time"`
	IsViewed      bool            `json:"is_viewed"`
	IsHidden      bool            `json:"is_hidden"`
	ShareCount    int             `json:"share_count"`
	ViewCount     int             `json:"view_count"`
	ConfigID      *string         `json:"config_id,omitempty"`
	GeneratedAt   time.Time       `json:"generated_at"`
}

func toCard(c insight.Card) Card {
	return Card{
		ID:            c.ID,
		CardType:      string(c.CardType),
		Content:       json.RawMessage(c.Content),
		DataStartTime: c.DataStartTime,
		DataEndTime:   c.DataEndTime,
		IsViewed:      c.IsViewed,
		IsHidden:      c.IsHidden,
		ShareCount:    c.ShareCount,
		ViewCount:     c.ViewCount,
		ConfigID:      c.ConfigID,
		GeneratedAt:   c.GeneratedAt,
	}
}

type CardConfig struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	TimeRange     string     `json:"time_range"`
	Prompt        string     `json:"prompt"`
	SortOrder     int        `json:"sort_order"`
	IsEnabled     bool       `json:"is_enabled"`
	LastRunStatus string     `json:"last_run_status"`
	LastRunError  *string    `json:"last_run_error,omitempty"`
	LastRunAt     *time.Time `json:"last_run_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

func toCardConfig(c insight.Config) CardConfig {
	return CardConfig{
		ID:            c.ID,
		Name:          c.Name,
		TimeRange:     string(c.TimeRange),
		Prompt:        c.Prompt,
		SortOrder:     c.SortOrder,
		IsEnabled:     c.IsEnabled,
		LastRunStatus: string(c.LastRunStatus),
		LastRunError:  c.LastRunError,
		LastRunAt:     c.LastRunAt,
		CreatedAt:     c.CreatedAt,
	}
}

type Window struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

type TagSummary struct {
	Tag           Tag        `json:"tag"`
	Count         int        `json:"count"`
	LastSeen      *time.Time `json:"last_seen,omitempty"`
	HasEnoughData bool       `json:"has_enough_data"`
}

type HeatmapDay struct {
	Date      string `json:"date"`
	Count     int    `json:"count"`
	WordCount int    `json:"word_count"`
}

type TagOverview struct {
	Window        Window       `json:"window"`
	TotalEntries  int          `json:"total_entries"`
	HasEnoughData bool         `json:"has_enough_data"`
	Tags          []TagSummary `json:"tags"`
	Heatmap       []HeatmapDay `json:"heatmap"`
}

func toTagOverview(o tracking.Overview) TagOverview {
	out := TagOverview{
		Window:        Window(o.Window),
		TotalEntries:  o.TotalEntries,
		HasEnoughData: o.HasEnoughData,
		Tags:          make([]TagSummary, 0, len(o.Tags)),
		Heatmap:       make([]HeatmapDay, 0, len(o.Heatmap)),
	}
	for _, s := range o.Tags {
		out.Tags = append(out.Tags, TagSummary{
			Tag:           toTag(s.Tag),
			Count:         s.Count,
			LastSeen:      s.LastSeen,
			HasEnoughData: s.HasEnoughData,
		})
	}
	for _, d := range o.Heatmap {
		out.Heatmap = append(out.Heatmap, HeatmapDay(d))
	}
	return out
}

type Bucket struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Count int       `json:"count"`
}

type EmotionPoint struct {
	Date  string  `json:"date"`
	Score float64 `json:"score"`
	Count int     `json:"count"`
}

type TagDetail struct {
	Tag                 Tag            `json:"tag"`
	Window              Window         `json:"window"`
	Count               int            `json:"count"`
	HasEnoughData       bool           `json:"has_enough_data"`
	Direction           string         `json:"direction,omitempty"`
	Buckets             []Bucket       `json:"buckets,omitempty"`
	Representatives     []Entry        `json:"representatives,omitempty"`
	EmotionDistribution map[string]int `json:"emotion_distribution,omitempty"`
	EmotionCurve        []EmotionPoint `json:"emotion_curve,omitempty"`
}

func toTagDetail(t tracking.TagTrend) TagDetail {
	out := TagDetail{
		Tag:           toTag(t.Tag),
		Window:        Window(t.Window),
		Count:         t.Count,
		HasEnoughData: t.HasEnoughData,
		Direction:     string(t.Direction),
	}
	for _, b := range t.Buckets {
		out.Buckets = append(out.Buckets, Bucket(b))
	}
	for _, e := range t.Representatives {
		out.Representatives = append(out.Representatives, toEntry(e))
	}
	if len(t.EmotionDistribution) > 0 {
		out.EmotionDistribution = make(map[string]int, len(t.EmotionDistribution))
		for emotion, n := range t.EmotionDistribution {
			out.EmotionDistribution[string(emotion)] = n
		}
	}
	for _, p := range t.EmotionCurve {
		out.EmotionCurve = append(out.EmotionCurve, EmotionPoint(p))
	}
	return out
}
