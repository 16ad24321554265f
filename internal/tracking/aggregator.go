// Package tracking aggregates per-tag trends and activity over the visible entries of an owner.
package tracking

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/at-ishikawa/guanwo/internal/apperr"
	"github.com/at-ishikawa/guanwo/internal/config"
	"github.com/at-ishikawa/guanwo/internal/entry"
	"github.com/at-ishikawa/guanwo/internal/tag"
)

//go:generate mockgen -source=aggregator.go -destination=../mocks/tracking/mock_aggregator.go -package=mock_tracking

type EntryLister interface {
	List(ctx context.Context, filter entry.ListFilter) ([]entry.Entry, error)
}

type TagLister interface {
	ListAvailableTags(ctx context.Context, ownerID string) ([]tag.Tag, error)
	TagsForEntries(ctx context.Context, entryIDs []string) (map[string][]tag.Tag, error)
}

type Direction string

const (
	DirectionUp   Direction = "up"
	DirectionDown Direction = "down"
	DirectionFlat Direction = "flat"
)

const (
	maxRepresentatives = 3
	dailyBucketLimit   = 14 * 24 * time.Hour
)

type Bucket struct {
	Start time.Time
	End   time.Time
	Count int
}

// EmotionPoint is the mean emotion score (-1 to 1) of one day.
type EmotionPoint struct {
	Date  string
	Score float64
	Count int
}

type TagTrend struct {
	Tag           tag.Tag
	Window        Window
	Count         int
	HasEnoughData bool
	// Direction, Buckets and the fields below are only set with enough data.
	Direction           Direction
	Buckets             []Bucket
	Representatives     []entry.Entry
	EmotionDistribution map[entry.Emotion]int
	EmotionCurve        []EmotionPoint
}

type TagSummary struct {
	Tag           tag.Tag
	Count         int
	LastSeen      *time.Time
	HasEnoughData bool
}

type HeatmapDay struct {
	Date      string
	Count     int
	WordCount int
}

type Overview struct {
	Window        Window
	TotalEntries  int
	HasEnoughData bool
	Tags          []TagSummary
	Heatmap       []HeatmapDay
}

type Aggregator struct {
	entries    EntryLister
	tags       TagLister
	minSamples int
	location   *time.Location
	logger     *slog.Logger
}

func NewAggregator(entries EntryLister, tags TagLister, cfg *config.Config, logger *slog.Logger) *Aggregator {
	return &Aggregator{
		entries:    entries,
		tags:       tags,
		minSamples: cfg.Tracking.MinSamples,
		location:   cfg.App.Location(),
		logger:     logger.With("component", "tracking"),
	}
}

// TagTrend aggregates the owner's visible entries tagged with tagID in window.
// Fewer than the minimum samples is reported with HasEnoughData=false.
func (a *Aggregator) TagTrend(ctx context.Context, ownerID, tagID string, window Window) (*TagTrend, error) {
	if err := window.Validate(); err != nil {
		return nil, err
	}
	t, err := a.availableTag(ctx, ownerID, tagID)
	if err != nil {
		return nil, err
	}

	entries, err := a.entries.List(ctx, entry.ListFilter{
		OwnerID:   ownerID,
		From:      window.Start,
		To:        window.End,
		TagID:     tagID,
		Ascending: true,
	})
	if err != nil {
		return nil, fmt.Errorf("list tagged entries: %w", err)
	}

	trend := &TagTrend{
		Tag:    t,
		Window: window,
		Count:  len(entries),
	}
	if len(entries) < a.minSamples {
		a.logger.Debug("not enough samples for a tag trend",
			slog.String("tag_id", tagID),
			slog.Int("count", len(entries)),
			slog.Int("min_samples", a.minSamples),
		)
		return trend, nil
	}

	trend.HasEnoughData = true
	trend.Direction = direction(entries, window)
	trend.Buckets = a.buckets(entries, window)
	trend.Representatives = representatives(entries)
	trend.EmotionDistribution = make(map[entry.Emotion]int, 3)
	for _, e := range entries {
		trend.EmotionDistribution[e.EmotionOrNeutral()]++
	}
	trend.EmotionCurve = EmotionCurve(entries, a.location)
	return trend, nil
}

func (a *Aggregator) availableTag(ctx context.Context, ownerID, tagID string) (tag.Tag, error) {
	tags, err := a.tags.ListAvailableTags(ctx, ownerID)
	if err != nil {
		return tag.Tag{}, fmt.Errorf("list available tags: %w", err)
	}
	for _, t := range tags {
		if t.ID == tagID {
			return t, nil
		}
	}
	return tag.Tag{}, apperr.NotFound("tag %s", tagID)
}

// direction compares the entry counts of the two halves of the window.
func direction(entries []entry.Entry, window Window) Direction {
	mid := window.Start.Add(window.End.Sub(window.Start) / 2)
	var first, second int
	for _, e := range entries {
		if e.CreatedAt.Before(mid) {
			first++
		} else {
			second++
		}
	}
	threshold := max(1, len(entries)/10)
	diff := second - first
	switch {
	case diff > threshold:
		return DirectionUp
	case -diff > threshold:
		return DirectionDown
	}
	return DirectionFlat
}

// buckets counts entries per local day, or per week for windows longer than two weeks.
func (a *Aggregator) buckets(entries []entry.Entry, window Window) []Bucket {
	step := 1
	if window.End.Sub(window.Start) > dailyBucketLimit {
		step = 7
	}

	var buckets []Bucket
	start := window.Start.In(a.location)
	for start.Before(window.End) {
		end := start.AddDate(0, 0, step)
		if end.After(window.End) {
			end = window.End
		}
		buckets = append(buckets, Bucket{Start: start, End: end})
		start = end
	}

	i := 0
	for _, e := range entries {
		for i < len(buckets) && !e.CreatedAt.Before(buckets[i].End) {
			i++
		}
		if i == len(buckets) {
			break
		}
		buckets[i].Count++
	}
	return buckets
}

// representatives picks the longest entries, most recent first on ties.
func representatives(entries []entry.Entry) []entry.Entry {
	sorted := make([]entry.Entry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].WordCount != sorted[j].WordCount {
			return sorted[i].WordCount > sorted[j].WordCount
		}
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})
	if len(sorted) > maxRepresentatives {
		sorted = sorted[:maxRepresentatives]
	}
	return sorted
}

// EmotionCurve returns the mean emotion score of every local day with entries, in date order.
func EmotionCurve(entries []entry.Entry, loc *time.Location) []EmotionPoint {
	type acc struct {
		sum   int
		count int
	}
	byDay := make(map[string]*acc)
	var dates []string
	for _, e := range entries {
		date := e.CreatedAt.In(loc).Format(time.DateOnly)
		day, ok := byDay[date]
		if !ok {
			day = &acc{}
			byDay[date] = day
			dates = append(dates, date)
		}
		day.sum += e.EmotionOrNeutral().Score()
		day.count++
	}
	sort.Strings(dates)

	points := make([]EmotionPoint, 0, len(dates))
	for _, date := range dates {
		day := byDay[date]
		points = append(points, EmotionPoint{
			Date:  date,
			Score: float64(day.sum) / float64(day.count),
			Count: day.count,
		})
	}
	return points
}

// Overview aggregates every available tag of the owner over window, ranked by
// count and then by the most recent use, with a per-day activity heatmap.
func (a *Aggregator) Overview(ctx context.Context, ownerID string, window Window) (*Overview, error) {
	if err := window.Validate(); err != nil {
		return nil, err
	}
	entries, err := a.entries.List(ctx, entry.ListFilter{
		OwnerID:   ownerID,
		From:      window.Start,
		To:        window.End,
		Ascending: true,
	})
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	available, err := a.tags.ListAvailableTags(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list available tags: %w", err)
	}

	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.ID)
	}
	linked := map[string][]tag.Tag{}
	if len(ids) > 0 {
		linked, err = a.tags.TagsForEntries(ctx, ids)
		if err != nil {
			return nil, fmt.Errorf("tags for entries: %w", err)
		}
	}

	summaries := make([]TagSummary, len(available))
	index := make(map[string]int, len(available))
	for i, t := range available {
		summaries[i] = TagSummary{Tag: t}
		index[t.ID] = i
	}
	for _, e := range entries {
		for _, t := range linked[e.ID] {
			i, ok := index[t.ID]
			if !ok {
				continue
			}
			summaries[i].Count++
			createdAt := e.CreatedAt
			if summaries[i].LastSeen == nil || createdAt.After(*summaries[i].LastSeen) {
				summaries[i].LastSeen = &createdAt
			}
		}
	}
	for i := range summaries {
		summaries[i].HasEnoughData = summaries[i].Count >= a.minSamples
	}
	sort.SliceStable(summaries, func(i, j int) bool {
		if summaries[i].Count != summaries[j].Count {
			return summaries[i].Count > summaries[j].Count
		}
		return lastSeenAfter(summaries[i].LastSeen, summaries[j].LastSeen)
	})

	return &Overview{
		Window:        window,
		TotalEntries:  len(entries),
		HasEnoughData: len(entries) >= a.minSamples,
		Tags:          summaries,
		Heatmap:       a.heatmap(entries, window),
	}, nil
}

func lastSeenAfter(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a != nil
	}
	return a.After(*b)
}

func (a *Aggregator) heatmap(entries []entry.Entry, window Window) []HeatmapDay {
	days := window.days(a.location)
	heatmap := make([]HeatmapDay, len(days))
	index := make(map[string]int, len(days))
	for i, day := range days {
		date := day.Format(time.DateOnly)
		heatmap[i] = HeatmapDay{Date: date}
		index[date] = i
	}
	for _, e := range entries {
		i, ok := index[e.CreatedAt.In(a.location).Format(time.DateOnly)]
		if !ok {
			continue
		}
		heatmap[i].Count++
		heatmap[i].WordCount += e.WordCount
	}
	return heatmap
}
