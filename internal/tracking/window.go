package tracking

import (
	"time"

	"github.com/at-ishikawa/guanwo/internal/apperr"
)

// Window is the half-open time range [Start, End).
type Window struct {
	Start time.Time
	End   time.Time
}

// MaxWindowDays bounds the span of a window; heatmaps and buckets grow with it.
const MaxWindowDays = 366

func (w Window) Validate() error {
	if w.Start.IsZero() || w.End.IsZero() {
		return apperr.Invalid("window", "window start and end are required")
	}
	if !w.Start.Before(w.End) {
		return apperr.Invalid("window", "window start must be before its end")
	}
	if w.End.After(w.Start.AddDate(0, 0, MaxWindowDays)) {
		return apperr.Invalid("end", "window must not span more than %d days", MaxWindowDays)
	}
	return nil
}

func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

type RangeKind string

const (
	RangeWeek  RangeKind = "week"
	RangeMonth RangeKind = "month"
)

// ResolveRange returns the current week (Monday 00:00 to the next Monday) or
// the current calendar month of now in loc.
func ResolveRange(kind RangeKind, now time.Time, loc *time.Location) (Window, error) {
	if loc == nil {
		loc = time.UTC
	}
	local := now.In(loc)
	midnight := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)

	switch kind {
	case RangeWeek:
		daysSinceMonday := (int(midnight.Weekday()) + 6) % 7
		start := midnight.AddDate(0, 0, -daysSinceMonday)
		return Window{Start: start, End: start.AddDate(0, 0, 7)}, nil
	case RangeMonth:
		start := time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, loc)
		return Window{Start: start, End: start.AddDate(0, 1, 0)}, nil
	}
	return Window{}, apperr.Invalid("range", "unknown range %q", kind)
}

// days returns the start of every local day overlapping w.
func (w Window) days(loc *time.Location) []time.Time {
	start := w.Start.In(loc)
	day := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, loc)
	var days []time.Time
	for ; day.Before(w.End); day = day.AddDate(0, 0, 1) {
		days = append(days, day)
	}
	return days
}
