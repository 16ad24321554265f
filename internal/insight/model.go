// Package insight generates insight cards from journal entries and manages
// the cards and the owners' custom card configurations.
package insight

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

type CardType string

const (
	CardDailyAffirmation    CardType = "daily_affirmation"
	CardWeeklyEmotionMap    CardType = "weekly_emotion_map"
	CardWeeklyGratitudeList CardType = "weekly_gratitude_list"
	CardCustom              CardType = "custom"
)

var CardTypes = []CardType{
	CardDailyAffirmation,
	CardWeeklyEmotionMap,
	CardWeeklyGratitudeList,
	CardCustom,
}

func (t CardType) Valid() bool {
	switch t {
	case CardDailyAffirmation, CardWeeklyEmotionMap, CardWeeklyGratitudeList, CardCustom:
		return true
	}
	return false
}

// Title is the heading a card type is shown with.
func (t CardType) Title() string {
	switch t {
	case CardDailyAffirmation:
		return "每日寄语"
	case CardWeeklyEmotionMap:
		return "每周情绪地图"
	case CardWeeklyGratitudeList:
		return "每周感恩清单"
	}
	return "自定义卡片"
}

type TimeRange string

const (
	RangeDaily   TimeRange = "daily"
	RangeWeekly  TimeRange = "weekly"
	RangeMonthly TimeRange = "monthly"
)

func (r TimeRange) Valid() bool {
	switch r {
	case RangeDaily, RangeWeekly, RangeMonthly:
		return true
	}
	return false
}

// Start returns the beginning of the range ending at end.
func (r TimeRange) Start(end time.Time) time.Time {
	switch r {
	case RangeWeekly:
		return end.Add(-7 * 24 * time.Hour)
	case RangeMonthly:
		return end.AddDate(0, -1, 0)
	}
	return end.Add(-24 * time.Hour)
}

type RunStatus string

const (
	RunNever            RunStatus = "never"
	RunSucceeded        RunStatus = "succeeded"
	RunInsufficientData RunStatus = "insufficient_data"
	RunFailed           RunStatus = "failed"
)

// Content is the JSON body of a card.
type Content json.RawMessage

func (c Content) Value() (driver.Value, error) {
	if len(c) == 0 {
		return "{}", nil
	}
	return string(c), nil
}

func (c *Content) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*c = nil
	case string:
		*c = Content(v)
	case []byte:
		*c = append(Content(nil), v...)
	default:
		return fmt.Errorf("unsupported content column type %T", src)
	}
	return nil
}

func (c Content) MarshalJSON() ([]byte, error) {
	if len(c) == 0 {
		return []byte("null"), nil
	}
	return json.RawMessage(c).MarshalJSON()
}

func (c *Content) UnmarshalJSON(data []byte) error {
	*c = append(Content(nil), data...)
	return nil
}

// Card is a row of the insight_cards table.
type Card struct {
	ID            string    `db:"id"`
	OwnerID       string    `db:"owner_id"`
	CardType      CardType  `db:"card_type"`
	Content       Content   `db:"content"`
	DataStartTime time.Time `db:"data_start_time"`
	DataEndTime   time.Time `db:"data_end_time"`
	IsViewed      bool      `db:"is_viewed"`
	IsHidden      bool      `db:"is_hidden"`
	ShareCount    int       `db:"share_count"`
	ViewCount     int       `db:"view_count"`
	ConfigID      *string   `db:"config_id"`
	GeneratedAt   time.Time `db:"generated_at"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

// Config is a row of the insight_card_configs table: a user-defined card.
type Config struct {
	ID        string    `db:"id"`
	OwnerID   string    `db:"owner_id"`
	Name      string    `db:"name"`
	TimeRange TimeRange `db:"time_range"`
	Prompt    string    `db:"prompt"`
	SortOrder int       `db:"sort_order"`
	IsEnabled bool      `db:"is_enabled"`
	// EnabledSlot is held while the config is enabled and bounds the enabled configs per owner.
	EnabledSlot   *int       `db:"enabled_slot"`
	LastRunStatus RunStatus  `db:"last_run_status"`
	LastRunError  *string    `db:"last_run_error"`
	LastRunAt     *time.Time `db:"last_run_at"`
	CreatedAt     time.Time  `db:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at"`
}

// AffirmationContent is the content of a daily affirmation card.
type AffirmationContent struct {
	Affirmation string `json:"affirmation" validate:"notblank,max=500"`
}

// EmotionMapContent is the content of a weekly emotion map card. Only the
// summary and the highlighted days come from the model.
type EmotionMapContent struct {
	Summary      string       `json:"summary" validate:"notblank,max=1000"`
	BestDay      string       `json:"best_day,omitempty" validate:"omitempty,datetime=2006-01-02"`
	WorstDay     string       `json:"worst_day,omitempty" validate:"omitempty,datetime=2006-01-02"`
	EmotionStats EmotionStats `json:"emotion_stats"`
	DailyScores  []DailyScore `json:"daily_scores"`
	TagStats     []TagStat    `json:"tag_stats"`
}

type EmotionStats struct {
	Positive      int     `json:"positive"`
	Neutral       int     `json:"neutral"`
	Negative      int     `json:"negative"`
	PositiveRatio float64 `json:"positive_ratio"`
}

type DailyScore struct {
	Date  string  `json:"date"`
	Score float64 `json:"score"`
	Count int     `json:"count"`
}

type TagStat struct {
	TagID string `json:"tag_id"`
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// GratitudeContent is the content of a weekly gratitude list card.
type GratitudeContent struct {
	Items   []GratitudeItem `json:"items" validate:"min=1,max=5,dive"`
	Closing string          `json:"closing,omitempty" validate:"max=200"`
}

type GratitudeItem struct {
	Text string `json:"text" validate:"notblank,max=200"`
	Date string `json:"date,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

// CustomContent is the content of a card generated from a Config.
type CustomContent struct {
	Title string `json:"title" validate:"notblank,max=50"`
	Body  string `json:"body" validate:"notblank,max=2000"`
}
