// Package entry stores journal entries and drives them through moderation and analysis.
package entry

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/at-ishikawa/guanwo/internal/tag"
)

// Status is the moderation state of an entry.
// An entry starts in sending and moves to exactly one terminal state per attempt.
type Status string

const (
	StatusSending  Status = "sending"
	StatusSuccess  Status = "success"
	StatusFailed   Status = "failed"
	StatusViolated Status = "violated"
)

// Retryable reports whether an entry in this status may be sent through moderation again.
func (s Status) Retryable() bool {
	return s == StatusFailed || s == StatusViolated
}

type Emotion string

const (
	EmotionPositive Emotion = "positive"
	EmotionNeutral  Emotion = "neutral"
	EmotionNegative Emotion = "negative"
)

func (e Emotion) Valid() bool {
	switch e {
	case EmotionPositive, EmotionNeutral, EmotionNegative:
		return true
	}
	return false
}

// Score maps an emotion onto -1, 0 or 1.
func (e Emotion) Score() int {
	switch e {
	case EmotionPositive:
		return 1
	case EmotionNegative:
		return -1
	}
	return 0
}

type SourceType string

const (
	SourceText  SourceType = "text"
	SourceVoice SourceType = "voice"
)

type UploadStatus string

const (
	UploadPending   UploadStatus = "pending"
	UploadUploading UploadStatus = "uploading"
	UploadSuccess   UploadStatus = "success"
	UploadFailed    UploadStatus = "failed"
)

func (s UploadStatus) Valid() bool {
	switch s {
	case UploadPending, UploadUploading, UploadSuccess, UploadFailed:
		return true
	}
	return false
}

// Events are the short event summaries extracted from an entry, stored as a JSON array.
type Events []string

func (e Events) Value() (driver.Value, error) {
	if e == nil {
		return nil, nil
	}
	b, err := json.Marshal([]string(e))
	if err != nil {
		return nil, fmt.Errorf("json.Marshal > %w", err)
	}
	return string(b), nil
}

func (e *Events) Scan(src any) error {
	var data []byte
	switch v := src.(type) {
	case nil:
		*e = nil
		return nil
	case string:
		data = []byte(v)
	case []byte:
		data = v
	default:
		return fmt.Errorf("unsupported events column type %T", src)
	}
	if len(data) == 0 {
		*e = nil
		return nil
	}
	var events []string
	if err := json.Unmarshal(data, &events); err != nil {
		return fmt.Errorf("json.Unmarshal > %w", err)
	}
	*e = events
	return nil
}

// Entry is a row of the entries table with its images and tags attached on read.
type Entry struct {
	ID            string     `db:"id"`
	OwnerID       string     `db:"owner_id"`
	Content       string     `db:"content"`
	Emotion       *Emotion   `db:"emotion"`
	Status        Status     `db:"status"`
	IsVisible     bool       `db:"is_visible"`
	SourceType    SourceType `db:"source_type"`
	WordCount     int        `db:"word_count"`
	AudioDuration *int       `db:"audio_duration"`
	AudioURL      *string    `db:"audio_url"`
	Events        Events     `db:"events"`
	// Attempt counts moderation runs; a retry starts a new attempt.
	Attempt       int       `db:"attempt"`
	FailureReason *string   `db:"failure_reason"`
	ShareCount    int       `db:"share_count"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`

	Images []Image   `db:"-"`
	Tags   []tag.Tag `db:"-"`
}

// EmotionOrNeutral returns the analyzed emotion, or neutral before analysis.
func (e Entry) EmotionOrNeutral() Emotion {
	if e.Emotion == nil {
		return EmotionNeutral
	}
	return *e.Emotion
}

type Image struct {
	ID           string       `db:"id"`
	EntryID      string       `db:"entry_id"`
	ImageURL     string       `db:"image_url"`
	ThumbnailURL *string      `db:"thumbnail_url"`
	UploadStatus UploadStatus `db:"upload_status"`
	IsLivePhoto  bool         `db:"is_live_photo"`
	SortOrder    int          `db:"sort_order"`
	CreatedAt    time.Time    `db:"created_at"`
}

// Analysis is the structure extracted from an entry's content.
type Analysis struct {
	Emotion  Emotion
	Events   []string
	TagNames []string
}

const (
	maxEvents        = 3
	maxAnalysisTags  = 3
	fallbackEventLen = 50
)

// FallbackAnalysis is applied when extraction fails: neutral emotion and the
// beginning of the content as the only event.
func FallbackAnalysis(content string) Analysis {
	return Analysis{
		Emotion: EmotionNeutral,
		Events:  []string{truncateRunes(content, fallbackEventLen)},
	}
}

// normalize bounds an analyzer result to what is stored.
func (a Analysis) normalize(content string) Analysis {
	if !a.Emotion.Valid() {
		a.Emotion = EmotionNeutral
	}
	events := make([]string, 0, maxEvents)
	for _, event := range a.Events {
		if event == "" {
			continue
		}
		events = append(events, event)
		if len(events) == maxEvents {
			break
		}
	}
	if len(events) == 0 {
		events = FallbackAnalysis(content).Events
	}
	a.Events = events
	if len(a.TagNames) > maxAnalysisTags {
		a.TagNames = a.TagNames[:maxAnalysisTags]
	}
	return a
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n])
}
