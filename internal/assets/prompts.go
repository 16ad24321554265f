package assets

import (
	"bytes"
	"embed"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"text/template"
	"time"
)

//go:embed templates/prompts/*.tmpl
var embeddedPrompts embed.FS

type PromptName string

const (
	PromptEntryAnalysis       PromptName = "entry_analysis"
	PromptDailyAffirmation    PromptName = "daily_affirmation"
	PromptWeeklyEmotionMap    PromptName = "weekly_emotion_map"
	PromptWeeklyGratitudeList PromptName = "weekly_gratitude_list"
	PromptCustomCard          PromptName = "custom_card"
)

var promptNames = []PromptName{
	PromptEntryAnalysis,
	PromptDailyAffirmation,
	PromptWeeklyEmotionMap,
	PromptWeeklyGratitudeList,
	PromptCustomCard,
}

// Prompt is a rendered system and user message pair.
type Prompt struct {
	System string
	User   string
}

// EntryAnalysisData is the data of the entry_analysis prompt.
type EntryAnalysisData struct {
	Content  string
	TagNames []string
}

// InsightData is the data shared by every insight card prompt,
// including the user's own custom prompts.
type InsightData struct {
	WindowStart time.Time
	WindowEnd   time.Time
	Entries     []InsightEntry
	Emotions    EmotionStats
	// Mood is the dominant emotion of the window: positive, negative or neutral.
	Mood        string
	DailyScores []DailyScore
	Tags        []TagStat
}

type InsightEntry struct {
	CreatedAt time.Time
	Emotion   string
	Content   string
	Events    []string
	Tags      []string
}

type EmotionStats struct {
	Positive      int
	Neutral       int
	Negative      int
	PositiveRatio float64
}

type DailyScore struct {
	Date  string
	Score float64
	Count int
}

type TagStat struct {
	Name  string
	Count int
}

// CustomCardData wraps InsightData with the rendered user instruction.
type CustomCardData struct {
	InsightData
	Name        string
	Instruction string
}

// Prompts holds the parsed prompt templates. Every template defines a
// "system" and a "user" block.
type Prompts struct {
	templates map[PromptName]*template.Template
}

// LoadPrompts parses the embedded prompts. A <name>.tmpl file in directory
// replaces the embedded prompt of the same name.
func LoadPrompts(directory string, logger *slog.Logger) (*Prompts, error) {
	prompts := &Prompts{templates: make(map[PromptName]*template.Template, len(promptNames))}
	for _, name := range promptNames {
		fileName := string(name) + ".tmpl"
		embedded, err := embeddedPrompts.ReadFile("templates/prompts/" + fileName)
		if err != nil {
			return nil, fmt.Errorf("embeddedPrompts.ReadFile(%s) > %w", fileName, err)
		}

		var overridePath string
		if directory != "" {
			overridePath = filepath.Join(directory, fileName)
		}
		tmpl, err := parseTemplateWithFallback(overridePath, fileName, string(embedded), logger)
		if err != nil {
			return nil, err
		}
		for _, block := range []string{"system", "user"} {
			if tmpl.Lookup(block) == nil {
				return nil, fmt.Errorf("prompt %s does not define %q", name, block)
			}
		}
		prompts.templates[name] = tmpl
	}
	return prompts, nil
}

// Render executes the system and user blocks of a prompt.
func (p *Prompts) Render(name PromptName, data any) (Prompt, error) {
	tmpl, ok := p.templates[name]
	if !ok {
		return Prompt{}, fmt.Errorf("unknown prompt %s", name)
	}

	var system, user bytes.Buffer
	if err := tmpl.ExecuteTemplate(&system, "system", data); err != nil {
		return Prompt{}, fmt.Errorf("render %s system prompt: %w", name, err)
	}
	if err := tmpl.ExecuteTemplate(&user, "user", data); err != nil {
		return Prompt{}, fmt.Errorf("render %s user prompt: %w", name, err)
	}
	return Prompt{
		System: strings.TrimSpace(system.String()),
		User:   strings.TrimSpace(user.String()),
	}, nil
}

// RenderText executes text, a template written by a user, over data.
func RenderText(name, text string, data any) (string, error) {
	tmpl, err := newTemplate(name).Parse(text)
	if err != nil {
		return "", fmt.Errorf("parse %s: %w", name, err)
	}
	var out bytes.Buffer
	if err := tmpl.Execute(&out, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return strings.TrimSpace(out.String()), nil
}
