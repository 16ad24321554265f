// Package analysis extracts emotion, events and tags from journal entries with a language model.
package analysis

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/at-ishikawa/guanwo/internal/assets"
	"github.com/at-ishikawa/guanwo/internal/config"
	"github.com/at-ishikawa/guanwo/internal/entry"
	"github.com/at-ishikawa/guanwo/internal/inference"
	"github.com/at-ishikawa/guanwo/internal/tag"
	"github.com/at-ishikawa/guanwo/internal/validation"
)

var analysisTemperature = float32(0.3)

type response struct {
	Events  []string `json:"events" validate:"min=1,dive,notblank"`
	Emotion string   `json:"emotion" validate:"required,oneof=positive neutral negative"`
	Tags    []string `json:"tags"`
}

// Analyzer implements entry.Analyzer.
type Analyzer struct {
	client    inference.Client
	prompts   *assets.Prompts
	validator *validation.Validator
	aliases   map[string]string
	tagNames  []string
	modelKey  string
	logger    *slog.Logger
}

var _ entry.Analyzer = (*Analyzer)(nil)

// NewAnalyzer returns an Analyzer suggesting the seeded system tags.
func NewAnalyzer(client inference.Client, prompts *assets.Prompts, seeds []tag.Seed, cfg config.AnalysisConfig, logger *slog.Logger) (*Analyzer, error) {
	validate, err := validation.New("json")
	if err != nil {
		return nil, fmt.Errorf("validation.New() > %w", err)
	}
	tagNames := make([]string, 0, len(seeds))
	for _, s := range seeds {
		tagNames = append(tagNames, s.Name)
	}
	return &Analyzer{
		client:    client,
		prompts:   prompts,
		validator: validate,
		aliases:   tag.AliasIndex(seeds),
		tagNames:  tagNames,
		modelKey:  cfg.ModelKey,
		logger:    logger.With("component", "analysis"),
	}, nil
}

func (a *Analyzer) Analyze(ctx context.Context, content string) (entry.Analysis, error) {
	prompt, err := a.prompts.Render(assets.PromptEntryAnalysis, assets.EntryAnalysisData{
		Content:  content,
		TagNames: a.tagNames,
	})
	if err != nil {
		return entry.Analysis{}, fmt.Errorf("prompts.Render() > %w", err)
	}

	output, err := a.client.Complete(ctx, inference.CompletionRequest{
		System:      prompt.System,
		User:        prompt.User,
		ModelKey:    a.modelKey,
		Temperature: &analysisTemperature,
	})
	if err != nil {
		return entry.Analysis{}, fmt.Errorf("client.Complete() > %w", err)
	}

	var res response
	if err := inference.DecodeJSONObject(output, &res); err != nil {
		return entry.Analysis{}, err
	}
	violations, err := a.validator.Struct(res)
	if err != nil {
		return entry.Analysis{}, fmt.Errorf("validator.Struct() > %w", err)
	}
	if len(violations) > 0 {
		return entry.Analysis{}, fmt.Errorf("invalid analysis: %s", validation.Join(violations))
	}

	events := make([]string, 0, len(res.Events))
	for _, event := range res.Events {
		events = append(events, strings.TrimSpace(event))
	}
	return entry.Analysis{
		Emotion:  entry.Emotion(res.Emotion),
		Events:   events,
		TagNames: a.normalizeTags(res.Tags),
	}, nil
}

// normalizeTags maps suggested names and aliases onto system tag names.
// Names outside the alias table are dropped.
func (a *Analyzer) normalizeTags(names []string) []string {
	seen := make(map[string]bool, len(names))
	result := make([]string, 0, len(names))
	for _, name := range names {
		canonical, ok := a.aliases[strings.TrimSpace(name)]
		if !ok {
			a.logger.Debug("dropping unknown tag suggestion", slog.String("name", name))
			continue
		}
		if seen[canonical] {
			continue
		}
		seen[canonical] = true
		result = append(result, canonical)
	}
	return result
}
