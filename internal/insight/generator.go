package insight

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/at-ishikawa/guanwo/internal/apperr"
	"github.com/at-ishikawa/guanwo/internal/assets"
	"github.com/at-ishikawa/guanwo/internal/config"
	"github.com/at-ishikawa/guanwo/internal/database"
	"github.com/at-ishikawa/guanwo/internal/entry"
	"github.com/at-ishikawa/guanwo/internal/inference"
	"github.com/at-ishikawa/guanwo/internal/tag"
	"github.com/at-ishikawa/guanwo/internal/tracking"
	"github.com/at-ishikawa/guanwo/internal/validation"
)

//go:generate mockgen -source=generator.go -destination=../mocks/insight/mock_generator.go -package=mock_insight

type EntrySource interface {
	List(ctx context.Context, filter entry.ListFilter) ([]entry.Entry, error)
}

type TagSource interface {
	TagsForEntries(ctx context.Context, entryIDs []string) (map[string][]tag.Tag, error)
}

type OverviewSource interface {
	Overview(ctx context.Context, ownerID string, window tracking.Window) (*tracking.Overview, error)
}

const (
	maxRunErrorLength = 500
	moodRatio         = 0.6
	recordRunTimeout  = 5 * time.Second
)

var temperatures = map[CardType]float32{
	CardDailyAffirmation:    0.8,
	CardWeeklyEmotionMap:    0.5,
	CardWeeklyGratitudeList: 0.7,
	CardCustom:              0.7,
}

type GenerateRequest struct {
	OwnerID  string
	CardType CardType
	// ConfigID is required for custom cards and ignored otherwise.
	ConfigID string
	// Now is the end of the data window; the zero value means the current time.
	Now time.Time
}

type GeneratorDeps struct {
	Cards    CardRepository
	Configs  ConfigRepository
	Entries  EntrySource
	Tags     TagSource
	Tracking OverviewSource
	Client   inference.Client
	Prompts  *assets.Prompts
}

// Generator builds insight cards: it gathers the entries of a window, renders
// the card's prompt, asks the model and stores the validated result.
type Generator struct {
	cards                CardRepository
	configs              ConfigRepository
	entries              EntrySource
	tags                 TagSource
	tracking             OverviewSource
	client               inference.Client
	prompts              *assets.Prompts
	validator            *validation.Validator
	modelKey             string
	timeout              time.Duration
	minEmotionMapEntries int
	location             *time.Location
	logger               *slog.Logger
}

func NewGenerator(deps GeneratorDeps, cfg *config.Config, logger *slog.Logger) (*Generator, error) {
	validate, err := validation.New("json")
	if err != nil {
		return nil, fmt.Errorf("validation.New() > %w", err)
	}
	return &Generator{
		cards:                deps.Cards,
		configs:              deps.Configs,
		entries:              deps.Entries,
		tags:                 deps.Tags,
		tracking:             deps.Tracking,
		client:               deps.Client,
		prompts:              deps.Prompts,
		validator:            validate,
		modelKey:             cfg.Insights.ModelKey,
		timeout:              cfg.Insights.GenerationTimeout(),
		minEmotionMapEntries: cfg.Insights.MinEmotionMapEntries,
		location:             cfg.App.Location(),
		logger:               logger.With("component", "insight"),
	}, nil
}

// Window returns the data window of a card type ending at now. Custom cards
// use the time range of their config.
func Window(cardType CardType, cfg *Config, now time.Time) tracking.Window {
	r := RangeDaily
	switch {
	case cardType == CardCustom && cfg != nil:
		r = cfg.TimeRange
	case cardType == CardWeeklyEmotionMap, cardType == CardWeeklyGratitudeList:
		r = RangeWeekly
	}
	return tracking.Window{Start: r.Start(now), End: now}
}

// Generate creates one card. Nothing is stored unless the whole pipeline
// succeeds; custom runs record their outcome on the config either way.
func (g *Generator) Generate(ctx context.Context, req GenerateRequest) (*Card, error) {
	if strings.TrimSpace(req.OwnerID) == "" {
		return nil, apperr.Invalid("owner_id", "owner is required")
	}
	if !req.CardType.Valid() {
		return nil, apperr.Invalid("card_type", "unknown card type %q", req.CardType)
	}
	now := req.Now
	if now.IsZero() {
		now = time.Now()
	}
	now = database.Timestamp(now)

	var cfg *Config
	if req.CardType == CardCustom {
		if req.ConfigID == "" {
			return nil, apperr.Invalid("config_id", "custom cards need a config")
		}
		var err error
		cfg, err = g.configs.Get(ctx, req.OwnerID, req.ConfigID)
		if err != nil {
			return nil, err
		}
		if !cfg.IsEnabled {
			return nil, apperr.InvalidState("insight card config %s is disabled", cfg.ID)
		}
	}

	window := Window(req.CardType, cfg, now)
	card, err := g.generate(ctx, req.OwnerID, req.CardType, cfg, window, now)
	if cfg != nil {
		g.recordRun(ctx, cfg.ID, err, now)
	}
	if err != nil {
		return nil, err
	}
	g.logger.Info("generated insight card",
		slog.String("owner_id", req.OwnerID),
		slog.String("card_type", string(req.CardType)),
		slog.String("card_id", card.ID),
	)
	return card, nil
}

func (g *Generator) generate(ctx context.Context, ownerID string, cardType CardType, cfg *Config, window tracking.Window, now time.Time) (*Card, error) {
	filter := entry.ListFilter{
		OwnerID:   ownerID,
		From:      window.Start,
		To:        window.End,
		Ascending: true,
	}
	if cardType == CardWeeklyGratitudeList {
		positive := entry.EmotionPositive
		filter.Emotion = &positive
	}
	entries, err := g.entries.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list entries for %s: %w", cardType, err)
	}
	if len(entries) == 0 {
		return nil, apperr.InsufficientData("no entries between %s and %s",
			window.Start.Format(time.RFC3339), window.End.Format(time.RFC3339))
	}
	if cardType == CardWeeklyEmotionMap && len(entries) < g.minEmotionMapEntries {
		return nil, apperr.InsufficientData("weekly emotion map needs %d entries, found %d",
			g.minEmotionMapEntries, len(entries))
	}

	data, tagStats, err := g.promptData(ctx, ownerID, cardType, entries, window)
	if err != nil {
		return nil, err
	}
	prompt, err := g.renderPrompt(cardType, cfg, data)
	if err != nil {
		return nil, err
	}

	output, err := g.complete(ctx, cardType, prompt)
	if err != nil {
		return nil, apperr.GenerationFailed(err)
	}
	content, err := g.parseContent(cardType, output, data, tagStats)
	if err != nil {
		return nil, err
	}

	card := &Card{
		ID:            uuid.NewString(),
		OwnerID:       ownerID,
		CardType:      cardType,
		Content:       content,
		DataStartTime: database.Timestamp(window.Start),
		DataEndTime:   database.Timestamp(window.End),
		GeneratedAt:   now,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if cfg != nil {
		card.ConfigID = &cfg.ID
	}
	if err := g.cards.Create(ctx, card); err != nil {
		return nil, fmt.Errorf("store %s card: %w", cardType, err)
	}
	return card, nil
}

func (g *Generator) promptData(ctx context.Context, ownerID string, cardType CardType, entries []entry.Entry, window tracking.Window) (assets.InsightData, []TagStat, error) {
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.ID)
	}
	entryTags, err := g.tags.TagsForEntries(ctx, ids)
	if err != nil {
		return assets.InsightData{}, nil, fmt.Errorf("tags for entries: %w", err)
	}

	data := assets.InsightData{
		WindowStart: window.Start.In(g.location),
		WindowEnd:   window.End.In(g.location),
		Entries:     make([]assets.InsightEntry, 0, len(entries)),
	}
	for _, e := range entries {
		names := make([]string, 0, len(entryTags[e.ID]))
		for _, t := range entryTags[e.ID] {
			names = append(names, t.Name)
		}
		emotion := e.EmotionOrNeutral()
		switch emotion {
		case entry.EmotionPositive:
			data.Emotions.Positive++
		case entry.EmotionNegative:
			data.Emotions.Negative++
		default:
			data.Emotions.Neutral++
		}
		data.Entries = append(data.Entries, assets.InsightEntry{
			CreatedAt: e.CreatedAt.In(g.location),
			Emotion:   string(emotion),
			Content:   e.Content,
			Events:    e.Events,
			Tags:      names,
		})
	}
	total := float64(len(entries))
	data.Emotions.PositiveRatio = float64(data.Emotions.Positive) / total
	data.Mood = string(entry.EmotionNeutral)
	switch {
	case data.Emotions.PositiveRatio > moodRatio:
		data.Mood = string(entry.EmotionPositive)
	case float64(data.Emotions.Negative)/total > moodRatio:
		data.Mood = string(entry.EmotionNegative)
	}
	for _, point := range tracking.EmotionCurve(entries, g.location) {
		data.DailyScores = append(data.DailyScores, assets.DailyScore{
			Date:  point.Date,
			Score: point.Score,
			Count: point.Count,
		})
	}

	var tagStats []TagStat
	if cardType == CardWeeklyEmotionMap {
		overview, err := g.tracking.Overview(ctx, ownerID, window)
		if err != nil {
			return assets.InsightData{}, nil, fmt.Errorf("tag overview: %w", err)
		}
		for _, summary := range overview.Tags {
			if summary.Count == 0 {
				continue
			}
			tagStats = append(tagStats, TagStat{TagID: summary.Tag.ID, Name: summary.Tag.Name, Count: summary.Count})
			data.Tags = append(data.Tags, assets.TagStat{Name: summary.Tag.Name, Count: summary.Count})
		}
	}
	return data, tagStats, nil
}

func (g *Generator) renderPrompt(cardType CardType, cfg *Config, data assets.InsightData) (assets.Prompt, error) {
	var (
		prompt assets.Prompt
		err    error
	)
	switch cardType {
	case CardDailyAffirmation:
		prompt, err = g.prompts.Render(assets.PromptDailyAffirmation, data)
	case CardWeeklyEmotionMap:
		prompt, err = g.prompts.Render(assets.PromptWeeklyEmotionMap, data)
	case CardWeeklyGratitudeList:
		prompt, err = g.prompts.Render(assets.PromptWeeklyGratitudeList, data)
	case CardCustom:
		var instruction string
		instruction, err = assets.RenderText(cfg.Name, cfg.Prompt, data)
		if err == nil {
			prompt, err = g.prompts.Render(assets.PromptCustomCard, assets.CustomCardData{
				InsightData: data,
				Name:        cfg.Name,
				Instruction: instruction,
			})
		}
	}
	if err != nil {
		return assets.Prompt{}, apperr.Template("%s prompt: %v", cardType, err)
	}
	return prompt, nil
}

func (g *Generator) complete(ctx context.Context, cardType CardType, prompt assets.Prompt) (string, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}
	temperature := temperatures[cardType]
	output, err := g.client.Complete(ctx, inference.CompletionRequest{
		System:      prompt.System,
		User:        prompt.User,
		ModelKey:    g.modelKey,
		Temperature: &temperature,
	})
	if err != nil {
		if !errors.Is(err, apperr.ErrAdapter) {
			err = apperr.Adapter("llm", err)
		}
		return "", err
	}
	return output, nil
}

func (g *Generator) parseContent(cardType CardType, output string, data assets.InsightData, tagStats []TagStat) (Content, error) {
	var content any
	switch cardType {
	case CardDailyAffirmation:
		content = &AffirmationContent{}
	case CardWeeklyEmotionMap:
		content = &EmotionMapContent{}
	case CardWeeklyGratitudeList:
		content = &GratitudeContent{}
	default:
		content = &CustomContent{}
	}

	if err := inference.DecodeJSONObject(output, content); err != nil {
		return nil, apperr.Generation("%s response: %v", cardType, err)
	}
	violations, err := g.validator.Struct(content)
	if err != nil {
		return nil, fmt.Errorf("validator.Struct() > %w", err)
	}
	if len(violations) > 0 {
		return nil, apperr.Generation("%s response: %s", cardType, validation.Join(violations))
	}

	if emotionMap, ok := content.(*EmotionMapContent); ok {
		emotionMap.EmotionStats = EmotionStats{
			Positive:      data.Emotions.Positive,
			Neutral:       data.Emotions.Neutral,
			Negative:      data.Emotions.Negative,
			PositiveRatio: data.Emotions.PositiveRatio,
		}
		emotionMap.DailyScores = make([]DailyScore, 0, len(data.DailyScores))
		for _, score := range data.DailyScores {
			emotionMap.DailyScores = append(emotionMap.DailyScores, DailyScore(score))
		}
		emotionMap.TagStats = tagStats
		if emotionMap.TagStats == nil {
			emotionMap.TagStats = []TagStat{}
		}
	}

	body, err := json.Marshal(content)
	if err != nil {
		return nil, fmt.Errorf("json.Marshal(%s content) > %w", cardType, err)
	}
	return Content(body), nil
}

// recordRun stores the outcome of a custom run. It is detached from ctx so a
// cancelled request still leaves the config's last run accurate.
func (g *Generator) recordRun(ctx context.Context, configID string, runErr error, at time.Time) {
	status := RunSucceeded
	var message *string
	switch {
	case runErr == nil:
	case errors.Is(runErr, apperr.ErrInsufficientData):
		status = RunInsufficientData
	default:
		status = RunFailed
		msg := runErr.Error()
		if utf8.RuneCountInString(msg) > maxRunErrorLength {
			msg = string([]rune(msg)[:maxRunErrorLength]) + "…"
		}
		message = &msg
	}

	wctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), recordRunTimeout)
	defer cancel()
	if err := g.configs.RecordRun(wctx, configID, status, message, at); err != nil {
		g.logger.Error("failed to record insight card config run",
			slog.String("config_id", configID),
			slog.Any("error", err),
		)
	}
}
