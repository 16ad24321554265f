package entry

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
	"github.com/at-ishikawa/guanwo/internal/moderation"
	"github.com/at-ishikawa/guanwo/internal/speech"
	"github.com/at-ishikawa/guanwo/internal/tag"
	"github.com/at-ishikawa/guanwo/internal/worker"
)

//go:generate mockgen -source=store.go -destination=../mocks/entry/mock_store.go -package=mock_entry

// Tagger resolves and attaches tags for entries.
type Tagger interface {
	ResolveAvailable(ctx context.Context, ownerID string, ids []string, field string) ([]tag.Tag, error)
	AttachSystemTags(ctx context.Context, entryID string, names []string) error
	TagsForEntries(ctx context.Context, entryIDs []string) (map[string][]tag.Tag, error)
}

// Analyzer extracts emotion, events and tag names from entry content.
type Analyzer interface {
	Analyze(ctx context.Context, content string) (Analysis, error)
}

// Dispatcher queues background jobs.
type Dispatcher interface {
	Submit(job worker.Job) error
}

const (
	defaultListLimit = 20
	maxListLimit     = 100
	// releaseTimeout bounds the write that fails an attempt after its caller went away.
	releaseTimeout = 5 * time.Second
	// maxFailureReasonLength fits failure_reason VARCHAR(512) with room for the ellipsis.
	maxFailureReasonLength = 500
)

// Store implements the entry lifecycle: submission, moderation, retry, analysis and queries.
type Store struct {
	repo        Repository
	tags        Tagger
	classifier  moderation.Classifier
	transcriber speech.Transcriber
	analyzer    Analyzer
	dispatcher  Dispatcher

	journal           config.JournalConfig
	moderationTimeout time.Duration
	analysisTimeout   time.Duration
	location          *time.Location

	logger *slog.Logger
	now    func() time.Time
}

// StoreDeps are the collaborators of a Store. Analyzer may be nil, in which
// case every entry gets the fallback analysis. Dispatcher is only used when
// moderation runs asynchronously.
type StoreDeps struct {
	Repository  Repository
	Tags        Tagger
	Classifier  moderation.Classifier
	Transcriber speech.Transcriber
	Analyzer    Analyzer
	Dispatcher  Dispatcher
}

func NewStore(deps StoreDeps, cfg *config.Config, logger *slog.Logger) *Store {
	return &Store{
		repo:              deps.Repository,
		tags:              deps.Tags,
		classifier:        deps.Classifier,
		transcriber:       deps.Transcriber,
		analyzer:          deps.Analyzer,
		dispatcher:        deps.Dispatcher,
		journal:           cfg.Journal,
		moderationTimeout: cfg.Moderation.Timeout(),
		analysisTimeout:   cfg.Analysis.Timeout(),
		location:          cfg.App.Location(),
		logger:            logger.With("component", "entry_store"),
		now:               time.Now,
	}
}

type NewImage struct {
	ImageURL     string
	ThumbnailURL *string
	IsLivePhoto  bool
	// UploadStatus defaults to success.
	UploadStatus UploadStatus
}

type SubmitRequest struct {
	OwnerID              string
	Content              string
	SourceType           SourceType
	AudioDurationSeconds *int
	AudioURL             *string
	Images               []NewImage
	TagIDs               []string
}

// Submit validates and stores a new entry in sending, then starts its moderation.
// Nothing is stored when validation fails.
func (s *Store) Submit(ctx context.Context, req SubmitRequest) (*Entry, error) {
	if strings.TrimSpace(req.OwnerID) == "" {
		return nil, apperr.Invalid("owner_id", "must not be blank")
	}
	if req.SourceType == "" {
		req.SourceType = SourceText
	}
	if req.SourceType != SourceText && req.SourceType != SourceVoice {
		return nil, apperr.Invalid("source_type", "unknown source type %q", req.SourceType)
	}

	content := strings.TrimSpace(req.Content)
	duration := req.AudioDurationSeconds
	if req.SourceType == SourceVoice && content == "" && req.AudioURL != nil && *req.AudioURL != "" {
		transcription, err := s.transcriber.Transcribe(ctx, *req.AudioURL)
		if err != nil {
			return nil, fmt.Errorf("transcribe voice entry: %w", err)
		}
		content = transcription.Text
		if duration == nil && transcription.DurationSeconds > 0 {
			d := transcription.DurationSeconds
			duration = &d
		}
	}

	if content == "" {
		return nil, apperr.Invalid("content", "must not be blank")
	}
	length := utf8.RuneCountInString(content)
	if length > s.journal.MaxContentLength {
		return nil, apperr.Invalid("content", "must be at most %d characters, got %d", s.journal.MaxContentLength, length)
	}
	switch req.SourceType {
	case SourceVoice:
		if duration == nil || *duration <= 0 || *duration > s.journal.MaxAudioSeconds {
			return nil, apperr.Invalid("audio_duration", "must be between 1 and %d seconds", s.journal.MaxAudioSeconds)
		}
	case SourceText:
		if duration != nil {
			return nil, apperr.Invalid("audio_duration", "must be empty for text entries")
		}
	}
	if len(req.Images) > s.journal.MaxImages {
		return nil, apperr.Invalid("images", "at most %d images are allowed", s.journal.MaxImages)
	}

	tags, err := s.tags.ResolveAvailable(ctx, req.OwnerID, req.TagIDs, "tag_ids")
	if err != nil {
		return nil, err
	}
	tagIDs := make([]string, 0, len(tags))
	for _, t := range tags {
		tagIDs = append(tagIDs, t.ID)
	}

	now := database.Timestamp(s.now())
	e := &Entry{
		ID:            uuid.NewString(),
		OwnerID:       req.OwnerID,
		Content:       content,
		Status:        StatusSending,
		IsVisible:     false,
		SourceType:    req.SourceType,
		WordCount:     length,
		AudioDuration: duration,
		AudioURL:      req.AudioURL,
		Attempt:       1,
		CreatedAt:     now,
		UpdatedAt:     now,
		Tags:          tags,
	}
	for i, in := range req.Images {
		if strings.TrimSpace(in.ImageURL) == "" {
			return nil, apperr.Invalid(fmt.Sprintf("images[%d].image_url", i), "must not be blank")
		}
		status := in.UploadStatus
		if status == "" {
			status = UploadSuccess
		}
		if !status.Valid() {
			return nil, apperr.Invalid(fmt.Sprintf("images[%d].upload_status", i), "unknown upload status %q", status)
		}
		e.Images = append(e.Images, Image{
			ID:           uuid.NewString(),
			EntryID:      e.ID,
			ImageURL:     in.ImageURL,
			ThumbnailURL: in.ThumbnailURL,
			UploadStatus: status,
			IsLivePhoto:  in.IsLivePhoto,
			SortOrder:    i,
			CreatedAt:    now,
		})
	}

	if err := s.repo.Create(ctx, e, tagIDs); err != nil {
		return nil, fmt.Errorf("create entry: %w", err)
	}
	s.logger.Info("entry submitted",
		slog.String("entry_id", e.ID),
		slog.String("owner_id", e.OwnerID),
		slog.Int("word_count", e.WordCount),
	)

	if s.dispatch(ctx, e.ID, e.Attempt) {
		return s.Get(ctx, e.OwnerID, e.ID)
	}
	return e, nil
}

// dispatch starts moderation of an attempt. It reports whether moderation ran inline.
func (s *Store) dispatch(ctx context.Context, entryID string, attempt int) bool {
	job := &moderationJob{store: s, entryID: entryID, attempt: attempt}
	if s.journal.ModerationMode == config.ModerationModeSync || s.dispatcher == nil {
		if err := job.Run(ctx); err != nil {
			s.logger.Warn("moderation failed", slog.String("entry_id", entryID), slog.Any("error", err))
		}
		return true
	}
	if err := s.dispatcher.Submit(job); err != nil {
		s.logger.Error("failed to queue moderation", slog.String("entry_id", entryID), slog.Any("error", err))
		job.Abandon(ctx)
	}
	return false
}

// ApplyModerationVerdict moves a sending entry to the verdict's status.
// Applying the verdict that produced the current status again is a no-op.
func (s *Store) ApplyModerationVerdict(ctx context.Context, entryID string, verdict moderation.Verdict) error {
	if !verdict.Valid() {
		return apperr.Invalid("verdict", "unknown verdict %q", verdict)
	}
	e, err := s.repo.Get(ctx, entryID)
	if err != nil {
		return err
	}
	return s.applyVerdict(ctx, e, verdict, nil)
}

func targetStatus(verdict moderation.Verdict) Status {
	switch verdict {
	case moderation.VerdictClean:
		return StatusSuccess
	case moderation.VerdictRejected:
		return StatusViolated
	}
	return StatusFailed
}

func (s *Store) applyVerdict(ctx context.Context, e *Entry, verdict moderation.Verdict, reason *string) error {
	target := targetStatus(verdict)
	if e.Status != StatusSending {
		if e.Status == target {
			return nil
		}
		return apperr.InvalidState("entry %s is %s, cannot apply verdict %s", e.ID, e.Status, verdict)
	}

	if reason != nil {
		clipped := clipReason(*reason)
		reason = &clipped
	}
	ok, err := s.repo.CompareAndSetStatus(ctx, Transition{
		EntryID:       e.ID,
		Attempt:       e.Attempt,
		To:            target,
		FailureReason: reason,
		At:            s.now(),
	})
	if err != nil {
		return fmt.Errorf("apply moderation verdict: %w", err)
	}
	if !ok {
		current, err := s.repo.Get(ctx, e.ID)
		if err != nil {
			return err
		}
		if current.Status == target && current.Attempt == e.Attempt {
			return nil
		}
		return apperr.InvalidState("entry %s is %s, cannot apply verdict %s", e.ID, current.Status, verdict)
	}
	s.logger.Info("moderation verdict applied",
		slog.String("entry_id", e.ID),
		slog.Int("attempt", e.Attempt),
		slog.String("status", string(target)),
	)

	if target == StatusSuccess {
		s.extract(ctx, e)
	}
	return nil
}

// extract stores the analysis of a successful entry. Failures fall back to
// the neutral analysis; the entry stays successful either way.
func (s *Store) extract(ctx context.Context, e *Entry) {
	analysis := FallbackAnalysis(e.Content)
	if s.analyzer != nil {
		actx, cancel := context.WithTimeout(ctx, s.analysisTimeout)
		result, err := s.analyzer.Analyze(actx, e.Content)
		cancel()
		if err != nil {
			s.logger.Warn("entry analysis failed, using fallback",
				slog.String("entry_id", e.ID),
				slog.Any("error", err),
			)
		} else {
			analysis = result
		}
	}
	analysis = analysis.normalize(e.Content)

	wctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), releaseTimeout)
	defer cancel()
	if err := s.repo.SaveAnalysis(wctx, e.ID, analysis.Emotion, Events(analysis.Events), s.now()); err != nil {
		s.logger.Error("failed to save entry analysis", slog.String("entry_id", e.ID), slog.Any("error", err))
		return
	}
	if err := s.tags.AttachSystemTags(wctx, e.ID, analysis.TagNames); err != nil {
		s.logger.Error("failed to attach analysis tags", slog.String("entry_id", e.ID), slog.Any("error", err))
	}
}

// failAttempt marks a sending attempt failed. It runs detached from ctx's
// cancellation so an attempt is never left in sending by a cancelled caller.
func (s *Store) failAttempt(ctx context.Context, entryID string, attempt int, reason string) {
	reason = clipReason(reason)
	wctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), releaseTimeout)
	defer cancel()
	ok, err := s.repo.CompareAndSetStatus(wctx, Transition{
		EntryID:       entryID,
		Attempt:       attempt,
		To:            StatusFailed,
		FailureReason: &reason,
		At:            s.now(),
	})
	if err != nil {
		s.logger.Error("failed to release moderation attempt",
			slog.String("entry_id", entryID),
			slog.Int("attempt", attempt),
			slog.Any("error", err),
		)
		return
	}
	if ok {
		s.logger.Warn("moderation attempt failed",
			slog.String("entry_id", entryID),
			slog.Int("attempt", attempt),
			slog.String("reason", reason),
		)
	}
}

func clipReason(reason string) string {
	if utf8.RuneCountInString(reason) <= maxFailureReasonLength {
		return reason
	}
	return string([]rune(reason)[:maxFailureReasonLength]) + "…"
}

// Retry starts a new moderation attempt of a failed or violated entry.
func (s *Store) Retry(ctx context.Context, ownerID, entryID string) (*Entry, error) {
	e, err := s.repo.ResetForRetry(ctx, ownerID, entryID, s.now())
	if err != nil {
		return nil, fmt.Errorf("retry entry: %w", err)
	}
	s.logger.Info("entry retried", slog.String("entry_id", e.ID), slog.Int("attempt", e.Attempt))
	if s.dispatch(ctx, e.ID, e.Attempt) {
		return s.Get(ctx, ownerID, e.ID)
	}
	return s.hydrate(ctx, e)
}

// Get returns one of the owner's entries in any status.
func (s *Store) Get(ctx context.Context, ownerID, entryID string) (*Entry, error) {
	e, err := s.repo.Get(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if e.OwnerID != ownerID {
		return nil, apperr.NotFound("entry %s", entryID)
	}
	return s.hydrate(ctx, e)
}

func (s *Store) hydrate(ctx context.Context, e *Entry) (*Entry, error) {
	entries := []Entry{*e}
	if err := s.attach(ctx, entries); err != nil {
		return nil, err
	}
	return &entries[0], nil
}

// attach loads images and tags of entries in place.
func (s *Store) attach(ctx context.Context, entries []Entry) error {
	if len(entries) == 0 {
		return nil
	}
	ids := make([]string, len(entries))
	for i, e := range entries {
		ids[i] = e.ID
	}
	images, err := s.repo.ImagesByEntryIDs(ctx, ids)
	if err != nil {
		return err
	}
	tags, err := s.tags.TagsForEntries(ctx, ids)
	if err != nil {
		return err
	}
	for i := range entries {
		entries[i].Images = images[entries[i].ID]
		entries[i].Tags = tags[entries[i].ID]
	}
	return nil
}

type ListResult struct {
	Entries []Entry
	Total   int
}

// List returns a page of the owner's entries, visible only unless IncludeHidden is set.
func (s *Store) List(ctx context.Context, filter ListFilter) (ListResult, error) {
	if strings.TrimSpace(filter.OwnerID) == "" {
		return ListResult{}, apperr.Invalid("owner_id", "must not be blank")
	}
	if filter.Limit <= 0 {
		filter.Limit = defaultListLimit
	}
	if filter.Limit > maxListLimit {
		return ListResult{}, apperr.Invalid("limit", "must be at most %d", maxListLimit)
	}
	if filter.Offset < 0 {
		return ListResult{}, apperr.Invalid("offset", "must not be negative")
	}
	if filter.Emotion != nil && !filter.Emotion.Valid() {
		return ListResult{}, apperr.Invalid("emotion", "unknown emotion %q", *filter.Emotion)
	}
	if !filter.From.IsZero() && !filter.To.IsZero() && !filter.From.Before(filter.To) {
		return ListResult{}, apperr.Invalid("to", "must be after from")
	}

	entries, err := s.repo.List(ctx, filter)
	if err != nil {
		return ListResult{}, err
	}
	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		return ListResult{}, err
	}
	if err := s.attach(ctx, entries); err != nil {
		return ListResult{}, err
	}
	return ListResult{Entries: entries, Total: total}, nil
}

// DaySummary aggregates the visible entries of one local calendar day.
type DaySummary struct {
	Date          string
	Count         int
	WordCount     int
	EmotionCounts map[Emotion]int
	// DominantEmotion is the most frequent emotion; ties prefer positive, then neutral.
	DominantEmotion Emotion
}

// CalendarSummary returns one summary per day of the month containing month
// that has visible entries, in date order. Days are in the configured timezone.
func (s *Store) CalendarSummary(ctx context.Context, ownerID string, month time.Time) ([]DaySummary, error) {
	if strings.TrimSpace(ownerID) == "" {
		return nil, apperr.Invalid("owner_id", "must not be blank")
	}
	local := month.In(s.location)
	from := time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, s.location)
	to := from.AddDate(0, 1, 0)

	entries, err := s.repo.List(ctx, ListFilter{OwnerID: ownerID, From: from, To: to, Ascending: true})
	if err != nil {
		return nil, err
	}

	var days []DaySummary
	index := make(map[string]int)
	for _, e := range entries {
		date := e.CreatedAt.In(s.location).Format(time.DateOnly)
		i, ok := index[date]
		if !ok {
			i = len(days)
			index[date] = i
			days = append(days, DaySummary{Date: date, EmotionCounts: make(map[Emotion]int)})
		}
		days[i].Count++
		days[i].WordCount += e.WordCount
		days[i].EmotionCounts[e.EmotionOrNeutral()]++
	}
	for i := range days {
		days[i].DominantEmotion = dominantEmotion(days[i].EmotionCounts)
	}
	return days, nil
}

func dominantEmotion(counts map[Emotion]int) Emotion {
	best := EmotionNeutral
	bestCount := -1
	for _, e := range []Emotion{EmotionPositive, EmotionNeutral, EmotionNegative} {
		if counts[e] > bestCount {
			best, bestCount = e, counts[e]
		}
	}
	return best
}

// Delete removes one of the owner's entries together with its images and tag links.
func (s *Store) Delete(ctx context.Context, ownerID, entryID string) error {
	if err := s.repo.Delete(ctx, ownerID, entryID); err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}
	s.logger.Info("entry deleted", slog.String("entry_id", entryID), slog.String("owner_id", ownerID))
	return nil
}

// FailStale fails entries that have been sending for longer than olderThan.
func (s *Store) FailStale(ctx context.Context, olderThan time.Duration) (int64, error) {
	if olderThan <= 0 {
		return 0, apperr.Invalid("older_than", "must be positive")
	}
	now := s.now()
	n, err := s.repo.FailStale(ctx, now.Add(-olderThan), "moderation did not finish", now)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.logger.Warn("failed stale entries", slog.Int64("count", n), slog.Duration("older_than", olderThan))
	}
	return n, nil
}

// ListFlashMoments returns the owner's visible positive entries, newest first.
func (s *Store) ListFlashMoments(ctx context.Context, ownerID string, limit, offset int) (ListResult, error) {
	positive := EmotionPositive
	return s.List(ctx, ListFilter{OwnerID: ownerID, Emotion: &positive, Limit: limit, Offset: offset})
}

// ShareFlashMoment counts a share of one of the owner's visible positive entries.
func (s *Store) ShareFlashMoment(ctx context.Context, ownerID, entryID string) (*Entry, error) {
	if err := s.repo.IncrementShareCount(ctx, ownerID, entryID, s.now()); err != nil {
		return nil, fmt.Errorf("share flash moment: %w", err)
	}
	return s.Get(ctx, ownerID, entryID)
}

// moderationJob classifies one attempt of an entry and applies the verdict.
// Whatever happens, the attempt leaves sending: either the verdict is applied
// or the attempt is failed.
type moderationJob struct {
	store   *Store
	entryID string
	attempt int
}

func (j *moderationJob) Name() string {
	return fmt.Sprintf("moderation:%s:%d", j.entryID, j.attempt)
}

func (j *moderationJob) Run(ctx context.Context) (err error) {
	s := j.store
	settled := false
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("moderation panic: %v", r)
		}
		if !settled {
			reason := "moderation did not finish"
			if err != nil {
				reason = err.Error()
			}
			s.failAttempt(ctx, j.entryID, j.attempt, reason)
		}
	}()

	e, err := s.repo.Get(ctx, j.entryID)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			// deleted while queued
			settled = true
			return nil
		}
		return err
	}
	if e.Status != StatusSending || e.Attempt != j.attempt {
		settled = true
		return nil
	}

	cctx, cancel := context.WithTimeout(ctx, s.moderationTimeout)
	verdict, cerr := s.classifier.Classify(cctx, e.Content)
	cancel()
	var reason *string
	if cerr != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("classify entry: %w", ctx.Err())
		}
		msg := cerr.Error()
		reason = &msg
		verdict = moderation.VerdictError
	}

	if err := s.applyVerdict(ctx, e, verdict, reason); err != nil {
		return err
	}
	settled = true
	return nil
}

func (j *moderationJob) Abandon(ctx context.Context) {
	j.store.failAttempt(ctx, j.entryID, j.attempt, "moderation abandoned before it started")
}
