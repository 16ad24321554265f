// Package scheduler generates the periodic insight cards of every active owner.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/at-ishikawa/guanwo/internal/apperr"
	"github.com/at-ishikawa/guanwo/internal/config"
	"github.com/at-ishikawa/guanwo/internal/insight"
)

//go:generate mockgen -source=scheduler.go -destination=../mocks/scheduler/mock_scheduler.go -package=mock_scheduler

type OwnerLister interface {
	ListOwnersWithEntries(ctx context.Context, since time.Time) ([]string, error)
}

type ConfigLister interface {
	ListEnabled(ctx context.Context, ownerID string) ([]insight.Config, error)
}

type CardGenerator interface {
	Generate(ctx context.Context, req insight.GenerateRequest) (*insight.Card, error)
}

// activeLookback is how far back an owner must have written to get cards.
const activeLookback = 8 * 24 * time.Hour

// job is one card to generate for an owner in the current period.
type job struct {
	cardType insight.CardType
	configID string
	key      string
	ttl      time.Duration
}

type Deps struct {
	Owners    OwnerLister
	Configs   ConfigLister
	Generator CardGenerator
	Gate      Gate
}

type Scheduler struct {
	owners      OwnerLister
	configs     ConfigLister
	generator   CardGenerator
	gate        Gate
	interval    time.Duration
	concurrency int
	location    *time.Location
	now         func() time.Time
	logger      *slog.Logger
}

func NewScheduler(deps Deps, cfg *config.Config, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		owners:      deps.Owners,
		configs:     deps.Configs,
		generator:   deps.Generator,
		gate:        deps.Gate,
		interval:    cfg.Scheduler.Interval(),
		concurrency: max(cfg.Scheduler.Concurrency, 1),
		location:    cfg.App.Location(),
		now:         time.Now,
		logger:      logger.With("component", "scheduler"),
	}
}

// Run calls RunOnce immediately and then every interval until ctx is done.
func (s *Scheduler) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		if err := s.RunOnce(ctx); err != nil && ctx.Err() == nil {
			s.logger.Error("scheduler run failed", slog.Any("error", err))
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

// RunOnce generates every card that is due and not yet generated in its period.
func (s *Scheduler) RunOnce(ctx context.Context) error {
	now := s.now()
	owners, err := s.owners.ListOwnersWithEntries(ctx, now.Add(-activeLookback))
	if err != nil {
		return fmt.Errorf("list active owners: %w", err)
	}
	s.logger.Debug("scheduler run", slog.Int("owners", len(owners)))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for _, ownerID := range owners {
		g.Go(func() error {
			s.runOwner(gctx, ownerID, now)
			return gctx.Err()
		})
	}
	return g.Wait()
}

func (s *Scheduler) runOwner(ctx context.Context, ownerID string, now time.Time) {
	jobs := s.builtInJobs(ownerID, now)
	configs, err := s.configs.ListEnabled(ctx, ownerID)
	if err != nil {
		s.logger.Error("failed to list enabled insight card configs",
			slog.String("owner_id", ownerID),
			slog.Any("error", err),
		)
	}
	for _, c := range configs {
		period, ttl := periodKey(c.TimeRange, now, s.location)
		jobs = append(jobs, job{
			cardType: insight.CardCustom,
			configID: c.ID,
			key:      fmt.Sprintf("insight:%s:config:%s:%s", ownerID, c.ID, period),
			ttl:      ttl,
		})
	}

	for _, j := range jobs {
		if ctx.Err() != nil {
			return
		}
		s.runJob(ctx, ownerID, j, now)
	}
}

func (s *Scheduler) builtInJobs(ownerID string, now time.Time) []job {
	day, dayTTL := periodKey(insight.RangeDaily, now, s.location)
	week, weekTTL := periodKey(insight.RangeWeekly, now, s.location)
	return []job{
		{cardType: insight.CardDailyAffirmation, key: fmt.Sprintf("insight:%s:%s:%s", ownerID, insight.CardDailyAffirmation, day), ttl: dayTTL},
		{cardType: insight.CardWeeklyEmotionMap, key: fmt.Sprintf("insight:%s:%s:%s", ownerID, insight.CardWeeklyEmotionMap, week), ttl: weekTTL},
		{cardType: insight.CardWeeklyGratitudeList, key: fmt.Sprintf("insight:%s:%s:%s", ownerID, insight.CardWeeklyGratitudeList, week), ttl: weekTTL},
	}
}

func (s *Scheduler) runJob(ctx context.Context, ownerID string, j job, now time.Time) {
	logger := s.logger.With(
		slog.String("owner_id", ownerID),
		slog.String("card_type", string(j.cardType)),
	)
	if j.configID != "" {
		logger = logger.With(slog.String("config_id", j.configID))
	}

	acquired, err := s.gate.Acquire(ctx, j.key, j.ttl)
	if err != nil {
		logger.Error("failed to acquire scheduler gate", slog.Any("error", err))
		return
	}
	if !acquired {
		return
	}

	card, err := s.generator.Generate(ctx, insight.GenerateRequest{
		OwnerID:  ownerID,
		CardType: j.cardType,
		ConfigID: j.configID,
		Now:      now,
	})
	switch {
	case err == nil:
		logger.Info("scheduled insight card generated", slog.String("card_id", card.ID))
	case errors.Is(err, apperr.ErrInsufficientData):
		logger.Info("not enough entries for insight card", slog.Any("reason", err))
	default:
		logger.Error("scheduled insight card generation failed", slog.Any("error", err))
		// Failed runs are retried on the next tick.
		if err := s.gate.Release(context.WithoutCancel(ctx), j.key); err != nil {
			logger.Error("failed to release scheduler gate", slog.Any("error", err))
		}
	}
}

// periodKey names the calendar period of r containing now, with a TTL
// covering the rest of that period.
func periodKey(r insight.TimeRange, now time.Time, loc *time.Location) (string, time.Duration) {
	local := now.In(loc)
	switch r {
	case insight.RangeWeekly:
		year, week := local.ISOWeek()
		return fmt.Sprintf("%d-W%02d", year, week), 8 * 24 * time.Hour
	case insight.RangeMonthly:
		return local.Format("2006-01"), 32 * 24 * time.Hour
	}
	return local.Format(time.DateOnly), 25 * time.Hour
}
