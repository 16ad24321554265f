package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"

	"github.com/at-ishikawa/guanwo/internal/analysis"
	"github.com/at-ishikawa/guanwo/internal/assets"
	"github.com/at-ishikawa/guanwo/internal/config"
	"github.com/at-ishikawa/guanwo/internal/database"
	"github.com/at-ishikawa/guanwo/internal/entry"
	"github.com/at-ishikawa/guanwo/internal/inference/openai"
	"github.com/at-ishikawa/guanwo/internal/insight"
	"github.com/at-ishikawa/guanwo/internal/moderation"
	"github.com/at-ishikawa/guanwo/internal/speech"
	"github.com/at-ishikawa/guanwo/internal/tag"
	"github.com/at-ishikawa/guanwo/internal/tracking"
	"github.com/at-ishikawa/guanwo/internal/worker"
)

// Services is the wired object graph shared by the server and the CLI.
type Services struct {
	DB         *sqlx.DB
	Pool       *worker.Pool
	LLM        *openai.Client
	Prompts    *assets.Prompts
	Seeds      []tag.Seed
	EntryRepo  *entry.DBRepository
	Entries    *entry.Store
	Tags       *tag.Registry
	Trends     *tracking.Aggregator
	CardRepo   *insight.DBCardRepository
	ConfigRepo *insight.DBConfigRepository
	Insights   *insight.Service
	Generator  *insight.Generator
	cfg        *config.Config
	logger     *slog.Logger
}

// NewServices opens and migrates the database and builds every service on it.
// The worker pool is created but not started.
func NewServices(cfg *config.Config, logger *slog.Logger) (*Services, error) {
	db, err := database.Open(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("database.Open() > %w", err)
	}
	if err := database.Migrate(db, logger); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("database.Migrate() > %w", err)
	}

	s, err := newServices(db, cfg, logger)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func newServices(db *sqlx.DB, cfg *config.Config, logger *slog.Logger) (*Services, error) {
	prompts, err := assets.LoadPrompts(cfg.Templates.PromptsDirectory, logger)
	if err != nil {
		return nil, fmt.Errorf("assets.LoadPrompts() > %w", err)
	}
	seeds, err := tag.LoadSeeds(cfg.Tags.SeedFile)
	if err != nil {
		return nil, fmt.Errorf("tag.LoadSeeds() > %w", err)
	}

	llm := openai.NewClient(cfg.LLM, logger)
	analyzer, err := analysis.NewAnalyzer(llm, prompts, seeds, cfg.Analysis, logger)
	if err != nil {
		return nil, fmt.Errorf("analysis.NewAnalyzer() > %w", err)
	}

	pool := worker.NewPool(cfg.Worker, logger)
	registry := tag.NewRegistry(tag.NewDBRepository(db), cfg.Tags, logger)
	entryRepo := entry.NewDBRepository(db)
	entries := entry.NewStore(entry.StoreDeps{
		Repository:  entryRepo,
		Tags:        registry,
		Classifier:  moderation.New(cfg.Moderation, logger),
		Transcriber: speech.New(cfg.Speech),
		Analyzer:    analyzer,
		Dispatcher:  pool,
	}, cfg, logger)
	trends := tracking.NewAggregator(entryRepo, registry, cfg, logger)

	cardRepo := insight.NewDBCardRepository(db)
	configRepo := insight.NewDBConfigRepository(db)
	insights, err := insight.NewService(cardRepo, configRepo, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("insight.NewService() > %w", err)
	}
	generator, err := insight.NewGenerator(insight.GeneratorDeps{
		Cards:    cardRepo,
		Configs:  configRepo,
		Entries:  entryRepo,
		Tags:     registry,
		Tracking: trends,
		Client:   llm,
		Prompts:  prompts,
	}, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("insight.NewGenerator() > %w", err)
	}

	return &Services{
		DB:         db,
		Pool:       pool,
		LLM:        llm,
		Prompts:    prompts,
		Seeds:      seeds,
		EntryRepo:  entryRepo,
		Entries:    entries,
		Tags:       registry,
		Trends:     trends,
		CardRepo:   cardRepo,
		ConfigRepo: configRepo,
		Insights:   insights,
		Generator:  generator,
		cfg:        cfg,
		logger:     logger,
	}, nil
}

// Start seeds the system tags, fails entries left in sending by a previous
// process and starts the worker pool.
func (s *Services) Start(ctx context.Context) error {
	seeded, err := s.Tags.SeedSystemTags(ctx, s.Seeds)
	if err != nil {
		return fmt.Errorf("tag.SeedSystemTags() > %w", err)
	}
	if seeded > 0 {
		s.logger.Info("seeded system tags", slog.Int("count", seeded))
	}

	failed, err := s.Entries.FailStale(ctx, s.cfg.Journal.StaleAfter())
	if err != nil {
		return fmt.Errorf("entry.FailStale() > %w", err)
	}
	if failed > 0 {
		s.logger.Warn("failed stale entries", slog.Int64("count", failed))
	}

	s.Pool.Start(context.WithoutCancel(ctx))
	return nil
}

// Close drains the worker pool and releases the model client and database.
func (s *Services) Close(ctx context.Context) error {
	var errs []error
	if err := s.Pool.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("worker pool: %w", err))
	}
	if err := s.LLM.Close(); err != nil {
		errs = append(errs, fmt.Errorf("llm client: %w", err))
	}
	if err := s.DB.Close(); err != nil {
		errs = append(errs, fmt.Errorf("database: %w", err))
	}
	return errors.Join(errs...)
}
