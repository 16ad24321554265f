// Package testutil provides shared test helpers for databases, loggers and config files.
package testutil

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/guanwo/internal/config"
	"github.com/at-ishikawa/guanwo/internal/database"
)

// NewDB opens a migrated SQLite database in a temporary directory.
// The database is closed when the test finishes.
func NewDB(t *testing.T) *sqlx.DB {
	t.Helper()

	db, err := database.Open(config.DatabaseConfig{
		Driver:        config.DriverSQLite,
		Path:          filepath.Join(t.TempDir(), "guanwo-test.db"),
		BusyTimeoutMS: 5000,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Close()
	})

	require.NoError(t, database.Migrate(db, Logger()))
	return db
}

// NewConfig returns the configuration defaults used by unit tests:
// UTC, synchronous moderation and small timeouts.
func NewConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Timezone: "UTC"},
		LLM: config.LLMConfig{
			DefaultProvider: "siliconflow",
			DefaultModelKey: "kimi-k2",
			TimeoutSeconds:  5,
		},
		Moderation: config.ModerationConfig{TimeoutSeconds: 5},
		Speech:     config.SpeechConfig{TimeoutSeconds: 5},
		Journal: config.JournalConfig{
			MaxContentLength:  5000,
			MaxAudioSeconds:   300,
			MaxImages:         9,
			ModerationMode:    config.ModerationModeSync,
			StaleAfterSeconds: 600,
		},
		Tags:     config.TagsConfig{MaxCustomPerUser: 10},
		Tracking: config.TrackingConfig{MinSamples: 5},
		Analysis: config.AnalysisConfig{Enabled: true, TimeoutSeconds: 5},
		Insights: config.InsightsConfig{
			MaxEnabledConfigs:        10,
			MinEmotionMapEntries:     3,
			GenerationTimeoutSeconds: 5,
		},
		Worker:    config.WorkerConfig{Concurrency: 2, QueueSize: 16},
		Scheduler: config.SchedulerConfig{IntervalSeconds: 60, Concurrency: 2},
		Redis:     config.RedisConfig{KeyPrefix: "guanwo-test:"},
	}
}

// Logger returns a logger that discards everything.
func Logger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// SetupTestConfig writes a config file using a SQLite database under tmpDir
// and synchronous moderation. Returns the path to the generated config file.
func SetupTestConfig(t *testing.T, tmpDir string) string {
	t.Helper()

	promptsDir := filepath.Join(tmpDir, "prompts")
	require.NoError(t, os.MkdirAll(promptsDir, 0755))

	configContent := fmt.Sprintf(`app:
  timezone: UTC
database:
  driver: sqlite3
  path: %s
journal:
  moderation_mode: sync
templates:
  prompts_directory: %s
llm:
  default_provider: siliconflow
  default_model_key: kimi-k2
  max_retry_attempts: 0
`,
		filepath.Join(tmpDir, "guanwo.db"),
		promptsDir,
	)

	cfgPath := filepath.Join(tmpDir, "config.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(configContent), 0644))
	return cfgPath
}

// SetupTestConfigWithLLM is SetupTestConfig pointing the default provider at baseURL.
func SetupTestConfigWithLLM(t *testing.T, tmpDir, baseURL string) string {
	t.Helper()
	cfgPath := SetupTestConfig(t, tmpDir)

	content, err := os.ReadFile(cfgPath)
	require.NoError(t, err)
	content = append(content, []byte(fmt.Sprintf(`  providers:
    siliconflow:
      base_url: %s
      api_key: fake-key-for-testing
      models:
        kimi-k2: test-model
`, baseURL))...)
	require.NoError(t, os.WriteFile(cfgPath, content, 0644))
	return cfgPath
}
