package main

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/guanwo/internal/bootstrap"
	"github.com/at-ishikawa/guanwo/internal/config"
	"github.com/at-ishikawa/guanwo/internal/entry"
	"github.com/at-ishikawa/guanwo/internal/insight"
	"github.com/at-ishikawa/guanwo/internal/testutil"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCommand()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

// newFakeLLM answers every chat completion with content.
func newFakeLLM(t *testing.T, content string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":      "chatcmpl-1",
			"object":  "chat.completion",
			"choices": []map[string]any{{"index": 0, "message": map[string]any{"role": "assistant", "content": content}}},
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func loadTestServices(t *testing.T, cfgPath string) *bootstrap.Services {
	t.Helper()
	loader, err := config.NewConfigLoader(cfgPath)
	require.NoError(t, err)
	cfg, err := loader.Load()
	require.NoError(t, err)
	services, err := bootstrap.NewServices(cfg, testutil.Logger())
	require.NoError(t, err)
	return services
}

func TestSetupLogger(t *testing.T) {
	tests := []struct {
		name      string
		debugMode bool
		wantLevel slog.Level
	}{
		{name: "debug mode enabled", debugMode: true, wantLevel: slog.LevelDebug},
		{name: "debug mode disabled", debugMode: false, wantLevel: slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupLogger(tt.debugMode)
			logger := slog.Default()
			assert.Equal(t, tt.wantLevel <= slog.LevelDebug, logger.Enabled(context.Background(), slog.LevelDebug))
		})
	}
}

func TestCardTypeFlag(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    CardTypeFlag
		wantErr bool
	}{
		{name: "daily affirmation", value: "daily_affirmation", want: CardTypeFlag(insight.CardDailyAffirmation)},
		{name: "weekly emotion map", value: "weekly_emotion_map", want: CardTypeFlag(insight.CardWeeklyEmotionMap)},
		{name: "custom", value: "custom", want: CardTypeFlag(insight.CardCustom)},
		{name: "unknown", value: "horoscope", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f CardTypeFlag
			err := f.Set(tt.value)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, f)
			assert.Equal(t, tt.value, f.String())
			assert.Equal(t, "CardTypeFlag", f.Type())
		})
	}
}

func TestNewRootCommand(t *testing.T) {
	root := newRootCommand()
	assert.Equal(t, "guanwo", root.Use)

	names := make([]string, 0, len(root.Commands()))
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.ElementsMatch(t, []string{"migrate", "tags", "entries", "insights"}, names)
}

func TestMigrateCommand(t *testing.T) {
	cfgPath := testutil.SetupTestConfigWithLLM(t, t.TempDir(), "http://127.0.0.1:1")

	out, err := executeCommand(t, "--config", cfgPath, "migrate")
	require.NoError(t, err)
	assert.Contains(t, out, "sqlite3 database is up to date")

	// A second run finds nothing to apply.
	out, err = executeCommand(t, "--config", cfgPath, "migrate")
	require.NoError(t, err)
	assert.Contains(t, out, "up to date")
}

func TestTagsSeedCommand(t *testing.T) {
	cfgPath := testutil.SetupTestConfigWithLLM(t, t.TempDir(), "http://127.0.0.1:1")

	out, err := executeCommand(t, "--config", cfgPath, "tags", "seed")
	require.NoError(t, err)
	assert.Regexp(t, `created (\d+) of (\d+) system tags`, out)
	assert.NotContains(t, out, "created 0 of")

	out, err = executeCommand(t, "--config", cfgPath, "tags", "seed")
	require.NoError(t, err)
	assert.Contains(t, out, "created 0 of")
}

func TestEntriesSweepCommand(t *testing.T) {
	ctx := context.Background()
	cfgPath := testutil.SetupTestConfigWithLLM(t, t.TempDir(), "http://127.0.0.1:1")

	services := loadTestServices(t, cfgPath)
	stale := time.Now().UTC().Add(-time.Hour).Truncate(time.Microsecond)
	require.NoError(t, services.EntryRepo.Create(ctx, &entry.Entry{
		ID:         "entry-1",
		OwnerID:    "user-1",
		Content:    "stuck in moderation",
		Status:     entry.StatusSending,
		SourceType: entry.SourceText,
		WordCount:  3,
		Attempt:    1,
		CreatedAt:  stale,
		UpdatedAt:  stale,
	}, nil))
	require.NoError(t, services.Close(ctx))

	out, err := executeCommand(t, "--config", cfgPath, "entries", "sweep", "--older-than", "2h")
	require.NoError(t, err)
	assert.Contains(t, out, "no entries in sending for more than 2h0m0s")

	out, err = executeCommand(t, "--config", cfgPath, "entries", "sweep", "--older-than", "10m")
	require.NoError(t, err)
	assert.Contains(t, out, "failed 1 entries in sending for more than 10m0s")
}

func TestInsightsCommands(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	llm := newFakeLLM(t, `{"affirmation":"Keep going, you wrote every day."}`)
	cfgPath := testutil.SetupTestConfigWithLLM(t, dir, llm.URL)

	services := loadTestServices(t, cfgPath)
	positive := entry.EmotionPositive
	createdAt := time.Now().UTC().Add(-time.Hour).Truncate(time.Microsecond)
	require.NoError(t, services.EntryRepo.Create(ctx, &entry.Entry{
		ID:         "entry-1",
		OwnerID:    "user-1",
		Content:    "finished the long run",
		Emotion:    &positive,
		Status:     entry.StatusSuccess,
		IsVisible:  true,
		SourceType: entry.SourceText,
		WordCount:  4,
		Attempt:    1,
		CreatedAt:  createdAt,
		UpdatedAt:  createdAt,
	}, nil))
	require.NoError(t, services.Close(ctx))

	t.Run("generate", func(t *testing.T) {
		out, err := executeCommand(t, "--config", cfgPath, "insights", "generate", "--user", "user-1", "--type", "daily_affirmation")
		require.NoError(t, err)
		assert.Contains(t, out, "Keep going, you wrote every day.")
	})

	t.Run("generate for a user without entries", func(t *testing.T) {
		_, err := executeCommand(t, "--config", cfgPath, "insights", "generate", "--user", "user-2")
		assert.Error(t, err)
	})

	t.Run("custom card requires a config", func(t *testing.T) {
		_, err := executeCommand(t, "--config", cfgPath, "insights", "generate", "--user", "user-1", "--type", "custom")
		assert.ErrorContains(t, err, "--config is required")
	})

	t.Run("unknown card type", func(t *testing.T) {
		_, err := executeCommand(t, "--config", cfgPath, "insights", "generate", "--user", "user-1", "--type", "horoscope")
		assert.Error(t, err)
	})

	t.Run("export", func(t *testing.T) {
		outDir := filepath.Join(dir, "exports")
		out, err := executeCommand(t, "--config", cfgPath, "insights", "export", "--user", "user-1", "--out", outDir)
		require.NoError(t, err)
		assert.Contains(t, out, "exported 1 cards")

		content, err := os.ReadFile(filepath.Join(outDir, "insights-user-1.md"))
		require.NoError(t, err)
		assert.Contains(t, string(content), "Keep going, you wrote every day.")
	})

	t.Run("export without cards", func(t *testing.T) {
		out, err := executeCommand(t, "--config", cfgPath, "insights", "export", "--user", "user-2", "--out", t.TempDir())
		require.NoError(t, err)
		assert.Contains(t, out, "no visible cards for user-2")
	})
}
