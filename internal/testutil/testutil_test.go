package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/guanwo/internal/config"
)

func TestSetupTestConfig(t *testing.T) {
	tmpDir := t.TempDir()
	got := SetupTestConfig(t, tmpDir)

	assert.Equal(t, filepath.Join(tmpDir, "config.yml"), got)

	info, err := os.Stat(filepath.Join(tmpDir, "prompts"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	loader, err := config.NewConfigLoader(got)
	require.NoError(t, err)
	cfg, err := loader.Load()
	require.NoError(t, err)
	assert.Equal(t, config.DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, filepath.Join(tmpDir, "guanwo.db"), cfg.Database.Path)
	assert.Equal(t, config.ModerationModeSync, cfg.Journal.ModerationMode)
}

func TestSetupTestConfigWithLLM(t *testing.T) {
	tmpDir := t.TempDir()
	got := SetupTestConfigWithLLM(t, tmpDir, "http://127.0.0.1:9999/v1")

	loader, err := config.NewConfigLoader(got)
	require.NoError(t, err)
	cfg, err := loader.Load()
	require.NoError(t, err)

	provider := cfg.LLM.Providers["siliconflow"]
	assert.Equal(t, "http://127.0.0.1:9999/v1", provider.BaseURL)
	assert.Equal(t, "fake-key-for-testing", provider.APIKey)
	assert.Equal(t, "test-model", provider.Models["kimi-k2"])
}

func TestNewDB(t *testing.T) {
	db := NewDB(t)

	var count int
	require.NoError(t, db.Get(&count, "SELECT COUNT(*) FROM entries"))
	assert.Equal(t, 0, count)
}
