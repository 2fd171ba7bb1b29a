package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAndMerge(t *testing.T) {
	t.Parallel()

	raw := []byte(`
sheet:
  id: abc123
  format: pubhtml
  timeout: 5s
dashboard:
  overallTarget: 1200
  timezone: Africa/Lagos
analysis:
  provider: openai
  model: gpt-4o-mini
generator:
  seed: 42
`)

	fileCfg, err := Parse(raw)
	require.NoError(t, err)

	cfg := mergeConfig(defaultConfig(), fileCfg)
	assert.Equal(t, "abc123", cfg.Sheet.ID)
	assert.Equal(t, "Data", cfg.Sheet.Name)
	assert.Equal(t, SheetFormatHTML, cfg.Sheet.Format)
	assert.Equal(t, 5*time.Second, cfg.Sheet.Timeout)
	assert.Equal(t, 1200, cfg.Dashboard.OverallTarget)
	assert.Equal(t, ProviderOpenAI, cfg.Analysis.Provider)
	assert.Equal(t, "gpt-4o-mini", cfg.Analysis.Model)
	assert.Equal(t, 850, cfg.Generator.Rows)
	assert.Equal(t, uint64(42), cfg.Generator.Seed)
	assert.True(t, cfg.Sheet.Configured())
}

func TestParseRejectsMalformedYAML(t *testing.T) {
	t.Parallel()

	_, err := Parse([]byte("sheet: [unterminated"))
	assert.Error(t, err)
}

func TestSheetConfigured(t *testing.T) {
	t.Parallel()

	assert.False(t, SheetConfig{}.Configured())
	assert.False(t, SheetConfig{ID: PlaceholderSheetID}.Configured())
	assert.True(t, SheetConfig{ID: "18iZez"}.Configured())
}

func TestLoadAppliesFileThenEnvironment(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("sheet:\n  id: from-file\n  name: Responses\ndashboard:\n  timezone: Africa/Lagos\n"), 0o600))

	t.Chdir(dir)
	t.Setenv(configPathEnv, path)
	t.Setenv(sheetIDEnv, "from-env")
	t.Setenv(geminiAPIKeyEnv, "secret")
	t.Setenv(logLevelEnv, "debug")

	cfg := Load()
	assert.Equal(t, "from-env", cfg.Sheet.ID)
	assert.Equal(t, "Responses", cfg.Sheet.Name)
	assert.Equal(t, "secret", cfg.Analysis.APIKey)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "Africa/Lagos", cfg.Dashboard.Location().String())
}

func TestLoadFallsBackOnUnknownTimezone(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("dashboard:\n  timezone: Mars/Olympus\n"), 0o600))

	t.Chdir(dir)
	t.Setenv(configPathEnv, path)

	cfg := Load()
	assert.Equal(t, "UTC", cfg.Dashboard.Location().String())
	assert.Equal(t, 1000, cfg.Dashboard.OverallTarget)
}
