package app

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SurveyMonitor/internal/config"
	"SurveyMonitor/internal/logging"
	"SurveyMonitor/internal/usecase"
)

func offlineConfig() config.Config {
	return config.Config{
		Logging:   config.LoggingConfig{Level: "error"},
		Server:    config.ServerConfig{Addr: "127.0.0.1:0"},
		Sheet:     config.SheetConfig{ID: config.PlaceholderSheetID, Name: "Data", Format: config.SheetFormatGviz},
		Refresh:   config.RefreshConfig{CronExpression: "@every 1h"},
		Dashboard: config.DashboardConfig{OverallTarget: 100},
		Analysis:  config.AnalysisConfig{Provider: config.ProviderGemini},
		Generator: config.GeneratorConfig{Rows: 40, Seed: 7},
	}
}

func TestSnapshotFallsBackToGeneratedData(t *testing.T) {
	t.Parallel()

	application, err := New(context.Background(), offlineConfig(), logging.New("error"))
	require.NoError(t, err)

	snap, err := application.Snapshot(context.Background())
	require.NoError(t, err)

	assert.Equal(t, usecase.SourceGenerated, snap.Source)
	assert.Equal(t, 100, snap.Data.Summary.OverallTarget)
	assert.Positive(t, snap.Data.Summary.TotalSubmissions)
	assert.True(t, strings.HasPrefix(snap.Data.StatusMessage, "Latest submissions from "), snap.Data.StatusMessage)
}

func TestAskWithoutKey(t *testing.T) {
	t.Parallel()

	application, err := New(context.Background(), offlineConfig(), nil)
	require.NoError(t, err)

	answer, err := application.Ask(context.Background(), "Which LGA is behind?", "", usecase.AnalysisFilter{})
	require.NoError(t, err)
	assert.Equal(t, usecase.MsgMissingAPIKey, answer)
}

func TestNewRejectsUnknownProvider(t *testing.T) {
	t.Parallel()

	cfg := offlineConfig()
	cfg.Analysis.Provider = "carrier-pigeon"

	_, err := New(context.Background(), cfg, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "carrier-pigeon")
}
