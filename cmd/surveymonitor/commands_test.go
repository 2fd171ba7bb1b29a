package main

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SurveyMonitor/internal/domain"
)

func TestSnapshotSummaryWritesOnlyJSONToStdout(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("SURVEY_MONITOR_CONFIG", "")
	t.Setenv("SHEET_ID", "")
	t.Setenv("LOG_LEVEL", "debug")

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs([]string{"snapshot", "--summary"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
		summaryOnly = false
	})

	require.NoError(t, rootCmd.ExecuteContext(context.Background()))

	var summary domain.Summary
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &summary), "stdout: %s", stdout.String())
	assert.Positive(t, summary.TotalSubmissions)
	assert.Contains(t, stderr.String(), "dashboard refreshed")
}
