package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SurveyMonitor/internal/domain"
	"SurveyMonitor/internal/ports"
	"SurveyMonitor/internal/processor"
)

type fakeAnalyst struct {
	answer string
	err    error
	prompt string
	calls  int
}

func (f *fakeAnalyst) Ask(_ context.Context, prompt string) (string, error) {
	f.calls++
	f.prompt = prompt
	return f.answer, f.err
}

func sampleDashboard() domain.DashboardData {
	rows := []domain.RawRow{
		row("S1", "Ifo", "INT-1", "Approved"),
		row("S2", "Ifo", "INT-2", "Not Approved"),
		row("S3", "Ewekoro", "INT-2", "Pending"),
	}
	return processor.Process(rows, processor.Options{OverallTarget: 10, Now: fixedNow})
}

func TestAnalysisReturnsAnswer(t *testing.T) {
	t.Parallel()

	analyst := &fakeAnalyst{answer: "Ifo leads."}
	a := NewAnalysis(analyst, nil)

	reply := a.Ask(context.Background(), sampleDashboard(), "  Which LGA leads?  ")
	assert.Equal(t, "Ifo leads.", reply)
	require.Equal(t, 1, analyst.calls)
	assert.Contains(t, analyst.prompt, `"Which LGA leads?"`)
	assert.Contains(t, analyst.prompt, "full dataset of 3 submissions")
	assert.Contains(t, analyst.prompt, `"availableLGAs": [`)
}

func TestAnalysisRejectsEmptyQuestion(t *testing.T) {
	t.Parallel()

	analyst := &fakeAnalyst{answer: "unused"}
	a := NewAnalysis(analyst, nil)

	assert.Equal(t, MsgEmptyQuestion, a.Ask(context.Background(), sampleDashboard(), "   "))
	assert.Zero(t, analyst.calls)
}

func TestAnalysisMissingKey(t *testing.T) {
	t.Parallel()

	a := NewAnalysis(&fakeAnalyst{err: fmt.Errorf("gemini: %w", ports.ErrMissingAPIKey)}, nil)
	assert.Equal(t, MsgMissingAPIKey, a.Ask(context.Background(), sampleDashboard(), "hello"))

	a = NewAnalysis(nil, nil)
	assert.Equal(t, MsgMissingAPIKey, a.Ask(context.Background(), sampleDashboard(), "hello"))
}

func TestAnalysisReportsFailure(t *testing.T) {
	t.Parallel()

	a := NewAnalysis(&fakeAnalyst{err: errors.New("quota exceeded")}, nil)
	reply := a.Ask(context.Background(), sampleDashboard(), "hello")
	assert.Equal(t, "An error occurred while analyzing the data: quota exceeded", reply)
}

func TestBuildPromptLayout(t *testing.T) {
	t.Parallel()

	prompt, err := BuildPrompt(domain.AnalysisRequest{
		Summary: domain.AnalysisSummary{
			TotalSubmissions:    2,
			ApprovalRate:        50,
			Top5Errors:          []domain.ErrorCount{{Label: "High LOI", Count: 1}},
			Top5ProductiveUsers: []domain.InterviewerVolume{{ID: "INT-1", Submissions: 2, ApprovalRate: 50}},
			AvailableLGAs:       []string{"Ifo"},
		},
		SubmissionCount: 2,
		Question:        "How many?",
	})
	require.NoError(t, err)

	open := strings.Index(prompt, "```json\n")
	closing := strings.LastIndex(prompt, "\n```")
	require.True(t, open >= 0 && closing > open, "summary must be fenced")

	block := prompt[open+len("```json\n") : closing]
	assert.Contains(t, block, `"totalSubmissions": 2`)
	assert.Contains(t, block, `"label": "High LOI"`)
	assert.Contains(t, block, `"id": "INT-1"`)
	assert.Contains(t, prompt, "full dataset of 2 submissions")
	assert.Contains(t, prompt, "User's Question:\n\"How many?\"")
}
