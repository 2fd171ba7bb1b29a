package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"SurveyMonitor/internal/domain"
	"SurveyMonitor/internal/ports"
	"SurveyMonitor/internal/processor"
)

// User-facing replies for failure paths.
const (
	MsgEmptyQuestion = "Please enter a question about the survey data."
	MsgMissingAPIKey = "Error: analysis API key is not configured. Please set up your API key to use this feature."
	msgAnalystFailed = "An error occurred while analyzing the data: %s"
	MsgNoData        = "Survey data is not loaded yet. Please try again shortly."
)

// Analysis answers free-form questions about a dashboard snapshot.
type Analysis struct {
	analyst ports.Analyst
	logger  *slog.Logger
}

// NewAnalysis wires the analyst adapter.
func NewAnalysis(analyst ports.Analyst, logger *slog.Logger) *Analysis {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Analysis{analyst: analyst, logger: logger}
}

// Ask returns the analyst's answer, or a readable message when the
// question is empty or the analyst fails. It never returns an error.
func (a *Analysis) Ask(ctx context.Context, data domain.DashboardData, question string) string {
	question = strings.TrimSpace(question)
	if question == "" {
		return MsgEmptyQuestion
	}
	if a.analyst == nil {
		return MsgMissingAPIKey
	}

	prompt, err := BuildPrompt(domain.AnalysisRequest{
		Summary:         processor.Summarize(data),
		SubmissionCount: len(data.Submissions),
		Question:        question,
	})
	if err != nil {
		return fmt.Sprintf(msgAnalystFailed, err.Error())
	}

	answer, err := a.analyst.Ask(ctx, prompt)
	switch {
	case errors.Is(err, ports.ErrMissingAPIKey):
		a.logger.Warn("analysis requested without api key")
		return MsgMissingAPIKey
	case err != nil:
		a.logger.Error("analysis failed", "error", err)
		return fmt.Sprintf(msgAnalystFailed, err.Error())
	}

	return answer
}

// BuildPrompt renders the analyst prompt: the summary as a fenced JSON
// block, the submission count and the quoted question.
func BuildPrompt(req domain.AnalysisRequest) (string, error) {
	summary, err := json.MarshalIndent(req.Summary, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode summary: %w", err)
	}

	var b strings.Builder
	b.WriteString("Your task is to provide concise, data-driven answers to questions about the survey's progress and quality.\n\n")
	b.WriteString("Here is a summary of the current dataset you are analyzing:\n")
	b.WriteString("```json\n")
	b.Write(summary)
	b.WriteString("\n```\n\n")
	fmt.Fprintf(&b, "You also have access to the full dataset of %d submissions if you need to calculate more specific details.\n\n", req.SubmissionCount)
	fmt.Fprintf(&b, "User's Question:\n%q\n\n", req.Question)
	b.WriteString("Your Response:\n")
	b.WriteString("Provide a clear and direct answer based on the provided data summary. ")
	b.WriteString("Use markdown for formatting, especially for lists or tables. Be professional and concise.\n")

	return b.String(), nil
}
