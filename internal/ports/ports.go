package ports

import (
	"context"
	"errors"
	"time"

	"SurveyMonitor/internal/domain"
)

// RowSource pulls raw submission rows from a tabular feed or generator.
type RowSource interface {
	FetchRows(ctx context.Context) ([]domain.RawRow, error)
}

// ErrMissingAPIKey is returned by an Analyst that has no credential configured.
var ErrMissingAPIKey = errors.New("analysis API key is not configured")

// Analyst sends a rendered prompt to a language model and returns its answer.
type Analyst interface {
	Ask(ctx context.Context, prompt string) (string, error)
}

// Scheduler controls when refreshes execute.
type Scheduler interface {
	Start(ctx context.Context, job func(time.Time)) error
	Stop(ctx context.Context) error
}
