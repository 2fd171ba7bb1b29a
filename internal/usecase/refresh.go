package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"SurveyMonitor/internal/domain"
	"SurveyMonitor/internal/ports"
	"SurveyMonitor/internal/processor"
)

// SourceKind tells which row source produced a snapshot.
type SourceKind string

const (
	SourceLive      SourceKind = "live"
	SourceGenerated SourceKind = "generated"
)

// ErrNoSource is returned when neither the live feed nor the fallback can supply rows.
var ErrNoSource = errors.New("no row source available")

// Snapshot is one published dashboard computation.
type Snapshot struct {
	ID     string               `json:"id"`
	Source SourceKind           `json:"source"`
	Data   domain.DashboardData `json:"data"`
}

// RefreshDeps wires the row sources and processing options into the refresher.
type RefreshDeps struct {
	Source        ports.RowSource
	Fallback      ports.RowSource
	OverallTarget int
	Location      *time.Location
	Clock         func() time.Time
	Logger        *slog.Logger
}

// Refresher fetches rows, runs the processor and publishes the resulting snapshot.
type Refresher struct {
	source        ports.RowSource
	fallback      ports.RowSource
	overallTarget int
	location      *time.Location
	clock         func() time.Time
	logger        *slog.Logger

	group   singleflight.Group
	current atomic.Pointer[Snapshot]
}

// NewRefresher constructs the refresh use case.
func NewRefresher(deps RefreshDeps) *Refresher {
	clock := deps.Clock
	if clock == nil {
		clock = time.Now
	}
	loc := deps.Location
	if loc == nil {
		loc = time.UTC
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Refresher{
		source:        deps.Source,
		fallback:      deps.Fallback,
		overallTarget: deps.OverallTarget,
		location:      loc,
		clock:         clock,
		logger:        logger,
	}
}

// Current returns the latest published snapshot, or nil before the first refresh.
func (r *Refresher) Current() *Snapshot {
	return r.current.Load()
}

// Refresh recomputes the dashboard. Concurrent callers share one in-flight run
// and all receive its snapshot. The shared run keeps ctx values but not its
// cancellation, so one caller leaving does not fail the others.
func (r *Refresher) Refresh(ctx context.Context) (*Snapshot, error) {
	v, err, shared := r.group.Do("refresh", func() (any, error) {
		return r.refresh(context.WithoutCancel(ctx))
	})
	if err != nil {
		return nil, err
	}
	if shared {
		r.logger.Debug("joined in-flight refresh")
	}

	return v.(*Snapshot), nil
}

func (r *Refresher) refresh(ctx context.Context) (*Snapshot, error) {
	rows, kind, err := r.fetch(ctx)
	if err != nil {
		return nil, err
	}

	data := processor.Process(rows, processor.Options{
		OverallTarget: r.overallTarget,
		Location:      r.location,
		Now:           r.clock(),
	})
	if kind == SourceGenerated {
		data.StatusMessage = fmt.Sprintf("Latest submissions from %d LGAs available.", len(data.Metadata.LGAs))
	}

	snap := &Snapshot{
		ID:     uuid.NewString(),
		Source: kind,
		Data:   data,
	}
	r.current.Store(snap)

	r.logger.Info("dashboard refreshed",
		"snapshot", snap.ID,
		"source", string(kind),
		"rows", len(rows),
		"submissions", data.Summary.TotalSubmissions)

	return snap, nil
}

func (r *Refresher) fetch(ctx context.Context) ([]domain.RawRow, SourceKind, error) {
	if r.source != nil {
		rows, err := r.source.FetchRows(ctx)
		switch {
		case err != nil:
			r.logger.Warn("live source failed, using generated data", "error", err)
		case len(rows) == 0:
			r.logger.Warn("live source returned no rows, using generated data")
		default:
			return rows, SourceLive, nil
		}
	}

	if r.fallback == nil {
		return nil, "", ErrNoSource
	}

	rows, err := r.fallback.FetchRows(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("fallback rows: %w", err)
	}

	return rows, SourceGenerated, nil
}
