package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"SurveyMonitor/internal/config"
	"SurveyMonitor/internal/infrastructure/generator"
	"SurveyMonitor/internal/infrastructure/llm"
	"SurveyMonitor/internal/infrastructure/scheduler"
	"SurveyMonitor/internal/infrastructure/sheets"
	"SurveyMonitor/internal/infrastructure/web"
	"SurveyMonitor/internal/logging"
	"SurveyMonitor/internal/sheet"
	"SurveyMonitor/internal/usecase"
)

// Application wires configs to use cases and lifecycle orchestration.
type Application struct {
	cfg       config.Config
	logger    *slog.Logger
	refresher *usecase.Refresher
	analysis  *usecase.Analysis
	scheduler *usecase.Scheduler
	server    *web.Server
}

// New builds the application graph from cfg.
func New(ctx context.Context, cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}
	loc := cfg.Dashboard.Location()

	registry := sheet.NewRegistry()
	registry.Register(sheets.NewGvizReader(nil))
	registry.Register(sheets.NewHTMLReader(nil))

	source := sheets.NewStrategySource(registry, cfg.Sheet, baseLogger.With("component", "sheet"))
	fallback := generator.New(cfg.Generator.Rows, cfg.Generator.Seed, time.Now)

	refresher := usecase.NewRefresher(usecase.RefreshDeps{
		Source:        source,
		Fallback:      fallback,
		OverallTarget: cfg.Dashboard.OverallTarget,
		Location:      loc,
		Logger:        baseLogger.With("component", "refresh"),
	})

	analyst, err := llm.New(ctx, cfg.Analysis)
	if err != nil {
		return nil, fmt.Errorf("build analyst: %w", err)
	}
	analysis := usecase.NewAnalysis(analyst, baseLogger.With("component", "analysis"))

	driver := scheduler.NewCronScheduler(cfg.Refresh.CronExpression, loc, baseLogger.With("component", "cron"))

	return &Application{
		cfg:       cfg,
		logger:    baseLogger,
		refresher: refresher,
		analysis:  analysis,
		scheduler: usecase.NewScheduler(driver, refresher, baseLogger.With("component", "scheduler")),
		server: web.NewServer(cfg.Server.Addr, refresher, analysis, loc,
			baseLogger.With("component", "http")),
	}, nil
}

// Serve loads the first snapshot, starts scheduled refreshes and blocks on
// the HTTP server until ctx is cancelled.
func (a *Application) Serve(ctx context.Context) error {
	if _, err := a.refresher.Refresh(ctx); err != nil {
		a.logger.Error("initial refresh failed", "error", err)
	}

	if err := a.scheduler.Start(ctx); err != nil {
		return fmt.Errorf("start scheduler: %w", err)
	}
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := a.scheduler.Stop(stopCtx); err != nil {
			a.logger.Warn("stop scheduler", "error", err)
		}
	}()

	return a.server.ListenAndServe(ctx)
}

// Snapshot performs one refresh and returns its result.
func (a *Application) Snapshot(ctx context.Context) (*usecase.Snapshot, error) {
	return a.refresher.Refresh(ctx)
}

// Ask refreshes the data, applies filter and forwards question to the analyst.
func (a *Application) Ask(ctx context.Context, question, lga string, filter usecase.AnalysisFilter) (string, error) {
	snap, err := a.refresher.Refresh(ctx)
	if err != nil {
		return "", err
	}

	data := usecase.FilterByLGA(snap.Data, lga)
	data = usecase.ApplyAnalysisFilter(data, filter)
	return a.analysis.Ask(ctx, data, question), nil
}
