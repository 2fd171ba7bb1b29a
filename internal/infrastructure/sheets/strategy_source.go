package sheets

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"SurveyMonitor/internal/config"
	"SurveyMonitor/internal/domain"
	"SurveyMonitor/internal/ports"
	"SurveyMonitor/internal/sheet"
)

// ErrNotConfigured is returned when no real sheet id is configured.
var ErrNotConfigured = errors.New("sheet id is not configured")

// StrategySource implements RowSource via the reader registered for the configured format.
type StrategySource struct {
	registry *sheet.Registry
	cfg      config.SheetConfig
	logger   *slog.Logger
}

var _ ports.RowSource = (*StrategySource)(nil)

// NewStrategySource wires the reader registry with the configured sheet.
func NewStrategySource(reg *sheet.Registry, cfg config.SheetConfig, log *slog.Logger) *StrategySource {
	return &StrategySource{
		registry: reg,
		cfg:      cfg,
		logger:   log,
	}
}

// FetchRows reads the configured sheet. A placeholder id short-circuits without network access.
func (s *StrategySource) FetchRows(ctx context.Context) ([]domain.RawRow, error) {
	if !s.cfg.Configured() {
		return nil, ErrNotConfigured
	}
	if s.registry == nil {
		return nil, fmt.Errorf("sheet registry is not configured")
	}

	reader, err := s.registry.Resolve(s.cfg.Format)
	if err != nil {
		return nil, fmt.Errorf("sheet %s: %w", s.cfg.Name, err)
	}

	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}

	s.debug("fetch sheet", "sheet", s.cfg.Name, "format", reader.Name())

	rows, err := reader.Read(ctx, sheet.Request{
		SheetID:   s.cfg.ID,
		SheetName: s.cfg.Name,
		BaseURL:   s.cfg.BaseURL,
	})
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", s.cfg.Name, err)
	}

	s.debug("sheet produced rows", "sheet", s.cfg.Name, "count", len(rows))
	return rows, nil
}

func (s *StrategySource) debug(msg string, args ...interface{}) {
	if s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}
