// Package web serves the dashboard page and its JSON API.
package web

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"SurveyMonitor/internal/domain"
	"SurveyMonitor/internal/usecase"
)

const (
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 5 * time.Second
	maxBodyBytes      = 1 << 20
)

// Dashboard publishes snapshots.
type Dashboard interface {
	Current() *usecase.Snapshot
	Refresh(ctx context.Context) (*usecase.Snapshot, error)
}

// Analyst answers questions about a snapshot.
type Analyst interface {
	Ask(ctx context.Context, data domain.DashboardData, question string) string
}

// Server exposes the dashboard over HTTP.
type Server struct {
	addr      string
	dashboard Dashboard
	analyst   Analyst
	location  *time.Location
	logger    *slog.Logger
}

// NewServer wires the use cases behind an HTTP listener on addr.
func NewServer(addr string, dashboard Dashboard, analyst Analyst, loc *time.Location, logger *slog.Logger) *Server {
	if loc == nil {
		loc = time.UTC
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Server{
		addr:      addr,
		dashboard: dashboard,
		analyst:   analyst,
		location:  loc,
		logger:    logger,
	}
}

// Handler returns the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handlePage)
	mux.HandleFunc("GET /api/dashboard", s.handleDashboard)
	mux.HandleFunc("POST /api/refresh", s.handleRefresh)
	mux.HandleFunc("POST /api/analyze", s.handleAnalyze)
	return mux
}

// ListenAndServe blocks until ctx is cancelled or the listener fails.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", "addr", s.addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen %s: %w", s.addr, err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}
	return nil
}

// snapshot returns the current snapshot, refreshing once if none exists yet.
func (s *Server) snapshot(ctx context.Context) (*usecase.Snapshot, error) {
	if snap := s.dashboard.Current(); snap != nil {
		return snap, nil
	}
	return s.dashboard.Refresh(ctx)
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	snap, err := s.snapshot(r.Context())
	if err != nil {
		s.logger.Error("load snapshot", "error", err)
		writeJSONError(w, http.StatusServiceUnavailable, "survey data unavailable")
		return
	}

	lga := strings.TrimSpace(r.URL.Query().Get("lga"))
	data := usecase.FilterByLGA(snap.Data, lga)

	var buf bytes.Buffer
	if err := renderDashboard(&buf, data, lga); err != nil {
		writeJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	snap, err := s.snapshot(r.Context())
	if err != nil {
		s.logger.Error("load snapshot", "error", err)
		writeJSONError(w, http.StatusServiceUnavailable, "survey data unavailable")
		return
	}

	out := *snap
	out.Data = usecase.FilterByLGA(snap.Data, strings.TrimSpace(r.URL.Query().Get("lga")))
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	snap, err := s.dashboard.Refresh(r.Context())
	if err != nil {
		s.logger.Error("manual refresh", "error", err)
		writeJSONError(w, http.StatusBadGateway, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

type analyzeRequest struct {
	Question string   `json:"question"`
	LGA      string   `json:"lga"`
	Status   string   `json:"status"`
	QCFlags  []string `json:"qcFlags"`
	Start    string   `json:"start"`
	End      string   `json:"end"`
}

type analyzeResponse struct {
	Answer          string `json:"answer"`
	SubmissionCount int    `json:"submissionCount"`
	Filtered        bool   `json:"filtered"`
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	filter, err := s.analysisFilter(req)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	snap, err := s.snapshot(r.Context())
	if err != nil {
		s.logger.Error("load snapshot", "error", err)
		writeJSONError(w, http.StatusServiceUnavailable, "survey data unavailable")
		return
	}

	data := usecase.FilterByLGA(snap.Data, strings.TrimSpace(req.LGA))
	data = usecase.ApplyAnalysisFilter(data, filter)

	writeJSON(w, http.StatusOK, analyzeResponse{
		Answer:          s.analyst.Ask(r.Context(), data, req.Question),
		SubmissionCount: len(data.Submissions),
		Filtered:        filter.Active(),
	})
}

func (s *Server) analysisFilter(req analyzeRequest) (usecase.AnalysisFilter, error) {
	f := usecase.AnalysisFilter{Status: req.Status, QCFlags: req.QCFlags}

	var err error
	if f.Start, err = s.parseBound(req.Start); err != nil {
		return f, fmt.Errorf("invalid start: %w", err)
	}
	if f.End, err = s.parseBound(req.End); err != nil {
		return f, fmt.Errorf("invalid end: %w", err)
	}
	return f, nil
}

func (s *Server) parseBound(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, nil
	}
	return dateparse.ParseIn(raw, s.location)
}
