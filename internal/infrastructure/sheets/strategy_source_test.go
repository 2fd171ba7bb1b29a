package sheets

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"SurveyMonitor/internal/config"
	"SurveyMonitor/internal/sheet"
)

func TestStrategySourcePlaceholderSkipsNetwork(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	defer server.Close()

	reg := sheet.NewRegistry()
	reg.Register(NewGvizReader(server.Client()))

	src := NewStrategySource(reg, config.SheetConfig{ID: config.PlaceholderSheetID, Format: config.SheetFormatGviz, BaseURL: server.URL}, nil)
	_, err := src.FetchRows(context.Background())
	if !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
	if hits.Load() != 0 {
		t.Fatalf("placeholder sheet id must not hit the network")
	}
}

func TestStrategySourceFetchRows(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(gvizFixture))
	}))
	defer server.Close()

	reg := sheet.NewRegistry()
	reg.Register(NewGvizReader(server.Client()))
	reg.Register(NewHTMLReader(server.Client()))

	src := NewStrategySource(reg, config.SheetConfig{
		ID:      "abc",
		Name:    "Data",
		Format:  config.SheetFormatGviz,
		BaseURL: server.URL,
		Timeout: time.Second,
	}, nil)

	rows, err := src.FetchRows(context.Background())
	if err != nil {
		t.Fatalf("FetchRows error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
}

func TestStrategySourceUnknownFormat(t *testing.T) {
	t.Parallel()

	src := NewStrategySource(sheet.NewRegistry(), config.SheetConfig{ID: "abc", Format: "csv"}, nil)
	if _, err := src.FetchRows(context.Background()); err == nil {
		t.Fatalf("expected error for unregistered format")
	}
}
