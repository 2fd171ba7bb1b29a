package sheets

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"SurveyMonitor/internal/config"
	"SurveyMonitor/internal/domain"
	"SurveyMonitor/internal/sheet"
)

var (
	gvizResponseExpr = regexp.MustCompile(`(?s)google\.visualization\.Query\.setResponse\((.*)\)`)
	gvizDateExpr     = regexp.MustCompile(`^Date\((\d+),(\d+),(\d+)(?:,(\d+),(\d+),(\d+))?`)
)

type gvizCell struct {
	V any    `json:"v"`
	F string `json:"f"`
}

type gvizResponse struct {
	Status string `json:"status"`
	Errors []struct {
		Reason          string `json:"reason"`
		Message         string `json:"message"`
		DetailedMessage string `json:"detailed_message"`
	} `json:"errors"`
	Table struct {
		Cols []struct {
			ID    string `json:"id"`
			Label string `json:"label"`
			Type  string `json:"type"`
		} `json:"cols"`
		Rows []struct {
			C []*gvizCell `json:"c"`
		} `json:"rows"`
	} `json:"table"`
}

// GvizReader reads a sheet through the Google Visualization query endpoint.
type GvizReader struct {
	client *http.Client
}

var _ sheet.Reader = (*GvizReader)(nil)

// NewGvizReader wires an HTTP client; nil selects a client with a 20s timeout.
func NewGvizReader(client *http.Client) *GvizReader {
	return &GvizReader{client: defaultClient(client)}
}

// Name identifies the strategy inside the registry.
func (g *GvizReader) Name() string {
	return config.SheetFormatGviz
}

// Read fetches the sheet tab and converts each table row into a RawRow keyed by column label.
func (g *GvizReader) Read(ctx context.Context, req sheet.Request) ([]domain.RawRow, error) {
	pageURL, err := buildSheetURL(req, nil)
	if err != nil {
		return nil, err
	}

	body, err := fetch(ctx, g.client, pageURL)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	text, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	resp, err := parseGvizResponse(string(text))
	if err != nil {
		return nil, err
	}

	return transformTable(resp), nil
}

// parseGvizResponse unwraps the JSONP envelope the endpoint answers with.
func parseGvizResponse(text string) (gvizResponse, error) {
	var resp gvizResponse

	match := gvizResponseExpr.FindStringSubmatch(text)
	if len(match) < 2 || strings.TrimSpace(match[1]) == "" {
		return resp, fmt.Errorf("invalid gviz response format")
	}

	if err := json.Unmarshal([]byte(match[1]), &resp); err != nil {
		return resp, fmt.Errorf("decode gviz payload: %w", err)
	}

	if resp.Status == "error" {
		msg := "unknown error"
		if len(resp.Errors) > 0 {
			msg = resp.Errors[0].DetailedMessage
			if msg == "" {
				msg = resp.Errors[0].Message
			}
		}
		return resp, fmt.Errorf("gviz query failed: %s", msg)
	}

	return resp, nil
}

func transformTable(resp gvizResponse) []domain.RawRow {
	headers := make([]string, len(resp.Table.Cols))
	for i, col := range resp.Table.Cols {
		headers[i] = col.Label
	}

	rows := make([]domain.RawRow, 0, len(resp.Table.Rows))
	for _, r := range resp.Table.Rows {
		record := make(map[string]string, len(headers))
		for i, cell := range r.C {
			if i >= len(headers) || headers[i] == "" || cell == nil {
				continue
			}
			if v, ok := cellText(cell.V); ok {
				record[headers[i]] = v
			}
		}
		rows = append(rows, domain.RawRowFromRecord(record))
	}

	return rows
}

// cellText renders a primitive cell value; false means the cell is null.
func cellText(v any) (string, bool) {
	switch val := v.(type) {
	case nil:
		return "", false
	case string:
		if ts, ok := parseGvizDate(val); ok {
			return ts.Format(sheetTimestampLayout), true
		}
		return val, true
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(val), true
	default:
		return fmt.Sprint(val), true
	}
}

// parseGvizDate decodes the Date(y,m,d[,h,mi,s]) literal; months are zero-based.
func parseGvizDate(s string) (time.Time, bool) {
	m := gvizDateExpr.FindStringSubmatch(s)
	if m == nil {
		return time.Time{}, false
	}

	n := make([]int, 6)
	for i := range n {
		if m[i+1] == "" {
			continue
		}
		v, err := strconv.Atoi(m[i+1])
		if err != nil {
			return time.Time{}, false
		}
		n[i] = v
	}

	return time.Date(n[0], time.Month(n[1]+1), n[2], n[3], n[4], n[5], 0, time.UTC), true
}
