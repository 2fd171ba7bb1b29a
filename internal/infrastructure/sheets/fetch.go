package sheets

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"SurveyMonitor/internal/sheet"
)

const (
	userAgent            = "SurveyMonitor/1.0"
	defaultBaseURL       = "https://docs.google.com/spreadsheets/d"
	sheetTimestampLayout = "1/2/2006, 15:04:05"
	maxBodyBytes         = 32 << 20
)

func defaultClient(client *http.Client) *http.Client {
	if client == nil {
		client = &http.Client{Timeout: 20 * time.Second}
	}
	return client
}

// buildSheetURL points at the gviz query endpoint of one sheet tab.
func buildSheetURL(req sheet.Request, extra url.Values) (string, error) {
	if req.SheetID == "" {
		return "", fmt.Errorf("sheet id is empty")
	}

	base := req.BaseURL
	if base == "" {
		base = defaultBaseURL
	}

	parsed, err := url.Parse(strings.TrimSuffix(base, "/") + "/" + url.PathEscape(req.SheetID) + "/gviz/tq")
	if err != nil {
		return "", fmt.Errorf("invalid sheet url %s: %w", base, err)
	}

	query := parsed.Query()
	query.Set("sheet", req.SheetName)
	for k, vs := range extra {
		for _, v := range vs {
			query.Set(k, v)
		}
	}
	parsed.RawQuery = query.Encode()
	return parsed.String(), nil
}

func fetch(ctx context.Context, client *http.Client, pageURL string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request sheet: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("sheet returned %s", resp.Status)
	}

	return struct {
		io.Reader
		io.Closer
	}{io.LimitReader(resp.Body, maxBodyBytes), resp.Body}, nil
}
