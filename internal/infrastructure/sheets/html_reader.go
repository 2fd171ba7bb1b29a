package sheets

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"SurveyMonitor/internal/config"
	"SurveyMonitor/internal/domain"
	"SurveyMonitor/internal/sheet"
)

// HTMLReader scrapes the HTML table export of a sheet tab.
type HTMLReader struct {
	client *http.Client
}

var _ sheet.Reader = (*HTMLReader)(nil)

// NewHTMLReader wires an HTTP client; nil selects a client with a 20s timeout.
func NewHTMLReader(client *http.Client) *HTMLReader {
	return &HTMLReader{client: defaultClient(client)}
}

// Name identifies the strategy inside the registry.
func (h *HTMLReader) Name() string {
	return config.SheetFormatHTML
}

// Read fetches the HTML export and maps the first table onto rows.
func (h *HTMLReader) Read(ctx context.Context, req sheet.Request) ([]domain.RawRow, error) {
	pageURL, err := buildSheetURL(req, url.Values{"tqx": {"out:html"}})
	if err != nil {
		return nil, err
	}

	body, err := fetch(ctx, h.client, pageURL)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}

	return extractTable(doc)
}

// extractTable treats the first row with cells as the header row.
func extractTable(doc *goquery.Document) ([]domain.RawRow, error) {
	table := doc.Find("table").First()
	if table.Length() == 0 {
		return nil, fmt.Errorf("no table in sheet export")
	}

	var (
		headers []string
		rows    []domain.RawRow
	)

	table.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		cells := tr.Find("th, td")
		if cells.Length() == 0 {
			return
		}

		if headers == nil {
			headers = make([]string, 0, cells.Length())
			cells.Each(func(_ int, c *goquery.Selection) {
				headers = append(headers, cleanCell(c.Text()))
			})
			return
		}

		record := make(map[string]string, len(headers))
		cells.Each(func(i int, c *goquery.Selection) {
			if i >= len(headers) || headers[i] == "" {
				return
			}
			if v := cleanCell(c.Text()); v != "" {
				record[headers[i]] = v
			}
		})
		rows = append(rows, domain.RawRowFromRecord(record))
	})

	if headers == nil {
		return nil, fmt.Errorf("sheet export has no header row")
	}

	return rows, nil
}

func cleanCell(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, "\u00a0", " "))
}
