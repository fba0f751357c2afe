package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

const exportBaseURL = "https://docs.google.com/spreadsheets/d"

// ExportSource fetches the published CSV export of a spreadsheet.
// It needs no credentials but the sheet must be shared publicly.
type ExportSource struct {
	sheetID string
	baseURL string
	client  *http.Client
}

func NewExportSource(sheetID string) *ExportSource {
	return &ExportSource{
		sheetID: sheetID,
		baseURL: exportBaseURL,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

func (s *ExportSource) FetchCSV(ctx context.Context) (string, error) {
	url := fmt.Sprintf("%s/%s/export?format=csv", s.baseURL, s.sheetID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("build sheet request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch sheet: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", fmt.Errorf("fetch sheet %s: %w", s.sheetID, ErrNotFound)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("fetch sheet %s: %s", s.sheetID, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read sheet body: %w", err)
	}
	return string(body), nil
}
