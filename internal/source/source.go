package source

import (
	"context"
	"errors"
	"fmt"
)

// SheetSource is the port for fetching the raw trip plan as CSV text.
type SheetSource interface {
	FetchCSV(ctx context.Context) (string, error)
}

// ErrNotFound marks a sheet that does not exist or is not shared publicly.
var ErrNotFound = errors.New("sheet not found or not public")

// Kind selects a source adapter.
type Kind string

const (
	KindExport Kind = "csv" // public CSV export, no credentials
	KindAPI    Kind = "api" // Sheets API, needs an API key
)

// Config holds what the adapters need.
type Config struct {
	Kind       Kind
	SheetID    string
	SheetRange string
	APIKey     string
}

// New creates the source adapter selected by the config.
func New(ctx context.Context, cfg Config) (SheetSource, error) {
	switch cfg.Kind {
	case KindExport, "":
		return NewExportSource(cfg.SheetID), nil
	case KindAPI:
		return NewAPISource(ctx, cfg.SheetID, cfg.SheetRange, cfg.APIKey)
	default:
		return nil, fmt.Errorf("unsupported sheet source: %s", cfg.Kind)
	}
}
