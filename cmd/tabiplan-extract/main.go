// Command tabiplan-extract runs the sheet-to-itinerary pipeline once and
// prints the resulting trip as JSON. Useful for inspecting what the
// extraction produces without running the server.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"tabiplan/internal/config"
	"tabiplan/internal/core"
	"tabiplan/internal/extract"
	"tabiplan/internal/source"
)

func main() {
	csvPath := flag.String("csv", "", "read plan CSV from this file instead of fetching the sheet")
	timeout := flag.Duration("timeout", 2*time.Minute, "overall deadline for fetch and extraction")
	flag.Parse()

	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		fatal("invalid configuration: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	csvText, err := readPlan(ctx, cfg, *csvPath)
	if err != nil {
		fatal("fetch plan: %v", err)
	}

	gemini, err := extract.NewGemini(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		fatal("init extraction: %v", err)
	}
	pipeline := extract.NewPipeline(gemini, cfg.AnchorDate, cfg.TripDays, cfg.Participants)

	trip, err := pipeline.Extract(ctx, csvText)
	if err != nil {
		fatal("extract itinerary: %v", err)
	}
	trip = core.Recalculate(trip)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(trip); err != nil {
		fatal("encode trip: %v", err)
	}
}

func readPlan(ctx context.Context, cfg *config.Config, csvPath string) (string, error) {
	if csvPath != "" {
		data, err := os.ReadFile(csvPath)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
	src, err := source.New(ctx, source.Config{
		Kind:       source.Kind(cfg.SheetSource),
		SheetID:    cfg.SheetID,
		SheetRange: cfg.SheetRange,
		APIKey:     cfg.GoogleAPIKey,
	})
	if err != nil {
		return "", err
	}
	return src.FetchCSV(ctx)
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "tabiplan-extract: "+format+"\n", args...)
	os.Exit(1)
}
