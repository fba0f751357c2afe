package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"tabiplan/internal/api"
	"tabiplan/internal/config"
	"tabiplan/internal/extract"
	applog "tabiplan/internal/log"
	"tabiplan/internal/session"
	"tabiplan/internal/source"
	"tabiplan/internal/weather"
)

func main() {
	// Setup structured logging
	logger := applog.New(applog.DefaultConfig())
	applog.SetDefault(logger)

	// Load .env if present; real env vars win either way.
	if err := godotenv.Load(); err == nil {
		logger.Info("loaded environment from .env file")
	}

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	src, err := source.New(ctx, source.Config{
		Kind:       source.Kind(cfg.SheetSource),
		SheetID:    cfg.SheetID,
		SheetRange: cfg.SheetRange,
		APIKey:     cfg.GoogleAPIKey,
	})
	if err != nil {
		logger.Error("failed to initialize sheet source", "error", err, "source", cfg.SheetSource)
		os.Exit(1)
	}
	logger.Info("initialized sheet source", "source", cfg.SheetSource, "sheet_id", cfg.SheetID)

	// Without a Gemini key the server still starts; loads fail with a
	// credential error the client can display.
	var gen extract.Generator
	if gemini, err := extract.NewGemini(ctx, cfg.GeminiAPIKey, cfg.GeminiModel); err != nil {
		logger.Warn("extraction backend unavailable", "error", err)
		gen = extract.Unconfigured{}
	} else {
		gen = gemini
		logger.Info("initialized extraction backend", "model", cfg.GeminiModel)
	}
	pipeline := extract.NewPipeline(gen, cfg.AnchorDate, cfg.TripDays, cfg.Participants)

	store := session.NewStore(src, pipeline, logger.WithComponent(applog.ComponentSession))
	forecaster := weather.NewClient(cfg.WeatherCacheTTL)

	srv := api.NewServer(store, forecaster, cfg.DebounceWindow, logger.WithComponent(applog.ComponentAPI))

	// Kick off the first load in the background so the server starts
	// serving immediately; clients see loading state until it lands.
	go func() {
		if err := store.Load(ctx); err != nil {
			logger.Warn("initial trip load failed", "error", err)
		}
	}()

	httpSrv := &http.Server{
		Addr:           ":" + cfg.Port,
		Handler:        srv.Handler(),
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   90 * time.Second, // extraction-triggering reloads are slow
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 16, // 64KB
	}

	// Graceful shutdown handling
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("shutdown signal received", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			logger.Error("server shutdown error", "error", err)
		}
		cancel()
	}()

	logger.Info("starting tabiplan server", "port", cfg.Port)
	if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server error", "error", err, "port", cfg.Port)
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("server stopped gracefully")
}
