package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/sim-results-etl/internal/adapter/engine"
	httpadapter "github.com/couchcryptid/sim-results-etl/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/sim-results-etl/internal/adapter/kafka"
	"github.com/couchcryptid/sim-results-etl/internal/config"
	"github.com/couchcryptid/sim-results-etl/internal/domain"
	"github.com/couchcryptid/sim-results-etl/internal/observability"
	"github.com/couchcryptid/sim-results-etl/internal/pipeline"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	// Grid metadata gates geocoding (feature-flagged via GEOCODE_ENABLED).
	var metadata *domain.SimulationMetadata
	if cfg.GeocodeEnabled {
		md, err := config.LoadGridMetadata(cfg.GridMetadataFile)
		if err != nil {
			logger.Error("failed to load grid metadata", "error", err)
			os.Exit(1)
		}
		if !md.HasDegrees() {
			logger.Error("grid metadata has no geographic bounding box, cannot geocode",
				"file", cfg.GridMetadataFile)
			os.Exit(1)
		}
		metadata = &md
		logger.Info("geocoding enabled",
			"patch_size_meters", md.PatchSizeMeters, "file", cfg.GridMetadataFile)
	} else {
		logger.Info("geocoding disabled")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	writer := kafkaadapter.NewWriter(cfg, logger)

	var (
		extractor pipeline.ChunkExtractor
		closers   []func() error
	)
	switch cfg.Source {
	case config.SourceEngine:
		client := engine.NewClient(cfg.EngineURL, cfg.EngineAPIKey, logger)
		code, err := os.ReadFile(cfg.EngineCodeFile)
		if err != nil {
			logger.Error("failed to read simulation code", "error", err)
			os.Exit(1)
		}
		run := engine.RunRequest{
			Code:       string(code),
			Simulation: cfg.EngineSimulation,
			Replicates: cfg.EngineReplicates,
		}
		if err := client.Start(ctx, run); err != nil {
			logger.Error("failed to start engine run", "error", err)
			os.Exit(1)
		}
		extractor = client
		closers = append(closers, client.Close)
	default:
		reader := kafkaadapter.NewReader(cfg, logger)
		extractor = reader
		closers = append(closers, reader.Close)
	}
	closers = append(closers, writer.Close)

	p := pipeline.New(extractor, writer, logger, metrics, pipeline.Options{
		Metadata:      metadata,
		SkipMalformed: cfg.SkipMalformed,
	})

	srv := httpadapter.NewServer(cfg.HTTPAddr, p, logger)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := p.Run(ctx); err != nil {
			logger.Error("pipeline error", "error", err)
		}
	}()

	select {
	case <-ctx.Done():
	case <-done:
	}
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	for _, closeFn := range closers {
		if err := closeFn(); err != nil {
			logger.Error("close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
