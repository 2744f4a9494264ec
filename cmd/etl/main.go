package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/couchcryptid/metar-etl-service/internal/adapter/httpadapter"
	kafkaadapter "github.com/couchcryptid/metar-etl-service/internal/adapter/kafka"
	"github.com/couchcryptid/metar-etl-service/internal/adapter/stations"
	"github.com/couchcryptid/metar-etl-service/internal/config"
	"github.com/couchcryptid/metar-etl-service/internal/domain"
	"github.com/couchcryptid/metar-etl-service/internal/observability"
	"github.com/couchcryptid/metar-etl-service/internal/pipeline"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	// Station enrichment is feature-flagged via STATION_LOOKUP_ENABLED.
	var directory domain.StationDirectory
	if cfg.StationLookupEnabled {
		client := stations.NewClient(cfg.StationAPIURL, cfg.StationTimeout, metrics, logger)
		cached, err := stations.NewCachedDirectory(client, cfg.StationCacheSize, metrics)
		if err != nil {
			logger.Error("failed to create station cache", "error", err)
			os.Exit(1)
		}
		directory = cached
		metrics.StationEnabled.Set(1)
		logger.Info("station lookup enabled",
			"url", cfg.StationAPIURL,
			"cache_size", cfg.StationCacheSize,
			"timeout", cfg.StationTimeout,
		)
	} else {
		logger.Info("station lookup disabled")
	}

	reader := kafkaadapter.NewReader(cfg, logger)
	writer := kafkaadapter.NewWriter(cfg, logger)
	transformer := pipeline.NewTransformer(directory, cfg.MonthRollover, cfg.SinkFormat, logger, metrics)

	p := pipeline.New(reader, transformer, writer, logger, metrics, cfg.BatchSize)

	srv := httpadapter.NewServer(cfg.HTTPAddr, p, cfg.MonthRollover, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		return p.Run(gctx)
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("service error", "error", err)
	}

	if err := reader.Close(); err != nil {
		logger.Error("kafka reader close error", "error", err)
	}
	if err := writer.Close(); err != nil {
		logger.Error("kafka writer close error", "error", err)
	}

	logger.Info("shutdown complete")
}
