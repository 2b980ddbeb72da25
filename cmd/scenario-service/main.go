package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpadapter "github.com/climatquartier/scenario-service/internal/adapter/http"
	kafkaadapter "github.com/climatquartier/scenario-service/internal/adapter/kafka"
	"github.com/climatquartier/scenario-service/internal/adapter/tablestore"
	"github.com/climatquartier/scenario-service/internal/catalog"
	"github.com/climatquartier/scenario-service/internal/config"
	"github.com/climatquartier/scenario-service/internal/domain"
	"github.com/climatquartier/scenario-service/internal/observability"
	"github.com/climatquartier/scenario-service/internal/pipeline"
)

// alwaysReady is the readiness checker when no pipeline runs.
type alwaysReady struct{}

func (alwaysReady) CheckReadiness(context.Context) error { return nil }

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	if err := domain.ValidateTables(); err != nil {
		logger.Error("invalid interpolation tables", "error", err)
		os.Exit(1)
	}

	zones, err := catalog.Load(cfg.ZonesFile)
	if err != nil {
		logger.Error("failed to load zone catalog", "error", err, "path", cfg.ZonesFile)
		os.Exit(1)
	}
	logger.Info("zone catalog loaded", "zones", len(zones.Zones()), "path", cfg.ZonesFile)

	// Remote baselines are feature-flagged via TABLESTORE_ENABLED / TABLESTORE_URL.
	var store domain.BaselineStore
	if cfg.TableStoreEnabled {
		client := tablestore.NewClient(cfg.TableStoreURL, cfg.TableStoreTable, cfg.TableStoreKey, cfg.TableStoreTimeout, metrics, logger)
		store = tablestore.NewCachedStore(client, cfg.TableStoreCacheSize, metrics)
		metrics.TableStoreEnabled.Set(1)
		logger.Info("table store enabled", "table", cfg.TableStoreTable, "cache_size", cfg.TableStoreCacheSize, "timeout", cfg.TableStoreTimeout)
	} else {
		logger.Info("table store disabled, using static baselines")
	}

	simulator := pipeline.NewSimulator(zones, store, logger, metrics)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var (
		ready  httpadapter.ReadinessChecker = alwaysReady{}
		reader *kafkaadapter.Reader
		writer *kafkaadapter.Writer
	)
	if cfg.KafkaEnabled {
		reader = kafkaadapter.NewReader(cfg, logger)
		writer = kafkaadapter.NewWriter(cfg, logger)
		p := pipeline.New(reader, simulator, writer, logger, metrics, cfg.BatchSize)
		ready = p

		go func() {
			if err := p.Run(ctx); err != nil {
				logger.Error("pipeline error", "error", err)
			}
		}()
	} else {
		logger.Info("kafka pipeline disabled, serving HTTP API only")
	}

	srv := httpadapter.NewServer(cfg.HTTPAddr, ready, zones, simulator, logger)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if reader != nil {
		if err := reader.Close(); err != nil {
			logger.Error("kafka reader close error", "error", err)
		}
	}
	if writer != nil {
		if err := writer.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
