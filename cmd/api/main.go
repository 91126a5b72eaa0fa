package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/videxhq/videx-backend/api/routes"
	"github.com/videxhq/videx-backend/internal/catalog"
	"github.com/videxhq/videx-backend/internal/ingest"
	"github.com/videxhq/videx-backend/internal/stream"
	"github.com/videxhq/videx-backend/pkg/blob"
	"github.com/videxhq/videx-backend/pkg/config"
	"github.com/videxhq/videx-backend/pkg/logger"
	"github.com/videxhq/videx-backend/pkg/metrics"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	blobStore, err := newBlobStore(context.Background(), cfg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap blob store", err)
		os.Exit(1)
	}

	catalogStore, err := catalog.NewStore(cfg.Catalog.Path, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to load catalog", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	mediaMetrics := metrics.NewMediaMetrics(registry)

	catalogService, err := catalog.NewService(catalogStore, blobStore, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}

	ingestService, err := ingest.NewService(catalogStore, blobStore, logg, mediaMetrics)
	if err != nil {
		logg.Error(context.Background(), "failed to create ingest service", err)
		os.Exit(1)
	}

	streamService, err := stream.NewService(blobStore)
	if err != nil {
		logg.Error(context.Background(), "failed to create stream service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":     cfg.App.Env,
		"addr":    addr,
		"storage": cfg.Storage.Backend,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg, logg, blobStore,
			catalogService, ingestService, streamService,
			mediaMetrics, registry,
		),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       2 * time.Minute,
		// No write timeout: media streams and 2 GiB uploads legitimately
		// outlive any fixed budget. Per-request contexts still cancel on
		// client disconnect.
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

func newBlobStore(ctx context.Context, cfg *config.Config) (blob.Store, error) {
	if cfg.Storage.IsS3() {
		return blob.NewS3Store(ctx, cfg.S3)
	}
	return blob.NewFSStore(cfg.Storage.Root)
}
