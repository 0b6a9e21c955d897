package cli

import (
	"context"
	"fmt"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	api "summaryhub-backend/cmd/api"
	"summaryhub-backend/internal/summary/domain"
	"summaryhub-backend/internal/summary/normalizer"
	"summaryhub-backend/internal/summary/pipeline"
	summaryRepo "summaryhub-backend/internal/summary/repository"
	summaryUsecase "summaryhub-backend/internal/summary/usecase"
	"summaryhub-backend/pkg/config"
	"summaryhub-backend/pkg/database"
	"summaryhub-backend/pkg/metrics"
	"summaryhub-backend/pkg/zlog"
)

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
}

func runServe(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfg := config.Load()
	if err := cfg.LoadPlatforms(); err != nil {
		return err
	}

	if err := zlog.Init(zlog.Options{Level: cfg.LogLevel, Path: cfg.LogPath, Console: true}); err != nil {
		return err
	}
	defer zlog.Sync()

	// Initialize database
	db, err := database.NewConnection(cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	if err := database.AutoMigrate(db, &domain.SummaryRow{}); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	// Initialize repositories (dependency injection)
	repo, err := summaryRepo.NewCachedSummaryRepository(summaryRepo.NewSummaryRepository(db), cfg.HistoryCacheSize)
	if err != nil {
		return err
	}

	var m *metrics.Metrics
	if cfg.MetricsEnabled {
		m = metrics.New()
	}

	uc := summaryUsecase.NewSummaryUsecase(newPipeline(cfg), repo, m, cfg.BatchConcurrency)

	// Background ingestion
	ingestWorker := summaryUsecase.NewIngestWorkerService(uc, cfg.IngestWorkers, cfg.IngestQueueSize)
	ingestWorker.Start()
	defer ingestWorker.Stop()

	zlog.Info("summaryhub ready",
		zap.String("version", cfg.AppVersion),
		zap.String("db_driver", cfg.DBDriver),
		zap.Bool("enrich", cfg.EnrichRecords),
		zap.Bool("metrics", cfg.MetricsEnabled),
	)

	handler := api.NewHandler(cfg, uc, ingestWorker, m)
	return handler.Start(ctx, ":"+cfg.Port)
}

// newPipeline builds the summarize pipeline, layering the configured platform
// table over the built-in one
func newPipeline(cfg *config.Config) *pipeline.Pipeline {
	var styles map[string]normalizer.Style
	if len(cfg.Platforms) > 0 {
		styles = normalizer.DefaultPlatformStyles()
		for name, style := range cfg.Platforms {
			styles[strings.ToLower(strings.TrimSpace(name))] = normalizer.ParseStyle(style)
		}
	}
	return pipeline.New(normalizer.New(styles), pipeline.Options{Enrich: cfg.EnrichRecords})
}
