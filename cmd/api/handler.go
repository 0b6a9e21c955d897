package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	summaryDelivery "summaryhub-backend/internal/summary/delivery"
	summaryUsecasePkg "summaryhub-backend/internal/summary/usecase"
	"summaryhub-backend/pkg/config"
	"summaryhub-backend/pkg/metrics"
	"summaryhub-backend/pkg/zlog"
)

const shutdownTimeout = 15 * time.Second

type Handler struct {
	config         *config.Config
	metrics        *metrics.Metrics
	summaryHandler *summaryDelivery.SummaryHandler
}

// NewHandler wires the HTTP layer. m is nil when metrics are disabled.
func NewHandler(cfg *config.Config, summaryUc summaryUsecasePkg.SummaryUsecase, ingestWorker *summaryUsecasePkg.IngestWorkerService, m *metrics.Metrics) *Handler {
	return &Handler{
		config:         cfg,
		metrics:        m,
		summaryHandler: summaryDelivery.NewSummaryHandler(summaryUc, ingestWorker, cfg.AppVersion),
	}
}

// Engine builds the gin engine with middleware and routes
func (h *Handler) Engine() *gin.Engine {
	switch h.config.GinMode {
	case gin.DebugMode, gin.TestMode:
		gin.SetMode(h.config.GinMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestLogger())
	r.Use(corsMiddleware(h.config.CORSOrigins))
	r.Use(securityHeaders(h.config.GinMode == gin.DebugMode))

	SetupRoutes(r, h.summaryHandler, h.metrics)
	return r
}

// Start serves on addr until ctx is cancelled, then drains in-flight requests
func (h *Handler) Start(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h.Engine(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		zlog.Info("server starting", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	zlog.Info("server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
