package api

import (
	"github.com/gin-gonic/gin"

	summaryDelivery "summaryhub-backend/internal/summary/delivery"
	"summaryhub-backend/pkg/metrics"
)

func SetupRoutes(r *gin.Engine, summaryHandler *summaryDelivery.SummaryHandler, m *metrics.Metrics) {
	summaryHandler.RegisterRoutes(r)

	// Prometheus scrape endpoint
	if m != nil {
		r.GET("/metrics", gin.WrapH(m.Handler()))
	}
}
