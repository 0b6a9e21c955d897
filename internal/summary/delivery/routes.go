package delivery

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the summarizer endpoints on r
func (h *SummaryHandler) RegisterRoutes(r gin.IRouter) {
	r.GET("/health", h.Health)

	r.POST("/summarize", h.Summarize)
	r.POST("/summarize/batch", h.SummarizeBatch)
	r.POST("/summarize/email", h.SummarizeEmail)
	r.POST("/classify", h.Classify)
	r.POST("/entities", h.Entities)
	r.POST("/message_cleaner", h.Clean)
	r.POST("/ingest", h.Ingest)

	r.GET("/history/:summary_id", h.GetHistory)
	r.GET("/context", h.GetContext)
	r.GET("/search", h.Search)
}
