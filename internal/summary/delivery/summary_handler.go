package delivery

import (
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"summaryhub-backend/internal/summary/domain"
	summarydto "summaryhub-backend/internal/summary/dto"
	"summaryhub-backend/internal/summary/usecase"
)

const (
	// MaxBatchSize bounds /summarize/batch and /ingest requests
	MaxBatchSize = 100
	// maxEmailBytes bounds a raw message posted to /summarize/email
	maxEmailBytes = 5 << 20
)

// SummaryHandler handles the summarizer API endpoints
type SummaryHandler struct {
	summaryUsecase usecase.SummaryUsecase
	ingestWorker   *usecase.IngestWorkerService
	version        string
}

// NewSummaryHandler creates a new SummaryHandler. ingestWorker may be nil, which
// disables /ingest.
func NewSummaryHandler(summaryUsecase usecase.SummaryUsecase, ingestWorker *usecase.IngestWorkerService, version string) *SummaryHandler {
	return &SummaryHandler{
		summaryUsecase: summaryUsecase,
		ingestWorker:   ingestWorker,
		version:        version,
	}
}

// GET /health
func (h *SummaryHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, summarydto.HealthResponse{Status: "ok", Version: h.version})
}

// POST /summarize
// Summarize returns the new record; X-Summary-Persisted tells whether it was stored
func (h *SummaryHandler) Summarize(c *gin.Context) {
	var payload domain.MessagePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := h.summaryUsecase.Summarize(c.Request.Context(), payload)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to summarize message"})
		return
	}

	c.Header("X-Summary-Persisted", strconv.FormatBool(res.Persisted()))
	c.JSON(http.StatusOK, res.Record)
}

// POST /summarize/batch
func (h *SummaryHandler) SummarizeBatch(c *gin.Context) {
	var req summarydto.BatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(req.Messages) > MaxBatchSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "too many messages, max " + strconv.Itoa(MaxBatchSize)})
		return
	}

	results, err := h.summaryUsecase.SummarizeBatch(c.Request.Context(), req.Messages)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	records := make([]*domain.SummaryRecord, 0, len(results))
	for _, res := range results {
		records = append(records, res.Record)
	}
	c.JSON(http.StatusOK, summarydto.BatchResponse{Results: records})
}

// POST /summarize/email?user_id=&message_id=
// SummarizeEmail takes a raw RFC 5322 message as the request body
func (h *SummaryHandler) SummarizeEmail(c *gin.Context) {
	userID := strings.TrimSpace(c.Query("user_id"))
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id is required"})
		return
	}

	body := io.LimitReader(c.Request.Body, maxEmailBytes)
	res, err := h.summaryUsecase.SummarizeEmail(c.Request.Context(), userID, c.Query("message_id"), body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.Header("X-Summary-Persisted", strconv.FormatBool(res.Persisted()))
	c.JSON(http.StatusOK, res.Record)
}

// POST /classify
func (h *SummaryHandler) Classify(c *gin.Context) {
	var req summarydto.ClassifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result := h.summaryUsecase.Classify(req.Platform, req.MessageText)
	c.JSON(http.StatusOK, summarydto.NewClassifyResponse(result))
}

// POST /entities
func (h *SummaryHandler) Entities(c *gin.Context) {
	var payload domain.MessagePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, h.summaryUsecase.Entities(payload))
}

// POST /message_cleaner
func (h *SummaryHandler) Clean(c *gin.Context) {
	var req summarydto.CleanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, summarydto.CleanResponse{CleanedText: h.summaryUsecase.Clean(req.Platform, req.MessageText)})
}

// GET /history/:summary_id
func (h *SummaryHandler) GetHistory(c *gin.Context) {
	summaryID := c.Param("summary_id")

	record, err := h.summaryUsecase.GetHistory(c.Request.Context(), summaryID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load summary"})
		return
	}
	if record == nil {
		c.JSON(http.StatusNotFound, summarydto.NotFoundResponse{Error: "not_found", SummaryID: summaryID})
		return
	}

	c.JSON(http.StatusOK, record)
}

// GET /context?user_id=&platform=&limit=
func (h *SummaryHandler) GetContext(c *gin.Context) {
	userID := c.Query("user_id")
	platform := c.Query("platform")
	if userID == "" || platform == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id and platform are required"})
		return
	}

	limit := usecase.DefaultContextLimit
	if limitStr := c.Query("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed < 1 || parsed > usecase.MaxContextLimit {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be between 1 and 50"})
			return
		}
		limit = parsed
	}

	records, err := h.summaryUsecase.GetContext(c.Request.Context(), userID, platform, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load context"})
		return
	}

	c.JSON(http.StatusOK, summarydto.ContextResponse{UserID: userID, Platform: platform, Records: records})
}

// GET /search?user_id=&q=&limit=
func (h *SummaryHandler) Search(c *gin.Context) {
	userID := c.Query("user_id")
	query := c.Query("q")
	if userID == "" || strings.TrimSpace(query) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id and q are required"})
		return
	}

	limit := usecase.DefaultSearchLimit
	if limitStr := c.Query("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	hits, err := h.summaryUsecase.Search(c.Request.Context(), userID, query, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "search failed"})
		return
	}

	c.JSON(http.StatusOK, summarydto.SearchResponse{Query: query, Hits: hits})
}

// POST /ingest
// Ingest queues messages for background summarization and answers immediately
func (h *SummaryHandler) Ingest(c *gin.Context) {
	if h.ingestWorker == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "ingestion is disabled"})
		return
	}

	var req summarydto.BatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(req.Messages) > MaxBatchSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "too many messages, max " + strconv.Itoa(MaxBatchSize)})
		return
	}

	c.JSON(http.StatusAccepted, summarydto.IngestResponse(h.ingestWorker.Ingest(req.Messages)))
}
