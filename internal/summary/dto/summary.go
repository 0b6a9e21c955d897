package dto

import (
	"summaryhub-backend/internal/summary/domain"
	"summaryhub-backend/internal/summary/usecase"
)

type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

type ClassifyRequest struct {
	Platform    string `json:"platform"`
	MessageText string `json:"message_text"`
}

type ClassifyResponse struct {
	Type           domain.Type    `json:"type"`
	Intent         domain.Type    `json:"intent"`
	Urgency        domain.Urgency `json:"urgency"`
	DetailedIntent domain.Intent  `json:"detailed_intent"`
}

// NewClassifyResponse reports the coarse category as both type and intent
func NewClassifyResponse(c domain.Classification) ClassifyResponse {
	category := c.Type.APICategory()
	return ClassifyResponse{
		Type:           category,
		Intent:         category,
		Urgency:        c.Urgency,
		DetailedIntent: c.Intent,
	}
}

type CleanRequest struct {
	Platform    string `json:"platform"`
	MessageText string `json:"message_text"`
}

type CleanResponse struct {
	CleanedText string `json:"cleaned_text"`
}

type NotFoundResponse struct {
	Error     string `json:"error"`
	SummaryID string `json:"summary_id"`
}

type BatchRequest struct {
	Messages []domain.MessagePayload `json:"messages"`
}

type BatchResponse struct {
	Results []*domain.SummaryRecord `json:"results"`
}

type ContextResponse struct {
	UserID   string                  `json:"user_id"`
	Platform string                  `json:"platform"`
	Records  []*domain.SummaryRecord `json:"records"`
}

type SearchResponse struct {
	Query string               `json:"query"`
	Hits  []*usecase.SearchHit `json:"hits"`
}

type IngestResponse = usecase.IngestResult
