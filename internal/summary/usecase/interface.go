package usecase

import (
	"context"
	"io"

	"summaryhub-backend/internal/summary/domain"
)

// SummarizeResult is a produced record plus the outcome of persisting it.
// A store failure never discards the record.
type SummarizeResult struct {
	Record   *domain.SummaryRecord
	StoreErr error
}

// Persisted reports whether the record reached the store
func (r *SummarizeResult) Persisted() bool {
	return r != nil && r.StoreErr == nil
}

// SearchHit is a stored record ranked against a query
type SearchHit struct {
	Record *domain.SummaryRecord `json:"record"`
	Score  float64               `json:"score"`
}

// SummaryUsecase defines the interface for summary use cases
type SummaryUsecase interface {
	Summarize(ctx context.Context, payload domain.MessagePayload) (*SummarizeResult, error)
	SummarizeBatch(ctx context.Context, payloads []domain.MessagePayload) ([]*SummarizeResult, error)
	SummarizeEmail(ctx context.Context, userID, messageID string, raw io.Reader) (*SummarizeResult, error)
	Classify(platform, text string) domain.Classification
	Entities(payload domain.MessagePayload) domain.Entities
	Clean(platform, text string) string
	// GetHistory returns nil, nil for an unknown id
	GetHistory(ctx context.Context, summaryID string) (*domain.SummaryRecord, error)
	GetContext(ctx context.Context, userID, platform string, limit int) ([]*domain.SummaryRecord, error)
	Search(ctx context.Context, userID, query string, limit int) ([]*SearchHit, error)
}
