package repository

import (
	"context"

	lru "github.com/hashicorp/golang-lru/v2"

	"summaryhub-backend/internal/summary/domain"
)

// cachedSummaryRepository keeps recently read or written records in memory.
// Records never change after creation, so entries are never stale.
type cachedSummaryRepository struct {
	SummaryRepository
	cache *lru.Cache[string, *domain.SummaryRecord]
}

// NewCachedSummaryRepository wraps next with a read-through LRU of the given size.
// A non-positive size returns next unchanged.
func NewCachedSummaryRepository(next SummaryRepository, size int) (SummaryRepository, error) {
	if size <= 0 {
		return next, nil
	}
	cache, err := lru.New[string, *domain.SummaryRecord](size)
	if err != nil {
		return nil, err
	}
	return &cachedSummaryRepository{SummaryRepository: next, cache: cache}, nil
}

func (r *cachedSummaryRepository) Save(ctx context.Context, record *domain.SummaryRecord) error {
	if err := r.SummaryRepository.Save(ctx, record); err != nil {
		return err
	}
	r.cache.Add(record.SummaryID, record)
	return nil
}

func (r *cachedSummaryRepository) FindByID(ctx context.Context, summaryID string) (*domain.SummaryRecord, error) {
	if record, ok := r.cache.Get(summaryID); ok {
		return record, nil
	}
	record, err := r.SummaryRepository.FindByID(ctx, summaryID)
	if err != nil || record == nil {
		return record, err
	}
	r.cache.Add(summaryID, record)
	return record, nil
}
