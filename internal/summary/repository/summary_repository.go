package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"summaryhub-backend/internal/summary/domain"
)

// SummaryRepository defines the interface for summary record storage
type SummaryRepository interface {
	// Save inserts a record or replaces the one with the same summary_id
	Save(ctx context.Context, record *domain.SummaryRecord) error
	// FindByID returns nil, nil when the record does not exist
	FindByID(ctx context.Context, summaryID string) (*domain.SummaryRecord, error)
	// FindRecent returns a user's newest records on one platform
	FindRecent(ctx context.Context, userID, platform string, limit int) ([]*domain.SummaryRecord, error)
	// FindByUser returns a user's newest records across platforms
	FindByUser(ctx context.Context, userID string, limit int) ([]*domain.SummaryRecord, error)
}

// summaryRepository implements SummaryRepository on gorm
type summaryRepository struct {
	db *gorm.DB
}

// NewSummaryRepository creates a new instance of summaryRepository
func NewSummaryRepository(db *gorm.DB) SummaryRepository {
	return &summaryRepository{
		db: db,
	}
}

func (r *summaryRepository) Save(ctx context.Context, record *domain.SummaryRecord) error {
	if record == nil || record.SummaryID == "" {
		return fmt.Errorf("save summary: missing summary_id")
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "summary_id"}},
			UpdateAll: true,
		}).
		Create(record.ToRow()).Error
	if err != nil {
		return fmt.Errorf("save summary %s: %w", record.SummaryID, err)
	}
	return nil
}

func (r *summaryRepository) FindByID(ctx context.Context, summaryID string) (*domain.SummaryRecord, error) {
	var row domain.SummaryRow
	err := r.db.WithContext(ctx).Where("summary_id = ?", summaryID).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("find summary %s: %w", summaryID, err)
	}
	return row.ToRecord(), nil
}

func (r *summaryRepository) FindRecent(ctx context.Context, userID, platform string, limit int) ([]*domain.SummaryRecord, error) {
	var rows []domain.SummaryRow
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND platform = ?", userID, platform).
		Order("generated_at DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("find recent summaries for %s: %w", userID, err)
	}
	return toRecords(rows), nil
}

func (r *summaryRepository) FindByUser(ctx context.Context, userID string, limit int) ([]*domain.SummaryRecord, error) {
	var rows []domain.SummaryRow
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("generated_at DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("find summaries for %s: %w", userID, err)
	}
	return toRecords(rows), nil
}

func toRecords(rows []domain.SummaryRow) []*domain.SummaryRecord {
	records := make([]*domain.SummaryRecord, 0, len(rows))
	for i := range rows {
		records = append(records, rows[i].ToRecord())
	}
	return records
}
