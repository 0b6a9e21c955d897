package usecase

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"summaryhub-backend/internal/summary/domain"
	"summaryhub-backend/internal/summary/pipeline"
	"summaryhub-backend/internal/summary/repository"
	"summaryhub-backend/pkg/fuzzy"
	"summaryhub-backend/pkg/mailparse"
	"summaryhub-backend/pkg/metrics"
	"summaryhub-backend/pkg/zlog"
)

const (
	DefaultContextLimit = 3
	MaxContextLimit     = 50
	DefaultSearchLimit  = 10
	// searchWindow bounds how many of a user's newest records are ranked per query
	searchWindow = 500
)

// summaryUsecase implements SummaryUsecase interface
type summaryUsecase struct {
	pipeline         *pipeline.Pipeline
	repo             repository.SummaryRepository
	metrics          *metrics.Metrics
	batchConcurrency int
}

// NewSummaryUsecase creates a new instance of summaryUsecase. m may be nil.
func NewSummaryUsecase(p *pipeline.Pipeline, repo repository.SummaryRepository, m *metrics.Metrics, batchConcurrency int) SummaryUsecase {
	if batchConcurrency <= 0 {
		batchConcurrency = 8
	}
	return &summaryUsecase{
		pipeline:         p,
		repo:             repo,
		metrics:          m,
		batchConcurrency: batchConcurrency,
	}
}

func (u *summaryUsecase) Summarize(ctx context.Context, payload domain.MessagePayload) (*SummarizeResult, error) {
	start := time.Now()
	record, err := u.pipeline.Summarize(payload)
	if err != nil {
		zlog.Error("summarize failed", zap.String("message_id", payload.MessageID), zap.Error(err))
		return nil, err
	}
	u.metrics.ObserveSummary(string(record.Type), string(record.Urgency), time.Since(start))

	result := &SummarizeResult{Record: record}
	if err := u.repo.Save(ctx, record); err != nil {
		u.metrics.StoreFailure()
		zlog.Warn("summary not persisted",
			zap.String("summary_id", record.SummaryID),
			zap.String("user_id", record.UserID),
			zap.Error(err),
		)
		result.StoreErr = err
		return result, nil
	}

	zlog.Debug("summary stored",
		zap.String("summary_id", record.SummaryID),
		zap.String("type", string(record.Type)),
		zap.String("urgency", string(record.Urgency)),
	)
	return result, nil
}

// SummarizeBatch fans the payloads out over a bounded set of goroutines.
// Results keep the input order.
func (u *summaryUsecase) SummarizeBatch(ctx context.Context, payloads []domain.MessagePayload) ([]*SummarizeResult, error) {
	results := make([]*SummarizeResult, len(payloads))
	if len(payloads) == 0 {
		return results, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(u.batchConcurrency)
	for i := range payloads {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := u.Summarize(gctx, payloads[i])
			if err != nil {
				return fmt.Errorf("message %d: %w", i, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// SummarizeEmail parses a raw RFC 5322 message and summarizes it on the email chain
func (u *summaryUsecase) SummarizeEmail(ctx context.Context, userID, messageID string, raw io.Reader) (*SummarizeResult, error) {
	msg, err := mailparse.Parse(raw)
	if err != nil {
		return nil, err
	}
	if messageID == "" {
		messageID = msg.MessageID
	}
	return u.Summarize(ctx, domain.MessagePayload{
		UserID:      userID,
		Platform:    "email",
		MessageID:   messageID,
		MessageText: msg.Text(),
		Timestamp:   msg.Timestamp(),
	})
}

func (u *summaryUsecase) Classify(platform, text string) domain.Classification {
	return u.pipeline.Classify(platform, text)
}

func (u *summaryUsecase) Entities(payload domain.MessagePayload) domain.Entities {
	return u.pipeline.Entities(payload)
}

func (u *summaryUsecase) Clean(platform, text string) string {
	return u.pipeline.Clean(platform, text)
}

func (u *summaryUsecase) GetHistory(ctx context.Context, summaryID string) (*domain.SummaryRecord, error) {
	return u.repo.FindByID(ctx, strings.TrimSpace(summaryID))
}

// GetContext returns the newest records for a user on a platform; limit is clamped to [1, 50]
func (u *summaryUsecase) GetContext(ctx context.Context, userID, platform string, limit int) ([]*domain.SummaryRecord, error) {
	return u.repo.FindRecent(ctx, userID, platform, ClampContextLimit(limit))
}

// ClampContextLimit applies the default and the upper bound of the context window
func ClampContextLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultContextLimit
	case limit > MaxContextLimit:
		return MaxContextLimit
	default:
		return limit
	}
}

// Search ranks a user's stored summaries by fuzzy relevance to query
func (u *summaryUsecase) Search(ctx context.Context, userID, query string, limit int) ([]*SearchHit, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []*SearchHit{}, nil
	}
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	records, err := u.repo.FindByUser(ctx, userID, searchWindow)
	if err != nil {
		return nil, fmt.Errorf("search summaries: %w", err)
	}

	threshold := fuzzy.Threshold(query)
	hits := make([]*SearchHit, 0, len(records))
	for _, rec := range records {
		if !matchesRecord(query, rec, threshold) {
			continue
		}
		if score := fuzzy.RelevanceScore(query, rec.Summary, rec.Entities.Person); score > 0 {
			hits = append(hits, &SearchHit{Record: rec, Score: score})
		}
	}
	// records arrive newest first, so ties stay newest first
	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Score > hits[j].Score
	})
	if len(hits) > limit {
		hits = hits[:limit]
	}
	return hits, nil
}

// matchesRecord is the cheap fuzzy pre-filter run before scoring
func matchesRecord(query string, rec *domain.SummaryRecord, threshold int) bool {
	if fuzzy.Match(query, rec.Summary, threshold) {
		return true
	}
	for _, person := range rec.Entities.Person {
		if fuzzy.Match(query, person, threshold) {
			return true
		}
	}
	return false
}
