package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"summaryhub-backend/internal/summary/domain"
	"summaryhub-backend/internal/summary/normalizer"
	"summaryhub-backend/internal/summary/pipeline"
	"summaryhub-backend/pkg/metrics"
	"summaryhub-backend/pkg/zlog"
)

type memoryRepository struct {
	mu      sync.Mutex
	records map[string]*domain.SummaryRecord
	order   []string
	saveErr error
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{records: map[string]*domain.SummaryRecord{}}
}

func (r *memoryRepository) Save(_ context.Context, rec *domain.SummaryRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.saveErr != nil {
		return r.saveErr
	}
	if _, ok := r.records[rec.SummaryID]; !ok {
		r.order = append(r.order, rec.SummaryID)
	}
	r.records[rec.SummaryID] = rec
	return nil
}

func (r *memoryRepository) FindByID(_ context.Context, id string) (*domain.SummaryRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.records[id], nil
}

func (r *memoryRepository) FindRecent(_ context.Context, userID, platform string, limit int) ([]*domain.SummaryRecord, error) {
	return r.filter(func(rec *domain.SummaryRecord) bool {
		return rec.UserID == userID && rec.Platform == platform
	}, limit), nil
}

func (r *memoryRepository) FindByUser(_ context.Context, userID string, limit int) ([]*domain.SummaryRecord, error) {
	return r.filter(func(rec *domain.SummaryRecord) bool { return rec.UserID == userID }, limit), nil
}

func (r *memoryRepository) filter(keep func(*domain.SummaryRecord) bool, limit int) []*domain.SummaryRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*domain.SummaryRecord{}
	for i := len(r.order) - 1; i >= 0 && len(out) < limit; i-- {
		if rec := r.records[r.order[i]]; keep(rec) {
			out = append(out, rec)
		}
	}
	return out
}

func (r *memoryRepository) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.records)
}

func newTestUsecase(repo *memoryRepository) SummaryUsecase {
	p := pipeline.New(normalizer.New(nil), pipeline.Options{
		Enrich: true,
		Now:    func() time.Time { return time.Date(2025, 11, 20, 14, 0, 0, 0, time.UTC) },
	})
	return NewSummaryUsecase(p, repo, metrics.New(), 4)
}

func msg(id, text string) domain.MessagePayload {
	return domain.MessagePayload{
		UserID:      "u1",
		Platform:    "whatsapp",
		MessageID:   id,
		MessageText: text,
		Timestamp:   "2025-11-20T14:00:00Z",
	}
}

func TestSummarizePersists(t *testing.T) {
	repo := newMemoryRepository()
	uc := newTestUsecase(repo)

	res, err := uc.Summarize(context.Background(), msg("m1", "Please confirm the meeting at 3 PM with Alex."))

	require.NoError(t, err)
	assert.True(t, res.Persisted())
	stored, err := uc.GetHistory(context.Background(), res.Record.SummaryID)
	require.NoError(t, err)
	assert.Equal(t, res.Record, stored)
}

func TestSummarizeStoreFailureStillReturnsRecord(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	zlog.Replace(zap.New(core))
	t.Cleanup(func() { zlog.Replace(nil) })

	repo := newMemoryRepository()
	repo.saveErr = errors.New("database is locked")
	uc := newTestUsecase(repo)

	res, err := uc.Summarize(context.Background(), msg("m1", "ASAP! urgent!!!"))

	require.NoError(t, err)
	require.NotNil(t, res.Record)
	assert.False(t, res.Persisted())
	assert.EqualError(t, res.StoreErr, "database is locked")
	assert.Equal(t, domain.UrgencyHigh, res.Record.Urgency)
	assert.Equal(t, 1, logs.FilterMessage("summary not persisted").Len())
}

func TestSummarizeBatchKeepsOrder(t *testing.T) {
	repo := newMemoryRepository()
	uc := newTestUsecase(repo)

	payloads := make([]domain.MessagePayload, 20)
	for i := range payloads {
		payloads[i] = msg(fmt.Sprintf("m%02d", i), "Let's meet tomorrow at 5 pm")
	}

	results, err := uc.SummarizeBatch(context.Background(), payloads)

	require.NoError(t, err)
	require.Len(t, results, 20)
	ids := map[string]struct{}{}
	for i, res := range results {
		assert.Equal(t, payloads[i].MessageID, res.Record.MessageID)
		ids[res.Record.SummaryID] = struct{}{}
	}
	assert.Len(t, ids, 20)
	assert.Equal(t, 20, repo.count())
}

func TestSummarizeBatchEmpty(t *testing.T) {
	results, err := newTestUsecase(newMemoryRepository()).SummarizeBatch(context.Background(), nil)

	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSummarizeEmail(t *testing.T) {
	raw := "From: alex@example.com\r\n" +
		"Subject: Project sync\r\n" +
		"Date: Thu, 20 Nov 2025 14:00:00 +0000\r\n" +
		"Message-Id: <sync-1@example.com>\r\n" +
		"Content-Type: text/plain\r\n" +
		"\r\n" +
		"Please confirm the meeting tomorrow at 10am with Priya.\r\n" +
		"Regards,\r\nAlex\r\n"

	res, err := newTestUsecase(newMemoryRepository()).SummarizeEmail(context.Background(), "u9", "", strings.NewReader(raw))

	require.NoError(t, err)
	rec := res.Record
	assert.Equal(t, "email", rec.Platform)
	assert.Equal(t, "u9", rec.UserID)
	assert.Equal(t, "sync-1@example.com", rec.MessageID)
	assert.Equal(t, domain.IntentConfirmMeeting, rec.Intent)
	require.NotNil(t, rec.Entities.DateTime)
	assert.Equal(t, "2025-11-21T10:00:00Z", *rec.Entities.DateTime)
	assert.Contains(t, rec.Entities.Person, "Priya")
	assert.NotContains(t, rec.Entities.Person, "Alex")
}

func TestGetHistoryUnknown(t *testing.T) {
	rec, err := newTestUsecase(newMemoryRepository()).GetHistory(context.Background(), "s_nope")

	assert.NoError(t, err)
	assert.Nil(t, rec)
}

func TestGetContext(t *testing.T) {
	repo := newMemoryRepository()
	uc := newTestUsecase(repo)
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		_, err := uc.Summarize(ctx, msg(fmt.Sprintf("m%d", i), "hello"))
		require.NoError(t, err)
	}

	recent, err := uc.GetContext(ctx, "u1", "whatsapp", 0)
	require.NoError(t, err)
	require.Len(t, recent, DefaultContextLimit)
	assert.Equal(t, "m4", recent[0].MessageID)
}

func TestClampContextLimit(t *testing.T) {
	assert.Equal(t, 3, ClampContextLimit(0))
	assert.Equal(t, 3, ClampContextLimit(-2))
	assert.Equal(t, 7, ClampContextLimit(7))
	assert.Equal(t, 50, ClampContextLimit(500))
}

func TestSearch(t *testing.T) {
	uc := newTestUsecase(newMemoryRepository())
	ctx := context.Background()
	_, err := uc.Summarize(ctx, msg("m1", "Please confirm the meeting at 3 PM with Priya."))
	require.NoError(t, err)
	_, err = uc.Summarize(ctx, msg("m2", "Any update on the project status?"))
	require.NoError(t, err)

	hits, err := uc.Search(ctx, "u1", "priya", 5)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "m1", hits[0].Record.MessageID)

	empty, err := uc.Search(ctx, "u1", "  ", 5)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestSearchToleratesTyposAndFiltersMisses(t *testing.T) {
	uc := newTestUsecase(newMemoryRepository())
	ctx := context.Background()
	_, err := uc.Summarize(ctx, msg("m1", "Please confirm the meeting at 3 PM with Priya."))
	require.NoError(t, err)

	hits, err := uc.Search(ctx, "u1", "pryia", 5)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "m1", hits[0].Record.MessageID)

	misses, err := uc.Search(ctx, "u1", "zebra", 5)
	require.NoError(t, err)
	assert.Empty(t, misses)
}
