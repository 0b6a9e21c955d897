package repository

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"summaryhub-backend/internal/summary/domain"
	"summaryhub-backend/pkg/database"
)

func newTestRepository(t *testing.T) SummaryRepository {
	t.Helper()
	db, err := database.NewSQLiteConnection(filepath.Join(t.TempDir(), "summaries.db"))
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db, &domain.SummaryRow{}))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return NewSummaryRepository(db)
}

func record(id, userID, platform, generatedAt string) *domain.SummaryRecord {
	dt := "2025-11-21T17:00:00Z"
	return &domain.SummaryRecord{
		SummaryID: id,
		UserID:    userID,
		Platform:  platform,
		MessageID: "m-" + id,
		Summary:   "User wants confirmation for a 5 PM meeting with Alex, Priya tomorrow.",
		Type:      domain.TypeMeeting,
		Intent:    domain.IntentConfirmMeeting,
		Urgency:   domain.UrgencyMedium,
		Entities: domain.Entities{
			Person:   []string{"Alex", "Priya"},
			DateTime: &dt,
		},
		ContextFlags:  []string{domain.FlagHasDate, domain.FlagHasPerson},
		GeneratedAt:   generatedAt,
		DeviceContext: domain.DeviceIOS,
	}
}

func TestSaveAndFindByIDRoundTrip(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()
	want := record("s_000000000001", "u1", "whatsapp", "2025-11-20T14:00:00Z")

	require.NoError(t, repo.Save(ctx, want))
	got, err := repo.FindByID(ctx, want.SummaryID)

	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, want, got)
}

func TestSaveRecordWithoutEntities(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()
	rec := record("s_000000000002", "u1", "sms", "2025-11-20T14:00:00Z")
	rec.Entities = domain.Entities{Person: []string{}}
	rec.ContextFlags = []string{}

	require.NoError(t, repo.Save(ctx, rec))
	got, err := repo.FindByID(ctx, rec.SummaryID)

	require.NoError(t, err)
	assert.Equal(t, []string{}, got.Entities.Person)
	assert.Nil(t, got.Entities.DateTime)
	assert.Equal(t, []string{}, got.ContextFlags)
}

func TestSaveUpsertsBySummaryID(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()
	rec := record("s_000000000003", "u1", "email", "2025-11-20T14:00:00Z")
	require.NoError(t, repo.Save(ctx, rec))

	updated := *rec
	updated.Summary = "User shares information."
	require.NoError(t, repo.Save(ctx, &updated))

	got, err := repo.FindByID(ctx, rec.SummaryID)
	require.NoError(t, err)
	assert.Equal(t, "User shares information.", got.Summary)

	all, err := repo.FindByUser(ctx, "u1", 10)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestSaveRejectsMissingID(t *testing.T) {
	repo := newTestRepository(t)

	assert.Error(t, repo.Save(context.Background(), &domain.SummaryRecord{}))
}

func TestFindByIDMissing(t *testing.T) {
	repo := newTestRepository(t)

	got, err := repo.FindByID(context.Background(), "s_doesnotexist")

	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestFindRecentNewestFirst(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()
	require.NoError(t, repo.Save(ctx, record("s_a", "u1", "whatsapp", "2025-11-20T10:00:00Z")))
	require.NoError(t, repo.Save(ctx, record("s_b", "u1", "whatsapp", "2025-11-20T12:00:00Z")))
	require.NoError(t, repo.Save(ctx, record("s_c", "u1", "whatsapp", "2025-11-20T11:00:00Z")))
	require.NoError(t, repo.Save(ctx, record("s_d", "u1", "email", "2025-11-20T13:00:00Z")))
	require.NoError(t, repo.Save(ctx, record("s_e", "u2", "whatsapp", "2025-11-20T14:00:00Z")))

	recent, err := repo.FindRecent(ctx, "u1", "whatsapp", 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "s_b", recent[0].SummaryID)
	assert.Equal(t, "s_c", recent[1].SummaryID)

	byUser, err := repo.FindByUser(ctx, "u1", 10)
	require.NoError(t, err)
	ids := make([]string, 0, len(byUser))
	for _, r := range byUser {
		ids = append(ids, r.SummaryID)
	}
	assert.Equal(t, []string{"s_d", "s_b", "s_c", "s_a"}, ids)
}

type countingRepository struct {
	SummaryRepository
	finds   int
	saveErr error
}

func (r *countingRepository) Save(ctx context.Context, rec *domain.SummaryRecord) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	return r.SummaryRepository.Save(ctx, rec)
}

func (r *countingRepository) FindByID(ctx context.Context, id string) (*domain.SummaryRecord, error) {
	r.finds++
	return r.SummaryRepository.FindByID(ctx, id)
}

func TestCachedRepositoryServesRepeatReads(t *testing.T) {
	inner := &countingRepository{SummaryRepository: newTestRepository(t)}
	repo, err := NewCachedSummaryRepository(inner, 8)
	require.NoError(t, err)
	ctx := context.Background()
	rec := record("s_cache", "u1", "sms", "2025-11-20T14:00:00Z")

	require.NoError(t, repo.Save(ctx, rec))
	for i := 0; i < 3; i++ {
		got, err := repo.FindByID(ctx, "s_cache")
		require.NoError(t, err)
		assert.Equal(t, rec.Summary, got.Summary)
	}
	assert.Equal(t, 0, inner.finds)

	missing, err := repo.FindByID(ctx, "s_missing")
	require.NoError(t, err)
	assert.Nil(t, missing)
	_, _ = repo.FindByID(ctx, "s_missing")
	assert.Equal(t, 2, inner.finds)
}

func TestCachedRepositorySkipsFailedSaves(t *testing.T) {
	inner := &countingRepository{SummaryRepository: newTestRepository(t), saveErr: errors.New("disk full")}
	repo, err := NewCachedSummaryRepository(inner, 8)
	require.NoError(t, err)
	ctx := context.Background()

	require.Error(t, repo.Save(ctx, record("s_fail", "u1", "sms", "2025-11-20T14:00:00Z")))
	got, err := repo.FindByID(ctx, "s_fail")

	require.NoError(t, err)
	assert.Nil(t, got)
	assert.Equal(t, 1, inner.finds)
}

func TestCachedRepositoryDisabled(t *testing.T) {
	inner := newTestRepository(t)

	repo, err := NewCachedSummaryRepository(inner, 0)

	require.NoError(t, err)
	assert.Same(t, inner, repo)
}
