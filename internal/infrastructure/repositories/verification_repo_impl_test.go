package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"tripcover.backend/internal/domain/entities"
	domainerrors "tripcover.backend/internal/domain/errors"
)

func newUploadedRecord(principalID uuid.UUID) *entities.VerificationRecord {
	return &entities.VerificationRecord{
		PrincipalID:   principalID,
		DocumentType:  entities.DocumentPassport,
		DocumentURL:   "http://localhost:8080/files/doc.png",
		FileName:      "doc.png",
		FileSizeBytes: 2048,
		Status:        entities.VerificationPendingReview,
		UploadedAt:    time.Now(),
	}
}

func TestVerificationRepository_CreateAndGetLive(t *testing.T) {
	db := newTestDB(t)
	createVerificationRecordTable(t, db)
	repo := NewVerificationRepository(db)
	ctx := context.Background()
	principalID := uuid.New()

	record := newUploadedRecord(principalID)
	require.NoError(t, repo.Create(ctx, record))
	require.NotEqual(t, uuid.Nil, record.ID)

	live, err := repo.GetLiveByPrincipalID(ctx, principalID)
	require.NoError(t, err)
	require.Equal(t, record.ID, live.ID)
	require.Equal(t, entities.VerificationPendingReview, live.Status)
	require.Equal(t, entities.DocumentPassport, live.DocumentType)
	require.False(t, live.DecidedAt.Valid)

	locked, err := repo.GetLiveByPrincipalIDForUpdate(ctx, principalID)
	require.NoError(t, err)
	require.Equal(t, record.ID, locked.ID)
}

func TestVerificationRepository_GetLiveNotFound(t *testing.T) {
	db := newTestDB(t)
	createVerificationRecordTable(t, db)
	repo := NewVerificationRepository(db)

	_, err := repo.GetLiveByPrincipalID(context.Background(), uuid.New())
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestVerificationRepository_UpdateStatusStampsDecidedAt(t *testing.T) {
	db := newTestDB(t)
	createVerificationRecordTable(t, db)
	repo := NewVerificationRepository(db)
	ctx := context.Background()
	principalID := uuid.New()

	record := newUploadedRecord(principalID)
	require.NoError(t, repo.Create(ctx, record))

	require.NoError(t, repo.UpdateStatus(ctx, record.ID, entities.VerificationVerified))

	live, err := repo.GetLiveByPrincipalID(ctx, principalID)
	require.NoError(t, err)
	require.Equal(t, entities.VerificationVerified, live.Status)
	require.True(t, live.DecidedAt.Valid)
}

func TestVerificationRepository_UpdateStatusUnknownID(t *testing.T) {
	db := newTestDB(t)
	createVerificationRecordTable(t, db)
	repo := NewVerificationRepository(db)

	err := repo.UpdateStatus(context.Background(), uuid.New(), entities.VerificationVerified)
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestVerificationRepository_ArchiveHidesRecordFromLive(t *testing.T) {
	db := newTestDB(t)
	createVerificationRecordTable(t, db)
	repo := NewVerificationRepository(db)
	ctx := context.Background()
	principalID := uuid.New()

	record := newUploadedRecord(principalID)
	require.NoError(t, repo.Create(ctx, record))
	require.NoError(t, repo.Archive(ctx, record.ID))

	_, err := repo.GetLiveByPrincipalID(ctx, principalID)
	require.ErrorIs(t, err, domainerrors.ErrNotFound)

	// Archiving twice is a no-op failure, not a silent success.
	require.ErrorIs(t, repo.Archive(ctx, record.ID), domainerrors.ErrNotFound)
}

func TestVerificationRepository_ArchivedPrincipalCanHoldFreshRecord(t *testing.T) {
	db := newTestDB(t)
	createVerificationRecordTable(t, db)
	repo := NewVerificationRepository(db)
	ctx := context.Background()
	principalID := uuid.New()

	first := newUploadedRecord(principalID)
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.UpdateStatus(ctx, first.ID, entities.VerificationRejected))
	require.NoError(t, repo.Archive(ctx, first.ID))

	second := newUploadedRecord(principalID)
	require.NoError(t, repo.Create(ctx, second))

	live, err := repo.GetLiveByPrincipalID(ctx, principalID)
	require.NoError(t, err)
	require.Equal(t, second.ID, live.ID)
	require.Equal(t, entities.VerificationPendingReview, live.Status)
}

func TestVerificationRepository_LiveUniquePerPrincipal(t *testing.T) {
	db := newTestDB(t)
	createVerificationRecordTable(t, db)
	repo := NewVerificationRepository(db)
	ctx := context.Background()
	principalID := uuid.New()

	require.NoError(t, repo.Create(ctx, newUploadedRecord(principalID)))

	err := repo.Create(ctx, newUploadedRecord(principalID))
	require.Error(t, err)
	require.True(t, isUniqueViolation(err))
}

func TestVerificationRepository_ListByStatusPaginates(t *testing.T) {
	db := newTestDB(t)
	createVerificationRecordTable(t, db)
	repo := NewVerificationRepository(db)
	ctx := context.Background()

	base := time.Now().Add(-time.Hour)
	var ids []uuid.UUID
	for i := 0; i < 3; i++ {
		record := newUploadedRecord(uuid.New())
		record.UploadedAt = base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, repo.Create(ctx, record))
		ids = append(ids, record.ID)
	}

	// A decided record in another status must not show up.
	decided := newUploadedRecord(uuid.New())
	require.NoError(t, repo.Create(ctx, decided))
	require.NoError(t, repo.UpdateStatus(ctx, decided.ID, entities.VerificationVerified))

	records, total, err := repo.ListByStatus(ctx, entities.VerificationPendingReview, 2, 0)
	require.NoError(t, err)
	require.Equal(t, int64(3), total)
	require.Len(t, records, 2)
	// Oldest first: the queue is reviewed in upload order.
	require.Equal(t, ids[0], records[0].ID)
	require.Equal(t, ids[1], records[1].ID)

	records, total, err = repo.ListByStatus(ctx, entities.VerificationPendingReview, 2, 2)
	require.NoError(t, err)
	require.Equal(t, int64(3), total)
	require.Len(t, records, 1)
	require.Equal(t, ids[2], records[0].ID)
}
