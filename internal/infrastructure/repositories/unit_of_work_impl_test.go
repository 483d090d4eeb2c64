package repositories

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"tripcover.backend/internal/domain/entities"
	domainerrors "tripcover.backend/internal/domain/errors"
)

func TestUnitOfWork_CommitsOnSuccess(t *testing.T) {
	db := newTestDB(t)
	createWalletTable(t, db)
	uow := NewUnitOfWork(db)
	repo := NewWalletRepository(db)
	ownerID := uuid.New()

	err := uow.Do(context.Background(), func(ctx context.Context) error {
		return repo.Create(ctx, newWalletFor(ownerID))
	})
	require.NoError(t, err)

	_, err = repo.GetByOwnerID(context.Background(), ownerID)
	require.NoError(t, err)
}

func TestUnitOfWork_RollsBackOnError(t *testing.T) {
	db := newTestDB(t)
	createWalletTable(t, db)
	uow := NewUnitOfWork(db)
	repo := NewWalletRepository(db)
	ownerID := uuid.New()
	boom := errors.New("boom")

	err := uow.Do(context.Background(), func(ctx context.Context) error {
		if err := repo.Create(ctx, newWalletFor(ownerID)); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	_, err = repo.GetByOwnerID(context.Background(), ownerID)
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestUnitOfWork_NestedDoJoinsOuterTransaction(t *testing.T) {
	db := newTestDB(t)
	createWalletTable(t, db)
	uow := NewUnitOfWork(db)
	repo := NewWalletRepository(db)
	ownerID := uuid.New()
	boom := errors.New("boom")

	err := uow.Do(context.Background(), func(outer context.Context) error {
		return uow.Do(outer, func(inner context.Context) error {
			if err := repo.Create(inner, newWalletFor(ownerID)); err != nil {
				return err
			}
			return boom
		})
	})
	require.ErrorIs(t, err, boom)

	// The inner write rolled back with the single outer transaction.
	_, err = repo.GetByOwnerID(context.Background(), ownerID)
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestUnitOfWork_ChangesInvisibleOutsideBeforeCommit(t *testing.T) {
	db := newTestDB(t)
	createWalletTable(t, db)
	createWalletChangeRequestTable(t, db)
	uow := NewUnitOfWork(db)
	walletRepo := NewWalletRepository(db)
	changeRepo := NewChangeRequestRepository(db)
	ownerID := uuid.New()

	wallet := newWalletFor(ownerID)
	require.NoError(t, walletRepo.Create(context.Background(), wallet))

	err := uow.Do(context.Background(), func(ctx context.Context) error {
		if err := changeRepo.Create(ctx, newChangeRequest(wallet.ID)); err != nil {
			return err
		}
		if err := walletRepo.ApplyChange(ctx, wallet.ID, "renamed", entities.NetworkBSC, walletTestAddress); err != nil {
			return err
		}
		return errors.New("abort")
	})
	require.Error(t, err)

	unchanged, err := walletRepo.GetByID(context.Background(), wallet.ID)
	require.NoError(t, err)
	require.Equal(t, "payout", unchanged.DisplayName)

	_, err = changeRepo.GetPendingByWalletID(context.Background(), wallet.ID)
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestGetDB_FallsBackWithoutTransaction(t *testing.T) {
	db := newTestDB(t)
	require.Same(t, db, GetDB(context.Background(), db))
}
