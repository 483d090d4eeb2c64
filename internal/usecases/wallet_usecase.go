package usecases

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"tripcover.backend/internal/domain/entities"
	domainerrors "tripcover.backend/internal/domain/errors"
	"tripcover.backend/internal/domain/repositories"
)

// WalletUsecase owns payout wallet binding and the change-request state
// machine. Creation is gated on a verified identity; every later mutation
// goes through an admin-approved change request.
type WalletUsecase struct {
	walletRepo       repositories.WalletRepository
	changeRepo       repositories.ChangeRequestRepository
	verificationRepo repositories.VerificationRepository
	uow              repositories.UnitOfWork
}

// NewWalletUsecase creates a new wallet usecase
func NewWalletUsecase(
	walletRepo repositories.WalletRepository,
	changeRepo repositories.ChangeRequestRepository,
	verificationRepo repositories.VerificationRepository,
	uow repositories.UnitOfWork,
) *WalletUsecase {
	return &WalletUsecase{
		walletRepo:       walletRepo,
		changeRepo:       changeRepo,
		verificationRepo: verificationRepo,
		uow:              uow,
	}
}

// CreateWallet binds the principal's single payout wallet
func (u *WalletUsecase) CreateWallet(ctx context.Context, ownerID uuid.UUID, input *entities.CreateWalletInput) (*entities.Wallet, error) {
	if err := entities.ValidateAddress(input.Network, input.Address); err != nil {
		return nil, err
	}

	wallet := &entities.Wallet{
		OwnerID:     ownerID,
		DisplayName: input.DisplayName,
		Network:     input.Network,
		Address:     input.Address,
	}

	err := withTxRetry(ctx, u.uow, func(txCtx context.Context) error {
		record, err := u.verificationRepo.GetLiveByPrincipalID(txCtx, ownerID)
		if err != nil {
			if errors.Is(err, domainerrors.ErrNotFound) {
				return domainerrors.ErrNotVerified
			}
			return err
		}
		if record.Status != entities.VerificationVerified {
			return domainerrors.ErrNotVerified
		}

		// Check-and-create; the unique index on owner_id closes the race.
		_, err = u.walletRepo.GetByOwnerID(txCtx, ownerID)
		if err == nil {
			return domainerrors.ErrWalletAlreadyExists
		}
		if !errors.Is(err, domainerrors.ErrNotFound) {
			return err
		}

		return u.walletRepo.Create(txCtx, wallet)
	})
	if err != nil {
		return nil, err
	}

	return wallet, nil
}

// GetWallet returns the principal's wallet, or nil when none is bound
func (u *WalletUsecase) GetWallet(ctx context.Context, ownerID uuid.UUID) (*entities.Wallet, error) {
	wallet, err := u.walletRepo.GetByOwnerID(ctx, ownerID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return wallet, nil
}

// RequestChange files a change request against the requester's wallet.
// The wallet row lock serializes concurrent requests so at most one
// pending request exists per wallet.
func (u *WalletUsecase) RequestChange(ctx context.Context, walletID, requesterID uuid.UUID, input *entities.ChangeRequestInput) (*entities.WalletChangeRequest, error) {
	if err := entities.ValidateAddress(input.NewNetwork, input.NewAddress); err != nil {
		return nil, err
	}

	request := &entities.WalletChangeRequest{
		WalletID:            walletID,
		RequestedNewName:    input.NewName,
		RequestedNewNetwork: input.NewNetwork,
		RequestedNewAddress: input.NewAddress,
		Status:              entities.ChangeRequestPending,
	}
	if input.Reason != "" {
		request.Reason = null.StringFrom(input.Reason)
	}

	err := withTxRetry(ctx, u.uow, func(txCtx context.Context) error {
		wallet, err := u.walletRepo.GetByIDForUpdate(txCtx, walletID)
		if err != nil {
			return err
		}
		if wallet.OwnerID != requesterID {
			return domainerrors.ErrNotOwner
		}

		_, err = u.changeRepo.GetPendingByWalletID(txCtx, walletID)
		if err == nil {
			return domainerrors.ErrPendingChangeExists
		}
		if !errors.Is(err, domainerrors.ErrNotFound) {
			return err
		}

		return u.changeRepo.Create(txCtx, request)
	})
	if err != nil {
		return nil, err
	}

	return request, nil
}

// ListChangeRequests returns the wallet's request history to its owner
func (u *WalletUsecase) ListChangeRequests(ctx context.Context, walletID, requesterID uuid.UUID) ([]*entities.WalletChangeRequest, error) {
	wallet, err := u.walletRepo.GetByID(ctx, walletID)
	if err != nil {
		return nil, err
	}
	if wallet.OwnerID != requesterID {
		return nil, domainerrors.ErrNotOwner
	}
	return u.changeRepo.ListByWalletID(ctx, walletID)
}

// DecideChange records the admin verdict. Approval marks the request and
// overwrites the wallet in one transaction: a partial failure rolls both
// back, so an approved request never points at an unmutated wallet.
func (u *WalletUsecase) DecideChange(ctx context.Context, requestID uuid.UUID, decision entities.ChangeDecision) (*entities.WalletChangeRequest, error) {
	if !entities.IsValidChangeDecision(decision) {
		return nil, domainerrors.ErrInvalidInput
	}

	var decided *entities.WalletChangeRequest
	err := withTxRetry(ctx, u.uow, func(txCtx context.Context) error {
		request, err := u.changeRepo.GetByIDForUpdate(txCtx, requestID)
		if err != nil {
			if errors.Is(err, domainerrors.ErrNotFound) {
				return domainerrors.ErrNoPendingRequest
			}
			return err
		}
		if request.Status != entities.ChangeRequestPending {
			return domainerrors.ErrAlreadyDecided
		}

		status := entities.ChangeRequestStatus(decision)
		if err := u.changeRepo.UpdateStatus(txCtx, request.ID, status); err != nil {
			return err
		}

		if decision == entities.ChangeApproved {
			// Lock the wallet row too: a concurrent requestChange must not
			// interleave with the mutation.
			if _, err := u.walletRepo.GetByIDForUpdate(txCtx, request.WalletID); err != nil {
				return err
			}
			if err := u.walletRepo.ApplyChange(txCtx,
				request.WalletID,
				request.RequestedNewName,
				request.RequestedNewNetwork,
				request.RequestedNewAddress,
			); err != nil {
				return err
			}
		}

		request.Status = status
		decided = request
		return nil
	})
	if err != nil {
		return nil, err
	}

	return decided, nil
}

// ListChangeRequestsByStatus lists requests for the admin review queue
func (u *WalletUsecase) ListChangeRequestsByStatus(ctx context.Context, status entities.ChangeRequestStatus, limit, offset int) ([]*entities.WalletChangeRequest, int64, error) {
	return u.changeRepo.ListByStatus(ctx, status, limit, offset)
}
