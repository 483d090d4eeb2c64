package repositories

import (
	"context"

	"github.com/google/uuid"
	"tripcover.backend/internal/domain/entities"
)

// ChangeRequestRepository defines wallet-change-request data operations.
// Decided requests are append-only history.
type ChangeRequestRepository interface {
	Create(ctx context.Context, request *entities.WalletChangeRequest) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.WalletChangeRequest, error)
	// GetByIDForUpdate locks the request row for the duration of the
	// surrounding transaction.
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*entities.WalletChangeRequest, error)
	GetPendingByWalletID(ctx context.Context, walletID uuid.UUID) (*entities.WalletChangeRequest, error)
	ListByWalletID(ctx context.Context, walletID uuid.UUID) ([]*entities.WalletChangeRequest, error)
	ListByStatus(ctx context.Context, status entities.ChangeRequestStatus, limit, offset int) ([]*entities.WalletChangeRequest, int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status entities.ChangeRequestStatus) error
}
