package repositories

import (
	"context"

	"github.com/google/uuid"
	"tripcover.backend/internal/domain/entities"
)

// WalletRepository defines wallet data operations. Wallets are never
// deleted; the owner_id unique constraint is the one-wallet rule.
type WalletRepository interface {
	Create(ctx context.Context, wallet *entities.Wallet) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Wallet, error)
	// GetByIDForUpdate locks the wallet row for the duration of the
	// surrounding transaction.
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*entities.Wallet, error)
	GetByOwnerID(ctx context.Context, ownerID uuid.UUID) (*entities.Wallet, error)
	// ApplyChange overwrites the wallet's mutable fields and sets updated_at.
	ApplyChange(ctx context.Context, id uuid.UUID, name string, network entities.Network, address string) error
}
