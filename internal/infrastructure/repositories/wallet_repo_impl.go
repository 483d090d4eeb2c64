package repositories

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"tripcover.backend/internal/domain/entities"
	domainerrors "tripcover.backend/internal/domain/errors"
	"tripcover.backend/internal/infrastructure/models"
)

// WalletRepository implements wallet data operations
type WalletRepository struct {
	db *gorm.DB
}

// NewWalletRepository creates a new wallet repository
func NewWalletRepository(db *gorm.DB) *WalletRepository {
	return &WalletRepository{db: db}
}

// Create creates the principal's wallet. The unique index on owner_id is
// the backstop for the one-wallet rule; a violation maps to
// ErrWalletAlreadyExists.
func (r *WalletRepository) Create(ctx context.Context, wallet *entities.Wallet) error {
	if wallet.ID == uuid.Nil {
		wallet.ID = uuid.New()
	}
	wallet.CreatedAt = time.Now()

	m := &models.Wallet{
		ID:          wallet.ID,
		OwnerID:     wallet.OwnerID,
		DisplayName: wallet.DisplayName,
		Network:     string(wallet.Network),
		Address:     wallet.Address,
		CreatedAt:   wallet.CreatedAt,
	}

	if err := GetDB(ctx, r.db).WithContext(ctx).Create(m).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrWalletAlreadyExists
		}
		return err
	}
	return nil
}

// GetByID gets a wallet by ID
func (r *WalletRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Wallet, error) {
	return r.getOne(GetDB(ctx, r.db).WithContext(ctx), "id = ?", id)
}

// GetByIDForUpdate gets a wallet by ID holding a row lock until the
// surrounding transaction ends
func (r *WalletRepository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*entities.Wallet, error) {
	return r.getOne(lockForUpdate(GetDB(ctx, r.db).WithContext(ctx)), "id = ?", id)
}

// GetByOwnerID gets the principal's wallet
func (r *WalletRepository) GetByOwnerID(ctx context.Context, ownerID uuid.UUID) (*entities.Wallet, error) {
	return r.getOne(GetDB(ctx, r.db).WithContext(ctx), "owner_id = ?", ownerID)
}

func (r *WalletRepository) getOne(db *gorm.DB, query string, arg interface{}) (*entities.Wallet, error) {
	var m models.Wallet
	if err := db.Where(query, arg).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// ApplyChange overwrites the wallet's mutable fields and stamps updated_at
func (r *WalletRepository) ApplyChange(ctx context.Context, id uuid.UUID, name string, network entities.Network, address string) error {
	result := GetDB(ctx, r.db).WithContext(ctx).Model(&models.Wallet{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"display_name": name,
			"network":      string(network),
			"address":      address,
			"updated_at":   time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *WalletRepository) toEntity(m *models.Wallet) *entities.Wallet {
	e := &entities.Wallet{
		ID:          m.ID,
		OwnerID:     m.OwnerID,
		DisplayName: m.DisplayName,
		Network:     entities.Network(m.Network),
		Address:     m.Address,
		CreatedAt:   m.CreatedAt,
	}
	if m.UpdatedAt != nil {
		e.UpdatedAt = null.TimeFrom(*m.UpdatedAt)
	}
	return e
}

// isUniqueViolation matches unique constraint errors from postgres (pq
// 23505) and sqlite (used in tests)
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "23505") ||
		strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}
