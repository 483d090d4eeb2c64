package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"tripcover.backend/internal/domain/entities"
	domainerrors "tripcover.backend/internal/domain/errors"
	"tripcover.backend/internal/infrastructure/models"
)

// ChangeRequestRepository implements wallet-change-request data operations
type ChangeRequestRepository struct {
	db *gorm.DB
}

// NewChangeRequestRepository creates a new change request repository
func NewChangeRequestRepository(db *gorm.DB) *ChangeRequestRepository {
	return &ChangeRequestRepository{db: db}
}

// Create creates a new change request
func (r *ChangeRequestRepository) Create(ctx context.Context, request *entities.WalletChangeRequest) error {
	if request.ID == uuid.Nil {
		request.ID = uuid.New()
	}
	request.RequestedAt = time.Now()

	m := r.toModel(request)
	if err := GetDB(ctx, r.db).WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	return nil
}

// GetByID gets a change request by ID
func (r *ChangeRequestRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.WalletChangeRequest, error) {
	return r.getOne(GetDB(ctx, r.db).WithContext(ctx), id)
}

// GetByIDForUpdate gets a change request holding a row lock until the
// surrounding transaction ends
func (r *ChangeRequestRepository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*entities.WalletChangeRequest, error) {
	return r.getOne(lockForUpdate(GetDB(ctx, r.db).WithContext(ctx)), id)
}

func (r *ChangeRequestRepository) getOne(db *gorm.DB, id uuid.UUID) (*entities.WalletChangeRequest, error) {
	var m models.WalletChangeRequest
	if err := db.Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// GetPendingByWalletID gets the wallet's undecided request, if any
func (r *ChangeRequestRepository) GetPendingByWalletID(ctx context.Context, walletID uuid.UUID) (*entities.WalletChangeRequest, error) {
	var m models.WalletChangeRequest
	err := GetDB(ctx, r.db).WithContext(ctx).
		Where("wallet_id = ? AND status = ?", walletID, string(entities.ChangeRequestPending)).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// ListByWalletID lists a wallet's full request history, newest first
func (r *ChangeRequestRepository) ListByWalletID(ctx context.Context, walletID uuid.UUID) ([]*entities.WalletChangeRequest, error) {
	var requestModels []models.WalletChangeRequest
	err := GetDB(ctx, r.db).WithContext(ctx).
		Where("wallet_id = ?", walletID).
		Order("requested_at DESC").
		Find(&requestModels).Error
	if err != nil {
		return nil, err
	}

	requests := make([]*entities.WalletChangeRequest, 0, len(requestModels))
	for i := range requestModels {
		requests = append(requests, r.toEntity(&requestModels[i]))
	}
	return requests, nil
}

// ListByStatus lists requests in a given status, oldest first (review queue order)
func (r *ChangeRequestRepository) ListByStatus(ctx context.Context, status entities.ChangeRequestStatus, limit, offset int) ([]*entities.WalletChangeRequest, int64, error) {
	db := GetDB(ctx, r.db).WithContext(ctx).Model(&models.WalletChangeRequest{}).
		Where("status = ?", string(status))

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := db.Order("requested_at ASC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}

	var requestModels []models.WalletChangeRequest
	if err := query.Find(&requestModels).Error; err != nil {
		return nil, 0, err
	}

	requests := make([]*entities.WalletChangeRequest, 0, len(requestModels))
	for i := range requestModels {
		requests = append(requests, r.toEntity(&requestModels[i]))
	}
	return requests, total, nil
}

// UpdateStatus decides a request and stamps decided_at. Only pending
// requests can transition; decided requests are immutable.
func (r *ChangeRequestRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entities.ChangeRequestStatus) error {
	result := GetDB(ctx, r.db).WithContext(ctx).Model(&models.WalletChangeRequest{}).
		Where("id = ? AND status = ?", id, string(entities.ChangeRequestPending)).
		Updates(map[string]interface{}{
			"status":     string(status),
			"decided_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *ChangeRequestRepository) toModel(e *entities.WalletChangeRequest) *models.WalletChangeRequest {
	m := &models.WalletChangeRequest{
		ID:                  e.ID,
		WalletID:            e.WalletID,
		RequestedNewName:    e.RequestedNewName,
		RequestedNewNetwork: string(e.RequestedNewNetwork),
		RequestedNewAddress: e.RequestedNewAddress,
		Status:              string(e.Status),
		RequestedAt:         e.RequestedAt,
	}
	if e.Reason.Valid {
		s := e.Reason.String
		m.Reason = &s
	}
	if e.DecidedAt.Valid {
		t := e.DecidedAt.Time
		m.DecidedAt = &t
	}
	return m
}

func (r *ChangeRequestRepository) toEntity(m *models.WalletChangeRequest) *entities.WalletChangeRequest {
	e := &entities.WalletChangeRequest{
		ID:                  m.ID,
		WalletID:            m.WalletID,
		RequestedNewName:    m.RequestedNewName,
		RequestedNewNetwork: entities.Network(m.RequestedNewNetwork),
		RequestedNewAddress: m.RequestedNewAddress,
		Status:              entities.ChangeRequestStatus(m.Status),
		RequestedAt:         m.RequestedAt,
	}
	if m.Reason != nil {
		e.Reason = null.StringFrom(*m.Reason)
	}
	if m.DecidedAt != nil {
		e.DecidedAt = null.TimeFrom(*m.DecidedAt)
	}
	return e
}
