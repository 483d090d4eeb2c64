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

// VerificationRepository implements verification-record data operations
type VerificationRepository struct {
	db *gorm.DB
}

// NewVerificationRepository creates a new verification repository
func NewVerificationRepository(db *gorm.DB) *VerificationRepository {
	return &VerificationRepository{db: db}
}

// Create creates a new verification record
func (r *VerificationRepository) Create(ctx context.Context, record *entities.VerificationRecord) error {
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	record.CreatedAt = time.Now()

	m := r.toModel(record)
	if err := GetDB(ctx, r.db).WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	return nil
}

// GetLiveByPrincipalID gets the principal's non-archived record
func (r *VerificationRepository) GetLiveByPrincipalID(ctx context.Context, principalID uuid.UUID) (*entities.VerificationRecord, error) {
	return r.getLive(GetDB(ctx, r.db).WithContext(ctx), principalID)
}

// GetLiveByPrincipalIDForUpdate gets the principal's non-archived record
// holding a row lock until the surrounding transaction ends
func (r *VerificationRepository) GetLiveByPrincipalIDForUpdate(ctx context.Context, principalID uuid.UUID) (*entities.VerificationRecord, error) {
	return r.getLive(lockForUpdate(GetDB(ctx, r.db).WithContext(ctx)), principalID)
}

func (r *VerificationRepository) getLive(db *gorm.DB, principalID uuid.UUID) (*entities.VerificationRecord, error) {
	var m models.VerificationRecord
	err := db.Where("principal_id = ? AND archived_at IS NULL", principalID).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// UpdateStatus transitions a record and stamps decided_at
func (r *VerificationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entities.VerificationStatus) error {
	result := GetDB(ctx, r.db).WithContext(ctx).Model(&models.VerificationRecord{}).
		Where("id = ?", id).
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

// Archive marks a record as superseded; it stays as history
func (r *VerificationRepository) Archive(ctx context.Context, id uuid.UUID) error {
	result := GetDB(ctx, r.db).WithContext(ctx).Model(&models.VerificationRecord{}).
		Where("id = ? AND archived_at IS NULL", id).
		Update("archived_at", time.Now())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// ListByStatus lists live records in a given status, oldest first (review queue order)
func (r *VerificationRepository) ListByStatus(ctx context.Context, status entities.VerificationStatus, limit, offset int) ([]*entities.VerificationRecord, int64, error) {
	db := GetDB(ctx, r.db).WithContext(ctx).Model(&models.VerificationRecord{}).
		Where("status = ? AND archived_at IS NULL", string(status))

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := db.Order("uploaded_at ASC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}

	var recordModels []models.VerificationRecord
	if err := query.Find(&recordModels).Error; err != nil {
		return nil, 0, err
	}

	records := make([]*entities.VerificationRecord, 0, len(recordModels))
	for i := range recordModels {
		records = append(records, r.toEntity(&recordModels[i]))
	}
	return records, total, nil
}

func (r *VerificationRepository) toModel(e *entities.VerificationRecord) *models.VerificationRecord {
	m := &models.VerificationRecord{
		ID:            e.ID,
		PrincipalID:   e.PrincipalID,
		DocumentType:  string(e.DocumentType),
		DocumentURL:   e.DocumentURL,
		FileName:      e.FileName,
		FileSizeBytes: e.FileSizeBytes,
		Status:        string(e.Status),
		UploadedAt:    e.UploadedAt,
		CreatedAt:     e.CreatedAt,
	}
	if e.DecidedAt.Valid {
		t := e.DecidedAt.Time
		m.DecidedAt = &t
	}
	if e.ArchivedAt.Valid {
		t := e.ArchivedAt.Time
		m.ArchivedAt = &t
	}
	return m
}

func (r *VerificationRepository) toEntity(m *models.VerificationRecord) *entities.VerificationRecord {
	e := &entities.VerificationRecord{
		ID:            m.ID,
		PrincipalID:   m.PrincipalID,
		DocumentType:  entities.DocumentType(m.DocumentType),
		DocumentURL:   m.DocumentURL,
		FileName:      m.FileName,
		FileSizeBytes: m.FileSizeBytes,
		Status:        entities.VerificationStatus(m.Status),
		UploadedAt:    m.UploadedAt,
		CreatedAt:     m.CreatedAt,
	}
	if m.DecidedAt != nil {
		e.DecidedAt = null.TimeFrom(*m.DecidedAt)
	}
	if m.ArchivedAt != nil {
		e.ArchivedAt = null.TimeFrom(*m.ArchivedAt)
	}
	return e
}
