package repositories

import (
	"context"

	"github.com/google/uuid"
	"tripcover.backend/internal/domain/entities"
)

// VerificationRepository defines verification-record data operations.
// "Live" means not archived; a principal has at most one live record.
type VerificationRepository interface {
	Create(ctx context.Context, record *entities.VerificationRecord) error
	GetLiveByPrincipalID(ctx context.Context, principalID uuid.UUID) (*entities.VerificationRecord, error)
	// GetLiveByPrincipalIDForUpdate locks the live record's row for the
	// duration of the surrounding transaction.
	GetLiveByPrincipalIDForUpdate(ctx context.Context, principalID uuid.UUID) (*entities.VerificationRecord, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status entities.VerificationStatus) error
	Archive(ctx context.Context, id uuid.UUID) error
	ListByStatus(ctx context.Context, status entities.VerificationStatus, limit, offset int) ([]*entities.VerificationRecord, int64, error)
}
