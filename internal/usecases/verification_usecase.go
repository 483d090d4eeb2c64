package usecases

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/google/uuid"
	"tripcover.backend/internal/domain/entities"
	domainerrors "tripcover.backend/internal/domain/errors"
	"tripcover.backend/internal/domain/repositories"
)

// VerificationUsecase owns the identity-verification state machine:
// not_uploaded -> pending_review -> {verified | rejected}. A rejected
// record can be superseded by a fresh upload; verified is terminal.
type VerificationUsecase struct {
	verificationRepo repositories.VerificationRepository
	blobStore        repositories.BlobStore
	uow              repositories.UnitOfWork
}

// NewVerificationUsecase creates a new verification usecase
func NewVerificationUsecase(
	verificationRepo repositories.VerificationRepository,
	blobStore repositories.BlobStore,
	uow repositories.UnitOfWork,
) *VerificationUsecase {
	return &VerificationUsecase{
		verificationRepo: verificationRepo,
		blobStore:        blobStore,
		uow:              uow,
	}
}

// SubmitDocument validates the upload, stores the file, and creates a
// pending_review record. A previously rejected record is archived, never
// mutated in place.
func (u *VerificationUsecase) SubmitDocument(ctx context.Context, principalID uuid.UUID, input *entities.SubmitDocumentInput, content io.Reader) (*entities.VerificationRecord, error) {
	if !entities.IsValidDocumentType(input.DocumentType) {
		return nil, domainerrors.ErrInvalidDocumentType
	}
	// File checks happen before the blob store is called.
	if !entities.AllowedDocumentMIMETypes[input.ContentType] {
		return nil, domainerrors.ErrUnsupportedFile
	}
	if input.FileSize > entities.MaxDocumentSizeBytes {
		return nil, domainerrors.ErrFileTooLarge
	}

	// Fail fast on workflow state before paying for the upload. The check
	// is repeated under a row lock below; this one only avoids orphan blobs.
	existing, err := u.verificationRepo.GetLiveByPrincipalID(ctx, principalID)
	if err != nil && !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, err
	}
	if err := checkResubmittable(existing); err != nil {
		return nil, err
	}

	url, err := u.blobStore.Upload(ctx, content, input.FileName, input.ContentType)
	if err != nil {
		return nil, err
	}

	record := &entities.VerificationRecord{
		PrincipalID:   principalID,
		DocumentType:  input.DocumentType,
		DocumentURL:   url,
		FileName:      input.FileName,
		FileSizeBytes: input.FileSize,
		Status:        entities.VerificationPendingReview,
		UploadedAt:    time.Now(),
	}

	err = withTxRetry(ctx, u.uow, func(txCtx context.Context) error {
		live, err := u.verificationRepo.GetLiveByPrincipalIDForUpdate(txCtx, principalID)
		if err != nil && !errors.Is(err, domainerrors.ErrNotFound) {
			return err
		}
		if err := checkResubmittable(live); err != nil {
			return err
		}
		if live != nil {
			if err := u.verificationRepo.Archive(txCtx, live.ID); err != nil {
				return err
			}
		}
		return u.verificationRepo.Create(txCtx, record)
	})
	if err != nil {
		return nil, err
	}

	return record, nil
}

// Decide records the admin verdict on the principal's pending record.
// Deciding an already-decided record fails with ErrAlreadyDecided rather
// than silently succeeding.
func (u *VerificationUsecase) Decide(ctx context.Context, principalID uuid.UUID, decision entities.VerificationDecision) (*entities.VerificationRecord, error) {
	if !entities.IsValidVerificationDecision(decision) {
		return nil, domainerrors.ErrInvalidInput
	}

	var decided *entities.VerificationRecord
	err := withTxRetry(ctx, u.uow, func(txCtx context.Context) error {
		record, err := u.verificationRepo.GetLiveByPrincipalIDForUpdate(txCtx, principalID)
		if err != nil {
			if errors.Is(err, domainerrors.ErrNotFound) {
				return domainerrors.ErrNoPendingRecord
			}
			return err
		}

		switch record.Status {
		case entities.VerificationPendingReview:
			// fallthrough to the update below
		case entities.VerificationVerified, entities.VerificationRejected:
			return domainerrors.ErrAlreadyDecided
		default:
			return domainerrors.ErrNoPendingRecord
		}

		status := entities.VerificationStatus(decision)
		if err := u.verificationRepo.UpdateStatus(txCtx, record.ID, status); err != nil {
			return err
		}
		record.Status = status
		decided = record
		return nil
	})
	if err != nil {
		return nil, err
	}

	return decided, nil
}

// GetStatus returns the principal's live record, or nil when nothing has
// been uploaded yet. Lock-free.
func (u *VerificationUsecase) GetStatus(ctx context.Context, principalID uuid.UUID) (*entities.VerificationRecord, error) {
	record, err := u.verificationRepo.GetLiveByPrincipalID(ctx, principalID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return record, nil
}

// ListByStatus lists live records for the admin review queue
func (u *VerificationUsecase) ListByStatus(ctx context.Context, status entities.VerificationStatus, limit, offset int) ([]*entities.VerificationRecord, int64, error) {
	return u.verificationRepo.ListByStatus(ctx, status, limit, offset)
}

// checkResubmittable enforces the forward-only state machine on upload:
// nothing or rejected may (re)submit, pending and verified may not.
func checkResubmittable(record *entities.VerificationRecord) error {
	if record == nil {
		return nil
	}
	switch record.Status {
	case entities.VerificationVerified:
		return domainerrors.ErrAlreadyVerified
	case entities.VerificationPendingReview:
		return domainerrors.ErrPendingReviewExists
	}
	return nil
}
