package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// VerificationStatus represents the state of a principal's identity check
type VerificationStatus string

const (
	VerificationNotUploaded   VerificationStatus = "not_uploaded"
	VerificationPendingReview VerificationStatus = "pending_review"
	VerificationVerified      VerificationStatus = "verified"
	VerificationRejected      VerificationStatus = "rejected"
)

// DocumentType represents the kind of identity document submitted
type DocumentType string

const (
	DocumentPassport       DocumentType = "passport"
	DocumentDrivingLicense DocumentType = "driving_license"
	DocumentNationalID     DocumentType = "national_id"
	DocumentUtilityBill    DocumentType = "utility_bill"
	DocumentBankStatement  DocumentType = "bank_statement"
)

// IsValidDocumentType reports whether t is one of the accepted document types
func IsValidDocumentType(t DocumentType) bool {
	switch t {
	case DocumentPassport, DocumentDrivingLicense, DocumentNationalID,
		DocumentUtilityBill, DocumentBankStatement:
		return true
	}
	return false
}

// Upload constraints, checked before the blob store is ever called
const (
	MaxDocumentSizeBytes = 5 * 1024 * 1024
)

// AllowedDocumentMIMETypes lists the accepted upload content types
var AllowedDocumentMIMETypes = map[string]bool{
	"image/jpeg":      true,
	"image/jpg":       true,
	"image/png":       true,
	"application/pdf": true,
}

// VerificationRecord represents one identity-verification attempt.
// At most one live (non-archived) record exists per principal; a re-upload
// after rejection archives the old record and creates a fresh one.
type VerificationRecord struct {
	ID            uuid.UUID          `json:"id"`
	PrincipalID   uuid.UUID          `json:"principalId"`
	DocumentType  DocumentType       `json:"documentType"`
	DocumentURL   string             `json:"documentUrl"`
	FileName      string             `json:"fileName"`
	FileSizeBytes int64              `json:"fileSizeBytes"`
	Status        VerificationStatus `json:"status"`
	UploadedAt    time.Time          `json:"uploadedAt"`
	DecidedAt     null.Time          `json:"decidedAt,omitempty"`
	ArchivedAt    null.Time          `json:"-"`
	CreatedAt     time.Time          `json:"createdAt"`
}

// SubmitDocumentInput represents the metadata accompanying a document upload
type SubmitDocumentInput struct {
	DocumentType DocumentType `json:"documentType" binding:"required"`
	FileName     string       `json:"fileName"`
	FileSize     int64        `json:"fileSize"`
	ContentType  string       `json:"contentType"`
	DocumentURL  string       `json:"documentUrl"`
}

// VerificationDecision is an admin verdict on a pending record
type VerificationDecision string

const (
	DecisionVerified VerificationDecision = "verified"
	DecisionRejected VerificationDecision = "rejected"
)

// IsValidVerificationDecision reports whether d is a recognized verdict
func IsValidVerificationDecision(d VerificationDecision) bool {
	return d == DecisionVerified || d == DecisionRejected
}
