package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// Wallet represents a principal's single payout wallet.
// A principal owns zero or one wallet; creation requires a verified
// identity and every later mutation goes through an approved change request.
type Wallet struct {
	ID          uuid.UUID `json:"id"`
	OwnerID     uuid.UUID `json:"ownerId"`
	DisplayName string    `json:"displayName"`
	Network     Network   `json:"network"`
	Address     string    `json:"address"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   null.Time `json:"updatedAt,omitempty"`
}

// CreateWalletInput represents input for binding a payout wallet
type CreateWalletInput struct {
	DisplayName string  `json:"displayName" binding:"required,min=1,max=100"`
	Network     Network `json:"network" binding:"required"`
	Address     string  `json:"address" binding:"required"`
}

// ChangeRequestStatus represents the state of a wallet change request
type ChangeRequestStatus string

const (
	ChangeRequestPending  ChangeRequestStatus = "pending"
	ChangeRequestApproved ChangeRequestStatus = "approved"
	ChangeRequestRejected ChangeRequestStatus = "rejected"
)

// WalletChangeRequest represents a proposed mutation of a wallet's
// mutable fields, applied only after admin approval. Decided requests are
// immutable history.
type WalletChangeRequest struct {
	ID                  uuid.UUID           `json:"id"`
	WalletID            uuid.UUID           `json:"walletId"`
	RequestedNewName    string              `json:"requestedNewName"`
	RequestedNewNetwork Network             `json:"requestedNewNetwork"`
	RequestedNewAddress string              `json:"requestedNewAddress"`
	Reason              null.String         `json:"reason,omitempty"`
	Status              ChangeRequestStatus `json:"status"`
	RequestedAt         time.Time           `json:"requestedAt"`
	DecidedAt           null.Time           `json:"decidedAt,omitempty"`
}

// ChangeRequestInput represents input for requesting a wallet change
type ChangeRequestInput struct {
	NewName    string  `json:"newName" binding:"required,min=1,max=100"`
	NewNetwork Network `json:"newNetwork" binding:"required"`
	NewAddress string  `json:"newAddress" binding:"required"`
	Reason     string  `json:"reason"`
}

// ChangeDecision is an admin verdict on a pending change request
type ChangeDecision string

const (
	ChangeApproved ChangeDecision = "approved"
	ChangeRejected ChangeDecision = "rejected"
)

// IsValidChangeDecision reports whether d is a recognized verdict
func IsValidChangeDecision(d ChangeDecision) bool {
	return d == ChangeApproved || d == ChangeRejected
}
