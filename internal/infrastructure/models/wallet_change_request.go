package models

import (
	"time"

	"github.com/google/uuid"
)

type WalletChangeRequest struct {
	ID                  uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	WalletID            uuid.UUID `gorm:"type:uuid;not null;index"`
	RequestedNewName    string    `gorm:"type:varchar(100);not null"`
	RequestedNewNetwork string    `gorm:"type:varchar(32);not null"`
	RequestedNewAddress string    `gorm:"type:varchar(255);not null"`
	Reason              *string   `gorm:"type:text"`
	Status              string    `gorm:"type:varchar(32);not null;index"`
	RequestedAt         time.Time `gorm:"not null"`
	DecidedAt           *time.Time

	// Associations
	Wallet Wallet `gorm:"foreignKey:WalletID"`
}
