package models

import (
	"time"

	"github.com/google/uuid"
)

type Wallet struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	OwnerID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"` // one wallet per principal
	DisplayName string    `gorm:"type:varchar(100);not null"`
	Network     string    `gorm:"type:varchar(32);not null"`
	Address     string    `gorm:"type:varchar(255);not null;index"`
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}
