package models

import (
	"time"

	"github.com/google/uuid"
)

type VerificationRecord struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	PrincipalID   uuid.UUID `gorm:"type:uuid;not null;index:idx_verification_live,where:archived_at IS NULL,unique"`
	DocumentType  string    `gorm:"type:varchar(32);not null"`
	DocumentURL   string    `gorm:"type:text;not null"`
	FileName      string    `gorm:"type:varchar(255);not null"`
	FileSizeBytes int64     `gorm:"not null"`
	Status        string    `gorm:"type:varchar(32);not null;index"`
	UploadedAt    time.Time `gorm:"not null"`
	DecidedAt     *time.Time
	ArchivedAt    *time.Time `gorm:"index"`
	CreatedAt     time.Time
}
