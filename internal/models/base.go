package models

import (
	"time"

	"github.com/Jlford67/landlord-sub001/internal/uuid"

	"gorm.io/gorm"
)

// Base contains common columns for all tables. DeletedAt is the ledger's
// soft-delete marker: soft-deleted rows are excluded from every query
// unless explicitly unscoped.
type Base struct {
	ID        string         `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

// BeforeCreate hook generates a UUIDv7 for new records
func (b *Base) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.New()
	}
	return nil
}
