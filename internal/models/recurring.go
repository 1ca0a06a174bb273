package models

import (
	"time"

	"github.com/Jlford67/landlord-sub001/internal/dates"
	"github.com/Jlford67/landlord-sub001/internal/uuid"

	"gorm.io/gorm"
)

// RecurringTransactionDefinition describes an obligation that recurs once
// per calendar month (rent, HOA dues). Amount is a minor-unit magnitude;
// the posting service applies the category's sign convention. DayOfMonth
// is capped at 28 so every month has the due date. StartMonth and
// EndMonth are inclusive "YYYY-MM" bounds; a nil EndMonth means
// open-ended.
type RecurringTransactionDefinition struct {
	Base
	PropertyID string  `gorm:"type:uuid;not null;index" json:"property_id"`
	CategoryID string  `gorm:"type:uuid;not null" json:"category_id"`
	Amount     int64   `gorm:"type:bigint;not null" json:"amount"`
	Memo       string  `json:"memo"`
	DayOfMonth int     `gorm:"not null" json:"day_of_month"`
	StartMonth string  `gorm:"type:varchar(7);not null" json:"start_month"`
	EndMonth   *string `gorm:"type:varchar(7)" json:"end_month,omitempty"`
	IsActive   bool    `gorm:"default:true" json:"is_active"`

	// Relationships
	Property Property `gorm:"foreignKey:PropertyID" json:"property,omitempty"`
	Category Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

// AppliesTo reports whether the definition's inclusive month window
// covers the given month. Returns false when StartMonth or EndMonth is
// malformed.
func (d *RecurringTransactionDefinition) AppliesTo(month dates.YearMonth) bool {
	start, err := dates.ParseYearMonth(d.StartMonth)
	if err != nil {
		return false
	}
	if month.Before(start) {
		return false
	}
	if d.EndMonth != nil {
		end, err := dates.ParseYearMonth(*d.EndMonth)
		if err != nil {
			return false
		}
		if month.After(end) {
			return false
		}
	}
	return true
}

// RecurringPosting is the idempotency record for recurring
// materialization: at most one row per (recurring_transaction_id, month)
// ever exists, enforced by the composite unique index. Postings are never
// soft-deleted; when a dangling posting is replaced the old row is
// removed outright.
type RecurringPosting struct {
	ID                     string    `gorm:"type:uuid;primaryKey" json:"id"`
	RecurringTransactionID string    `gorm:"type:uuid;not null;uniqueIndex:idx_recurring_posting_month" json:"recurring_transaction_id"`
	Month                  string    `gorm:"type:varchar(7);not null;uniqueIndex:idx_recurring_posting_month" json:"month"`
	TransactionID          string    `gorm:"type:uuid;not null" json:"transaction_id"`
	CreatedAt              time.Time `json:"created_at"`
}

// BeforeCreate hook generates a UUIDv7 for new records
func (p *RecurringPosting) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New()
	}
	return nil
}
