package models

import "time"

// TransactionSource tags how a ledger entry came to exist.
type TransactionSource string

const (
	TransactionSourceManual    TransactionSource = "manual"
	TransactionSourceRecurring TransactionSource = "recurring"
	TransactionSourceImport    TransactionSource = "import"
)

// Transaction is one ledger entry. Amount is in minor units (cents),
// signed: income-kind entries are non-negative, expense-kind entries
// non-positive, transfers unconstrained. Date carries day-level
// semantics only (UTC midnight).
type Transaction struct {
	Base
	PropertyID string            `gorm:"type:uuid;not null;index" json:"property_id"`
	CategoryID string            `gorm:"type:uuid;not null;index" json:"category_id"`
	Date       time.Time         `gorm:"not null;index" json:"date"`
	Amount     int64             `gorm:"type:bigint;not null" json:"amount"`
	Memo       string            `json:"memo"`
	Source     TransactionSource `gorm:"not null;default:'manual'" json:"source"`

	// Relationships
	Property Property `gorm:"foreignKey:PropertyID" json:"property,omitempty"`
	Category Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}
