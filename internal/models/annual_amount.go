package models

// AnnualCategoryAmount is a lump sum known only at annual granularity,
// typically imported from a prior bookkeeping system. Reports prorate it
// into any sub-year query range by day weight. One row per
// (property, year, category, ownership reference).
type AnnualCategoryAmount struct {
	Base
	PropertyID   string `gorm:"type:uuid;not null;uniqueIndex:idx_annual_amount_key" json:"property_id"`
	Year         int    `gorm:"not null;uniqueIndex:idx_annual_amount_key" json:"year"`
	CategoryID   string `gorm:"type:uuid;not null;uniqueIndex:idx_annual_amount_key" json:"category_id"`
	OwnershipRef string `gorm:"not null;default:'';uniqueIndex:idx_annual_amount_key" json:"ownership_ref"`
	Amount       int64  `gorm:"type:bigint;not null" json:"amount"`

	// Relationships
	Property Property `gorm:"foreignKey:PropertyID" json:"property,omitempty"`
	Category Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}
