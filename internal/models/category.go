package models

// CategoryKind determines a category's sign convention and report bucket.
type CategoryKind string

const (
	CategoryKindIncome   CategoryKind = "income"
	CategoryKindExpense  CategoryKind = "expense"
	CategoryKindTransfer CategoryKind = "transfer"
)

// Category is one node of the bookkeeping category forest. Categories are
// maintained by the admin surface; the engine only reads them. A category
// whose ParentID points outside the active set is treated as a root.
type Category struct {
	Base
	Name     string       `gorm:"not null" json:"name"`
	Kind     CategoryKind `gorm:"not null" json:"kind"`
	ParentID *string      `gorm:"type:uuid" json:"parent_id,omitempty"`
	IsActive bool         `gorm:"default:true" json:"is_active"`

	// Relationships
	Parent   *Category  `gorm:"foreignKey:ParentID" json:"parent,omitempty"`
	Children []Category `gorm:"foreignKey:ParentID" json:"children,omitempty"`
}
