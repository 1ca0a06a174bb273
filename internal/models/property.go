package models

// Property is a rental unit the ledger books against. Property CRUD lives
// in the admin surface; the engine validates existence on posting calls.
type Property struct {
	Base
	Name     string `gorm:"not null" json:"name"`
	Address  string `json:"address"`
	Notes    string `json:"notes"`
	IsActive bool   `gorm:"default:true" json:"is_active"`
}
