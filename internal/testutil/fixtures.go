package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Jlford67/landlord-sub001/internal/models"

	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestProperty creates a property with a unique name.
func CreateTestProperty(t *testing.T, db *gorm.DB) *models.Property {
	t.Helper()

	property := &models.Property{
		Name:     fmt.Sprintf("Test Property %d", nextID()),
		Address:  "1 Test Lane",
		IsActive: true,
	}
	if err := db.Create(property).Error; err != nil {
		t.Fatalf("failed to create test property: %v", err)
	}
	return property
}

// CreateTestCategory creates a root category of the given kind.
func CreateTestCategory(t *testing.T, db *gorm.DB, kind models.CategoryKind) *models.Category {
	t.Helper()
	return CreateTestChildCategory(t, db, kind, nil)
}

// CreateTestChildCategory creates a category of the given kind under the
// given parent (nil for a root).
func CreateTestChildCategory(t *testing.T, db *gorm.DB, kind models.CategoryKind, parentID *string) *models.Category {
	t.Helper()

	category := &models.Category{
		Name:     fmt.Sprintf("Test Category %d", nextID()),
		Kind:     kind,
		ParentID: parentID,
		IsActive: true,
	}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create test category: %v", err)
	}
	return category
}

// CreateTestTransaction creates a ledger entry with the given amount (in
// cents) on the given date.
func CreateTestTransaction(t *testing.T, db *gorm.DB, propertyID, categoryID string, date time.Time, amount int64) *models.Transaction {
	t.Helper()

	tx := &models.Transaction{
		PropertyID: propertyID,
		CategoryID: categoryID,
		Date:       date,
		Amount:     amount,
		Source:     models.TransactionSourceManual,
	}
	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return tx
}

// CreateTestAnnualAmount creates an annual lump sum (in cents).
func CreateTestAnnualAmount(t *testing.T, db *gorm.DB, propertyID, categoryID string, year int, amount int64) *models.AnnualCategoryAmount {
	t.Helper()

	row := &models.AnnualCategoryAmount{
		PropertyID: propertyID,
		Year:       year,
		CategoryID: categoryID,
		Amount:     amount,
	}
	if err := db.Create(row).Error; err != nil {
		t.Fatalf("failed to create test annual amount: %v", err)
	}
	return row
}

// CreateTestDefinition creates an active monthly recurring definition
// due on day 1, starting at startMonth ("YYYY-MM"), open-ended.
func CreateTestDefinition(t *testing.T, db *gorm.DB, propertyID, categoryID string, amount int64, startMonth string) *models.RecurringTransactionDefinition {
	t.Helper()

	def := &models.RecurringTransactionDefinition{
		PropertyID: propertyID,
		CategoryID: categoryID,
		Amount:     amount,
		Memo:       fmt.Sprintf("Test Recurring %d", nextID()),
		DayOfMonth: 1,
		StartMonth: startMonth,
		IsActive:   true,
	}
	if err := db.Create(def).Error; err != nil {
		t.Fatalf("failed to create test recurring definition: %v", err)
	}
	return def
}
