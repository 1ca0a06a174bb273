package services

import (
	"testing"
	"time"

	"github.com/Jlford67/landlord-sub001/internal/models"
	"github.com/Jlford67/landlord-sub001/internal/pagination"
	"github.com/Jlford67/landlord-sub001/internal/testutil"
)

func TestCreateTransaction(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db, NewCategoryService(db), NewPropertyService(db))
		property := testutil.CreateTestProperty(t, db)
		category := testutil.CreateTestCategory(t, db, models.CategoryKindIncome)

		date := time.Date(2024, time.June, 5, 14, 30, 0, 0, time.UTC)
		tx, err := svc.CreateTransaction(property.ID, category.ID, date, 150000, "June rent", "")
		testutil.AssertNoError(t, err)

		if tx.ID == "" {
			t.Fatal("expected non-empty transaction ID")
		}
		if tx.Amount != 150000 {
			t.Errorf("expected amount 150000, got %d", tx.Amount)
		}
		if tx.Source != models.TransactionSourceManual {
			t.Errorf("expected default source manual, got %s", tx.Source)
		}
		if !tx.Date.Equal(time.Date(2024, time.June, 5, 0, 0, 0, 0, time.UTC)) {
			t.Errorf("expected date truncated to the day, got %v", tx.Date)
		}
	})

	t.Run("missing_property", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db, NewCategoryService(db), NewPropertyService(db))
		category := testutil.CreateTestCategory(t, db, models.CategoryKindIncome)

		_, err := svc.CreateTransaction("01900000-0000-7000-8000-000000000000", category.ID, time.Now(), 100, "", models.TransactionSourceManual)
		testutil.AssertAppError(t, err, "PROPERTY_NOT_FOUND")
	})

	t.Run("missing_category", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db, NewCategoryService(db), NewPropertyService(db))
		property := testutil.CreateTestProperty(t, db)

		_, err := svc.CreateTransaction(property.ID, "01900000-0000-7000-8000-000000000000", time.Now(), 100, "", models.TransactionSourceManual)
		testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
	})

	t.Run("zero_date", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db, NewCategoryService(db), NewPropertyService(db))
		property := testutil.CreateTestProperty(t, db)
		category := testutil.CreateTestCategory(t, db, models.CategoryKindIncome)

		_, err := svc.CreateTransaction(property.ID, category.ID, time.Time{}, 100, "", models.TransactionSourceManual)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestGetTransactions(t *testing.T) {
	t.Run("filters_by_property_and_date_range", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db, NewCategoryService(db), NewPropertyService(db))
		p1 := testutil.CreateTestProperty(t, db)
		p2 := testutil.CreateTestProperty(t, db)
		category := testutil.CreateTestCategory(t, db, models.CategoryKindIncome)

		testutil.CreateTestTransaction(t, db, p1.ID, category.ID, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), 100)
		testutil.CreateTestTransaction(t, db, p1.ID, category.ID, time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC), 200)
		testutil.CreateTestTransaction(t, db, p2.ID, category.ID, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), 300)

		from := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
		to := time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)
		result, err := svc.GetTransactions(
			pagination.PageRequest{Page: 1, PageSize: 20},
			TransactionFilter{PropertyID: &p1.ID, FromDate: &from, ToDate: &to},
		)
		testutil.AssertNoError(t, err)

		if result.TotalItems != 1 {
			t.Fatalf("expected 1 transaction, got %d", result.TotalItems)
		}
		if result.Data[0].Amount != 100 {
			t.Errorf("expected the June entry for p1, got amount %d", result.Data[0].Amount)
		}
	})

	t.Run("filters_by_source", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db, NewCategoryService(db), NewPropertyService(db))
		property := testutil.CreateTestProperty(t, db)
		category := testutil.CreateTestCategory(t, db, models.CategoryKindIncome)

		testutil.CreateTestTransaction(t, db, property.ID, category.ID, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), 100)
		recurring := &models.Transaction{
			PropertyID: property.ID,
			CategoryID: category.ID,
			Date:       time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
			Amount:     200,
			Source:     models.TransactionSourceRecurring,
		}
		if err := db.Create(recurring).Error; err != nil {
			t.Fatalf("failed to create recurring transaction: %v", err)
		}

		source := models.TransactionSourceRecurring
		result, err := svc.GetTransactions(
			pagination.PageRequest{Page: 1, PageSize: 20},
			TransactionFilter{Source: &source},
		)
		testutil.AssertNoError(t, err)

		if result.TotalItems != 1 || result.Data[0].Amount != 200 {
			t.Errorf("expected only the recurring entry, got %d items", result.TotalItems)
		}
	})
}

func TestDeleteTransaction(t *testing.T) {
	t.Run("soft_deletes", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db, NewCategoryService(db), NewPropertyService(db))
		property := testutil.CreateTestProperty(t, db)
		category := testutil.CreateTestCategory(t, db, models.CategoryKindIncome)
		tx := testutil.CreateTestTransaction(t, db, property.ID, category.ID, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), 100)

		testutil.AssertNoError(t, svc.DeleteTransaction(tx.ID))

		_, err := svc.GetTransactionByID(tx.ID)
		testutil.AssertAppError(t, err, "TRANSACTION_NOT_FOUND")

		// The row survives soft deletion.
		var count int64
		if err := db.Unscoped().Model(&models.Transaction{}).Where("id = ?", tx.ID).Count(&count).Error; err != nil {
			t.Fatalf("failed to count unscoped: %v", err)
		}
		if count != 1 {
			t.Errorf("expected soft-deleted row to remain, got %d", count)
		}
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db, NewCategoryService(db), NewPropertyService(db))

		err := svc.DeleteTransaction("01900000-0000-7000-8000-000000000000")
		testutil.AssertAppError(t, err, "TRANSACTION_NOT_FOUND")
	})
}
