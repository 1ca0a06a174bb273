package services

import (
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/Jlford67/landlord-sub001/internal/dates"
	"github.com/Jlford67/landlord-sub001/internal/models"
	"github.com/Jlford67/landlord-sub001/internal/pagination"
	"github.com/Jlford67/landlord-sub001/internal/testutil"
)

func newRecurringService(db *gorm.DB) RecurringServicer {
	return NewRecurringService(db, NewCategoryService(db), NewPropertyService(db))
}

func month(t *testing.T, s string) dates.YearMonth {
	t.Helper()
	ym, err := dates.ParseYearMonth(s)
	if err != nil {
		t.Fatalf("bad month %q: %v", s, err)
	}
	return ym
}

func TestCreateDefinition(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newRecurringService(db)
		property := testutil.CreateTestProperty(t, db)
		category := testutil.CreateTestCategory(t, db, models.CategoryKindIncome)

		def, err := svc.CreateDefinition(property.ID, category.ID, 150000, "Monthly rent", 5, "2024-01", nil)
		testutil.AssertNoError(t, err)

		if def.ID == "" {
			t.Fatal("expected non-empty definition ID")
		}
		if def.StartMonth != "2024-01" {
			t.Errorf("expected start month 2024-01, got %s", def.StartMonth)
		}
		if !def.IsActive {
			t.Error("expected definition to be active")
		}
	})

	t.Run("zero_amount", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newRecurringService(db)
		property := testutil.CreateTestProperty(t, db)
		category := testutil.CreateTestCategory(t, db, models.CategoryKindIncome)

		_, err := svc.CreateDefinition(property.ID, category.ID, 0, "", 5, "2024-01", nil)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("day_of_month_bounds", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newRecurringService(db)
		property := testutil.CreateTestProperty(t, db)
		category := testutil.CreateTestCategory(t, db, models.CategoryKindIncome)

		for _, day := range []int{0, 29, 31} {
			_, err := svc.CreateDefinition(property.ID, category.ID, 100, "", day, "2024-01", nil)
			testutil.AssertAppError(t, err, "INVALID_INPUT")
		}
	})

	t.Run("malformed_start_month", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newRecurringService(db)
		property := testutil.CreateTestProperty(t, db)
		category := testutil.CreateTestCategory(t, db, models.CategoryKindIncome)

		_, err := svc.CreateDefinition(property.ID, category.ID, 100, "", 1, "January 2024", nil)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("end_before_start", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newRecurringService(db)
		property := testutil.CreateTestProperty(t, db)
		category := testutil.CreateTestCategory(t, db, models.CategoryKindIncome)

		end := "2023-12"
		_, err := svc.CreateDefinition(property.ID, category.ID, 100, "", 1, "2024-01", &end)
		testutil.AssertAppError(t, err, "INVALID_MONTH_WINDOW")
	})

	t.Run("missing_property", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newRecurringService(db)
		category := testutil.CreateTestCategory(t, db, models.CategoryKindIncome)

		_, err := svc.CreateDefinition("01900000-0000-7000-8000-000000000000", category.ID, 100, "", 1, "2024-01", nil)
		testutil.AssertAppError(t, err, "PROPERTY_NOT_FOUND")
	})
}

func TestUpdateDefinition(t *testing.T) {
	t.Run("updates_fields", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newRecurringService(db)
		property := testutil.CreateTestProperty(t, db)
		category := testutil.CreateTestCategory(t, db, models.CategoryKindIncome)
		def := testutil.CreateTestDefinition(t, db, property.ID, category.ID, 150000, "2024-01")

		amount := int64(160000)
		end := "2024-12"
		_, err := svc.UpdateDefinition(def.ID, &amount, nil, nil, &end, nil)
		testutil.AssertNoError(t, err)

		got, err := svc.GetDefinitionByID(def.ID)
		testutil.AssertNoError(t, err)
		if got.Amount != 160000 {
			t.Errorf("expected amount 160000, got %d", got.Amount)
		}
		if got.EndMonth == nil || *got.EndMonth != "2024-12" {
			t.Errorf("expected end month 2024-12, got %v", got.EndMonth)
		}
	})

	t.Run("end_before_start_rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newRecurringService(db)
		property := testutil.CreateTestProperty(t, db)
		category := testutil.CreateTestCategory(t, db, models.CategoryKindIncome)
		def := testutil.CreateTestDefinition(t, db, property.ID, category.ID, 150000, "2024-06")

		end := "2024-01"
		_, err := svc.UpdateDefinition(def.ID, nil, nil, nil, &end, nil)
		testutil.AssertAppError(t, err, "INVALID_MONTH_WINDOW")
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newRecurringService(db)

		_, err := svc.UpdateDefinition("01900000-0000-7000-8000-000000000000", nil, nil, nil, nil, nil)
		testutil.AssertAppError(t, err, "RECURRING_DEFINITION_NOT_FOUND")
	})
}

func TestGetDefinitions(t *testing.T) {
	t.Run("active_only_by_default", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newRecurringService(db)
		property := testutil.CreateTestProperty(t, db)
		category := testutil.CreateTestCategory(t, db, models.CategoryKindIncome)

		testutil.CreateTestDefinition(t, db, property.ID, category.ID, 100, "2024-01")
		inactive := testutil.CreateTestDefinition(t, db, property.ID, category.ID, 200, "2024-01")
		if err := db.Model(inactive).Update("is_active", false).Error; err != nil {
			t.Fatalf("failed to deactivate definition: %v", err)
		}

		page := pagination.PageRequest{Page: 1, PageSize: 20}
		result, err := svc.GetDefinitions(&property.ID, false, page)
		testutil.AssertNoError(t, err)
		if result.TotalItems != 1 {
			t.Errorf("expected 1 active definition, got %d", result.TotalItems)
		}

		result, err = svc.GetDefinitions(&property.ID, true, page)
		testutil.AssertNoError(t, err)
		if result.TotalItems != 2 {
			t.Errorf("expected 2 definitions with inactive included, got %d", result.TotalItems)
		}
	})
}

func TestScheduledForMonth(t *testing.T) {
	t.Run("window_bounds_are_inclusive", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newRecurringService(db)
		property := testutil.CreateTestProperty(t, db)
		category := testutil.CreateTestCategory(t, db, models.CategoryKindIncome)

		end := "2024-08"
		_, err := svc.CreateDefinition(property.ID, category.ID, 150000, "Rent", 1, "2024-06", &end)
		testutil.AssertNoError(t, err)

		for m, want := range map[string]int{
			"2024-05": 0,
			"2024-06": 1,
			"2024-08": 1,
			"2024-09": 0,
		} {
			items, err := svc.ScheduledForMonth(property.ID, month(t, m), false)
			testutil.AssertNoError(t, err)
			if len(items) != want {
				t.Errorf("month %s: expected %d items, got %d", m, want, len(items))
			}
		}
	})

	t.Run("due_date_and_order", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newRecurringService(db)
		property := testutil.CreateTestProperty(t, db)
		category := testutil.CreateTestCategory(t, db, models.CategoryKindExpense)

		_, err := svc.CreateDefinition(property.ID, category.ID, 9000, "HOA", 15, "2024-01", nil)
		testutil.AssertNoError(t, err)
		_, err = svc.CreateDefinition(property.ID, category.ID, 50000, "Mortgage", 1, "2024-01", nil)
		testutil.AssertNoError(t, err)

		items, err := svc.ScheduledForMonth(property.ID, month(t, "2024-06"), false)
		testutil.AssertNoError(t, err)
		if len(items) != 2 {
			t.Fatalf("expected 2 items, got %d", len(items))
		}
		if items[0].Definition.Memo != "Mortgage" {
			t.Errorf("expected the day-1 item first, got %s", items[0].Definition.Memo)
		}
		want := time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)
		if !items[1].DueDate.Equal(want) {
			t.Errorf("expected due date %v, got %v", want, items[1].DueDate)
		}
	})

	t.Run("inactive_excluded_unless_requested", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newRecurringService(db)
		property := testutil.CreateTestProperty(t, db)
		category := testutil.CreateTestCategory(t, db, models.CategoryKindIncome)
		def := testutil.CreateTestDefinition(t, db, property.ID, category.ID, 100, "2024-01")
		if err := db.Model(def).Update("is_active", false).Error; err != nil {
			t.Fatalf("failed to deactivate definition: %v", err)
		}

		items, err := svc.ScheduledForMonth(property.ID, month(t, "2024-06"), false)
		testutil.AssertNoError(t, err)
		if len(items) != 0 {
			t.Errorf("expected no items, got %d", len(items))
		}

		items, err = svc.ScheduledForMonth(property.ID, month(t, "2024-06"), true)
		testutil.AssertNoError(t, err)
		if len(items) != 1 {
			t.Errorf("expected 1 item with inactive included, got %d", len(items))
		}
	})

	t.Run("dangling_posting_reports_unposted", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newRecurringService(db)
		property := testutil.CreateTestProperty(t, db)
		category := testutil.CreateTestCategory(t, db, models.CategoryKindIncome)
		def := testutil.CreateTestDefinition(t, db, property.ID, category.ID, 150000, "2024-01")

		tx := testutil.CreateTestTransaction(t, db, property.ID, category.ID, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), 150000)
		posting := &models.RecurringPosting{
			RecurringTransactionID: def.ID,
			Month:                  "2024-06",
			TransactionID:          tx.ID,
		}
		if err := db.Create(posting).Error; err != nil {
			t.Fatalf("failed to create posting: %v", err)
		}

		items, err := svc.ScheduledForMonth(property.ID, month(t, "2024-06"), false)
		testutil.AssertNoError(t, err)
		if len(items) != 1 || !items[0].AlreadyPosted {
			t.Fatalf("expected the item to be posted")
		}

		// Soft-deleting the materialized transaction makes the month
		// re-postable.
		if err := db.Delete(tx).Error; err != nil {
			t.Fatalf("failed to delete transaction: %v", err)
		}

		items, err = svc.ScheduledForMonth(property.ID, month(t, "2024-06"), false)
		testutil.AssertNoError(t, err)
		if len(items) != 1 || items[0].AlreadyPosted {
			t.Fatalf("expected the item to be re-postable")
		}
	})
}

func TestDeleteDefinition(t *testing.T) {
	t.Run("removes_from_schedule", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := newRecurringService(db)
		property := testutil.CreateTestProperty(t, db)
		category := testutil.CreateTestCategory(t, db, models.CategoryKindIncome)
		def := testutil.CreateTestDefinition(t, db, property.ID, category.ID, 100, "2024-01")

		testutil.AssertNoError(t, svc.DeleteDefinition(def.ID))

		items, err := svc.ScheduledForMonth(property.ID, month(t, "2024-06"), false)
		testutil.AssertNoError(t, err)
		if len(items) != 0 {
			t.Errorf("expected empty schedule, got %d items", len(items))
		}

		_, err = svc.GetDefinitionByID(def.ID)
		testutil.AssertAppError(t, err, "RECURRING_DEFINITION_NOT_FOUND")
	})
}
