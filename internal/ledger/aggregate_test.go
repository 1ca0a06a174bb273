package ledger

import (
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/Jlford67/landlord-sub001/internal/models"
)

func testPolicy() SignPolicy {
	return NewSignPolicy(zap.NewNop().Sugar())
}

func tx(propertyID, categoryID string, date time.Time, amount int64) models.Transaction {
	return models.Transaction{
		PropertyID: propertyID,
		CategoryID: categoryID,
		Date:       date,
		Amount:     amount,
		Source:     models.TransactionSourceManual,
	}
}

func TestAggregateItemized(t *testing.T) {
	categories := []models.Category{
		category("rent", "Rent", models.CategoryKindIncome, nil),
		category("repairs", "Repairs", models.CategoryKindExpense, nil),
		category("idle", "Idle", models.CategoryKindExpense, nil),
	}

	t.Run("sums_in_range_and_ignores_out_of_range", func(t *testing.T) {
		agg := Aggregate(AggregateInput{
			Categories: categories,
			Transactions: []models.Transaction{
				tx("p1", "rent", day(2024, time.June, 1), 150000),
				tx("p1", "rent", day(2024, time.June, 15), 150000),
				tx("p1", "rent", day(2024, time.July, 1), 150000),
				tx("p1", "repairs", day(2024, time.June, 30), -4200),
			},
			RangeStart: day(2024, time.June, 1),
			RangeEnd:   day(2024, time.June, 30),
			Kinds:      Kinds(models.CategoryKindIncome, models.CategoryKindExpense),
			Policy:     testPolicy(),
		})

		if got := agg.CategoryTotalFor("rent"); got != 300000 {
			t.Errorf("expected rent total 300000, got %d", got)
		}
		if got := agg.CategoryTotalFor("repairs"); got != -4200 {
			t.Errorf("expected repairs total -4200, got %d", got)
		}
		if got := agg.Total(); got != 295800 {
			t.Errorf("expected grand total 295800, got %d", got)
		}
	})

	t.Run("range_boundaries_are_inclusive", func(t *testing.T) {
		agg := Aggregate(AggregateInput{
			Categories: categories,
			Transactions: []models.Transaction{
				tx("p1", "rent", day(2024, time.June, 1), 100),
				tx("p1", "rent", day(2024, time.June, 30), 100),
			},
			RangeStart: day(2024, time.June, 1),
			RangeEnd:   day(2024, time.June, 30),
			Kinds:      Kinds(models.CategoryKindIncome),
			Policy:     testPolicy(),
		})
		if got := agg.CategoryTotalFor("rent"); got != 200 {
			t.Errorf("expected both boundary days counted, got %d", got)
		}
	})

	t.Run("normalizes_signs_before_summing", func(t *testing.T) {
		agg := Aggregate(AggregateInput{
			Categories: categories,
			Transactions: []models.Transaction{
				tx("p1", "rent", day(2024, time.June, 1), -150000), // mis-signed income
				tx("p1", "repairs", day(2024, time.June, 1), 4200), // mis-signed expense
			},
			RangeStart: day(2024, time.June, 1),
			RangeEnd:   day(2024, time.June, 30),
			Kinds:      Kinds(models.CategoryKindIncome, models.CategoryKindExpense),
			Policy:     testPolicy(),
		})
		if got := agg.CategoryTotalFor("rent"); got != 150000 {
			t.Errorf("expected corrected income 150000, got %d", got)
		}
		if got := agg.CategoryTotalFor("repairs"); got != -4200 {
			t.Errorf("expected corrected expense -4200, got %d", got)
		}
	})

	t.Run("excluded_kinds_do_not_contribute", func(t *testing.T) {
		cats := append(categories, category("xfer", "Transfers", models.CategoryKindTransfer, nil))
		agg := Aggregate(AggregateInput{
			Categories: cats,
			Transactions: []models.Transaction{
				tx("p1", "rent", day(2024, time.June, 1), 150000),
				tx("p1", "xfer", day(2024, time.June, 1), 99999),
			},
			RangeStart: day(2024, time.June, 1),
			RangeEnd:   day(2024, time.June, 30),
			Kinds:      Kinds(models.CategoryKindIncome),
			Policy:     testPolicy(),
		})
		if got := agg.Total(); got != 150000 {
			t.Errorf("expected transfer excluded, got %d", got)
		}
	})
}

func TestAggregateAnnualBlend(t *testing.T) {
	categories := []models.Category{
		category("rent", "Rent", models.CategoryKindIncome, nil),
		category("tax", "Property Tax", models.CategoryKindExpense, nil),
	}
	annual := []models.AnnualCategoryAmount{
		{PropertyID: "p1", Year: 2024, CategoryID: "tax", Amount: -366000},
	}

	t.Run("blends_prorated_annual_with_itemized", func(t *testing.T) {
		agg := Aggregate(AggregateInput{
			Categories: categories,
			Transactions: []models.Transaction{
				tx("p1", "rent", day(2024, time.June, 5), 150000),
			},
			Annual:     annual,
			RangeStart: day(2024, time.June, 1),
			RangeEnd:   day(2024, time.June, 30),
			Kinds:      Kinds(models.CategoryKindIncome, models.CategoryKindExpense),
			Policy:     testPolicy(),
		})

		// -366000 * 30/366 = -30000.
		if got := agg.CategoryTotalFor("tax"); got != -30000 {
			t.Errorf("expected prorated tax -30000, got %d", got)
		}
		if got := agg.Total(); got != 120000 {
			t.Errorf("expected grand total 120000, got %d", got)
		}
	})

	t.Run("itemized_only_skips_annual", func(t *testing.T) {
		agg := Aggregate(AggregateInput{
			Categories:   categories,
			Annual:       annual,
			RangeStart:   day(2024, time.June, 1),
			RangeEnd:     day(2024, time.June, 30),
			Kinds:        Kinds(models.CategoryKindIncome, models.CategoryKindExpense),
			Policy:       testPolicy(),
			ItemizedOnly: true,
		})
		if got := agg.Total(); got != 0 {
			t.Errorf("expected no annual contribution, got %d", got)
		}
	})

	t.Run("annual_outside_range_contributes_nothing", func(t *testing.T) {
		agg := Aggregate(AggregateInput{
			Categories: categories,
			Annual:     annual,
			RangeStart: day(2023, time.June, 1),
			RangeEnd:   day(2023, time.June, 30),
			Kinds:      Kinds(models.CategoryKindExpense),
			Policy:     testPolicy(),
		})
		if got := agg.Total(); got != 0 {
			t.Errorf("expected 0, got %d", got)
		}
	})
}

func TestAggregateShapes(t *testing.T) {
	categories := []models.Category{
		category("inc", "Income", models.CategoryKindIncome, nil),
		category("rent", "Rent", models.CategoryKindIncome, strptr("inc")),
		category("late", "Late Fees", models.CategoryKindIncome, strptr("inc")),
		category("exp", "Expenses", models.CategoryKindExpense, nil),
	}
	input := AggregateInput{
		Categories: categories,
		Transactions: []models.Transaction{
			tx("p1", "rent", day(2024, time.June, 1), 150000),
			tx("p1", "late", day(2024, time.June, 3), 2500),
			tx("p1", "inc", day(2024, time.June, 9), 1000),
		},
		RangeStart: day(2024, time.June, 1),
		RangeEnd:   day(2024, time.June, 30),
		Kinds:      Kinds(models.CategoryKindIncome, models.CategoryKindExpense),
		Policy:     testPolicy(),
	}

	t.Run("flat_retains_zero_categories", func(t *testing.T) {
		lines := Aggregate(input).Flat()
		if len(lines) != 4 {
			t.Fatalf("expected all 4 categories, got %d", len(lines))
		}
		byID := make(map[string]int64, len(lines))
		for _, l := range lines {
			byID[l.CategoryID] = l.Total
		}
		if byID["exp"] != 0 {
			t.Errorf("expected zero line retained for exp, got %d", byID["exp"])
		}
		if byID["rent"] != 150000 {
			t.Errorf("expected rent 150000, got %d", byID["rent"])
		}
	})

	t.Run("hierarchical_rolls_up_and_omits_zero_subtrees", func(t *testing.T) {
		nodes := Aggregate(input).Hierarchical()
		if len(nodes) != 1 {
			t.Fatalf("expected only the income subtree, got %d roots", len(nodes))
		}
		root := nodes[0]
		if root.CategoryID != "inc" {
			t.Fatalf("expected inc root, got %s", root.CategoryID)
		}
		if root.Direct != 1000 {
			t.Errorf("expected root direct 1000, got %d", root.Direct)
		}
		if root.Total != 153500 {
			t.Errorf("expected root total 153500, got %d", root.Total)
		}
		if len(root.Children) != 2 {
			t.Errorf("expected 2 children, got %d", len(root.Children))
		}
	})

	t.Run("hierarchical_keeps_parent_when_children_cancel", func(t *testing.T) {
		cancelCategories := []models.Category{
			category("net", "Net", models.CategoryKindTransfer, nil),
			category("out", "Transfer Out", models.CategoryKindTransfer, strptr("net")),
			category("in", "Transfer In", models.CategoryKindTransfer, strptr("net")),
		}
		nodes := Aggregate(AggregateInput{
			Categories: cancelCategories,
			Transactions: []models.Transaction{
				tx("p1", "out", day(2024, time.June, 5), -10000),
				tx("p1", "in", day(2024, time.June, 5), 10000),
			},
			RangeStart: day(2024, time.June, 1),
			RangeEnd:   day(2024, time.June, 30),
			Kinds:      Kinds(models.CategoryKindTransfer),
			Policy:     testPolicy(),
		}).Hierarchical()

		if len(nodes) != 1 {
			t.Fatalf("expected the net subtree to survive cancellation, got %d roots", len(nodes))
		}
		root := nodes[0]
		if root.Total != 0 {
			t.Errorf("expected rolled-up total 0, got %d", root.Total)
		}
		if len(root.Children) != 2 {
			t.Errorf("expected both cancelling children, got %d", len(root.Children))
		}
	})

	t.Run("property_totals", func(t *testing.T) {
		in := input
		in.Transactions = append(in.Transactions, tx("p2", "rent", day(2024, time.June, 20), 80000))
		agg := Aggregate(in)

		totals := agg.PropertyTotals()
		if totals["p1"] != 153500 {
			t.Errorf("expected p1 total 153500, got %d", totals["p1"])
		}
		if totals["p2"] != 80000 {
			t.Errorf("expected p2 total 80000, got %d", totals["p2"])
		}

		perCat := agg.PropertyCategoryTotals("p2")
		if perCat["rent"] != 80000 {
			t.Errorf("expected p2 rent 80000, got %d", perCat["rent"])
		}
	})
}
