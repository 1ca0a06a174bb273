package services

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Jlford67/landlord-sub001/internal/dates"
	apperrors "github.com/Jlford67/landlord-sub001/internal/errors"
	"github.com/Jlford67/landlord-sub001/internal/ledger"
	"github.com/Jlford67/landlord-sub001/internal/models"
)

// reportService composes the ledger primitives into the named reports.
// Every builder is read-only: it loads rows, runs one or more pure
// aggregation passes, and shapes the output. No state survives a call.
type reportService struct {
	db     *gorm.DB
	policy ledger.SignPolicy
}

// NewReportService creates a new ReportServicer.
func NewReportService(db *gorm.DB, policy ledger.SignPolicy) ReportServicer {
	return &reportService{db: db, policy: policy}
}

// cents converts a minor-unit total to its display decimal.
func cents(v int64) decimal.Decimal {
	return decimal.New(v, -2)
}

// resolveKinds maps ReportOptions onto the admitted kind set. An empty
// Kinds slice admits income and expense.
func resolveKinds(opts ReportOptions) ledger.KindSet {
	kinds := opts.Kinds
	if len(kinds) == 0 {
		kinds = []models.CategoryKind{models.CategoryKindIncome, models.CategoryKindExpense}
	}
	set := ledger.Kinds(kinds...)
	if opts.IncludeTransfers {
		set[models.CategoryKindTransfer] = true
	}
	return set
}

// loadInput fetches everything one aggregation pass needs: the full
// category set (inactive included, historical rows still reference
// them), the in-range transactions, and the annual rows for every year
// overlapping the range.
func (s *reportService) loadInput(from, to time.Time, propertyID *string) (ledger.AggregateInput, error) {
	from = dates.Day(from)
	to = dates.Day(to)
	if to.Before(from) {
		return ledger.AggregateInput{}, apperrors.WithMessage(apperrors.ErrInvalidInput, "range end precedes range start")
	}

	in := ledger.AggregateInput{
		RangeStart: from,
		RangeEnd:   to,
		Policy:     s.policy,
	}

	if err := s.db.Find(&in.Categories).Error; err != nil {
		return in, storageError(err)
	}

	txQuery := s.db.Model(&models.Transaction{}).
		Where("date >= ? AND date <= ?", from, to)
	if propertyID != nil {
		txQuery = txQuery.Where("property_id = ?", *propertyID)
	}
	if err := txQuery.Find(&in.Transactions).Error; err != nil {
		return in, storageError(err)
	}

	annualQuery := s.db.Model(&models.AnnualCategoryAmount{}).
		Where("year >= ? AND year <= ?", from.Year(), to.Year())
	if propertyID != nil {
		annualQuery = annualQuery.Where("property_id = ?", *propertyID)
	}
	if err := annualQuery.Find(&in.Annual).Error; err != nil {
		return in, storageError(err)
	}

	return in, nil
}

// MonthReport builds the ledger report for one calendar month.
func (s *reportService) MonthReport(month dates.YearMonth, opts ReportOptions) (*LedgerReport, error) {
	return s.RangeReport(month.Start(), month.End(), opts)
}

// RangeReport builds the flat and hierarchical per-category report over
// an arbitrary date range.
func (s *reportService) RangeReport(from, to time.Time, opts ReportOptions) (*LedgerReport, error) {
	in, err := s.loadInput(from, to, opts.PropertyID)
	if err != nil {
		return nil, err
	}
	in.Kinds = resolveKinds(opts)

	agg := ledger.Aggregate(in)

	report := &LedgerReport{
		From:       in.RangeStart,
		To:         in.RangeEnd,
		TotalCents: agg.Total(),
	}
	report.Total = cents(report.TotalCents)
	for _, line := range agg.Flat() {
		report.Flat = append(report.Flat, ReportLine{
			CategoryID: line.CategoryID,
			Name:       line.Name,
			Kind:       line.Kind,
			Cents:      line.Total,
			Amount:     cents(line.Total),
		})
	}
	report.Hierarchy = toReportNodes(agg.Hierarchical())
	return report, nil
}

func toReportNodes(nodes []ledger.CategoryNode) []ReportNode {
	out := make([]ReportNode, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, ReportNode{
			CategoryID:  n.CategoryID,
			Name:        n.Name,
			Kind:        n.Kind,
			DirectCents: n.Direct,
			TotalCents:  n.Total,
			Total:       cents(n.Total),
			Children:    toReportNodes(n.Children),
		})
	}
	return out
}

// PropertyReport totals income, expense, and net per property over a
// date range. Properties with no activity are retained with zeros.
func (s *reportService) PropertyReport(from, to time.Time) ([]PropertyLine, error) {
	var properties []models.Property
	if err := s.db.Order("name").Find(&properties).Error; err != nil {
		return nil, storageError(err)
	}

	in, err := s.loadInput(from, to, nil)
	if err != nil {
		return nil, err
	}

	income := in
	income.Kinds = ledger.Kinds(models.CategoryKindIncome)
	incomeTotals := ledger.Aggregate(income).PropertyTotals()

	expense := in
	expense.Kinds = ledger.Kinds(models.CategoryKindExpense)
	expenseTotals := ledger.Aggregate(expense).PropertyTotals()

	lines := make([]PropertyLine, 0, len(properties))
	for _, p := range properties {
		line := PropertyLine{
			PropertyID:   p.ID,
			Name:         p.Name,
			IncomeCents:  incomeTotals[p.ID],
			ExpenseCents: expenseTotals[p.ID],
		}
		line.NetCents = line.IncomeCents + line.ExpenseCents
		line.Net = cents(line.NetCents)
		lines = append(lines, line)
	}
	return lines, nil
}

// AnnualSummary totals one calendar year month by month. Rows are loaded
// once; the twelve monthly passes run over the in-memory snapshot.
func (s *reportService) AnnualSummary(year int, propertyID *string) (*AnnualSummary, error) {
	in, err := s.loadInput(dates.YearStart(year), dates.YearEnd(year), propertyID)
	if err != nil {
		return nil, err
	}

	summary := &AnnualSummary{Year: year}
	for month := time.January; month <= time.December; month++ {
		ym := dates.NewYearMonth(year, int(month))

		monthIn := in
		monthIn.RangeStart = ym.Start()
		monthIn.RangeEnd = ym.End()

		monthIn.Kinds = ledger.Kinds(models.CategoryKindIncome)
		incomeCents := ledger.Aggregate(monthIn).Total()

		monthIn.Kinds = ledger.Kinds(models.CategoryKindExpense)
		expenseCents := ledger.Aggregate(monthIn).Total()

		summary.Months = append(summary.Months, MonthSummary{
			Month:        ym.String(),
			IncomeCents:  incomeCents,
			ExpenseCents: expenseCents,
			NetCents:     incomeCents + expenseCents,
		})
		summary.IncomeCents += incomeCents
		summary.ExpenseCents += expenseCents
	}
	summary.NetCents = summary.IncomeCents + summary.ExpenseCents
	summary.Net = cents(summary.NetCents)
	return summary, nil
}

// Leaderboard ranks categories of one kind by total magnitude over a
// date range. Zero-total categories are dropped; limit <= 0 means no
// cap.
func (s *reportService) Leaderboard(from, to time.Time, kind models.CategoryKind, limit int) ([]LeaderboardEntry, error) {
	in, err := s.loadInput(from, to, nil)
	if err != nil {
		return nil, err
	}
	in.Kinds = ledger.Kinds(kind)

	agg := ledger.Aggregate(in)

	var entries []LeaderboardEntry
	for _, line := range agg.Flat() {
		if line.Total == 0 {
			continue
		}
		entries = append(entries, LeaderboardEntry{
			CategoryID: line.CategoryID,
			Name:       line.Name,
			Kind:       line.Kind,
			Cents:      line.Total,
			Amount:     cents(line.Total),
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i].Cents, entries[j].Cents
		if a < 0 {
			a = -a
		}
		if b < 0 {
			b = -b
		}
		if a != b {
			return a > b
		}
		return entries[i].Name < entries[j].Name
	})
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

// CashVsAccrual compares the itemized-only total (cash view) with the
// itemized-plus-prorated total (accrual view) over the same range.
func (s *reportService) CashVsAccrual(from, to time.Time, propertyID *string) (*CashAccrualReport, error) {
	in, err := s.loadInput(from, to, propertyID)
	if err != nil {
		return nil, err
	}
	in.Kinds = ledger.Kinds(models.CategoryKindIncome, models.CategoryKindExpense)

	cash := in
	cash.ItemizedOnly = true
	cashCents := ledger.Aggregate(cash).Total()
	accrualCents := ledger.Aggregate(in).Total()

	return &CashAccrualReport{
		From:            in.RangeStart,
		To:              in.RangeEnd,
		CashCents:       cashCents,
		AccrualCents:    accrualCents,
		DifferenceCents: accrualCents - cashCents,
	}, nil
}
