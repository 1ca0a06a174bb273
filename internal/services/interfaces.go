package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Jlford67/landlord-sub001/internal/dates"
	"github.com/Jlford67/landlord-sub001/internal/models"
	"github.com/Jlford67/landlord-sub001/internal/pagination"
)

// CategoryServicer defines the read-only contract over the category set.
// Categories are maintained by the admin surface; the engine never
// mutates them.
type CategoryServicer interface {
	ListCategories(includeInactive bool) ([]models.Category, error)
	GetCategoryByID(id string) (*models.Category, error)
}

// PropertyServicer defines the read-only contract over properties, used
// to validate property ids on posting calls.
type PropertyServicer interface {
	ListProperties() ([]models.Property, error)
	GetPropertyByID(id string) (*models.Property, error)
}

// TransactionFilter holds optional filter parameters for listing ledger
// entries.
type TransactionFilter struct {
	PropertyID *string
	CategoryID *string
	FromDate   *time.Time
	ToDate     *time.Time
	Source     *models.TransactionSource
}

// TransactionServicer defines the contract for manual ledger entries.
type TransactionServicer interface {
	CreateTransaction(propertyID, categoryID string, date time.Time, amount int64, memo string, source models.TransactionSource) (*models.Transaction, error)
	GetTransactions(page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error)
	GetTransactionByID(id string) (*models.Transaction, error)
	DeleteTransaction(id string) error
}

// AnnualAmountServicer defines the contract for annual lump-sum amounts.
type AnnualAmountServicer interface {
	UpsertAnnualAmount(propertyID string, year int, categoryID, ownershipRef string, amount int64) (*models.AnnualCategoryAmount, error)
	GetAnnualAmounts(propertyID *string, fromYear, toYear int) ([]models.AnnualCategoryAmount, error)
	DeleteAnnualAmount(id string) error
}

// ScheduledItem is one row of a month's recurring schedule.
type ScheduledItem struct {
	Definition    models.RecurringTransactionDefinition `json:"definition"`
	DueDate       time.Time                             `json:"due_date"`
	AlreadyPosted bool                                  `json:"already_posted"`
}

// RecurringServicer defines the contract for recurring definitions and
// the schedule engine.
type RecurringServicer interface {
	CreateDefinition(propertyID, categoryID string, amount int64, memo string, dayOfMonth int, startMonth string, endMonth *string) (*models.RecurringTransactionDefinition, error)
	GetDefinitions(propertyID *string, includeInactive bool, page pagination.PageRequest) (*pagination.PageResponse[models.RecurringTransactionDefinition], error)
	GetDefinitionByID(id string) (*models.RecurringTransactionDefinition, error)
	UpdateDefinition(id string, amount *int64, memo *string, dayOfMonth *int, endMonth *string, isActive *bool) (*models.RecurringTransactionDefinition, error)
	DeleteDefinition(id string) error
	ScheduledForMonth(propertyID string, month dates.YearMonth, includeInactive bool) ([]ScheduledItem, error)
}

// PostingServicer defines the contract for idempotent recurring
// materialization. Both operations return the count of newly posted
// items; repeating a call with nothing new due returns 0.
type PostingServicer interface {
	PostForMonth(ctx context.Context, propertyID string, month dates.YearMonth) (int, error)
	PostCatchUp(ctx context.Context, propertyID string, throughMonth dates.YearMonth) (int, error)
}

// ReportOptions narrows a ledger report's scope. An empty Kinds slice
// admits income and expense; IncludeTransfers adds the transfer kind.
type ReportOptions struct {
	PropertyID       *string
	Kinds            []models.CategoryKind
	IncludeTransfers bool
}

// ReportLine is one flat per-category report row. Amount is the
// display-side decimal of Cents; the engine computes in cents only.
type ReportLine struct {
	CategoryID string              `json:"category_id"`
	Name       string              `json:"name"`
	Kind       models.CategoryKind `json:"kind"`
	Cents      int64               `json:"cents"`
	Amount     decimal.Decimal     `json:"amount"`
}

// ReportNode is one node of a hierarchical report.
type ReportNode struct {
	CategoryID  string              `json:"category_id"`
	Name        string              `json:"name"`
	Kind        models.CategoryKind `json:"kind"`
	DirectCents int64               `json:"direct_cents"`
	TotalCents  int64               `json:"total_cents"`
	Total       decimal.Decimal     `json:"total"`
	Children    []ReportNode        `json:"children,omitempty"`
}

// LedgerReport is the flat-plus-hierarchical output of one aggregation.
type LedgerReport struct {
	From       time.Time       `json:"from"`
	To         time.Time       `json:"to"`
	Flat       []ReportLine    `json:"flat"`
	Hierarchy  []ReportNode    `json:"hierarchy"`
	TotalCents int64           `json:"total_cents"`
	Total      decimal.Decimal `json:"total"`
}

// PropertyLine is one row of the per-property report.
type PropertyLine struct {
	PropertyID   string          `json:"property_id"`
	Name         string          `json:"name"`
	IncomeCents  int64           `json:"income_cents"`
	ExpenseCents int64           `json:"expense_cents"`
	NetCents     int64           `json:"net_cents"`
	Net          decimal.Decimal `json:"net"`
}

// MonthSummary is one month's line of an annual summary.
type MonthSummary struct {
	Month        string `json:"month"`
	IncomeCents  int64  `json:"income_cents"`
	ExpenseCents int64  `json:"expense_cents"`
	NetCents     int64  `json:"net_cents"`
}

// AnnualSummary totals a calendar year month by month.
type AnnualSummary struct {
	Year         int             `json:"year"`
	Months       []MonthSummary  `json:"months"`
	IncomeCents  int64           `json:"income_cents"`
	ExpenseCents int64           `json:"expense_cents"`
	NetCents     int64           `json:"net_cents"`
	Net          decimal.Decimal `json:"net"`
}

// LeaderboardEntry is one row of the category leaderboard, ordered by
// total magnitude.
type LeaderboardEntry struct {
	CategoryID string              `json:"category_id"`
	Name       string              `json:"name"`
	Kind       models.CategoryKind `json:"kind"`
	Cents      int64               `json:"cents"`
	Amount     decimal.Decimal     `json:"amount"`
}

// CashAccrualReport compares itemized-only totals (cash view) with
// itemized-plus-prorated totals (accrual view) over the same range.
type CashAccrualReport struct {
	From            time.Time `json:"from"`
	To              time.Time `json:"to"`
	CashCents       int64     `json:"cash_cents"`
	AccrualCents    int64     `json:"accrual_cents"`
	DifferenceCents int64     `json:"difference_cents"`
}

// ReportServicer defines the named report builders. All builders are
// read-only compositions of the ledger primitives and may run
// concurrently.
type ReportServicer interface {
	MonthReport(month dates.YearMonth, opts ReportOptions) (*LedgerReport, error)
	RangeReport(from, to time.Time, opts ReportOptions) (*LedgerReport, error)
	PropertyReport(from, to time.Time) ([]PropertyLine, error)
	AnnualSummary(year int, propertyID *string) (*AnnualSummary, error)
	Leaderboard(from, to time.Time, kind models.CategoryKind, limit int) ([]LeaderboardEntry, error)
	CashVsAccrual(from, to time.Time, propertyID *string) (*CashAccrualReport, error)
}
