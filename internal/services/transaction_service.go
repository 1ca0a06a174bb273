package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/Jlford67/landlord-sub001/internal/dates"
	apperrors "github.com/Jlford67/landlord-sub001/internal/errors"
	"github.com/Jlford67/landlord-sub001/internal/models"
	"github.com/Jlford67/landlord-sub001/internal/pagination"
)

// transactionService handles manual ledger entries.
type transactionService struct {
	db         *gorm.DB
	categories CategoryServicer
	properties PropertyServicer
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(db *gorm.DB, categories CategoryServicer, properties PropertyServicer) TransactionServicer {
	return &transactionService{
		db:         db,
		categories: categories,
		properties: properties,
	}
}

// CreateTransaction records one ledger entry. The amount keeps its sign
// as given; the aggregator applies the sign policy at read time.
func (s *transactionService) CreateTransaction(
	propertyID string,
	categoryID string,
	date time.Time,
	amount int64,
	memo string,
	source models.TransactionSource,
) (*models.Transaction, error) {
	if propertyID == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "property ID is required")
	}
	if categoryID == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category ID is required")
	}
	if date.IsZero() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "date is required")
	}
	if source == "" {
		source = models.TransactionSourceManual
	}

	if _, err := s.properties.GetPropertyByID(propertyID); err != nil {
		return nil, err
	}
	if _, err := s.categories.GetCategoryByID(categoryID); err != nil {
		return nil, err
	}

	transaction := &models.Transaction{
		PropertyID: propertyID,
		CategoryID: categoryID,
		Date:       dates.Day(date),
		Amount:     amount,
		Memo:       memo,
		Source:     source,
	}

	if err := s.db.Create(transaction).Error; err != nil {
		return nil, storageError(err)
	}
	return transaction, nil
}

// GetTransactions retrieves a paginated, filtered list of ledger entries.
// Soft-deleted rows are never returned.
func (s *transactionService) GetTransactions(page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error) {
	page.Defaults()

	base := applyTransactionFilters(s.db.Model(&models.Transaction{}), filter)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, storageError(err)
	}

	var transactions []models.Transaction
	if err := base.Scopes(pagination.Paginate(page)).
		Order("date DESC").
		Find(&transactions).Error; err != nil {
		return nil, storageError(err)
	}

	result := pagination.NewPageResponse(transactions, page.Page, page.PageSize, totalItems)
	return &result, nil
}

func applyTransactionFilters(q *gorm.DB, f TransactionFilter) *gorm.DB {
	if f.PropertyID != nil {
		q = q.Where("property_id = ?", *f.PropertyID)
	}
	if f.CategoryID != nil {
		q = q.Where("category_id = ?", *f.CategoryID)
	}
	if f.FromDate != nil {
		q = q.Where("date >= ?", dates.Day(*f.FromDate))
	}
	if f.ToDate != nil {
		q = q.Where("date <= ?", dates.Day(*f.ToDate))
	}
	if f.Source != nil {
		q = q.Where("source = ?", *f.Source)
	}
	return q
}

// GetTransactionByID retrieves a ledger entry by ID.
func (s *transactionService) GetTransactionByID(id string) (*models.Transaction, error) {
	var transaction models.Transaction
	if err := s.db.Where("id = ?", id).First(&transaction).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, storageError(err)
	}
	return &transaction, nil
}

// DeleteTransaction soft-deletes a ledger entry. The row stays in
// storage but stops contributing to every aggregation; if it was
// materialized from a recurring definition, that month becomes
// re-postable.
func (s *transactionService) DeleteTransaction(id string) error {
	transaction, err := s.GetTransactionByID(id)
	if err != nil {
		return err
	}

	if err := s.db.Delete(transaction).Error; err != nil {
		return storageError(err)
	}
	return nil
}
