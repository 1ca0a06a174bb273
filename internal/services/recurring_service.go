package services

import (
	"errors"
	"sort"

	"gorm.io/gorm"

	"github.com/Jlford67/landlord-sub001/internal/dates"
	apperrors "github.com/Jlford67/landlord-sub001/internal/errors"
	"github.com/Jlford67/landlord-sub001/internal/logger"
	"github.com/Jlford67/landlord-sub001/internal/models"
	"github.com/Jlford67/landlord-sub001/internal/pagination"
)

// recurringService handles recurring-definition business logic and the
// monthly schedule engine.
type recurringService struct {
	db         *gorm.DB
	categories CategoryServicer
	properties PropertyServicer
}

// NewRecurringService creates a new RecurringServicer.
func NewRecurringService(db *gorm.DB, categories CategoryServicer, properties PropertyServicer) RecurringServicer {
	return &recurringService{
		db:         db,
		categories: categories,
		properties: properties,
	}
}

// CreateDefinition creates a new recurring definition. All validation
// happens before any write; a rejected definition leaves no state.
func (s *recurringService) CreateDefinition(
	propertyID string,
	categoryID string,
	amount int64,
	memo string,
	dayOfMonth int,
	startMonth string,
	endMonth *string,
) (*models.RecurringTransactionDefinition, error) {
	if amount == 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount is required")
	}
	// Days 29-31 would skip short months; the schedule engine assumes
	// every month has the due date.
	if dayOfMonth < 1 || dayOfMonth > 28 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "day of month must be between 1 and 28")
	}
	start, err := dates.ParseYearMonth(startMonth)
	if err != nil {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error())
	}
	if endMonth != nil {
		end, err := dates.ParseYearMonth(*endMonth)
		if err != nil {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error())
		}
		if end.Before(start) {
			return nil, apperrors.ErrInvalidMonthWindow
		}
	}

	if _, err := s.properties.GetPropertyByID(propertyID); err != nil {
		return nil, err
	}
	if _, err := s.categories.GetCategoryByID(categoryID); err != nil {
		return nil, err
	}

	definition := &models.RecurringTransactionDefinition{
		PropertyID: propertyID,
		CategoryID: categoryID,
		Amount:     amount,
		Memo:       memo,
		DayOfMonth: dayOfMonth,
		StartMonth: start.String(),
		EndMonth:   endMonth,
		IsActive:   true,
	}

	if err := s.db.Create(definition).Error; err != nil {
		return nil, storageError(err)
	}
	return definition, nil
}

// GetDefinitions returns a paginated list of definitions, optionally
// scoped to one property.
func (s *recurringService) GetDefinitions(propertyID *string, includeInactive bool, page pagination.PageRequest) (*pagination.PageResponse[models.RecurringTransactionDefinition], error) {
	page.Defaults()

	base := s.db.Model(&models.RecurringTransactionDefinition{})
	if propertyID != nil {
		base = base.Where("property_id = ?", *propertyID)
	}
	if !includeInactive {
		base = base.Where("is_active = ?", true)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, storageError(err)
	}

	var definitions []models.RecurringTransactionDefinition
	if err := base.Preload("Category").Scopes(pagination.Paginate(page)).
		Order("start_month, day_of_month").
		Find(&definitions).Error; err != nil {
		return nil, storageError(err)
	}

	result := pagination.NewPageResponse(definitions, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetDefinitionByID retrieves a definition by ID.
func (s *recurringService) GetDefinitionByID(id string) (*models.RecurringTransactionDefinition, error) {
	var definition models.RecurringTransactionDefinition
	if err := s.db.Preload("Category").Where("id = ?", id).First(&definition).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrDefinitionNotFound
		}
		return nil, storageError(err)
	}
	return &definition, nil
}

// UpdateDefinition updates an existing definition's fields. StartMonth
// is immutable; callers end a definition by setting EndMonth or
// deactivating it.
func (s *recurringService) UpdateDefinition(
	id string,
	amount *int64,
	memo *string,
	dayOfMonth *int,
	endMonth *string,
	isActive *bool,
) (*models.RecurringTransactionDefinition, error) {
	definition, err := s.GetDefinitionByID(id)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if amount != nil {
		if *amount == 0 {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount is required")
		}
		updates["amount"] = *amount
	}
	if memo != nil {
		updates["memo"] = *memo
	}
	if dayOfMonth != nil {
		if *dayOfMonth < 1 || *dayOfMonth > 28 {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "day of month must be between 1 and 28")
		}
		updates["day_of_month"] = *dayOfMonth
	}
	if endMonth != nil {
		end, err := dates.ParseYearMonth(*endMonth)
		if err != nil {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error())
		}
		start, err := dates.ParseYearMonth(definition.StartMonth)
		if err == nil && end.Before(start) {
			return nil, apperrors.ErrInvalidMonthWindow
		}
		updates["end_month"] = end.String()
	}
	if isActive != nil {
		updates["is_active"] = *isActive
	}

	if len(updates) > 0 {
		if err := s.db.Model(definition).Updates(updates).Error; err != nil {
			return nil, storageError(err)
		}
	}

	return definition, nil
}

// DeleteDefinition soft-deletes a definition. Ledger entries already
// materialized from it are untouched.
func (s *recurringService) DeleteDefinition(id string) error {
	definition, err := s.GetDefinitionByID(id)
	if err != nil {
		return err
	}

	if err := s.db.Delete(definition).Error; err != nil {
		return storageError(err)
	}
	return nil
}

// ScheduledForMonth returns, for one property and month, every
// applicable definition with its due date and whether it has already
// been materialized. A definition counts as posted only while its
// posting record's ledger transaction still exists and is not
// soft-deleted; a dangling posting leaves the month re-postable.
// includeInactive is for historical reporting only, never for posting.
func (s *recurringService) ScheduledForMonth(propertyID string, month dates.YearMonth, includeInactive bool) ([]ScheduledItem, error) {
	if _, err := s.properties.GetPropertyByID(propertyID); err != nil {
		return nil, err
	}

	base := s.db.Model(&models.RecurringTransactionDefinition{}).
		Where("property_id = ?", propertyID)
	if !includeInactive {
		base = base.Where("is_active = ?", true)
	}

	var definitions []models.RecurringTransactionDefinition
	if err := base.Preload("Category").Find(&definitions).Error; err != nil {
		return nil, storageError(err)
	}

	items := make([]ScheduledItem, 0, len(definitions))
	for _, def := range definitions {
		if !def.AppliesTo(month) {
			continue
		}
		posted, err := s.isPosted(def.ID, month)
		if err != nil {
			return nil, err
		}
		items = append(items, ScheduledItem{
			Definition:    def,
			DueDate:       month.At(def.DayOfMonth),
			AlreadyPosted: posted,
		})
	}

	sort.Slice(items, func(i, j int) bool {
		if !items[i].DueDate.Equal(items[j].DueDate) {
			return items[i].DueDate.Before(items[j].DueDate)
		}
		return items[i].Definition.ID < items[j].Definition.ID
	})
	return items, nil
}

// isPosted reports whether the (definition, month) pair has a posting
// record whose ledger transaction is still live.
func (s *recurringService) isPosted(definitionID string, month dates.YearMonth) (bool, error) {
	var posting models.RecurringPosting
	err := s.db.
		Where("recurring_transaction_id = ? AND month = ?", definitionID, month.String()).
		First(&posting).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, storageError(err)
	}

	var live int64
	if err := s.db.Model(&models.Transaction{}).
		Where("id = ?", posting.TransactionID).
		Count(&live).Error; err != nil {
		return false, storageError(err)
	}
	if live == 0 {
		logger.Get().Debugw("dangling recurring posting, month is re-postable",
			"recurring_transaction_id", definitionID,
			"month", month.String(),
			"transaction_id", posting.TransactionID,
		)
	}
	return live > 0, nil
}
