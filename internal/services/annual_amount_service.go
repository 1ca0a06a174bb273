package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "github.com/Jlford67/landlord-sub001/internal/errors"
	"github.com/Jlford67/landlord-sub001/internal/models"
)

// annualAmountService handles annual lump-sum amounts imported from a
// prior bookkeeping system.
type annualAmountService struct {
	db         *gorm.DB
	categories CategoryServicer
	properties PropertyServicer
}

// NewAnnualAmountService creates a new AnnualAmountServicer.
func NewAnnualAmountService(db *gorm.DB, categories CategoryServicer, properties PropertyServicer) AnnualAmountServicer {
	return &annualAmountService{
		db:         db,
		categories: categories,
		properties: properties,
	}
}

// UpsertAnnualAmount stores the lump sum for one
// (property, year, category, ownership reference) tuple, replacing any
// existing row for the same key.
func (s *annualAmountService) UpsertAnnualAmount(
	propertyID string,
	year int,
	categoryID string,
	ownershipRef string,
	amount int64,
) (*models.AnnualCategoryAmount, error) {
	if year < 1900 || year > 9999 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "year out of range")
	}
	if _, err := s.properties.GetPropertyByID(propertyID); err != nil {
		return nil, err
	}
	if _, err := s.categories.GetCategoryByID(categoryID); err != nil {
		return nil, err
	}

	var row models.AnnualCategoryAmount
	err := s.db.
		Where("property_id = ? AND year = ? AND category_id = ? AND ownership_ref = ?",
			propertyID, year, categoryID, ownershipRef).
		First(&row).Error
	switch {
	case err == nil:
		if err := s.db.Model(&row).Update("amount", amount).Error; err != nil {
			return nil, storageError(err)
		}
		row.Amount = amount
		return &row, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		row = models.AnnualCategoryAmount{
			PropertyID:   propertyID,
			Year:         year,
			CategoryID:   categoryID,
			OwnershipRef: ownershipRef,
			Amount:       amount,
		}
		if err := s.db.Create(&row).Error; err != nil {
			return nil, storageError(err)
		}
		return &row, nil
	default:
		return nil, storageError(err)
	}
}

// GetAnnualAmounts returns the lump-sum rows for years in
// [fromYear, toYear], optionally scoped to one property.
func (s *annualAmountService) GetAnnualAmounts(propertyID *string, fromYear, toYear int) ([]models.AnnualCategoryAmount, error) {
	q := s.db.Model(&models.AnnualCategoryAmount{}).
		Where("year >= ? AND year <= ?", fromYear, toYear)
	if propertyID != nil {
		q = q.Where("property_id = ?", *propertyID)
	}

	var rows []models.AnnualCategoryAmount
	if err := q.Order("year, category_id").Find(&rows).Error; err != nil {
		return nil, storageError(err)
	}
	return rows, nil
}

// DeleteAnnualAmount removes one lump-sum row. The delete is hard: the
// composite unique key spans soft-deleted rows too, so a tombstone would
// block re-importing the same (property, year, category, ownership) key.
func (s *annualAmountService) DeleteAnnualAmount(id string) error {
	var row models.AnnualCategoryAmount
	if err := s.db.Where("id = ?", id).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrAnnualAmountNotFound
		}
		return storageError(err)
	}

	if err := s.db.Unscoped().Delete(&row).Error; err != nil {
		return storageError(err)
	}
	return nil
}
