package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/Jlford67/landlord-sub001/internal/database"
	apperrors "github.com/Jlford67/landlord-sub001/internal/errors"
	"github.com/Jlford67/landlord-sub001/internal/models"
)

// categoryService is the read side of the category set.
type categoryService struct {
	db *gorm.DB
}

// NewCategoryService creates a new CategoryServicer.
func NewCategoryService(db *gorm.DB) CategoryServicer {
	return &categoryService{db: db}
}

// ListCategories returns the category set, name-ordered. Inactive
// categories are included only on request (historical reporting).
func (s *categoryService) ListCategories(includeInactive bool) ([]models.Category, error) {
	q := s.db.Model(&models.Category{})
	if !includeInactive {
		q = q.Where("is_active = ?", true)
	}

	var categories []models.Category
	if err := q.Order("name").Find(&categories).Error; err != nil {
		return nil, storageError(err)
	}
	return categories, nil
}

// GetCategoryByID retrieves a category by ID.
func (s *categoryService) GetCategoryByID(id string) (*models.Category, error) {
	var category models.Category
	if err := s.db.Where("id = ?", id).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, storageError(err)
	}
	return &category, nil
}

// storageError maps a raw storage failure onto the error taxonomy: a
// missing table becomes the distinguishable "unavailable" result,
// anything else an internal error.
func storageError(err error) *apperrors.AppError {
	if database.TableMissing(err) {
		return apperrors.Wrap(apperrors.ErrStoreUnavailable, err)
	}
	return apperrors.Wrap(apperrors.ErrInternalServer, err)
}
