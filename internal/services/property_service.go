package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "github.com/Jlford67/landlord-sub001/internal/errors"
	"github.com/Jlford67/landlord-sub001/internal/models"
)

// propertyService is the read side of the property set.
type propertyService struct {
	db *gorm.DB
}

// NewPropertyService creates a new PropertyServicer.
func NewPropertyService(db *gorm.DB) PropertyServicer {
	return &propertyService{db: db}
}

// ListProperties returns all properties, name-ordered.
func (s *propertyService) ListProperties() ([]models.Property, error) {
	var properties []models.Property
	if err := s.db.Order("name").Find(&properties).Error; err != nil {
		return nil, storageError(err)
	}
	return properties, nil
}

// GetPropertyByID retrieves a property by ID.
func (s *propertyService) GetPropertyByID(id string) (*models.Property, error) {
	var property models.Property
	if err := s.db.Where("id = ?", id).First(&property).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrPropertyNotFound
		}
		return nil, storageError(err)
	}
	return &property, nil
}
