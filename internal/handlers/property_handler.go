package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Jlford67/landlord-sub001/internal/services"
)

// PropertyHandler exposes the read-only property set.
type PropertyHandler struct {
	propertyService services.PropertyServicer
}

// NewPropertyHandler creates a new PropertyHandler.
func NewPropertyHandler(propertyService services.PropertyServicer) *PropertyHandler {
	return &PropertyHandler{propertyService: propertyService}
}

// GetProperties lists all properties.
func (h *PropertyHandler) GetProperties(c *gin.Context) {
	properties, err := h.propertyService.ListProperties()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"properties": properties})
}

// GetPropertyByID returns one property.
func (h *PropertyHandler) GetPropertyByID(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	property, err := h.propertyService.GetPropertyByID(id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"property": property})
}
