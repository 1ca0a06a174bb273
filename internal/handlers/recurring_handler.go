package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/Jlford67/landlord-sub001/internal/errors"
	"github.com/Jlford67/landlord-sub001/internal/pagination"
	"github.com/Jlford67/landlord-sub001/internal/services"
)

// RecurringHandler handles recurring-definition and posting requests.
type RecurringHandler struct {
	recurringService services.RecurringServicer
	postingService   services.PostingServicer
}

// NewRecurringHandler creates a new RecurringHandler.
func NewRecurringHandler(recurringService services.RecurringServicer, postingService services.PostingServicer) *RecurringHandler {
	return &RecurringHandler{
		recurringService: recurringService,
		postingService:   postingService,
	}
}

// CreateDefinitionRequest represents the payload for creating a
// recurring definition. Amount is a minor-unit magnitude; the category
// kind decides the sign of posted entries.
type CreateDefinitionRequest struct {
	PropertyID string  `json:"property_id" binding:"required,uuid"`
	CategoryID string  `json:"category_id" binding:"required,uuid"`
	Amount     int64   `json:"amount" binding:"required"`
	Memo       string  `json:"memo" binding:"omitempty,max=200"`
	DayOfMonth int     `json:"day_of_month" binding:"required,min=1,max=28"`
	StartMonth string  `json:"start_month" binding:"required,year_month"`
	EndMonth   *string `json:"end_month" binding:"omitempty,year_month"`
}

// UpdateDefinitionRequest represents the payload for updating a
// recurring definition.
type UpdateDefinitionRequest struct {
	Amount     *int64  `json:"amount" binding:"omitempty"`
	Memo       *string `json:"memo" binding:"omitempty,max=200"`
	DayOfMonth *int    `json:"day_of_month" binding:"omitempty,min=1,max=28"`
	EndMonth   *string `json:"end_month" binding:"omitempty,year_month"`
	IsActive   *bool   `json:"is_active"`
}

// PostRequest represents the payload for posting one month.
type PostRequest struct {
	PropertyID string `json:"property_id" binding:"required,uuid"`
	Month      string `json:"month" binding:"required,year_month"`
}

// CatchUpRequest represents the payload for a catch-up posting run.
type CatchUpRequest struct {
	PropertyID   string `json:"property_id" binding:"required,uuid"`
	ThroughMonth string `json:"through_month" binding:"required,year_month"`
}

// CreateDefinition creates a recurring definition.
func (h *RecurringHandler) CreateDefinition(c *gin.Context) {
	var req CreateDefinitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	definition, err := h.recurringService.CreateDefinition(
		req.PropertyID, req.CategoryID, req.Amount, req.Memo,
		req.DayOfMonth, req.StartMonth, req.EndMonth,
	)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"definition": definition})
}

// GetDefinitions lists recurring definitions.
func (h *RecurringHandler) GetDefinitions(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	propertyID, err := queryPropertyID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	includeInactive := c.Query("include_inactive") == "true"

	result, err := h.recurringService.GetDefinitions(propertyID, includeInactive, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetDefinitionByID returns one recurring definition.
func (h *RecurringHandler) GetDefinitionByID(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	definition, err := h.recurringService.GetDefinitionByID(id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"definition": definition})
}

// UpdateDefinition updates a recurring definition.
func (h *RecurringHandler) UpdateDefinition(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateDefinitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	definition, err := h.recurringService.UpdateDefinition(
		id, req.Amount, req.Memo, req.DayOfMonth, req.EndMonth, req.IsActive,
	)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"definition": definition})
}

// DeleteDefinition soft-deletes a recurring definition.
func (h *RecurringHandler) DeleteDefinition(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.recurringService.DeleteDefinition(id); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Definition deleted"})
}

// GetSchedule previews the recurring schedule for one property and month.
func (h *RecurringHandler) GetSchedule(c *gin.Context) {
	propertyID := c.Query("property_id")
	if propertyID == "" {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "property_id is required"))
		return
	}
	month, err := queryYearMonth(c, "month")
	if err != nil {
		respondWithError(c, err)
		return
	}
	includeInactive := c.Query("include_inactive") == "true"

	items, err := h.recurringService.ScheduledForMonth(propertyID, month, includeInactive)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"month": month.String(), "items": items})
}

// PostForMonth materializes the due-and-unposted items of one month.
func (h *RecurringHandler) PostForMonth(c *gin.Context) {
	var req PostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	month, err := parseYearMonthField(req.Month)
	if err != nil {
		respondWithError(c, err)
		return
	}

	posted, err := h.postingService.PostForMonth(c.Request.Context(), req.PropertyID, month)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"posted": posted})
}

// PostCatchUp materializes every unposted month from the earliest active
// definition through the requested month.
func (h *RecurringHandler) PostCatchUp(c *gin.Context) {
	var req CatchUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	through, err := parseYearMonthField(req.ThroughMonth)
	if err != nil {
		respondWithError(c, err)
		return
	}

	posted, err := h.postingService.PostCatchUp(c.Request.Context(), req.PropertyID, through)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"posted": posted})
}
