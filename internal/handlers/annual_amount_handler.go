package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "github.com/Jlford67/landlord-sub001/internal/errors"
	"github.com/Jlford67/landlord-sub001/internal/services"
)

// AnnualAmountHandler handles annual lump-sum amount requests.
type AnnualAmountHandler struct {
	annualAmountService services.AnnualAmountServicer
}

// NewAnnualAmountHandler creates a new AnnualAmountHandler.
func NewAnnualAmountHandler(annualAmountService services.AnnualAmountServicer) *AnnualAmountHandler {
	return &AnnualAmountHandler{annualAmountService: annualAmountService}
}

// UpsertAnnualAmountRequest represents the payload for importing one
// annual lump sum. Amount is in minor units (cents), signed.
type UpsertAnnualAmountRequest struct {
	PropertyID   string `json:"property_id" binding:"required,uuid"`
	Year         int    `json:"year" binding:"required,min=1900,max=9999"`
	CategoryID   string `json:"category_id" binding:"required,uuid"`
	OwnershipRef string `json:"ownership_ref" binding:"omitempty,max=100"`
	Amount       int64  `json:"amount" binding:"required"`
}

// UpsertAnnualAmount stores or replaces one annual lump sum.
func (h *AnnualAmountHandler) UpsertAnnualAmount(c *gin.Context) {
	var req UpsertAnnualAmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	row, err := h.annualAmountService.UpsertAnnualAmount(
		req.PropertyID, req.Year, req.CategoryID, req.OwnershipRef, req.Amount,
	)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"annual_amount": row})
}

// GetAnnualAmounts lists annual lump sums for a year range.
func (h *AnnualAmountHandler) GetAnnualAmounts(c *gin.Context) {
	propertyID, err := queryPropertyID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	fromYear, err := strconv.Atoi(c.DefaultQuery("from_year", "1900"))
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid from_year"))
		return
	}
	toYear, err := strconv.Atoi(c.DefaultQuery("to_year", "9999"))
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid to_year"))
		return
	}

	rows, err := h.annualAmountService.GetAnnualAmounts(propertyID, fromYear, toYear)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"annual_amounts": rows})
}

// DeleteAnnualAmount removes one annual lump sum.
func (h *AnnualAmountHandler) DeleteAnnualAmount(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.annualAmountService.DeleteAnnualAmount(id); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Annual amount deleted"})
}
