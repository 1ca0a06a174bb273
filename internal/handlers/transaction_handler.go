package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Jlford67/landlord-sub001/internal/dates"
	apperrors "github.com/Jlford67/landlord-sub001/internal/errors"
	"github.com/Jlford67/landlord-sub001/internal/models"
	"github.com/Jlford67/landlord-sub001/internal/pagination"
	"github.com/Jlford67/landlord-sub001/internal/services"
)

// TransactionHandler handles manual ledger entry requests.
type TransactionHandler struct {
	transactionService services.TransactionServicer
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(transactionService services.TransactionServicer) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService}
}

// CreateTransactionRequest represents the request payload for recording
// a ledger entry. Amount is in minor units (cents), signed.
type CreateTransactionRequest struct {
	PropertyID string `json:"property_id" binding:"required,uuid"`
	CategoryID string `json:"category_id" binding:"required,uuid"`
	Date       string `json:"date" binding:"required,calendar_date"`
	Amount     int64  `json:"amount" binding:"required"`
	Memo       string `json:"memo" binding:"omitempty,max=500"`
	Source     string `json:"source" binding:"omitempty,transaction_source"`
}

// CreateTransaction records one ledger entry.
func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	date, err := dates.ParseDate(req.Date)
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	transaction, err := h.transactionService.CreateTransaction(
		req.PropertyID, req.CategoryID, date, req.Amount, req.Memo,
		models.TransactionSource(req.Source),
	)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"transaction": transaction})
}

// GetTransactions lists ledger entries with optional filters.
func (h *TransactionHandler) GetTransactions(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	var filter services.TransactionFilter
	propertyID, err := queryPropertyID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	filter.PropertyID = propertyID

	if raw := c.Query("category_id"); raw != "" {
		filter.CategoryID = &raw
	}
	if raw := c.Query("from"); raw != "" {
		from, err := dates.ParseDate(raw)
		if err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid from: expected YYYY-MM-DD"))
			return
		}
		filter.FromDate = &from
	}
	if raw := c.Query("to"); raw != "" {
		to, err := dates.ParseDate(raw)
		if err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid to: expected YYYY-MM-DD"))
			return
		}
		filter.ToDate = &to
	}
	if raw := c.Query("source"); raw != "" {
		source := models.TransactionSource(raw)
		filter.Source = &source
	}

	result, err := h.transactionService.GetTransactions(page, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetTransactionByID returns one ledger entry.
func (h *TransactionHandler) GetTransactionByID(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	transaction, err := h.transactionService.GetTransactionByID(id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transaction": transaction})
}

// DeleteTransaction soft-deletes a ledger entry.
func (h *TransactionHandler) DeleteTransaction(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.transactionService.DeleteTransaction(id); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Transaction deleted"})
}
