package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "github.com/Jlford67/landlord-sub001/internal/errors"
	"github.com/Jlford67/landlord-sub001/internal/models"
	"github.com/Jlford67/landlord-sub001/internal/services"
)

// ReportHandler handles the named report endpoints.
type ReportHandler struct {
	reportService services.ReportServicer
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService services.ReportServicer) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// reportOptions parses the shared report query parameters: property_id,
// kinds (comma-separated), include_transfers.
func reportOptions(c *gin.Context) (services.ReportOptions, error) {
	var opts services.ReportOptions

	propertyID, err := queryPropertyID(c)
	if err != nil {
		return opts, err
	}
	opts.PropertyID = propertyID

	if raw := c.Query("kinds"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			kind := models.CategoryKind(strings.TrimSpace(part))
			switch kind {
			case models.CategoryKindIncome, models.CategoryKindExpense, models.CategoryKindTransfer:
				opts.Kinds = append(opts.Kinds, kind)
			default:
				return opts, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid kind: "+string(kind))
			}
		}
	}
	opts.IncludeTransfers = c.Query("include_transfers") == "true"
	return opts, nil
}

// GetMonthReport returns the flat and hierarchical totals for one month.
func (h *ReportHandler) GetMonthReport(c *gin.Context) {
	month, err := queryYearMonth(c, "month")
	if err != nil {
		respondWithError(c, err)
		return
	}
	opts, err := reportOptions(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	report, err := h.reportService.MonthReport(month, opts)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"report": report})
}

// GetRangeReport returns the per-category totals over a date range.
func (h *ReportHandler) GetRangeReport(c *gin.Context) {
	from, err := queryDate(c, "from")
	if err != nil {
		respondWithError(c, err)
		return
	}
	to, err := queryDate(c, "to")
	if err != nil {
		respondWithError(c, err)
		return
	}
	opts, err := reportOptions(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	report, err := h.reportService.RangeReport(from, to, opts)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"report": report})
}

// GetPropertyReport returns income/expense/net per property over a range.
func (h *ReportHandler) GetPropertyReport(c *gin.Context) {
	from, err := queryDate(c, "from")
	if err != nil {
		respondWithError(c, err)
		return
	}
	to, err := queryDate(c, "to")
	if err != nil {
		respondWithError(c, err)
		return
	}

	lines, err := h.reportService.PropertyReport(from, to)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"properties": lines})
}

// GetAnnualSummary returns month-by-month totals for one calendar year.
func (h *ReportHandler) GetAnnualSummary(c *gin.Context) {
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil || year < 1900 || year > 9999 {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid year"))
		return
	}
	propertyID, err := queryPropertyID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	summary, err := h.reportService.AnnualSummary(year, propertyID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"summary": summary})
}

// GetLeaderboard ranks categories of one kind by total magnitude.
func (h *ReportHandler) GetLeaderboard(c *gin.Context) {
	from, err := queryDate(c, "from")
	if err != nil {
		respondWithError(c, err)
		return
	}
	to, err := queryDate(c, "to")
	if err != nil {
		respondWithError(c, err)
		return
	}

	kind := models.CategoryKind(c.DefaultQuery("kind", "expense"))
	switch kind {
	case models.CategoryKindIncome, models.CategoryKindExpense, models.CategoryKindTransfer:
	default:
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid kind"))
		return
	}

	limit := 10
	if raw := c.Query("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 1 {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid limit"))
			return
		}
	}

	entries, err := h.reportService.Leaderboard(from, to, kind, limit)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"leaderboard": entries})
}

// GetCashVsAccrual compares itemized-only and itemized-plus-prorated
// totals over a range.
func (h *ReportHandler) GetCashVsAccrual(c *gin.Context) {
	from, err := queryDate(c, "from")
	if err != nil {
		respondWithError(c, err)
		return
	}
	to, err := queryDate(c, "to")
	if err != nil {
		respondWithError(c, err)
		return
	}
	propertyID, err := queryPropertyID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	report, err := h.reportService.CashVsAccrual(from, to, propertyID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"report": report})
}
