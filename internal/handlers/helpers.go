package handlers

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Jlford67/landlord-sub001/internal/dates"
	apperrors "github.com/Jlford67/landlord-sub001/internal/errors"
	"github.com/Jlford67/landlord-sub001/internal/logger"
	"github.com/Jlford67/landlord-sub001/internal/uuid"
)

// ErrorResponse is the JSON error envelope returned by all handlers.
type ErrorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// pathID validates a UUID path parameter.
func pathID(c *gin.Context, param string) (string, error) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		return "", apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid "+param)
	}
	return id, nil
}

// queryYearMonth parses a required "YYYY-MM" query parameter.
func queryYearMonth(c *gin.Context, param string) (dates.YearMonth, error) {
	raw := c.Query(param)
	if raw == "" {
		return dates.YearMonth{}, apperrors.WithMessage(apperrors.ErrInvalidInput, param+" is required")
	}
	ym, err := dates.ParseYearMonth(raw)
	if err != nil {
		return dates.YearMonth{}, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error())
	}
	return ym, nil
}

// parseYearMonthField parses an already-bound "YYYY-MM" body field.
func parseYearMonthField(raw string) (dates.YearMonth, error) {
	ym, err := dates.ParseYearMonth(raw)
	if err != nil {
		return dates.YearMonth{}, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error())
	}
	return ym, nil
}

// queryDate parses a required "YYYY-MM-DD" query parameter.
func queryDate(c *gin.Context, param string) (time.Time, error) {
	raw := c.Query(param)
	if raw == "" {
		return time.Time{}, apperrors.WithMessage(apperrors.ErrInvalidInput, param+" is required")
	}
	d, err := dates.ParseDate(raw)
	if err != nil {
		return time.Time{}, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid "+param+": expected YYYY-MM-DD")
	}
	return d, nil
}

// queryPropertyID parses an optional property_id query parameter.
func queryPropertyID(c *gin.Context) (*string, error) {
	raw := c.Query("property_id")
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid property_id")
	}
	return &id, nil
}

// respondWithError writes a consistent JSON error response. If the error is an
// *AppError it uses the error's status code, code, and message. Otherwise it
// logs the unexpected error and returns a generic internal server error.
func respondWithError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if appErr.Internal != nil {
			logger.Get().Errorw("app error",
				"code", appErr.Code,
				"internal", appErr.Internal.Error(),
				"path", c.Request.URL.Path,
			)
		}
		c.JSON(appErr.StatusCode, gin.H{
			"error": gin.H{
				"code":    appErr.Code,
				"message": appErr.Message,
			},
		})
		return
	}

	logger.Get().Errorw("unexpected error",
		"error", err.Error(),
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
	)
	c.JSON(apperrors.ErrInternalServer.StatusCode, gin.H{
		"error": gin.H{
			"code":    apperrors.ErrInternalServer.Code,
			"message": apperrors.ErrInternalServer.Message,
		},
	})
}
