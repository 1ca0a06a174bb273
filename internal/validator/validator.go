// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"github.com/Jlford67/landlord-sub001/internal/dates"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("category_kind", validateCategoryKind)
		_ = v.RegisterValidation("transaction_source", validateTransactionSource)
		_ = v.RegisterValidation("year_month", validateYearMonth)
		_ = v.RegisterValidation("calendar_date", validateCalendarDate)
	}
}

func validateCategoryKind(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "income", "expense", "transfer":
		return true
	}
	return false
}

func validateTransactionSource(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "manual", "recurring", "import":
		return true
	}
	return false
}

func validateYearMonth(fl validator.FieldLevel) bool {
	_, err := dates.ParseYearMonth(fl.Field().String())
	return err == nil
}

func validateCalendarDate(fl validator.FieldLevel) bool {
	_, err := dates.ParseDate(fl.Field().String())
	return err == nil
}
