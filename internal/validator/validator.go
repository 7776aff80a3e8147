// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"budgetly/internal/calendar"
	"budgetly/internal/models"
)

var yearMonthRegex = regexp.MustCompile(`^\d{4}-\d{2}$`)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(fieldName)
		_ = v.RegisterValidation("category_type", validateCategoryType)
		_ = v.RegisterValidation("year_month", validateYearMonth)
	}
}

// fieldName reports fields by their json name, then their form name, so
// validation details match what the client sent.
func fieldName(f reflect.StructField) string {
	for _, tag := range []string{"json", "form"} {
		name, _, _ := strings.Cut(f.Tag.Get(tag), ",")
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return f.Name
}

func validateCategoryType(fl validator.FieldLevel) bool {
	return models.CategoryType(fl.Field().String()).Valid()
}

// validateYearMonth accepts "YYYY-MM" with a month between 01 and 12.
func validateYearMonth(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if !yearMonthRegex.MatchString(s) {
		return false
	}
	_, ok := ParseYearMonth(s)
	return ok
}

// ParseYearMonth parses the strict "YYYY-MM" form used in query strings.
func ParseYearMonth(s string) (calendar.YearMonth, bool) {
	if !yearMonthRegex.MatchString(s) {
		return calendar.YearMonth{}, false
	}
	ym, ok := calendar.ParseMonthString(s)
	if !ok || !ym.Valid() {
		return calendar.YearMonth{}, false
	}
	return ym, true
}
