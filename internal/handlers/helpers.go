package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"budgetly/internal/calendar"
	apperrors "budgetly/internal/errors"
	"budgetly/internal/logger"
	"budgetly/internal/middleware"
	"budgetly/internal/uuid"
)

// ErrorDetail represents the inner error object in an error response.
type ErrorDetail struct {
	Code    string                 `json:"code" example:"VALIDATION_FAILED"`
	Message string                 `json:"message" example:"Request validation failed"`
	Details []apperrors.FieldError `json:"details,omitempty"`
}

// ErrorResponse represents a standard error response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// getOwnerID returns the budget owner set by the owner middleware. An empty
// string is the single-user timeline.
func getOwnerID(c *gin.Context) string {
	return c.GetString(middleware.OwnerIDKey)
}

// parseYearMonth reads the :year and :month path parameters.
func parseYearMonth(c *gin.Context) (calendar.YearMonth, error) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		return calendar.YearMonth{}, apperrors.WithMessage(apperrors.ErrInvalidMonth, "year must be a number")
	}
	month, err := strconv.Atoi(c.Param("month"))
	if err != nil {
		return calendar.YearMonth{}, apperrors.WithMessage(apperrors.ErrInvalidMonth, "month must be a number")
	}
	ym := calendar.New(year, month)
	if !ym.Valid() {
		return calendar.YearMonth{}, apperrors.ErrInvalidMonth
	}
	return ym, nil
}

// parsePathID validates a UUID path parameter.
//
//nolint:unparam // every resource currently uses ":id"
func parsePathID(c *gin.Context, param string) (string, error) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		return "", apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid "+param)
	}
	return id, nil
}

// parseOptionalBool parses a "true"/"false" query value. Empty means unset.
func parseOptionalBool(c *gin.Context, key string) (*bool, error) {
	switch c.Query(key) {
	case "":
		return nil, nil
	case "true":
		b := true
		return &b, nil
	case "false":
		b := false
		return &b, nil
	}
	return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, key+" must be 'true' or 'false'")
}

// bindingError converts a gin binding failure into an AppError. Validator
// failures carry per-field details; malformed bodies become INVALID_INPUT.
func bindingError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		details := make([]apperrors.FieldError, 0, len(verrs))
		for _, fe := range verrs {
			details = append(details, apperrors.FieldError{
				Field:   jsonFieldName(fe),
				Message: fieldMessage(fe),
			})
		}
		return apperrors.WithDetails(apperrors.ErrValidationFailed, details)
	}
	return apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error())
}

// jsonFieldName relies on the tag name func installed by validator.Register.
func jsonFieldName(fe validator.FieldError) string {
	return fe.Field()
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	case "gte":
		return "must be greater than or equal to " + fe.Param()
	case "category_type":
		return "must be 'revenue' or 'expense'"
	case "year_month":
		return "must be in YYYY-MM format"
	}
	return "is invalid (" + fe.Tag() + ")"
}

// respondWithError writes a consistent JSON error response. AppErrors keep
// their status, code, message and details; anything else is logged and
// reported as a generic internal error.
func respondWithError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if appErr.Internal != nil {
			logger.Named("http").Errorw("app error",
				"code", appErr.Code,
				"internal", appErr.Internal.Error(),
				"path", c.Request.URL.Path,
			)
		}
		c.JSON(appErr.StatusCode, ErrorResponse{Error: ErrorDetail{
			Code:    appErr.Code,
			Message: appErr.Message,
			Details: appErr.Details,
		}})
		return
	}

	logger.Named("http").Errorw("unexpected error",
		"error", err.Error(),
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
	)
	c.JSON(apperrors.ErrInternalServer.StatusCode, ErrorResponse{Error: ErrorDetail{
		Code:    apperrors.ErrInternalServer.Code,
		Message: apperrors.ErrInternalServer.Message,
	}})
}
