package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"budgetly/internal/calendar"
	apperrors "budgetly/internal/errors"
	"budgetly/internal/pagination"
	"budgetly/internal/services"
	"budgetly/internal/validator"
)

// MonthHandler serves budget month views and navigation.
type MonthHandler struct {
	monthService services.MonthServicer
	auditService services.AuditServicer
}

// NewMonthHandler creates a new MonthHandler.
func NewMonthHandler(monthService services.MonthServicer, auditService services.AuditServicer) *MonthHandler {
	return &MonthHandler{monthService: monthService, auditService: auditService}
}

// HistoryQuery holds the range for history endpoints.
type HistoryQuery struct {
	From string `form:"from" binding:"required,year_month"`
	To   string `form:"to" binding:"required,year_month"`
}

// parseHistoryRange binds and parses ?from=YYYY-MM&to=YYYY-MM.
func parseHistoryRange(c *gin.Context) (calendar.YearMonth, calendar.YearMonth, error) {
	var q HistoryQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		return calendar.YearMonth{}, calendar.YearMonth{}, bindingError(err)
	}
	from, okFrom := validator.ParseYearMonth(q.From)
	to, okTo := validator.ParseYearMonth(q.To)
	if !okFrom || !okTo {
		return calendar.YearMonth{}, calendar.YearMonth{}, apperrors.ErrInvalidMonth
	}
	return from, to, nil
}

// GetCurrentMonth returns the view of the current calendar month.
// @Summary     Get current month
// @Description Resolve the current calendar month, creating it from the previous month if needed
// @Tags        months
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} services.MonthView
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /months/current [get]
func (h *MonthHandler) GetCurrentMonth(c *gin.Context) {
	view, err := h.monthService.GetCurrentMonthView(getOwnerID(c))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// GetMonth returns the view of a specific month.
// @Summary     Get month
// @Description Resolve a budget month, creating it from the previous month if needed
// @Tags        months
// @Produce     json
// @Security    BearerAuth
// @Param       year  path int true "Year"
// @Param       month path int true "Month (1-12)"
// @Success     200 {object} services.MonthView
// @Failure     400 {object} ErrorResponse "Invalid month"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /months/{year}/{month} [get]
func (h *MonthHandler) GetMonth(c *gin.Context) {
	ym, err := parseYearMonth(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	view, err := h.monthService.GetMonthView(getOwnerID(c), ym)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// GetPreviousMonth returns the view of the month before the given one.
// @Summary     Get previous month
// @Tags        months
// @Produce     json
// @Security    BearerAuth
// @Param       year  path int true "Year"
// @Param       month path int true "Month (1-12)"
// @Success     200 {object} services.MonthView
// @Failure     400 {object} ErrorResponse "Invalid month"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /months/{year}/{month}/previous [get]
func (h *MonthHandler) GetPreviousMonth(c *gin.Context) {
	h.adjacent(c, services.Previous)
}

// GetNextMonth returns the view of the month after the given one.
// @Summary     Get next month
// @Tags        months
// @Produce     json
// @Security    BearerAuth
// @Param       year  path int true "Year"
// @Param       month path int true "Month (1-12)"
// @Success     200 {object} services.MonthView
// @Failure     400 {object} ErrorResponse "Invalid month"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /months/{year}/{month}/next [get]
func (h *MonthHandler) GetNextMonth(c *gin.Context) {
	h.adjacent(c, services.Next)
}

func (h *MonthHandler) adjacent(c *gin.Context, dir services.Direction) {
	ym, err := parseYearMonth(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	view, err := h.monthService.GetAdjacentMonthView(getOwnerID(c), ym, dir)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// ListMonths lists materialized months, newest first.
// @Summary     List months
// @Tags        months
// @Produce     json
// @Security    BearerAuth
// @Param       is_active query bool false "Filter by active flag"
// @Param       page      query int  false "Page number (default 1)"
// @Param       page_size query int  false "Months per page (default 12, max 120)"
// @Success     200 {object} pagination.PageResponse[models.BudgetMonth]
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /months [get]
func (h *MonthHandler) ListMonths(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, bindingError(err))
		return
	}
	isActive, err := parseOptionalBool(c, "is_active")
	if err != nil {
		respondWithError(c, err)
		return
	}

	resp, err := h.monthService.ListMonths(getOwnerID(c), page, isActive)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DeleteMonth removes a month and all of its items.
// @Summary     Delete month
// @Tags        months
// @Produce     json
// @Security    BearerAuth
// @Param       year  path int true "Year"
// @Param       month path int true "Month (1-12)"
// @Success     200 {object} map[string]string
// @Failure     400 {object} ErrorResponse "Invalid month"
// @Failure     404 {object} ErrorResponse "Month not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /months/{year}/{month} [delete]
func (h *MonthHandler) DeleteMonth(c *gin.Context) {
	ym, err := parseYearMonth(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	ownerID := getOwnerID(c)
	if err := h.monthService.DeleteMonth(ownerID, ym); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(ownerID, "DELETE_MONTH", "budget_month", ym.Key(), c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Budget month deleted successfully"})
}

// GetHistory returns headline totals for every existing month in a range.
// @Summary     Month history
// @Description Summaries of existing months between from and to (inclusive); months are not created
// @Tags        months
// @Produce     json
// @Security    BearerAuth
// @Param       from query string true "First month (YYYY-MM)"
// @Param       to   query string true "Last month (YYYY-MM)"
// @Success     200 {object} map[string][]services.MonthSummary
// @Failure     400 {object} ErrorResponse "Invalid range"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /history [get]
func (h *MonthHandler) GetHistory(c *gin.Context) {
	from, to, err := parseHistoryRange(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	history, err := h.monthService.GetHistory(getOwnerID(c), from, to)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"months": history})
}
