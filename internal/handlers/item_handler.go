package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"budgetly/internal/calendar"
	apperrors "budgetly/internal/errors"
	"budgetly/internal/money"
	"budgetly/internal/services"
)

// ItemHandler handles budget item requests.
type ItemHandler struct {
	itemService  services.ItemServicer
	auditService services.AuditServicer
}

// NewItemHandler creates a new ItemHandler.
func NewItemHandler(itemService services.ItemServicer, auditService services.AuditServicer) *ItemHandler {
	return &ItemHandler{itemService: itemService, auditService: auditService}
}

// CreateItemRequest represents the payload for adding an item to a month.
// Amounts accept JSON numbers or numeric strings.
type CreateItemRequest struct {
	CategoryID     string          `json:"category_id" binding:"required,uuid"`
	Name           string          `json:"name" binding:"required,min=1,max=255"`
	ExpectedAmount decimal.Decimal `json:"expected_amount" swaggertype:"string" example:"1200.00"`
	ActualAmount   decimal.Decimal `json:"actual_amount" swaggertype:"string" example:"0.00"`
	DueDate        string          `json:"due_date" example:"2024-03-15"`
	IsPaid         bool            `json:"is_paid"`
}

// UpdateItemRequest represents a partial item update. An empty due_date
// clears the due date.
type UpdateItemRequest struct {
	CategoryID     *string          `json:"category_id" binding:"omitempty,uuid"`
	Name           *string          `json:"name" binding:"omitempty,min=1,max=255"`
	ExpectedAmount *decimal.Decimal `json:"expected_amount" swaggertype:"string"`
	ActualAmount   *decimal.Decimal `json:"actual_amount" swaggertype:"string"`
	DueDate        *string          `json:"due_date"`
	IsPaid         *bool            `json:"is_paid"`
}

func parseDueDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	t, ok := calendar.ParseFlexibleDate(s)
	if !ok {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "due_date is not a recognized date")
	}
	return &t, nil
}

type amountField struct {
	name  string
	value *decimal.Decimal
}

// checkAmounts rejects amounts the amount columns cannot hold.
func checkAmounts(fields ...amountField) error {
	var details []apperrors.FieldError
	for _, f := range fields {
		if f.value != nil && !money.InRange(*f.value) {
			details = append(details, apperrors.FieldError{
				Field:   f.name,
				Message: "must be between -" + money.MaxAmount.StringFixed(money.Scale) + " and " + money.MaxAmount.StringFixed(money.Scale),
			})
		}
	}
	if len(details) > 0 {
		return apperrors.WithDetails(apperrors.ErrValidationFailed, details)
	}
	return nil
}

// CreateItem adds an item to a month, creating the month if needed.
// @Summary     Create item
// @Tags        items
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       year    path int               true "Year"
// @Param       month   path int               true "Month (1-12)"
// @Param       request body CreateItemRequest true "Item details"
// @Success     201 {object} models.BudgetItem
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Category not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /months/{year}/{month}/items [post]
func (h *ItemHandler) CreateItem(c *gin.Context) {
	ym, err := parseYearMonth(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindingError(err))
		return
	}
	if err := checkAmounts(
		amountField{"expected_amount", &req.ExpectedAmount},
		amountField{"actual_amount", &req.ActualAmount},
	); err != nil {
		respondWithError(c, err)
		return
	}
	dueDate, err := parseDueDate(req.DueDate)
	if err != nil {
		respondWithError(c, err)
		return
	}

	ownerID := getOwnerID(c)
	item, err := h.itemService.CreateItem(ownerID, ym, services.ItemInput{
		CategoryID:     req.CategoryID,
		Name:           req.Name,
		ExpectedAmount: req.ExpectedAmount,
		ActualAmount:   req.ActualAmount,
		DueDate:        dueDate,
		IsPaid:         req.IsPaid,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(ownerID, "CREATE_ITEM", "budget_item", item.ID, c.ClientIP(),
		map[string]any{"name": item.Name, "month": ym.Key(), "expected_amount": item.ExpectedAmount.String()})

	c.JSON(http.StatusCreated, item)
}

// GetItem returns a single item.
// @Summary     Get item
// @Tags        items
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Item ID"
// @Success     200 {object} models.BudgetItem
// @Failure     400 {object} ErrorResponse "Invalid ID"
// @Failure     404 {object} ErrorResponse "Item not found"
// @Router      /items/{id} [get]
func (h *ItemHandler) GetItem(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}
	item, err := h.itemService.GetItemByID(getOwnerID(c), id)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// UpdateItem applies a partial update to an item.
// @Summary     Update item
// @Tags        items
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string            true "Item ID"
// @Param       request body UpdateItemRequest true "Fields to change"
// @Success     200 {object} models.BudgetItem
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Item or category not found"
// @Router      /items/{id} [put]
func (h *ItemHandler) UpdateItem(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindingError(err))
		return
	}
	if err := checkAmounts(
		amountField{"expected_amount", req.ExpectedAmount},
		amountField{"actual_amount", req.ActualAmount},
	); err != nil {
		respondWithError(c, err)
		return
	}

	update := services.ItemUpdate{
		CategoryID:     req.CategoryID,
		Name:           req.Name,
		ExpectedAmount: req.ExpectedAmount,
		ActualAmount:   req.ActualAmount,
		IsPaid:         req.IsPaid,
	}
	if req.DueDate != nil {
		dueDate, err := parseDueDate(*req.DueDate)
		if err != nil {
			respondWithError(c, err)
			return
		}
		update.DueDate = dueDate
		update.ClearDueDate = dueDate == nil
	}

	ownerID := getOwnerID(c)
	item, err := h.itemService.UpdateItem(ownerID, id, update)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(ownerID, "UPDATE_ITEM", "budget_item", item.ID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, item)
}

// DeleteItem removes an item.
// @Summary     Delete item
// @Tags        items
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Item ID"
// @Success     200 {object} map[string]string
// @Failure     400 {object} ErrorResponse "Invalid ID"
// @Failure     404 {object} ErrorResponse "Item not found"
// @Router      /items/{id} [delete]
func (h *ItemHandler) DeleteItem(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}
	ownerID := getOwnerID(c)
	if err := h.itemService.DeleteItem(ownerID, id); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(ownerID, "DELETE_ITEM", "budget_item", id, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Budget item deleted successfully"})
}
