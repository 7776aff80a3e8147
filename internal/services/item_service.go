package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"budgetly/internal/calendar"
	apperrors "budgetly/internal/errors"
	"budgetly/internal/models"
	"budgetly/internal/money"
)

// itemService handles budget item CRUD.
type itemService struct {
	db     *gorm.DB
	months MonthServicer
}

// NewItemService creates a new ItemServicer. Items are added to months
// resolved through months, so creating an item may materialize its month.
func NewItemService(db *gorm.DB, months MonthServicer) ItemServicer {
	return &itemService{db: db, months: months}
}

// CreateItem adds an item to the month ym.
func (s *itemService) CreateItem(ownerID string, ym calendar.YearMonth, input ItemInput) (*models.BudgetItem, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "item name is required")
	}
	if err := s.checkCategory(input.CategoryID); err != nil {
		return nil, err
	}

	month, _, err := s.months.ResolveMonth(ownerID, ym)
	if err != nil {
		return nil, err
	}

	item := &models.BudgetItem{
		BudgetMonthID:  month.ID,
		CategoryID:     input.CategoryID,
		Name:           name,
		ExpectedAmount: input.ExpectedAmount.Round(money.Scale),
		ActualAmount:   input.ActualAmount.Round(money.Scale),
		DueDate:        input.DueDate,
		IsPaid:         input.IsPaid,
	}
	if err := s.db.Create(item).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return s.GetItemByID(ownerID, item.ID)
}

// GetItemByID retrieves an item that belongs to one of ownerID's months.
func (s *itemService) GetItemByID(ownerID, id string) (*models.BudgetItem, error) {
	var item models.BudgetItem
	err := s.db.Preload("Category").
		Joins("JOIN budget_months ON budget_months.id = budget_items.budget_month_id").
		Where("budget_items.id = ? AND budget_months.owner_id = ?", id, ownerID).
		First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBudgetItemNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &item, nil
}

// UpdateItem applies the non-nil fields of update.
func (s *itemService) UpdateItem(ownerID, id string, update ItemUpdate) (*models.BudgetItem, error) {
	item, err := s.GetItemByID(ownerID, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if update.Name != nil {
		name := strings.TrimSpace(*update.Name)
		if name == "" {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "item name cannot be empty")
		}
		updates["name"] = name
	}
	if update.CategoryID != nil && *update.CategoryID != item.CategoryID {
		if err := s.checkCategory(*update.CategoryID); err != nil {
			return nil, err
		}
		updates["category_id"] = *update.CategoryID
	}
	if update.ExpectedAmount != nil {
		updates["expected_amount"] = update.ExpectedAmount.Round(money.Scale)
	}
	if update.ActualAmount != nil {
		updates["actual_amount"] = update.ActualAmount.Round(money.Scale)
	}
	switch {
	case update.ClearDueDate:
		updates["due_date"] = nil
	case update.DueDate != nil:
		updates["due_date"] = *update.DueDate
	}
	if update.IsPaid != nil {
		updates["is_paid"] = *update.IsPaid
	}

	if len(updates) > 0 {
		if err := s.db.Model(&models.BudgetItem{}).Where("id = ?", item.ID).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return s.GetItemByID(ownerID, id)
}

// DeleteItem removes an item.
func (s *itemService) DeleteItem(ownerID, id string) error {
	item, err := s.GetItemByID(ownerID, id)
	if err != nil {
		return err
	}
	if err := s.db.Delete(&models.BudgetItem{}, "id = ?", item.ID).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

func (s *itemService) checkCategory(id string) error {
	if id == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "category_id is required")
	}
	var count int64
	if err := s.db.Model(&models.Category{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count == 0 {
		return apperrors.ErrCategoryNotFound
	}
	return nil
}
