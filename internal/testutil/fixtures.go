package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"budgetly/internal/calendar"
	"budgetly/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestCategory creates a category of the given type with a unique name.
func CreateTestCategory(t *testing.T, db *gorm.DB, categoryType models.CategoryType) *models.Category {
	t.Helper()
	n := nextID()
	return CreateTestCategoryNamed(t, db, fmt.Sprintf("test_category_%d", n), categoryType, int(n))
}

// CreateTestCategoryNamed creates a category with an explicit name and sort order.
func CreateTestCategoryNamed(t *testing.T, db *gorm.DB, name string, categoryType models.CategoryType, sortOrder int) *models.Category {
	t.Helper()

	category := &models.Category{
		Name:        name,
		DisplayName: fmt.Sprintf("Display %s", name),
		Type:        categoryType,
		SortOrder:   sortOrder,
	}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create test category: %v", err)
	}
	return category
}

// CreateTestMonth creates an ownerless budget month without carrying items forward.
func CreateTestMonth(t *testing.T, db *gorm.DB, ym calendar.YearMonth) *models.BudgetMonth {
	t.Helper()
	return CreateTestMonthForOwner(t, db, ym, "")
}

// CreateTestMonthForOwner creates a budget month owned by ownerID.
func CreateTestMonthForOwner(t *testing.T, db *gorm.DB, ym calendar.YearMonth, ownerID string) *models.BudgetMonth {
	t.Helper()

	month := &models.BudgetMonth{
		Year:     ym.Year,
		Month:    int(ym.Month),
		OwnerID:  ownerID,
		IsActive: true,
	}
	if err := db.Create(month).Error; err != nil {
		t.Fatalf("failed to create test budget month: %v", err)
	}
	return month
}

// CreateTestItem creates a budget item with the given expected and actual amounts.
func CreateTestItem(t *testing.T, db *gorm.DB, monthID, categoryID, name, expected, actual string) *models.BudgetItem {
	t.Helper()

	item := &models.BudgetItem{
		BudgetMonthID:  monthID,
		CategoryID:     categoryID,
		Name:           name,
		ExpectedAmount: decimal.RequireFromString(expected),
		ActualAmount:   decimal.RequireFromString(actual),
	}
	if err := db.Create(item).Error; err != nil {
		t.Fatalf("failed to create test budget item: %v", err)
	}
	return item
}

// CreateTestPaidItem creates a paid budget item with a due date.
func CreateTestPaidItem(t *testing.T, db *gorm.DB, monthID, categoryID, name, expected, actual string, due time.Time) *models.BudgetItem {
	t.Helper()

	item := &models.BudgetItem{
		BudgetMonthID:  monthID,
		CategoryID:     categoryID,
		Name:           name,
		ExpectedAmount: decimal.RequireFromString(expected),
		ActualAmount:   decimal.RequireFromString(actual),
		DueDate:        &due,
		IsPaid:         true,
	}
	if err := db.Create(item).Error; err != nil {
		t.Fatalf("failed to create test budget item: %v", err)
	}
	return item
}

// CountRows returns the number of rows for model matching the optional condition.
func CountRows(t *testing.T, db *gorm.DB, model interface{}, query string, args ...interface{}) int64 {
	t.Helper()

	var count int64
	q := db.Model(model)
	if query != "" {
		q = q.Where(query, args...)
	}
	if err := q.Count(&count).Error; err != nil {
		t.Fatalf("failed to count rows: %v", err)
	}
	return count
}
