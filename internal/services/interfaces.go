package services

//go:generate mockgen -destination=mocks/services_mock.go -package=mocks budgetly/internal/services ImportServicer,ExportServicer

import (
	"io"
	"time"

	"github.com/shopspring/decimal"

	"budgetly/internal/calendar"
	"budgetly/internal/models"
	"budgetly/internal/pagination"
)

// CategoryServicer defines the contract for category operations.
type CategoryServicer interface {
	ListCategories(categoryType *models.CategoryType) ([]models.Category, error)
	GetCategoryByID(id string) (*models.Category, error)
	CreateCategory(name, displayName string, categoryType models.CategoryType, sortOrder *int) (*models.Category, error)
	UpdateCategory(id, name, displayName string, sortOrder *int) (*models.Category, error)
	DeleteCategory(id string) error
	ResolveCategory(name string, categoryType models.CategoryType) (*models.Category, bool, error)
	EnsureDefaults() error
}

// MonthServicer defines the contract for budget month lifecycle and views.
type MonthServicer interface {
	ResolveMonth(ownerID string, ym calendar.YearMonth) (*models.BudgetMonth, bool, error)
	GetMonthView(ownerID string, ym calendar.YearMonth) (*MonthView, error)
	GetCurrentMonthView(ownerID string) (*MonthView, error)
	GetAdjacentMonthView(ownerID string, ym calendar.YearMonth, dir Direction) (*MonthView, error)
	ListMonths(ownerID string, page pagination.PageRequest, isActive *bool) (*pagination.PageResponse[models.BudgetMonth], error)
	DeleteMonth(ownerID string, ym calendar.YearMonth) error
	GetHistory(ownerID string, from, to calendar.YearMonth) ([]MonthSummary, error)
	GetExistingMonthViews(ownerID string, from, to calendar.YearMonth) ([]*MonthView, error)
}

// ItemInput carries the fields for creating a budget item.
type ItemInput struct {
	CategoryID     string
	Name           string
	ExpectedAmount decimal.Decimal
	ActualAmount   decimal.Decimal
	DueDate        *time.Time
	IsPaid         bool
}

// ItemUpdate carries a partial update; nil fields are left untouched.
type ItemUpdate struct {
	CategoryID     *string
	Name           *string
	ExpectedAmount *decimal.Decimal
	ActualAmount   *decimal.Decimal
	DueDate        *time.Time
	ClearDueDate   bool
	IsPaid         *bool
}

// ItemServicer defines the contract for budget item CRUD.
type ItemServicer interface {
	CreateItem(ownerID string, ym calendar.YearMonth, input ItemInput) (*models.BudgetItem, error)
	GetItemByID(ownerID, id string) (*models.BudgetItem, error)
	UpdateItem(ownerID, id string, update ItemUpdate) (*models.BudgetItem, error)
	DeleteItem(ownerID, id string) error
}

// ImportServicer defines the contract for bulk record import.
type ImportServicer interface {
	ImportBatch(ownerID string, target calendar.YearMonth, records []ImportRecord) (*ImportResult, error)
}

// ExportServicer defines the contract for CSV export.
type ExportServicer interface {
	WriteMonthCSV(w io.Writer, ownerID string, ym calendar.YearMonth) error
	WriteHistoryCSV(w io.Writer, ownerID string, from, to calendar.YearMonth) error
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(ownerID, action, resourceType, resourceID, ipAddress string, changes map[string]any)
}
