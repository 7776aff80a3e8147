package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// BudgetItem is a single expected/actual line within a budget month.
type BudgetItem struct {
	Base
	BudgetMonthID  string          `gorm:"type:uuid;not null;index" json:"budget_month_id"`
	CategoryID     string          `gorm:"type:uuid;not null;index" json:"category_id"`
	Name           string          `gorm:"not null;size:255" json:"name"`
	ExpectedAmount decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"expected_amount"`
	ActualAmount   decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"actual_amount"`
	DueDate        *time.Time      `gorm:"type:date" json:"due_date,omitempty"`
	IsPaid         bool            `gorm:"not null" json:"is_paid"`

	// Relationships
	Category *Category `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE" json:"category,omitempty"`
}

// Variance is actual minus expected.
func (i *BudgetItem) Variance() decimal.Decimal {
	return i.ActualAmount.Sub(i.ExpectedAmount)
}
