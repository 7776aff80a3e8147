package models

import (
	"budgetly/internal/calendar"
)

// BudgetMonth is the per-calendar-month container for budget items. At most
// one row exists per (year, month, owner); OwnerID is empty for the
// single-user timeline.
type BudgetMonth struct {
	Base
	Year     int    `gorm:"not null;uniqueIndex:idx_budget_months_period" json:"year"`
	Month    int    `gorm:"not null;uniqueIndex:idx_budget_months_period" json:"month"`
	OwnerID  string `gorm:"not null;size:128;default:'';uniqueIndex:idx_budget_months_period" json:"owner_id,omitempty"`
	IsActive bool   `gorm:"not null" json:"is_active"`

	// Relationships
	Items []BudgetItem `gorm:"foreignKey:BudgetMonthID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

// Period returns the calendar month the row represents.
func (m *BudgetMonth) Period() calendar.YearMonth {
	return calendar.New(m.Year, m.Month)
}
