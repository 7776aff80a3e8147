package services

import (
	"sort"

	"github.com/shopspring/decimal"

	"budgetly/internal/calendar"
	"budgetly/internal/models"
	"budgetly/internal/money"
)

const dueDateLayout = "2006-01-02"

// Direction selects the neighbouring month.
type Direction int

const (
	Previous Direction = -1
	Next     Direction = 1
)

// Totals is the expected/actual pair of a group together with its variance.
type Totals struct {
	ExpectedTotal decimal.Decimal `json:"expected_total"`
	ActualTotal   decimal.Decimal `json:"actual_total"`
	Variance      decimal.Decimal `json:"variance"`
}

func (t *Totals) add(expected, actual decimal.Decimal) {
	t.ExpectedTotal = t.ExpectedTotal.Add(expected)
	t.ActualTotal = t.ActualTotal.Add(actual)
	t.Variance = t.ActualTotal.Sub(t.ExpectedTotal)
}

func zeroTotals() Totals {
	return Totals{ExpectedTotal: decimal.Zero, ActualTotal: decimal.Zero, Variance: decimal.Zero}
}

// ItemView is a budget item as presented inside a month view.
type ItemView struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	CategoryID     string          `json:"category_id"`
	CategoryName   string          `json:"category_name"`
	ExpectedAmount decimal.Decimal `json:"expected_amount"`
	ActualAmount   decimal.Decimal `json:"actual_amount"`
	Variance       decimal.Decimal `json:"variance"`
	DueDate        *string         `json:"due_date"`
	IsPaid         bool            `json:"is_paid"`
}

// CategoryGroup holds the expense items of one category.
type CategoryGroup struct {
	CategoryID  string     `json:"category_id"`
	Name        string     `json:"name"`
	DisplayName string     `json:"display_name"`
	SortOrder   int        `json:"sort_order"`
	Items       []ItemView `json:"items"`
	Totals
}

// RevenueSection lists every revenue item of the month.
type RevenueSection struct {
	Items []ItemView `json:"items"`
	Totals
}

// ExpenseSection lists the expense items grouped by category.
type ExpenseSection struct {
	Categories []CategoryGroup `json:"categories"`
	Totals
}

// Metric is one line of the month summary.
type Metric struct {
	Expected           decimal.Decimal `json:"expected"`
	Actual             decimal.Decimal `json:"actual"`
	Variance           decimal.Decimal `json:"variance"`
	VariancePercentage float64         `json:"variance_percentage"`
}

func newMetric(expected, actual decimal.Decimal) Metric {
	variance := actual.Sub(expected)
	return Metric{
		Expected:           expected,
		Actual:             actual,
		Variance:           variance,
		VariancePercentage: money.Percentage(variance, expected),
	}
}

// Summary compares revenue against expenses.
type Summary struct {
	Revenue   Metric `json:"revenue"`
	Expenses  Metric `json:"expenses"`
	NetIncome Metric `json:"net_income"`
}

// MonthInfo identifies the month a view was computed for.
type MonthInfo struct {
	ID       string `json:"id"`
	Year     int    `json:"year"`
	Month    int    `json:"month"`
	Label    string `json:"label"`
	OwnerID  string `json:"owner_id,omitempty"`
	IsActive bool   `json:"is_active"`
}

// MonthView is the aggregated, read-only presentation of a budget month.
type MonthView struct {
	Month    MonthInfo      `json:"month"`
	Revenue  RevenueSection `json:"revenue"`
	Expenses ExpenseSection `json:"expenses"`
	Summary  Summary        `json:"summary"`
}

// Period returns the calendar month of the view.
func (v *MonthView) Period() calendar.YearMonth {
	return calendar.New(v.Month.Year, v.Month.Month)
}

// MonthSummary is one entry of the multi-month history.
type MonthSummary struct {
	Year    int     `json:"year"`
	Month   int     `json:"month"`
	Label   string  `json:"label"`
	Summary Summary `json:"summary"`
}

// ComputeMonthView aggregates items into revenue and per-category expense
// groups. Items must have their Category loaded; items without one are
// treated as expenses of an unnamed category. The result depends only on the
// inputs and their order.
func ComputeMonthView(month models.BudgetMonth, items []models.BudgetItem) *MonthView {
	view := &MonthView{
		Month: MonthInfo{
			ID:       month.ID,
			Year:     month.Year,
			Month:    month.Month,
			Label:    month.Period().String(),
			OwnerID:  month.OwnerID,
			IsActive: month.IsActive,
		},
		Revenue:  RevenueSection{Items: []ItemView{}, Totals: zeroTotals()},
		Expenses: ExpenseSection{Categories: []CategoryGroup{}, Totals: zeroTotals()},
	}

	groups := make(map[string]*CategoryGroup)
	var ordered []*CategoryGroup
	for i := range items {
		item := &items[i]
		iv := newItemView(item)

		if item.Category != nil && item.Category.Type == models.CategoryTypeRevenue {
			view.Revenue.Items = append(view.Revenue.Items, iv)
			view.Revenue.add(item.ExpectedAmount, item.ActualAmount)
			continue
		}

		group, ok := groups[item.CategoryID]
		if !ok {
			group = newCategoryGroup(item)
			groups[item.CategoryID] = group
			ordered = append(ordered, group)
		}
		group.Items = append(group.Items, iv)
		group.add(item.ExpectedAmount, item.ActualAmount)
	}

	sort.SliceStable(ordered, func(i, j int) bool {
		a, b := ordered[i], ordered[j]
		if a.SortOrder != b.SortOrder {
			return a.SortOrder < b.SortOrder
		}
		if a.DisplayName != b.DisplayName {
			return a.DisplayName < b.DisplayName
		}
		return a.CategoryID < b.CategoryID
	})
	for _, g := range ordered {
		view.Expenses.Categories = append(view.Expenses.Categories, *g)
		view.Expenses.add(g.ExpectedTotal, g.ActualTotal)
	}

	rev, exp := view.Revenue.Totals, view.Expenses.Totals
	view.Summary = Summary{
		Revenue:  newMetric(rev.ExpectedTotal, rev.ActualTotal),
		Expenses: newMetric(exp.ExpectedTotal, exp.ActualTotal),
		NetIncome: newMetric(
			rev.ExpectedTotal.Sub(exp.ExpectedTotal),
			rev.ActualTotal.Sub(exp.ActualTotal),
		),
	}
	return view
}

func newItemView(item *models.BudgetItem) ItemView {
	iv := ItemView{
		ID:             item.ID,
		Name:           item.Name,
		CategoryID:     item.CategoryID,
		ExpectedAmount: item.ExpectedAmount,
		ActualAmount:   item.ActualAmount,
		Variance:       item.Variance(),
		IsPaid:         item.IsPaid,
	}
	if item.Category != nil {
		iv.CategoryName = item.Category.DisplayName
	}
	if item.DueDate != nil {
		s := item.DueDate.Format(dueDateLayout)
		iv.DueDate = &s
	}
	return iv
}

func newCategoryGroup(item *models.BudgetItem) *CategoryGroup {
	g := &CategoryGroup{
		CategoryID: item.CategoryID,
		Name:       item.CategoryID,
		Items:      []ItemView{},
		Totals:     zeroTotals(),
	}
	if c := item.Category; c != nil {
		g.Name = c.Name
		g.DisplayName = c.DisplayName
		g.SortOrder = c.SortOrder
	}
	return g
}
