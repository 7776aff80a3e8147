package services

import (
	"encoding/csv"
	"io"
	"sort"

	"github.com/shopspring/decimal"

	"budgetly/internal/calendar"
	apperrors "budgetly/internal/errors"
)

var reportHeader = []string{"Name", "Expected Amount", "Actual Amount", "Due Date", "Paid", "Variance"}

// exportService renders month views as CSV reports.
type exportService struct {
	months MonthServicer
}

// NewExportService creates a new ExportServicer reading views through months.
func NewExportService(months MonthServicer) ExportServicer {
	return &exportService{months: months}
}

// WriteMonthCSV writes the report of a single month. The month is resolved
// (and therefore created) like any other month read.
func (s *exportService) WriteMonthCSV(w io.Writer, ownerID string, ym calendar.YearMonth) error {
	view, err := s.months.GetMonthView(ownerID, ym)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	writeMonthReport(cw, view)
	cw.Flush()
	if err := cw.Error(); err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// WriteHistoryCSV writes one expected/actual column pair per existing month
// in [from, to].
func (s *exportService) WriteHistoryCSV(w io.Writer, ownerID string, from, to calendar.YearMonth) error {
	views, err := s.months.GetExistingMonthViews(ownerID, from, to)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	writeHistoryReport(cw, views)
	cw.Flush()
	if err := cw.Error(); err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

func writeMonthReport(cw *csv.Writer, view *MonthView) {
	blank := []string{}

	_ = cw.Write([]string{"Budget Report", view.Month.Label})
	_ = cw.Write(blank)

	_ = cw.Write([]string{"REVENUE"})
	_ = cw.Write(reportHeader)
	for _, item := range view.Revenue.Items {
		_ = cw.Write(itemRow(item))
	}
	_ = cw.Write(totalRow("Total Revenue", view.Revenue.Totals))
	_ = cw.Write(blank)

	_ = cw.Write([]string{"EXPENSES"})
	for i, group := range view.Expenses.Categories {
		if i > 0 {
			_ = cw.Write(blank)
		}
		_ = cw.Write([]string{group.DisplayName})
		_ = cw.Write(reportHeader)
		for _, item := range group.Items {
			_ = cw.Write(itemRow(item))
		}
		_ = cw.Write(totalRow(group.DisplayName+" Subtotal", group.Totals))
	}
	_ = cw.Write(totalRow("Total Expenses", view.Expenses.Totals))
	_ = cw.Write(blank)

	_ = cw.Write([]string{"SUMMARY"})
	_ = cw.Write(reportHeader)
	_ = cw.Write(metricRow("Total Revenue", view.Summary.Revenue))
	_ = cw.Write(metricRow("Total Expenses", view.Summary.Expenses))
	_ = cw.Write(metricRow("Net Income", view.Summary.NetIncome))
}

func itemRow(item ItemView) []string {
	due := ""
	if item.DueDate != nil {
		due = *item.DueDate
	}
	paid := "No"
	if item.IsPaid {
		paid = "Yes"
	}
	return []string{item.Name, amount(item.ExpectedAmount), amount(item.ActualAmount), due, paid, amount(item.Variance)}
}

func totalRow(label string, t Totals) []string {
	return []string{label, amount(t.ExpectedTotal), amount(t.ActualTotal), "", "", amount(t.Variance)}
}

func metricRow(label string, m Metric) []string {
	return []string{label, amount(m.Expected), amount(m.Actual), "", "", amount(m.Variance)}
}

func amount(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// historyCategory is an expense category seen in at least one month.
type historyCategory struct {
	id          string
	displayName string
	sortOrder   int
}

func writeHistoryReport(cw *csv.Writer, views []*MonthView) {
	header := []string{"Metric"}
	for _, v := range views {
		label := v.Period().Short()
		header = append(header, label+" Expected", label+" Actual")
	}
	_ = cw.Write(header)

	metricLine := func(label string, pick func(Summary) Metric) []string {
		row := []string{label}
		for _, v := range views {
			m := pick(v.Summary)
			row = append(row, amount(m.Expected), amount(m.Actual))
		}
		return row
	}
	_ = cw.Write(metricLine("Total Revenue", func(s Summary) Metric { return s.Revenue }))
	_ = cw.Write(metricLine("Total Expenses", func(s Summary) Metric { return s.Expenses }))
	_ = cw.Write(metricLine("Net Income", func(s Summary) Metric { return s.NetIncome }))

	seen := map[string]bool{}
	var categories []historyCategory
	for _, v := range views {
		for _, g := range v.Expenses.Categories {
			if seen[g.CategoryID] {
				continue
			}
			seen[g.CategoryID] = true
			categories = append(categories, historyCategory{id: g.CategoryID, displayName: g.DisplayName, sortOrder: g.SortOrder})
		}
	}
	sort.SliceStable(categories, func(i, j int) bool {
		if categories[i].sortOrder != categories[j].sortOrder {
			return categories[i].sortOrder < categories[j].sortOrder
		}
		return categories[i].displayName < categories[j].displayName
	})

	for _, c := range categories {
		row := []string{c.displayName}
		for _, v := range views {
			expected, actual := decimal.Zero, decimal.Zero
			for _, g := range v.Expenses.Categories {
				if g.CategoryID == c.id {
					expected, actual = g.ExpectedTotal, g.ActualTotal
					break
				}
			}
			row = append(row, amount(expected), amount(actual))
		}
		_ = cw.Write(row)
	}
}
