package services

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"budgetly/internal/calendar"
	"budgetly/internal/models"
	"budgetly/internal/testutil"
)

func TestWriteMonthCSV(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewExportService(NewMonthService(db))

	salary := testutil.CreateTestCategoryNamed(t, db, "salary", models.CategoryTypeRevenue, 0)
	housing := testutil.CreateTestCategoryNamed(t, db, "housing", models.CategoryTypeExpense, 10)
	food := testutil.CreateTestCategoryNamed(t, db, "food", models.CategoryTypeExpense, 20)
	month := testutil.CreateTestMonth(t, db, calendar.New(2024, 3))
	testutil.CreateTestItem(t, db, month.ID, salary.ID, "Paycheck", "3000", "3000")
	testutil.CreateTestPaidItem(t, db, month.ID, housing.ID, "Rent", "1200", "1200", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	testutil.CreateTestItem(t, db, month.ID, food.ID, "Groceries", "400", "420.5")

	var buf bytes.Buffer
	testutil.AssertNoError(t, svc.WriteMonthCSV(&buf, "", calendar.New(2024, 3)))

	want := strings.Join([]string{
		"Budget Report,March 2024",
		"",
		"REVENUE",
		"Name,Expected Amount,Actual Amount,Due Date,Paid,Variance",
		"Paycheck,3000.00,3000.00,,No,0.00",
		"Total Revenue,3000.00,3000.00,,,0.00",
		"",
		"EXPENSES",
		"Display housing",
		"Name,Expected Amount,Actual Amount,Due Date,Paid,Variance",
		"Rent,1200.00,1200.00,2024-03-01,Yes,0.00",
		"Display housing Subtotal,1200.00,1200.00,,,0.00",
		"",
		"Display food",
		"Name,Expected Amount,Actual Amount,Due Date,Paid,Variance",
		"Groceries,400.00,420.50,,No,20.50",
		"Display food Subtotal,400.00,420.50,,,20.50",
		"Total Expenses,1600.00,1620.50,,,20.50",
		"",
		"SUMMARY",
		"Name,Expected Amount,Actual Amount,Due Date,Paid,Variance",
		"Total Revenue,3000.00,3000.00,,,0.00",
		"Total Expenses,1600.00,1620.50,,,20.50",
		"Net Income,1400.00,1379.50,,,-20.50",
		"",
	}, "\n")

	if got := buf.String(); got != want {
		t.Errorf("unexpected CSV:\n%s\nwant:\n%s", got, want)
	}
}

func TestWriteHistoryCSV(t *testing.T) {
	t.Run("fills_missing_categories_with_zero", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewExportService(NewMonthService(db))

		salary := testutil.CreateTestCategoryNamed(t, db, "salary", models.CategoryTypeRevenue, 0)
		housing := testutil.CreateTestCategoryNamed(t, db, "housing", models.CategoryTypeExpense, 10)
		fun := testutil.CreateTestCategoryNamed(t, db, "fun", models.CategoryTypeExpense, 50)
		jan := testutil.CreateTestMonth(t, db, calendar.New(2024, 1))
		feb := testutil.CreateTestMonth(t, db, calendar.New(2024, 2))
		testutil.CreateTestItem(t, db, jan.ID, salary.ID, "Paycheck", "3000", "3000")
		testutil.CreateTestItem(t, db, jan.ID, housing.ID, "Rent", "1200", "1200")
		testutil.CreateTestItem(t, db, feb.ID, fun.ID, "Concert", "80", "95")

		var buf bytes.Buffer
		testutil.AssertNoError(t, svc.WriteHistoryCSV(&buf, "", calendar.New(2024, 1), calendar.New(2024, 3)))

		want := strings.Join([]string{
			"Metric,Jan 2024 Expected,Jan 2024 Actual,Feb 2024 Expected,Feb 2024 Actual",
			"Total Revenue,3000.00,3000.00,0.00,0.00",
			"Total Expenses,1200.00,1200.00,80.00,95.00",
			"Net Income,1800.00,1800.00,-80.00,-95.00",
			"Display housing,1200.00,1200.00,0.00,0.00",
			"Display fun,0.00,0.00,80.00,95.00",
			"",
		}, "\n")

		if got := buf.String(); got != want {
			t.Errorf("unexpected CSV:\n%s\nwant:\n%s", got, want)
		}
	})

	t.Run("invalid_range", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewExportService(NewMonthService(db))

		var buf bytes.Buffer
		err := svc.WriteHistoryCSV(&buf, "", calendar.New(2024, 3), calendar.New(2024, 1))
		testutil.AssertAppError(t, err, "INVALID_INPUT")
		if buf.Len() != 0 {
			t.Errorf("expected nothing written, got %q", buf.String())
		}
	})
}
