package services

import (
	"encoding/json"
	"strings"
	"testing"

	"budgetly/internal/calendar"
	"budgetly/internal/models"
	"budgetly/internal/testutil"
)

func decodeRecords(t *testing.T, raw string) []ImportRecord {
	t.Helper()
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()
	var records []ImportRecord
	if err := dec.Decode(&records); err != nil {
		t.Fatalf("failed to decode records: %v", err)
	}
	return records
}

func TestImportBatch(t *testing.T) {
	t.Run("partial_failure", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewImportService(db, 0)

		records := decodeRecords(t, `[
			{"name": "Rent", "category": "housing", "expectedAmount": 1200},
			{"name": "Bogus", "type": "asset", "amount": 10},
			{"name": "Salary", "type": "revenue", "amount": "3,000.00", "actualAmount": 3000}
		]`)

		result, err := svc.ImportBatch("", calendar.New(2024, 3), records)
		testutil.AssertNoError(t, err)

		if result.Success != 2 || result.Failed != 1 {
			t.Errorf("expected 2 success / 1 failed, got %d / %d", result.Success, result.Failed)
		}
		if len(result.Errors) != 1 || !strings.HasPrefix(result.Errors[0], `record 2 ("Bogus"): `) {
			t.Errorf("unexpected errors: %v", result.Errors)
		}
		if n := testutil.CountRows(t, db, &models.BudgetItem{}, ""); n != 2 {
			t.Errorf("expected 2 persisted items, got %d", n)
		}
		if result.MonthsCreated != 1 {
			t.Errorf("expected 1 month created, got %d", result.MonthsCreated)
		}
		if result.CategoriesCreated != 2 {
			t.Errorf("expected 2 categories created, got %d", result.CategoriesCreated)
		}
	})

	t.Run("normalizes_fields", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewImportService(db, 0)

		records := decodeRecords(t, `[
			{"name": "Car", "category": "car_payment", "budgetAmount": "$1,200.50", "actual_amount": "-50", "due_date": "03/15/2024", "status": "Completed"},
			{"name": "Refund", "type": "income", "amount": "-50"}
		]`)

		result, err := svc.ImportBatch("", calendar.New(2024, 3), records)
		testutil.AssertNoError(t, err)
		if result.Success != 2 {
			t.Fatalf("expected 2 successes, got %+v", result)
		}

		var car models.BudgetItem
		if err := db.Preload("Category").Where("name = ?", "Car").First(&car).Error; err != nil {
			t.Fatalf("failed to load item: %v", err)
		}
		testutil.AssertAmount(t, "car expected", "1200.50", car.ExpectedAmount)
		testutil.AssertAmount(t, "car actual", "50", car.ActualAmount)
		if !car.IsPaid {
			t.Error("expected completed status to mark the item paid")
		}
		if car.DueDate == nil || car.DueDate.Format("2006-01-02") != "2024-03-15" {
			t.Errorf("unexpected due date %v", car.DueDate)
		}
		if car.Category.DisplayName != "Car Payment" || car.Category.Type != models.CategoryTypeExpense {
			t.Errorf("unexpected category %+v", car.Category)
		}

		var refund models.BudgetItem
		if err := db.Preload("Category").Where("name = ?", "Refund").First(&refund).Error; err != nil {
			t.Fatalf("failed to load item: %v", err)
		}
		testutil.AssertAmount(t, "refund expected", "-50", refund.ExpectedAmount)
		if refund.Category.Name != DefaultRevenueCategory || refund.Category.Type != models.CategoryTypeRevenue {
			t.Errorf("expected default revenue category, got %+v", refund.Category)
		}
	})

	t.Run("exponent_amounts_and_range", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewImportService(db, 0)

		records := decodeRecords(t, `[
			{"name": "Bonus", "type": "revenue", "amount": 1e3, "actualAmount": 2.5e-1},
			{"name": "Yacht", "category": "leisure", "amount": 1e10}
		]`)

		result, err := svc.ImportBatch("", calendar.New(2024, 3), records)
		testutil.AssertNoError(t, err)
		if result.Success != 1 || result.Failed != 1 {
			t.Fatalf("expected 1 success / 1 failed, got %+v", result)
		}
		if !strings.HasPrefix(result.Errors[0], `record 2 ("Yacht"): amount exceeds`) {
			t.Errorf("unexpected error: %v", result.Errors)
		}

		var bonus models.BudgetItem
		if err := db.Where("name = ?", "Bonus").First(&bonus).Error; err != nil {
			t.Fatalf("failed to load item: %v", err)
		}
		testutil.AssertAmount(t, "bonus expected", "1000", bonus.ExpectedAmount)
		testutil.AssertAmount(t, "bonus actual", "0.25", bonus.ActualAmount)
		if n := testutil.CountRows(t, db, &models.Category{}, "name = ?", "leisure"); n != 0 {
			t.Errorf("expected rejected record to leave no category, got %d", n)
		}
	})

	t.Run("record_month_overrides_target", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewImportService(db, 0)

		records := decodeRecords(t, `[
			{"name": "A", "month": "January 2024", "amount": 1},
			{"name": "B", "month": "01/2024", "amount": 2},
			{"name": "C", "month": "not a month", "amount": 3}
		]`)

		result, err := svc.ImportBatch("", calendar.New(2024, 3), records)
		testutil.AssertNoError(t, err)

		if result.MonthsCreated != 2 {
			t.Errorf("expected January and March to be created, got %d", result.MonthsCreated)
		}
		jan := testutil.CountRows(t, db, &models.BudgetMonth{}, "year = ? AND month = ?", 2024, 1)
		mar := testutil.CountRows(t, db, &models.BudgetMonth{}, "year = ? AND month = ?", 2024, 3)
		if jan != 1 || mar != 1 {
			t.Errorf("expected one January and one March month, got %d and %d", jan, mar)
		}
	})

	t.Run("reuses_categories_within_batch", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewImportService(db, 0)

		records := decodeRecords(t, `[
			{"name": "Lunch"},
			{"name": "Dinner", "category": "MISCELLANEOUS"}
		]`)

		result, err := svc.ImportBatch("", calendar.New(2024, 3), records)
		testutil.AssertNoError(t, err)

		if result.CategoriesCreated != 1 {
			t.Errorf("expected 1 category created, got %d", result.CategoriesCreated)
		}
		if n := testutil.CountRows(t, db, &models.Category{}, "name = ?", DefaultExpenseCategory); n != 1 {
			t.Errorf("expected a single miscellaneous category, got %d", n)
		}
	})

	t.Run("rejected_record_creates_nothing", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewImportService(db, 0)

		records := decodeRecords(t, `[
			{"type": "expense", "category": "ghost", "month": "2024-05"}
		]`)

		result, err := svc.ImportBatch("", calendar.New(2024, 3), records)
		testutil.AssertNoError(t, err)

		if result.Failed != 1 || result.Errors[0] != "record 1: name is required" {
			t.Errorf("unexpected result %+v", result)
		}
		if result.MonthsCreated != 0 || result.CategoriesCreated != 0 {
			t.Errorf("expected no creations to be counted, got %+v", result)
		}
		if n := testutil.CountRows(t, db, &models.BudgetMonth{}, ""); n != 0 {
			t.Errorf("expected no months, got %d", n)
		}
		if n := testutil.CountRows(t, db, &models.Category{}, ""); n != 0 {
			t.Errorf("expected no categories, got %d", n)
		}
	})

	t.Run("carry_forward_on_import", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewImportService(db, 0)

		cat := testutil.CreateTestCategoryNamed(t, db, "housing", models.CategoryTypeExpense, 10)
		feb := testutil.CreateTestMonth(t, db, calendar.New(2024, 2))
		testutil.CreateTestItem(t, db, feb.ID, cat.ID, "Rent", "1200", "1200")

		records := decodeRecords(t, `[{"name": "Gym", "category": "housing", "amount": 40}]`)
		result, err := svc.ImportBatch("", calendar.New(2024, 3), records)
		testutil.AssertNoError(t, err)

		if result.CategoriesCreated != 0 {
			t.Errorf("expected existing category to be reused, got %d created", result.CategoriesCreated)
		}
		var march models.BudgetMonth
		if err := db.Where("year = ? AND month = ?", 2024, 3).First(&march).Error; err != nil {
			t.Fatalf("failed to load March: %v", err)
		}
		if n := testutil.CountRows(t, db, &models.BudgetItem{}, "budget_month_id = ?", march.ID); n != 2 {
			t.Errorf("expected carried Rent plus imported Gym, got %d", n)
		}
	})

	t.Run("too_many_records", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewImportService(db, 1)

		records := decodeRecords(t, `[{"name": "a"}, {"name": "b"}]`)
		_, err := svc.ImportBatch("", calendar.New(2024, 3), records)
		testutil.AssertAppError(t, err, "TOO_MANY_RECORDS")
	})

	t.Run("invalid_target", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewImportService(db, 0)

		_, err := svc.ImportBatch("", calendar.New(2024, 13), nil)
		testutil.AssertAppError(t, err, "INVALID_MONTH")
	})
}

func TestImportRecord(t *testing.T) {
	t.Run("expected_amount_priority", func(t *testing.T) {
		rec := ImportRecord{"amount": json.Number("1"), "budgetAmount": json.Number("2"), "expectedAmount": json.Number("3")}
		if got := rec.ExpectedAmountRaw(); got != json.Number("3") {
			t.Errorf("expected expectedAmount to win, got %v", got)
		}
		delete(rec, "expectedAmount")
		if got := rec.ExpectedAmountRaw(); got != json.Number("2") {
			t.Errorf("expected budgetAmount to win, got %v", got)
		}
	})

	t.Run("null_counts_as_absent", func(t *testing.T) {
		rec := ImportRecord{"expectedAmount": nil, "amount": json.Number("7"), "type": nil}
		if got := rec.ExpectedAmountRaw(); got != json.Number("7") {
			t.Errorf("expected fallback to amount, got %v", got)
		}
		if ct, err := rec.CategoryType(); err != nil || ct != models.CategoryTypeExpense {
			t.Errorf("expected expense default, got %v %v", ct, err)
		}
	})

	t.Run("is_paid_precedence", func(t *testing.T) {
		cases := []struct {
			rec  ImportRecord
			want bool
		}{
			{ImportRecord{"isPaid": false, "status": "paid"}, false},
			{ImportRecord{"paid": "yes"}, true},
			{ImportRecord{"status": "PAID"}, true},
			{ImportRecord{"status": "pending"}, false},
			{ImportRecord{"is_paid": json.Number("1")}, true},
			{ImportRecord{}, false},
		}
		for i, c := range cases {
			if got := c.rec.IsPaid(); got != c.want {
				t.Errorf("case %d: expected %v, got %v", i, c.want, got)
			}
		}
	})

	t.Run("type_values", func(t *testing.T) {
		for in, want := range map[string]models.CategoryType{
			"Revenue": models.CategoryTypeRevenue,
			"income":  models.CategoryTypeRevenue,
			"EXPENSE": models.CategoryTypeExpense,
		} {
			got, err := ImportRecord{"type": in}.CategoryType()
			if err != nil || got != want {
				t.Errorf("type %q: expected %s, got %s (%v)", in, want, got, err)
			}
		}
		if _, err := (ImportRecord{"type": json.Number("1")}).CategoryType(); err == nil {
			t.Error("expected non-string type to be rejected")
		}
	})

	t.Run("unparseable_due_date", func(t *testing.T) {
		if d := (ImportRecord{"dueDate": "someday"}).DueDate(); d != nil {
			t.Errorf("expected nil due date, got %v", d)
		}
	})
}
