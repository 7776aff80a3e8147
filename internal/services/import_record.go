package services

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"budgetly/internal/calendar"
	"budgetly/internal/models"
)

// Default category names for records that do not name one.
const (
	DefaultRevenueCategory = "income"
	DefaultExpenseCategory = "miscellaneous"
)

// Field aliases, in priority order. camelCase and snake_case spellings of
// the same field share a priority.
var (
	expectedAmountKeys = []string{"expectedAmount", "expected_amount", "budgetAmount", "budget_amount", "amount"}
	actualAmountKeys   = []string{"actualAmount", "actual_amount"}
	dueDateKeys        = []string{"dueDate", "due_date"}
	isPaidKeys         = []string{"isPaid", "is_paid"}
)

var paidStatuses = map[string]bool{"paid": true, "complete": true, "completed": true}

// ImportRecord is one loosely typed external record. Numbers are expected to
// be decoded as json.Number.
type ImportRecord map[string]any

// DecodeImportRecords reads either a bare JSON array of records or an object
// with a "records" array. Numbers are kept as json.Number.
func DecodeImportRecords(r io.Reader) ([]ImportRecord, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	trimmed := bytes.TrimSpace(raw)
	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()

	if len(trimmed) > 0 && trimmed[0] == '[' {
		var records []ImportRecord
		if err := dec.Decode(&records); err != nil {
			return nil, err
		}
		return records, nil
	}

	var wrapper struct {
		Records []ImportRecord `json:"records"`
	}
	if err := dec.Decode(&wrapper); err != nil {
		return nil, err
	}
	if wrapper.Records == nil {
		return nil, errors.New("missing records array")
	}
	return wrapper.Records, nil
}

// lookup returns the value of the first key present with a non-null value.
func (r ImportRecord) lookup(keys ...string) (any, bool) {
	for _, k := range keys {
		if v, ok := r[k]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

func (r ImportRecord) str(keys ...string) (string, bool) {
	v, ok := r.lookup(keys...)
	if !ok {
		return "", false
	}
	switch s := v.(type) {
	case string:
		return strings.TrimSpace(s), true
	case json.Number:
		return s.String(), true
	}
	return "", false
}

// Name returns the required item name.
func (r ImportRecord) Name() (string, error) {
	name, ok := r.str("name")
	if !ok || name == "" {
		return "", fmt.Errorf("name is required")
	}
	return name, nil
}

// CategoryType reads "type"; a missing type means expense.
func (r ImportRecord) CategoryType() (models.CategoryType, error) {
	v, ok := r.lookup("type")
	if !ok {
		return models.CategoryTypeExpense, nil
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("type must be a string")
	}
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "expense":
		return models.CategoryTypeExpense, nil
	case "revenue", "income":
		return models.CategoryTypeRevenue, nil
	}
	return "", fmt.Errorf("unknown category type %q", s)
}

// CategoryName returns the named category or the per-type default.
func (r ImportRecord) CategoryName(t models.CategoryType) string {
	if name, ok := r.str("category"); ok && name != "" {
		return name
	}
	if t == models.CategoryTypeRevenue {
		return DefaultRevenueCategory
	}
	return DefaultExpenseCategory
}

// Month returns the record's own month when it parses.
func (r ImportRecord) Month() (calendar.YearMonth, bool) {
	s, ok := r.str("month")
	if !ok {
		return calendar.YearMonth{}, false
	}
	return calendar.ParseMonthString(s)
}

// ExpectedAmountRaw returns the raw expected amount, honouring aliases.
func (r ImportRecord) ExpectedAmountRaw() any {
	v, _ := r.lookup(expectedAmountKeys...)
	return v
}

// ActualAmountRaw returns the raw actual amount.
func (r ImportRecord) ActualAmountRaw() any {
	v, _ := r.lookup(actualAmountKeys...)
	return v
}

// DueDate returns the parsed due date, or nil when absent or unparseable.
func (r ImportRecord) DueDate() *time.Time {
	s, ok := r.str(dueDateKeys...)
	if !ok || s == "" {
		return nil
	}
	t, ok := calendar.ParseFlexibleDate(s)
	if !ok {
		return nil
	}
	return &t
}

// IsPaid checks isPaid, then paid, then status.
func (r ImportRecord) IsPaid() bool {
	if v, ok := r.lookup(isPaidKeys...); ok {
		return truthy(v)
	}
	if v, ok := r.lookup("paid"); ok {
		return truthy(v)
	}
	if s, ok := r.str("status"); ok {
		return paidStatuses[strings.ToLower(s)]
	}
	return false
}

func truthy(v any) bool {
	switch b := v.(type) {
	case bool:
		return b
	case string:
		switch strings.ToLower(strings.TrimSpace(b)) {
		case "true", "yes", "y", "1":
			return true
		}
	case json.Number:
		f, err := b.Float64()
		return err == nil && f != 0
	case float64:
		return b != 0
	case int:
		return b != 0
	}
	return false
}

// label identifies a record in error messages: `record 2 ("Rent")`.
func (r ImportRecord) label(n int) string {
	if name, ok := r.str("name"); ok && name != "" {
		return "record " + strconv.Itoa(n) + " (" + strconv.Quote(name) + ")"
	}
	return "record " + strconv.Itoa(n)
}
