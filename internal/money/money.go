// Package money normalizes loosely typed amounts into fixed-scale decimals and
// holds the percentage rule shared by every variance figure.
package money

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"

	"budgetly/internal/models"
)

// Scale is the number of fractional digits persisted for every amount.
const Scale = 2

var hundred = decimal.NewFromInt(100)

// MaxAmount is the largest magnitude a NUMERIC(12,2) column holds.
var MaxAmount = decimal.RequireFromString("9999999999.99")

// InRange reports whether d, rounded to Scale, fits the amount columns.
func InRange(d decimal.Decimal) bool {
	return d.Round(Scale).Abs().LessThanOrEqual(MaxAmount)
}

// Normalize coerces a raw external amount into a decimal. Strings may carry
// currency symbols, thousands separators or whitespace; everything except
// digits, sign characters and the decimal point is discarded. Anything that
// still cannot be parsed becomes zero. Expense amounts are made positive;
// revenue keeps its sign.
func Normalize(raw any, categoryType models.CategoryType) decimal.Decimal {
	amount := parse(raw)
	if categoryType == models.CategoryTypeExpense {
		amount = amount.Abs()
	}
	return amount.Round(Scale)
}

// Percentage returns variance / expected * 100 rounded to two places. It is
// zero whenever expected is zero.
func Percentage(variance, expected decimal.Decimal) float64 {
	if expected.IsZero() {
		return 0
	}
	return variance.Div(expected).Mul(hundred).Round(2).InexactFloat64()
}

func parse(raw any) decimal.Decimal {
	switch v := raw.(type) {
	case nil:
		return decimal.Zero
	case decimal.Decimal:
		return v
	case json.Number:
		if d, err := decimal.NewFromString(v.String()); err == nil {
			return d
		}
		return parseString(v.String())
	case string:
		return parseString(v)
	case float64:
		return decimal.NewFromFloat(v)
	case float32:
		return decimal.NewFromFloat32(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int32:
		return decimal.NewFromInt32(v)
	case int64:
		return decimal.NewFromInt(v)
	}
	return decimal.Zero
}

func parseString(s string) decimal.Decimal {
	cleaned := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '-' || r == '+' || r == '.' {
			return r
		}
		return -1
	}, s)
	if cleaned == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero
	}
	return d
}
