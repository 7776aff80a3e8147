// Package calendar holds the year/month value used to address budget months
// and the lenient date parsers used when ingesting external data.
package calendar

import (
	"fmt"
	"time"
)

// YearMonth identifies a calendar month. It is passed explicitly through the
// request chain; there is no shared "selected month".
type YearMonth struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
}

// New builds a YearMonth from plain integers.
func New(year, month int) YearMonth {
	return YearMonth{Year: year, Month: time.Month(month)}
}

// Of returns the YearMonth containing t.
func Of(t time.Time) YearMonth {
	return YearMonth{Year: t.Year(), Month: t.Month()}
}

// Valid reports whether the month is within 1-12 and the year has four digits.
func (ym YearMonth) Valid() bool {
	return ym.Month >= time.January && ym.Month <= time.December &&
		ym.Year >= 1000 && ym.Year <= 9999
}

// Prev returns the preceding month, rolling January back to December.
func (ym YearMonth) Prev() YearMonth {
	if ym.Month == time.January {
		return YearMonth{Year: ym.Year - 1, Month: time.December}
	}
	return YearMonth{Year: ym.Year, Month: ym.Month - 1}
}

// Next returns the following month, rolling December forward to January.
func (ym YearMonth) Next() YearMonth {
	if ym.Month == time.December {
		return YearMonth{Year: ym.Year + 1, Month: time.January}
	}
	return YearMonth{Year: ym.Year, Month: ym.Month + 1}
}

// Before reports whether ym is strictly earlier than other.
func (ym YearMonth) Before(other YearMonth) bool {
	if ym.Year != other.Year {
		return ym.Year < other.Year
	}
	return ym.Month < other.Month
}

// MonthsUntil returns the number of months from ym to other, inclusive of
// both ends. It is zero when other is before ym.
func (ym YearMonth) MonthsUntil(other YearMonth) int {
	n := (other.Year-ym.Year)*12 + int(other.Month-ym.Month) + 1
	if n < 0 {
		return 0
	}
	return n
}

// Key is the memo/sort key used across the codebase, e.g. "2024-03".
func (ym YearMonth) Key() string {
	return fmt.Sprintf("%04d-%02d", ym.Year, int(ym.Month))
}

// String renders the long label, e.g. "March 2024".
func (ym YearMonth) String() string {
	return fmt.Sprintf("%s %d", ym.Month, ym.Year)
}

// Short renders the abbreviated label, e.g. "Mar 2024".
func (ym YearMonth) Short() string {
	return fmt.Sprintf("%s %d", ym.Month.String()[:3], ym.Year)
}
