package calendar

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// dateParser attempts one interpretation of a string. Parsers are tried in
// order and the first success wins.
type dateParser func(s string) (time.Time, bool)

func layout(l string) dateParser {
	return func(s string) (time.Time, bool) {
		t, err := time.Parse(l, s)
		if err != nil {
			return time.Time{}, false
		}
		return t, true
	}
}

// dateParsers is ordered: ISO, US, EU, long form, abbreviated, then generic
// timestamp fallbacks. "03/04/2024" therefore resolves as March 4th, while
// "13/04/2024" only fits the day-first layout.
var dateParsers = []dateParser{
	layout("2006-01-02"),
	layout("01/02/2006"),
	layout("1/2/2006"),
	layout("02/01/2006"),
	layout("02.01.2006"),
	layout("2.1.2006"),
	layout("02-01-2006"),
	layout("January 2, 2006"),
	layout("January 2 2006"),
	layout("2 January 2006"),
	layout("Jan 2, 2006"),
	layout("Jan 2 2006"),
	layout("2 Jan 2006"),
	layout("02-Jan-2006"),
	layout(time.RFC3339),
	layout("2006-01-02T15:04:05"),
	layout("2006-01-02 15:04:05"),
	layout(time.RFC1123),
	layout(time.RFC1123Z),
}

// ParseFlexibleDate parses a loosely formatted date. The result is truncated
// to midnight UTC. ok is false when no known format matches.
func ParseFlexibleDate(s string) (t time.Time, ok bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, p := range dateParsers {
		if t, ok := p(s); ok {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
		}
	}
	return time.Time{}, false
}

type monthParser func(s string) (YearMonth, bool)

func monthLayout(l string) monthParser {
	return func(s string) (YearMonth, bool) {
		t, err := time.Parse(l, s)
		if err != nil {
			return YearMonth{}, false
		}
		return Of(t), true
	}
}

var monthParsers = []monthParser{
	monthLayout("January 2006"),
	monthLayout("Jan 2006"),
	monthLayout("January, 2006"),
	monthLayout("Jan, 2006"),
	monthLayout("2006-01"),
	monthLayout("01/2006"),
	monthLayout("1/2006"),
	monthLayout("01-2006"),
	monthLayout("2006/01"),
	func(s string) (YearMonth, bool) {
		t, ok := ParseFlexibleDate(s)
		if !ok {
			return YearMonth{}, false
		}
		return Of(t), true
	},
	splitMonth,
}

// ParseMonthString parses strings such as "March 2024", "Mar 2024",
// "2024-03" or "03/2024". ok is false on failure; callers fall back to their
// own default month.
func ParseMonthString(s string) (ym YearMonth, ok bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return YearMonth{}, false
	}
	for _, p := range monthParsers {
		if ym, ok := p(s); ok && ym.Valid() {
			return ym, true
		}
	}
	return YearMonth{}, false
}

var separators = regexp.MustCompile(`[\s,/\-.]+`)

// splitMonth is the last resort: exactly two tokens, one of which is a
// four-digit year and the other a month name or number.
func splitMonth(s string) (YearMonth, bool) {
	tokens := separators.Split(strings.TrimSpace(s), -1)
	if len(tokens) != 2 {
		return YearMonth{}, false
	}

	yearIdx := -1
	for i, tok := range tokens {
		if len(tok) == 4 && isDigits(tok) {
			yearIdx = i
			break
		}
	}
	if yearIdx < 0 {
		return YearMonth{}, false
	}

	year, _ := strconv.Atoi(tokens[yearIdx])
	month, ok := lookupMonth(tokens[1-yearIdx])
	if !ok {
		return YearMonth{}, false
	}
	return YearMonth{Year: year, Month: month}, true
}

func lookupMonth(tok string) (time.Month, bool) {
	if isDigits(tok) {
		n, err := strconv.Atoi(tok)
		if err != nil || n < 1 || n > 12 {
			return 0, false
		}
		return time.Month(n), true
	}

	tok = strings.ToLower(tok)
	if len(tok) < 3 {
		return 0, false
	}
	for m := time.January; m <= time.December; m++ {
		if strings.HasPrefix(strings.ToLower(m.String()), tok) {
			return m, true
		}
	}
	return 0, false
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
