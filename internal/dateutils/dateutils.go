// Package dateutils parses the date tokens found on statement lines.
package dateutils

import (
	"strconv"
	"strings"
	"time"

	"ledgerlens/internal/models"
)

// FullDateFormats are the recognized layouts for date tokens that carry a
// year. Go's numeric parsing accepts both padded and unpadded segments.
var FullDateFormats = []string{
	"01/02/2006",
	"01/02/06",
	"01-02-2006",
	"01-02-06",
	"2006-01-02",
}

// ParseToken parses a statement date token. Two-segment tokens (no year) use
// defaultYear and the inferred date order; an unambiguous segment (> 12)
// overrides the order. Tokens carrying a year go through FullDateFormats.
// Returns false when the token cannot be parsed, in which case callers keep
// the raw token instead of refusing the line.
func ParseToken(raw string, defaultYear int, order models.DateOrder) (time.Time, bool) {
	parts := splitDate(raw)
	if len(parts) == 2 && defaultYear > 0 {
		a, errA := strconv.Atoi(parts[0])
		b, errB := strconv.Atoi(parts[1])
		if errA != nil || errB != nil {
			return time.Time{}, false
		}
		var month, day int
		switch {
		case a > 12 && b <= 12:
			day, month = a, b
		case b > 12 && a <= 12:
			month, day = a, b
		case order == models.OrderDayMonth:
			day, month = a, b
		default:
			month, day = a, b
		}
		return makeDate(defaultYear, month, day)
	}
	for _, layout := range FullDateFormats {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// makeDate builds a date and rejects out-of-range month/day combinations,
// which time.Date would otherwise normalize silently.
func makeDate(year, month, day int) (time.Time, bool) {
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Month() != time.Month(month) || t.Day() != day {
		return time.Time{}, false
	}
	return t, true
}

func splitDate(raw string) []string {
	return strings.FieldsFunc(raw, func(r rune) bool {
		return r == '/' || r == '-'
	})
}
