package dateutils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"ledgerlens/internal/models"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func TestParseTokenTwoSegments(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		year     int
		order    models.DateOrder
		expected time.Time
		ok       bool
	}{
		{"month-day default", "01/05", 2024, models.OrderUnknown, date(2024, 1, 5), true},
		{"month-day explicit", "01/05", 2024, models.OrderMonthDay, date(2024, 1, 5), true},
		{"day-month order", "01/05", 2024, models.OrderDayMonth, date(2024, 5, 1), true},
		{"first segment over 12 forces day-month", "13/05", 2024, models.OrderMonthDay, date(2024, 5, 13), true},
		{"second segment over 12 forces month-day", "05/13", 2024, models.OrderDayMonth, date(2024, 5, 13), true},
		{"dash separator", "01-05", 2024, models.OrderUnknown, date(2024, 1, 5), true},
		{"impossible day", "02/30", 2024, models.OrderUnknown, time.Time{}, false},
		{"month out of range", "14/13", 2024, models.OrderUnknown, time.Time{}, false},
		{"no default year", "01/05", 0, models.OrderUnknown, time.Time{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseToken(tt.raw, tt.year, tt.order)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.expected, got)
			}
		})
	}
}

func TestParseTokenFullDates(t *testing.T) {
	tests := []struct {
		raw      string
		expected time.Time
	}{
		{"01/15/2024", date(2024, 1, 15)},
		{"01/15/24", date(2024, 1, 15)},
		{"01-15-2024", date(2024, 1, 15)},
		{"01-15-24", date(2024, 1, 15)},
		{"2024-01-15", date(2024, 1, 15)},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok := ParseToken(tt.raw, 0, models.OrderUnknown)
			assert.True(t, ok)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestParseTokenGarbage(t *testing.T) {
	_, ok := ParseToken("not a date", 2024, models.OrderUnknown)
	assert.False(t, ok)
}
