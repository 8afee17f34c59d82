package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCalculateWeekNumber(t *testing.T) {
	tests := []struct {
		date, start string
		want        int
	}{
		{"2024-01-01", "2024-01-01", 1},
		{"2024-01-07", "2024-01-01", 1},
		{"2024-01-08", "2024-01-01", 2},
		{"2024-01-15", "2024-01-01", 3},
		{"2024-03-01", "2024-01-01", 9},
		{"2023-12-25", "2024-01-01", 1},
		{"2024-01-08", "", 1},
		{"2024-01-08", "not-a-date", 1},
		{"garbage", "2024-01-01", 1},
		// 2024-03-10 is a DST change in many zones; dates are UTC so it does not matter.
		{"2024-03-11", "2024-03-04", 2},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, CalculateWeekNumber(tc.date, tc.start), "%s from %s", tc.date, tc.start)
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-02-29")
	assert.NoError(t, err)
	assert.Equal(t, time.Thursday, d.Weekday())

	for _, bad := range []string{"", "2024-2-29", "2023-02-29", "29/02/2024", "2024-02-29T00:00:00Z"} {
		_, err := ParseDate(bad)
		assert.ErrorIs(t, err, ErrInvalidDate, bad)
	}
}

func TestValidSchedule(t *testing.T) {
	assert.True(t, validSchedule(nil))
	assert.True(t, validSchedule([]int{0, 6}))
	assert.False(t, validSchedule([]int{1, 7}))
	assert.False(t, validSchedule([]int{-1}))
}

func TestTodayUsesLocation(t *testing.T) {
	// 23:30 UTC on Jan 7 is already Jan 8 in Manila (UTC+8).
	now := time.Date(2024, 1, 7, 23, 30, 0, 0, time.UTC)
	manila := time.FixedZone("PHT", 8*60*60)

	assert.Equal(t, "2024-01-07", today(now, time.UTC).Format(DateLayout))
	assert.Equal(t, "2024-01-08", today(now, manila).Format(DateLayout))
}
