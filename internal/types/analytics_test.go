package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWeekdayIndexIsMondayFirst(t *testing.T) {
	// 2026-03-02 is a Monday.
	monday := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 7; i++ {
		day := monday.AddDate(0, 0, i)
		assert.Equal(t, i, WeekdayIndex(day), "offset %d from Monday", i)
	}

	sunday := time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 6, WeekdayIndex(sunday))
}

func TestMonthIndex(t *testing.T) {
	assert.Equal(t, 0, MonthIndex("Jan"))
	assert.Equal(t, 11, MonthIndex("Dec"))
	assert.Equal(t, -1, MonthIndex("January"))
	assert.Equal(t, -1, MonthIndex(""))
}

func TestTrafficFillColors(t *testing.T) {
	assert.Equal(t, "#3b82f6", TrafficFillColors["Organic"])
	assert.Equal(t, "#22c55e", TrafficFillColors["Direct"])
	assert.Equal(t, "#f59e0b", TrafficFillColors["Referral"])
	assert.Equal(t, "#8b5cf6", TrafficFillColors["Social"])
	assert.Equal(t, "#ef4444", TrafficFillColors["Email"])
	assert.Len(t, TrafficFillColors, 5)
}
