package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAnalyticsPeriodStartTime(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		period   AnalyticsPeriod
		expected time.Time
	}{
		{AnalyticsPeriod24H, now.Add(-24 * time.Hour)},
		{AnalyticsPeriod7D, now.AddDate(0, 0, -7)},
		{AnalyticsPeriod30D, now.AddDate(0, 0, -30)},
		{AnalyticsPeriod90D, now.AddDate(0, 0, -90)},
	}
	for _, tt := range tests {
		t.Run(string(tt.period), func(t *testing.T) {
			got := tt.period.StartTime(now)
			assert.Equal(t, tt.expected, got)
			assert.True(t, got.Before(now))
		})
	}
}

func TestAnalyticsPeriodStartTimeCrossesMonthBoundary(t *testing.T) {
	now := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	got := AnalyticsPeriod7D.StartTime(now)
	assert.Equal(t, time.Date(2026, 2, 23, 0, 0, 0, 0, time.UTC), got)
}

func TestAnalyticsPeriodStartTimeCrossesYearBoundary(t *testing.T) {
	now := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	got := AnalyticsPeriod30D.StartTime(now)
	assert.Equal(t, time.Date(2025, 12, 11, 0, 0, 0, 0, time.UTC), got)
}

func TestParsePeriodOr(t *testing.T) {
	assert.Equal(t, AnalyticsPeriod90D, ParsePeriodOr("90d", DefaultRevenuePeriod))
	assert.Equal(t, AnalyticsPeriod24H, ParsePeriodOr("24h", DefaultRevenuePeriod))

	// Unknown and empty tokens fall back instead of erroring.
	assert.Equal(t, DefaultRevenuePeriod, ParsePeriodOr("1y", DefaultRevenuePeriod))
	assert.Equal(t, DefaultActivityPeriod, ParsePeriodOr("", DefaultActivityPeriod))
}

func TestAnalyticsPeriodValidate(t *testing.T) {
	assert.NoError(t, AnalyticsPeriod7D.Validate())
	assert.Error(t, AnalyticsPeriod("weekly").Validate())
}
