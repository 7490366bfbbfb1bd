package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestHumanizeTimeSince(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		at       time.Time
		expected string
	}{
		{"just now", now.Add(-30 * time.Second), "Just now"},
		{"one minute", now.Add(-1 * time.Minute), "1 minute ago"},
		{"minutes", now.Add(-5 * time.Minute), "5 minutes ago"},
		{"fifty nine minutes", now.Add(-59 * time.Minute), "59 minutes ago"},
		{"one hour", now.Add(-60 * time.Minute), "1 hour ago"},
		{"hours", now.Add(-3 * time.Hour), "3 hours ago"},
		{"one day", now.Add(-24 * time.Hour), "1 day ago"},
		{"days", now.Add(-49 * time.Hour), "2 days ago"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, HumanizeTimeSince(tt.at, now))
		})
	}
}

func TestFormatShortDate(t *testing.T) {
	assert.Equal(t, "Mar 5, 2026", FormatShortDate(time.Date(2026, 3, 5, 10, 0, 0, 0, time.UTC)))
	assert.Equal(t, "Dec 31, 2025", FormatShortDate(time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)))
}

func TestFormatMonthYear(t *testing.T) {
	assert.Equal(t, "January 2026", FormatMonthYear(time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)))
}
