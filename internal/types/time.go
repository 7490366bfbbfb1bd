package types

import (
	"fmt"
	"time"
)

// HumanizeTimeSince renders a past timestamp as a relative string the way
// the dashboard tables show it: "Just now", "5 minutes ago", "3 hours ago",
// "2 days ago".
func HumanizeTimeSince(t time.Time, now time.Time) string {
	diff := now.Sub(t)
	minutes := int(diff.Minutes())
	hours := int(diff.Hours())
	days := int(diff.Hours() / 24)

	switch {
	case minutes < 1:
		return "Just now"
	case minutes < 60:
		return fmt.Sprintf("%d minute%s ago", minutes, plural(minutes))
	case hours < 24:
		return fmt.Sprintf("%d hour%s ago", hours, plural(hours))
	default:
		return fmt.Sprintf("%d day%s ago", days, plural(days))
	}
}

// FormatShortDate renders a timestamp as "Jan 2, 2026"
func FormatShortDate(t time.Time) string {
	return fmt.Sprintf("%s %d, %d", MonthNames[int(t.Month())-1], t.Day(), t.Year())
}

// FormatMonthYear renders a timestamp as "January 2026"
func FormatMonthYear(t time.Time) string {
	return fmt.Sprintf("%s %d", t.Month().String(), t.Year())
}

func plural(n int) string {
	if n > 1 {
		return "s"
	}
	return ""
}
