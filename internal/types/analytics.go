package types

import "time"

// MonthNames is the canonical ordered month bucket set for revenue views
var MonthNames = []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// WeekdayNames is the canonical Monday-first bucket set for activity views
var WeekdayNames = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// TrafficFillColors maps the canonical traffic sources to their chart colors.
// Sources without a stored fill and not present here get TrafficFillFallback.
var TrafficFillColors = map[string]string{
	"Organic":  "#3b82f6",
	"Direct":   "#22c55e",
	"Referral": "#f59e0b",
	"Social":   "#8b5cf6",
	"Email":    "#ef4444",
}

// TrafficFillFallback is the neutral color for unknown traffic sources
const TrafficFillFallback = "#6b7280"

// MonthIndex returns the zero-based index of a short month name, or -1
func MonthIndex(month string) int {
	for i, name := range MonthNames {
		if name == month {
			return i
		}
	}
	return -1
}

// WeekdayIndex normalizes a time's weekday to the Monday-first bucket index
func WeekdayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// KPITrend indicates the direction of a KPI change
type KPITrend string

const (
	KPITrendUp   KPITrend = "up"
	KPITrendDown KPITrend = "down"
)
