package types

import (
	"time"

	ierr "github.com/pulseboard/pulseboard/internal/errors"
)

// AnalyticsPeriod is the symbolic time window accepted by the analytics APIs
type AnalyticsPeriod string

const (
	AnalyticsPeriod24H AnalyticsPeriod = "24h"
	AnalyticsPeriod7D  AnalyticsPeriod = "7d"
	AnalyticsPeriod30D AnalyticsPeriod = "30d"
	AnalyticsPeriod90D AnalyticsPeriod = "90d"
)

// Defaults applied per view when the query carries no period or an unknown one.
const (
	DefaultRevenuePeriod  = AnalyticsPeriod30D
	DefaultActivityPeriod = AnalyticsPeriod7D
	DefaultTrafficPeriod  = AnalyticsPeriod30D
)

// Validate validates the analytics period
func (p AnalyticsPeriod) Validate() error {
	switch p {
	case AnalyticsPeriod24H, AnalyticsPeriod7D, AnalyticsPeriod30D, AnalyticsPeriod90D:
		return nil
	default:
		return ierr.NewErrorf("invalid analytics period: %s", p).
			WithHint("period must be one of 24h, 7d, 30d, 90d").
			Mark(ierr.ErrValidation)
	}
}

// StartTime resolves the period to an absolute window start relative to now.
// Day-sized offsets use calendar-aware date arithmetic so month and year
// boundaries roll over correctly.
func (p AnalyticsPeriod) StartTime(now time.Time) time.Time {
	switch p {
	case AnalyticsPeriod24H:
		return now.Add(-24 * time.Hour)
	case AnalyticsPeriod7D:
		return now.AddDate(0, 0, -7)
	case AnalyticsPeriod90D:
		return now.AddDate(0, 0, -90)
	default:
		return now.AddDate(0, 0, -30)
	}
}

// ParsePeriodOr parses a period token, falling back to the view's default
// instead of erroring on unknown tokens.
func ParsePeriodOr(raw string, fallback AnalyticsPeriod) AnalyticsPeriod {
	p := AnalyticsPeriod(raw)
	if p.Validate() != nil {
		return fallback
	}
	return p
}
