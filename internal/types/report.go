package types

import (
	"time"

	ierr "github.com/pulseboard/pulseboard/internal/errors"
)

// ReportType selects which analytics feed a generated report covers
type ReportType string

const (
	ReportTypeRevenue   ReportType = "Revenue"
	ReportTypeAnalytics ReportType = "Analytics"
	ReportTypeGrowth    ReportType = "Growth"
	ReportTypeTeam      ReportType = "Team"
)

// Validate validates the report type
func (t ReportType) Validate() error {
	switch t {
	case ReportTypeRevenue, ReportTypeAnalytics, ReportTypeGrowth, ReportTypeTeam:
		return nil
	default:
		return ierr.NewErrorf("invalid report type: %s", t).
			WithHint("type must be one of Revenue, Analytics, Growth, Team").
			Mark(ierr.ErrValidation)
	}
}

// ReportStatus is the report generation state machine. Generating is the
// sole initial state; ready and failed are terminal.
type ReportStatus string

const (
	ReportStatusGenerating ReportStatus = "generating"
	ReportStatusReady      ReportStatus = "ready"
	ReportStatusFailed     ReportStatus = "failed"
)

// Validate validates the report status
func (s ReportStatus) Validate() error {
	switch s {
	case ReportStatusGenerating, ReportStatusReady, ReportStatusFailed:
		return nil
	default:
		return ierr.NewErrorf("invalid report status: %s", s).
			Mark(ierr.ErrValidation)
	}
}

// IsTerminal reports whether the status admits no further transitions
func (s ReportStatus) IsTerminal() bool {
	return s == ReportStatusReady || s == ReportStatusFailed
}

// IsValidReportStatusTransition enforces the generating -> ready|failed
// state machine.
func IsValidReportStatusTransition(from, to ReportStatus) bool {
	if from != ReportStatusGenerating {
		return false
	}
	return to == ReportStatusReady || to == ReportStatusFailed
}

// ScheduleFrequency is how often a scheduled report regenerates
type ScheduleFrequency string

const (
	ScheduleFrequencyDaily     ScheduleFrequency = "daily"
	ScheduleFrequencyWeekly    ScheduleFrequency = "weekly"
	ScheduleFrequencyMonthly   ScheduleFrequency = "monthly"
	ScheduleFrequencyQuarterly ScheduleFrequency = "quarterly"
)

// Validate validates the schedule frequency
func (f ScheduleFrequency) Validate() error {
	switch f {
	case ScheduleFrequencyDaily, ScheduleFrequencyWeekly, ScheduleFrequencyMonthly, ScheduleFrequencyQuarterly:
		return nil
	default:
		return ierr.NewErrorf("invalid schedule frequency: %s", f).
			WithHint("frequency must be one of daily, weekly, monthly, quarterly").
			Mark(ierr.ErrValidation)
	}
}

// NextRunAfter advances a schedule's next-run timestamp by one frequency step
func (f ScheduleFrequency) NextRunAfter(from time.Time) time.Time {
	switch f {
	case ScheduleFrequencyDaily:
		return from.AddDate(0, 0, 1)
	case ScheduleFrequencyWeekly:
		return from.AddDate(0, 0, 7)
	case ScheduleFrequencyMonthly:
		return from.AddDate(0, 1, 0)
	case ScheduleFrequencyQuarterly:
		return from.AddDate(0, 3, 0)
	default:
		return from.AddDate(0, 0, 1)
	}
}

// Label is the human-readable display string for a frequency
func (f ScheduleFrequency) Label() string {
	switch f {
	case ScheduleFrequencyDaily:
		return "Every day"
	case ScheduleFrequencyWeekly:
		return "Every Monday"
	case ScheduleFrequencyMonthly:
		return "1st of month"
	case ScheduleFrequencyQuarterly:
		return "Every quarter"
	default:
		return string(f)
	}
}
