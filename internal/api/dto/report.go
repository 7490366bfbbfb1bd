package dto

import (
	"time"

	"github.com/pulseboard/pulseboard/internal/domain/report"
	"github.com/pulseboard/pulseboard/internal/types"
	"github.com/pulseboard/pulseboard/internal/validator"
)

// CreateReportRequest starts generation of a new report
type CreateReportRequest struct {
	Title       string           `json:"title" binding:"required"`
	Description string           `json:"description"`
	Type        types.ReportType `json:"type" binding:"required"`
	Scheduled   *ScheduleRequest `json:"scheduled,omitempty"`
}

// ScheduleRequest is the optional recurrence block on report creation
type ScheduleRequest struct {
	Enabled   bool                    `json:"enabled"`
	Frequency types.ScheduleFrequency `json:"frequency"`
}

// Validate validates the create report request
func (r *CreateReportRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	if err := r.Type.Validate(); err != nil {
		return err
	}
	if r.Scheduled != nil && r.Scheduled.Enabled {
		if err := r.Scheduled.Frequency.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// ScheduleResponse describes a report's recurrence
type ScheduleResponse struct {
	Enabled        bool                    `json:"enabled"`
	Frequency      types.ScheduleFrequency `json:"frequency"`
	FrequencyLabel string                  `json:"frequency_label"`
	NextRun        time.Time               `json:"next_run"`
}

// ReportResponse is the API shape of a report
type ReportResponse struct {
	ID            string             `json:"id"`
	Title         string             `json:"title"`
	Description   string             `json:"description"`
	Type          types.ReportType   `json:"type"`
	Status        types.ReportStatus `json:"status"`
	Date          string             `json:"date"`
	FailureReason string             `json:"failure_reason,omitempty"`
	CompletedAt   *time.Time         `json:"completed_at,omitempty"`
	Scheduled     *ScheduleResponse  `json:"scheduled,omitempty"`
}

// NewReportResponse maps a domain report to its API shape
func NewReportResponse(r *report.Report) *ReportResponse {
	resp := &ReportResponse{
		ID:            r.ID,
		Title:         r.Title,
		Description:   r.Description,
		Type:          r.Type,
		Status:        r.Status,
		Date:          types.FormatShortDate(r.CreatedAt),
		FailureReason: r.FailureReason,
		CompletedAt:   r.CompletedAt,
	}
	if r.Scheduled != nil {
		resp.Scheduled = &ScheduleResponse{
			Enabled:        r.Scheduled.Enabled,
			Frequency:      r.Scheduled.Frequency,
			FrequencyLabel: r.Scheduled.Frequency.Label(),
			NextRun:        r.Scheduled.NextRun,
		}
	}
	return resp
}

// ListReportsResponse is the paginated report list
type ListReportsResponse struct {
	Items      []*ReportResponse        `json:"items"`
	Pagination types.PaginationResponse `json:"pagination"`
}

// DownloadReportResponse carries the artifact download URL
type DownloadReportResponse struct {
	URL string `json:"url"`
}
