package report

import (
	"time"

	ierr "github.com/pulseboard/pulseboard/internal/errors"
	"github.com/pulseboard/pulseboard/internal/types"
)

// Schedule is the optional recurrence sub-document on a report
type Schedule struct {
	Enabled   bool                    `json:"enabled" bson:"enabled"`
	Frequency types.ScheduleFrequency `json:"frequency,omitempty" bson:"frequency,omitempty"`
	NextRun   time.Time               `json:"next_run,omitempty" bson:"next_run,omitempty"`
}

// Report is a tenant-owned generated report. Status follows the
// generating -> ready|failed state machine; ArtifactKey is set only on the
// success path.
type Report struct {
	ID          string             `json:"id" bson:"_id"`
	UserID      string             `json:"user_id" bson:"user_id"`
	Title       string             `json:"title" bson:"title"`
	Description string             `json:"description" bson:"description"`
	Type        types.ReportType   `json:"type" bson:"type"`
	Status      types.ReportStatus `json:"status" bson:"status"`
	ArtifactKey string             `json:"artifact_key,omitempty" bson:"artifact_key,omitempty"`
	FailureReason string           `json:"failure_reason,omitempty" bson:"failure_reason,omitempty"`
	CompletedAt *time.Time         `json:"completed_at,omitempty" bson:"completed_at,omitempty"`
	Scheduled   *Schedule          `json:"scheduled,omitempty" bson:"scheduled,omitempty"`
	types.BaseModel                `bson:",inline"`
}

// Validate validates the report document
func (r *Report) Validate() error {
	if r.UserID == "" {
		return ierr.NewError("user_id is required").Mark(ierr.ErrValidation)
	}
	if r.Title == "" {
		return ierr.NewError("title is required").Mark(ierr.ErrValidation)
	}
	if err := r.Type.Validate(); err != nil {
		return err
	}
	if err := r.Status.Validate(); err != nil {
		return err
	}
	if r.Scheduled != nil && r.Scheduled.Enabled {
		if err := r.Scheduled.Frequency.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// IsOwnedBy reports whether the given user owns this report
func (r *Report) IsOwnedBy(userID string) bool {
	return r.UserID == userID
}
