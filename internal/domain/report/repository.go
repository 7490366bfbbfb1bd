package report

import (
	"context"
	"time"

	"github.com/pulseboard/pulseboard/internal/types"
)

// Filter defines query parameters for listing reports
type Filter struct {
	*types.QueryFilter

	// UserID scopes the list to one tenant; empty means all tenants
	// (admin listing).
	UserID string

	// ScheduledOnly restricts to reports with an enabled schedule
	ScheduledOnly bool
}

// NewFilter creates a filter with default pagination
func NewFilter() *Filter {
	return &Filter{QueryFilter: types.NewDefaultQueryFilter()}
}

// Repository defines the persistence operations for reports
type Repository interface {
	Create(ctx context.Context, r *Report) error
	Get(ctx context.Context, id string) (*Report, error)
	List(ctx context.Context, filter *Filter) ([]*Report, error)

	// Update persists the full document. The status transition itself is a
	// single-document write, which is the only atomicity the state machine
	// needs: after creation only the job runner writes a given report.
	Update(ctx context.Context, r *Report) error

	Delete(ctx context.Context, id string) error

	// ListDueScheduled returns reports whose schedule is enabled and whose
	// next run is at/before now.
	ListDueScheduled(ctx context.Context, now time.Time) ([]*Report, error)
}
