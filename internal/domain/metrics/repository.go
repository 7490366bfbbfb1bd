package metrics

import (
	"context"
	"time"
)

// RevenueRepository defines persistence operations for revenue records
type RevenueRepository interface {
	Create(ctx context.Context, r *Revenue) error

	// ListByYear returns the tenant's revenue rows for a calendar year,
	// optionally restricted to rows created at/after since.
	ListByYear(ctx context.Context, userID string, year int, since *time.Time) ([]*Revenue, error)

	// GetByMonth returns the tenant's revenue row for one (month, year),
	// or a not-found error.
	GetByMonth(ctx context.Context, userID string, month string, year int) (*Revenue, error)
}

// ActivityRepository defines persistence operations for activity records
type ActivityRepository interface {
	Create(ctx context.Context, a *Activity) error

	// ListSince returns the tenant's activity rows with date >= since,
	// ordered by date ascending.
	ListSince(ctx context.Context, userID string, since time.Time) ([]*Activity, error)

	// SumTotals sums active and new counters over the tenant's rows,
	// optionally restricted to date < before.
	SumTotals(ctx context.Context, userID string, before *time.Time) (*ActivityTotals, error)
}

// TrafficRepository defines persistence operations for traffic records
type TrafficRepository interface {
	Create(ctx context.Context, t *Traffic) error

	// TotalsBySource groups the tenant's rows by source name and sums the
	// values, ordered by total descending (ties stable by name). A nil since
	// aggregates the full history.
	TotalsBySource(ctx context.Context, userID string, since *time.Time) ([]*TrafficSourceTotal, error)
}
