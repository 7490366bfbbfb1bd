package testutil

import (
	"context"
	"sort"
	"time"

	"github.com/pulseboard/pulseboard/internal/domain/metrics"
	ierr "github.com/pulseboard/pulseboard/internal/errors"
)

// InMemoryRevenueStore implements metrics.RevenueRepository
type InMemoryRevenueStore struct {
	*InMemoryStore[*metrics.Revenue]
}

func NewInMemoryRevenueStore() *InMemoryRevenueStore {
	return &InMemoryRevenueStore{InMemoryStore: NewInMemoryStore[*metrics.Revenue]()}
}

func (s *InMemoryRevenueStore) Create(ctx context.Context, r *metrics.Revenue) error {
	for _, existing := range s.All(ctx) {
		if existing.UserID == r.UserID && existing.Month == r.Month && existing.Year == r.Year {
			return ierr.NewErrorf("revenue record exists for %s %d", r.Month, r.Year).
				Mark(ierr.ErrAlreadyExists)
		}
	}
	return s.InMemoryStore.Create(ctx, r.ID, r)
}

func (s *InMemoryRevenueStore) ListByYear(ctx context.Context, userID string, year int, since *time.Time) ([]*metrics.Revenue, error) {
	rows := make([]*metrics.Revenue, 0)
	for _, r := range s.All(ctx) {
		if r.UserID != userID || r.Year != year {
			continue
		}
		if since != nil && r.CreatedAt.Before(*since) {
			continue
		}
		rows = append(rows, r)
	}
	return rows, nil
}

func (s *InMemoryRevenueStore) GetByMonth(ctx context.Context, userID string, month string, year int) (*metrics.Revenue, error) {
	for _, r := range s.All(ctx) {
		if r.UserID == userID && r.Month == month && r.Year == year {
			return r, nil
		}
	}
	return nil, ierr.NewErrorf("no revenue record for %s %d", month, year).
		Mark(ierr.ErrNotFound)
}

// InMemoryActivityStore implements metrics.ActivityRepository
type InMemoryActivityStore struct {
	*InMemoryStore[*metrics.Activity]
}

func NewInMemoryActivityStore() *InMemoryActivityStore {
	return &InMemoryActivityStore{InMemoryStore: NewInMemoryStore[*metrics.Activity]()}
}

func (s *InMemoryActivityStore) Create(ctx context.Context, a *metrics.Activity) error {
	return s.InMemoryStore.Create(ctx, a.ID, a)
}

func (s *InMemoryActivityStore) ListSince(ctx context.Context, userID string, since time.Time) ([]*metrics.Activity, error) {
	rows := make([]*metrics.Activity, 0)
	for _, a := range s.All(ctx) {
		if a.UserID == userID && !a.Date.Before(since) {
			rows = append(rows, a)
		}
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Date.Before(rows[j].Date)
	})
	return rows, nil
}

func (s *InMemoryActivityStore) SumTotals(ctx context.Context, userID string, before *time.Time) (*metrics.ActivityTotals, error) {
	totals := &metrics.ActivityTotals{}
	for _, a := range s.All(ctx) {
		if a.UserID != userID {
			continue
		}
		if before != nil && !a.Date.Before(*before) {
			continue
		}
		totals.Active += a.Active
		totals.New += a.New
	}
	return totals, nil
}

// InMemoryTrafficStore implements metrics.TrafficRepository
type InMemoryTrafficStore struct {
	*InMemoryStore[*metrics.Traffic]
}

func NewInMemoryTrafficStore() *InMemoryTrafficStore {
	return &InMemoryTrafficStore{InMemoryStore: NewInMemoryStore[*metrics.Traffic]()}
}

func (s *InMemoryTrafficStore) Create(ctx context.Context, t *metrics.Traffic) error {
	return s.InMemoryStore.Create(ctx, t.ID, t)
}

func (s *InMemoryTrafficStore) TotalsBySource(ctx context.Context, userID string, since *time.Time) ([]*metrics.TrafficSourceTotal, error) {
	bySource := make(map[string]*metrics.TrafficSourceTotal)
	for _, t := range s.All(ctx) {
		if t.UserID != userID {
			continue
		}
		if since != nil && t.Date.Before(*since) {
			continue
		}
		total, ok := bySource[t.Name]
		if !ok {
			total = &metrics.TrafficSourceTotal{Name: t.Name, Fill: t.Fill}
			bySource[t.Name] = total
		}
		total.Total += t.Value
	}

	totals := make([]*metrics.TrafficSourceTotal, 0, len(bySource))
	for _, total := range bySource {
		totals = append(totals, total)
	}
	sort.SliceStable(totals, func(i, j int) bool {
		if totals[i].Total != totals[j].Total {
			return totals[i].Total > totals[j].Total
		}
		return totals[i].Name < totals[j].Name
	})
	return totals, nil
}
