package testutil

import (
	"context"
	"sort"
	"time"

	"github.com/pulseboard/pulseboard/internal/domain/report"
)

// InMemoryReportStore implements report.Repository
type InMemoryReportStore struct {
	*InMemoryStore[*report.Report]
}

func NewInMemoryReportStore() *InMemoryReportStore {
	return &InMemoryReportStore{InMemoryStore: NewInMemoryStore[*report.Report]()}
}

func (s *InMemoryReportStore) Create(ctx context.Context, r *report.Report) error {
	return s.InMemoryStore.Create(ctx, r.ID, r)
}

func (s *InMemoryReportStore) List(ctx context.Context, filter *report.Filter) ([]*report.Report, error) {
	if filter == nil {
		filter = report.NewFilter()
	}

	matched := make([]*report.Report, 0)
	for _, r := range s.All(ctx) {
		if filter.UserID != "" && r.UserID != filter.UserID {
			continue
		}
		if filter.ScheduledOnly && (r.Scheduled == nil || !r.Scheduled.Enabled) {
			continue
		}
		matched = append(matched, r)
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	offset := filter.GetOffset()
	if offset >= len(matched) {
		return []*report.Report{}, nil
	}
	end := offset + filter.GetLimit()
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], nil
}

func (s *InMemoryReportStore) Update(ctx context.Context, r *report.Report) error {
	return s.InMemoryStore.Update(ctx, r.ID, r)
}

func (s *InMemoryReportStore) ListDueScheduled(ctx context.Context, now time.Time) ([]*report.Report, error) {
	due := make([]*report.Report, 0)
	for _, r := range s.All(ctx) {
		if r.Scheduled != nil && r.Scheduled.Enabled && !r.Scheduled.NextRun.After(now) {
			due = append(due, r)
		}
	}
	return due, nil
}
