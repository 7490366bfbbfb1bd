package testutil

import (
	"context"
	"sort"

	"github.com/pulseboard/pulseboard/internal/domain/notification"
)

// InMemoryNotificationStore implements notification.Repository
type InMemoryNotificationStore struct {
	*InMemoryStore[*notification.Notification]
}

func NewInMemoryNotificationStore() *InMemoryNotificationStore {
	return &InMemoryNotificationStore{InMemoryStore: NewInMemoryStore[*notification.Notification]()}
}

func (s *InMemoryNotificationStore) Create(ctx context.Context, n *notification.Notification) error {
	return s.InMemoryStore.Create(ctx, n.ID, n)
}

func (s *InMemoryNotificationStore) List(ctx context.Context, filter *notification.Filter) ([]*notification.Notification, error) {
	if filter == nil {
		filter = notification.NewFilter()
	}

	matched := make([]*notification.Notification, 0)
	for _, n := range s.All(ctx) {
		if !n.IsVisibleTo(filter.UserID) {
			continue
		}
		if filter.Read != nil && n.Read != *filter.Read {
			continue
		}
		matched = append(matched, n)
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	offset := filter.GetOffset()
	if offset >= len(matched) {
		return []*notification.Notification{}, nil
	}
	end := offset + filter.GetLimit()
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], nil
}

func (s *InMemoryNotificationStore) Update(ctx context.Context, n *notification.Notification) error {
	return s.InMemoryStore.Update(ctx, n.ID, n)
}

func (s *InMemoryNotificationStore) MarkAllRead(ctx context.Context, userID string) (int, error) {
	updated := 0
	for _, n := range s.All(ctx) {
		if n.IsVisibleTo(userID) && !n.Read {
			n.Read = true
			updated++
		}
	}
	return updated, nil
}
