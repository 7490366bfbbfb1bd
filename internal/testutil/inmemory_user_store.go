package testutil

import (
	"context"
	"sort"
	"strings"

	"github.com/pulseboard/pulseboard/internal/domain/user"
	ierr "github.com/pulseboard/pulseboard/internal/errors"
	"github.com/pulseboard/pulseboard/internal/types"
)

// InMemoryUserStore implements user.Repository
type InMemoryUserStore struct {
	*InMemoryStore[*user.User]
}

func NewInMemoryUserStore() *InMemoryUserStore {
	return &InMemoryUserStore{InMemoryStore: NewInMemoryStore[*user.User]()}
}

func (s *InMemoryUserStore) Create(ctx context.Context, u *user.User) error {
	if existing, _ := s.GetByEmail(ctx, u.Email); existing != nil {
		return ierr.NewErrorf("email already registered: %s", u.Email).
			Mark(ierr.ErrAlreadyExists)
	}
	return s.InMemoryStore.Create(ctx, u.ID, u)
}

func (s *InMemoryUserStore) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	for _, u := range s.All(ctx) {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, ierr.NewError("user not found").Mark(ierr.ErrNotFound)
}

func (s *InMemoryUserStore) List(ctx context.Context, filter *user.Filter) ([]*user.User, error) {
	if filter == nil {
		filter = user.NewFilter()
	}
	matched := s.match(ctx, filter)

	field := filter.GetSort("name")
	desc := filter.GetOrder() == types.SortOrderDesc
	sort.SliceStable(matched, func(i, j int) bool {
		less := lessByField(matched[i], matched[j], field)
		if desc {
			return !less
		}
		return less
	})

	offset := filter.GetOffset()
	if offset >= len(matched) {
		return []*user.User{}, nil
	}
	end := offset + filter.GetLimit()
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], nil
}

func (s *InMemoryUserStore) Count(ctx context.Context, filter *user.Filter) (int, error) {
	if filter == nil {
		filter = user.NewFilter()
	}
	return len(s.match(ctx, filter)), nil
}

func (s *InMemoryUserStore) Update(ctx context.Context, u *user.User) error {
	return s.InMemoryStore.Update(ctx, u.ID, u)
}

func (s *InMemoryUserStore) match(ctx context.Context, filter *user.Filter) []*user.User {
	matched := make([]*user.User, 0)
	search := strings.ToLower(filter.Search)
	for _, u := range s.All(ctx) {
		if search != "" &&
			!strings.Contains(strings.ToLower(u.Name), search) &&
			!strings.Contains(strings.ToLower(u.Email), search) {
			continue
		}
		if filter.Status != "" && filter.Status != "all" && string(u.Status) != filter.Status {
			continue
		}
		matched = append(matched, u)
	}
	return matched
}

func lessByField(a, b *user.User, field string) bool {
	switch field {
	case "email":
		return a.Email < b.Email
	case "last_active":
		return a.LastActive.Before(b.LastActive)
	case "revenue":
		return a.Revenue < b.Revenue
	default:
		return a.Name < b.Name
	}
}
