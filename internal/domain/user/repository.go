package user

import (
	"context"

	"github.com/pulseboard/pulseboard/internal/types"
)

// Filter defines query parameters for listing users
type Filter struct {
	*types.QueryFilter

	// Search matches name or email, case-insensitively
	Search string `json:"search,omitempty" form:"search"`

	// Status restricts to a single account status ("all" and empty mean no restriction)
	Status string `json:"status,omitempty" form:"status"`
}

// NewFilter creates a filter with default pagination
func NewFilter() *Filter {
	return &Filter{QueryFilter: types.NewDefaultQueryFilter()}
}

// Validate validates the filter
func (f *Filter) Validate() error {
	if f.QueryFilter == nil {
		f.QueryFilter = types.NewDefaultQueryFilter()
	}
	return f.QueryFilter.Validate()
}

// Repository defines the persistence operations for users
type Repository interface {
	Create(ctx context.Context, u *User) error
	Get(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context, filter *Filter) ([]*User, error)
	Count(ctx context.Context, filter *Filter) (int, error)
	Update(ctx context.Context, u *User) error
	Delete(ctx context.Context, id string) error
}
