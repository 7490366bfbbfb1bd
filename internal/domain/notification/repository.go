package notification

import (
	"context"

	"github.com/pulseboard/pulseboard/internal/types"
)

// Filter defines query parameters for listing notifications
type Filter struct {
	*types.QueryFilter

	// UserID is the viewer; the list covers their own notifications plus
	// system-wide ones. Empty means system-wide only (unauthenticated view).
	UserID string

	// Read filters by read state when set
	Read *bool
}

// NewFilter creates a filter with default pagination
func NewFilter() *Filter {
	return &Filter{QueryFilter: types.NewDefaultQueryFilter()}
}

// Repository defines the persistence operations for notifications
type Repository interface {
	Create(ctx context.Context, n *Notification) error
	Get(ctx context.Context, id string) (*Notification, error)
	List(ctx context.Context, filter *Filter) ([]*Notification, error)
	Update(ctx context.Context, n *Notification) error
	Delete(ctx context.Context, id string) error

	// MarkAllRead marks every unread notification visible to the user as read
	// and returns the number updated.
	MarkAllRead(ctx context.Context, userID string) (int, error)
}
