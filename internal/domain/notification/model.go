package notification

import (
	ierr "github.com/pulseboard/pulseboard/internal/errors"
	"github.com/pulseboard/pulseboard/internal/types"
)

// Notification is an inbox entry. An empty UserID marks a system-wide
// notification visible to every tenant.
type Notification struct {
	ID          string                 `json:"id" bson:"_id"`
	Title       string                 `json:"title" bson:"title"`
	Description string                 `json:"description" bson:"description"`
	Type        types.NotificationType `json:"type" bson:"type"`
	Read        bool                   `json:"read" bson:"read"`
	UserID      string                 `json:"user_id,omitempty" bson:"user_id,omitempty"`
	types.BaseModel                    `bson:",inline"`
}

// Validate validates the notification document
func (n *Notification) Validate() error {
	if n.Title == "" {
		return ierr.NewError("title is required").Mark(ierr.ErrValidation)
	}
	if n.Description == "" {
		return ierr.NewError("description is required").Mark(ierr.ErrValidation)
	}
	return n.Type.Validate()
}

// IsSystemWide reports whether the notification targets every tenant
func (n *Notification) IsSystemWide() bool {
	return n.UserID == ""
}

// IsVisibleTo reports whether the given user may see this notification
func (n *Notification) IsVisibleTo(userID string) bool {
	return n.IsSystemWide() || n.UserID == userID
}
