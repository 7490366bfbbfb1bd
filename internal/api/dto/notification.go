package dto

import (
	"time"

	"github.com/pulseboard/pulseboard/internal/domain/notification"
	"github.com/pulseboard/pulseboard/internal/types"
	"github.com/pulseboard/pulseboard/internal/validator"
)

// CreateNotificationRequest publishes a notification. An empty UserID makes
// it system-wide.
type CreateNotificationRequest struct {
	Title       string                 `json:"title" binding:"required"`
	Description string                 `json:"description" binding:"required"`
	Type        types.NotificationType `json:"type" binding:"required"`
	UserID      string                 `json:"user_id,omitempty"`
}

// Validate validates the create notification request
func (r *CreateNotificationRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	return r.Type.Validate()
}

// NotificationResponse is the API shape of an inbox entry
type NotificationResponse struct {
	ID          string                 `json:"id"`
	Title       string                 `json:"title"`
	Description string                 `json:"description"`
	Type        types.NotificationType `json:"type"`
	Read        bool                   `json:"read"`
	Time        string                 `json:"time"`
}

// NewNotificationResponse maps a domain notification to its API shape
func NewNotificationResponse(n *notification.Notification, now time.Time) *NotificationResponse {
	return &NotificationResponse{
		ID:          n.ID,
		Title:       n.Title,
		Description: n.Description,
		Type:        n.Type,
		Read:        n.Read,
		Time:        types.HumanizeTimeSince(n.CreatedAt, now),
	}
}

// ListNotificationsResponse is the paginated inbox
type ListNotificationsResponse struct {
	Items      []*NotificationResponse  `json:"items"`
	Pagination types.PaginationResponse `json:"pagination"`
}

// MarkAllReadResponse reports how many entries were updated
type MarkAllReadResponse struct {
	Updated int `json:"updated"`
}
