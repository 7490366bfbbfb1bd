package types

import ierr "github.com/pulseboard/pulseboard/internal/errors"

// NotificationType categorizes notifications for the inbox UI
type NotificationType string

const (
	NotificationTypeUser    NotificationType = "user"
	NotificationTypePayment NotificationType = "payment"
	NotificationTypeAlert   NotificationType = "alert"
	NotificationTypeUpdate  NotificationType = "update"
)

// Validate validates the notification type
func (t NotificationType) Validate() error {
	switch t {
	case NotificationTypeUser, NotificationTypePayment, NotificationTypeAlert, NotificationTypeUpdate:
		return nil
	default:
		return ierr.NewErrorf("invalid notification type: %s", t).
			WithHint("type must be one of user, payment, alert, update").
			Mark(ierr.ErrValidation)
	}
}
