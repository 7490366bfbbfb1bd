package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/pulseboard/pulseboard/internal/api/dto"
	"github.com/pulseboard/pulseboard/internal/domain/notification"
	ierr "github.com/pulseboard/pulseboard/internal/errors"
	"github.com/pulseboard/pulseboard/internal/testutil"
	"github.com/pulseboard/pulseboard/internal/types"
)

type NotificationServiceSuite struct {
	ServiceTestSuite
	notifications NotificationService
}

func TestNotificationService(t *testing.T) {
	suite.Run(t, new(NotificationServiceSuite))
}

func (s *NotificationServiceSuite) SetupTest() {
	s.ServiceTestSuite.SetupTest()
	s.notifications = NewNotificationService(s.params)
}

func (s *NotificationServiceSuite) seedNotification(userID, title string, read bool, createdAt time.Time) *notification.Notification {
	entry := &notification.Notification{
		ID:          types.GenerateUUIDWithPrefix(types.UUIDPrefixNotification),
		Title:       title,
		Description: "details",
		Type:        types.NotificationTypeAlert,
		Read:        read,
		UserID:      userID,
	}
	entry.CreatedAt = createdAt
	entry.UpdatedAt = createdAt
	s.Require().NoError(s.GetStores().Notifications.Create(s.GetContext(), entry))
	return entry
}

func (s *NotificationServiceSuite) TestCreateNotificationIsAdminOnly() {
	req := dto.CreateNotificationRequest{
		Title:       "Maintenance",
		Description: "Planned downtime this weekend",
		Type:        types.NotificationTypeUpdate,
	}

	_, err := s.notifications.CreateNotification(s.GetContext(), req)
	s.Require().Error(err)
	s.True(ierr.IsPermissionDenied(err))

	resp, err := s.notifications.CreateNotification(s.adminContext(), req)
	s.Require().NoError(err)
	s.Equal("Maintenance", resp.Title)
	s.False(resp.Read)
}

func (s *NotificationServiceSuite) TestListShowsOwnAndSystemWide() {
	now := time.Now().UTC()
	s.seedNotification(testUserID, "own", false, now.Add(-time.Hour))
	s.seedNotification("", "system-wide", false, now.Add(-2*time.Hour))
	s.seedNotification("user_other", "not mine", false, now)

	list, err := s.notifications.ListNotifications(s.GetContext(), nil)
	s.Require().NoError(err)
	s.Require().Len(list.Items, 2)
	// Newest first.
	s.Equal("own", list.Items[0].Title)
	s.Equal("system-wide", list.Items[1].Title)
}

func (s *NotificationServiceSuite) TestListFiltersByReadFlag() {
	now := time.Now().UTC()
	s.seedNotification(testUserID, "seen", true, now.Add(-time.Hour))
	s.seedNotification(testUserID, "unseen", false, now)

	unread := false
	list, err := s.notifications.ListNotifications(s.GetContext(), &unread)
	s.Require().NoError(err)
	s.Require().Len(list.Items, 1)
	s.Equal("unseen", list.Items[0].Title)

	read := true
	list, err = s.notifications.ListNotifications(s.GetContext(), &read)
	s.Require().NoError(err)
	s.Require().Len(list.Items, 1)
	s.Equal("seen", list.Items[0].Title)
}

func (s *NotificationServiceSuite) TestMarkReadIsIdempotent() {
	entry := s.seedNotification(testUserID, "ping", false, time.Now().UTC())

	resp, err := s.notifications.MarkRead(s.GetContext(), entry.ID)
	s.Require().NoError(err)
	s.True(resp.Read)

	resp, err = s.notifications.MarkRead(s.GetContext(), entry.ID)
	s.Require().NoError(err)
	s.True(resp.Read)
}

func (s *NotificationServiceSuite) TestMarkReadDeniedForForeignEntry() {
	entry := s.seedNotification("user_other", "not mine", false, time.Now().UTC())

	_, err := s.notifications.MarkRead(s.GetContext(), entry.ID)
	s.Require().Error(err)
	s.True(ierr.IsPermissionDenied(err))

	// Admins can read anything.
	_, err = s.notifications.GetNotification(s.adminContext(), entry.ID)
	s.NoError(err)
}

func (s *NotificationServiceSuite) TestMarkAllReadCountsVisibleUnread() {
	now := time.Now().UTC()
	s.seedNotification(testUserID, "a", false, now)
	s.seedNotification("", "b", false, now)
	s.seedNotification(testUserID, "c", true, now)
	s.seedNotification("user_other", "d", false, now)

	resp, err := s.notifications.MarkAllRead(s.GetContext())
	s.Require().NoError(err)
	s.Equal(2, resp.Updated)

	resp, err = s.notifications.MarkAllRead(s.GetContext())
	s.Require().NoError(err)
	s.Equal(0, resp.Updated)
}

func (s *NotificationServiceSuite) TestDeleteAuthz() {
	own := s.seedNotification(testUserID, "own", false, time.Now().UTC())
	system := s.seedNotification("", "system-wide", false, time.Now().UTC())

	s.Require().NoError(s.notifications.DeleteNotification(s.GetContext(), own.ID))

	// System-wide entries belong to nobody; non-admins cannot remove them.
	err := s.notifications.DeleteNotification(s.GetContext(), system.ID)
	s.Require().Error(err)
	s.True(ierr.IsPermissionDenied(err))

	s.Require().NoError(s.notifications.DeleteNotification(s.adminContext(), system.ID))

	otherCtx := testutil.AuthenticatedContext("user_other", types.UserRoleUser)
	foreign := s.seedNotification(testUserID, "foreign", false, time.Now().UTC())
	err = s.notifications.DeleteNotification(otherCtx, foreign.ID)
	s.Require().Error(err)
	s.True(ierr.IsPermissionDenied(err))
}
