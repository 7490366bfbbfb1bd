package service

import (
	"context"
	"time"

	"github.com/pulseboard/pulseboard/internal/api/dto"
	"github.com/pulseboard/pulseboard/internal/domain/notification"
	ierr "github.com/pulseboard/pulseboard/internal/errors"
	"github.com/pulseboard/pulseboard/internal/types"
)

// NotificationService manages the inbox: the caller sees their own entries
// plus system-wide ones.
type NotificationService interface {
	CreateNotification(ctx context.Context, req dto.CreateNotificationRequest) (*dto.NotificationResponse, error)
	GetNotification(ctx context.Context, id string) (*dto.NotificationResponse, error)
	ListNotifications(ctx context.Context, read *bool) (*dto.ListNotificationsResponse, error)
	MarkRead(ctx context.Context, id string) (*dto.NotificationResponse, error)
	MarkAllRead(ctx context.Context) (*dto.MarkAllReadResponse, error)
	DeleteNotification(ctx context.Context, id string) error
}

type notificationService struct {
	ServiceParams
}

// NewNotificationService creates a new notification service
func NewNotificationService(params ServiceParams) NotificationService {
	return &notificationService{ServiceParams: params}
}

func (s *notificationService) CreateNotification(ctx context.Context, req dto.CreateNotificationRequest) (*dto.NotificationResponse, error) {
	if !types.IsAdmin(ctx) {
		return nil, adminOnly()
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	entry := &notification.Notification{
		ID:          types.GenerateUUIDWithPrefix(types.UUIDPrefixNotification),
		Title:       req.Title,
		Description: req.Description,
		Type:        req.Type,
		UserID:      req.UserID,
		BaseModel:   types.GetDefaultBaseModel(ctx),
	}
	if err := s.NotificationRepo.Create(ctx, entry); err != nil {
		return nil, err
	}
	return dto.NewNotificationResponse(entry, time.Now().UTC()), nil
}

func (s *notificationService) GetNotification(ctx context.Context, id string) (*dto.NotificationResponse, error) {
	entry, err := s.getVisible(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewNotificationResponse(entry, time.Now().UTC()), nil
}

func (s *notificationService) ListNotifications(ctx context.Context, read *bool) (*dto.ListNotificationsResponse, error) {
	filter := notification.NewFilter()
	filter.UserID = types.GetUserID(ctx)
	filter.Read = read

	entries, err := s.NotificationRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	items := make([]*dto.NotificationResponse, 0, len(entries))
	for _, entry := range entries {
		items = append(items, dto.NewNotificationResponse(entry, now))
	}
	return &dto.ListNotificationsResponse{
		Items: items,
		Pagination: types.PaginationResponse{
			Total:  len(items),
			Limit:  filter.GetLimit(),
			Offset: filter.GetOffset(),
		},
	}, nil
}

func (s *notificationService) MarkRead(ctx context.Context, id string) (*dto.NotificationResponse, error) {
	entry, err := s.getVisible(ctx, id)
	if err != nil {
		return nil, err
	}

	if !entry.Read {
		entry.Read = true
		entry.UpdatedAt = time.Now().UTC()
		if err := s.NotificationRepo.Update(ctx, entry); err != nil {
			return nil, err
		}
	}
	return dto.NewNotificationResponse(entry, time.Now().UTC()), nil
}

func (s *notificationService) MarkAllRead(ctx context.Context) (*dto.MarkAllReadResponse, error) {
	updated, err := s.NotificationRepo.MarkAllRead(ctx, types.GetUserID(ctx))
	if err != nil {
		return nil, err
	}
	return &dto.MarkAllReadResponse{Updated: updated}, nil
}

func (s *notificationService) DeleteNotification(ctx context.Context, id string) error {
	entry, err := s.NotificationRepo.Get(ctx, id)
	if err != nil {
		return err
	}
	// System-wide entries belong to nobody; only admins remove them.
	if entry.UserID != types.GetUserID(ctx) && !types.IsAdmin(ctx) {
		return ierr.NewError("notification belongs to another user").
			Mark(ierr.ErrPermissionDenied)
	}
	return s.NotificationRepo.Delete(ctx, id)
}

func (s *notificationService) getVisible(ctx context.Context, id string) (*notification.Notification, error) {
	entry, err := s.NotificationRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !entry.IsVisibleTo(types.GetUserID(ctx)) && !types.IsAdmin(ctx) {
		return nil, ierr.NewError("notification belongs to another user").
			Mark(ierr.ErrPermissionDenied)
	}
	return entry, nil
}
