package v1

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/pulseboard/pulseboard/internal/api/dto"
	ierr "github.com/pulseboard/pulseboard/internal/errors"
	"github.com/pulseboard/pulseboard/internal/logger"
	"github.com/pulseboard/pulseboard/internal/service"
)

type NotificationHandler struct {
	notificationService service.NotificationService
	logger              *logger.Logger
}

func NewNotificationHandler(
	notificationService service.NotificationService,
	logger *logger.Logger,
) *NotificationHandler {
	return &NotificationHandler{
		notificationService: notificationService,
		logger:              logger,
	}
}

func (h *NotificationHandler) CreateNotification(c *gin.Context) {
	var req dto.CreateNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request payload").
			Mark(ierr.ErrValidation))
		return
	}

	response, err := h.notificationService.CreateNotification(c.Request.Context(), req)
	if err != nil {
		h.logger.Errorw("failed to create notification", "error", err)
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, response)
}

func (h *NotificationHandler) GetNotification(c *gin.Context) {
	response, err := h.notificationService.GetNotification(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, response)
}

func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	var read *bool
	if raw := c.Query("read"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			c.Error(ierr.WithError(err).
				WithHint("read must be true or false").
				Mark(ierr.ErrValidation))
			return
		}
		read = &parsed
	}

	response, err := h.notificationService.ListNotifications(c.Request.Context(), read)
	if err != nil {
		h.logger.Errorw("failed to list notifications", "error", err)
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, response)
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	response, err := h.notificationService.MarkRead(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, response)
}

func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	response, err := h.notificationService.MarkAllRead(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, response)
}

func (h *NotificationHandler) DeleteNotification(c *gin.Context) {
	if err := h.notificationService.DeleteNotification(c.Request.Context(), c.Param("id")); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "notification deleted"})
}
