package api

import (
	"meetminder/models"
	"meetminder/storage"
	"meetminder/utils"

	"github.com/gofiber/fiber/v2"
)

// NotificationHandler serves the notification API.
type NotificationHandler struct {
	db *storage.Store
}

// NewNotificationHandler creates a new notification handler.
func NewNotificationHandler(db *storage.Store) *NotificationHandler {
	return &NotificationHandler{db: db}
}

// List returns every notification for the authenticated user.
func (h *NotificationHandler) List(c *fiber.Ctx) error {
	userID, err := CurrentUserID(c)
	if err != nil {
		return err
	}

	notifications := h.db.ListNotificationsByUser(userID)
	if notifications == nil {
		notifications = []models.Notification{}
	}
	return c.JSON(notifications)
}

// MarkRead flags an owned notification as read and returns the
// updated record.
func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	userID, err := CurrentUserID(c)
	if err != nil {
		return err
	}
	notificationID, err := ParamID(c)
	if err != nil {
		return err
	}

	notification, err := h.db.GetNotification(notificationID)
	if err != nil {
		return utils.NotFoundError("Notification not found", err)
	}
	if notification.UserID != userID {
		return utils.ForbiddenError("Not allowed to update this notification", nil)
	}

	updated, err := h.db.MarkNotificationRead(notificationID)
	if err != nil {
		return utils.InternalServerError("Failed to mark notification as read", err)
	}
	return c.JSON(updated)
}
