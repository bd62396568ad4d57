package handler

import (
	"net/http"
	"strconv"

	"cartroyal/internal/middleware"
	"cartroyal/internal/repository"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	notifications *repository.NotificationRepository
}

func NewNotificationHandler(notifications *repository.NotificationRepository) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

// List returns the caller's notifications, newest first.
func (h *NotificationHandler) List(c *gin.Context) {
	limit, _, offset := pagination(c)
	list, err := h.notifications.ListByUserID(middleware.GetUserID(c), limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "failed to retrieve notifications"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "Notifications Retrieved", "data": list})
}

// MarkRead marks one of the caller's notifications as read.
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid notification id"})
		return
	}
	if err := h.notifications.MarkRead(uint(id), middleware.GetUserID(c)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "failed to mark notification read"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "Notification marked as read"})
}
