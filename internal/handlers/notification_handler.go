package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edupercentage/platform-service/internal/services"
	"github.com/edupercentage/platform-service/internal/utils"
)

type NotificationHandler struct {
	BaseHandler
	service services.NotificationService
}

func NewNotificationHandler(service services.NotificationService, logger utils.Logger) *NotificationHandler {
	return &NotificationHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// SendNotification stores a notification. Without recipient fields it is a
// broadcast visible to everyone.
// @Summary Send a notification
// @Tags notifications
// @Accept json
// @Produce json
// @Param request body services.SendNotificationRequest true "Notification request"
// @Success 201 {object} models.Notification
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Router /notifications [post]
func (h *NotificationHandler) SendNotification(c *gin.Context) {
	userID, ok := h.requireUserID(c)
	if !ok {
		return
	}

	var req services.SendNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	notification, err := h.service.Send(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, notification)
}

// ListNotifications returns the notifications visible to the caller
func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	userID, ok := h.requireUserID(c)
	if !ok {
		return
	}

	notifications, err := h.service.ListForUser(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"notifications": notifications, "total": len(notifications)})
}

// MarkRead flags a notification as read
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	userID, ok := h.requireUserID(c)
	if !ok {
		return
	}

	if err := h.service.MarkRead(c.Request.Context(), userID, c.Param("id")); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "notification marked read"})
}

// DeleteNotification removes a notification
func (h *NotificationHandler) DeleteNotification(c *gin.Context) {
	userID, ok := h.requireUserID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "notification deleted"})
}
