package notification_controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/joy095/consult/logger"
	"github.com/joy095/consult/models/notification_models"
	"github.com/joy095/consult/models/shared_models"
	"github.com/joy095/consult/utils"
)

// NotificationController serves the recipient-facing notification endpoints.
type NotificationController struct {
	DB shared_models.Querier
}

func NewNotificationController(db shared_models.Querier) *NotificationController {
	return &NotificationController{DB: db}
}

// ListNotifications returns the caller's notifications, newest first.
// GET /notifications?limit=n
func (nc *NotificationController) ListNotifications(c *gin.Context) {
	userID, err := utils.GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "User not authenticated"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	notifications, err := notification_models.ListNotificationsForUser(c.Request.Context(), nc.DB, userID, limit)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to list notifications for user %s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch notifications"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "notifications": notifications})
}

// MarkRead flips the read flag on one of the caller's notifications.
// PATCH /notifications/:notification_id/read
func (nc *NotificationController) MarkRead(c *gin.Context) {
	userID, err := utils.GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "User not authenticated"})
		return
	}

	notificationID, err := uuid.Parse(c.Param("notification_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid notification id"})
		return
	}

	err = notification_models.MarkNotificationRead(c.Request.Context(), nc.DB, notificationID, userID)
	if err != nil {
		if errors.Is(err, notification_models.ErrNotificationNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Notification not found"})
			return
		}
		logger.ErrorLogger.Errorf("Failed to mark notification %s read: %v", notificationID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update notification"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
