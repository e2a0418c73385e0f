package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"healthcare-booking-server/internal/middleware"
	"healthcare-booking-server/internal/models"
	"healthcare-booking-server/internal/utils"
)

// NotificationHandler handles in-app notification requests.
type NotificationHandler struct {
	DB *gorm.DB
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(db *gorm.DB) *NotificationHandler {
	return &NotificationHandler{DB: db}
}

// GetNotifications fetches the current user's notifications, newest first.
// Pass ?unread=true to restrict to unread ones.
func (h *NotificationHandler) GetNotifications(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	query := h.DB.Where("user_id = ?", userID).Order("created_at desc")
	if c.Query("unread") == "true" {
		query = query.Where("is_read = ?", false)
	}

	var notifications []models.Notification
	if err := query.Find(&notifications).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch notifications: "+err.Error())
		return
	}
	utils.Success(c, "Notifications fetched successfully", notifications)
}

// GetUnreadCount returns the number of unread notifications.
func (h *NotificationHandler) GetUnreadCount(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	var count int64
	if err := h.DB.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error; err != nil {
		utils.InternalServerError(c, "Failed to count notifications: "+err.Error())
		return
	}
	utils.Success(c, "Unread count fetched successfully", gin.H{"count": count})
}

// MarkNotificationAsRead marks one of the user's notifications as read.
func (h *NotificationHandler) MarkNotificationAsRead(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	var notification models.Notification
	if err := h.DB.First(&notification, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Notification not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	// Only the recipient can mark a notification as read
	if notification.UserID != userID {
		utils.Forbidden(c, "You are not authorized to update this notification.")
		return
	}

	if notification.IsRead {
		utils.Success(c, "Notification already marked as read", notification)
		return
	}

	now := time.Now()
	notification.IsRead = true
	notification.ReadAt = &now
	if err := h.DB.Save(&notification).Error; err != nil {
		utils.InternalServerError(c, "Failed to update notification: "+err.Error())
		return
	}
	utils.Success(c, "Notification marked as read successfully", notification)
}
