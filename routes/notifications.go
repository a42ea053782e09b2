package routes

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"lostfound-server/database"
	"lostfound-server/middleware"
	"lostfound-server/models"
)

// RegisterNotificationRoutes registers all notification routes
func RegisterNotificationRoutes(router *gin.RouterGroup) {
	router.Use(middleware.AuthMiddleware())

	router.GET("", getNotifications)
	router.PUT("/read-all", markAllNotificationsAsRead)
	router.PUT("/:id", markNotificationAsRead)
	router.DELETE("/:id", deleteNotification)
}

// getNotifications lists the caller's notifications, newest first
func getNotifications(c *gin.Context) {
	userID := c.GetUint("user_id")

	var notifications []models.Notification
	if err := database.DB.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&notifications).Error; err != nil {
		log.Printf("❌ Error fetching notifications: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch notifications"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   len(notifications),
		"data":    notifications,
	})
}

// markNotificationAsRead marks one notification as read. Marking an
// already-read notification is a no-op success.
func markNotificationAsRead(c *gin.Context) {
	userID := c.GetUint("user_id")

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid notification ID"})
		return
	}

	var notification models.Notification
	if err := database.DB.Where("id = ? AND user_id = ?", id, userID).
		First(&notification).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Notification not found"})
		return
	}

	if !notification.Read {
		notification.Read = true
		if err := database.DB.Save(&notification).Error; err != nil {
			log.Printf("❌ Failed to mark notification %d as read: %v", notification.ID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to update notification"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": notification})
}

// markAllNotificationsAsRead marks every unread notification of the caller
func markAllNotificationsAsRead(c *gin.Context) {
	userID := c.GetUint("user_id")

	result := database.DB.Model(&models.Notification{}).
		Where("user_id = ? AND read = ?", userID, false).
		Update("read", true)
	if result.Error != nil {
		log.Printf("❌ Failed to mark notifications as read for user %d: %v", userID, result.Error)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to update notifications"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"updated": result.RowsAffected},
	})
}

// deleteNotification removes one of the caller's notifications
func deleteNotification(c *gin.Context) {
	userID := c.GetUint("user_id")

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid notification ID"})
		return
	}

	var notification models.Notification
	if err := database.DB.Where("id = ? AND user_id = ?", id, userID).
		First(&notification).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Notification not found"})
		return
	}

	if err := database.DB.Delete(&notification).Error; err != nil {
		log.Printf("❌ Failed to delete notification %d: %v", notification.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to delete notification"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{}})
}
