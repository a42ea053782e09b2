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

// ProfileUpdate represents the profile update request. Email and role are
// not editable here; role changes go through the admin endpoint.
type ProfileUpdate struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`

	LocationAddress *string  `json:"location_address"`
	LocationCity    *string  `json:"location_city"`
	LocationState   *string  `json:"location_state"`
	LocationZipcode *string  `json:"location_zipcode"`
	LocationCountry *string  `json:"location_country"`
	LocationLat     *float64 `json:"location_lat"`
	LocationLng     *float64 `json:"location_lng"`
}

// AdminUserUpdate represents the admin edit request for a user
type AdminUserUpdate struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Role  string `json:"role" binding:"omitempty,oneof=user admin"`
}

// RegisterUserRoutes registers profile and admin user management routes
func RegisterUserRoutes(router *gin.RouterGroup) {
	router.PUT("/profile", middleware.AuthMiddleware(), updateProfile)

	admin := router.Group("")
	admin.Use(middleware.AuthMiddleware(), middleware.RequireRoles(models.RoleAdmin))
	{
		admin.GET("", getUsers)
		admin.GET("/:id", getUser)
		admin.PUT("/:id", updateUser)
		admin.DELETE("/:id", deleteUser)
	}
}

// updateProfile lets the caller edit their own profile
func updateProfile(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	var req ProfileUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Phone != "" {
		user.Phone = req.Phone
	}
	if req.LocationAddress != nil {
		user.LocationAddress = *req.LocationAddress
	}
	if req.LocationCity != nil {
		user.LocationCity = *req.LocationCity
	}
	if req.LocationState != nil {
		user.LocationState = *req.LocationState
	}
	if req.LocationZipcode != nil {
		user.LocationZipcode = *req.LocationZipcode
	}
	if req.LocationCountry != nil {
		user.LocationCountry = *req.LocationCountry
	}
	if req.LocationLat != nil {
		user.LocationLat = req.LocationLat
	}
	if req.LocationLng != nil {
		user.LocationLng = req.LocationLng
	}

	if err := database.DB.Save(&user).Error; err != nil {
		log.Printf("❌ Failed to update profile for user %d: %v", user.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to update profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": user})
}

// getUsers returns all users (admin only)
func getUsers(c *gin.Context) {
	var users []models.User
	if err := database.DB.Order("created_at DESC").Find(&users).Error; err != nil {
		log.Printf("❌ Failed to fetch users: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch users"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   len(users),
		"data":    users,
	})
}

// getUser returns a single user by id (admin only)
func getUser(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid user ID"})
		return
	}

	var user models.User
	if err := database.DB.First(&user, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": user})
}

// updateUser edits a user, including role (admin only)
func updateUser(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid user ID"})
		return
	}

	var req AdminUserUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	var user models.User
	if err := database.DB.First(&user, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "User not found"})
		return
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Phone != "" {
		user.Phone = req.Phone
	}
	if req.Role != "" {
		user.Role = models.UserRole(req.Role)
	}

	if err := database.DB.Save(&user).Error; err != nil {
		log.Printf("❌ Failed to update user %d: %v", user.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to update user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": user})
}

// deleteUser removes a user (admin only)
func deleteUser(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid user ID"})
		return
	}

	var user models.User
	if err := database.DB.First(&user, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "User not found"})
		return
	}

	if err := database.DB.Delete(&user).Error; err != nil {
		log.Printf("❌ Failed to delete user %d: %v", user.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to delete user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{}})
}
