package routes

import (
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"lostfound-server/database"
	"lostfound-server/middleware"
	"lostfound-server/models"
	"lostfound-server/services"
)

// RegisterClaimRoutes registers all claim routes; every route requires auth
func RegisterClaimRoutes(router *gin.RouterGroup) {
	router.Use(middleware.AuthMiddleware())

	router.POST("", createClaim)
	router.GET("", getClaims)
	router.GET("/:id", getClaim)
	router.PUT("/:id", updateClaim)
	router.PUT("/:id/status", updateClaimStatus)
	router.DELETE("/:id", deleteClaim)
}

func preloadClaim(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Item").
		Preload("User", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name", "email")
		})
}

// createClaim submits a claim against an existing item
func createClaim(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	var req models.ClaimCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	var item models.Item
	if err := database.DB.First(&item, req.ItemID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Item not found"})
		return
	}

	claim := models.Claim{
		ItemID:            item.ID,
		UserID:            user.ID,
		Description:       req.Description,
		ContactPreference: models.ContactPreference(req.ContactPreference),
		ContactDetails:    req.ContactDetails,
		Status:            models.ClaimStatusPending,
	}

	if err := database.DB.Create(&claim).Error; err != nil {
		log.Printf("❌ Failed to create claim: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to create claim"})
		return
	}

	services.NotifyClaimCreated(item, claim)

	c.JSON(http.StatusCreated, gin.H{"success": true, "data": claim})
}

// getClaims lists claims; admins see all, users see their own
func getClaims(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	query := preloadClaim(database.DB)
	if !user.IsAdmin() {
		query = query.Where("user_id = ?", user.ID)
	}

	var claims []models.Claim
	if err := query.Order("created_at DESC").Find(&claims).Error; err != nil {
		log.Printf("❌ Error fetching claims: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch claims"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   len(claims),
		"data":    claims,
	})
}

// getClaim returns a single claim; claim owner or admin only
func getClaim(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid claim ID"})
		return
	}

	var claim models.Claim
	if err := preloadClaim(database.DB).First(&claim, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Claim not found"})
		return
	}

	if claim.UserID != user.ID && !user.IsAdmin() {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Not authorized to access this claim"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": claim})
}

// updateClaim patches claim fields; claim owner or admin only
func updateClaim(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid claim ID"})
		return
	}

	var claim models.Claim
	if err := database.DB.First(&claim, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Claim not found"})
		return
	}

	if claim.UserID != user.ID && !user.IsAdmin() {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Not authorized to update this claim"})
		return
	}

	var req models.ClaimUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	if req.Description != "" {
		claim.Description = req.Description
	}
	if req.ContactPreference != "" {
		claim.ContactPreference = models.ContactPreference(req.ContactPreference)
	}
	if req.ContactDetails != "" {
		claim.ContactDetails = req.ContactDetails
	}

	if err := database.DB.Save(&claim).Error; err != nil {
		log.Printf("❌ Failed to update claim %d: %v", claim.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to update claim"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": claim})
}

// deleteClaim removes a claim; claim owner or admin only
func deleteClaim(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid claim ID"})
		return
	}

	var claim models.Claim
	if err := database.DB.First(&claim, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Claim not found"})
		return
	}

	if claim.UserID != user.ID && !user.IsAdmin() {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Not authorized to delete this claim"})
		return
	}

	if err := database.DB.Delete(&claim).Error; err != nil {
		log.Printf("❌ Failed to delete claim %d: %v", claim.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to delete claim"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{}})
}

// updateClaimStatus approves or rejects a claim. Admin only; this is the
// only path that flips an item from open to claimed. The item write and
// the two notifications are independent writes, not a transaction.
func updateClaimStatus(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	if !user.IsAdmin() {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Not authorized to update claim status"})
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid claim ID"})
		return
	}

	var req models.ClaimStatusUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	if req.Status == string(models.ClaimStatusRejected) && req.RejectionReason == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "A rejection reason is required when rejecting a claim"})
		return
	}

	var claim models.Claim
	if err := database.DB.
		Preload("Item").
		Preload("Item.User").
		Preload("User").
		First(&claim, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Claim not found"})
		return
	}

	claim.Status = models.ClaimStatus(req.Status)
	if claim.Status == models.ClaimStatusRejected {
		claim.RejectionReason = req.RejectionReason
	}

	if err := database.DB.Save(&claim).Error; err != nil {
		log.Printf("❌ Failed to update claim %d status: %v", claim.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to update claim status"})
		return
	}

	if claim.Status == models.ClaimStatusApproved {
		if err := database.DB.Model(&models.Item{}).
			Where("id = ?", claim.ItemID).
			Update("status", models.ItemStatusClaimed).Error; err != nil {
			log.Printf("❌ Failed to mark item %d as claimed: %v", claim.ItemID, err)
		}

		owner := claim.Item.User
		claimant := claim.User

		ownerNote := &models.Notification{
			UserID: owner.ID,
			Title:  "Claim approved on your item",
			Message: fmt.Sprintf("The claim on your item %q was approved. You can reach the claimant at %s.",
				claim.Item.Title, claimant.Phone),
			Type:           models.NotificationClaim,
			RelatedItemID:  &claim.ItemID,
			RelatedClaimID: &claim.ID,
		}
		if err := services.CreateNotification(ownerNote); err != nil {
			log.Printf("❌ Failed to notify item owner %d: %v", owner.ID, err)
		}

		claimantNote := &models.Notification{
			UserID: claimant.ID,
			Title:  "Your claim was approved",
			Message: fmt.Sprintf("Your claim on %q was approved. Contact the owner at %s or visit /items/%d.",
				claim.Item.Title, owner.Phone, claim.ItemID),
			Type:           models.NotificationClaim,
			RelatedItemID:  &claim.ItemID,
			RelatedClaimID: &claim.ID,
		}
		if err := services.CreateNotification(claimantNote); err != nil {
			log.Printf("❌ Failed to notify claimant %d: %v", claimant.ID, err)
		}
	} else {
		rejectedNote := &models.Notification{
			UserID: claim.UserID,
			Title:  "Your claim was rejected",
			Message: fmt.Sprintf("Your claim on %q was rejected: %s",
				claim.Item.Title, claim.RejectionReason),
			Type:           models.NotificationClaim,
			RelatedItemID:  &claim.ItemID,
			RelatedClaimID: &claim.ID,
		}
		if err := services.CreateNotification(rejectedNote); err != nil {
			log.Printf("❌ Failed to notify claimant %d: %v", claim.UserID, err)
		}
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": claim})
}
