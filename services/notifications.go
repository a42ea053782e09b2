package services

import (
	"log"
	"time"

	"lostfound-server/database"
	"lostfound-server/models"
	ws "lostfound-server/websocket"
)

var notificationHub *ws.Hub

// SetNotificationHub wires the live push hub. Optional; without it
// notifications are only persisted and surface through the REST listing.
func SetNotificationHub(h *ws.Hub) {
	notificationHub = h
}

// CreateNotification persists a notification and pushes it to the
// recipient's live connections when the hub is wired.
func CreateNotification(n *models.Notification) error {
	if err := database.DB.Create(n).Error; err != nil {
		return err
	}

	if notificationHub != nil {
		notificationHub.Push(n.UserID, &ws.Event{
			Type:      "notification",
			Timestamp: time.Now(),
			Data:      n,
		})
	}

	return nil
}

// NotifyClaimCreated tells an item's owner that someone claimed their item.
// Skipped with a warning when the owner reference is missing.
func NotifyClaimCreated(item models.Item, claim models.Claim) {
	if item.UserID == 0 {
		log.Printf("⚠️ Item %d has no owner, skipping claim notification", item.ID)
		return
	}

	n := &models.Notification{
		UserID:         item.UserID,
		Title:          "New claim on your item",
		Message:        `Someone has submitted a claim on your found item "` + item.Title + `"`,
		Type:           models.NotificationClaim,
		RelatedItemID:  &item.ID,
		RelatedClaimID: &claim.ID,
	}

	if err := CreateNotification(n); err != nil {
		log.Printf("❌ Failed to create claim notification for user %d: %v", item.UserID, err)
	}
}
