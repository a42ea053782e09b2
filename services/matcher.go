package services

import (
	"fmt"
	"log"

	"lostfound-server/database"
	"lostfound-server/models"
	"lostfound-server/utils"
)

// MatchRadiusKm is how far apart two items may be and still count as a match.
const MatchRadiusKm = 5.0

// FindMatches looks for open items of the opposite type in the same category
// within MatchRadiusKm of a newly created item and records a match
// notification for both owners. It is invoked as a fire-and-forget side
// effect of item creation: every failure is logged and swallowed so the
// create call never fails because of matching.
func FindMatches(item models.Item) {
	if item.LocationLat == nil || item.LocationLng == nil {
		log.Printf("⚠️ Item %d has no coordinates, skipping match search", item.ID)
		return
	}

	oppositeType := item.Type.Opposite()

	var candidates []models.Item
	err := database.DB.
		Where("type = ? AND category = ? AND status = ? AND id <> ?",
			oppositeType, item.Category, models.ItemStatusOpen, item.ID).
		Where("location_lat IS NOT NULL AND location_lng IS NOT NULL").
		Find(&candidates).Error
	if err != nil {
		log.Printf("❌ Error finding matches for item %d: %v", item.ID, err)
		return
	}

	for _, match := range candidates {
		if !utils.WithinRadius(*item.LocationLat, *item.LocationLng,
			*match.LocationLat, *match.LocationLng, MatchRadiusKm) {
			continue
		}

		// Notification for the owner of the new item
		matchID := match.ID
		n1 := &models.Notification{
			UserID:        item.UserID,
			Title:         fmt.Sprintf("Potential %s item match", oppositeType),
			Message:       fmt.Sprintf("We found a potential match for your %s item %q", item.Type, item.Title),
			Type:          models.NotificationMatch,
			RelatedItemID: &matchID,
		}
		if err := CreateNotification(n1); err != nil {
			log.Printf("❌ Failed to create match notification for user %d: %v", item.UserID, err)
		}

		// Notification for the owner of the matched item
		newID := item.ID
		n2 := &models.Notification{
			UserID:        match.UserID,
			Title:         fmt.Sprintf("Potential %s item match", item.Type),
			Message:       fmt.Sprintf("We found a potential match for your %s item %q", match.Type, match.Title),
			Type:          models.NotificationMatch,
			RelatedItemID: &newID,
		}
		if err := CreateNotification(n2); err != nil {
			log.Printf("❌ Failed to create match notification for user %d: %v", match.UserID, err)
		}
	}
}
