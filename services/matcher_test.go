package services

import (
	"testing"
	"time"

	"lostfound-server/database"
	"lostfound-server/models"
)

func setupMatcherDB(t *testing.T) {
	t.Helper()
	database.DB = database.NewTestDB(t)
}

func matcherUser(t *testing.T, email string) models.User {
	t.Helper()
	user := models.User{Name: "Matcher", Email: email, PasswordHash: "x"}
	if err := database.DB.Create(&user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func matcherItem(t *testing.T, userID uint, typ models.ItemType, category models.ItemCategory, lat, lng float64) models.Item {
	t.Helper()
	item := models.Item{
		Title:       "Matcher item",
		Description: "d",
		Category:    category,
		Type:        typ,
		Status:      models.ItemStatusOpen,
		Date:        time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		LocationLat: &lat,
		LocationLng: &lng,
		UserID:      userID,
	}
	if err := database.DB.Create(&item).Error; err != nil {
		t.Fatalf("create item: %v", err)
	}
	return item
}

func notificationCount(t *testing.T, userID uint) int64 {
	t.Helper()
	var count int64
	database.DB.Model(&models.Notification{}).
		Where("user_id = ? AND type = ?", userID, models.NotificationMatch).
		Count(&count)
	return count
}

func TestFindMatchesNotifiesBothOwners(t *testing.T) {
	setupMatcherDB(t)
	finder := matcherUser(t, "finder@example.com")
	loser := matcherUser(t, "loser@example.com")

	// About 1.5 km apart.
	matcherItem(t, finder.ID, models.TypeFound, models.CategoryElectronics, 10.0, 10.0)
	lost := matcherItem(t, loser.ID, models.TypeLost, models.CategoryElectronics, 10.01, 10.01)

	FindMatches(lost)

	if got := notificationCount(t, loser.ID); got != 1 {
		t.Errorf("expected 1 match notification for the reporter, got %d", got)
	}
	if got := notificationCount(t, finder.ID); got != 1 {
		t.Errorf("expected 1 match notification for the finder, got %d", got)
	}
}

func TestFindMatchesOutsideRadius(t *testing.T) {
	setupMatcherDB(t)
	finder := matcherUser(t, "finder@example.com")
	loser := matcherUser(t, "loser@example.com")

	// Roughly 150 km apart.
	matcherItem(t, finder.ID, models.TypeFound, models.CategoryElectronics, 10.0, 10.0)
	lost := matcherItem(t, loser.ID, models.TypeLost, models.CategoryElectronics, 11.0, 11.0)

	FindMatches(lost)

	if got := notificationCount(t, loser.ID); got != 0 {
		t.Errorf("expected no notifications beyond the match radius, got %d", got)
	}
}

func TestFindMatchesFiltersCategoryTypeAndStatus(t *testing.T) {
	setupMatcherDB(t)
	finder := matcherUser(t, "finder@example.com")
	loser := matcherUser(t, "loser@example.com")

	// Wrong category.
	matcherItem(t, finder.ID, models.TypeFound, models.CategoryPets, 10.0, 10.0)
	// Same type as the new item.
	matcherItem(t, finder.ID, models.TypeLost, models.CategoryElectronics, 10.0, 10.0)
	// Right everything, but not open anymore.
	closed := matcherItem(t, finder.ID, models.TypeFound, models.CategoryElectronics, 10.0, 10.0)
	database.DB.Model(&closed).Update("status", models.ItemStatusClaimed)

	lost := matcherItem(t, loser.ID, models.TypeLost, models.CategoryElectronics, 10.0, 10.0)
	FindMatches(lost)

	if got := notificationCount(t, loser.ID); got != 0 {
		t.Errorf("expected no notifications, got %d", got)
	}
}

func TestFindMatchesSkipsItemsWithoutCoordinates(t *testing.T) {
	setupMatcherDB(t)
	loser := matcherUser(t, "loser@example.com")

	item := models.Item{
		Title:       "No location",
		Description: "d",
		Category:    models.CategoryElectronics,
		Type:        models.TypeLost,
		Status:      models.ItemStatusOpen,
		Date:        time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		UserID:      loser.ID,
	}
	if err := database.DB.Create(&item).Error; err != nil {
		t.Fatalf("create item: %v", err)
	}

	FindMatches(item)

	if got := notificationCount(t, loser.ID); got != 0 {
		t.Errorf("expected no notifications for an item without coordinates, got %d", got)
	}
}
