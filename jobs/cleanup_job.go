package jobs

import (
	"log"
	"time"

	"lostfound-server/database"
	"lostfound-server/models"
)

// notificationRetention is how long read notifications are kept around.
const notificationRetention = 90 * 24 * time.Hour

// CleanupJob prunes old read notifications in the background
type CleanupJob struct {
	stopChan chan bool
}

// NewCleanupJob creates a new cleanup job
func NewCleanupJob() *CleanupJob {
	return &CleanupJob{
		stopChan: make(chan bool),
	}
}

// Start begins the cleanup job
func (j *CleanupJob) Start() {
	go j.run()
	log.Println("🚀 Notification cleanup job started")
}

// Stop stops the cleanup job
func (j *CleanupJob) Stop() {
	j.stopChan <- true
	log.Println("🛑 Notification cleanup job stopped")
}

func (j *CleanupJob) run() {
	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			j.pruneNotifications()
		case <-j.stopChan:
			return
		}
	}
}

// pruneNotifications hard-deletes read notifications past the retention
// window, soft-deleted rows included.
func (j *CleanupJob) pruneNotifications() {
	cutoff := time.Now().Add(-notificationRetention)

	result := database.DB.Unscoped().
		Where("read = ? AND created_at < ?", true, cutoff).
		Delete(&models.Notification{})
	if result.Error != nil {
		log.Printf("❌ Notification cleanup failed: %v", result.Error)
		return
	}

	if result.RowsAffected > 0 {
		log.Printf("🧹 Pruned %d old notifications", result.RowsAffected)
	}
}
