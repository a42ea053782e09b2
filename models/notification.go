package models

import (
	"time"

	"gorm.io/gorm"
)

type NotificationType string

const (
	NotificationMatch  NotificationType = "match"
	NotificationClaim  NotificationType = "claim"
	NotificationSystem NotificationType = "system"
)

// Notification is an in-app message about a match or a claim-status event
type Notification struct {
	ID      uint             `json:"id" gorm:"primaryKey"`
	UserID  uint             `json:"user_id" gorm:"not null;index"`
	Title   string           `json:"title" gorm:"not null"`
	Message string           `json:"message" gorm:"type:text;not null"`
	Type    NotificationType `json:"type" gorm:"type:varchar(20);not null"`

	RelatedItemID  *uint `json:"related_item_id"`
	RelatedClaimID *uint `json:"related_claim_id"`

	Read      bool           `json:"read" gorm:"default:false"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	User User `json:"-" gorm:"foreignKey:UserID"`
}

// TableName specifies the table name for the Notification model
func (Notification) TableName() string {
	return "notifications"
}
