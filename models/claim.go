package models

import (
	"time"
)

type ClaimStatus string

const (
	ClaimStatusPending  ClaimStatus = "pending"
	ClaimStatusApproved ClaimStatus = "approved"
	ClaimStatusRejected ClaimStatus = "rejected"
)

type ContactPreference string

const (
	ContactByEmail  ContactPreference = "email"
	ContactByPhone  ContactPreference = "phone"
	ContactInPerson ContactPreference = "in-person"
)

// IsValidContactPreference checks a preference against the closed set.
func IsValidContactPreference(p ContactPreference) bool {
	switch p {
	case ContactByEmail, ContactByPhone, ContactInPerson:
		return true
	default:
		return false
	}
}

// Claim represents a user's assertion of ownership over a found item
type Claim struct {
	ID     uint `json:"id" gorm:"primaryKey"`
	ItemID uint `json:"item_id" gorm:"not null;index"`
	Item   Item `json:"item,omitempty" gorm:"foreignKey:ItemID"`
	UserID uint `json:"user_id" gorm:"not null;index"`
	User   User `json:"user,omitempty" gorm:"foreignKey:UserID"`

	Description       string            `json:"description" gorm:"type:text;not null"`
	ContactPreference ContactPreference `json:"contact_preference" gorm:"type:varchar(20);not null"`
	ContactDetails    string            `json:"contact_details" gorm:"type:text;not null"`
	Status            ClaimStatus       `json:"status" gorm:"type:varchar(20);not null;default:'pending'"`
	RejectionReason   string            `json:"rejection_reason,omitempty" gorm:"type:text"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for the Claim model
func (Claim) TableName() string {
	return "claims"
}

// ClaimCreate represents the request body for creating a claim
type ClaimCreate struct {
	ItemID            uint   `json:"item_id" binding:"required"`
	Description       string `json:"description" binding:"required"`
	ContactPreference string `json:"contact_preference" binding:"required,oneof=email phone in-person"`
	ContactDetails    string `json:"contact_details" binding:"required"`
}

// ClaimUpdate represents the request body for patching a claim
type ClaimUpdate struct {
	Description       string `json:"description"`
	ContactPreference string `json:"contact_preference" binding:"omitempty,oneof=email phone in-person"`
	ContactDetails    string `json:"contact_details"`
}

// ClaimStatusUpdate represents the admin-only status transition request
type ClaimStatusUpdate struct {
	Status          string `json:"status" binding:"required,oneof=approved rejected"`
	RejectionReason string `json:"rejection_reason"`
}
