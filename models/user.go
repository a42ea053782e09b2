package models

import (
	"time"

	"gorm.io/gorm"
)

type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

type User struct {
	ID           uint     `json:"id" gorm:"primaryKey"`
	Name         string   `json:"name" gorm:"size:255;not null"`
	Email        string   `json:"email" gorm:"size:255;uniqueIndex;not null"`
	PasswordHash string   `json:"-" gorm:"size:255;not null"` // Hidden from JSON
	Role         UserRole `json:"role" gorm:"type:varchar(20);not null;default:'user';check:role IN ('user','admin')"`
	Phone        string   `json:"phone" gorm:"size:20"`

	// Location
	LocationAddress string   `json:"location_address" gorm:"type:text"`
	LocationCity    string   `json:"location_city" gorm:"size:100"`
	LocationState   string   `json:"location_state" gorm:"size:100"`
	LocationZipcode string   `json:"location_zipcode" gorm:"size:20"`
	LocationCountry string   `json:"location_country" gorm:"size:100"`
	LocationLat     *float64 `json:"location_lat" gorm:"type:decimal(10,8)"`
	LocationLng     *float64 `json:"location_lng" gorm:"type:decimal(11,8)"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	// Relationships
	Items  []Item  `json:"items,omitempty" gorm:"foreignKey:UserID"`
	Claims []Claim `json:"claims,omitempty" gorm:"foreignKey:UserID"`
}

// TableName specifies the table name for the User model
func (User) TableName() string {
	return "users"
}

// BeforeCreate is a GORM hook that runs before creating a user
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.Role == "" {
		u.Role = RoleUser
	}
	return nil
}

// IsValidRole checks if the user role is valid
func (u *User) IsValidRole() bool {
	switch u.Role {
	case RoleUser, RoleAdmin:
		return true
	default:
		return false
	}
}

// IsAdmin checks if the user is an admin
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
