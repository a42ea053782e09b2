package models

import (
	"time"
)

// ItemType says whether the report is for a lost or a found object
type ItemType string

const (
	TypeLost  ItemType = "lost"
	TypeFound ItemType = "found"
)

// Opposite returns the counterpart type used for match lookups.
func (t ItemType) Opposite() ItemType {
	if t == TypeLost {
		return TypeFound
	}
	return TypeLost
}

type ItemCategory string

const (
	CategoryElectronics ItemCategory = "Electronics"
	CategoryJewelry     ItemCategory = "Jewelry"
	CategoryClothing    ItemCategory = "Clothing"
	CategoryAccessories ItemCategory = "Accessories"
	CategoryDocuments   ItemCategory = "Documents"
	CategoryPets        ItemCategory = "Pets"
	CategoryOther       ItemCategory = "Other"
)

// ItemCategories lists every valid category value.
var ItemCategories = []ItemCategory{
	CategoryElectronics,
	CategoryJewelry,
	CategoryClothing,
	CategoryAccessories,
	CategoryDocuments,
	CategoryPets,
	CategoryOther,
}

// IsValidCategory checks a category against the closed set.
func IsValidCategory(c ItemCategory) bool {
	for _, v := range ItemCategories {
		if v == c {
			return true
		}
	}
	return false
}

type ItemStatus string

const (
	ItemStatusOpen     ItemStatus = "open"
	ItemStatusClaimed  ItemStatus = "claimed"
	ItemStatusResolved ItemStatus = "resolved"
	ItemStatusClosed   ItemStatus = "closed"
)

// IsValidItemStatus checks a status against the closed set.
func IsValidItemStatus(s ItemStatus) bool {
	switch s {
	case ItemStatusOpen, ItemStatusClaimed, ItemStatusResolved, ItemStatusClosed:
		return true
	default:
		return false
	}
}

// Item represents a lost or found object report
type Item struct {
	ID          uint         `json:"id" gorm:"primaryKey"`
	Title       string       `json:"title" gorm:"size:100;not null"`
	Description string       `json:"description" gorm:"size:500;not null"`
	Category    ItemCategory `json:"category" gorm:"type:varchar(20);not null"`
	Type        ItemType     `json:"type" gorm:"type:varchar(10);not null"`
	Status      ItemStatus   `json:"status" gorm:"type:varchar(20);not null;default:'open'"`
	Date        time.Time    `json:"date" gorm:"not null"`

	// Location
	LocationLat     *float64 `json:"location_lat" gorm:"type:decimal(10,8)"`
	LocationLng     *float64 `json:"location_lng" gorm:"type:decimal(11,8)"`
	LocationAddress string   `json:"location_address" gorm:"type:text"`
	LocationCity    string   `json:"location_city" gorm:"size:100"`
	LocationState   string   `json:"location_state" gorm:"size:100"`
	LocationZipcode string   `json:"location_zipcode" gorm:"size:20"`
	LocationCountry string   `json:"location_country" gorm:"size:100"`

	Images []string `json:"images" gorm:"serializer:json;type:text"`
	Reward float64  `json:"reward" gorm:"type:decimal(10,2);default:0"`

	UserID uint `json:"user_id" gorm:"not null;index"`
	User   User `json:"user,omitempty" gorm:"foreignKey:UserID"`

	MatchedWithID *uint `json:"matched_with_id"`
	MatchedWith   *Item `json:"matched_with,omitempty" gorm:"foreignKey:MatchedWithID"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for the Item model
func (Item) TableName() string {
	return "items"
}

// ItemCreate represents the multipart form for creating an item.
// Images arrive as separate file parts.
type ItemCreate struct {
	Title           string   `form:"title" binding:"required,max=100"`
	Description     string   `form:"description" binding:"required,max=500"`
	Category        string   `form:"category" binding:"required"`
	Type            string   `form:"type" binding:"required,oneof=lost found"`
	Date            string   `form:"date" binding:"required"` // ISO8601 or YYYY-MM-DD
	LocationLat     *float64 `form:"location_lat" binding:"required"`
	LocationLng     *float64 `form:"location_lng" binding:"required"`
	LocationAddress string   `form:"location_address"`
	LocationCity    string   `form:"location_city"`
	LocationState   string   `form:"location_state"`
	LocationZipcode string   `form:"location_zipcode"`
	LocationCountry string   `form:"location_country"`
	Reward          float64  `form:"reward" binding:"gte=0"`
}

// ItemUpdate represents the multipart form for updating an item.
// All fields are optional; empty values are left untouched.
type ItemUpdate struct {
	Title           string   `form:"title" binding:"omitempty,max=100"`
	Description     string   `form:"description" binding:"omitempty,max=500"`
	Category        string   `form:"category"`
	Status          string   `form:"status"`
	Date            string   `form:"date"`
	LocationLat     *float64 `form:"location_lat"`
	LocationLng     *float64 `form:"location_lng"`
	LocationAddress *string  `form:"location_address"`
	LocationCity    *string  `form:"location_city"`
	LocationState   *string  `form:"location_state"`
	LocationZipcode *string  `form:"location_zipcode"`
	LocationCountry *string  `form:"location_country"`
	Reward          *float64 `form:"reward" binding:"omitempty,gte=0"`
}
