package models

import (
	"time"

	"github.com/google/uuid"
)

// Activities are the favourite categories a shopper can pick on their profile.
var Activities = []string{"Training", "Running", "Yoga", "Swimming", "Basketball", "Football"}

// ShoeSizes are the accepted shoe size preferences.
var ShoeSizes = []string{"6", "7", "8", "9", "10", "11", "12", "13"}

type SizePreferences struct {
	Tops    string `json:"tops"`
	Bottoms string `json:"bottoms"`
	Shoes   string `json:"shoes"`
}

type Preferences struct {
	FavoriteCategories []string        `json:"favorite_categories"`
	SizePreferences    SizePreferences `json:"size_preferences"`
	Notifications      bool            `json:"notifications"`
}

// DefaultPreferences are what a new profile starts with.
func DefaultPreferences() Preferences {
	return Preferences{FavoriteCategories: []string{}, Notifications: true}
}

// Profile is the shopper record keyed by user ID.
type Profile struct {
	UserID         uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	Email          string      `gorm:"not null" json:"email"`
	FullName       string      `json:"full_name"`
	Phone          string      `json:"phone"`
	Bio            string      `json:"bio"`
	Location       string      `json:"location"`
	AvatarURL      string      `json:"avatar_url"`
	AddressStreet  string      `json:"address_street"`
	AddressCity    string      `json:"address_city"`
	AddressState   string      `json:"address_state"`
	AddressZip     string      `json:"address_zip"`
	AddressCountry string      `json:"address_country"`
	Preferences    Preferences `gorm:"type:jsonb;serializer:json" json:"preferences"`
	CreatedAt      time.Time   `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time   `gorm:"autoUpdateTime" json:"updated_at"`
}

// UpdateProfileRequest is a partial update: nil fields are left unchanged.
type UpdateProfileRequest struct {
	Email          *string                 `json:"email"`
	FullName       *string                 `json:"full_name"`
	Phone          *string                 `json:"phone"`
	Bio            *string                 `json:"bio"`
	Location       *string                 `json:"location"`
	AvatarURL      *string                 `json:"avatar_url"`
	AddressStreet  *string                 `json:"address_street"`
	AddressCity    *string                 `json:"address_city"`
	AddressState   *string                 `json:"address_state"`
	AddressZip     *string                 `json:"address_zip"`
	AddressCountry *string                 `json:"address_country"`
	Preferences    *UpdatePreferencesInput `json:"preferences"`
}

type UpdatePreferencesInput struct {
	FavoriteCategories *[]string        `json:"favorite_categories"`
	SizePreferences    *SizePreferences `json:"size_preferences"`
	Notifications      *bool            `json:"notifications"`
}

type AvatarUploadRequest struct {
	Filename    string `json:"filename" binding:"required"`
	ContentType string `json:"content_type" binding:"required"`
}
