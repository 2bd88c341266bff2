package models

import "time"

// WishlistItem is one (user, product) pair of the wishlist set.
type WishlistItem struct {
	UserID    string    `gorm:"primaryKey;type:varchar(64)" json:"-"`
	ProductID string    `gorm:"primaryKey;type:varchar(64)" json:"product_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (WishlistItem) TableName() string { return "wishlist_items" }

type WishlistView struct {
	ProductIDs []string       `json:"product_ids"`
	Items      []WishlistItem `json:"items"`
}
