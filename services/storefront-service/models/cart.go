package models

import (
	"time"

	"github.com/corexathletics/storefront/pkg/catalog"
	"github.com/corexathletics/storefront/pkg/checkout"
	"github.com/corexathletics/storefront/pkg/money"
)

// MaxLineQuantity bounds a single cart line, matching the request binding.
const MaxLineQuantity = 99

// CartItem is the stored form of a cart line. Prices are resolved from the
// catalog when the cart is read.
type CartItem struct {
	ProductID string        `json:"product_id"`
	Size      catalog.Size  `json:"size"`
	Color     catalog.Color `json:"color"`
	Quantity  int           `json:"quantity"`
	AddedAt   time.Time     `json:"added_at"`
}

func (i CartItem) Key() checkout.LineKey {
	return checkout.LineKey{ProductID: i.ProductID, Size: i.Size, Color: i.Color}
}

type Cart struct {
	OwnerID   string     `json:"owner_id"`
	Items     []CartItem `json:"items"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// CartLineView is a cart line enriched with catalog data.
type CartLineView struct {
	ProductID string        `json:"product_id"`
	Name      string        `json:"name"`
	Image     string        `json:"image"`
	Size      catalog.Size  `json:"size"`
	Color     catalog.Color `json:"color"`
	UnitPrice money.Amount  `json:"unit_price"`
	Quantity  int           `json:"quantity"`
	LineTotal money.Amount  `json:"line_total"`
}

type CartView struct {
	Lines     []CartLineView `json:"lines"`
	ItemCount int            `json:"item_count"`
	Total     money.Amount   `json:"total"`
	UpdatedAt *time.Time     `json:"updated_at,omitempty"`
}

type AddCartItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Size      string `json:"size" binding:"required,catalog_size"`
	Color     string `json:"color" binding:"required,catalog_color"`
	Quantity  int    `json:"quantity" binding:"omitempty,min=1,max=99"`
}

type UpdateCartItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Size      string `json:"size" binding:"required,catalog_size"`
	Color     string `json:"color" binding:"required,catalog_color"`
	Quantity  int    `json:"quantity" binding:"required,min=1,max=99"`
}

type CartLineQuery struct {
	ProductID string `form:"product_id" binding:"required"`
	Size      string `form:"size" binding:"required,catalog_size"`
	Color     string `form:"color" binding:"required,catalog_color"`
}
