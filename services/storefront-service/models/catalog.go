package models

import (
	"github.com/corexathletics/storefront/pkg/catalog"
	"github.com/corexathletics/storefront/pkg/money"
)

type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

type PriceRange struct {
	Min money.Amount `json:"min"`
	Max money.Amount `json:"max"`
}

// CatalogOptions feeds every picker on the storefront.
type CatalogOptions struct {
	Categories     []Option        `json:"categories"`
	Sizes          []catalog.Size  `json:"sizes"`
	Colors         []catalog.Color `json:"colors"`
	SortOptions    []Option        `json:"sort_options"`
	PriceRange     PriceRange      `json:"price_range"`
	Regions        []string        `json:"regions"`
	PaymentMethods []Option        `json:"payment_methods"`
}

type ProductListMeta struct {
	Filtered      int  `json:"filtered"`
	Total         int  `json:"total"`
	FiltersActive bool `json:"filters_active"`
}

type ProductListResponse struct {
	Products []catalog.Product `json:"products"`
	Meta     ProductListMeta   `json:"meta"`
}
