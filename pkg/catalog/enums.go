package catalog

import (
	"fmt"
	"strings"
)

// Category groups products on the shop page.
type Category string

const (
	CategoryTees        Category = "tees"
	CategoryCompression Category = "compression"
	CategoryJoggers     Category = "joggers"
	CategorySportsBras  Category = "sports-bras"
	CategoryHoodies     Category = "hoodies"
	CategoryTanks       Category = "tanks"
)

// CategoryAll is the picker value meaning "no category selected". It is never
// stored on a product.
const CategoryAll = "all"

var categoryLabels = map[Category]string{
	CategoryTees:        "Performance Tees",
	CategoryCompression: "Compression Gear",
	CategoryJoggers:     "Joggers",
	CategorySportsBras:  "Sports Bras",
	CategoryHoodies:     "Hoodies",
	CategoryTanks:       "Tank Tops",
}

func AllCategories() []Category {
	return []Category{CategoryTees, CategoryCompression, CategoryJoggers, CategorySportsBras, CategoryHoodies, CategoryTanks}
}

func (c Category) Label() string { return categoryLabels[c] }

func (c Category) Valid() bool {
	_, ok := categoryLabels[c]
	return ok
}

func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("unknown category %q", s)
	}
	return c, nil
}

// Size is a garment size. Sizes are ordered smallest first.
type Size string

const (
	SizeXS  Size = "XS"
	SizeS   Size = "S"
	SizeM   Size = "M"
	SizeL   Size = "L"
	SizeXL  Size = "XL"
	SizeXXL Size = "XXL"
)

func AllSizes() []Size {
	return []Size{SizeXS, SizeS, SizeM, SizeL, SizeXL, SizeXXL}
}

func (s Size) Valid() bool {
	for _, known := range AllSizes() {
		if s == known {
			return true
		}
	}
	return false
}

func ParseSize(s string) (Size, error) {
	size := Size(strings.ToUpper(strings.TrimSpace(s)))
	if !size.Valid() {
		return "", fmt.Errorf("unknown size %q", s)
	}
	return size, nil
}

// Color is a named colorway.
type Color string

const (
	ColorBlack    Color = "Black"
	ColorWhite    Color = "White"
	ColorNavy     Color = "Navy"
	ColorGray     Color = "Gray"
	ColorCharcoal Color = "Charcoal"
	ColorRed      Color = "Red"
	ColorPink     Color = "Pink"
	ColorPurple   Color = "Purple"
	ColorOlive    Color = "Olive"
	ColorBlue     Color = "Blue"
	ColorGreen    Color = "Green"
)

func AllColors() []Color {
	return []Color{ColorBlack, ColorWhite, ColorNavy, ColorGray, ColorCharcoal, ColorRed, ColorPink, ColorPurple, ColorOlive, ColorBlue, ColorGreen}
}

func (c Color) Valid() bool {
	for _, known := range AllColors() {
		if c == known {
			return true
		}
	}
	return false
}

func ParseColor(s string) (Color, error) {
	trimmed := strings.TrimSpace(s)
	for _, known := range AllColors() {
		if strings.EqualFold(trimmed, string(known)) {
			return known, nil
		}
	}
	return "", fmt.Errorf("unknown color %q", s)
}

// Badge is the promotional tag shown on a product card.
type Badge string

const (
	BadgeNone Badge = ""
	BadgeSale Badge = "SALE"
	BadgeNew  Badge = "NEW"
)

func (b Badge) Valid() bool {
	return b == BadgeNone || b == BadgeSale || b == BadgeNew
}

// SortKey selects the result ordering.
type SortKey string

const (
	SortFeatured  SortKey = "featured"
	SortPriceLow  SortKey = "price-low"
	SortPriceHigh SortKey = "price-high"
	SortRating    SortKey = "rating"
	SortNewest    SortKey = "newest"
)

var sortLabels = map[SortKey]string{
	SortFeatured:  "Featured",
	SortPriceLow:  "Price: Low to High",
	SortPriceHigh: "Price: High to Low",
	SortRating:    "Highest Rated",
	SortNewest:    "Newest",
}

func AllSortKeys() []SortKey {
	return []SortKey{SortFeatured, SortPriceLow, SortPriceHigh, SortRating, SortNewest}
}

func (k SortKey) Label() string { return sortLabels[k] }

// ParseSortKey maps an empty value to SortFeatured.
func ParseSortKey(s string) (SortKey, error) {
	trimmed := strings.ToLower(strings.TrimSpace(s))
	if trimmed == "" {
		return SortFeatured, nil
	}
	k := SortKey(trimmed)
	if _, ok := sortLabels[k]; !ok {
		return "", fmt.Errorf("unknown sort key %q", s)
	}
	return k, nil
}
