package catalog

import (
	"sort"
	"strings"

	"github.com/corexathletics/storefront/pkg/money"
)

// Filter is the shopper's filter and sort state. Empty sets and nil bounds do
// not constrain the result.
type Filter struct {
	Categories []Category
	Sizes      []Size
	Colors     []Color
	MinPrice   *money.Amount
	MaxPrice   *money.Amount
	Query      string
	Sort       SortKey
}

// Active reports whether any predicate would narrow the product set.
func (f Filter) Active() bool {
	return len(f.Categories) > 0 || len(f.Sizes) > 0 || len(f.Colors) > 0 ||
		f.MinPrice != nil || f.MaxPrice != nil || strings.TrimSpace(f.Query) != ""
}

// Result carries the retained products along with both counts, so "nothing
// matched" can be told apart from "no filter applied".
type Result struct {
	Products      []Product `json:"products"`
	Filtered      int       `json:"filtered"`
	Total         int       `json:"total"`
	FiltersActive bool      `json:"filters_active"`
}

// Apply retains the products matching every predicate of f and orders them by
// f.Sort. Ordering is stable: ties keep their input order.
func Apply(products []Product, f Filter) Result {
	query := strings.ToLower(strings.TrimSpace(f.Query))

	kept := make([]Product, 0, len(products))
	for _, p := range products {
		if f.matches(p, query) {
			kept = append(kept, p.clone())
		}
	}

	sort.SliceStable(kept, less(kept, f.Sort))

	return Result{
		Products:      kept,
		Filtered:      len(kept),
		Total:         len(products),
		FiltersActive: f.Active(),
	}
}

func (f Filter) matches(p Product, query string) bool {
	if len(f.Categories) > 0 && !containsCategory(f.Categories, p.Category) {
		return false
	}
	if len(f.Sizes) > 0 && !offersAnySize(p, f.Sizes) {
		return false
	}
	if len(f.Colors) > 0 && !offersAnyColor(p, f.Colors) {
		return false
	}
	if f.MinPrice != nil && p.Price < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && p.Price > *f.MaxPrice {
		return false
	}
	if query != "" &&
		!strings.Contains(strings.ToLower(p.Name), query) &&
		!strings.Contains(strings.ToLower(p.Description), query) {
		return false
	}
	return true
}

func less(ps []Product, key SortKey) func(i, j int) bool {
	switch key {
	case SortPriceLow:
		return func(i, j int) bool { return ps[i].Price < ps[j].Price }
	case SortPriceHigh:
		return func(i, j int) bool { return ps[i].Price > ps[j].Price }
	case SortRating:
		return func(i, j int) bool { return ps[i].Rating > ps[j].Rating }
	case SortNewest:
		return func(i, j int) bool { return ps[i].Badge == BadgeNew && ps[j].Badge != BadgeNew }
	default:
		return func(i, j int) bool { return ps[i].Featured && !ps[j].Featured }
	}
}

func containsCategory(set []Category, c Category) bool {
	for _, v := range set {
		if v == c {
			return true
		}
	}
	return false
}

func offersAnySize(p Product, set []Size) bool {
	for _, s := range set {
		if p.OffersSize(s) {
			return true
		}
	}
	return false
}

func offersAnyColor(p Product, set []Color) bool {
	for _, c := range set {
		if p.OffersColor(c) {
			return true
		}
	}
	return false
}
