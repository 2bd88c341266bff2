// Package catalog holds the product reference data, the enumerations shared by
// every picker, and the pure filter and sort pipeline over them.
package catalog

import (
	"errors"
	"fmt"

	"github.com/corexathletics/storefront/pkg/money"
)

var ErrProductNotFound = errors.New("product not found")

// Catalog is an immutable, validated snapshot of products in display order.
type Catalog struct {
	products []Product
	byID     map[string]int
}

// New validates products and builds a snapshot. The input slice is copied.
func New(products []Product) (*Catalog, error) {
	c := &Catalog{
		products: make([]Product, 0, len(products)),
		byID:     make(map[string]int, len(products)),
	}
	for _, p := range products {
		if err := validate(p); err != nil {
			return nil, err
		}
		if _, dup := c.byID[p.ID]; dup {
			return nil, fmt.Errorf("duplicate product id %q", p.ID)
		}
		c.byID[p.ID] = len(c.products)
		c.products = append(c.products, p.clone())
	}
	return c, nil
}

func validate(p Product) error {
	switch {
	case p.ID == "":
		return errors.New("product id is required")
	case p.Name == "":
		return fmt.Errorf("product %s: name is required", p.ID)
	case p.Price <= 0:
		return fmt.Errorf("product %s: price must be positive", p.ID)
	case p.OriginalPrice != nil && *p.OriginalPrice <= p.Price:
		return fmt.Errorf("product %s: original price must exceed price", p.ID)
	case !p.Category.Valid():
		return fmt.Errorf("product %s: unknown category %q", p.ID, p.Category)
	case len(p.Sizes) == 0:
		return fmt.Errorf("product %s: at least one size is required", p.ID)
	case len(p.Colors) == 0:
		return fmt.Errorf("product %s: at least one color is required", p.ID)
	case p.Rating < 0 || p.Rating > 5:
		return fmt.Errorf("product %s: rating must be within 0..5", p.ID)
	case p.Reviews < 0:
		return fmt.Errorf("product %s: review count must not be negative", p.ID)
	case !p.Badge.Valid():
		return fmt.Errorf("product %s: unknown badge %q", p.ID, p.Badge)
	}
	for _, s := range p.Sizes {
		if !s.Valid() {
			return fmt.Errorf("product %s: unknown size %q", p.ID, s)
		}
	}
	for _, col := range p.Colors {
		if !col.Valid() {
			return fmt.Errorf("product %s: unknown color %q", p.ID, col)
		}
	}
	return nil
}

func (c *Catalog) Len() int { return len(c.products) }

// All returns every product in catalog order.
func (c *Catalog) All() []Product {
	out := make([]Product, len(c.products))
	for i, p := range c.products {
		out[i] = p.clone()
	}
	return out
}

func (c *Catalog) Get(id string) (Product, error) {
	i, ok := c.byID[id]
	if !ok {
		return Product{}, ErrProductNotFound
	}
	return c.products[i].clone(), nil
}

// Names lists product names in catalog order.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.products))
	for i, p := range c.products {
		names[i] = p.Name
	}
	return names
}

// PriceBounds returns the cheapest and dearest price. Both are zero for an
// empty catalog.
func (c *Catalog) PriceBounds() (min, max money.Amount) {
	for i, p := range c.products {
		if i == 0 || p.Price < min {
			min = p.Price
		}
		if p.Price > max {
			max = p.Price
		}
	}
	return min, max
}

// Filter runs the filter and sort pipeline against the snapshot.
func (c *Catalog) Filter(f Filter) Result {
	return Apply(c.products, f)
}
