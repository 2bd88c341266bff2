package catalog

import (
	"strings"
	"testing"

	"github.com/corexathletics/storefront/pkg/money"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ids(ps []Product) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.ID
	}
	return out
}

func amount(cents int64) *money.Amount {
	a := money.FromCents(cents)
	return &a
}

func TestApplyEmptyFilterReturnsEverythingFeaturedFirst(t *testing.T) {
	res := Default().Filter(Filter{})

	assert.Equal(t, []string{"xt-001", "cs-002", "xb-003", "xj-004", "xh-005", "xt-006"}, ids(res.Products))
	assert.Equal(t, 6, res.Filtered)
	assert.Equal(t, 6, res.Total)
	assert.False(t, res.FiltersActive)
}

func TestApplyPredicates(t *testing.T) {
	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{"single category", Filter{Categories: []Category{CategoryTees}}, []string{"xt-001"}},
		{"two categories", Filter{Categories: []Category{CategoryTanks, CategoryHoodies}}, []string{"xh-005", "xt-006"}},
		{"size any-of", Filter{Sizes: []Size{SizeXXL}}, []string{"xt-001", "xj-004", "xh-005"}},
		{"color any-of", Filter{Colors: []Color{ColorPink, ColorOlive}}, []string{"xb-003", "xj-004"}},
		{"price range inclusive", Filter{MinPrice: amount(4200), MaxPrice: amount(6500)}, []string{"xt-001", "xb-003", "xj-004"}},
		{"min only", Filter{MinPrice: amount(7000)}, []string{"xh-005"}},
		{"max only", Filter{MaxPrice: amount(3800)}, []string{"cs-002", "xt-006"}},
		{"query in name ignores case", Filter{Query: "  x-FLEX "}, []string{"xb-003"}},
		{"query in description", Filter{Query: "recovery"}, []string{"cs-002", "xh-005"}},
		{"combined", Filter{Categories: []Category{CategoryTees, CategoryJoggers}, Colors: []Color{ColorOlive}}, []string{"xj-004"}},
		{"no match", Filter{Categories: []Category{CategoryHoodies}, Colors: []Color{ColorPink}}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Default().Filter(tt.filter)
			assert.Equal(t, tt.want, ids(res.Products))
			assert.Equal(t, len(tt.want), res.Filtered)
			assert.Equal(t, 6, res.Total)
			assert.True(t, res.FiltersActive)
		})
	}
}

// oracle restates the retention rule independently of Apply.
func oracle(p Product, f Filter) bool {
	ok := true
	if len(f.Categories) > 0 {
		found := false
		for _, c := range f.Categories {
			found = found || c == p.Category
		}
		ok = ok && found
	}
	if len(f.Sizes) > 0 {
		found := false
		for _, s := range f.Sizes {
			found = found || p.OffersSize(s)
		}
		ok = ok && found
	}
	if len(f.Colors) > 0 {
		found := false
		for _, c := range f.Colors {
			found = found || p.OffersColor(c)
		}
		ok = ok && found
	}
	if f.MinPrice != nil {
		ok = ok && p.Price >= *f.MinPrice
	}
	if f.MaxPrice != nil {
		ok = ok && p.Price <= *f.MaxPrice
	}
	if q := strings.ToLower(strings.TrimSpace(f.Query)); q != "" {
		ok = ok && (strings.Contains(strings.ToLower(p.Name), q) || strings.Contains(strings.ToLower(p.Description), q))
	}
	return ok
}

func TestApplyIsSoundAndComplete(t *testing.T) {
	cat := Default()
	var filters []Filter
	for _, c := range append(AllCategories(), "") {
		for _, s := range []Size{"", SizeXS, SizeXXL} {
			for _, col := range []Color{"", ColorBlack, ColorNavy, ColorGreen} {
				for _, q := range []string{"", "x-", "training", "zzz"} {
					f := Filter{Query: q, MaxPrice: amount(7000)}
					if c != "" {
						f.Categories = []Category{c}
					}
					if s != "" {
						f.Sizes = []Size{s}
					}
					if col != "" {
						f.Colors = []Color{col}
					}
					filters = append(filters, f)
				}
			}
		}
	}

	for _, f := range filters {
		res := cat.Filter(f)
		kept := map[string]bool{}
		for _, p := range res.Products {
			kept[p.ID] = true
			assert.True(t, oracle(p, f), "product %s should not pass %+v", p.ID, f)
		}
		for _, p := range cat.All() {
			if oracle(p, f) {
				assert.True(t, kept[p.ID], "product %s missing for %+v", p.ID, f)
			}
		}
	}
}

func TestApplySortOrders(t *testing.T) {
	cat := Default()

	low := ids(cat.Filter(Filter{Sort: SortPriceLow}).Products)
	high := ids(cat.Filter(Filter{Sort: SortPriceHigh}).Products)
	assert.Equal(t, []string{"xt-006", "cs-002", "xb-003", "xt-001", "xj-004", "xh-005"}, low)
	for i := range low {
		assert.Equal(t, low[i], high[len(high)-1-i])
	}

	// xt-001 and xh-005 tie on 4.8 and keep catalog order.
	assert.Equal(t, []string{"cs-002", "xt-001", "xh-005", "xb-003", "xj-004", "xt-006"},
		ids(cat.Filter(Filter{Sort: SortRating}).Products))

	assert.Equal(t, []string{"xb-003", "xt-001", "cs-002", "xj-004", "xh-005", "xt-006"},
		ids(cat.Filter(Filter{Sort: SortNewest}).Products))
}

func TestApplyDoesNotExposeCatalogState(t *testing.T) {
	cat := Default()
	res := cat.Filter(Filter{Categories: []Category{CategoryTees}})
	require.Len(t, res.Products, 1)

	res.Products[0].Sizes[0] = SizeXXL
	res.Products[0].Name = "changed"

	p, err := cat.Get("xt-001")
	require.NoError(t, err)
	assert.Equal(t, SizeXS, p.Sizes[0])
	assert.Equal(t, "X-Perform Training Tee", p.Name)
}
