package checkout

import "github.com/corexathletics/storefront/pkg/money"

// Pricing holds the shipping and tax rules.
type Pricing struct {
	// FreeShippingOver waives shipping when the subtotal is strictly greater.
	FreeShippingOver money.Amount
	FlatShipping     money.Amount
	TaxBasisPoints   int64
}

func DefaultPricing() Pricing {
	return Pricing{
		FreeShippingOver: money.FromCents(10000),
		FlatShipping:     money.FromCents(1000),
		TaxBasisPoints:   800,
	}
}

// Quote is the order summary for the selected lines.
type Quote struct {
	Subtotal money.Amount `json:"subtotal"`
	Shipping money.Amount `json:"shipping"`
	Tax      money.Amount `json:"tax"`
	Discount money.Amount `json:"discount"`
	Total    money.Amount `json:"total"`
	Items    int          `json:"items"`
}

// Subtotal sums unit price times quantity over selected lines.
func Subtotal(lines []Line) (money.Amount, int) {
	var sub money.Amount
	items := 0
	for _, l := range lines {
		if l.Selected {
			sub += l.UnitPrice.MulQty(l.Quantity)
			items += l.Quantity
		}
	}
	return sub, items
}

func (p Pricing) Shipping(subtotal money.Amount) money.Amount {
	if subtotal > p.FreeShippingOver {
		return 0
	}
	return p.FlatShipping
}

func (p Pricing) Tax(subtotal money.Amount) money.Amount {
	return subtotal.BasisPoints(p.TaxBasisPoints)
}

// QuoteLines prices lines with a previously frozen discount amount. With no
// selected lines every figure is zero.
func (p Pricing) QuoteLines(lines []Line, discount money.Amount) Quote {
	sub, items := Subtotal(lines)
	if items == 0 {
		return Quote{}
	}
	q := Quote{
		Subtotal: sub,
		Shipping: p.Shipping(sub),
		Tax:      p.Tax(sub),
		Discount: discount,
		Items:    items,
	}
	q.Total = (q.Subtotal + q.Shipping + q.Tax - q.Discount).ClampZero()
	return q
}
