package checkout

import (
	"fmt"
	"strings"

	"github.com/corexathletics/storefront/pkg/money"
)

// PaymentMethod is how the shopper intends to pay. No payment is captured.
type PaymentMethod string

const (
	PaymentCard       PaymentMethod = "card"
	PaymentUPI        PaymentMethod = "upi"
	PaymentCOD        PaymentMethod = "cod"
	PaymentNetBanking PaymentMethod = "netbanking"
)

var paymentLabels = map[PaymentMethod]string{
	PaymentCard:       "Credit/Debit Card",
	PaymentUPI:        "UPI",
	PaymentCOD:        "Cash on Delivery",
	PaymentNetBanking: "Net Banking",
}

func AllPaymentMethods() []PaymentMethod {
	return []PaymentMethod{PaymentCard, PaymentUPI, PaymentCOD, PaymentNetBanking}
}

func (m PaymentMethod) Label() string { return paymentLabels[m] }

func ParsePaymentMethod(s string) (PaymentMethod, error) {
	m := PaymentMethod(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := paymentLabels[m]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownPaymentMethod, s)
	}
	return m, nil
}

// Payment holds the payment step selections. Discount is the absolute amount
// computed when DiscountCode was applied.
type Payment struct {
	Method       PaymentMethod `json:"method"`
	DiscountCode string        `json:"discount_code,omitempty"`
	Discount     money.Amount  `json:"discount"`
}

// DiscountTable resolves a normalised code to a whole percent off.
type DiscountTable interface {
	Lookup(code string) (percent int64, ok bool)
}

// StaticDiscounts is an in-memory DiscountTable.
type StaticDiscounts map[string]int64

func (d StaticDiscounts) Lookup(code string) (int64, bool) {
	pct, ok := d[code]
	return pct, ok
}

func DefaultDiscounts() StaticDiscounts {
	return StaticDiscounts{
		"SAVE10":    10,
		"FIRST20":   20,
		"WELCOME15": 15,
	}
}

// NormalizeCode trims and upper-cases a shopper entered code.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
