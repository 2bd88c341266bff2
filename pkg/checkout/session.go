// Package checkout holds the three step checkout state machine and its
// pricing rules. It performs no I/O; callers persist Session values.
package checkout

import (
	"strings"

	"github.com/corexathletics/storefront/pkg/catalog"
	"github.com/corexathletics/storefront/pkg/money"
)

// Step is a checkout stage. Movement is linear.
type Step int

const (
	StepItems Step = iota + 1
	StepAddress
	StepPayment
)

func (s Step) String() string {
	switch s {
	case StepItems:
		return "items"
	case StepAddress:
		return "address"
	case StepPayment:
		return "payment"
	default:
		return "unknown"
	}
}

// LineKey identifies a cart line: one product in one size and color.
type LineKey struct {
	ProductID string        `json:"product_id"`
	Size      catalog.Size  `json:"size"`
	Color     catalog.Color `json:"color"`
}

// Line is a cart line carried into checkout with its price snapshot.
type Line struct {
	LineKey
	Name      string       `json:"name"`
	Image     string       `json:"image"`
	UnitPrice money.Amount `json:"unit_price"`
	Quantity  int          `json:"quantity"`
	Selected  bool         `json:"selected"`
}

// Session is a checkout in progress. Every operation returns a new value and
// leaves the receiver untouched, so a rejected transition never leaks state.
type Session struct {
	ID      string  `json:"id"`
	Step    Step    `json:"step"`
	Lines   []Line  `json:"lines"`
	Address Address `json:"address"`
	Payment Payment `json:"payment"`
}

// Receipt is what PlaceOrder hands back to the caller.
type Receipt struct {
	Lines   []Line  `json:"lines"`
	Quote   Quote   `json:"quote"`
	Address Address `json:"address"`
	Payment Payment `json:"payment"`
}

// Start opens a checkout on the Items step with every line selected.
func Start(lines []Line) (Session, error) {
	if len(lines) == 0 {
		return Session{}, ErrEmptyCart
	}
	copied := make([]Line, len(lines))
	for i, l := range lines {
		if l.Quantity < 1 {
			return Session{}, ErrInvalidQuantity
		}
		l.Selected = true
		copied[i] = l
	}
	return Session{
		Step:    StepItems,
		Lines:   copied,
		Payment: Payment{Method: PaymentCard},
	}, nil
}

func (s Session) clone() Session {
	out := s
	out.Lines = append([]Line(nil), s.Lines...)
	return out
}

// SelectedCount is the number of selected lines.
func (s Session) SelectedCount() int {
	n := 0
	for _, l := range s.Lines {
		if l.Selected {
			n++
		}
	}
	return n
}

// guard runs every entry check for target and all earlier steps.
func (s Session) guard(target Step) error {
	if target >= StepAddress && s.SelectedCount() == 0 {
		return ErrNoItemsSelected
	}
	if target >= StepPayment {
		if missing := s.Address.Missing(); len(missing) > 0 {
			return &AddressError{Missing: missing}
		}
	}
	return nil
}

// Next advances one step when the entry checks for the next step pass.
func (s Session) Next() (Session, error) {
	if s.Step < StepItems || s.Step >= StepPayment {
		return s, ErrInvalidTransition
	}
	target := s.Step + 1
	if err := s.guard(target); err != nil {
		return s, err
	}
	out := s.clone()
	out.Step = target
	return out, nil
}

// Previous goes back one step without validation and stops at Items.
func (s Session) Previous() Session {
	out := s.clone()
	if out.Step > StepItems {
		out.Step--
	}
	return out
}

func (s Session) SetSelected(key LineKey, selected bool) (Session, error) {
	out := s.clone()
	for i := range out.Lines {
		if out.Lines[i].LineKey == key {
			out.Lines[i].Selected = selected
			return out, nil
		}
	}
	return s, ErrUnknownLine
}

// UpdateAddress replaces the address. Fields are trimmed and a recognised
// region is stored in its canonical spelling.
func (s Session) UpdateAddress(a Address) Session {
	a.FullName = strings.TrimSpace(a.FullName)
	a.PhoneNumber = strings.TrimSpace(a.PhoneNumber)
	a.Street = strings.TrimSpace(a.Street)
	a.City = strings.TrimSpace(a.City)
	a.PostalCode = strings.TrimSpace(a.PostalCode)
	if r, err := ParseRegion(string(a.Region)); err == nil {
		a.Region = r
	}
	out := s.clone()
	out.Address = a
	return out
}

func (s Session) SelectPaymentMethod(m PaymentMethod) (Session, error) {
	if _, ok := paymentLabels[m]; !ok {
		return s, ErrUnknownPaymentMethod
	}
	out := s.clone()
	out.Payment.Method = m
	return out, nil
}

// ApplyDiscount freezes percent-of-subtotal for the current selection. The
// amount is not recomputed when the selection later changes. An unknown code
// leaves any earlier discount in place.
func (s Session) ApplyDiscount(code string, table DiscountTable) (Session, error) {
	normalized := NormalizeCode(code)
	pct, ok := table.Lookup(normalized)
	if normalized == "" || !ok {
		return s, ErrInvalidDiscountCode
	}
	sub, _ := Subtotal(s.Lines)
	out := s.clone()
	out.Payment.DiscountCode = normalized
	out.Payment.Discount = sub.Percent(pct)
	return out, nil
}

func (s Session) ClearDiscount() Session {
	out := s.clone()
	out.Payment.DiscountCode = ""
	out.Payment.Discount = 0
	return out
}

func (s Session) Quote(p Pricing) Quote {
	return p.QuoteLines(s.Lines, s.Payment.Discount)
}

// PlaceOrder re-runs every gate and returns the receipt for the selected lines.
func (s Session) PlaceOrder(p Pricing) (Receipt, error) {
	if s.Step != StepPayment {
		return Receipt{}, ErrInvalidTransition
	}
	if err := s.guard(StepPayment); err != nil {
		return Receipt{}, err
	}
	if _, ok := paymentLabels[s.Payment.Method]; !ok {
		return Receipt{}, ErrUnknownPaymentMethod
	}

	selected := make([]Line, 0, len(s.Lines))
	for _, l := range s.Lines {
		if l.Selected {
			selected = append(selected, l)
		}
	}
	return Receipt{
		Lines:   selected,
		Quote:   s.Quote(p),
		Address: s.Address,
		Payment: s.Payment,
	}, nil
}
