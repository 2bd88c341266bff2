package models

import (
	"time"

	"github.com/corexathletics/storefront/pkg/checkout"
	"github.com/corexathletics/storefront/pkg/money"
)

// CheckoutRecord is what the session store persists for an owner.
type CheckoutRecord struct {
	Session   checkout.Session `json:"session"`
	OwnerID   string           `json:"owner_id"`
	StartedAt time.Time        `json:"started_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

type CheckoutView struct {
	ID       string           `json:"id"`
	Step     int              `json:"step"`
	StepName string           `json:"step_name"`
	Lines    []checkout.Line  `json:"lines"`
	Address  checkout.Address `json:"address"`
	Payment  checkout.Payment `json:"payment"`
	Quote    checkout.Quote   `json:"quote"`
}

func NewCheckoutView(s checkout.Session, q checkout.Quote) *CheckoutView {
	return &CheckoutView{
		ID:       s.ID,
		Step:     int(s.Step),
		StepName: s.Step.String(),
		Lines:    s.Lines,
		Address:  s.Address,
		Payment:  s.Payment,
		Quote:    q,
	}
}

type SelectLineRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Size      string `json:"size" binding:"required,catalog_size"`
	Color     string `json:"color" binding:"required,catalog_color"`
	Selected  *bool  `json:"selected" binding:"required"`
}

type AddressRequest struct {
	FullName    string `json:"full_name"`
	PhoneNumber string `json:"phone_number"`
	Address     string `json:"address"`
	City        string `json:"city"`
	State       string `json:"state"`
	Pincode     string `json:"pincode"`
}

func (r AddressRequest) ToAddress() checkout.Address {
	return checkout.Address{
		FullName:    r.FullName,
		PhoneNumber: r.PhoneNumber,
		Street:      r.Address,
		City:        r.City,
		Region:      checkout.Region(r.State),
		PostalCode:  r.Pincode,
	}
}

type PaymentRequest struct {
	Method string `json:"method" binding:"required"`
}

type DiscountRequest struct {
	Code string `json:"code" binding:"required"`
}

type OrderConfirmation struct {
	OrderID       string                 `json:"order_id"`
	Total         money.Amount           `json:"total"`
	Quote         checkout.Quote         `json:"quote"`
	PaymentMethod checkout.PaymentMethod `json:"payment_method"`
	PlacedAt      time.Time              `json:"placed_at"`
	Redirect      string                 `json:"redirect"`
}

// OrderPlacedEvent is published on the order topic after a checkout completes.
type OrderPlacedEvent struct {
	OrderID       string                 `json:"order_id"`
	OwnerID       string                 `json:"owner_id"`
	Guest         bool                   `json:"guest"`
	Lines         []checkout.Line        `json:"lines"`
	Quote         checkout.Quote         `json:"quote"`
	Address       checkout.Address       `json:"address"`
	PaymentMethod checkout.PaymentMethod `json:"payment_method"`
	DiscountCode  string                 `json:"discount_code,omitempty"`
	PlacedAt      time.Time              `json:"placed_at"`
}

const EventOrderPlaced = "order.placed"
