package checkout

import (
	"errors"
	"strings"
)

var (
	ErrEmptyCart            = errors.New("cart is empty")
	ErrNoItemsSelected      = errors.New("select at least one item to continue")
	ErrInvalidTransition    = errors.New("invalid checkout step transition")
	ErrUnknownLine          = errors.New("line is not part of this checkout")
	ErrInvalidDiscountCode  = errors.New("invalid discount code")
	ErrUnknownPaymentMethod = errors.New("unknown payment method")
	ErrInvalidQuantity      = errors.New("quantity must be at least 1")
)

// AddressError is returned when the Address step is left with mandatory
// fields missing.
type AddressError struct {
	Missing []string
}

func (e *AddressError) Error() string {
	return "address incomplete: missing " + strings.Join(e.Missing, ", ")
}
