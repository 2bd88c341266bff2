// Package money represents storefront prices as integer cents so that sums,
// tax and discounts never accumulate binary floating point error.
package money

import (
	"errors"
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// Amount is a count of cents.
type Amount int64

const Zero Amount = 0

// ErrOutOfRange is returned for amounts that do not fit in int64 cents.
var ErrOutOfRange = errors.New("amount out of range")

var (
	maxCents = decimal.NewFromInt(math.MaxInt64)
	minCents = maxCents.Neg()
)

func FromCents(c int64) Amount { return Amount(c) }

// FromDecimal converts a decimal amount to cents, rounding half away from
// zero. Magnitudes beyond the int64 cent range are rejected.
func FromDecimal(d decimal.Decimal) (Amount, error) {
	c := d.Shift(2).Round(0)
	if c.GreaterThan(maxCents) || c.LessThan(minCents) {
		return 0, ErrOutOfRange
	}
	return Amount(c.IntPart()), nil
}

// FromFloat converts a decimal amount using its shortest decimal
// representation, so 1.005 becomes 1.01. Out of range values saturate.
func FromFloat(v float64) Amount {
	a, err := FromDecimal(decimal.NewFromFloat(v))
	if err != nil {
		if v < 0 {
			return -Amount(math.MaxInt64)
		}
		return Amount(math.MaxInt64)
	}
	return a
}

// Parse reads a decimal string such as "45", "45.5" or "45.50".
func Parse(s string) (Amount, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	a, err := FromDecimal(d)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return a, nil
}

func (a Amount) Cents() int64 { return int64(a) }

func (a Amount) Decimal() decimal.Decimal { return decimal.New(int64(a), -2) }

func (a Amount) Float() float64 { return a.Decimal().InexactFloat64() }

func (a Amount) String() string { return a.Decimal().StringFixed(2) }

// MulQty multiplies a unit price by a quantity.
func (a Amount) MulQty(qty int) Amount { return a * Amount(qty) }

// Percent returns pct percent of a, rounded half-up to the cent.
func (a Amount) Percent(pct int64) Amount {
	return scale(a, pct, 100)
}

// BasisPoints returns bp/10000 of a, rounded half-up to the cent.
func (a Amount) BasisPoints(bp int64) Amount {
	return scale(a, bp, 10000)
}

// ClampZero returns a, or zero when a is negative.
func (a Amount) ClampZero() Amount {
	if a < 0 {
		return 0
	}
	return a
}

func scale(a Amount, num, den int64) Amount {
	d := decimal.NewFromInt(int64(a)).Mul(decimal.NewFromInt(num)).Div(decimal.NewFromInt(den))
	return Amount(d.Round(0).IntPart())
}

// MarshalJSON writes a plain JSON number with two fractional digits.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *Amount) UnmarshalJSON(b []byte) error {
	d, err := decimal.NewFromString(string(b))
	if err != nil {
		return fmt.Errorf("money: %s is not a number", b)
	}
	v, err := FromDecimal(d)
	if err != nil {
		return fmt.Errorf("money: %s: %w", b, err)
	}
	*a = v
	return nil
}
