// Package money defines the fixed-point monetary type used across the domain.
// Every stored amount is an integer count of minor currency units (cents);
// floating-point values never participate in a stored computation. Decimal
// values appear only at the API boundary, where they are converted once.
package money

import "github.com/shopspring/decimal"

// Cents is a monetary amount in minor currency units.
type Cents int64

var hundred = decimal.NewFromInt(100)

// FromDecimal converts a decimal currency value (e.g. "12.50") to cents,
// rounding half-away-from-zero to two places first. Fractional-cent inputs
// are rounded here, at the boundary, so the core only ever sees integers.
func FromDecimal(d decimal.Decimal) Cents {
	return Cents(d.Round(2).Mul(hundred).IntPart())
}

// Decimal converts cents back to a two-place decimal for presentation.
func (c Cents) Decimal() decimal.Decimal {
	return decimal.New(int64(c), -2)
}

// MulInt multiplies a unit price by a ticket count.
func (c Cents) MulInt(n int) Cents {
	return c * Cents(n)
}
