package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFromDecimal(t *testing.T) {
	assert.Equal(t, Cents(1250), FromDecimal(decimal.RequireFromString("12.50")))
	assert.Equal(t, Cents(0), FromDecimal(decimal.Zero))
	assert.Equal(t, Cents(-300), FromDecimal(decimal.RequireFromString("-3")))
	// Fractional cents are rounded at the boundary, half away from zero.
	assert.Equal(t, Cents(101), FromDecimal(decimal.RequireFromString("1.005")))
	assert.Equal(t, Cents(100), FromDecimal(decimal.RequireFromString("1.004")))
}

func TestDecimalRoundTrip(t *testing.T) {
	c := Cents(987654)
	assert.True(t, decimal.RequireFromString("9876.54").Equal(c.Decimal()))
	assert.Equal(t, c, FromDecimal(c.Decimal()))
}

func TestMulInt(t *testing.T) {
	assert.Equal(t, Cents(1500), Cents(100).MulInt(15))
	assert.Equal(t, Cents(0), Cents(200).MulInt(0))
}
