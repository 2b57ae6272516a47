package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitialTicket(t *testing.T) {
	assert.Equal(t, 150, InitialTicket(Reverse, 150))
	assert.Equal(t, 0, InitialTicket(Forward, 150))
}

func TestIsExhausted(t *testing.T) {
	assert.True(t, IsExhausted(Reverse, -1, 50))
	assert.False(t, IsExhausted(Reverse, 0, 50))
	assert.True(t, IsExhausted(Forward, 50, 50))
	assert.False(t, IsExhausted(Forward, 49, 50))
}

func TestFullSaleTicket(t *testing.T) {
	assert.Equal(t, -1, FullSaleTicket(Reverse, 50))
	assert.Equal(t, 50, FullSaleTicket(Forward, 50))
}

func TestSoldCountReverse(t *testing.T) {
	n, err := SoldCount(Reverse, 99, 0)
	require.NoError(t, err)
	assert.Equal(t, 99, n)

	// Selling the last ticket of a reverse book lands on -1.
	n, err = SoldCount(Reverse, 0, -1)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	// No movement is a zero-count sale, not an error.
	n, err = SoldCount(Reverse, 42, 42)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	// Reverse books may never count upward.
	_, err = SoldCount(Reverse, 10, 11)
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestSoldCountForward(t *testing.T) {
	n, err := SoldCount(Forward, 20, 35)
	require.NoError(t, err)
	assert.Equal(t, 15, n)

	_, err = SoldCount(Forward, 35, 20)
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestValidateTargetReverse(t *testing.T) {
	// total_tickets = 50, baseline 50: -1 (fully sold) is accepted, -2 is not.
	assert.NoError(t, ValidateTarget(Reverse, 50, -1, 50))
	assert.NoError(t, ValidateTarget(Reverse, 50, 50, 50))
	assert.NoError(t, ValidateTarget(Reverse, 50, 12, 50))
	assert.ErrorIs(t, ValidateTarget(Reverse, 50, -2, 50), ErrOutOfRange)
	assert.ErrorIs(t, ValidateTarget(Reverse, 30, 31, 50), ErrOutOfRange)
}

func TestValidateTargetForward(t *testing.T) {
	assert.NoError(t, ValidateTarget(Forward, 0, 100, 100))
	assert.NoError(t, ValidateTarget(Forward, 20, 20, 100))
	assert.ErrorIs(t, ValidateTarget(Forward, 20, 19, 100), ErrOutOfRange)
	assert.ErrorIs(t, ValidateTarget(Forward, 20, 101, 100), ErrOutOfRange)
}

func TestUnknownOrder(t *testing.T) {
	_, err := SoldCount(TicketOrder("sideways"), 1, 2)
	assert.ErrorIs(t, err, ErrInvalidRange)
	assert.ErrorIs(t, ValidateTarget(TicketOrder("sideways"), 1, 2, 3), ErrOutOfRange)
	assert.False(t, TicketOrder("sideways").Valid())
	assert.True(t, Reverse.Valid())
}
