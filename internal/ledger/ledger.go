// Package ledger is the single source of truth for what a book's ticket
// cursor means and which transitions are legal. It operates purely on value
// types — writing the new cursor and toggling active/finish flags is the
// caller's responsibility, so the math stays independently testable.
//
// Two counting conventions exist: "reverse" books count down from
// total_tickets to -1, "forward" books count up from 0 to total_tickets.
// The terminal value for each convention means "fully consumed".
package ledger

import (
	"errors"
	"fmt"
)

// TicketOrder is a book's counting convention.
type TicketOrder string

const (
	Reverse TicketOrder = "reverse"
	Forward TicketOrder = "forward"
)

var (
	// ErrInvalidRange signals a start/end pair that violates the direction
	// dictated by the ticket order, or would yield a negative count.
	ErrInvalidRange = errors.New("invalid ticket range")
	// ErrOutOfRange signals a target cursor outside the legal window for the
	// book's convention.
	ErrOutOfRange = errors.New("target ticket out of range")
	// ErrBookExhausted signals an operation on a book already at its
	// terminal cursor.
	ErrBookExhausted = errors.New("book is fully sold")
)

// Valid reports whether o is a known ticket order.
func (o TicketOrder) Valid() bool {
	return o == Reverse || o == Forward
}

// InitialTicket returns the cursor a fresh, untouched book starts at.
func InitialTicket(order TicketOrder, totalTickets int) int {
	if order == Reverse {
		return totalTickets
	}
	return 0
}

// IsExhausted reports whether the cursor is at the terminal value for the
// convention, meaning every ticket in the book has been consumed.
func IsExhausted(order TicketOrder, ticket, totalTickets int) bool {
	if order == Reverse {
		return ticket == -1
	}
	return ticket == totalTickets
}

// FullSaleTicket returns the terminal cursor for the convention — the value a
// book is set to when it is declared fully sold without a scanned reading.
func FullSaleTicket(order TicketOrder, totalTickets int) int {
	if order == Reverse {
		return -1
	}
	return totalTickets
}

// SoldCount returns the number of tickets consumed when the cursor moves from
// start to end. The move must follow the convention's direction; anything
// else is ErrInvalidRange.
func SoldCount(order TicketOrder, start, end int) (int, error) {
	var n int
	switch order {
	case Reverse:
		n = start - end
	case Forward:
		n = end - start
	default:
		return 0, fmt.Errorf("%w: unknown ticket order %q", ErrInvalidRange, order)
	}
	if n < 0 {
		return 0, fmt.Errorf("%w: start %d, end %d (%s)", ErrInvalidRange, start, end, order)
	}
	return n, nil
}

// ValidateTarget checks that a requested target cursor is reachable from
// start under the convention: [-1, start] for reverse, [start, totalTickets]
// for forward.
func ValidateTarget(order TicketOrder, start, target, totalTickets int) error {
	switch order {
	case Reverse:
		if target < -1 || target > start {
			return fmt.Errorf("%w: target %d not in [-1, %d]", ErrOutOfRange, target, start)
		}
	case Forward:
		if target < start || target > totalTickets {
			return fmt.Errorf("%w: target %d not in [%d, %d]", ErrOutOfRange, target, start, totalTickets)
		}
	default:
		return fmt.Errorf("%w: unknown ticket order %q", ErrOutOfRange, order)
	}
	return nil
}
