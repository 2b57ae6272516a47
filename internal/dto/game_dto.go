package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateGameRequest struct {
	GameNumber   int             `json:"game_number"   validate:"required,gt=0"`
	Name         string          `json:"name"          validate:"required"`
	Price        decimal.Decimal `json:"price"         validate:"gt=0"`
	TotalTickets int             `json:"total_tickets" validate:"required,gt=0"`
	TicketOrder  string          `json:"ticket_order"  validate:"omitempty,oneof=reverse forward"`
}

// UpdateGameRequest enumerates exactly the fields an update may touch.
// Price, TotalTickets and TicketOrder are rejected by the service once any
// book of the game has sales entries.
type UpdateGameRequest struct {
	Name         *string          `json:"name"`
	Price        *decimal.Decimal `json:"price"          validate:"omitempty,gt=0"`
	TotalTickets *int             `json:"total_tickets"  validate:"omitempty,gt=0"`
	TicketOrder  *string          `json:"ticket_order"   validate:"omitempty,oneof=reverse forward"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type GameResponse struct {
	ID           string          `json:"id"`
	GameNumber   int             `json:"game_number"`
	Name         string          `json:"name"`
	Price        decimal.Decimal `json:"price"`
	TotalTickets int             `json:"total_tickets"`
	TicketOrder  string          `json:"ticket_order"`
	IsExpired    bool            `json:"is_expired"`
	CreatedAt    string          `json:"created_at"`
	ExpiredAt    *string         `json:"expired_at"`
}

// PriceCheckResponse answers the public scanned-game price lookup.
type PriceCheckResponse struct {
	GameNumber   int             `json:"game_number"`
	Name         string          `json:"name"`
	Price        decimal.Decimal `json:"price"`
	TotalTickets int             `json:"total_tickets"`
	TicketOrder  string          `json:"ticket_order"`
	IsExpired    bool            `json:"is_expired"`
}
