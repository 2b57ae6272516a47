package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

// AddBookItem is one entry of a batch book creation.
type AddBookItem struct {
	GameID     string `json:"game_id"     validate:"required,uuid"`
	BookNumber string `json:"book_number" validate:"required,len=7,numeric"`
}

type AddBooksRequest struct {
	Books []AddBookItem `json:"books" validate:"required,min=1,dive"`
}

// ScanBookRequest resolves (and on first scan creates) a book from the
// numbers on the pad barcode.
type ScanBookRequest struct {
	GameNumber string `json:"game_number" validate:"required,len=4,numeric"`
	BookNumber string `json:"book_number" validate:"required,len=7,numeric"`
}

// EditBookRequest enumerates the only fields a book edit may touch.
// TicketOrder is rejected by the service once the book has sales entries.
type EditBookRequest struct {
	BookNumber  *string `json:"book_number"  validate:"omitempty,len=7,numeric"`
	TicketOrder *string `json:"ticket_order" validate:"omitempty,oneof=reverse forward"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type BookResponse struct {
	ID            string          `json:"id"`
	GameID        string          `json:"game_id"`
	GameNumber    int             `json:"game_number"`
	GameName      string          `json:"game_name"`
	BookNumber    string          `json:"book_number"`
	TicketOrder   string          `json:"ticket_order"`
	CurrentTicket int             `json:"current_ticket"`
	TotalTickets  int             `json:"total_tickets"`
	TicketPrice   decimal.Decimal `json:"ticket_price"`
	IsActive      bool            `json:"is_active"`
	ActivatedAt   *string         `json:"activated_at"`
	FinishedAt    *string         `json:"finished_at"`
}

type AddBooksResponse struct {
	Created []BookResponse `json:"created"`
	Errors  []string       `json:"errors"`
}
