package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

// SalesItem is one per-book observation of a shift submission: the book, the
// cursor the cashier last saw (baseline), and either an explicit target
// cursor or the all-sold flag.
type SalesItem struct {
	BookID         string `json:"book_id" validate:"required,uuid"`
	BaselineTicket int    `json:"baseline_ticket"`
	TargetTicket   *int   `json:"target_ticket"`
	AllSold        bool   `json:"all_sold"`
}

// SubmitShiftRequest carries the terminal's cumulative daily totals as typed
// in by the cashier (decimal currency; converted to cents at this boundary),
// the counted drawer cash, and the book observations of the shift.
type SubmitShiftRequest struct {
	ReportedOnlineSales    decimal.Decimal `json:"reported_online_sales"    validate:"min=0"`
	ReportedOnlinePayouts  decimal.Decimal `json:"reported_online_payouts"  validate:"min=0"`
	ReportedInstantPayouts decimal.Decimal `json:"reported_instant_payouts" validate:"min=0"`
	CountedCash            decimal.Decimal `json:"counted_cash"             validate:"min=0"`
	Items                  []SalesItem     `json:"items"                    validate:"dive"`
}

// FullBookSaleRequest is the admin operation declaring whole books sold with
// no physical drawer reconciliation.
type FullBookSaleRequest struct {
	BookIDs []string `json:"book_ids" validate:"required,min=1,dive,uuid"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type SalesEntryResponse struct {
	ID          string          `json:"id"`
	BookID      string          `json:"book_id"`
	BookNumber  string          `json:"book_number"`
	GameNumber  int             `json:"game_number"`
	StartTicket int             `json:"start_ticket"`
	EndTicket   int             `json:"end_ticket"`
	Count       int             `json:"count"`
	Price       decimal.Decimal `json:"price"`
	CreatedAt   string          `json:"created_at"`
}

type ShiftResponse struct {
	ID           string `json:"id"`
	UserID       string `json:"user_id"`
	Kind         string `json:"kind"`
	SubmittedAt  string `json:"submitted_at"`
	CalendarDate string `json:"calendar_date"`

	ReportedOnlineSales    decimal.Decimal `json:"reported_online_sales"`
	ReportedOnlinePayouts  decimal.Decimal `json:"reported_online_payouts"`
	ReportedInstantPayouts decimal.Decimal `json:"reported_instant_payouts"`

	DeltaOnlineSales    decimal.Decimal `json:"delta_online_sales"`
	DeltaOnlinePayouts  decimal.Decimal `json:"delta_online_payouts"`
	DeltaInstantPayouts decimal.Decimal `json:"delta_instant_payouts"`

	InstantTicketsSold int             `json:"instant_tickets_sold"`
	InstantValue       decimal.Decimal `json:"instant_value"`

	DrawerValue      decimal.Decimal `json:"drawer_value"`
	CountedCash      decimal.Decimal `json:"counted_cash"`
	DrawerDifference decimal.Decimal `json:"drawer_difference"`

	SalesEntries []SalesEntryResponse `json:"sales_entries,omitempty"`
}

// SubmitShiftResponse is the synchronous result contract of a submission:
// the finalized shift plus per-item success/failure accounting.
type SubmitShiftResponse struct {
	Shift        ShiftResponse `json:"shift"`
	SuccessCount int           `json:"success_count"`
	FailureCount int           `json:"failure_count"`
	Errors       []string      `json:"errors"`
}
