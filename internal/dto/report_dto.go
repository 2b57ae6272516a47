package dto

import "github.com/shopspring/decimal"

// ShiftReportRow is one shift in the shifts-summary report.
type ShiftReportRow struct {
	SubmittedAt         string          `json:"submitted_at"`
	CalendarDate        string          `json:"calendar_date"`
	Username            string          `json:"username"`
	Kind                string          `json:"kind"`
	DeltaOnlineSales    decimal.Decimal `json:"delta_online_sales"`
	DeltaOnlinePayouts  decimal.Decimal `json:"delta_online_payouts"`
	DeltaInstantPayouts decimal.Decimal `json:"delta_instant_payouts"`
	InstantTicketsSold  int             `json:"instant_tickets_sold"`
	InstantValue        decimal.Decimal `json:"instant_value"`
	DrawerValue         decimal.Decimal `json:"drawer_value"`
	DrawerDifference    decimal.Decimal `json:"drawer_difference"`
}

// ShiftReportTotals aggregates the rows of a shifts-summary report.
type ShiftReportTotals struct {
	DeltaOnlineSales    decimal.Decimal `json:"delta_online_sales"`
	DeltaOnlinePayouts  decimal.Decimal `json:"delta_online_payouts"`
	DeltaInstantPayouts decimal.Decimal `json:"delta_instant_payouts"`
	InstantTicketsSold  int             `json:"instant_tickets_sold"`
	InstantValue        decimal.Decimal `json:"instant_value"`
	DrawerValue         decimal.Decimal `json:"drawer_value"`
	DrawerDifference    decimal.Decimal `json:"drawer_difference"`
}

type ShiftReportResponse struct {
	Rows   []ShiftReportRow  `json:"rows"`
	Totals ShiftReportTotals `json:"totals"`
}

// SalesReportRow is one sales entry in the sales-by-date report.
type SalesReportRow struct {
	CreatedAt   string          `json:"created_at"`
	GameNumber  int             `json:"game_number"`
	GameName    string          `json:"game_name"`
	BookNumber  string          `json:"book_number"`
	StartTicket int             `json:"start_ticket"`
	EndTicket   int             `json:"end_ticket"`
	Count       int             `json:"count"`
	Price       decimal.Decimal `json:"price"`
	Username    string          `json:"username"`
}

type SalesReportResponse struct {
	Rows        []SalesReportRow `json:"rows"`
	TotalCount  int              `json:"total_count"`
	TotalValue  decimal.Decimal  `json:"total_value"`
}

// EmailReportRequest asks for a shifts-summary PDF to be generated and
// mailed asynchronously.
type EmailReportRequest struct {
	ToEmail   string `json:"to_email"   validate:"required,email"`
	StartDate string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate   string `json:"end_date"   validate:"required,datetime=2006-01-02"`
}
