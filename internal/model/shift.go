package model

import (
	"time"

	"github.com/google/uuid"

	"lottopos/internal/money"
)

// Shift kinds.
const (
	ShiftKindRegular      = "regular"
	ShiftKindFullBookSale = "full_book_sale"
)

// ShiftSubmission is one cashier settlement event.
//
// The Reported* figures are the external terminal's cumulative daily totals
// as typed in by the cashier; the Delta* figures are this shift's incremental
// contribution, computed against the sum of all earlier shifts on the same
// CalendarDate. Deltas are computed once at submission and never rewritten
// when later shifts arrive — the per-date invariant is that deltas summed in
// submission-time order reconstruct the latest reported cumulative total.
//
// Deltas may be negative: a correction at the terminal lowers the cumulative
// figure, and rejecting that would make corrections impossible to reconcile.
type ShiftSubmission struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;index"`
	Kind         string    `gorm:"type:varchar(20);not null;default:'regular'"`
	SubmittedAt  time.Time `gorm:"not null;index"`
	CalendarDate time.Time `gorm:"type:date;not null;index"`

	ReportedOnlineSales    money.Cents `gorm:"type:bigint;not null"`
	ReportedOnlinePayouts  money.Cents `gorm:"type:bigint;not null"`
	ReportedInstantPayouts money.Cents `gorm:"type:bigint;not null"`

	DeltaOnlineSales    money.Cents `gorm:"type:bigint;not null"`
	DeltaOnlinePayouts  money.Cents `gorm:"type:bigint;not null"`
	DeltaInstantPayouts money.Cents `gorm:"type:bigint;not null"`

	// Aggregates over this shift's SalesEntry set.
	InstantTicketsSold int         `gorm:"not null;default:0"`
	InstantValue       money.Cents `gorm:"type:bigint;not null;default:0"`

	DrawerValue      money.Cents `gorm:"type:bigint;not null;default:0"` // expected cash
	CountedCash      money.Cents `gorm:"type:bigint;not null;default:0"`
	DrawerDifference money.Cents `gorm:"type:bigint;not null;default:0"` // expected - counted; positive = shortfall

	User         *User        `gorm:"foreignKey:UserID"`
	SalesEntries []SalesEntry `gorm:"foreignKey:ShiftID"`
}
