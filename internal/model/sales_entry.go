package model

import (
	"time"

	"github.com/google/uuid"

	"lottopos/internal/money"
)

// SalesEntry records the consumption of a ticket range from one Book during
// one Shift. StartTicket is the book's cursor before the sale, EndTicket the
// cursor after; Count and Price are derived from them at creation time.
// Entries are NEVER modified or deleted once written.
type SalesEntry struct {
	ID          uuid.UUID   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	BookID      uuid.UUID   `gorm:"type:uuid;not null;index"`
	ShiftID     uuid.UUID   `gorm:"type:uuid;not null;index"`
	StartTicket int         `gorm:"not null"`
	EndTicket   int         `gorm:"not null"`
	Count       int         `gorm:"not null"`
	Price       money.Cents `gorm:"type:bigint;not null"`
	CreatedAt   time.Time

	Book  *Book            `gorm:"foreignKey:BookID"`
	Shift *ShiftSubmission `gorm:"foreignKey:ShiftID"`
}
