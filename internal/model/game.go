package model

import (
	"time"

	"github.com/google/uuid"

	"lottopos/internal/ledger"
	"lottopos/internal/money"
)

// Game is a catalogue product: one scratch-ticket game as sold by the state
// lottery. GameNumber is the externally scanned identifier.
//
// Price, TotalTickets and DefaultTicketOrder are frozen once any book of the
// game has a sales entry — the service layer enforces this.
type Game struct {
	ID                 uuid.UUID          `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	GameNumber         int                `gorm:"uniqueIndex;not null"`
	Name               string             `gorm:"not null"`
	Price              money.Cents        `gorm:"type:bigint;not null"`
	TotalTickets       int                `gorm:"not null"`
	DefaultTicketOrder ledger.TicketOrder `gorm:"type:varchar(10);not null;default:'reverse'"`
	IsExpired          bool               `gorm:"not null;default:false"`
	CreatedAt          time.Time
	ExpiredAt          *time.Time

	Books []Book `gorm:"foreignKey:GameID"`
}
