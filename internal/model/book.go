package model

import (
	"time"

	"github.com/google/uuid"

	"lottopos/internal/ledger"
)

// Book is one physical pad of tickets for a Game. BookNumber is the 7-digit
// pad identifier printed on the pad, unique within its game.
//
// CurrentTicket is the consumption cursor: it starts at total_tickets
// (reverse) or 0 (forward) and moves toward the terminal value, -1 or
// total_tickets respectively. Reaching the terminal value deactivates the
// book and stamps FinishedAt.
type Book struct {
	ID            uuid.UUID          `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	GameID        uuid.UUID          `gorm:"type:uuid;not null;index;uniqueIndex:idx_game_book_number,priority:1"`
	BookNumber    string             `gorm:"type:varchar(7);not null;uniqueIndex:idx_game_book_number,priority:2"`
	TicketOrder   ledger.TicketOrder `gorm:"type:varchar(10);not null"`
	CurrentTicket int                `gorm:"not null"`
	IsActive      bool               `gorm:"not null;default:false"`
	ActivatedAt   *time.Time
	FinishedAt    *time.Time
	CreatedAt     time.Time

	Game         *Game        `gorm:"foreignKey:GameID"`
	SalesEntries []SalesEntry `gorm:"foreignKey:BookID"`
}
