package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"lottopos/internal/dto"
	"lottopos/internal/ledger"
	"lottopos/internal/model"
	"lottopos/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const (
	gameNumberLength = 4
	bookNumberLength = 7
)

type SalesEntryService interface {
	// ProcessBatchTx applies one shift's book observations inside the
	// submission transaction. Item failures are collected, not fatal: one
	// malformed scan never blocks the rest of a shift's entries.
	ProcessBatchTx(tx *gorm.DB, shiftID uuid.UUID, items []dto.SalesItem) (successCount int, errs []string)
	// GetOrCreateBookForSale resolves a scanned game+book number pair,
	// creating and activating the book on first scan.
	GetOrCreateBookForSale(ctx context.Context, gameNumber, bookNumber string) (*model.Book, error)
	ActiveBooks(ctx context.Context) ([]model.Book, error)
}

type salesEntryService struct {
	bookRepo repository.BookRepository
	gameRepo repository.GameRepository
	salesRepo repository.SalesEntryRepository
}

func NewSalesEntryService(
	bookRepo repository.BookRepository,
	gameRepo repository.GameRepository,
	salesRepo repository.SalesEntryRepository,
) SalesEntryService {
	return &salesEntryService{bookRepo: bookRepo, gameRepo: gameRepo, salesRepo: salesRepo}
}

// ── ProcessBatchTx ────────────────────────────────────────────────────────────
// Per item: load book, validate the target against the caller-supplied
// baseline, write one SalesEntry for the consumed range, advance the cursor,
// deactivate at the terminal value.

func (s *salesEntryService) ProcessBatchTx(tx *gorm.DB, shiftID uuid.UUID, items []dto.SalesItem) (int, []string) {
	successCount := 0
	var errs []string

	for i, item := range items {
		if err := s.applyItem(tx, shiftID, item); err != nil {
			errs = append(errs, fmt.Sprintf("item %d (book %s): %v", i+1, item.BookID, err))
			continue
		}
		successCount++
	}
	return successCount, errs
}

func (s *salesEntryService) applyItem(tx *gorm.DB, shiftID uuid.UUID, item dto.SalesItem) error {
	bookID, err := uuid.Parse(item.BookID)
	if err != nil {
		return fmt.Errorf("%w: invalid book id", ErrValidation)
	}

	book, err := s.bookRepo.FindByIDTx(tx, bookID)
	if err != nil {
		return ErrBookNotFound
	}
	if book.Game == nil {
		return fmt.Errorf("%w: book has no game", ErrBookNotFound)
	}

	order := book.TicketOrder
	total := book.Game.TotalTickets

	// The baseline is the cursor as the cashier last saw it. If the live
	// cursor moved since, another submission touched this book and the
	// item must be re-entered against the new state.
	if book.CurrentTicket != item.BaselineTicket {
		return fmt.Errorf("%w: book advanced to %d since baseline %d",
			ErrConflict, book.CurrentTicket, item.BaselineTicket)
	}

	exhausted := ledger.IsExhausted(order, item.BaselineTicket, total)

	// Resolve the target cursor.
	var target int
	switch {
	case item.AllSold:
		if exhausted {
			// Re-declaring a finished book fully sold is a no-op.
			return nil
		}
		target = ledger.FullSaleTicket(order, total)
	case item.TargetTicket != nil:
		if exhausted {
			return ledger.ErrBookExhausted
		}
		target = *item.TargetTicket
		if err := ledger.ValidateTarget(order, item.BaselineTicket, target, total); err != nil {
			return err
		}
	default:
		return fmt.Errorf("%w: neither target ticket nor all-sold flag given", ErrValidation)
	}

	// Defensive: unreachable after ValidateTarget, fatal to the item only.
	count, err := ledger.SoldCount(order, item.BaselineTicket, target)
	if err != nil {
		return fmt.Errorf("negative consumption: %w", err)
	}

	if count > 0 {
		entry := &model.SalesEntry{
			BookID:      book.ID,
			ShiftID:     shiftID,
			StartTicket: item.BaselineTicket,
			EndTicket:   target,
			Count:       count,
			Price:       book.Game.Price.MulInt(count),
		}
		if err := s.salesRepo.CreateTx(tx, entry); err != nil {
			return fmt.Errorf("create sales entry: %w", err)
		}
	}

	book.CurrentTicket = target
	if item.AllSold || ledger.IsExhausted(order, target, total) {
		if book.IsActive {
			book.IsActive = false
			now := time.Now()
			book.FinishedAt = &now
		}
	}
	if err := s.bookRepo.UpdateTx(tx, book); err != nil {
		return fmt.Errorf("update book: %w", err)
	}
	return nil
}

// ── GetOrCreateBookForSale ────────────────────────────────────────────────────

func (s *salesEntryService) GetOrCreateBookForSale(ctx context.Context, gameNumber, bookNumber string) (*model.Book, error) {
	if len(gameNumber) != gameNumberLength || !isDigits(gameNumber) {
		return nil, fmt.Errorf("%w: game number must be %d digits", ErrValidation, gameNumberLength)
	}
	if len(bookNumber) != bookNumberLength || !isDigits(bookNumber) {
		return nil, fmt.Errorf("%w: book number must be %d digits", ErrValidation, bookNumberLength)
	}

	gameNum, _ := strconv.Atoi(gameNumber)
	game, err := s.gameRepo.FindByGameNumber(ctx, gameNum)
	if err != nil {
		return nil, fmt.Errorf("%w: game number %s", ErrGameNotFound, gameNumber)
	}
	if game.IsExpired {
		return nil, fmt.Errorf("%w: game %q is expired", ErrValidation, game.Name)
	}

	book, err := s.bookRepo.FindByGameAndNumber(ctx, game.ID, bookNumber)
	if err == nil {
		if book.Game == nil {
			book.Game = game
		}
		if !book.IsActive {
			if ledger.IsExhausted(book.TicketOrder, book.CurrentTicket, game.TotalTickets) {
				return nil, ledger.ErrBookExhausted
			}
			now := time.Now()
			book.IsActive = true
			book.ActivatedAt = &now
			book.FinishedAt = nil
			if err := s.bookRepo.Update(ctx, book); err != nil {
				return nil, err
			}
			log.Info().Str("book", book.BookNumber).Int("ticket", book.CurrentTicket).
				Msg("reactivated book for sale")
		}
		return book, nil
	}

	now := time.Now()
	newBook := &model.Book{
		GameID:        game.ID,
		BookNumber:    bookNumber,
		TicketOrder:   game.DefaultTicketOrder,
		CurrentTicket: ledger.InitialTicket(game.DefaultTicketOrder, game.TotalTickets),
		IsActive:      true,
		ActivatedAt:   &now,
		Game:          game,
	}
	if err := s.bookRepo.Create(ctx, newBook); err != nil {
		return nil, fmt.Errorf("%w: book %s-%s already exists", ErrConflict, gameNumber, bookNumber)
	}
	log.Info().Str("book", bookNumber).Int("game", gameNum).Int("ticket", newBook.CurrentTicket).
		Msg("created and activated book from scan")
	return newBook, nil
}

func (s *salesEntryService) ActiveBooks(ctx context.Context) ([]model.Book, error) {
	return s.bookRepo.ListActiveWithGame(ctx)
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}
