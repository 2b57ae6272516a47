package service

import (
	"context"
	"fmt"
	"time"

	"lottopos/internal/dto"
	"lottopos/internal/ledger"
	"lottopos/internal/model"
	"lottopos/internal/repository"

	"github.com/google/uuid"
)

type BookService interface {
	AddBooks(ctx context.Context, req dto.AddBooksRequest) ([]model.Book, []string, error)
	GetBook(ctx context.Context, id uuid.UUID) (*model.Book, error)
	ListBooks(ctx context.Context) ([]model.Book, error)
	Activate(ctx context.Context, id uuid.UUID) (*model.Book, error)
	Deactivate(ctx context.Context, id uuid.UUID) (*model.Book, error)
	Edit(ctx context.Context, id uuid.UUID, req dto.EditBookRequest) (*model.Book, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type bookService struct {
	bookRepo repository.BookRepository
	gameRepo repository.GameRepository
}

func NewBookService(bookRepo repository.BookRepository, gameRepo repository.GameRepository) BookService {
	return &bookService{bookRepo: bookRepo, gameRepo: gameRepo}
}

// ── AddBooks ──────────────────────────────────────────────────────────────────
// Batch creation with per-entry error collection: one bad pad number must not
// block the rest of a delivery being booked in.

func (s *bookService) AddBooks(ctx context.Context, req dto.AddBooksRequest) ([]model.Book, []string, error) {
	var created []model.Book
	var errs []string

	// Games are cached per batch; deliveries arrive grouped by game.
	games := make(map[uuid.UUID]*model.Game)

	for _, entry := range req.Books {
		gameID, err := uuid.Parse(entry.GameID)
		if err != nil {
			errs = append(errs, fmt.Sprintf("book %s: invalid game id", entry.BookNumber))
			continue
		}

		game, ok := games[gameID]
		if !ok {
			game, err = s.gameRepo.FindByID(ctx, gameID)
			if err != nil {
				errs = append(errs, fmt.Sprintf("book %s: game not found", entry.BookNumber))
				continue
			}
			if game.IsExpired {
				errs = append(errs, fmt.Sprintf("book %s: game %q is expired", entry.BookNumber, game.Name))
				continue
			}
			games[gameID] = game
		}

		if existing, err := s.bookRepo.FindByGameAndNumber(ctx, game.ID, entry.BookNumber); err == nil && existing != nil {
			errs = append(errs, fmt.Sprintf("book %s: already exists for game %d", entry.BookNumber, game.GameNumber))
			continue
		}

		// Books start inactive with the cursor at the untouched position
		// for the game's convention.
		book := model.Book{
			GameID:        game.ID,
			BookNumber:    entry.BookNumber,
			TicketOrder:   game.DefaultTicketOrder,
			CurrentTicket: ledger.InitialTicket(game.DefaultTicketOrder, game.TotalTickets),
			IsActive:      false,
			Game:          game,
		}
		if err := s.bookRepo.Create(ctx, &book); err != nil {
			errs = append(errs, fmt.Sprintf("book %s: %v", entry.BookNumber, err))
			continue
		}
		created = append(created, book)
	}
	return created, errs, nil
}

func (s *bookService) GetBook(ctx context.Context, id uuid.UUID) (*model.Book, error) {
	book, err := s.bookRepo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrBookNotFound
	}
	return book, nil
}

func (s *bookService) ListBooks(ctx context.Context) ([]model.Book, error) {
	return s.bookRepo.ListWithGame(ctx)
}

// ── Activate / Deactivate ─────────────────────────────────────────────────────

func (s *bookService) Activate(ctx context.Context, id uuid.UUID) (*model.Book, error) {
	book, err := s.GetBook(ctx, id)
	if err != nil {
		return nil, err
	}
	if book.IsActive {
		return book, nil
	}
	if book.Game == nil {
		return nil, fmt.Errorf("%w: book has no game", ErrBookNotFound)
	}
	if book.Game.IsExpired {
		return nil, fmt.Errorf("%w: cannot activate book of expired game %q", ErrValidation, book.Game.Name)
	}
	// A finished book stays finished.
	if ledger.IsExhausted(book.TicketOrder, book.CurrentTicket, book.Game.TotalTickets) {
		return nil, ledger.ErrBookExhausted
	}

	now := time.Now()
	book.IsActive = true
	book.ActivatedAt = &now
	book.FinishedAt = nil
	if err := s.bookRepo.Update(ctx, book); err != nil {
		return nil, err
	}
	return book, nil
}

func (s *bookService) Deactivate(ctx context.Context, id uuid.UUID) (*model.Book, error) {
	book, err := s.GetBook(ctx, id)
	if err != nil {
		return nil, err
	}
	if !book.IsActive {
		return book, nil
	}
	now := time.Now()
	book.IsActive = false
	book.FinishedAt = &now
	if err := s.bookRepo.Update(ctx, book); err != nil {
		return nil, err
	}
	return book, nil
}

// ── Edit ──────────────────────────────────────────────────────────────────────
// Only the pad number and the counting convention are editable, and the
// convention only while the book has zero sales entries — switching it resets
// the cursor to the untouched position.

func (s *bookService) Edit(ctx context.Context, id uuid.UUID, req dto.EditBookRequest) (*model.Book, error) {
	book, err := s.GetBook(ctx, id)
	if err != nil {
		return nil, err
	}

	changed := false

	if req.BookNumber != nil && *req.BookNumber != book.BookNumber {
		if existing, err := s.bookRepo.FindByGameAndNumber(ctx, book.GameID, *req.BookNumber); err == nil && existing.ID != book.ID {
			return nil, fmt.Errorf("%w: book number %s already exists for this game", ErrConflict, *req.BookNumber)
		}
		book.BookNumber = *req.BookNumber
		changed = true
	}

	if req.TicketOrder != nil {
		newOrder := ledger.TicketOrder(*req.TicketOrder)
		if !newOrder.Valid() {
			return nil, fmt.Errorf("%w: unknown ticket order %q", ErrValidation, *req.TicketOrder)
		}
		if newOrder != book.TicketOrder {
			hasSales, err := s.bookRepo.HasSales(ctx, book.ID)
			if err != nil {
				return nil, err
			}
			if hasSales {
				return nil, fmt.Errorf("%w: ticket order cannot change once the book has sales entries", ErrValidation)
			}
			if book.Game == nil {
				return nil, fmt.Errorf("%w: book has no game", ErrBookNotFound)
			}
			book.TicketOrder = newOrder
			book.CurrentTicket = ledger.InitialTicket(newOrder, book.Game.TotalTickets)
			changed = true
		}
	}

	if !changed {
		return book, nil
	}
	if err := s.bookRepo.Update(ctx, book); err != nil {
		return nil, err
	}
	return book, nil
}

// ── Delete ────────────────────────────────────────────────────────────────────

func (s *bookService) Delete(ctx context.Context, id uuid.UUID) error {
	book, err := s.GetBook(ctx, id)
	if err != nil {
		return err
	}
	if book.IsActive {
		return fmt.Errorf("%w: deactivate the book before deleting it", ErrValidation)
	}
	hasSales, err := s.bookRepo.HasSales(ctx, id)
	if err != nil {
		return err
	}
	if hasSales {
		return fmt.Errorf("%w: books with sales entries cannot be deleted", ErrValidation)
	}
	return s.bookRepo.Delete(ctx, id)
}
