package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"lottopos/internal/dto"
	"lottopos/internal/ledger"
	"lottopos/internal/model"
	"lottopos/internal/money"
	"lottopos/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	priceCacheKeyPrefix = "lottopos:price:"
	priceCacheTTL       = 10 * time.Minute
)

type GameService interface {
	CreateGame(ctx context.Context, req dto.CreateGameRequest) (*model.Game, error)
	GetGame(ctx context.Context, id uuid.UUID) (*model.Game, error)
	ListGames(ctx context.Context) ([]model.Game, error)
	UpdateGame(ctx context.Context, id uuid.UUID, req dto.UpdateGameRequest) (*model.Game, error)
	ExpireGame(ctx context.Context, id uuid.UUID) (*model.Game, error)
	ReactivateGame(ctx context.Context, id uuid.UUID) (*model.Game, error)
	// PriceCheck is the scan-the-barcode lookup used at the counter; answers
	// are cached in redis because the same handful of games is scanned all day.
	PriceCheck(ctx context.Context, gameNumber int) (*dto.PriceCheckResponse, error)
}

type gameService struct {
	gameRepo repository.GameRepository
	bookRepo repository.BookRepository
	rdb      *redis.Client
}

func NewGameService(gameRepo repository.GameRepository, bookRepo repository.BookRepository, rdb *redis.Client) GameService {
	return &gameService{gameRepo: gameRepo, bookRepo: bookRepo, rdb: rdb}
}

// ── Create / read ─────────────────────────────────────────────────────────────

func (s *gameService) CreateGame(ctx context.Context, req dto.CreateGameRequest) (*model.Game, error) {
	if existing, err := s.gameRepo.FindByGameNumber(ctx, req.GameNumber); err == nil && existing != nil {
		return nil, fmt.Errorf("%w: game number %d already exists", ErrConflict, req.GameNumber)
	}

	order := ledger.Reverse
	if req.TicketOrder != "" {
		order = ledger.TicketOrder(req.TicketOrder)
		if !order.Valid() {
			return nil, fmt.Errorf("%w: unknown ticket order %q", ErrValidation, req.TicketOrder)
		}
	}

	game := model.Game{
		GameNumber:         req.GameNumber,
		Name:               req.Name,
		Price:              money.FromDecimal(req.Price),
		TotalTickets:       req.TotalTickets,
		DefaultTicketOrder: order,
	}
	if err := s.gameRepo.Create(ctx, &game); err != nil {
		return nil, err
	}
	log.Info().Int("game_number", game.GameNumber).Str("name", game.Name).Msg("game created")
	return &game, nil
}

func (s *gameService) GetGame(ctx context.Context, id uuid.UUID) (*model.Game, error) {
	game, err := s.gameRepo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrGameNotFound
	}
	return game, nil
}

func (s *gameService) ListGames(ctx context.Context) ([]model.Game, error) {
	return s.gameRepo.List(ctx)
}

// ── Update ────────────────────────────────────────────────────────────────────
// Name is always editable. Price, TotalTickets and TicketOrder are frozen once
// any book of the game carries sales entries: changing them would silently
// rewrite the meaning of historical ledger rows.

func (s *gameService) UpdateGame(ctx context.Context, id uuid.UUID, req dto.UpdateGameRequest) (*model.Game, error) {
	game, err := s.GetGame(ctx, id)
	if err != nil {
		return nil, err
	}

	touchesFrozen := req.Price != nil || req.TotalTickets != nil || req.TicketOrder != nil
	if touchesFrozen {
		hasSales, err := s.bookRepo.GameHasSales(ctx, id)
		if err != nil {
			return nil, err
		}
		if hasSales {
			return nil, fmt.Errorf("%w: price, ticket count and ticket order are frozen once the game has sales", ErrValidation)
		}
	}

	if req.Name != nil {
		game.Name = *req.Name
	}
	if req.Price != nil {
		game.Price = money.FromDecimal(*req.Price)
	}
	if req.TotalTickets != nil {
		game.TotalTickets = *req.TotalTickets
	}
	if req.TicketOrder != nil {
		order := ledger.TicketOrder(*req.TicketOrder)
		if !order.Valid() {
			return nil, fmt.Errorf("%w: unknown ticket order %q", ErrValidation, *req.TicketOrder)
		}
		game.DefaultTicketOrder = order
	}

	if err := s.gameRepo.Update(ctx, game); err != nil {
		return nil, err
	}
	s.invalidatePrice(ctx, game.GameNumber)
	return game, nil
}

// ── Expire / reactivate ───────────────────────────────────────────────────────

func (s *gameService) ExpireGame(ctx context.Context, id uuid.UUID) (*model.Game, error) {
	game, err := s.GetGame(ctx, id)
	if err != nil {
		return nil, err
	}
	if game.IsExpired {
		return game, nil
	}
	now := time.Now()
	game.IsExpired = true
	game.ExpiredAt = &now
	if err := s.gameRepo.Update(ctx, game); err != nil {
		return nil, err
	}
	s.invalidatePrice(ctx, game.GameNumber)
	log.Info().Int("game_number", game.GameNumber).Msg("game expired")
	return game, nil
}

func (s *gameService) ReactivateGame(ctx context.Context, id uuid.UUID) (*model.Game, error) {
	game, err := s.GetGame(ctx, id)
	if err != nil {
		return nil, err
	}
	if !game.IsExpired {
		return game, nil
	}
	game.IsExpired = false
	game.ExpiredAt = nil
	if err := s.gameRepo.Update(ctx, game); err != nil {
		return nil, err
	}
	s.invalidatePrice(ctx, game.GameNumber)
	return game, nil
}

// ── Price check ───────────────────────────────────────────────────────────────

func (s *gameService) PriceCheck(ctx context.Context, gameNumber int) (*dto.PriceCheckResponse, error) {
	key := priceCacheKeyPrefix + strconv.Itoa(gameNumber)

	if s.rdb != nil {
		if raw, err := s.rdb.Get(ctx, key).Result(); err == nil {
			var resp dto.PriceCheckResponse
			if err := json.Unmarshal([]byte(raw), &resp); err == nil {
				return &resp, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			log.Warn().Err(err).Msg("price cache read failed")
		}
	}

	game, err := s.gameRepo.FindByGameNumber(ctx, gameNumber)
	if err != nil {
		return nil, ErrGameNotFound
	}

	resp := dto.PriceCheckResponse{
		GameNumber:   game.GameNumber,
		Name:         game.Name,
		Price:        game.Price.Decimal(),
		TotalTickets: game.TotalTickets,
		TicketOrder:  string(game.DefaultTicketOrder),
		IsExpired:    game.IsExpired,
	}

	if s.rdb != nil {
		if raw, err := json.Marshal(resp); err == nil {
			if err := s.rdb.Set(ctx, key, raw, priceCacheTTL).Err(); err != nil {
				log.Warn().Err(err).Msg("price cache write failed")
			}
		}
	}
	return &resp, nil
}

func (s *gameService) invalidatePrice(ctx context.Context, gameNumber int) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, priceCacheKeyPrefix+strconv.Itoa(gameNumber)).Err(); err != nil {
		log.Warn().Err(err).Msg("price cache invalidation failed")
	}
}
