package service_test

import (
	"context"
	"testing"

	"lottopos/internal/dto"
	"lottopos/internal/money"
	"lottopos/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildGameSvc() (service.GameService, *stubGameRepo, *stubBookRepo) {
	gameRepo := newStubGameRepo()
	bookRepo := newStubBookRepo()
	return service.NewGameService(gameRepo, bookRepo, nil), gameRepo, bookRepo
}

func TestCreateGame(t *testing.T) {
	svc, _, _ := buildGameSvc()

	game, err := svc.CreateGame(context.Background(), dto.CreateGameRequest{
		GameNumber:   1234,
		Name:         "Gold Rush",
		Price:        dec("5.00"),
		TotalTickets: 60,
	})
	require.NoError(t, err)

	assert.Equal(t, money.Cents(500), game.Price)
	assert.Equal(t, "reverse", string(game.DefaultTicketOrder))
	assert.False(t, game.IsExpired)

	_, err = svc.CreateGame(context.Background(), dto.CreateGameRequest{
		GameNumber: 1234, Name: "Duplicate", Price: dec("5.00"), TotalTickets: 60,
	})
	assert.ErrorIs(t, err, service.ErrConflict)
}

func TestUpdateGame_FrozenFieldsAfterSales(t *testing.T) {
	svc, gameRepo, bookRepo := buildGameSvc()
	ctx := context.Background()

	game := seedGame(gameRepo, 1234, money.Cents(500), 60)
	bookRepo.salesByGame[game.ID] = true

	newPrice := dec("10.00")
	_, err := svc.UpdateGame(ctx, game.ID, dto.UpdateGameRequest{Price: &newPrice})
	assert.ErrorIs(t, err, service.ErrValidation)

	// Name alone stays editable.
	name := "Renamed"
	updated, err := svc.UpdateGame(ctx, game.ID, dto.UpdateGameRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)
	assert.Equal(t, money.Cents(500), updated.Price)
}

func TestExpireAndReactivateGame(t *testing.T) {
	svc, gameRepo, _ := buildGameSvc()
	ctx := context.Background()

	game := seedGame(gameRepo, 1234, money.Cents(500), 60)

	expired, err := svc.ExpireGame(ctx, game.ID)
	require.NoError(t, err)
	assert.True(t, expired.IsExpired)
	assert.NotNil(t, expired.ExpiredAt)

	back, err := svc.ReactivateGame(ctx, game.ID)
	require.NoError(t, err)
	assert.False(t, back.IsExpired)
	assert.Nil(t, back.ExpiredAt)
}

func TestPriceCheck_NoCache(t *testing.T) {
	svc, gameRepo, _ := buildGameSvc()

	seedGame(gameRepo, 1234, money.Cents(500), 60)

	resp, err := svc.PriceCheck(context.Background(), 1234)
	require.NoError(t, err)
	assert.Equal(t, 1234, resp.GameNumber)
	assert.True(t, resp.Price.Equal(dec("5.00")))

	_, err = svc.PriceCheck(context.Background(), 9999)
	assert.ErrorIs(t, err, service.ErrGameNotFound)
}
