package service_test

import (
	"context"
	"testing"

	"lottopos/internal/dto"
	"lottopos/internal/ledger"
	"lottopos/internal/money"
	"lottopos/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildBookSvc() (service.BookService, *stubBookRepo, *stubGameRepo) {
	bookRepo := newStubBookRepo()
	gameRepo := newStubGameRepo()
	return service.NewBookService(bookRepo, gameRepo), bookRepo, gameRepo
}

func TestAddBooks_BatchWithPartialFailure(t *testing.T) {
	svc, bookRepo, gameRepo := buildBookSvc()
	ctx := context.Background()

	game := seedGame(gameRepo, 1234, money.Cents(200), 100)
	seedBook(bookRepo, game, "0000001", 100, false)

	created, errs, err := svc.AddBooks(ctx, dto.AddBooksRequest{Books: []dto.AddBookItem{
		{GameID: game.ID.String(), BookNumber: "0000002"},
		{GameID: game.ID.String(), BookNumber: "0000001"}, // duplicate
		{GameID: "not-a-uuid", BookNumber: "0000003"},
	}})
	require.NoError(t, err)

	require.Len(t, created, 1)
	assert.Equal(t, "0000002", created[0].BookNumber)
	assert.Equal(t, 100, created[0].CurrentTicket)
	assert.False(t, created[0].IsActive)
	assert.Len(t, errs, 2)
}

func TestAddBooks_ExpiredGameRejected(t *testing.T) {
	svc, _, gameRepo := buildBookSvc()

	game := seedGame(gameRepo, 1234, money.Cents(200), 100)
	game.IsExpired = true

	created, errs, err := svc.AddBooks(context.Background(), dto.AddBooksRequest{Books: []dto.AddBookItem{
		{GameID: game.ID.String(), BookNumber: "0000001"},
	}})
	require.NoError(t, err)
	assert.Empty(t, created)
	assert.Len(t, errs, 1)
}

func TestActivate_ExhaustedBookStaysFinished(t *testing.T) {
	svc, bookRepo, gameRepo := buildBookSvc()

	game := seedGame(gameRepo, 1234, money.Cents(200), 100)
	done := seedBook(bookRepo, game, "0000001", -1, false)

	_, err := svc.Activate(context.Background(), done.ID)
	assert.ErrorIs(t, err, ledger.ErrBookExhausted)
}

func TestActivateDeactivate_Idempotent(t *testing.T) {
	svc, bookRepo, gameRepo := buildBookSvc()
	ctx := context.Background()

	game := seedGame(gameRepo, 1234, money.Cents(200), 100)
	b := seedBook(bookRepo, game, "0000001", 100, false)

	book, err := svc.Activate(ctx, b.ID)
	require.NoError(t, err)
	assert.True(t, book.IsActive)
	assert.NotNil(t, book.ActivatedAt)

	book, err = svc.Activate(ctx, b.ID)
	require.NoError(t, err)
	assert.True(t, book.IsActive)

	book, err = svc.Deactivate(ctx, b.ID)
	require.NoError(t, err)
	assert.False(t, book.IsActive)
	assert.NotNil(t, book.FinishedAt)

	book, err = svc.Deactivate(ctx, b.ID)
	require.NoError(t, err)
	assert.False(t, book.IsActive)
}

func TestEditBook_TicketOrderChangeResetsCursor(t *testing.T) {
	svc, bookRepo, gameRepo := buildBookSvc()

	game := seedGame(gameRepo, 1234, money.Cents(200), 100)
	b := seedBook(bookRepo, game, "0000001", 100, false)

	order := "forward"
	book, err := svc.Edit(context.Background(), b.ID, dto.EditBookRequest{TicketOrder: &order})
	require.NoError(t, err)

	assert.Equal(t, ledger.Forward, book.TicketOrder)
	assert.Equal(t, 0, book.CurrentTicket)
}

func TestEditBook_TicketOrderFrozenAfterSales(t *testing.T) {
	svc, bookRepo, gameRepo := buildBookSvc()

	game := seedGame(gameRepo, 1234, money.Cents(200), 100)
	b := seedBook(bookRepo, game, "0000001", 80, false)
	bookRepo.salesByBook[b.ID] = true

	order := "forward"
	_, err := svc.Edit(context.Background(), b.ID, dto.EditBookRequest{TicketOrder: &order})
	assert.ErrorIs(t, err, service.ErrValidation)
	assert.Equal(t, 80, bookRepo.books[b.ID].CurrentTicket)
}

func TestDeleteBook_Guards(t *testing.T) {
	svc, bookRepo, gameRepo := buildBookSvc()
	ctx := context.Background()

	game := seedGame(gameRepo, 1234, money.Cents(200), 100)

	active := seedBook(bookRepo, game, "0000001", 100, true)
	assert.ErrorIs(t, svc.Delete(ctx, active.ID), service.ErrValidation)

	withSales := seedBook(bookRepo, game, "0000002", 90, false)
	bookRepo.salesByBook[withSales.ID] = true
	assert.ErrorIs(t, svc.Delete(ctx, withSales.ID), service.ErrValidation)

	clean := seedBook(bookRepo, game, "0000003", 100, false)
	require.NoError(t, svc.Delete(ctx, clean.ID))
	assert.NotContains(t, bookRepo.books, clean.ID)
}
