package service_test

import (
	"context"
	"testing"
	"time"

	"lottopos/internal/dto"
	"lottopos/internal/ledger"
	"lottopos/internal/money"
	"lottopos/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildSalesSvc() (service.SalesEntryService, *stubBookRepo, *stubGameRepo, *stubSalesEntryRepo) {
	bookRepo := newStubBookRepo()
	gameRepo := newStubGameRepo()
	salesRepo := &stubSalesEntryRepo{}
	return service.NewSalesEntryService(bookRepo, gameRepo, salesRepo), bookRepo, gameRepo, salesRepo
}

func TestProcessBatch_AllSoldConsumesRemainder(t *testing.T) {
	svc, bookRepo, gameRepo, salesRepo := buildSalesSvc()

	game := seedGame(gameRepo, 1234, money.Cents(300), 50)
	book := seedBook(bookRepo, game, "0000001", 20, true)

	n, errs := svc.ProcessBatchTx(nil, uuid.New(), []dto.SalesItem{
		{BookID: book.ID.String(), BaselineTicket: 20, AllSold: true},
	})
	assert.Equal(t, 1, n)
	assert.Empty(t, errs)

	require.Len(t, salesRepo.entries, 1)
	e := salesRepo.entries[0]
	assert.Equal(t, 20, e.StartTicket)
	assert.Equal(t, -1, e.EndTicket)
	assert.Equal(t, 21, e.Count) // reverse from 20 down through 0
	assert.Equal(t, money.Cents(6300), e.Price)

	got := bookRepo.books[book.ID]
	assert.Equal(t, -1, got.CurrentTicket)
	assert.False(t, got.IsActive)
}

func TestProcessBatch_TargetOnExhaustedBookRejected(t *testing.T) {
	svc, bookRepo, gameRepo, salesRepo := buildSalesSvc()

	game := seedGame(gameRepo, 1234, money.Cents(300), 50)
	book := seedBook(bookRepo, game, "0000001", -1, false)

	target := 10
	n, errs := svc.ProcessBatchTx(nil, uuid.New(), []dto.SalesItem{
		{BookID: book.ID.String(), BaselineTicket: -1, TargetTicket: &target},
	})
	assert.Equal(t, 0, n)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], ledger.ErrBookExhausted.Error())
	assert.Empty(t, salesRepo.entries)
}

func TestProcessBatch_ZeroMovementWritesNoEntry(t *testing.T) {
	svc, bookRepo, gameRepo, salesRepo := buildSalesSvc()

	game := seedGame(gameRepo, 1234, money.Cents(300), 50)
	book := seedBook(bookRepo, game, "0000001", 30, true)

	target := 30
	n, errs := svc.ProcessBatchTx(nil, uuid.New(), []dto.SalesItem{
		{BookID: book.ID.String(), BaselineTicket: 30, TargetTicket: &target},
	})
	// Succeeds, but an empty range is not a ledger row.
	assert.Equal(t, 1, n)
	assert.Empty(t, errs)
	assert.Empty(t, salesRepo.entries)
	assert.Equal(t, 30, bookRepo.books[book.ID].CurrentTicket)
}

func TestProcessBatch_UnknownBook(t *testing.T) {
	svc, _, _, _ := buildSalesSvc()

	target := 10
	n, errs := svc.ProcessBatchTx(nil, uuid.New(), []dto.SalesItem{
		{BookID: uuid.New().String(), BaselineTicket: 20, TargetTicket: &target},
		{BookID: "not-a-uuid", BaselineTicket: 20, TargetTicket: &target},
	})
	assert.Equal(t, 0, n)
	assert.Len(t, errs, 2)
}

func TestProcessBatch_MissingTargetAndFlag(t *testing.T) {
	svc, bookRepo, gameRepo, _ := buildSalesSvc()

	game := seedGame(gameRepo, 1234, money.Cents(300), 50)
	book := seedBook(bookRepo, game, "0000001", 30, true)

	n, errs := svc.ProcessBatchTx(nil, uuid.New(), []dto.SalesItem{
		{BookID: book.ID.String(), BaselineTicket: 30},
	})
	assert.Equal(t, 0, n)
	assert.Len(t, errs, 1)
}

func TestGetOrCreateBookForSale_CreatesOnFirstScan(t *testing.T) {
	svc, bookRepo, gameRepo, _ := buildSalesSvc()

	seedGame(gameRepo, 1234, money.Cents(500), 75)

	book, err := svc.GetOrCreateBookForSale(context.Background(), "1234", "0004567")
	require.NoError(t, err)

	assert.Equal(t, "0004567", book.BookNumber)
	assert.Equal(t, 75, book.CurrentTicket) // reverse starts at total
	assert.True(t, book.IsActive)
	assert.NotNil(t, book.ActivatedAt)
	assert.Len(t, bookRepo.books, 1)
}

func TestGetOrCreateBookForSale_ReactivatesExisting(t *testing.T) {
	svc, bookRepo, gameRepo, _ := buildSalesSvc()

	game := seedGame(gameRepo, 1234, money.Cents(500), 75)
	finished := time.Now()
	b := seedBook(bookRepo, game, "0004567", 40, false)
	b.FinishedAt = &finished

	book, err := svc.GetOrCreateBookForSale(context.Background(), "1234", "0004567")
	require.NoError(t, err)

	assert.Equal(t, b.ID, book.ID)
	assert.True(t, book.IsActive)
	assert.Nil(t, book.FinishedAt)
	assert.Equal(t, 40, book.CurrentTicket, "reactivation must not move the cursor")
}

func TestGetOrCreateBookForSale_ExhaustedBookRejected(t *testing.T) {
	svc, bookRepo, gameRepo, _ := buildSalesSvc()

	game := seedGame(gameRepo, 1234, money.Cents(500), 75)
	seedBook(bookRepo, game, "0004567", -1, false)

	_, err := svc.GetOrCreateBookForSale(context.Background(), "1234", "0004567")
	assert.ErrorIs(t, err, ledger.ErrBookExhausted)
}

func TestGetOrCreateBookForSale_Validation(t *testing.T) {
	svc, _, gameRepo, _ := buildSalesSvc()

	game := seedGame(gameRepo, 1234, money.Cents(500), 75)

	_, err := svc.GetOrCreateBookForSale(context.Background(), "12x4", "0004567")
	assert.ErrorIs(t, err, service.ErrValidation)

	_, err = svc.GetOrCreateBookForSale(context.Background(), "1234", "123")
	assert.ErrorIs(t, err, service.ErrValidation)

	_, err = svc.GetOrCreateBookForSale(context.Background(), "9999", "0004567")
	assert.ErrorIs(t, err, service.ErrGameNotFound)

	game.IsExpired = true
	_, err = svc.GetOrCreateBookForSale(context.Background(), "1234", "0004567")
	assert.ErrorIs(t, err, service.ErrValidation)
}
