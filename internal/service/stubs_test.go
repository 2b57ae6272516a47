package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"lottopos/internal/model"
	"lottopos/internal/money"
	"lottopos/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ── Stubs ─────────────────────────────────────────────────────────────────────

// stubGameRepo is an in-memory GameRepository.
type stubGameRepo struct {
	games map[uuid.UUID]*model.Game
}

func newStubGameRepo() *stubGameRepo {
	return &stubGameRepo{games: make(map[uuid.UUID]*model.Game)}
}

func (r *stubGameRepo) Create(_ context.Context, g *model.Game) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	r.games[g.ID] = g
	return nil
}

func (r *stubGameRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Game, error) {
	g, ok := r.games[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return g, nil
}

func (r *stubGameRepo) FindByGameNumber(_ context.Context, gameNumber int) (*model.Game, error) {
	for _, g := range r.games {
		if g.GameNumber == gameNumber {
			return g, nil
		}
	}
	return nil, errors.New("not found")
}

func (r *stubGameRepo) List(_ context.Context) ([]model.Game, error) {
	out := make([]model.Game, 0, len(r.games))
	for _, g := range r.games {
		out = append(out, *g)
	}
	return out, nil
}

func (r *stubGameRepo) Update(_ context.Context, g *model.Game) error {
	r.games[g.ID] = g
	return nil
}

var _ repository.GameRepository = (*stubGameRepo)(nil)

// stubBookRepo is an in-memory BookRepository. Sales presence flags are set
// directly by tests that exercise the has-sales guards.
type stubBookRepo struct {
	books       map[uuid.UUID]*model.Book
	salesByBook map[uuid.UUID]bool
	salesByGame map[uuid.UUID]bool
	deleted     []uuid.UUID
}

func newStubBookRepo() *stubBookRepo {
	return &stubBookRepo{
		books:       make(map[uuid.UUID]*model.Book),
		salesByBook: make(map[uuid.UUID]bool),
		salesByGame: make(map[uuid.UUID]bool),
	}
}

func (r *stubBookRepo) Create(_ context.Context, b *model.Book) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	for _, other := range r.books {
		if other.GameID == b.GameID && other.BookNumber == b.BookNumber {
			return errors.New("duplicate book")
		}
	}
	r.books[b.ID] = b
	return nil
}

func (r *stubBookRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Book, error) {
	b, ok := r.books[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return b, nil
}

func (r *stubBookRepo) FindByIDTx(_ *gorm.DB, id uuid.UUID) (*model.Book, error) {
	return r.FindByID(context.Background(), id)
}

func (r *stubBookRepo) FindByGameAndNumber(_ context.Context, gameID uuid.UUID, bookNumber string) (*model.Book, error) {
	for _, b := range r.books {
		if b.GameID == gameID && b.BookNumber == bookNumber {
			return b, nil
		}
	}
	return nil, errors.New("not found")
}

func (r *stubBookRepo) ListWithGame(_ context.Context) ([]model.Book, error) {
	out := make([]model.Book, 0, len(r.books))
	for _, b := range r.books {
		out = append(out, *b)
	}
	return out, nil
}

func (r *stubBookRepo) ListActiveWithGame(_ context.Context) ([]model.Book, error) {
	var out []model.Book
	for _, b := range r.books {
		if b.IsActive {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *stubBookRepo) Update(_ context.Context, b *model.Book) error {
	r.books[b.ID] = b
	return nil
}

func (r *stubBookRepo) UpdateTx(_ *gorm.DB, b *model.Book) error {
	r.books[b.ID] = b
	return nil
}

func (r *stubBookRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.books, id)
	r.deleted = append(r.deleted, id)
	return nil
}

func (r *stubBookRepo) HasSales(_ context.Context, bookID uuid.UUID) (bool, error) {
	return r.salesByBook[bookID], nil
}

func (r *stubBookRepo) GameHasSales(_ context.Context, gameID uuid.UUID) (bool, error) {
	return r.salesByGame[gameID], nil
}

var _ repository.BookRepository = (*stubBookRepo)(nil)

// stubSalesEntryRepo captures created entries for assertion.
type stubSalesEntryRepo struct {
	entries []model.SalesEntry
}

func (r *stubSalesEntryRepo) CreateTx(_ *gorm.DB, e *model.SalesEntry) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	r.entries = append(r.entries, *e)
	return nil
}

func (r *stubSalesEntryRepo) SumForShiftTx(_ *gorm.DB, shiftID uuid.UUID) (repository.ShiftAggregates, error) {
	agg := repository.ShiftAggregates{}
	for _, e := range r.entries {
		if e.ShiftID == shiftID {
			agg.TotalTickets += e.Count
			agg.TotalValue += e.Price
		}
	}
	return agg, nil
}

func (r *stubSalesEntryRepo) ListForShift(_ context.Context, shiftID uuid.UUID) ([]model.SalesEntry, error) {
	var out []model.SalesEntry
	for _, e := range r.entries {
		if e.ShiftID == shiftID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *stubSalesEntryRepo) ListForReport(_ context.Context, start, end time.Time, _ *uuid.UUID) ([]model.SalesEntry, error) {
	var out []model.SalesEntry
	for _, e := range r.entries {
		if !e.CreatedAt.Before(start) && !e.CreatedAt.After(end) {
			out = append(out, e)
		}
	}
	return out, nil
}

var _ repository.SalesEntryRepository = (*stubSalesEntryRepo)(nil)

// stubShiftRepo is an in-memory ShiftRepository. DB() returns nil so the
// service's transaction wrapper runs the body directly.
type stubShiftRepo struct {
	shifts map[uuid.UUID]*model.ShiftSubmission
}

func newStubShiftRepo() *stubShiftRepo {
	return &stubShiftRepo{shifts: make(map[uuid.UUID]*model.ShiftSubmission)}
}

func (r *stubShiftRepo) CreateTx(_ *gorm.DB, s *model.ShiftSubmission) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	copied := *s
	r.shifts[s.ID] = &copied
	return nil
}

func (r *stubShiftRepo) UpdateTx(_ *gorm.DB, s *model.ShiftSubmission) error {
	copied := *s
	r.shifts[s.ID] = &copied
	return nil
}

func (r *stubShiftRepo) FindByID(_ context.Context, id uuid.UUID) (*model.ShiftSubmission, error) {
	s, ok := r.shifts[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return s, nil
}

func (r *stubShiftRepo) SumDeltasForDateTx(_ *gorm.DB, calendarDate time.Time, before time.Time) (repository.DeltaSums, error) {
	sums := repository.DeltaSums{}
	day := calendarDate.Format("2006-01-02")
	for _, s := range r.shifts {
		if s.CalendarDate.Format("2006-01-02") == day && s.SubmittedAt.Before(before) {
			sums.OnlineSales += s.DeltaOnlineSales
			sums.OnlinePayouts += s.DeltaOnlinePayouts
			sums.InstantPayouts += s.DeltaInstantPayouts
		}
	}
	return sums, nil
}

func (r *stubShiftRepo) ListByDateRange(_ context.Context, start, end time.Time, userID *uuid.UUID) ([]model.ShiftSubmission, error) {
	var out []model.ShiftSubmission
	for _, s := range r.shifts {
		if s.SubmittedAt.Before(start) || s.SubmittedAt.After(end) {
			continue
		}
		if userID != nil && s.UserID != *userID {
			continue
		}
		out = append(out, *s)
	}
	return out, nil
}

func (r *stubShiftRepo) DB() *gorm.DB { return nil }

var _ repository.ShiftRepository = (*stubShiftRepo)(nil)

// stubUserRepo is an in-memory UserRepository.
type stubUserRepo struct {
	users map[uuid.UUID]*model.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[uuid.UUID]*model.User)}
}

func (r *stubUserRepo) Create(_ context.Context, u *model.User) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.users[u.ID] = u
	return nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return u, nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, errors.New("not found")
}

func (r *stubUserRepo) List(_ context.Context, includeInactive bool) ([]model.User, error) {
	var out []model.User
	for _, u := range r.users {
		if includeInactive || u.Active {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *stubUserRepo) Update(_ context.Context, u *model.User) error {
	r.users[u.ID] = u
	return nil
}

func (r *stubUserRepo) CountAdmins(_ context.Context) (int64, error) {
	var n int64
	for _, u := range r.users {
		if u.Role == model.RoleAdmin && u.Active {
			n++
		}
	}
	return n, nil
}

var _ repository.UserRepository = (*stubUserRepo)(nil)

// ── Fixture helpers ───────────────────────────────────────────────────────────

func mustUUID(t *testing.T, s string) uuid.UUID {
	t.Helper()
	id, err := uuid.Parse(s)
	if err != nil {
		t.Fatalf("invalid uuid %q: %v", s, err)
	}
	return id
}

func seedGame(games *stubGameRepo, number int, priceCents money.Cents, totalTickets int) *model.Game {
	g := &model.Game{
		ID:                 uuid.New(),
		GameNumber:         number,
		Name:               "Test Game",
		Price:              priceCents,
		TotalTickets:       totalTickets,
		DefaultTicketOrder: "reverse",
	}
	games.games[g.ID] = g
	return g
}

func seedBook(books *stubBookRepo, game *model.Game, bookNumber string, currentTicket int, active bool) *model.Book {
	b := &model.Book{
		ID:            uuid.New(),
		GameID:        game.ID,
		BookNumber:    bookNumber,
		TicketOrder:   game.DefaultTicketOrder,
		CurrentTicket: currentTicket,
		IsActive:      active,
		Game:          game,
	}
	books.books[b.ID] = b
	return b
}
