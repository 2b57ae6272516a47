package repository

import (
	"context"

	"lottopos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BookRepository interface {
	Create(ctx context.Context, b *model.Book) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Book, error)
	// FindByIDTx is the in-transaction variant used by the batch processor;
	// the row is locked for update so concurrent submissions serialize on
	// the final read-modify-write of the cursor.
	FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Book, error)
	FindByGameAndNumber(ctx context.Context, gameID uuid.UUID, bookNumber string) (*model.Book, error)
	ListWithGame(ctx context.Context) ([]model.Book, error)
	ListActiveWithGame(ctx context.Context) ([]model.Book, error)
	Update(ctx context.Context, b *model.Book) error
	UpdateTx(tx *gorm.DB, b *model.Book) error
	Delete(ctx context.Context, id uuid.UUID) error
	HasSales(ctx context.Context, bookID uuid.UUID) (bool, error)
	GameHasSales(ctx context.Context, gameID uuid.UUID) (bool, error)
}

type bookRepo struct{ db *gorm.DB }

func NewBookRepository(db *gorm.DB) BookRepository { return &bookRepo{db: db} }

func (r *bookRepo) Create(ctx context.Context, b *model.Book) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *bookRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Book, error) {
	var b model.Book
	err := r.db.WithContext(ctx).Preload("Game").First(&b, "id = ?", id).Error
	return &b, err
}

func (r *bookRepo) FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Book, error) {
	var b model.Book
	err := tx.Clauses(forUpdate()).Preload("Game").First(&b, "id = ?", id).Error
	return &b, err
}

func (r *bookRepo) FindByGameAndNumber(ctx context.Context, gameID uuid.UUID, bookNumber string) (*model.Book, error) {
	var b model.Book
	err := r.db.WithContext(ctx).Preload("Game").
		Where("game_id = ? AND book_number = ?", gameID, bookNumber).First(&b).Error
	return &b, err
}

func (r *bookRepo) ListWithGame(ctx context.Context) ([]model.Book, error) {
	var books []model.Book
	err := r.db.WithContext(ctx).Preload("Game").
		Order("game_id").Order("book_number").Find(&books).Error
	return books, err
}

func (r *bookRepo) ListActiveWithGame(ctx context.Context) ([]model.Book, error) {
	var books []model.Book
	err := r.db.WithContext(ctx).Preload("Game").
		Where("is_active = true").
		Order("game_id").Order("book_number").Find(&books).Error
	return books, err
}

func (r *bookRepo) Update(ctx context.Context, b *model.Book) error {
	return r.db.WithContext(ctx).Save(b).Error
}

func (r *bookRepo) UpdateTx(tx *gorm.DB, b *model.Book) error {
	return tx.Save(b).Error
}

func (r *bookRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Book{}, "id = ?", id).Error
}

func (r *bookRepo) HasSales(ctx context.Context, bookID uuid.UUID) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.SalesEntry{}).
		Where("book_id = ?", bookID).Limit(1).Count(&n).Error
	return n > 0, err
}

func (r *bookRepo) GameHasSales(ctx context.Context, gameID uuid.UUID) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.SalesEntry{}).
		Joins("JOIN books ON books.id = sales_entries.book_id").
		Where("books.game_id = ?", gameID).Limit(1).Count(&n).Error
	return n > 0, err
}
