package repository

import (
	"context"

	"lottopos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GameRepository interface {
	Create(ctx context.Context, g *model.Game) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Game, error)
	FindByGameNumber(ctx context.Context, gameNumber int) (*model.Game, error)
	// List returns games ordered by expiration flag then price, the order
	// the catalogue screens display them in.
	List(ctx context.Context) ([]model.Game, error)
	Update(ctx context.Context, g *model.Game) error
}

type gameRepo struct{ db *gorm.DB }

func NewGameRepository(db *gorm.DB) GameRepository { return &gameRepo{db: db} }

func (r *gameRepo) Create(ctx context.Context, g *model.Game) error {
	return r.db.WithContext(ctx).Create(g).Error
}

func (r *gameRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Game, error) {
	var g model.Game
	err := r.db.WithContext(ctx).First(&g, "id = ?", id).Error
	return &g, err
}

func (r *gameRepo) FindByGameNumber(ctx context.Context, gameNumber int) (*model.Game, error) {
	var g model.Game
	err := r.db.WithContext(ctx).Where("game_number = ?", gameNumber).First(&g).Error
	return &g, err
}

func (r *gameRepo) List(ctx context.Context) ([]model.Game, error) {
	var games []model.Game
	err := r.db.WithContext(ctx).Order("is_expired ASC").Order("price ASC").Find(&games).Error
	return games, err
}

func (r *gameRepo) Update(ctx context.Context, g *model.Game) error {
	return r.db.WithContext(ctx).Save(g).Error
}
