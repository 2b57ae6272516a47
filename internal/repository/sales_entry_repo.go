package repository

import (
	"context"
	"time"

	"lottopos/internal/model"
	"lottopos/internal/money"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ShiftAggregates are the sums over a shift's sales entries.
type ShiftAggregates struct {
	TotalTickets int
	TotalValue   money.Cents
}

type SalesEntryRepository interface {
	CreateTx(tx *gorm.DB, e *model.SalesEntry) error
	// SumForShiftTx aggregates count and price over the shift's entries
	// inside the submission transaction, so the aggregate sees exactly the
	// rows written by this batch.
	SumForShiftTx(tx *gorm.DB, shiftID uuid.UUID) (ShiftAggregates, error)
	ListForShift(ctx context.Context, shiftID uuid.UUID) ([]model.SalesEntry, error)
	ListForReport(ctx context.Context, start, end time.Time, userID *uuid.UUID) ([]model.SalesEntry, error)
}

type salesEntryRepo struct{ db *gorm.DB }

func NewSalesEntryRepository(db *gorm.DB) SalesEntryRepository { return &salesEntryRepo{db: db} }

func (r *salesEntryRepo) CreateTx(tx *gorm.DB, e *model.SalesEntry) error {
	return tx.Create(e).Error
}

func (r *salesEntryRepo) SumForShiftTx(tx *gorm.DB, shiftID uuid.UUID) (ShiftAggregates, error) {
	var row struct {
		TotalTickets *int
		TotalValue   *int64
	}
	err := tx.Model(&model.SalesEntry{}).
		Select("SUM(count) AS total_tickets, SUM(price) AS total_value").
		Where("shift_id = ?", shiftID).
		Scan(&row).Error
	if err != nil {
		return ShiftAggregates{}, err
	}
	agg := ShiftAggregates{}
	if row.TotalTickets != nil {
		agg.TotalTickets = *row.TotalTickets
	}
	if row.TotalValue != nil {
		agg.TotalValue = money.Cents(*row.TotalValue)
	}
	return agg, nil
}

func (r *salesEntryRepo) ListForShift(ctx context.Context, shiftID uuid.UUID) ([]model.SalesEntry, error) {
	var entries []model.SalesEntry
	err := r.db.WithContext(ctx).Preload("Book.Game").
		Where("shift_id = ?", shiftID).
		Order("created_at ASC").Find(&entries).Error
	return entries, err
}

func (r *salesEntryRepo) ListForReport(ctx context.Context, start, end time.Time, userID *uuid.UUID) ([]model.SalesEntry, error) {
	var entries []model.SalesEntry
	q := r.db.WithContext(ctx).Preload("Book.Game").Preload("Shift.User").
		Joins("JOIN shift_submissions ON shift_submissions.id = sales_entries.shift_id").
		Where("shift_submissions.submitted_at >= ? AND shift_submissions.submitted_at <= ?", start, end)
	if userID != nil {
		q = q.Where("shift_submissions.user_id = ?", *userID)
	}
	err := q.Order("sales_entries.created_at ASC").Find(&entries).Error
	return entries, err
}
