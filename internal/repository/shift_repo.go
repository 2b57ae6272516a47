package repository

import (
	"context"
	"time"

	"lottopos/internal/model"
	"lottopos/internal/money"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DeltaSums holds the summed per-shift deltas of a calendar date, one per
// tracked terminal metric.
type DeltaSums struct {
	OnlineSales    money.Cents
	OnlinePayouts  money.Cents
	InstantPayouts money.Cents
}

type ShiftRepository interface {
	CreateTx(tx *gorm.DB, s *model.ShiftSubmission) error
	UpdateTx(tx *gorm.DB, s *model.ShiftSubmission) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.ShiftSubmission, error)
	// SumDeltasForDateTx sums the deltas of every shift on calendarDate
	// submitted strictly before the given timestamp. Submission timestamp,
	// not surrogate key, is the ordering key; a backdated correction entry
	// therefore sees exactly the shifts that preceded it in wall-clock
	// order. Runs inside the submission transaction.
	SumDeltasForDateTx(tx *gorm.DB, calendarDate time.Time, before time.Time) (DeltaSums, error)
	ListByDateRange(ctx context.Context, start, end time.Time, userID *uuid.UUID) ([]model.ShiftSubmission, error)
	// DB exposes the underlying handle for transaction creation in the
	// service layer.
	DB() *gorm.DB
}

type shiftRepo struct{ db *gorm.DB }

func NewShiftRepository(db *gorm.DB) ShiftRepository { return &shiftRepo{db: db} }

func (r *shiftRepo) DB() *gorm.DB { return r.db }

func (r *shiftRepo) CreateTx(tx *gorm.DB, s *model.ShiftSubmission) error {
	return tx.Create(s).Error
}

func (r *shiftRepo) UpdateTx(tx *gorm.DB, s *model.ShiftSubmission) error {
	return tx.Save(s).Error
}

func (r *shiftRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.ShiftSubmission, error) {
	var s model.ShiftSubmission
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("SalesEntries.Book.Game").
		First(&s, "id = ?", id).Error
	return &s, err
}

func (r *shiftRepo) SumDeltasForDateTx(tx *gorm.DB, calendarDate time.Time, before time.Time) (DeltaSums, error) {
	var row struct {
		OnlineSales    *int64
		OnlinePayouts  *int64
		InstantPayouts *int64
	}
	err := tx.Model(&model.ShiftSubmission{}).
		Select(`SUM(delta_online_sales) AS online_sales,
			SUM(delta_online_payouts) AS online_payouts,
			SUM(delta_instant_payouts) AS instant_payouts`).
		Where("calendar_date = ? AND submitted_at < ?", calendarDate.Format("2006-01-02"), before).
		Scan(&row).Error
	if err != nil {
		return DeltaSums{}, err
	}
	sums := DeltaSums{}
	if row.OnlineSales != nil {
		sums.OnlineSales = money.Cents(*row.OnlineSales)
	}
	if row.OnlinePayouts != nil {
		sums.OnlinePayouts = money.Cents(*row.OnlinePayouts)
	}
	if row.InstantPayouts != nil {
		sums.InstantPayouts = money.Cents(*row.InstantPayouts)
	}
	return sums, nil
}

func (r *shiftRepo) ListByDateRange(ctx context.Context, start, end time.Time, userID *uuid.UUID) ([]model.ShiftSubmission, error) {
	var shifts []model.ShiftSubmission
	q := r.db.WithContext(ctx).Preload("User").
		Where("submitted_at >= ? AND submitted_at <= ?", start, end)
	if userID != nil {
		q = q.Where("user_id = ?", *userID)
	}
	err := q.Order("submitted_at DESC").Find(&shifts).Error
	return shifts, err
}
