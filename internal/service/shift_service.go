package service

import (
	"context"
	"time"

	"lottopos/internal/dto"
	"lottopos/internal/model"
	"lottopos/internal/money"
	"lottopos/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type ShiftService interface {
	// SubmitShift settles one cashier shift: delta computation against
	// earlier same-day shifts, batch application of book observations,
	// drawer reconciliation. Everything commits in one transaction or not
	// at all; a partial shift is never visible.
	SubmitShift(ctx context.Context, userID uuid.UUID, req dto.SubmitShiftRequest) (*dto.SubmitShiftResponse, error)
	// SubmitFullBookSale is the admin operation that declares whole books
	// sold with no physical drawer count. The drawer difference is zero by
	// definition, not by arithmetic.
	SubmitFullBookSale(ctx context.Context, adminID uuid.UUID, req dto.FullBookSaleRequest) (*dto.SubmitShiftResponse, error)
	GetShift(ctx context.Context, id uuid.UUID) (*dto.ShiftResponse, error)
}

type shiftService struct {
	shiftRepo repository.ShiftRepository
	salesRepo repository.SalesEntryRepository
	bookRepo  repository.BookRepository
	salesSvc  SalesEntryService
}

func NewShiftService(
	shiftRepo repository.ShiftRepository,
	salesRepo repository.SalesEntryRepository,
	bookRepo repository.BookRepository,
	salesSvc SalesEntryService,
) ShiftService {
	return &shiftService{
		shiftRepo: shiftRepo,
		salesRepo: salesRepo,
		bookRepo:  bookRepo,
		salesSvc:  salesSvc,
	}
}

// calendarDate truncates a submission timestamp to its date, the key that
// isolates delta computation per day.
func calendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ── SubmitShift ───────────────────────────────────────────────────────────────

func (s *shiftService) SubmitShift(ctx context.Context, userID uuid.UUID, req dto.SubmitShiftRequest) (*dto.SubmitShiftResponse, error) {
	now := time.Now()

	var (
		shift        *model.ShiftSubmission
		successCount int
		itemErrs     []string
	)

	txErr := runTx(ctx, s.shiftRepo.DB(), func(tx *gorm.DB) error {
		// Deltas: this shift's contribution is what the terminal reports
		// minus everything earlier shifts of the day already accounted for.
		prior, err := s.shiftRepo.SumDeltasForDateTx(tx, calendarDate(now), now)
		if err != nil {
			return err
		}

		reportedSales := money.FromDecimal(req.ReportedOnlineSales)
		reportedOnlinePayouts := money.FromDecimal(req.ReportedOnlinePayouts)
		reportedInstantPayouts := money.FromDecimal(req.ReportedInstantPayouts)

		shift = &model.ShiftSubmission{
			UserID:                 userID,
			Kind:                   model.ShiftKindRegular,
			SubmittedAt:            now,
			CalendarDate:           calendarDate(now),
			ReportedOnlineSales:    reportedSales,
			ReportedOnlinePayouts:  reportedOnlinePayouts,
			ReportedInstantPayouts: reportedInstantPayouts,
			DeltaOnlineSales:       reportedSales - prior.OnlineSales,
			DeltaOnlinePayouts:     reportedOnlinePayouts - prior.OnlinePayouts,
			DeltaInstantPayouts:    reportedInstantPayouts - prior.InstantPayouts,
		}
		if err := s.shiftRepo.CreateTx(tx, shift); err != nil {
			return err
		}

		successCount, itemErrs = s.salesSvc.ProcessBatchTx(tx, shift.ID, req.Items)

		agg, err := s.salesRepo.SumForShiftTx(tx, shift.ID)
		if err != nil {
			return err
		}
		shift.InstantTicketsSold = agg.TotalTickets
		shift.InstantValue = agg.TotalValue

		shift.DrawerValue = expectedDrawerValue(
			shift.DeltaOnlineSales, shift.InstantValue,
			shift.DeltaOnlinePayouts, shift.DeltaInstantPayouts)
		shift.CountedCash = money.FromDecimal(req.CountedCash)
		shift.DrawerDifference = drawerDifference(shift.DrawerValue, shift.CountedCash)

		return s.shiftRepo.UpdateTx(tx, shift)
	})
	if txErr != nil {
		return nil, txErr
	}

	if len(itemErrs) > 0 {
		log.Warn().Str("shift_id", shift.ID.String()).Strs("errors", itemErrs).
			Msg("shift submitted with rejected items")
	}

	return &dto.SubmitShiftResponse{
		Shift:        shiftToResponse(shift, nil),
		SuccessCount: successCount,
		FailureCount: len(itemErrs),
		Errors:       emptyIfNil(itemErrs),
	}, nil
}

// ── SubmitFullBookSale ────────────────────────────────────────────────────────
// Reported totals are set to the prior same-day delta sums, so this shift's
// online deltas come out zero and only the full-book instant sales count.

func (s *shiftService) SubmitFullBookSale(ctx context.Context, adminID uuid.UUID, req dto.FullBookSaleRequest) (*dto.SubmitShiftResponse, error) {
	now := time.Now()

	var (
		shift        *model.ShiftSubmission
		successCount int
		itemErrs     []string
	)

	txErr := runTx(ctx, s.shiftRepo.DB(), func(tx *gorm.DB) error {
		prior, err := s.shiftRepo.SumDeltasForDateTx(tx, calendarDate(now), now)
		if err != nil {
			return err
		}

		shift = &model.ShiftSubmission{
			UserID:                 adminID,
			Kind:                   model.ShiftKindFullBookSale,
			SubmittedAt:            now,
			CalendarDate:           calendarDate(now),
			ReportedOnlineSales:    prior.OnlineSales,
			ReportedOnlinePayouts:  prior.OnlinePayouts,
			ReportedInstantPayouts: prior.InstantPayouts,
		}
		if err := s.shiftRepo.CreateTx(tx, shift); err != nil {
			return err
		}

		// Each listed book becomes an all-sold observation against its
		// live cursor.
		items := make([]dto.SalesItem, 0, len(req.BookIDs))
		for _, idStr := range req.BookIDs {
			id, err := uuid.Parse(idStr)
			if err != nil {
				itemErrs = append(itemErrs, "book "+idStr+": invalid id")
				continue
			}
			book, err := s.bookRepo.FindByIDTx(tx, id)
			if err != nil {
				itemErrs = append(itemErrs, "book "+idStr+": not found")
				continue
			}
			items = append(items, dto.SalesItem{
				BookID:         book.ID.String(),
				BaselineTicket: book.CurrentTicket,
				AllSold:        true,
			})
		}

		batchSuccess, batchErrs := s.salesSvc.ProcessBatchTx(tx, shift.ID, items)
		successCount = batchSuccess
		itemErrs = append(itemErrs, batchErrs...)

		agg, err := s.salesRepo.SumForShiftTx(tx, shift.ID)
		if err != nil {
			return err
		}
		shift.InstantTicketsSold = agg.TotalTickets
		shift.InstantValue = agg.TotalValue

		shift.DrawerValue = expectedDrawerValue(
			shift.DeltaOnlineSales, shift.InstantValue,
			shift.DeltaOnlinePayouts, shift.DeltaInstantPayouts)
		// Counted cash equals the expected value by definition for this
		// shift kind; the difference is declared zero, not computed.
		shift.CountedCash = shift.DrawerValue
		shift.DrawerDifference = 0

		return s.shiftRepo.UpdateTx(tx, shift)
	})
	if txErr != nil {
		return nil, txErr
	}

	return &dto.SubmitShiftResponse{
		Shift:        shiftToResponse(shift, nil),
		SuccessCount: successCount,
		FailureCount: len(itemErrs),
		Errors:       emptyIfNil(itemErrs),
	}, nil
}

// ── GetShift ──────────────────────────────────────────────────────────────────

func (s *shiftService) GetShift(ctx context.Context, id uuid.UUID) (*dto.ShiftResponse, error) {
	shift, err := s.shiftRepo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrShiftNotFound
	}
	resp := shiftToResponse(shift, shift.SalesEntries)
	return &resp, nil
}

// ── Mapping helpers ───────────────────────────────────────────────────────────

func shiftToResponse(s *model.ShiftSubmission, entries []model.SalesEntry) dto.ShiftResponse {
	resp := dto.ShiftResponse{
		ID:           s.ID.String(),
		UserID:       s.UserID.String(),
		Kind:         s.Kind,
		SubmittedAt:  s.SubmittedAt.Format(time.RFC3339),
		CalendarDate: s.CalendarDate.Format("2006-01-02"),

		ReportedOnlineSales:    s.ReportedOnlineSales.Decimal(),
		ReportedOnlinePayouts:  s.ReportedOnlinePayouts.Decimal(),
		ReportedInstantPayouts: s.ReportedInstantPayouts.Decimal(),

		DeltaOnlineSales:    s.DeltaOnlineSales.Decimal(),
		DeltaOnlinePayouts:  s.DeltaOnlinePayouts.Decimal(),
		DeltaInstantPayouts: s.DeltaInstantPayouts.Decimal(),

		InstantTicketsSold: s.InstantTicketsSold,
		InstantValue:       s.InstantValue.Decimal(),

		DrawerValue:      s.DrawerValue.Decimal(),
		CountedCash:      s.CountedCash.Decimal(),
		DrawerDifference: s.DrawerDifference.Decimal(),
	}
	for _, e := range entries {
		resp.SalesEntries = append(resp.SalesEntries, salesEntryToResponse(&e))
	}
	return resp
}

func salesEntryToResponse(e *model.SalesEntry) dto.SalesEntryResponse {
	resp := dto.SalesEntryResponse{
		ID:          e.ID.String(),
		BookID:      e.BookID.String(),
		StartTicket: e.StartTicket,
		EndTicket:   e.EndTicket,
		Count:       e.Count,
		Price:       e.Price.Decimal(),
		CreatedAt:   e.CreatedAt.Format(time.RFC3339),
	}
	if e.Book != nil {
		resp.BookNumber = e.Book.BookNumber
		if e.Book.Game != nil {
			resp.GameNumber = e.Book.Game.GameNumber
		}
	}
	return resp
}

func emptyIfNil(errs []string) []string {
	if errs == nil {
		return []string{}
	}
	return errs
}
