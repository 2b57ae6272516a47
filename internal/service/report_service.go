package service

import (
	"context"
	"fmt"
	"time"

	"lottopos/internal/dto"
	"lottopos/internal/money"
	"lottopos/internal/repository"

	"github.com/google/uuid"
)

const reportDateLayout = "2006-01-02"

type ReportService interface {
	// ShiftReport summarizes every settlement in [startDate, endDate],
	// dates inclusive, optionally narrowed to one user.
	ShiftReport(ctx context.Context, startDate, endDate string, userID *uuid.UUID) (*dto.ShiftReportResponse, error)
	SalesReport(ctx context.Context, startDate, endDate string, userID *uuid.UUID) (*dto.SalesReportResponse, error)
}

type reportService struct {
	shiftRepo repository.ShiftRepository
	entryRepo repository.SalesEntryRepository
}

func NewReportService(shiftRepo repository.ShiftRepository, entryRepo repository.SalesEntryRepository) ReportService {
	return &reportService{shiftRepo: shiftRepo, entryRepo: entryRepo}
}

// reportRange parses the inclusive date pair into a [start, end-of-day] window.
func reportRange(startDate, endDate string) (time.Time, time.Time, error) {
	start, err := time.Parse(reportDateLayout, startDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: invalid start date %q", ErrValidation, startDate)
	}
	end, err := time.Parse(reportDateLayout, endDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: invalid end date %q", ErrValidation, endDate)
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: end date precedes start date", ErrValidation)
	}
	return start, end.Add(24*time.Hour - time.Nanosecond), nil
}

func (s *reportService) ShiftReport(ctx context.Context, startDate, endDate string, userID *uuid.UUID) (*dto.ShiftReportResponse, error) {
	start, end, err := reportRange(startDate, endDate)
	if err != nil {
		return nil, err
	}
	shifts, err := s.shiftRepo.ListByDateRange(ctx, start, end, userID)
	if err != nil {
		return nil, err
	}

	resp := dto.ShiftReportResponse{Rows: make([]dto.ShiftReportRow, 0, len(shifts))}
	var totals struct {
		onlineSales, onlinePayouts, instantPayouts money.Cents
		instantValue, drawerValue, drawerDiff      money.Cents
		instantTickets                             int
	}
	for i := range shifts {
		sh := &shifts[i]
		username := ""
		if sh.User != nil {
			username = sh.User.Username
		}
		resp.Rows = append(resp.Rows, dto.ShiftReportRow{
			SubmittedAt:         sh.SubmittedAt.Format(time.RFC3339),
			CalendarDate:        sh.CalendarDate.Format(reportDateLayout),
			Username:            username,
			Kind:                sh.Kind,
			DeltaOnlineSales:    sh.DeltaOnlineSales.Decimal(),
			DeltaOnlinePayouts:  sh.DeltaOnlinePayouts.Decimal(),
			DeltaInstantPayouts: sh.DeltaInstantPayouts.Decimal(),
			InstantTicketsSold:  sh.InstantTicketsSold,
			InstantValue:        sh.InstantValue.Decimal(),
			DrawerValue:         sh.DrawerValue.Decimal(),
			DrawerDifference:    sh.DrawerDifference.Decimal(),
		})
		totals.onlineSales += sh.DeltaOnlineSales
		totals.onlinePayouts += sh.DeltaOnlinePayouts
		totals.instantPayouts += sh.DeltaInstantPayouts
		totals.instantTickets += sh.InstantTicketsSold
		totals.instantValue += sh.InstantValue
		totals.drawerValue += sh.DrawerValue
		totals.drawerDiff += sh.DrawerDifference
	}
	resp.Totals = dto.ShiftReportTotals{
		DeltaOnlineSales:    totals.onlineSales.Decimal(),
		DeltaOnlinePayouts:  totals.onlinePayouts.Decimal(),
		DeltaInstantPayouts: totals.instantPayouts.Decimal(),
		InstantTicketsSold:  totals.instantTickets,
		InstantValue:        totals.instantValue.Decimal(),
		DrawerValue:         totals.drawerValue.Decimal(),
		DrawerDifference:    totals.drawerDiff.Decimal(),
	}
	return &resp, nil
}

func (s *reportService) SalesReport(ctx context.Context, startDate, endDate string, userID *uuid.UUID) (*dto.SalesReportResponse, error) {
	start, end, err := reportRange(startDate, endDate)
	if err != nil {
		return nil, err
	}
	entries, err := s.entryRepo.ListForReport(ctx, start, end, userID)
	if err != nil {
		return nil, err
	}

	resp := dto.SalesReportResponse{Rows: make([]dto.SalesReportRow, 0, len(entries))}
	var totalValue money.Cents
	for i := range entries {
		e := &entries[i]
		row := dto.SalesReportRow{
			CreatedAt:   e.CreatedAt.Format(time.RFC3339),
			StartTicket: e.StartTicket,
			EndTicket:   e.EndTicket,
			Count:       e.Count,
			Price:       e.Price.Decimal(),
		}
		if e.Book != nil {
			row.BookNumber = e.Book.BookNumber
			if e.Book.Game != nil {
				row.GameNumber = e.Book.Game.GameNumber
				row.GameName = e.Book.Game.Name
			}
		}
		if e.Shift != nil && e.Shift.User != nil {
			row.Username = e.Shift.User.Username
		}
		resp.Rows = append(resp.Rows, row)
		resp.TotalCount += e.Count
		totalValue += e.Price
	}
	resp.TotalValue = totalValue.Decimal()
	return &resp, nil
}
