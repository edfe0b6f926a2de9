package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"parkgate/internal/model"
	"parkgate/internal/repository"
)

const reportDateLayout = "2006-01-02"

// ReportService builds the admin traffic reports.
type ReportService interface {
	// Daily summarises one calendar day in the configured time zone. An empty date means today.
	// Sessions are only listed when detail is set.
	Daily(ctx context.Context, date string, detail bool) (*model.DailyReport, error)
}

type reportService struct {
	sessions repository.GuestSessionRepository
	logs     repository.ParkingLogRepository
	loc      *time.Location
	now      func() time.Time
}

func NewReportService(sessions repository.GuestSessionRepository, logs repository.ParkingLogRepository, loc *time.Location, now func() time.Time) ReportService {
	if loc == nil {
		loc = time.UTC
	}
	if now == nil {
		now = time.Now
	}
	return &reportService{sessions: sessions, logs: logs, loc: loc, now: now}
}

func (s *reportService) Daily(ctx context.Context, date string, detail bool) (*model.DailyReport, error) {
	day, err := s.resolveDay(strings.TrimSpace(date))
	if err != nil {
		return nil, err
	}
	from, to := day, day.AddDate(0, 0, 1)

	// Resident traffic counts both directions through the gate.
	residents := 0
	for _, event := range []string{model.EventResidentIn, model.EventResidentOut} {
		n, err := s.logs.Count(ctx, event, from, to)
		if err != nil {
			return nil, fmt.Errorf("count %s events: %w", event, err)
		}
		residents += n
	}
	stats, err := s.sessions.Stats(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("guest stats: %w", err)
	}

	rep := &model.DailyReport{
		Date:          day.Format(reportDateLayout),
		ResidentCount: residents,
		GuestCount:    stats.Count,
		Revenue:       stats.Revenue,
	}
	if !detail {
		return rep, nil
	}

	sessions, err := s.sessions.ListCheckedIn(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	rep.Sessions = make([]model.SessionRow, 0, len(sessions))
	for _, gs := range sessions {
		rep.Sessions = append(rep.Sessions, s.row(day, gs))
	}
	return rep, nil
}

func (s *reportService) resolveDay(date string) (time.Time, error) {
	if date == "" {
		n := s.now().In(s.loc)
		return time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, s.loc), nil
	}
	day, err := time.ParseInLocation(reportDateLayout, date, s.loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrValidation)
	}
	return day, nil
}

// row formats clock times for the report day; a checkout on a later day carries its date.
func (s *reportService) row(day time.Time, gs model.GuestSession) model.SessionRow {
	r := model.SessionRow{
		PlateNumber: gs.Plate,
		TicketCode:  gs.TicketCode,
		CheckinTime: gs.CheckinTime.In(s.loc).Format("15:04"),
	}
	if gs.CheckoutTime != nil {
		out := gs.CheckoutTime.In(s.loc)
		if out.Format(reportDateLayout) == day.Format(reportDateLayout) {
			r.CheckoutTime = out.Format("15:04")
		} else {
			r.CheckoutTime = out.Format("2006-01-02 15:04")
		}
	}
	if gs.Fee != nil {
		r.Amount = *gs.Fee
	}
	return r
}
