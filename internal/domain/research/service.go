package research

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// defaultFrom is the window start used when the caller omits dateFrom. Data
// older than this predates the service going live.
var defaultFrom = time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC)

// BadDateError reports an unparseable date query parameter.
type BadDateError struct {
	Param string
}

func (e *BadDateError) Error() string {
	return fmt.Sprintf("The %s must be in the format YYYY-MM-DD.", e.Param)
}

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Window converts the dateFrom/dateTo query parameters into an inclusive
// time range. dateFrom expands to the start of its day and dateTo to the end
// of its day, so a single-day window catches the whole day. dateTo also
// accepts a full timestamp for sub-day windows.
func (s *Service) Window(dateFrom, dateTo string) (time.Time, time.Time, error) {
	from := defaultFrom
	if dateFrom != "" {
		day, err := time.Parse(dateFormat, dateFrom)
		if err != nil {
			return time.Time{}, time.Time{}, &BadDateError{Param: "dateFrom"}
		}
		from = day
	}

	to := endOfDay(s.now().UTC())
	if dateTo != "" {
		if strings.Contains(dateTo, " ") {
			ts, err := time.Parse(dateTimeFormat, dateTo)
			if err != nil {
				return time.Time{}, time.Time{}, &BadDateError{Param: "dateTo"}
			}
			to = ts
		} else {
			day, err := time.Parse(dateFormat, dateTo)
			if err != nil {
				return time.Time{}, time.Time{}, &BadDateError{Param: "dateTo"}
			}
			to = endOfDay(day)
		}
	}

	return from, to, nil
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, t.Location())
}

func (s *Service) RecordResearch(ctx context.Context, rec *Record) error {
	if rec.Date.IsZero() {
		rec.Date = s.now().UTC()
	}
	return s.repo.InsertResearch(ctx, rec)
}

func (s *Service) RecordRisk(ctx context.Context, rr *RiskRecord) error {
	if rr.Date.IsZero() {
		rr.Date = s.now().UTC()
	}
	return s.repo.InsertRisk(ctx, rr)
}

func (s *Service) ListResearch(ctx context.Context, firmID int, from, to time.Time) ([]ResearchRow, error) {
	return s.repo.ListResearch(ctx, firmID, from, to)
}

func (s *Service) ListRisks(ctx context.Context, firmID int, from, to time.Time) ([]RiskRow, error) {
	return s.repo.ListRisks(ctx, firmID, from, to)
}
