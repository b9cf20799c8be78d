package reports

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"aais-kitchen-backend/internal/platform/apierr"
	"aais-kitchen-backend/internal/platform/clock"
	"aais-kitchen-backend/internal/platform/validation"
)

type Service struct {
	repo  Repository
	clock clock.Clock
	loc   *time.Location
}

func NewService(conn *sql.DB, loc *time.Location) *Service {
	return newService(NewStore(conn), clock.Real(), loc)
}

func newService(repo Repository, c clock.Clock, loc *time.Location) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{repo: repo, clock: c, loc: loc}
}

func (s *Service) Attendance(ctx context.Context, franchiseID, fromStr, toStr string) (*Table, error) {
	from, to, err := s.parseRange(fromStr, toStr)
	if err != nil {
		return nil, err
	}
	rows, err := s.repo.AttendanceBetween(ctx, franchiseID, from, to)
	if err != nil {
		return nil, err
	}
	t := &Table{
		Filename: filename("attendance", from, to),
		Header:   []string{"date", "meal_type", "mess_member_id", "member_name", "scanned_at"},
		Records:  make([][]string, 0, len(rows)),
	}
	for _, r := range rows {
		t.Records = append(t.Records, []string{
			r.Date.Format(validation.DateLayout),
			r.MealType,
			r.MemberID,
			r.MemberName,
			r.ScannedAt.In(s.loc).Format(time.RFC3339),
		})
	}
	return t, nil
}

func (s *Service) GuestMeals(ctx context.Context, franchiseID, fromStr, toStr string) (*Table, error) {
	from, to, err := s.parseRange(fromStr, toStr)
	if err != nil {
		return nil, err
	}
	rows, err := s.repo.GuestMealsBetween(ctx, franchiseID, from.UTC(), to.AddDate(0, 0, 1).UTC())
	if err != nil {
		return nil, err
	}
	t := &Table{
		Filename: filename("guest_meals", from, to),
		Header:   []string{"date", "meal_type", "guest_name", "no_of_person", "price", "requested_by"},
		Records:  make([][]string, 0, len(rows)),
	}
	for _, r := range rows {
		t.Records = append(t.Records, []string{
			r.Date.In(s.loc).Format(time.RFC3339),
			r.MealType,
			r.GuestName,
			strconv.Itoa(r.NoOfPerson),
			r.Price.StringFixed(2),
			r.MemberName,
		})
	}
	return t, nil
}

// parseRange: to 省略時は今日、from 省略時は to と同じ日
func (s *Service) parseRange(fromStr, toStr string) (time.Time, time.Time, error) {
	to := clock.Today(s.clock, s.loc)
	if v := strings.TrimSpace(toStr); v != "" {
		d, err := time.ParseInLocation(validation.DateLayout, v, s.loc)
		if err != nil {
			return time.Time{}, time.Time{}, apierr.Invalid("to must be YYYY-MM-DD")
		}
		to = d
	}
	from := to
	if v := strings.TrimSpace(fromStr); v != "" {
		d, err := time.ParseInLocation(validation.DateLayout, v, s.loc)
		if err != nil {
			return time.Time{}, time.Time{}, apierr.Invalid("from must be YYYY-MM-DD")
		}
		from = d
	}
	if to.Before(from) {
		return time.Time{}, time.Time{}, apierr.Invalid("to must not be before from")
	}
	if from.AddDate(0, 0, MaxRangeDays).Before(to.AddDate(0, 0, 1)) {
		return time.Time{}, time.Time{}, apierr.Invalid(fmt.Sprintf("range must be at most %d days", MaxRangeDays))
	}
	return from, to, nil
}

func filename(kind string, from, to time.Time) string {
	return fmt.Sprintf("%s_%s_%s.csv", kind, from.Format("20060102"), to.Format("20060102"))
}
