package attendance

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"aais-kitchen-backend/internal/mealqr"
	"aais-kitchen-backend/internal/platform/apierr"
	"aais-kitchen-backend/internal/platform/clock"
	"aais-kitchen-backend/internal/platform/db"
	"aais-kitchen-backend/internal/platform/idgen"
	"aais-kitchen-backend/internal/platform/logger"
	"aais-kitchen-backend/internal/platform/mealtype"
	"aais-kitchen-backend/internal/platform/validation"
)

// 期間指定の上限（日）
const maxRangeDays = 366

type Service struct {
	repo     Repository
	clock    clock.Clock
	id       idgen.IDGen
	loc      *time.Location
	cooldown *Cooldown
	log      logger.Logger
}

type Options struct {
	Location     *time.Location
	ScanCooldown time.Duration
}

func NewService(conn *sql.DB, opts Options, log logger.Logger) *Service {
	c := clock.Real()
	return newService(NewStore(conn), c, idgen.UUID(), opts, log)
}

func newService(repo Repository, c clock.Clock, id idgen.IDGen, opts Options, log logger.Logger) *Service {
	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}
	return &Service{
		repo:     repo,
		clock:    c,
		id:       id,
		loc:      loc,
		cooldown: NewCooldown(opts.ScanCooldown, c),
		log:      log,
	}
}

// Scan: 読み取った QR を検証して出席を1件記録する
func (s *Service) Scan(ctx context.Context, userID, scanned string, expected mealtype.MealType) (*Record, error) {
	if !s.cooldown.Allow(userID) {
		return nil, apierr.TooManyRequests(fmt.Sprintf("please wait %s before scanning again", s.cooldown.RetryAfter(userID).Round(time.Second)))
	}
	if !expected.Valid() {
		return nil, apierr.Invalid("meal_type must be breakfast, lunch or dinner")
	}

	tok, err := mealqr.ParseToken(scanned)
	if err != nil {
		return nil, s.reject(userID, scanned, apierr.Invalid("invalid QR code format"))
	}

	today := clock.Today(s.clock, s.loc)
	ok, err := s.repo.CodeExists(ctx, scanned, expected, today, tok.FranchiseID)
	if err != nil {
		return nil, fmt.Errorf("lookup qr code: %w", err)
	}
	if !ok {
		return nil, s.reject(userID, scanned, apierr.Invalid("invalid QR code"))
	}

	member, err := s.repo.MemberByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("lookup member: %w", err)
	}
	if member == nil {
		return nil, s.reject(userID, scanned, apierr.NotFound("mess member not found"))
	}
	if member.FranchiseID != tok.FranchiseID {
		return nil, s.reject(userID, scanned, apierr.Forbidden("franchise mismatch"))
	}

	id, err := s.id.New()
	if err != nil {
		return nil, err
	}
	rec := Record{
		ID:           id,
		MessMemberID: member.ID,
		FranchiseID:  tok.FranchiseID,
		Date:         today,
		MealType:     expected,
		Attended:     true,
		ScannedAt:    s.clock.Now().UTC(),
	}
	if err := s.repo.Insert(ctx, rec); err != nil {
		if db.IsDuplicateKey(err) {
			return nil, s.reject(userID, scanned, apierr.Conflict("attendance already marked"))
		}
		return nil, fmt.Errorf("insert attendance: %w", err)
	}

	s.log.Info("attendance marked",
		"member_id", member.ID, "franchise_id", rec.FranchiseID,
		"meal_type", string(rec.MealType), "date", rec.Date.Format(validation.DateLayout))
	return &rec, nil
}

func (s *Service) reject(userID, scanned string, err *apierr.APIError) error {
	s.log.BusinessError("scan rejected", err, "user_id", userID, "qr_code", scanned)
	return err
}

// History: 会員本人の出席履歴
func (s *Service) History(ctx context.Context, userID string, q ListQuery) ([]AttendanceResponse, int64, error) {
	member, err := s.repo.MemberByUser(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	if member == nil {
		return nil, 0, apierr.NotFound("mess member not found")
	}
	q.MessMemberID = member.ID
	q.FranchiseID = ""
	return s.list(ctx, q)
}

// List: 管理者用。franchiseID は必ずサーバ側で確定した値を渡す
func (s *Service) List(ctx context.Context, franchiseID string, q ListQuery) ([]AttendanceResponse, int64, error) {
	if franchiseID == "" {
		return nil, 0, apierr.Forbidden("franchise is required")
	}
	q.FranchiseID = franchiseID
	return s.list(ctx, q)
}

func (s *Service) list(ctx context.Context, q ListQuery) ([]AttendanceResponse, int64, error) {
	if q.Sort == "" {
		q.Sort = DefaultSort
	}
	if q.Limit <= 0 {
		q.Limit = DefaultPageLimit
	}
	if q.Limit > MaxPageLimit {
		q.Limit = MaxPageLimit
	}
	if q.Offset < 0 {
		return nil, 0, apierr.Invalid("offset must be >= 0")
	}
	for _, p := range []*string{q.On, q.From, q.To} {
		if p == nil || *p == "" {
			continue
		}
		d, err := s.parseDay(*p)
		if err != nil {
			return nil, 0, err
		}
		*p = d.Format(validation.DateLayout)
	}

	rows, total, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, 0, err
	}
	out := make([]AttendanceResponse, 0, len(rows))
	for i := 0; i < len(rows); i++ {
		out = append(out, rows[i].toDTO())
	}
	return out, total, nil
}

// Summary: その日の食事区分ごとの出席数
func (s *Service) Summary(ctx context.Context, franchiseID, dateStr string) (*SummaryResponse, error) {
	date, err := s.parseDay(dateStr)
	if err != nil {
		return nil, err
	}
	counts, err := s.repo.CountByMeal(ctx, franchiseID, date)
	if err != nil {
		return nil, err
	}
	var total int64
	for _, n := range counts {
		total += n
	}
	return &SummaryResponse{
		Date:   date.Format(validation.DateLayout),
		Counts: counts,
		Total:  total,
	}, nil
}

// Stats: 期間の会員別出席数
func (s *Service) Stats(ctx context.Context, franchiseID string, req StatsRequest) ([]StatsRow, error) {
	from, err := s.parseDay(req.From)
	if err != nil {
		return nil, apierr.Invalid("from must be YYYY-MM-DD")
	}
	to, err := s.parseDay(req.To)
	if err != nil {
		return nil, apierr.Invalid("to must be YYYY-MM-DD")
	}
	if to.Before(from) {
		return nil, apierr.Invalid("to must be >= from")
	}
	if to.Sub(from) > maxRangeDays*24*time.Hour {
		return nil, apierr.Invalid(fmt.Sprintf("range must be within %d days", maxRangeDays))
	}
	return s.repo.Stats(ctx, franchiseID, from, to, req.Limit)
}

// parseDay: "YYYY-MM-DD" / "today" / ""（= today）
func (s *Service) parseDay(v string) (time.Time, error) {
	v = strings.TrimSpace(strings.ToLower(v))
	if v == "" || v == "today" {
		return clock.Today(s.clock, s.loc), nil
	}
	d, err := time.ParseInLocation(validation.DateLayout, v, s.loc)
	if err != nil {
		return time.Time{}, apierr.Invalid("date must be YYYY-MM-DD or 'today'")
	}
	return d, nil
}
