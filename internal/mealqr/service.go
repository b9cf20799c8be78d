package mealqr

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"aais-kitchen-backend/internal/platform/apierr"
	"aais-kitchen-backend/internal/platform/clock"
	"aais-kitchen-backend/internal/platform/db"
	"aais-kitchen-backend/internal/platform/idgen"
	"aais-kitchen-backend/internal/platform/logger"
	"aais-kitchen-backend/internal/platform/mealtype"
	"aais-kitchen-backend/internal/platform/validation"
)

type Service struct {
	repo  Repository
	clock clock.Clock
	id    idgen.IDGen
	loc   *time.Location
	log   logger.Logger
}

func NewService(conn *sql.DB, loc *time.Location, log logger.Logger) *Service {
	return newService(NewStore(conn), clock.Real(), idgen.UUID(), loc, log)
}

func newService(repo Repository, c clock.Clock, id idgen.IDGen, loc *time.Location, log logger.Logger) *Service {
	return &Service{repo: repo, clock: c, id: id, loc: loc, log: log}
}

// Generate: 1日3枚（朝・昼・夜）。発行済みなら既存を返して何もしない
func (s *Service) Generate(ctx context.Context, franchiseID, dateStr string) (*GenerateResult, error) {
	if strings.TrimSpace(franchiseID) == "" {
		return nil, apierr.Invalid("franchise_id is required")
	}
	date, err := s.resolveDate(dateStr)
	if err != nil {
		return nil, err
	}
	if date.After(clock.Today(s.clock, s.loc)) {
		return nil, apierr.Invalid("cannot generate QR codes for a future date")
	}

	existing, err := s.repo.ListByDay(ctx, franchiseID, date)
	if err != nil {
		return nil, fmt.Errorf("list qr codes: %w", err)
	}
	if len(existing) > 0 {
		return &GenerateResult{Date: date, Codes: existing, Created: false}, nil
	}

	now := s.clock.Now().UTC()
	codes := make([]Code, 0, 3)
	for _, m := range mealtype.All() {
		id, err := s.id.New()
		if err != nil {
			return nil, err
		}
		codes = append(codes, Code{
			ID:          id,
			FranchiseID: franchiseID,
			Date:        date,
			MealType:    m,
			QRCode:      NewToken(m, date, franchiseID).String(),
			CreatedAt:   now,
		})
	}

	if err := s.repo.InsertAll(ctx, codes); err != nil {
		if !db.IsDuplicateKey(err) {
			return nil, fmt.Errorf("insert qr codes: %w", err)
		}
		// 同時に発行した側に負けた。勝った側の行を返す
		s.log.Info("qr generation lost race", "franchise_id", franchiseID, "date", date.Format(validation.DateLayout))
		stored, err := s.repo.ListByDay(ctx, franchiseID, date)
		if err != nil {
			return nil, fmt.Errorf("list qr codes: %w", err)
		}
		return &GenerateResult{Date: date, Codes: stored, Created: false}, nil
	}

	s.log.Info("qr codes generated", "franchise_id", franchiseID, "date", date.Format(validation.DateLayout))
	return &GenerateResult{Date: date, Codes: codes, Created: true}, nil
}

func (s *Service) List(ctx context.Context, franchiseID, dateStr string) (time.Time, []Code, error) {
	date, err := s.resolveDate(dateStr)
	if err != nil {
		return time.Time{}, nil, err
	}
	codes, err := s.repo.ListByDay(ctx, franchiseID, date)
	if err != nil {
		return time.Time{}, nil, err
	}
	return date, codes, nil
}

// resolveDate: "" / "today" はサービスのタイムゾーンでの今日
func (s *Service) resolveDate(v string) (time.Time, error) {
	v = strings.TrimSpace(v)
	if v == "" || strings.EqualFold(v, "today") {
		return clock.Today(s.clock, s.loc), nil
	}
	d, err := time.ParseInLocation(validation.DateLayout, v, s.loc)
	if err != nil {
		return time.Time{}, apierr.Invalid("date must be YYYY-MM-DD or today")
	}
	return d, nil
}
