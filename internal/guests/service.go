package guests

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"aais-kitchen-backend/internal/platform/apierr"
	"aais-kitchen-backend/internal/platform/clock"
	"aais-kitchen-backend/internal/platform/idgen"
	"aais-kitchen-backend/internal/platform/logger"
	"aais-kitchen-backend/internal/platform/mealtype"
	"aais-kitchen-backend/internal/platform/validation"
)

type Options struct {
	PricePerPerson decimal.Decimal
	Location       *time.Location
}

type Service struct {
	repo  Repository
	clock clock.Clock
	id    idgen.IDGen
	opts  Options
	log   logger.Logger
}

func NewService(conn *sql.DB, opts Options, log logger.Logger) *Service {
	return newService(NewStore(conn), clock.Real(), idgen.UUID(), opts, log)
}

func newService(repo Repository, c clock.Clock, id idgen.IDGen, opts Options, log logger.Logger) *Service {
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	return &Service{repo: repo, clock: c, id: id, opts: opts, log: log}
}

// Request: 料金は 1人あたり単価 × 人数 で確定させて保存する
func (s *Service) Request(ctx context.Context, userID string, req CreateGuestMealRequest) (*GuestMeal, error) {
	name := strings.TrimSpace(req.GuestName)
	if name == "" {
		return nil, apierr.Invalid("guest_name is required")
	}
	meal, err := mealtype.Parse(req.MealType)
	if err != nil {
		return nil, apierr.Invalid("meal_type must be breakfast, lunch or dinner")
	}
	if req.NoOfPerson < 1 {
		return nil, apierr.Invalid("no_of_person must be at least 1")
	}
	now := s.clock.Now()
	if req.Date.Before(now.Add(MinLeadTime)) {
		return nil, apierr.Invalid("guest meal date and time must be at least 5 hours from now")
	}

	m, err := s.repo.MemberByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, apierr.NotFound("mess member not found")
	}

	id, err := s.id.New()
	if err != nil {
		return nil, err
	}
	g := &GuestMeal{
		ID:           id,
		MessMemberID: m.ID,
		FranchiseID:  m.FranchiseID,
		GuestName:    name,
		MealType:     meal,
		Date:         req.Date.UTC(),
		NoOfPerson:   req.NoOfPerson,
		Price:        s.opts.PricePerPerson.Mul(decimal.NewFromInt(int64(req.NoOfPerson))),
		CreatedAt:    now.UTC(),
	}
	if err := s.repo.Create(ctx, g); err != nil {
		return nil, err
	}
	s.log.Info("guest meal requested", "guest_meal_id", g.ID, "member_id", m.ID, "persons", g.NoOfPerson)
	return g, nil
}

func (s *Service) Mine(ctx context.Context, userID string) ([]GuestMeal, error) {
	m, err := s.repo.MemberByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, apierr.NotFound("mess member not found")
	}
	return s.repo.ListByMember(ctx, m.ID)
}

// List: dateStr が空なら全件、"today" か YYYY-MM-DD ならその日だけ
func (s *Service) List(ctx context.Context, franchiseID, dateStr string) ([]GuestMeal, error) {
	v := strings.TrimSpace(strings.ToLower(dateStr))
	if v == "" {
		return s.repo.ListByFranchise(ctx, franchiseID, nil, nil)
	}
	var day time.Time
	if v == "today" {
		day = clock.Today(s.clock, s.opts.Location)
	} else {
		d, err := time.ParseInLocation(validation.DateLayout, v, s.opts.Location)
		if err != nil {
			return nil, apierr.Invalid("date must be YYYY-MM-DD or 'today'")
		}
		day = d
	}
	from := day.UTC()
	to := day.AddDate(0, 0, 1).UTC()
	return s.repo.ListByFranchise(ctx, franchiseID, &from, &to)
}
