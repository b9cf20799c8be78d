package members

import (
	"context"
	"database/sql"
	"time"

	"aais-kitchen-backend/internal/platform/apierr"
	"aais-kitchen-backend/internal/platform/clock"
	"aais-kitchen-backend/internal/platform/db"
	"aais-kitchen-backend/internal/platform/idgen"
)

type Service struct {
	repo  Repository
	clock clock.Clock
	id    idgen.IDGen
	loc   *time.Location
}

func NewService(conn *sql.DB, loc *time.Location) *Service {
	return newService(NewStore(conn), clock.Real(), idgen.UUID(), loc)
}

func newService(repo Repository, c clock.Clock, id idgen.IDGen, loc *time.Location) *Service {
	return &Service{repo: repo, clock: c, id: id, loc: loc}
}

// Join: 1ユーザー1会員。参加時点で active
func (s *Service) Join(ctx context.Context, userID string, req JoinRequest) (*Member, error) {
	veg := VegPref(req.VegPref)
	if !veg.Valid() {
		return nil, apierr.Invalid("veg_pref must be veg or nonveg")
	}

	ok, err := s.repo.FranchiseExists(ctx, req.FranchiseID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apierr.NotFound("franchise not found")
	}

	existing, err := s.repo.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apierr.Conflict("already a member of a mess")
	}

	id, err := s.id.New()
	if err != nil {
		return nil, err
	}
	m := &Member{
		ID:          id,
		UserID:      userID,
		FranchiseID: req.FranchiseID,
		VegPref:     veg,
		Active:      true,
		CreatedAt:   s.clock.Now().UTC(),
	}
	if err := s.repo.Create(ctx, m); err != nil {
		switch {
		case db.IsDuplicateKey(err):
			return nil, apierr.Conflict("already a member of a mess")
		case db.IsForeignKey(err):
			return nil, apierr.NotFound("franchise not found")
		}
		return nil, err
	}
	return m, nil
}

func (s *Service) Mine(ctx context.Context, userID string) (*Member, error) {
	m, err := s.repo.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, apierr.NotFound("mess member not found")
	}
	return m, nil
}

// BuyPlan: 今日から days 日。既存のプランは上書き
func (s *Service) BuyPlan(ctx context.Context, userID string, days int) (*Member, error) {
	if _, ok := PlanDays[days]; !ok {
		return nil, apierr.Invalid("days must be 30 or 90")
	}

	m, err := s.repo.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, apierr.NotFound("you need to join a mess before buying a plan")
	}

	start := clock.Today(s.clock, s.loc)
	end := start.AddDate(0, 0, days)
	if err := s.repo.UpdatePlan(ctx, m.ID, start, end); err != nil {
		return nil, err
	}
	m.PlanStart = &start
	m.PlanEnd = &end
	return m, nil
}

func (s *Service) List(ctx context.Context, franchiseID string) ([]MemberWithUser, error) {
	return s.repo.ListByFranchise(ctx, franchiseID)
}

func (s *Service) SetActive(ctx context.Context, franchiseID, memberID string, active bool) error {
	found, err := s.repo.SetActive(ctx, franchiseID, memberID, active)
	if err != nil {
		return err
	}
	if !found {
		return apierr.NotFound("member not found in this franchise")
	}
	return nil
}
