package extras

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"aais-kitchen-backend/internal/platform/apierr"
	"aais-kitchen-backend/internal/platform/clock"
	"aais-kitchen-backend/internal/platform/idgen"
	"aais-kitchen-backend/internal/platform/logger"
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
	if loc == nil {
		loc = time.UTC
	}
	return &Service{repo: repo, clock: c, id: id, loc: loc, log: log}
}

// ===== add-ons =====

// AddAddon: 有効な会員のみ。名前と単価は品目から写す
func (s *Service) AddAddon(ctx context.Context, userID string, req AddAddonRequest) (*Addon, error) {
	qty := req.Quantity
	if qty == 0 {
		qty = 1
	}
	if qty < 0 {
		return nil, apierr.Invalid("quantity must be at least 1")
	}

	m, err := s.repo.MemberByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if m == nil || !m.Active {
		return nil, apierr.NotFound("no active membership")
	}
	item, err := s.repo.FoodItem(ctx, req.FoodItemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apierr.NotFound("food item not found")
	}

	id, err := s.id.New()
	if err != nil {
		return nil, err
	}
	a := &Addon{
		ID:         id,
		MemberID:   m.ID,
		FoodItemID: item.ID,
		ItemName:   item.Name,
		Quantity:   qty,
		Price:      item.Price,
		CreatedAt:  s.clock.Now().UTC(),
	}
	if err := s.repo.CreateAddon(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *Service) ListAddons(ctx context.Context, userID string) ([]Addon, error) {
	m, err := s.repo.MemberByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, apierr.NotFound("mess member not found")
	}
	return s.repo.ListAddons(ctx, m.ID)
}

// ===== evening snacks =====

// RecordSnack: 担当フランチャイズの会員にだけ記録できる
func (s *Service) RecordSnack(ctx context.Context, franchiseID string, req RecordSnackRequest) (*Snack, error) {
	name := strings.TrimSpace(req.ItemName)
	if name == "" {
		return nil, apierr.Invalid("item_name is required")
	}
	if !req.Price.IsPositive() {
		return nil, apierr.Invalid("price must be greater than 0")
	}
	date, err := s.parseDay(req.Date)
	if err != nil {
		return nil, err
	}

	m, err := s.repo.MemberByID(ctx, req.MessMemberID)
	if err != nil {
		return nil, err
	}
	if m == nil || m.FranchiseID != franchiseID {
		return nil, apierr.NotFound("member not found in this franchise")
	}

	id, err := s.id.New()
	if err != nil {
		return nil, err
	}
	sn := &Snack{
		ID:           id,
		MessMemberID: m.ID,
		FranchiseID:  franchiseID,
		ItemName:     name,
		Price:        req.Price.Round(2),
		Date:         date,
	}
	if err := s.repo.CreateSnack(ctx, sn); err != nil {
		return nil, err
	}
	s.log.Info("evening snack recorded", "snack_id", sn.ID, "member_id", m.ID, "price", sn.Price.StringFixed(2))
	return sn, nil
}

func (s *Service) MySnacks(ctx context.Context, userID string) ([]Snack, error) {
	m, err := s.repo.MemberByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, apierr.NotFound("mess member not found")
	}
	return s.repo.ListSnacksByMember(ctx, m.ID)
}

func (s *Service) SnacksOn(ctx context.Context, franchiseID, dateStr string) ([]Snack, error) {
	date, err := s.parseDay(dateStr)
	if err != nil {
		return nil, err
	}
	return s.repo.ListSnacksOn(ctx, franchiseID, date)
}

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
