package menu

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"aais-kitchen-backend/internal/platform/apierr"
	"aais-kitchen-backend/internal/platform/clock"
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
	if loc == nil {
		loc = time.UTC
	}
	return &Service{repo: repo, clock: c, id: id, loc: loc, log: log}
}

// ===== food items =====

func (s *Service) CreateFoodItem(ctx context.Context, req CreateFoodItemRequest) (*FoodItem, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apierr.Invalid("name is required")
	}
	cat := Category(req.Category)
	if !cat.Valid() {
		return nil, apierr.Invalid("category must be one of main, side, dessert, drink, snack")
	}
	veg := VegType(req.VegType)
	if !veg.Valid() {
		return nil, apierr.Invalid("veg_type must be veg or nonveg")
	}
	if !req.Price.IsPositive() {
		return nil, apierr.Invalid("price must be greater than 0")
	}

	id, err := s.id.New()
	if err != nil {
		return nil, err
	}
	now := s.clock.Now().UTC()
	f := &FoodItem{
		ID:        id,
		Name:      name,
		Category:  cat,
		VegType:   veg,
		Price:     req.Price.Round(2),
		ImageURL:  strings.TrimSpace(req.ImageURL),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.CreateFoodItem(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

func (s *Service) UpdateFoodItem(ctx context.Context, id string, req UpdateFoodItemRequest) (*FoodItem, error) {
	if req.Name != nil {
		n := strings.TrimSpace(*req.Name)
		if n == "" {
			return nil, apierr.Invalid("name must not be empty")
		}
		req.Name = &n
	}
	if req.Category != nil && !Category(*req.Category).Valid() {
		return nil, apierr.Invalid("category must be one of main, side, dessert, drink, snack")
	}
	if req.VegType != nil && !VegType(*req.VegType).Valid() {
		return nil, apierr.Invalid("veg_type must be veg or nonveg")
	}
	if req.Price != nil {
		if !req.Price.IsPositive() {
			return nil, apierr.Invalid("price must be greater than 0")
		}
		p := req.Price.Round(2)
		req.Price = &p
	}

	f, err := s.repo.UpdateFoodItem(ctx, id, req, s.clock.Now().UTC())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apierr.NotFound("food item not found")
	}
	if err != nil {
		return nil, err
	}
	return f, nil
}

func (s *Service) ListFoodItems(ctx context.Context, category, name string) ([]FoodItem, error) {
	cat := Category(strings.ToLower(strings.TrimSpace(category)))
	if cat != "" && !cat.Valid() {
		return nil, apierr.Invalid("category must be one of main, side, dessert, drink, snack")
	}
	return s.repo.ListFoodItems(ctx, cat, strings.TrimSpace(name))
}

// ===== meals =====

// SetMenu: 指定の品目から献立のスナップショットを作って保存する（並びはリクエスト順）
func (s *Service) SetMenu(ctx context.Context, franchiseID string, req SetMenuRequest) (*Meal, error) {
	date, err := s.parseDay(req.Date)
	if err != nil {
		return nil, err
	}
	meal, err := mealtype.Parse(req.MealType)
	if err != nil {
		return nil, apierr.Invalid("meal_type must be breakfast, lunch or dinner")
	}
	ids := dedupe(req.FoodItemIDs)
	if len(ids) == 0 {
		return nil, apierr.Invalid("food_item_ids must not be empty")
	}

	found, err := s.repo.FoodItemsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]FoodItem, len(found))
	for _, f := range found {
		byID[f.ID] = f
	}
	items := make([]MenuItem, 0, len(ids))
	for _, id := range ids {
		f, ok := byID[id]
		if !ok {
			return nil, apierr.NotFound("food item not found: " + id)
		}
		items = append(items, MenuItem{ID: f.ID, Name: f.Name, ImageURL: f.ImageURL, VegType: f.VegType})
	}

	id, err := s.id.New()
	if err != nil {
		return nil, err
	}
	m := &Meal{
		ID:          id,
		FranchiseID: franchiseID,
		Date:        date,
		MealType:    meal,
		Menu:        Menu{Items: items},
		UpdatedAt:   s.clock.Now().UTC(),
	}
	if err := s.repo.UpsertMeal(ctx, m); err != nil {
		return nil, err
	}
	s.log.Info("menu updated", "franchise_id", franchiseID, "date", date.Format(validation.DateLayout),
		"meal_type", string(meal), "items", len(items))
	return m, nil
}

func (s *Service) Day(ctx context.Context, franchiseID, dateStr string) (*DayMenuResponse, error) {
	date, err := s.parseDay(dateStr)
	if err != nil {
		return nil, err
	}
	return s.day(ctx, franchiseID, date)
}

// Today: 会員の所属フランチャイズの今日の献立
func (s *Service) Today(ctx context.Context, userID string) (*DayMenuResponse, error) {
	fid, err := s.repo.FranchiseOfMember(ctx, userID)
	if err != nil {
		return nil, err
	}
	if fid == "" {
		return nil, apierr.NotFound("mess member not found")
	}
	return s.day(ctx, fid, clock.Today(s.clock, s.loc))
}

func (s *Service) day(ctx context.Context, franchiseID string, date time.Time) (*DayMenuResponse, error) {
	meals, err := s.repo.MealsOn(ctx, franchiseID, date)
	if err != nil {
		return nil, err
	}
	res := &DayMenuResponse{
		Date:  date.Format(validation.DateLayout),
		Meals: make(map[string][]MenuItem, 3),
	}
	for _, mt := range mealtype.All() {
		res.Meals[string(mt)] = []MenuItem{}
	}
	for _, m := range meals {
		if m.Menu.Items != nil {
			res.Meals[string(m.MealType)] = m.Menu.Items
		}
	}
	return res, nil
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

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
