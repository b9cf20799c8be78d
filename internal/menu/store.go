package menu

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"aais-kitchen-backend/internal/platform/mealtype"
	"aais-kitchen-backend/internal/platform/validation"
)

type Repository interface {
	CreateFoodItem(ctx context.Context, f *FoodItem) error
	GetFoodItem(ctx context.Context, id string) (*FoodItem, error)
	UpdateFoodItem(ctx context.Context, id string, in UpdateFoodItemRequest, now time.Time) (*FoodItem, error)
	ListFoodItems(ctx context.Context, category Category, name string) ([]FoodItem, error)
	FoodItemsByIDs(ctx context.Context, ids []string) ([]FoodItem, error)

	UpsertMeal(ctx context.Context, m *Meal) error
	MealsOn(ctx context.Context, franchiseID string, date time.Time) ([]Meal, error)
	FranchiseOfMember(ctx context.Context, userID string) (string, error)
}

type Store struct{ db *sql.DB }

func NewStore(conn *sql.DB) *Store { return &Store{db: conn} }

// ===== food items =====

const foodCols = `SELECT id, name, category, veg_type, price, image_url, created_at, updated_at FROM food_items`

func (s *Store) CreateFoodItem(ctx context.Context, f *FoodItem) error {
	const q = `
INSERT INTO food_items (id, name, category, veg_type, price, image_url, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
`
	_, err := s.db.ExecContext(ctx, q,
		f.ID, f.Name, string(f.Category), string(f.VegType), f.Price, f.ImageURL, f.CreatedAt, f.UpdatedAt)
	return err
}

func (s *Store) GetFoodItem(ctx context.Context, id string) (*FoodItem, error) {
	items, err := s.queryFood(ctx, foodCols+` WHERE id = ?`, id)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, nil
	}
	return &items[0], nil
}

// UpdateFoodItem: 存在しない id は sql.ErrNoRows
func (s *Store) UpdateFoodItem(ctx context.Context, id string, in UpdateFoodItemRequest, now time.Time) (*FoodItem, error) {
	// 動的アップデート
	sets := []string{}
	args := []any{}
	if in.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *in.Name)
	}
	if in.Category != nil {
		sets = append(sets, "category = ?")
		args = append(args, *in.Category)
	}
	if in.VegType != nil {
		sets = append(sets, "veg_type = ?")
		args = append(args, *in.VegType)
	}
	if in.Price != nil {
		sets = append(sets, "price = ?")
		args = append(args, *in.Price)
	}
	if in.ImageURL != nil {
		sets = append(sets, "image_url = ?")
		args = append(args, *in.ImageURL)
	}
	if len(sets) == 0 {
		// 変更なしでも現行値を返す
		f, err := s.GetFoodItem(ctx, id)
		if err == nil && f == nil {
			err = sql.ErrNoRows
		}
		return f, err
	}
	sets = append(sets, "updated_at = ?")
	args = append(args, now, id)
	q := fmt.Sprintf(`UPDATE food_items SET %s WHERE id = ?`, strings.Join(sets, ", "))

	res, err := s.db.ExecContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	if aff, _ := res.RowsAffected(); aff == 0 {
		return nil, sql.ErrNoRows
	}
	f, err := s.GetFoodItem(ctx, id)
	if err == nil && f == nil {
		err = sql.ErrNoRows
	}
	return f, err
}

// ListFoodItems: category / name は空なら絞らない。name は部分一致
func (s *Store) ListFoodItems(ctx context.Context, category Category, name string) ([]FoodItem, error) {
	var sb strings.Builder
	sb.WriteString(foodCols)
	sb.WriteString(` WHERE 1=1`)
	args := []any{}
	if category != "" {
		sb.WriteString(` AND category = ?`)
		args = append(args, string(category))
	}
	if name != "" {
		sb.WriteString(` AND name LIKE ?`)
		args = append(args, "%"+escapeLike(name)+"%")
	}
	sb.WriteString(` ORDER BY category, name`)
	return s.queryFood(ctx, sb.String(), args...)
}

func escapeLike(v string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(v)
}

func (s *Store) FoodItemsByIDs(ctx context.Context, ids []string) ([]FoodItem, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	q := foodCols + ` WHERE id IN (?` + strings.Repeat(`, ?`, len(ids)-1) + `)`
	return s.queryFood(ctx, q, args...)
}

func (s *Store) queryFood(ctx context.Context, q string, args ...any) ([]FoodItem, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	res := make([]FoodItem, 0, 16)
	for rows.Next() {
		var (
			f        FoodItem
			cat, veg string
		)
		if err := rows.Scan(&f.ID, &f.Name, &cat, &veg, &f.Price, &f.ImageURL, &f.CreatedAt, &f.UpdatedAt); err != nil {
			return nil, err
		}
		f.Category = Category(cat)
		f.VegType = VegType(veg)
		res = append(res, f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return res, nil
}

// ===== meals =====

// UpsertMeal: (franchise, date, meal_type) ごとに1件。既存なら献立を差し替える
func (s *Store) UpsertMeal(ctx context.Context, m *Meal) error {
	body, err := json.Marshal(m.Menu)
	if err != nil {
		return err
	}
	const q = `
INSERT INTO meals (id, franchise_id, date, meal_type, menu, updated_at)
VALUES (?, ?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE menu = VALUES(menu), updated_at = VALUES(updated_at)
`
	_, err = s.db.ExecContext(ctx, q,
		m.ID, m.FranchiseID, m.Date.Format(validation.DateLayout), string(m.MealType), body, m.UpdatedAt)
	return err
}

func (s *Store) MealsOn(ctx context.Context, franchiseID string, date time.Time) ([]Meal, error) {
	const q = `
SELECT id, franchise_id, date, meal_type, menu, updated_at
FROM meals
WHERE franchise_id = ? AND date = ?
ORDER BY FIELD(meal_type, 'breakfast', 'lunch', 'dinner')
`
	rows, err := s.db.QueryContext(ctx, q, franchiseID, date.Format(validation.DateLayout))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	res := make([]Meal, 0, 3)
	for rows.Next() {
		var (
			m    Meal
			meal string
			body []byte
		)
		if err := rows.Scan(&m.ID, &m.FranchiseID, &m.Date, &meal, &body, &m.UpdatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(body, &m.Menu); err != nil {
			return nil, fmt.Errorf("meal %s: decode menu: %w", m.ID, err)
		}
		m.MealType = mealtype.MealType(meal)
		res = append(res, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return res, nil
}

func (s *Store) FranchiseOfMember(ctx context.Context, userID string) (string, error) {
	var fid string
	err := s.db.QueryRowContext(ctx,
		`SELECT franchise_id FROM mess_members WHERE user_id = ? LIMIT 1`, userID).Scan(&fid)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	return fid, err
}
