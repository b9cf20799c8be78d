package extras

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"aais-kitchen-backend/internal/platform/validation"
)

type Repository interface {
	MemberByUser(ctx context.Context, userID string) (*Member, error)
	MemberByID(ctx context.Context, memberID string) (*Member, error)
	FoodItem(ctx context.Context, id string) (*FoodItem, error)

	CreateAddon(ctx context.Context, a *Addon) error
	ListAddons(ctx context.Context, memberID string) ([]Addon, error)

	CreateSnack(ctx context.Context, s *Snack) error
	ListSnacksByMember(ctx context.Context, memberID string) ([]Snack, error)
	ListSnacksOn(ctx context.Context, franchiseID string, date time.Time) ([]Snack, error)
}

type Store struct{ db *sql.DB }

func NewStore(conn *sql.DB) *Store { return &Store{db: conn} }

// ===== lookups =====

func (s *Store) MemberByUser(ctx context.Context, userID string) (*Member, error) {
	return s.member(ctx, `SELECT id, franchise_id, active FROM mess_members WHERE user_id = ? LIMIT 1`, userID)
}

func (s *Store) MemberByID(ctx context.Context, memberID string) (*Member, error) {
	return s.member(ctx, `SELECT id, franchise_id, active FROM mess_members WHERE id = ?`, memberID)
}

func (s *Store) member(ctx context.Context, q, arg string) (*Member, error) {
	var m Member
	err := s.db.QueryRowContext(ctx, q, arg).Scan(&m.ID, &m.FranchiseID, &m.Active)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *Store) FoodItem(ctx context.Context, id string) (*FoodItem, error) {
	var f FoodItem
	err := s.db.QueryRowContext(ctx, `SELECT id, name, price FROM food_items WHERE id = ?`, id).
		Scan(&f.ID, &f.Name, &f.Price)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// ===== add-ons =====

func (s *Store) CreateAddon(ctx context.Context, a *Addon) error {
	const q = `
INSERT INTO extra_addons (id, member_id, food_item_id, item_name, quantity, price, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
`
	_, err := s.db.ExecContext(ctx, q, a.ID, a.MemberID, a.FoodItemID, a.ItemName, a.Quantity, a.Price, a.CreatedAt)
	return err
}

func (s *Store) ListAddons(ctx context.Context, memberID string) ([]Addon, error) {
	const q = `
SELECT id, member_id, food_item_id, item_name, quantity, price, created_at
FROM extra_addons
WHERE member_id = ?
ORDER BY created_at DESC
`
	rows, err := s.db.QueryContext(ctx, q, memberID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	res := make([]Addon, 0, 16)
	for rows.Next() {
		var a Addon
		if err := rows.Scan(&a.ID, &a.MemberID, &a.FoodItemID, &a.ItemName, &a.Quantity, &a.Price, &a.CreatedAt); err != nil {
			return nil, err
		}
		res = append(res, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return res, nil
}

// ===== evening snacks =====

func (s *Store) CreateSnack(ctx context.Context, sn *Snack) error {
	const q = `
INSERT INTO evening_snacks (id, mess_member_id, franchise_id, item_name, price, date)
VALUES (?, ?, ?, ?, ?, ?)
`
	_, err := s.db.ExecContext(ctx, q,
		sn.ID, sn.MessMemberID, sn.FranchiseID, sn.ItemName, sn.Price, sn.Date.Format(validation.DateLayout))
	return err
}

const snackCols = `SELECT id, mess_member_id, franchise_id, item_name, price, date FROM evening_snacks`

func (s *Store) ListSnacksByMember(ctx context.Context, memberID string) ([]Snack, error) {
	return s.querySnacks(ctx, snackCols+` WHERE mess_member_id = ? ORDER BY date DESC`, memberID)
}

func (s *Store) ListSnacksOn(ctx context.Context, franchiseID string, date time.Time) ([]Snack, error) {
	return s.querySnacks(ctx, snackCols+` WHERE franchise_id = ? AND date = ? ORDER BY item_name`,
		franchiseID, date.Format(validation.DateLayout))
}

func (s *Store) querySnacks(ctx context.Context, q string, args ...any) ([]Snack, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	res := make([]Snack, 0, 16)
	for rows.Next() {
		var sn Snack
		if err := rows.Scan(&sn.ID, &sn.MessMemberID, &sn.FranchiseID, &sn.ItemName, &sn.Price, &sn.Date); err != nil {
			return nil, err
		}
		res = append(res, sn)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return res, nil
}
