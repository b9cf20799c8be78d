package billing

import (
	"context"
	"database/sql"
	"errors"

	"github.com/shopspring/decimal"
)

type Repository interface {
	ActiveMemberByUser(ctx context.Context, userID string) (*Member, error)
	GuestMealPrices(ctx context.Context, memberID string) ([]decimal.Decimal, error)
	SnackPrices(ctx context.Context, memberID string) ([]decimal.Decimal, error)
	Addons(ctx context.Context, memberID string) ([]AddonCharge, error)
}

type Store struct{ db *sql.DB }

func NewStore(conn *sql.DB) *Store { return &Store{db: conn} }

func (s *Store) ActiveMemberByUser(ctx context.Context, userID string) (*Member, error) {
	var m Member
	err := s.db.QueryRowContext(ctx, `
	SELECT id, franchise_id FROM mess_members
	WHERE user_id = ? AND active = 1
	LIMIT 1`, userID).Scan(&m.ID, &m.FranchiseID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *Store) GuestMealPrices(ctx context.Context, memberID string) ([]decimal.Decimal, error) {
	return s.prices(ctx, `SELECT price FROM guest_meals WHERE mess_member_id = ?`, memberID)
}

func (s *Store) SnackPrices(ctx context.Context, memberID string) ([]decimal.Decimal, error) {
	return s.prices(ctx, `SELECT price FROM evening_snacks WHERE mess_member_id = ?`, memberID)
}

func (s *Store) prices(ctx context.Context, q string, memberID string) ([]decimal.Decimal, error) {
	rows, err := s.db.QueryContext(ctx, q, memberID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []decimal.Decimal
	for rows.Next() {
		var p decimal.Decimal
		if err := rows.Scan(&p); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *Store) Addons(ctx context.Context, memberID string) ([]AddonCharge, error) {
	rows, err := s.db.QueryContext(ctx, `
	SELECT item_name, price, quantity FROM extra_addons
	WHERE member_id = ?
	ORDER BY created_at`, memberID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []AddonCharge
	for rows.Next() {
		var a AddonCharge
		if err := rows.Scan(&a.ItemName, &a.Price, &a.Quantity); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
