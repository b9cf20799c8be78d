package guests

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"aais-kitchen-backend/internal/platform/mealtype"
)

type Repository interface {
	MemberByUser(ctx context.Context, userID string) (*Member, error)
	Create(ctx context.Context, g *GuestMeal) error
	ListByMember(ctx context.Context, memberID string) ([]GuestMeal, error)
	// from/to が nil なら期間で絞らない
	ListByFranchise(ctx context.Context, franchiseID string, from, to *time.Time) ([]GuestMeal, error)
}

type Store struct{ db *sql.DB }

func NewStore(conn *sql.DB) *Store { return &Store{db: conn} }

const selectCols = `
SELECT id, mess_member_id, franchise_id, guest_name, meal_type, date, no_of_person, price, created_at
FROM guest_meals
`

func (s *Store) MemberByUser(ctx context.Context, userID string) (*Member, error) {
	var m Member
	err := s.db.QueryRowContext(ctx,
		`SELECT id, franchise_id FROM mess_members WHERE user_id = ? LIMIT 1`, userID,
	).Scan(&m.ID, &m.FranchiseID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *Store) Create(ctx context.Context, g *GuestMeal) error {
	const q = `
INSERT INTO guest_meals
  (id, mess_member_id, franchise_id, guest_name, meal_type, date, no_of_person, price, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
`
	_, err := s.db.ExecContext(ctx, q,
		g.ID, g.MessMemberID, g.FranchiseID, g.GuestName, string(g.MealType),
		g.Date, g.NoOfPerson, g.Price, g.CreatedAt,
	)
	return err
}

func (s *Store) ListByMember(ctx context.Context, memberID string) ([]GuestMeal, error) {
	return s.query(ctx, selectCols+`WHERE mess_member_id = ? ORDER BY date DESC`, memberID)
}

func (s *Store) ListByFranchise(ctx context.Context, franchiseID string, from, to *time.Time) ([]GuestMeal, error) {
	var sb strings.Builder
	sb.WriteString(selectCols)
	sb.WriteString(`WHERE franchise_id = ?`)
	args := []any{franchiseID}
	if from != nil {
		sb.WriteString(` AND date >= ?`)
		args = append(args, *from)
	}
	if to != nil {
		sb.WriteString(` AND date < ?`)
		args = append(args, *to)
	}
	sb.WriteString(` ORDER BY date, guest_name`)
	return s.query(ctx, sb.String(), args...)
}

func (s *Store) query(ctx context.Context, q string, args ...any) ([]GuestMeal, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	res := make([]GuestMeal, 0, 16)
	for rows.Next() {
		var (
			g    GuestMeal
			meal string
		)
		if err := rows.Scan(
			&g.ID, &g.MessMemberID, &g.FranchiseID, &g.GuestName, &meal,
			&g.Date, &g.NoOfPerson, &g.Price, &g.CreatedAt,
		); err != nil {
			return nil, err
		}
		g.MealType = mealtype.MealType(meal)
		res = append(res, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return res, nil
}
