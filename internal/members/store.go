package members

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

type Repository interface {
	FranchiseExists(ctx context.Context, franchiseID string) (bool, error)
	GetByUser(ctx context.Context, userID string) (*Member, error)
	Create(ctx context.Context, m *Member) error
	UpdatePlan(ctx context.Context, memberID string, start, end time.Time) error
	ListByFranchise(ctx context.Context, franchiseID string) ([]MemberWithUser, error)
	SetActive(ctx context.Context, franchiseID, memberID string, active bool) (bool, error)
}

type Store struct{ db *sql.DB }

func NewStore(conn *sql.DB) *Store { return &Store{db: conn} }

func (s *Store) FranchiseExists(ctx context.Context, franchiseID string) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM franchises WHERE id = ?`, franchiseID).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *Store) GetByUser(ctx context.Context, userID string) (*Member, error) {
	const q = `
SELECT id, user_id, franchise_id, veg_pref, active, plan_start, plan_end, created_at
FROM mess_members
WHERE user_id = ?
LIMIT 1
`
	var (
		m          Member
		veg        string
		start, end sql.NullTime
	)
	err := s.db.QueryRowContext(ctx, q, userID).Scan(
		&m.ID, &m.UserID, &m.FranchiseID, &veg, &m.Active, &start, &end, &m.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	m.VegPref = VegPref(veg)
	m.PlanStart = timePtr(start)
	m.PlanEnd = timePtr(end)
	return &m, nil
}

func (s *Store) Create(ctx context.Context, m *Member) error {
	const q = `
INSERT INTO mess_members (id, user_id, franchise_id, veg_pref, active, created_at)
VALUES (?, ?, ?, ?, ?, ?)
`
	_, err := s.db.ExecContext(ctx, q, m.ID, m.UserID, m.FranchiseID, string(m.VegPref), m.Active, m.CreatedAt)
	return err
}

func (s *Store) UpdatePlan(ctx context.Context, memberID string, start, end time.Time) error {
	const q = `UPDATE mess_members SET plan_start = ?, plan_end = ? WHERE id = ?`
	_, err := s.db.ExecContext(ctx, q, start, end, memberID)
	return err
}

func (s *Store) ListByFranchise(ctx context.Context, franchiseID string) ([]MemberWithUser, error) {
	const q = `
SELECT m.id, m.user_id, m.franchise_id, m.veg_pref, m.active, m.plan_start, m.plan_end, m.created_at,
       u.name, u.email, u.contact
FROM mess_members m
JOIN users u ON u.id = m.user_id
WHERE m.franchise_id = ?
ORDER BY u.name, m.id
`
	rows, err := s.db.QueryContext(ctx, q, franchiseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	res := make([]MemberWithUser, 0, 32)
	for rows.Next() {
		var (
			m          MemberWithUser
			veg        string
			start, end sql.NullTime
		)
		if err := rows.Scan(
			&m.ID, &m.UserID, &m.FranchiseID, &veg, &m.Active, &start, &end, &m.CreatedAt,
			&m.Name, &m.Email, &m.Contact,
		); err != nil {
			return nil, err
		}
		m.VegPref = VegPref(veg)
		m.PlanStart = timePtr(start)
		m.PlanEnd = timePtr(end)
		res = append(res, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return res, nil
}

// SetActive: 他フランチャイズの会員は対象外（WHERE で絞る）
func (s *Store) SetActive(ctx context.Context, franchiseID, memberID string, active bool) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM mess_members WHERE id = ? AND franchise_id = ?`, memberID, franchiseID).Scan(&n)
	if err != nil {
		return false, err
	}
	if n == 0 {
		return false, nil
	}
	_, err = s.db.ExecContext(ctx,
		`UPDATE mess_members SET active = ? WHERE id = ? AND franchise_id = ?`, active, memberID, franchiseID)
	if err != nil {
		return false, err
	}
	return true, nil
}

func timePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}
