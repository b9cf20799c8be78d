package holidays

import (
	"context"
	"database/sql"
	"errors"

	"aais-kitchen-backend/internal/platform/validation"
)

type Repository interface {
	MemberByUser(ctx context.Context, userID string) (*Member, error)
	CountApproved(ctx context.Context, memberID string) (int, error)
	Create(ctx context.Context, h *Holiday) error
	ListByMember(ctx context.Context, memberID string) ([]HolidayWithMember, error)
	ListByFranchise(ctx context.Context, franchiseID string, status Status) ([]HolidayWithMember, error)
	// 担当フランチャイズ外の id は false
	SetStatus(ctx context.Context, franchiseID, id string, status Status) (bool, error)
}

type Store struct{ db *sql.DB }

func NewStore(conn *sql.DB) *Store { return &Store{db: conn} }

const selectCols = `
SELECT h.id, h.member_id, h.franchise_id, h.start_date, h.end_date, h.status, h.requested_at,
       COALESCE(u.name, '')
FROM holidays h
LEFT JOIN mess_members m ON m.id = h.member_id
LEFT JOIN users u ON u.id = m.user_id
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

func (s *Store) CountApproved(ctx context.Context, memberID string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM holidays WHERE member_id = ? AND status = 'approved'`, memberID,
	).Scan(&n)
	return n, err
}

func (s *Store) Create(ctx context.Context, h *Holiday) error {
	const q = `
INSERT INTO holidays (id, member_id, franchise_id, start_date, end_date, status, requested_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
`
	_, err := s.db.ExecContext(ctx, q,
		h.ID, h.MemberID, h.FranchiseID,
		h.StartDate.Format(validation.DateLayout), h.EndDate.Format(validation.DateLayout),
		string(h.Status), h.RequestedAt,
	)
	return err
}

func (s *Store) ListByMember(ctx context.Context, memberID string) ([]HolidayWithMember, error) {
	return s.query(ctx, selectCols+`WHERE h.member_id = ? ORDER BY h.requested_at DESC`, memberID)
}

func (s *Store) ListByFranchise(ctx context.Context, franchiseID string, status Status) ([]HolidayWithMember, error) {
	if status == "" {
		return s.query(ctx, selectCols+`WHERE h.franchise_id = ? ORDER BY h.requested_at DESC`, franchiseID)
	}
	return s.query(ctx, selectCols+`WHERE h.franchise_id = ? AND h.status = ? ORDER BY h.requested_at DESC`,
		franchiseID, string(status))
}

func (s *Store) SetStatus(ctx context.Context, franchiseID, id string, status Status) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM holidays WHERE id = ? AND franchise_id = ?`, id, franchiseID).Scan(&n)
	if err != nil {
		return false, err
	}
	if n == 0 {
		return false, nil
	}
	_, err = s.db.ExecContext(ctx,
		`UPDATE holidays SET status = ? WHERE id = ? AND franchise_id = ?`, string(status), id, franchiseID)
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *Store) query(ctx context.Context, q string, args ...any) ([]HolidayWithMember, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	res := make([]HolidayWithMember, 0, 16)
	for rows.Next() {
		var (
			h      HolidayWithMember
			status string
		)
		if err := rows.Scan(
			&h.ID, &h.MemberID, &h.FranchiseID, &h.StartDate, &h.EndDate, &status, &h.RequestedAt,
			&h.MemberName,
		); err != nil {
			return nil, err
		}
		h.Status = Status(status)
		res = append(res, h)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return res, nil
}
