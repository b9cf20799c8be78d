package reports

import (
	"context"
	"database/sql"
	"time"

	"aais-kitchen-backend/internal/platform/validation"
)

type Repository interface {
	AttendanceBetween(ctx context.Context, franchiseID string, from, to time.Time) ([]AttendanceRow, error)
	GuestMealsBetween(ctx context.Context, franchiseID string, from, to time.Time) ([]GuestRow, error)
}

type Store struct{ db *sql.DB }

func NewStore(conn *sql.DB) *Store { return &Store{db: conn} }

// AttendanceBetween: from / to は日付（両端を含む）
func (s *Store) AttendanceBetween(ctx context.Context, franchiseID string, from, to time.Time) ([]AttendanceRow, error) {
	const q = `
SELECT a.date, a.meal_type, a.mess_member_id, COALESCE(u.name, ''), a.scanned_at
FROM attendance a
LEFT JOIN mess_members m ON m.id = a.mess_member_id
LEFT JOIN users u ON u.id = m.user_id
WHERE a.franchise_id = ? AND a.date BETWEEN ? AND ?
ORDER BY a.date, FIELD(a.meal_type, 'breakfast', 'lunch', 'dinner'), u.name
`
	rows, err := s.db.QueryContext(ctx, q, franchiseID,
		from.Format(validation.DateLayout), to.Format(validation.DateLayout))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	res := make([]AttendanceRow, 0, 256)
	for rows.Next() {
		var r AttendanceRow
		if err := rows.Scan(&r.Date, &r.MealType, &r.MemberID, &r.MemberName, &r.ScannedAt); err != nil {
			return nil, err
		}
		res = append(res, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return res, nil
}

// GuestMealsBetween: guest_meals.date は日時なので [from, to) で絞る
func (s *Store) GuestMealsBetween(ctx context.Context, franchiseID string, from, to time.Time) ([]GuestRow, error) {
	const q = `
SELECT g.date, g.meal_type, g.guest_name, g.no_of_person, g.price, COALESCE(u.name, '')
FROM guest_meals g
LEFT JOIN mess_members m ON m.id = g.mess_member_id
LEFT JOIN users u ON u.id = m.user_id
WHERE g.franchise_id = ? AND g.date >= ? AND g.date < ?
ORDER BY g.date, g.guest_name
`
	rows, err := s.db.QueryContext(ctx, q, franchiseID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	res := make([]GuestRow, 0, 64)
	for rows.Next() {
		var r GuestRow
		if err := rows.Scan(&r.Date, &r.MealType, &r.GuestName, &r.NoOfPerson, &r.Price, &r.MemberName); err != nil {
			return nil, err
		}
		res = append(res, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return res, nil
}
