package feedback

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"aais-kitchen-backend/internal/platform/mealtype"
	"aais-kitchen-backend/internal/platform/validation"
)

type Repository interface {
	MemberByUser(ctx context.Context, userID string) (*Member, error)
	Create(ctx context.Context, f *Feedback) error
	// meal が空なら全区分
	ListByFranchise(ctx context.Context, franchiseID string, meal mealtype.MealType) ([]FeedbackWithMember, error)
}

type Store struct{ db *sql.DB }

func NewStore(conn *sql.DB) *Store { return &Store{db: conn} }

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

func (s *Store) Create(ctx context.Context, f *Feedback) error {
	const q = `
INSERT INTO feedback (id, mess_member_id, franchise_id, meal_type, rating, comments, date, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
`
	_, err := s.db.ExecContext(ctx, q,
		f.ID, f.MessMemberID, f.FranchiseID, string(f.MealType), f.Rating, f.Comments,
		f.Date.Format(validation.DateLayout), f.CreatedAt)
	return err
}

func (s *Store) ListByFranchise(ctx context.Context, franchiseID string, meal mealtype.MealType) ([]FeedbackWithMember, error) {
	var sb strings.Builder
	sb.WriteString(`
SELECT f.id, f.mess_member_id, f.franchise_id, f.meal_type, f.rating, f.comments, f.date, f.created_at,
       COALESCE(u.name, '')
FROM feedback f
LEFT JOIN mess_members m ON m.id = f.mess_member_id
LEFT JOIN users u ON u.id = m.user_id
WHERE f.franchise_id = ?`)
	args := []any{franchiseID}
	if meal != "" {
		sb.WriteString(` AND f.meal_type = ?`)
		args = append(args, string(meal))
	}
	sb.WriteString(` ORDER BY f.date DESC, f.created_at DESC`)

	rows, err := s.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	res := make([]FeedbackWithMember, 0, 32)
	for rows.Next() {
		var (
			f  FeedbackWithMember
			mt string
		)
		if err := rows.Scan(
			&f.ID, &f.MessMemberID, &f.FranchiseID, &mt, &f.Rating, &f.Comments, &f.Date, &f.CreatedAt,
			&f.MemberName,
		); err != nil {
			return nil, err
		}
		f.MealType = mealtype.MealType(mt)
		res = append(res, f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return res, nil
}
