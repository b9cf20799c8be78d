package mealqr

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"aais-kitchen-backend/internal/platform/db"
	"aais-kitchen-backend/internal/platform/mealtype"
)

type Repository interface {
	ListByDay(ctx context.Context, franchiseID string, date time.Time) ([]Code, error)
	InsertAll(ctx context.Context, codes []Code) error
}

type Store struct{ db *sql.DB }

func NewStore(conn *sql.DB) *Store { return &Store{db: conn} }

// ListByDay: breakfast, lunch, dinner の順
func (s *Store) ListByDay(ctx context.Context, franchiseID string, date time.Time) ([]Code, error) {
	const q = `
SELECT id, franchise_id, date, meal_type, qr_code, created_at
FROM meal_qr_codes
WHERE franchise_id = ? AND date = ?
ORDER BY FIELD(meal_type, 'breakfast', 'lunch', 'dinner')
`
	rows, err := s.db.QueryContext(ctx, q, franchiseID, date.Format("2006-01-02"))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	res := make([]Code, 0, 3)
	for rows.Next() {
		var (
			c  Code
			mt string
		)
		if err := rows.Scan(&c.ID, &c.FranchiseID, &c.Date, &mt, &c.QRCode, &c.CreatedAt); err != nil {
			return nil, err
		}
		c.MealType = mealtype.MealType(mt)
		res = append(res, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return res, nil
}

// InsertAll: 1文のバッチ INSERT。UNIQUE 違反なら全体がロールバックされる
func (s *Store) InsertAll(ctx context.Context, codes []Code) error {
	if len(codes) == 0 {
		return nil
	}
	var (
		b    strings.Builder
		args = make([]any, 0, len(codes)*6)
	)
	b.WriteString(`INSERT INTO meal_qr_codes (id, franchise_id, date, meal_type, qr_code, created_at) VALUES `)
	for i, c := range codes {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString("(?, ?, ?, ?, ?, ?)")
		args = append(args, c.ID, c.FranchiseID, c.Date.Format("2006-01-02"), string(c.MealType), c.QRCode, c.CreatedAt)
	}

	return db.RunInTx(ctx, s.db, nil, func(ctx context.Context, tx db.DBTX) error {
		_, err := tx.ExecContext(ctx, b.String(), args...)
		return err
	})
}
