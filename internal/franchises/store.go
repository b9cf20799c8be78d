package franchises

import (
	"context"
	"database/sql"
	"errors"

	"aais-kitchen-backend/internal/platform/db"
)

type Repository interface {
	CreateWithAdmin(ctx context.Context, f *Franchise, adminUserID string) error
	Get(ctx context.Context, id string) (*Franchise, error)
	List(ctx context.Context) ([]Franchise, error)
	GetByAdmin(ctx context.Context, userID string) (*Franchise, error)
}

type Store struct{ db *sql.DB }

func NewStore(conn *sql.DB) *Store { return &Store{db: conn} }

const selectFranchise = `
SELECT f.id, f.name, f.address, f.contact, f.latitude, f.longitude, f.created_at
FROM franchises f
`

// CreateWithAdmin: フランチャイズ作成と担当 admin の紐付けは同一 Tx
func (s *Store) CreateWithAdmin(ctx context.Context, f *Franchise, adminUserID string) error {
	return db.RunInTx(ctx, s.db, nil, func(ctx context.Context, tx db.DBTX) error {
		if _, err := tx.ExecContext(ctx, `
INSERT INTO franchises (id, name, address, contact, latitude, longitude, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?)`,
			f.ID, f.Name, f.Address, f.Contact, f.Latitude, f.Longitude, f.CreatedAt,
		); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx,
			`INSERT INTO franchise_admins (user_id, franchise_id) VALUES (?, ?)`, adminUserID, f.ID)
		return err
	})
}

func (s *Store) Get(ctx context.Context, id string) (*Franchise, error) {
	return scanOne(s.db.QueryRowContext(ctx, selectFranchise+`WHERE f.id = ? LIMIT 1`, id))
}

func (s *Store) GetByAdmin(ctx context.Context, userID string) (*Franchise, error) {
	return scanOne(s.db.QueryRowContext(ctx, selectFranchise+`
JOIN franchise_admins fa ON fa.franchise_id = f.id
WHERE fa.user_id = ? LIMIT 1`, userID))
}

func (s *Store) List(ctx context.Context) ([]Franchise, error) {
	rows, err := s.db.QueryContext(ctx, selectFranchise+`ORDER BY f.name, f.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	res := make([]Franchise, 0, 16)
	for rows.Next() {
		var f Franchise
		if err := rows.Scan(&f.ID, &f.Name, &f.Address, &f.Contact, &f.Latitude, &f.Longitude, &f.CreatedAt); err != nil {
			return nil, err
		}
		res = append(res, f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return res, nil
}

func scanOne(row *sql.Row) (*Franchise, error) {
	var f Franchise
	err := row.Scan(&f.ID, &f.Name, &f.Address, &f.Contact, &f.Latitude, &f.Longitude, &f.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}
