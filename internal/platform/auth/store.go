package auth

import (
	"context"
	"database/sql"
	"errors"
)

type AccountStore interface {
	GetByID(ctx context.Context, id string) (*Account, error)
	GetByEmail(ctx context.Context, email string) (*Account, error)
	Create(ctx context.Context, a *Account) error
	SetDisabled(ctx context.Context, id string, disabled bool) (int64, error)
	FranchiseOf(ctx context.Context, userID string, role Role) (string, error)
}

type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) AccountStore {
	return &Store{db: db}
}

const selectAccount = `
SELECT id, email, password_hash, name, contact, role, is_disabled, created_at
FROM users
`

func (s *Store) GetByID(ctx context.Context, id string) (*Account, error) {
	return s.getOne(ctx, selectAccount+`WHERE id = ? LIMIT 1`, id)
}

func (s *Store) GetByEmail(ctx context.Context, email string) (*Account, error) {
	return s.getOne(ctx, selectAccount+`WHERE email = ? LIMIT 1`, email)
}

func (s *Store) getOne(ctx context.Context, q string, arg any) (*Account, error) {
	var (
		a             Account
		role          string
		isDisabledInt int
	)
	err := s.db.QueryRowContext(ctx, q, arg).Scan(
		&a.ID,
		&a.Email,
		&a.PasswordHash,
		&a.Name,
		&a.Contact,
		&role,
		&isDisabledInt,
		&a.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	a.Role = Role(role)
	a.IsDisabled = isDisabledInt != 0
	return &a, nil
}

func (s *Store) Create(ctx context.Context, a *Account) error {
	const q = `
INSERT INTO users (id, email, password_hash, name, contact, role, is_disabled, created_at)
VALUES (?, ?, ?, ?, ?, ?, 0, ?)
`
	_, err := s.db.ExecContext(ctx, q, a.ID, a.Email, a.PasswordHash, a.Name, a.Contact, string(a.Role), a.CreatedAt)
	return err
}

func (s *Store) SetDisabled(ctx context.Context, id string, disabled bool) (int64, error) {
	const q = `UPDATE users SET is_disabled = ? WHERE id = ?`
	v := 0
	if disabled {
		v = 1
	}
	res, err := s.db.ExecContext(ctx, q, v, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// FranchiseOf: admin は franchise_admins、member は mess_members から引く
func (s *Store) FranchiseOf(ctx context.Context, userID string, role Role) (string, error) {
	var q string
	switch role {
	case RoleFranchiseAdmin:
		q = `SELECT franchise_id FROM franchise_admins WHERE user_id = ? LIMIT 1`
	case RoleMessMember:
		q = `SELECT franchise_id FROM mess_members WHERE user_id = ? LIMIT 1`
	default:
		return "", nil
	}

	var fid string
	err := s.db.QueryRowContext(ctx, q, userID).Scan(&fid)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return fid, nil
}
