package attendance

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"aais-kitchen-backend/internal/platform/mealtype"
	"aais-kitchen-backend/internal/platform/validation"
)

type Repository interface {
	CodeExists(ctx context.Context, qrCode string, m mealtype.MealType, date time.Time, franchiseID string) (bool, error)
	MemberByUser(ctx context.Context, userID string) (*Member, error)
	Insert(ctx context.Context, r Record) error
	List(ctx context.Context, q ListQuery) ([]Record, int64, error)
	CountByMeal(ctx context.Context, franchiseID string, date time.Time) (map[mealtype.MealType]int64, error)
	Stats(ctx context.Context, franchiseID string, from, to time.Time, limit int) ([]StatsRow, error)
}

type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// CodeExists: 4条件すべて一致する QR が発行済みか
func (s *Store) CodeExists(ctx context.Context, qrCode string, m mealtype.MealType, date time.Time, franchiseID string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx, `
	SELECT 1 FROM meal_qr_codes
	WHERE qr_code = ? AND meal_type = ? AND date = ? AND franchise_id = ?
	LIMIT 1`, qrCode, string(m), date.Format(validation.DateLayout), franchiseID,
	).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *Store) MemberByUser(ctx context.Context, userID string) (*Member, error) {
	var m Member
	err := s.db.QueryRowContext(ctx, `
	SELECT id, franchise_id FROM mess_members WHERE user_id = ? LIMIT 1`, userID,
	).Scan(&m.ID, &m.FranchiseID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// Insert: UNIQUE(mess_member_id, date, meal_type)。二重スキャンは 1062 で返る
func (s *Store) Insert(ctx context.Context, r Record) error {
	_, err := s.db.ExecContext(ctx, `
	INSERT INTO attendance (id, mess_member_id, franchise_id, date, meal_type, attended, scanned_at)
	VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.MessMemberID, r.FranchiseID, r.Date.Format(validation.DateLayout), string(r.MealType), r.Attended, r.ScannedAt,
	)
	return err
}

// List: 条件に応じて動的WHERE + ORDER + LIMIT/OFFSET
func (s *Store) List(ctx context.Context, q ListQuery) ([]Record, int64, error) {
	var (
		buf    bytes.Buffer
		args   []any
		wheres []string
	)

	buf.WriteString(`
	SELECT a.id, a.mess_member_id, COALESCE(u.name, ''), a.franchise_id, a.date, a.meal_type, a.attended, a.scanned_at
	FROM attendance a
	LEFT JOIN mess_members m ON m.id = a.mess_member_id
	LEFT JOIN users u ON u.id = m.user_id
	`)
	// WHERE
	if q.FranchiseID != "" {
		wheres = append(wheres, "a.franchise_id = ?")
		args = append(args, q.FranchiseID)
	}
	if q.MessMemberID != "" {
		wheres = append(wheres, "a.mess_member_id = ?")
		args = append(args, q.MessMemberID)
	}
	if q.MealType != nil {
		wheres = append(wheres, "a.meal_type = ?")
		args = append(args, string(*q.MealType))
	}
	if q.On != nil && *q.On != "" {
		wheres = append(wheres, "a.date = ?")
		args = append(args, *q.On)
	} else {
		if q.From != nil && *q.From != "" {
			wheres = append(wheres, "a.date >= ?")
			args = append(args, *q.From)
		}
		if q.To != nil && *q.To != "" {
			wheres = append(wheres, "a.date <= ?")
			args = append(args, *q.To)
		}
	}
	if len(wheres) > 0 {
		buf.WriteString(" WHERE " + strings.Join(wheres, " AND "))
	}

	// ORDER
	switch q.Sort {
	case SortScannedAtAsc:
		buf.WriteString(" ORDER BY a.scanned_at ASC, a.id ASC")
	case SortDateDesc:
		buf.WriteString(" ORDER BY a.date DESC, a.scanned_at DESC, a.id DESC")
	case SortDateAsc:
		buf.WriteString(" ORDER BY a.date ASC, a.scanned_at ASC, a.id ASC")
	default:
		buf.WriteString(" ORDER BY a.scanned_at DESC, a.id DESC")
	}

	// LIMIT/OFFSET
	limit := q.Limit
	if limit <= 0 {
		limit = DefaultPageLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	offset := q.Offset
	if offset < 0 {
		offset = 0
	}
	buf.WriteString(fmt.Sprintf(" LIMIT %d OFFSET %d", limit, offset))

	rows, err := s.db.QueryContext(ctx, buf.String(), args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]Record, 0, limit)
	for rows.Next() {
		var r attendanceRow
		if err := rows.Scan(&r.ID, &r.MessMemberID, &r.MemberName, &r.FranchiseID, &r.Date, &r.MealType, &r.Attended, &r.ScannedAt); err != nil {
			return nil, 0, err
		}
		out = append(out, r.toModel())
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	// COUNT（ORDER BY より前までを再構築）
	var cntBuf bytes.Buffer
	cntBuf.WriteString("SELECT COUNT(*) FROM attendance a")
	if len(wheres) > 0 {
		cntBuf.WriteString(" WHERE " + strings.Join(wheres, " AND "))
	}
	var total int64
	if err := s.db.QueryRowContext(ctx, cntBuf.String(), args...).Scan(&total); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// CountByMeal: その日の食事区分ごとの出席数。0件の区分も含める
func (s *Store) CountByMeal(ctx context.Context, franchiseID string, date time.Time) (map[mealtype.MealType]int64, error) {
	rows, err := s.db.QueryContext(ctx, `
	SELECT meal_type, COUNT(*) AS cnt
	FROM attendance
	WHERE franchise_id = ? AND date = ? AND attended = 1
	GROUP BY meal_type`, franchiseID, date.Format(validation.DateLayout))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := mealtype.Counts()
	for rows.Next() {
		var (
			mt  string
			cnt int64
		)
		if err := rows.Scan(&mt, &cnt); err != nil {
			return nil, err
		}
		if m := mealtype.MealType(mt); m.Valid() {
			out[m] = cnt
		}
	}
	return out, rows.Err()
}

// Stats: 期間の出席数を会員別合計（TOP N）
func (s *Store) Stats(ctx context.Context, franchiseID string, from, to time.Time, limit int) ([]StatsRow, error) {
	if limit <= 0 {
		limit = DefaultStatsLimit
	}
	rows, err := s.db.QueryContext(ctx, `
	SELECT a.mess_member_id, COALESCE(MAX(u.name), '') AS name, COUNT(*) AS cnt
	FROM attendance a
	LEFT JOIN mess_members m ON m.id = a.mess_member_id
	LEFT JOIN users u ON u.id = m.user_id
	WHERE a.franchise_id = ? AND a.date BETWEEN ? AND ?
	GROUP BY a.mess_member_id
	ORDER BY cnt DESC, a.mess_member_id ASC
	LIMIT ?`, franchiseID, from.Format(validation.DateLayout), to.Format(validation.DateLayout), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []StatsRow
	for rows.Next() {
		var row StatsRow
		if err := rows.Scan(&row.MessMemberID, &row.MemberName, &row.Count); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
