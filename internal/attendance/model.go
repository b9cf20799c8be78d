package attendance

import (
	"time"

	"aais-kitchen-backend/internal/platform/mealtype"
	"aais-kitchen-backend/internal/platform/validation"
)

// DB行に対応（スキャン用）
type attendanceRow struct {
	ID           string
	MessMemberID string
	MemberName   string
	FranchiseID  string
	Date         time.Time
	MealType     string
	Attended     bool
	ScannedAt    time.Time
}

// Service ↔ Store で使うモデル
type Record struct {
	ID           string
	MessMemberID string
	MemberName   string
	FranchiseID  string
	Date         time.Time
	MealType     mealtype.MealType
	Attended     bool
	ScannedAt    time.Time
}

// 会員の所属（スキャン時の照合に使う分だけ）
type Member struct {
	ID          string
	FranchiseID string
}

func (r attendanceRow) toModel() Record {
	return Record{
		ID:           r.ID,
		MessMemberID: r.MessMemberID,
		MemberName:   r.MemberName,
		FranchiseID:  r.FranchiseID,
		Date:         r.Date,
		MealType:     mealtype.MealType(r.MealType),
		Attended:     r.Attended,
		ScannedAt:    r.ScannedAt.UTC(),
	}
}

func (a Record) toDTO() AttendanceResponse {
	return AttendanceResponse{
		ID:           a.ID,
		MessMemberID: a.MessMemberID,
		MemberName:   a.MemberName,
		FranchiseID:  a.FranchiseID,
		Date:         a.Date.Format(validation.DateLayout),
		MealType:     a.MealType,
		Attended:     a.Attended,
		ScannedAt:    a.ScannedAt,
	}
}
