package attendance

import (
	"time"

	"aais-kitchen-backend/internal/platform/mealtype"
)

const (
	SortScannedAtDesc = "scanned_at_desc"
	SortScannedAtAsc  = "scanned_at_asc"
	SortDateDesc      = "date_desc"
	SortDateAsc       = "date_asc"
	DefaultPageLimit  = 50
	MaxPageLimit      = 200
	DefaultSort       = SortScannedAtDesc
	DefaultStatsLimit = 10
)

// ScanRequest: スキャンした文字列と、どの食事の画面から読んだか
type ScanRequest struct {
	QRCode   string `json:"qr_code" binding:"required"`
	MealType string `json:"meal_type" binding:"required,meal_type"`
}

type AttendanceResponse struct {
	ID           string            `json:"id"`
	MessMemberID string            `json:"mess_member_id"`
	MemberName   string            `json:"member_name,omitempty"`
	FranchiseID  string            `json:"franchise_id"`
	Date         string            `json:"date"` // YYYY-MM-DD
	MealType     mealtype.MealType `json:"meal_type"`
	Attended     bool              `json:"attended"`
	ScannedAt    time.Time         `json:"scanned_at"`
}

type ListQuery struct {
	FranchiseID  string
	MessMemberID string
	MealType     *mealtype.MealType
	On           *string
	From         *string
	To           *string
	Limit        int
	Offset       int
	Sort         string
}

type ListResponse struct {
	Items  []AttendanceResponse `json:"items"`
	Total  int64                `json:"total"`
	Limit  int                  `json:"limit"`
	Offset int                  `json:"offset"`
}

type SummaryResponse struct {
	Date   string                      `json:"date"`
	Counts map[mealtype.MealType]int64 `json:"counts"`
	Total  int64                       `json:"total"`
}

type StatsRequest struct {
	From  string // YYYY-MM-DD
	To    string // YYYY-MM-DD
	Limit int
}

type StatsRow struct {
	MessMemberID string `json:"mess_member_id"`
	MemberName   string `json:"member_name"`
	Count        int64  `json:"count"`
}
