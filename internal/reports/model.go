package reports

import (
	"time"

	"github.com/shopspring/decimal"
)

// 出力できる期間の上限（日、両端を含む）
const MaxRangeDays = 92

type AttendanceRow struct {
	Date       time.Time
	MealType   string
	MemberID   string
	MemberName string
	ScannedAt  time.Time
}

type GuestRow struct {
	Date       time.Time
	MealType   string
	GuestName  string
	NoOfPerson int
	Price      decimal.Decimal
	MemberName string
}

// Table: CSV 1ファイル分
type Table struct {
	Filename string
	Header   []string
	Records  [][]string
}
