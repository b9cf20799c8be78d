package holidays

import "time"

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

type Holiday struct {
	ID          string
	MemberID    string
	FranchiseID string
	StartDate   time.Time
	EndDate     time.Time
	Status      Status
	RequestedAt time.Time
}

// 管理画面用（会員名つき）
type HolidayWithMember struct {
	Holiday
	MemberName string
}

type Member struct {
	ID          string
	FranchiseID string
}
