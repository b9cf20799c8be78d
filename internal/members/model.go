package members

import "time"

type VegPref string

const (
	Veg    VegPref = "veg"
	NonVeg VegPref = "nonveg"
)

func (v VegPref) Valid() bool { return v == Veg || v == NonVeg }

// 購入できるプラン（日数）
var PlanDays = map[int]string{
	30: "Monthly Plan",
	90: "3-Month Plan",
}

type Member struct {
	ID          string
	UserID      string
	FranchiseID string
	VegPref     VegPref
	Active      bool
	PlanStart   *time.Time
	PlanEnd     *time.Time
	CreatedAt   time.Time
}

// 管理画面の会員一覧用
type MemberWithUser struct {
	Member
	Name    string
	Email   string
	Contact string
}
