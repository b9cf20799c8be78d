package auth

import "time"

type Role string

const (
	RoleSuperAdmin     Role = "super_admin"
	RoleFranchiseAdmin Role = "franchise_admin"
	RoleMessMember     Role = "mess_member"
)

func (r Role) Valid() bool {
	switch r {
	case RoleSuperAdmin, RoleFranchiseAdmin, RoleMessMember:
		return true
	}
	return false
}

// 自己登録できるのは admin / member のみ
func (r Role) SelfRegistrable() bool {
	return r == RoleFranchiseAdmin || r == RoleMessMember
}

type Account struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	Contact      string
	Role         Role
	IsDisabled   bool
	CreatedAt    time.Time
}

// Session: リクエスト毎に DB から組み立てる。JWT の role は信用しない
type Session struct {
	UserID      string
	Email       string
	Name        string
	Role        Role
	FranchiseID string // 未所属なら空
}
