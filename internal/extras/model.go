package extras

import (
	"time"

	"github.com/shopspring/decimal"
)

// Addon: 会員が追加注文した品目。名前と単価は注文時点の値を写す
type Addon struct {
	ID         string
	MemberID   string
	FoodItemID string
	ItemName   string
	Quantity   int
	Price      decimal.Decimal
	CreatedAt  time.Time
}

// Snack: 管理者が記録する夕方の軽食の請求
type Snack struct {
	ID           string
	MessMemberID string
	FranchiseID  string
	ItemName     string
	Price        decimal.Decimal
	Date         time.Time
}

type Member struct {
	ID          string
	FranchiseID string
	Active      bool
}

type FoodItem struct {
	ID    string
	Name  string
	Price decimal.Decimal
}
