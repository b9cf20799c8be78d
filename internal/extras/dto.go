package extras

import (
	"time"

	"github.com/shopspring/decimal"

	"aais-kitchen-backend/internal/platform/validation"
)

// ===== add-ons =====

type AddAddonRequest struct {
	FoodItemID string `json:"food_item_id" binding:"required"`
	Quantity   int    `json:"quantity" binding:"omitempty,min=1,max=20"` // 省略時は1
}

type AddonResponse struct {
	ID         string          `json:"id"`
	MemberID   string          `json:"member_id"`
	FoodItemID string          `json:"food_item_id"`
	ItemName   string          `json:"item_name"`
	Quantity   int             `json:"quantity"`
	Price      decimal.Decimal `json:"price" swaggertype:"string"`
	CreatedAt  time.Time       `json:"created_at"`
}

func toAddonResponse(a *Addon) AddonResponse {
	return AddonResponse{
		ID:         a.ID,
		MemberID:   a.MemberID,
		FoodItemID: a.FoodItemID,
		ItemName:   a.ItemName,
		Quantity:   a.Quantity,
		Price:      a.Price,
		CreatedAt:  a.CreatedAt,
	}
}

// ===== evening snacks =====

type RecordSnackRequest struct {
	MessMemberID string          `json:"mess_member_id" binding:"required"`
	ItemName     string          `json:"item_name" binding:"required,max=100"`
	Price        decimal.Decimal `json:"price" swaggertype:"string"`
	Date         string          `json:"date" binding:"omitempty,ymd"` // 空なら今日
}

type SnackResponse struct {
	ID           string          `json:"id"`
	MessMemberID string          `json:"mess_member_id"`
	FranchiseID  string          `json:"franchise_id"`
	ItemName     string          `json:"item_name"`
	Price        decimal.Decimal `json:"price" swaggertype:"string"`
	Date         string          `json:"date"`
}

func toSnackResponse(s *Snack) SnackResponse {
	return SnackResponse{
		ID:           s.ID,
		MessMemberID: s.MessMemberID,
		FranchiseID:  s.FranchiseID,
		ItemName:     s.ItemName,
		Price:        s.Price,
		Date:         s.Date.Format(validation.DateLayout),
	}
}
