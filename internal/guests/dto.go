package guests

import (
	"time"

	"github.com/shopspring/decimal"
)

type CreateGuestMealRequest struct {
	GuestName  string    `json:"guest_name" binding:"required,max=100"`
	MealType   string    `json:"meal_type" binding:"required,meal_type"`
	Date       time.Time `json:"date" binding:"required"`
	NoOfPerson int       `json:"no_of_person" binding:"required,min=1,max=50"`
}

type GuestMealResponse struct {
	ID           string          `json:"id"`
	MessMemberID string          `json:"mess_member_id"`
	FranchiseID  string          `json:"franchise_id"`
	GuestName    string          `json:"guest_name"`
	MealType     string          `json:"meal_type"`
	Date         time.Time       `json:"date"`
	NoOfPerson   int             `json:"no_of_person"`
	Price        decimal.Decimal `json:"price" swaggertype:"string"`
	CreatedAt    time.Time       `json:"created_at"`
}

type ListResponse struct {
	Items []GuestMealResponse `json:"items"`
	Total int                 `json:"total"`
}

func toResponse(g *GuestMeal) GuestMealResponse {
	return GuestMealResponse{
		ID:           g.ID,
		MessMemberID: g.MessMemberID,
		FranchiseID:  g.FranchiseID,
		GuestName:    g.GuestName,
		MealType:     string(g.MealType),
		Date:         g.Date,
		NoOfPerson:   g.NoOfPerson,
		Price:        g.Price,
		CreatedAt:    g.CreatedAt,
	}
}

func toListResponse(items []GuestMeal) ListResponse {
	res := ListResponse{Items: make([]GuestMealResponse, 0, len(items)), Total: len(items)}
	for i := range items {
		res.Items = append(res.Items, toResponse(&items[i]))
	}
	return res
}
