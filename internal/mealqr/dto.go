package mealqr

import (
	"time"

	"aais-kitchen-backend/internal/platform/mealtype"
	"aais-kitchen-backend/internal/platform/validation"
)

type GenerateRequest struct {
	// YYYY-MM-DD または "today"。省略時は today
	Date string `json:"date"`
}

type CodeResponse struct {
	ID        string            `json:"id"`
	MealType  mealtype.MealType `json:"meal_type"`
	QRCode    string            `json:"qr_code"`
	CreatedAt time.Time         `json:"created_at"`
}

type DayResponse struct {
	FranchiseID string         `json:"franchise_id"`
	Date        string         `json:"date"`
	Created     bool           `json:"created"`
	Codes       []CodeResponse `json:"codes"`
}

func toDayResponse(franchiseID string, date time.Time, codes []Code, created bool) DayResponse {
	res := DayResponse{
		FranchiseID: franchiseID,
		Date:        date.Format(validation.DateLayout),
		Created:     created,
		Codes:       make([]CodeResponse, 0, len(codes)),
	}
	for _, c := range codes {
		res.Codes = append(res.Codes, CodeResponse{
			ID:        c.ID,
			MealType:  c.MealType,
			QRCode:    c.QRCode,
			CreatedAt: c.CreatedAt,
		})
	}
	return res
}
