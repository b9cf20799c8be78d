package guests

import (
	"time"

	"github.com/shopspring/decimal"

	"aais-kitchen-backend/internal/platform/mealtype"
)

// 申込は食事の5時間前まで
const MinLeadTime = 5 * time.Hour

type GuestMeal struct {
	ID           string
	MessMemberID string
	FranchiseID  string
	GuestName    string
	MealType     mealtype.MealType
	Date         time.Time
	NoOfPerson   int
	Price        decimal.Decimal
	CreatedAt    time.Time
}

type Member struct {
	ID          string
	FranchiseID string
}
