package feedback

import (
	"time"

	"aais-kitchen-backend/internal/platform/mealtype"
)

const (
	MinRating = 1
	MaxRating = 5
)

type Feedback struct {
	ID           string
	MessMemberID string
	FranchiseID  string
	MealType     mealtype.MealType
	Rating       int
	Comments     string
	Date         time.Time
	CreatedAt    time.Time
}

type FeedbackWithMember struct {
	Feedback
	MemberName string
}

type Member struct {
	ID          string
	FranchiseID string
}
