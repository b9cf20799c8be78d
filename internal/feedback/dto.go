package feedback

import (
	"time"

	"aais-kitchen-backend/internal/platform/validation"
)

type SubmitRequest struct {
	MealType string `json:"meal_type" binding:"required,meal_type"`
	Rating   int    `json:"rating" binding:"required,min=1,max=5"`
	Comments string `json:"comments" binding:"max=2000"`
}

type FeedbackResponse struct {
	ID           string    `json:"id"`
	MessMemberID string    `json:"mess_member_id"`
	MemberName   string    `json:"member_name,omitempty"`
	MealType     string    `json:"meal_type"`
	Rating       int       `json:"rating"`
	Comments     string    `json:"comments"`
	Date         string    `json:"date"`
	CreatedAt    time.Time `json:"created_at"`
}

type ListResponse struct {
	Items         []FeedbackResponse `json:"items"`
	Total         int                `json:"total"`
	AverageRating float64            `json:"average_rating"`
}

func toResponse(f *Feedback) FeedbackResponse {
	return FeedbackResponse{
		ID:           f.ID,
		MessMemberID: f.MessMemberID,
		MealType:     string(f.MealType),
		Rating:       f.Rating,
		Comments:     f.Comments,
		Date:         f.Date.Format(validation.DateLayout),
		CreatedAt:    f.CreatedAt,
	}
}

func toListResponse(items []FeedbackWithMember) ListResponse {
	res := ListResponse{Items: make([]FeedbackResponse, 0, len(items)), Total: len(items)}
	sum := 0
	for i := range items {
		r := toResponse(&items[i].Feedback)
		r.MemberName = items[i].MemberName
		sum += items[i].Rating
		res.Items = append(res.Items, r)
	}
	if len(items) > 0 {
		// 小数1桁
		res.AverageRating = float64(sum*10/len(items)) / 10
	}
	return res
}
