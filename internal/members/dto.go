package members

import (
	"time"

	"aais-kitchen-backend/internal/platform/validation"
)

type JoinRequest struct {
	FranchiseID string `json:"franchise_id" binding:"required"`
	VegPref     string `json:"veg_pref" binding:"required,oneof=veg nonveg"`
}

type BuyPlanRequest struct {
	Days int `json:"days" binding:"required"`
}

type SetActiveRequest struct {
	Active *bool `json:"active" binding:"required"`
}

type MemberResponse struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	FranchiseID string    `json:"franchise_id"`
	VegPref     VegPref   `json:"veg_pref"`
	Active      bool      `json:"active"`
	PlanStart   *string   `json:"plan_start"`
	PlanEnd     *string   `json:"plan_end"`
	CreatedAt   time.Time `json:"created_at"`
}

type MemberListItem struct {
	MemberResponse
	Name    string `json:"name"`
	Email   string `json:"email"`
	Contact string `json:"contact"`
}

type PlanResponse struct {
	Days  int    `json:"days"`
	Label string `json:"label"`
}

func toResponse(m *Member) MemberResponse {
	return MemberResponse{
		ID:          m.ID,
		UserID:      m.UserID,
		FranchiseID: m.FranchiseID,
		VegPref:     m.VegPref,
		Active:      m.Active,
		PlanStart:   ymd(m.PlanStart),
		PlanEnd:     ymd(m.PlanEnd),
		CreatedAt:   m.CreatedAt,
	}
}

func ymd(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(validation.DateLayout)
	return &s
}
