package holidays

import (
	"time"

	"aais-kitchen-backend/internal/platform/validation"
)

type CreateHolidayRequest struct {
	StartDate string `json:"start_date" binding:"required,ymd"`
	EndDate   string `json:"end_date" binding:"required,ymd"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=approved rejected pending"`
}

type HolidayResponse struct {
	ID          string    `json:"id"`
	MemberID    string    `json:"member_id"`
	MemberName  string    `json:"member_name,omitempty"`
	FranchiseID string    `json:"franchise_id"`
	StartDate   string    `json:"start_date"`
	EndDate     string    `json:"end_date"`
	Status      Status    `json:"status"`
	RequestedAt time.Time `json:"requested_at"`
}

type ListResponse struct {
	Items    []HolidayResponse `json:"items"`
	Total    int               `json:"total"`
	Approved int               `json:"approved"`
}

func toResponse(h *Holiday) HolidayResponse {
	return HolidayResponse{
		ID:          h.ID,
		MemberID:    h.MemberID,
		FranchiseID: h.FranchiseID,
		StartDate:   h.StartDate.Format(validation.DateLayout),
		EndDate:     h.EndDate.Format(validation.DateLayout),
		Status:      h.Status,
		RequestedAt: h.RequestedAt,
	}
}

func toListResponse(items []HolidayWithMember) ListResponse {
	res := ListResponse{Items: make([]HolidayResponse, 0, len(items)), Total: len(items)}
	for i := range items {
		r := toResponse(&items[i].Holiday)
		r.MemberName = items[i].MemberName
		if items[i].Status == StatusApproved {
			res.Approved++
		}
		res.Items = append(res.Items, r)
	}
	return res
}
