package members

import (
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"

	"aais-kitchen-backend/internal/platform/apierr"
	"aais-kitchen-backend/internal/platform/auth"
	"aais-kitchen-backend/internal/platform/httpx"
	"aais-kitchen-backend/internal/platform/logger"
)

type Handler struct {
	svc *Service
	log logger.Logger
}

func RegisterRoutes(rt httpx.Routes, svc *Service, log logger.Logger) {
	h := &Handler{svc: svc, log: log}

	rt.Member.POST("/membership", h.Join)
	rt.Member.GET("/membership", h.Mine)
	rt.Member.GET("/plans", h.Plans)
	rt.Member.POST("/membership/plan", h.BuyPlan)

	rt.Admin.GET("/members", h.List)
	rt.Admin.PATCH("/members/:id", h.SetActive)
}

// POST /membership
func (h *Handler) Join(c *gin.Context) {
	var req JoinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierr.BadJSON(c, err)
		return
	}

	m, err := h.svc.Join(c.Request.Context(), auth.UserID(c), req)
	if err != nil {
		apierr.Write(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, toResponse(m))
}

// GET /membership
func (h *Handler) Mine(c *gin.Context) {
	m, err := h.svc.Mine(c.Request.Context(), auth.UserID(c))
	if err != nil {
		apierr.Write(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, toResponse(m))
}

// GET /plans
func (h *Handler) Plans(c *gin.Context) {
	res := make([]PlanResponse, 0, len(PlanDays))
	for d, label := range PlanDays {
		res = append(res, PlanResponse{Days: d, Label: label})
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Days < res[j].Days })
	c.JSON(http.StatusOK, gin.H{"items": res})
}

// POST /membership/plan
func (h *Handler) BuyPlan(c *gin.Context) {
	var req BuyPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierr.BadJSON(c, err)
		return
	}

	m, err := h.svc.BuyPlan(c.Request.Context(), auth.UserID(c), req.Days)
	if err != nil {
		apierr.Write(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, toResponse(m))
}

// GET /admin/members
func (h *Handler) List(c *gin.Context) {
	items, err := h.svc.List(c.Request.Context(), auth.FranchiseID(c))
	if err != nil {
		apierr.Write(c, h.log, err)
		return
	}
	res := make([]MemberListItem, 0, len(items))
	for i := range items {
		res = append(res, MemberListItem{
			MemberResponse: toResponse(&items[i].Member),
			Name:           items[i].Name,
			Email:          items[i].Email,
			Contact:        items[i].Contact,
		})
	}
	c.JSON(http.StatusOK, gin.H{"items": res, "total": len(res)})
}

// PATCH /admin/members/:id
func (h *Handler) SetActive(c *gin.Context) {
	var req SetActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierr.BadJSON(c, err)
		return
	}
	if err := h.svc.SetActive(c.Request.Context(), auth.FranchiseID(c), c.Param("id"), *req.Active); err != nil {
		apierr.Write(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}
