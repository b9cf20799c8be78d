package feedback

import (
	"net/http"

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
	rt.Member.POST("/feedback", h.Submit)
	rt.Admin.GET("/feedback", h.List)
}

// POST /feedback
func (h *Handler) Submit(c *gin.Context) {
	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierr.BadJSON(c, err)
		return
	}
	f, err := h.svc.Submit(c.Request.Context(), auth.UserID(c), req)
	if err != nil {
		apierr.Write(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, toResponse(f))
}

// GET /admin/feedback?meal_type=lunch
func (h *Handler) List(c *gin.Context) {
	items, err := h.svc.List(c.Request.Context(), auth.FranchiseID(c), c.Query("meal_type"))
	if err != nil {
		apierr.Write(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, toListResponse(items))
}
