package holidays

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
	rt.Member.POST("/holidays", h.Request)
	rt.Member.GET("/holidays", h.Mine)
	rt.Admin.GET("/holidays", h.List)
	rt.Admin.PATCH("/holidays/:id", h.SetStatus)
}

// Request godoc
// @Summary  休み（食事停止）の申請
// @Tags     holidays
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Param    body body CreateHolidayRequest true "期間"
// @Success  201 {object} HolidayResponse
// @Failure  400 {object} apierr.ErrorDTO
// @Failure  409 {object} apierr.ErrorDTO
// @Router   /holidays [post]
func (h *Handler) Request(c *gin.Context) {
	var req CreateHolidayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierr.BadJSON(c, err)
		return
	}
	hol, err := h.svc.Request(c.Request.Context(), auth.UserID(c), req)
	if err != nil {
		apierr.Write(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, toResponse(hol))
}

// GET /holidays
func (h *Handler) Mine(c *gin.Context) {
	items, err := h.svc.Mine(c.Request.Context(), auth.UserID(c))
	if err != nil {
		apierr.Write(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, toListResponse(items))
}

// GET /admin/holidays?status=pending
func (h *Handler) List(c *gin.Context) {
	items, err := h.svc.List(c.Request.Context(), auth.FranchiseID(c), c.Query("status"))
	if err != nil {
		apierr.Write(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, toListResponse(items))
}

// PATCH /admin/holidays/:id
func (h *Handler) SetStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierr.BadJSON(c, err)
		return
	}
	if err := h.svc.SetStatus(c.Request.Context(), auth.FranchiseID(c), c.Param("id"), req.Status); err != nil {
		apierr.Write(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}
