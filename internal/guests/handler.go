package guests

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
	rt.Member.POST("/guest-meals", h.Request)
	rt.Member.GET("/guest-meals", h.Mine)
	rt.Admin.GET("/guest-meals", h.List)
}

// Request godoc
// @Summary  ゲスト食の申込（5時間前まで）
// @Tags     guests
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Param    body body CreateGuestMealRequest true "申込内容"
// @Success  201 {object} GuestMealResponse
// @Failure  400 {object} apierr.ErrorDTO
// @Failure  404 {object} apierr.ErrorDTO
// @Router   /guest-meals [post]
func (h *Handler) Request(c *gin.Context) {
	var req CreateGuestMealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierr.BadJSON(c, err)
		return
	}
	g, err := h.svc.Request(c.Request.Context(), auth.UserID(c), req)
	if err != nil {
		apierr.Write(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, toResponse(g))
}

// GET /guest-meals
func (h *Handler) Mine(c *gin.Context) {
	items, err := h.svc.Mine(c.Request.Context(), auth.UserID(c))
	if err != nil {
		apierr.Write(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, toListResponse(items))
}

// GET /admin/guest-meals?date=today
func (h *Handler) List(c *gin.Context) {
	items, err := h.svc.List(c.Request.Context(), auth.FranchiseID(c), c.Query("date"))
	if err != nil {
		apierr.Write(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, toListResponse(items))
}
