package extras

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

	rt.Member.POST("/addons", h.AddAddon)
	rt.Member.GET("/addons", h.ListAddons)
	rt.Member.GET("/evening-snacks", h.MySnacks)

	rt.Admin.POST("/evening-snacks", h.RecordSnack)
	rt.Admin.GET("/evening-snacks", h.SnacksOn)
}

// AddAddon godoc
// @Summary  追加品の注文（請求に加算される）
// @Tags     extras
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Param    body body AddAddonRequest true "品目と数量"
// @Success  201 {object} AddonResponse
// @Failure  404 {object} apierr.ErrorDTO
// @Router   /addons [post]
func (h *Handler) AddAddon(c *gin.Context) {
	var req AddAddonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierr.BadJSON(c, err)
		return
	}
	a, err := h.svc.AddAddon(c.Request.Context(), auth.UserID(c), req)
	if err != nil {
		apierr.Write(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, toAddonResponse(a))
}

// GET /addons
func (h *Handler) ListAddons(c *gin.Context) {
	items, err := h.svc.ListAddons(c.Request.Context(), auth.UserID(c))
	if err != nil {
		apierr.Write(c, h.log, err)
		return
	}
	res := make([]AddonResponse, 0, len(items))
	for i := range items {
		res = append(res, toAddonResponse(&items[i]))
	}
	c.JSON(http.StatusOK, gin.H{"items": res, "total": len(res)})
}

// GET /evening-snacks
func (h *Handler) MySnacks(c *gin.Context) {
	items, err := h.svc.MySnacks(c.Request.Context(), auth.UserID(c))
	if err != nil {
		apierr.Write(c, h.log, err)
		return
	}
	h.writeSnacks(c, items)
}

// POST /admin/evening-snacks
func (h *Handler) RecordSnack(c *gin.Context) {
	var req RecordSnackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierr.BadJSON(c, err)
		return
	}
	sn, err := h.svc.RecordSnack(c.Request.Context(), auth.FranchiseID(c), req)
	if err != nil {
		apierr.Write(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, toSnackResponse(sn))
}

// GET /admin/evening-snacks?date=YYYY-MM-DD
func (h *Handler) SnacksOn(c *gin.Context) {
	items, err := h.svc.SnacksOn(c.Request.Context(), auth.FranchiseID(c), c.Query("date"))
	if err != nil {
		apierr.Write(c, h.log, err)
		return
	}
	h.writeSnacks(c, items)
}

func (h *Handler) writeSnacks(c *gin.Context, items []Snack) {
	res := make([]SnackResponse, 0, len(items))
	for i := range items {
		res = append(res, toSnackResponse(&items[i]))
	}
	c.JSON(http.StatusOK, gin.H{"items": res, "total": len(res)})
}
