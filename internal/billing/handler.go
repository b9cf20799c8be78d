package billing

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
	rt.Member.GET("/bill", h.Bill)
	rt.Member.GET("/bill/payment-link", h.PaymentLink)
}

// Bill godoc
// @Summary  今月の請求額（基本料金 + ゲスト食 + 軽食 + 追加品）
// @Tags     billing
// @Produce  json
// @Security BearerAuth
// @Success  200 {object} BillResponse
// @Failure  404 {object} apierr.ErrorDTO
// @Router   /bill [get]
func (h *Handler) Bill(c *gin.Context) {
	b, err := h.svc.Bill(c.Request.Context(), auth.UserID(c))
	if err != nil {
		apierr.Write(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, toResponse(*b))
}

// GET /bill/payment-link
func (h *Handler) PaymentLink(c *gin.Context) {
	res, err := h.svc.PaymentLink(c.Request.Context(), auth.UserID(c))
	if err != nil {
		apierr.Write(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
