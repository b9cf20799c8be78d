package mealqr

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
	rt.Admin.POST("/qr-codes", h.Generate)
	rt.Admin.GET("/qr-codes", h.List)
}

// Generate godoc
// @Summary  その日の QR コード（朝・昼・夜）を発行
// @Tags     qr
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Param    body body GenerateRequest false "date"
// @Success  201 {object} DayResponse "新規発行"
// @Success  200 {object} DayResponse "発行済み"
// @Failure  400 {object} apierr.ErrorDTO
// @Router   /admin/qr-codes [post]
func (h *Handler) Generate(c *gin.Context) {
	var req GenerateRequest
	// body なしは today 扱い
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			apierr.BadJSON(c, err)
			return
		}
	}

	fid := auth.FranchiseID(c)
	res, err := h.svc.Generate(c.Request.Context(), fid, req.Date)
	if err != nil {
		apierr.Write(c, h.log, err)
		return
	}

	status := http.StatusOK
	if res.Created {
		status = http.StatusCreated
	}
	c.JSON(status, toDayResponse(fid, res.Date, res.Codes, res.Created))
}

// GET /admin/qr-codes?date=YYYY-MM-DD
func (h *Handler) List(c *gin.Context) {
	fid := auth.FranchiseID(c)
	date, codes, err := h.svc.List(c.Request.Context(), fid, c.Query("date"))
	if err != nil {
		apierr.Write(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, toDayResponse(fid, date, codes, false))
}
