package reports

import (
	"context"
	"net/http"
	"strconv"

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
	rt.Admin.GET("/reports/attendance.csv", h.Attendance)
	rt.Admin.GET("/reports/guest-meals.csv", h.GuestMeals)
}

// Attendance godoc
// @Summary  出席記録の CSV（期間は最大92日）
// @Tags     reports
// @Produce  text/csv
// @Security BearerAuth
// @Param    from query string false "YYYY-MM-DD"
// @Param    to   query string false "YYYY-MM-DD（省略時は今日）"
// @Param    bom  query bool   false "BOM を付けるか（既定 true）"
// @Success  200 {string} string "CSV"
// @Failure  400 {object} apierr.ErrorDTO
// @Router   /admin/reports/attendance.csv [get]
func (h *Handler) Attendance(c *gin.Context) {
	h.export(c, h.svc.Attendance)
}

// GET /admin/reports/guest-meals.csv
func (h *Handler) GuestMeals(c *gin.Context) {
	h.export(c, h.svc.GuestMeals)
}

type tableFunc func(ctx context.Context, franchiseID, from, to string) (*Table, error)

func (h *Handler) export(c *gin.Context, build tableFunc) {
	bom := true
	if v := c.Query("bom"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			apierr.Write(c, h.log, apierr.Invalid("bom must be true or false"))
			return
		}
		bom = b
	}
	t, err := build(c.Request.Context(), auth.FranchiseID(c), c.Query("from"), c.Query("to"))
	if err != nil {
		apierr.Write(c, h.log, err)
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="`+t.Filename+`"`)
	c.Status(http.StatusOK)
	if err := WriteCSV(c.Writer, t, bom); err != nil {
		// ヘッダ送信後なのでログだけ
		h.log.InternalError("csv write failed", err, "file", t.Filename)
	}
}
