package attendance

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"aais-kitchen-backend/internal/platform/apierr"
	"aais-kitchen-backend/internal/platform/auth"
	"aais-kitchen-backend/internal/platform/httpx"
	"aais-kitchen-backend/internal/platform/logger"
	"aais-kitchen-backend/internal/platform/mealtype"
)

type Handler struct {
	svc *Service
	log logger.Logger
}

func RegisterRoutes(rt httpx.Routes, svc *Service, log logger.Logger) {
	h := &Handler{svc: svc, log: log}

	// 会員
	rt.Member.POST("/attendance/scan", h.Scan)
	rt.Member.GET("/attendance", h.History)

	// 管理者
	rt.Admin.GET("/attendance", h.List)
	rt.Admin.GET("/attendance/summary", h.Summary)
	rt.Admin.GET("/attendance/stats", h.Stats)
}

// Scan godoc
// @Summary  QR を読み取って出席を記録
// @Tags     attendance
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Param    body body ScanRequest true "scan"
// @Success  201 {object} AttendanceResponse
// @Failure  400 {object} apierr.ErrorDTO "形式不正 / 未発行の QR"
// @Failure  403 {object} apierr.ErrorDTO "別フランチャイズの QR"
// @Failure  404 {object} apierr.ErrorDTO "会員登録なし"
// @Failure  409 {object} apierr.ErrorDTO "出席済み"
// @Failure  429 {object} apierr.ErrorDTO "スキャン間隔"
// @Router   /attendance/scan [post]
func (h *Handler) Scan(c *gin.Context) {
	var req ScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierr.BadJSON(c, err)
		return
	}
	m, err := mealtype.Parse(req.MealType)
	if err != nil {
		apierr.Write(c, h.log, apierr.Invalid(err.Error()))
		return
	}

	rec, err := h.svc.Scan(c.Request.Context(), auth.UserID(c), req.QRCode, m)
	if err != nil {
		apierr.Write(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, rec.toDTO())
}

// GET /attendance?from=&to=&meal_type=&limit=&offset=&sort=
func (h *Handler) History(c *gin.Context) {
	q, err := bindListQuery(c)
	if err != nil {
		apierr.Write(c, h.log, err)
		return
	}
	items, total, err := h.svc.History(c.Request.Context(), auth.UserID(c), q)
	if err != nil {
		apierr.Write(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, ListResponse{Items: items, Total: total, Limit: q.Limit, Offset: q.Offset})
}

// GET /admin/attendance?member_id=&on=&from=&to=&meal_type=&limit=&offset=&sort=
func (h *Handler) List(c *gin.Context) {
	q, err := bindListQuery(c)
	if err != nil {
		apierr.Write(c, h.log, err)
		return
	}
	q.MessMemberID = c.Query("member_id")

	items, total, err := h.svc.List(c.Request.Context(), auth.FranchiseID(c), q)
	if err != nil {
		apierr.Write(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, ListResponse{Items: items, Total: total, Limit: q.Limit, Offset: q.Offset})
}

// GET /admin/attendance/summary?date=YYYY-MM-DD
func (h *Handler) Summary(c *gin.Context) {
	res, err := h.svc.Summary(c.Request.Context(), auth.FranchiseID(c), c.Query("date"))
	if err != nil {
		apierr.Write(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// GET /admin/attendance/stats?from=&to=&limit=
func (h *Handler) Stats(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	rows, err := h.svc.Stats(c.Request.Context(), auth.FranchiseID(c), StatsRequest{
		From:  c.Query("from"),
		To:    c.Query("to"),
		Limit: limit,
	})
	if err != nil {
		apierr.Write(c, h.log, err)
		return
	}
	if rows == nil {
		rows = []StatsRow{}
	}
	c.JSON(http.StatusOK, gin.H{"items": rows})
}

func bindListQuery(c *gin.Context) (ListQuery, error) {
	q := ListQuery{
		Sort: c.DefaultQuery("sort", DefaultSort),
	}
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return q, apierr.Invalid("limit must be an integer")
		}
		q.Limit = n
	}
	if v := c.Query("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return q, apierr.Invalid("offset must be an integer")
		}
		q.Offset = n
	}
	if v := c.Query("meal_type"); v != "" {
		m, err := mealtype.Parse(v)
		if err != nil {
			return q, apierr.Invalid(err.Error())
		}
		q.MealType = &m
	}
	for key, dst := range map[string]**string{"on": &q.On, "from": &q.From, "to": &q.To} {
		if v := c.Query(key); v != "" {
			s := v
			*dst = &s
		}
	}
	switch q.Sort {
	case SortScannedAtDesc, SortScannedAtAsc, SortDateDesc, SortDateAsc:
	default:
		return q, apierr.Invalid("unknown sort")
	}
	if q.Limit <= 0 {
		q.Limit = DefaultPageLimit
	}
	if q.Limit > MaxPageLimit {
		q.Limit = MaxPageLimit
	}
	return q, nil
}
