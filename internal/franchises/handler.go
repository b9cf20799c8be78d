package franchises

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

	// 参加先を選ぶための一覧はログイン前でも見せる
	rt.Public.GET("/franchises", h.List)
	rt.Public.GET("/franchises/:id", h.Get)

	// 登録直後の admin はまだ担当を持たないので RequireFranchiseAdmin は通らない
	rt.Authed.POST("/franchises", auth.RequireRole(auth.RoleFranchiseAdmin), h.Create)

	rt.Admin.GET("/franchise", h.Mine)
}

// POST /franchises
func (h *Handler) Create(c *gin.Context) {
	var req CreateFranchiseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierr.BadJSON(c, err)
		return
	}

	f, err := h.svc.Create(c.Request.Context(), auth.UserID(c), req)
	if err != nil {
		apierr.Write(c, h.log, err)
		return
	}

	c.Header("Location", "/api/v1/franchises/"+f.ID)
	c.JSON(http.StatusCreated, toResponse(f))
}

// GET /franchises
func (h *Handler) List(c *gin.Context) {
	items, err := h.svc.List(c.Request.Context())
	if err != nil {
		apierr.Write(c, h.log, err)
		return
	}
	res := make([]FranchiseResponse, 0, len(items))
	for i := range items {
		res = append(res, toResponse(&items[i]))
	}
	c.JSON(http.StatusOK, gin.H{"items": res})
}

// GET /franchises/:id
func (h *Handler) Get(c *gin.Context) {
	f, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		apierr.Write(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, toResponse(f))
}

// GET /admin/franchise
func (h *Handler) Mine(c *gin.Context) {
	f, err := h.svc.Mine(c.Request.Context(), auth.UserID(c))
	if err != nil {
		apierr.Write(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, toResponse(f))
}
