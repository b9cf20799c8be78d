package menu

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"aais-kitchen-backend/internal/platform/apierr"
	"aais-kitchen-backend/internal/platform/auth"
	"aais-kitchen-backend/internal/platform/httpx"
	"aais-kitchen-backend/internal/platform/logger"
	"aais-kitchen-backend/internal/platform/validation"
)

type Handler struct {
	svc *Service
	log logger.Logger
}

func RegisterRoutes(rt httpx.Routes, svc *Service, log logger.Logger) {
	h := &Handler{svc: svc, log: log}

	rt.Authed.GET("/food-items", h.ListFoodItems)
	rt.Admin.POST("/food-items", h.CreateFoodItem)
	rt.Admin.PATCH("/food-items/:id", h.UpdateFoodItem)

	rt.Member.GET("/menu/today", h.Today)
	rt.Admin.GET("/menu", h.Day)
	rt.Admin.PUT("/menu", h.SetMenu)
}

// ===== food items =====

// GET /food-items?category=main&q=poha
func (h *Handler) ListFoodItems(c *gin.Context) {
	items, err := h.svc.ListFoodItems(c.Request.Context(), c.Query("category"), c.Query("q"))
	if err != nil {
		apierr.Write(c, h.log, err)
		return
	}
	res := FoodItemListResponse{Items: make([]FoodItemResponse, 0, len(items)), Total: len(items)}
	for i := range items {
		res.Items = append(res.Items, toFoodItemResponse(&items[i]))
	}
	c.JSON(http.StatusOK, res)
}

// CreateFoodItem godoc
// @Summary  品目の登録
// @Tags     menu
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Param    body body CreateFoodItemRequest true "品目"
// @Success  201 {object} FoodItemResponse
// @Failure  400 {object} apierr.ErrorDTO
// @Router   /admin/food-items [post]
func (h *Handler) CreateFoodItem(c *gin.Context) {
	var req CreateFoodItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierr.BadJSON(c, err)
		return
	}
	f, err := h.svc.CreateFoodItem(c.Request.Context(), req)
	if err != nil {
		apierr.Write(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, toFoodItemResponse(f))
}

// PATCH /admin/food-items/:id
func (h *Handler) UpdateFoodItem(c *gin.Context) {
	var req UpdateFoodItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierr.BadJSON(c, err)
		return
	}
	f, err := h.svc.UpdateFoodItem(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		apierr.Write(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, toFoodItemResponse(f))
}

// ===== meals =====

// GET /menu/today
func (h *Handler) Today(c *gin.Context) {
	res, err := h.svc.Today(c.Request.Context(), auth.UserID(c))
	if err != nil {
		apierr.Write(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// GET /admin/menu?date=YYYY-MM-DD
func (h *Handler) Day(c *gin.Context) {
	res, err := h.svc.Day(c.Request.Context(), auth.FranchiseID(c), c.Query("date"))
	if err != nil {
		apierr.Write(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// SetMenu godoc
// @Summary  献立の設定（同じ日・区分は上書き）
// @Tags     menu
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Param    body body SetMenuRequest true "献立"
// @Success  200 {object} MealResponse
// @Failure  400 {object} apierr.ErrorDTO
// @Failure  404 {object} apierr.ErrorDTO
// @Router   /admin/menu [put]
func (h *Handler) SetMenu(c *gin.Context) {
	var req SetMenuRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierr.BadJSON(c, err)
		return
	}
	m, err := h.svc.SetMenu(c.Request.Context(), auth.FranchiseID(c), req)
	if err != nil {
		apierr.Write(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, MealResponse{
		Date:      m.Date.Format(validation.DateLayout),
		MealType:  string(m.MealType),
		Items:     m.Menu.Items,
		UpdatedAt: m.UpdatedAt,
	})
}
