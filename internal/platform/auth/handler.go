package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"aais-kitchen-backend/internal/platform/apierr"
	"aais-kitchen-backend/internal/platform/logger"
)

type AuthHandler struct {
	svc AuthService
	log logger.Logger
}

// RegisterRoutes: /auth 配下。me と accounts は認証必須
func RegisterRoutes(r gin.IRouter, svc AuthService, log logger.Logger) {
	h := &AuthHandler{svc: svc, log: log}
	g := r.Group("/auth")
	g.POST("/signup", h.Signup)
	g.POST("/login", h.Login)

	authed := g.Group("", RequireAuth(svc, log))
	authed.GET("/me", h.Me)
	authed.PATCH("/accounts/:id", RequireRole(RoleSuperAdmin), h.SetDisabled)
}

// Signup godoc
// @Summary  アカウント登録
// @Tags     auth
// @Accept   json
// @Produce  json
// @Param    body body SignupRequest true "signup"
// @Success  201 {object} AccountResponse
// @Failure  400 {object} apierr.ErrorDTO
// @Failure  409 {object} apierr.ErrorDTO
// @Router   /auth/signup [post]
func (h *AuthHandler) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierr.BadJSON(c, err)
		return
	}

	in := SignupInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Contact:  req.Contact,
	}
	if req.Role != nil {
		in.Role = Role(*req.Role)
	}

	acct, err := h.svc.Signup(c.Request.Context(), in)
	if err != nil {
		apierr.Write(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, toAccountResponse(acct))
}

// Login godoc
// @Summary  ログイン（JWT 発行）
// @Tags     auth
// @Accept   json
// @Produce  json
// @Param    body body LoginRequest true "login"
// @Success  200 {object} LoginResponse
// @Failure  401 {object} apierr.ErrorDTO
// @Router   /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierr.BadJSON(c, err)
		return
	}

	token, acct, err := h.svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		apierr.Write(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, LoginResponse{Token: token, Account: toAccountResponse(acct)})
}

// Me godoc
// @Summary  現在のセッション
// @Tags     auth
// @Produce  json
// @Security BearerAuth
// @Success  200 {object} SessionResponse
// @Router   /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	sess, ok := SessionFrom(c)
	if !ok {
		apierr.Write(c, h.log, apierr.Unauthenticated("no session"))
		return
	}
	c.JSON(http.StatusOK, toSessionResponse(sess))
}

// PATCH /auth/accounts/:id
func (h *AuthHandler) SetDisabled(c *gin.Context) {
	var req SetDisabledRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierr.BadJSON(c, err)
		return
	}

	if err := h.svc.SetDisabled(c.Request.Context(), c.Param("id"), *req.Disabled); err != nil {
		apierr.Write(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}
