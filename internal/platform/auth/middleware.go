package auth

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"aais-kitchen-backend/internal/platform/apierr"
	"aais-kitchen-backend/internal/platform/logger"
)

const (
	CtxUserIDKey      = "user_id"
	CtxRoleKey        = "role"
	CtxSessionKey     = "session"
	CtxFranchiseIDKey = "franchise_id"
)

// SessionResolver: RequireAuth が使う最小限の依存
type SessionResolver interface {
	VerifyToken(token string) (string, error)
	Session(ctx context.Context, userID string) (*Session, error)
}

// RequireAuth: Authorization: Bearer <token> を検証し、DB から引き直したセッションを context に詰める
func RequireAuth(svc SessionResolver, log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if h == "" {
			apierr.Write(c, log, apierr.Unauthenticated("missing Authorization header"))
			return
		}

		parts := strings.SplitN(h, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			apierr.Write(c, log, apierr.Unauthenticated("invalid Authorization header"))
			return
		}

		tokenStr := strings.TrimSpace(parts[1])
		if tokenStr == "" {
			apierr.Write(c, log, apierr.Unauthenticated("empty token"))
			return
		}

		sub, err := svc.VerifyToken(tokenStr)
		if err != nil {
			apierr.Write(c, log, err)
			return
		}

		sess, err := svc.Session(c.Request.Context(), sub)
		if err != nil {
			apierr.Write(c, log, err)
			return
		}

		c.Set(CtxUserIDKey, sess.UserID)
		c.Set(CtxRoleKey, string(sess.Role))
		c.Set(CtxSessionKey, sess)
		c.Next()
	}
}

// RequireRole: 例) super_admin のみ許可したい時に追加
func RequireRole(roles ...Role) gin.HandlerFunc {
	roleSet := make(map[Role]struct{})
	for _, r := range roles {
		if r == "" {
			continue
		}
		roleSet[r] = struct{}{}
	}

	return func(c *gin.Context) {
		sess, ok := SessionFrom(c)
		if !ok {
			apierr.Write(c, nil, apierr.Forbidden("missing role"))
			return
		}

		if _, allowed := roleSet[sess.Role]; !allowed {
			apierr.Write(c, nil, apierr.Forbidden("forbidden"))
			return
		}

		c.Next()
	}
}

// RequireFranchiseAdmin: admin の担当フランチャイズをサーバ側で確定させる
func RequireFranchiseAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := SessionFrom(c)
		if !ok || sess.Role != RoleFranchiseAdmin {
			apierr.Write(c, nil, apierr.Forbidden("franchise admin only"))
			return
		}
		if sess.FranchiseID == "" {
			apierr.Write(c, nil, apierr.Forbidden("no franchise assigned to this admin"))
			return
		}
		c.Set(CtxFranchiseIDKey, sess.FranchiseID)
		c.Next()
	}
}

func SessionFrom(c *gin.Context) (*Session, bool) {
	v, ok := c.Get(CtxSessionKey)
	if !ok {
		return nil, false
	}
	sess, ok := v.(*Session)
	return sess, ok && sess != nil
}

func UserID(c *gin.Context) string {
	return c.GetString(CtxUserIDKey)
}

// FranchiseID: RequireFranchiseAdmin を通った後でのみ値が入る
func FranchiseID(c *gin.Context) string {
	return c.GetString(CtxFranchiseIDKey)
}
