// Package authtest はハンドラのテストで RequireAuth を通った状態を作る。
package authtest

import (
	"github.com/gin-gonic/gin"

	"aais-kitchen-backend/internal/platform/auth"
)

// As: sess をログイン済みセッションとして context に詰める
func As(sess auth.Session) gin.HandlerFunc {
	return func(c *gin.Context) {
		s := sess
		c.Set(auth.CtxUserIDKey, s.UserID)
		c.Set(auth.CtxRoleKey, string(s.Role))
		c.Set(auth.CtxSessionKey, &s)
		if s.Role == auth.RoleFranchiseAdmin && s.FranchiseID != "" {
			c.Set(auth.CtxFranchiseIDKey, s.FranchiseID)
		}
		c.Next()
	}
}

func Member(userID, franchiseID string) gin.HandlerFunc {
	return As(auth.Session{UserID: userID, Role: auth.RoleMessMember, FranchiseID: franchiseID})
}

func Admin(userID, franchiseID string) gin.HandlerFunc {
	return As(auth.Session{UserID: userID, Role: auth.RoleFranchiseAdmin, FranchiseID: franchiseID})
}
