package httpx

import "github.com/gin-gonic/gin"

// Routes: 機能パッケージに渡すルートグループ。
// Member / Admin は Authed の下にロールのミドルウェアを足したもの
type Routes struct {
	Public gin.IRouter // 認証なし
	Authed gin.IRouter // RequireAuth のみ
	Member gin.IRouter // mess_member
	Admin  gin.IRouter // franchise_admin（担当フランチャイズ確定済み）
}

// NewRoutes: テストでは全部同じエンジンに向けることが多い
func NewRoutes(public, authed, member, admin gin.IRouter) Routes {
	return Routes{Public: public, Authed: authed, Member: member, Admin: admin}
}
