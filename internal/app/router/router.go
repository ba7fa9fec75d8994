// Package router はHTTPルーティングを定義します。
package router

import (
	"github.com/gin-gonic/gin"

	"tuishare_backend/internal/feature/account/domain/entity"
	accounthandler "tuishare_backend/internal/feature/account/transport/handler"
	"tuishare_backend/internal/feature/account/transport/http/dto"
	httphandler "tuishare_backend/internal/platform/http/handler"
	jwtmw "tuishare_backend/internal/platform/jwt"
)

// Handlers はルーターに登録するハンドラー一式です。
type Handlers struct {
	Students   *accounthandler.AccountHandler[*entity.Student, dto.StudentSignupReq]
	Schools    *accounthandler.AccountHandler[*entity.School, dto.SchoolSignupReq]
	Supporters *accounthandler.AccountHandler[*entity.Supporter, dto.SupporterSignupReq]
	Health     *httphandler.HealthHandler

	// LoginLimit はログイン試行を制限するミドルウェアです。nilの場合は制限しません。
	LoginLimit gin.HandlerFunc
}

// NewRouter はGinエンジンを生成し、全ルートを登録します。
func NewRouter(h Handlers, jwtSecret string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	// 導通確認用
	r.GET("/healthz", h.Health.Health)
	r.HEAD("/healthz", h.Health.Health)

	auth := jwtmw.AuthRequired(jwtSecret)
	limit := h.LoginLimit
	if limit == nil {
		limit = func(c *gin.Context) { c.Next() }
	}
	registerAccountRoutes(r.Group("/students"), h.Students, auth, limit)
	registerAccountRoutes(r.Group("/schools"), h.Schools, auth, limit)
	registerAccountRoutes(r.Group("/supporters"), h.Supporters, auth, limit)

	return r
}

// registerAccountRoutes は1種別分のルートを登録します。
// /me のみ JWT が必要です。/login は試行回数を制限します。
func registerAccountRoutes[T entity.Record[T], R accounthandler.SignupRequest[T]](g *gin.RouterGroup, h *accounthandler.AccountHandler[T, R], auth, limit gin.HandlerFunc) {
	// 新規登録
	g.POST("/signup", h.Signup)
	// ログイン（JWT 発行）
	g.POST("/login", limit, h.Login)
	// 登録済み確認
	g.GET("/exists", h.Exists)
	// 認証必須
	g.GET("/me", auth, h.Me)
}
