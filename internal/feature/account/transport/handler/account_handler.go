// Package handler はaccountフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"tuishare_backend/internal/feature/account/domain"
	"tuishare_backend/internal/feature/account/domain/entity"
	"tuishare_backend/internal/feature/account/transport/http/dto"
	jwtmw "tuishare_backend/internal/platform/jwt"
)

const msgInternal = "something went wrong, please try again"

// AccountUsecase はアカウント操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type AccountUsecase[T any] interface {
	Create(ctx context.Context, rec T, password string) (T, error)
	FindByKey(ctx context.Context, key string) (T, bool, error)
	Authenticate(ctx context.Context, key, password string) (T, error)
	Exists(ctx context.Context, key string) (bool, error)
}

// TokenIssuer はログイン成功時のアクセストークンを発行します。
type TokenIssuer interface {
	GenerateToken(accountID, kind, email string) (string, error)
}

// SignupRequest はサインアップDTOが満たすべき振る舞いです。
type SignupRequest[T any] interface {
	Record() T
	Secret() string
}

// AccountHandler は1種類のアカウントに対するHTTPリクエストを処理します。
// T はエンティティ、R はサインアップ用のリクエストDTOです。
type AccountHandler[T entity.Record[T], R SignupRequest[T]] struct {
	accounts AccountUsecase[T]
	tokens   TokenIssuer
	view     func(T) any
}

// NewAccountHandler はAccountHandlerの新しいインスタンスを生成します。
// view はレスポンスに載せる公開用の表現を作ります（パスワードハッシュを含めないこと）。
func NewAccountHandler[T entity.Record[T], R SignupRequest[T]](accounts AccountUsecase[T], tokens TokenIssuer, view func(T) any) *AccountHandler[T, R] {
	registerJSONTagNames()
	return &AccountHandler[T, R]{accounts: accounts, tokens: tokens, view: view}
}

func (h *AccountHandler[T, R]) kind() string {
	var zero T
	return zero.Kind().String()
}

// Signup はアカウント登録APIエンドポイントを処理します。
// - リクエストJSONをバインドし、バリデーションエラー時は400を返却
// - キー重複時は409を返却
// - 成功時は201を返却
func (h *AccountHandler[T, R]) Signup(c *gin.Context) {
	var req R
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("signup validation failed", "kind", h.kind(), "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, dto.Response{Message: bindErrorMessage(err)})
		return
	}

	rec, err := h.accounts.Create(c.Request.Context(), req.Record(), req.Secret())
	if err != nil {
		h.fail(c, "signup", err)
		return
	}

	slog.Info("account signup successful", "kind", h.kind(), "id", rec.Base().ID, "remote_addr", c.ClientIP())
	c.JSON(http.StatusCreated, dto.Response{
		Success: true,
		Message: h.kind() + " registered successfully",
		User:    h.view(rec),
	})
}

// Login はログインAPIエンドポイントを処理します。
// - 認証失敗時は、キーの有無にかかわらず同じ401を返却
// - 認証成功時はJWTトークン付きで200を返却
func (h *AccountHandler[T, R]) Login(c *gin.Context) {
	var req dto.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("login validation failed", "kind", h.kind(), "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, dto.Response{Message: bindErrorMessage(err)})
		return
	}

	key := entity.NormalizeKey(req.Email)
	rec, err := h.accounts.Authenticate(c.Request.Context(), key, req.Password)
	if err != nil {
		h.fail(c, "login", err)
		return
	}

	token, err := h.tokens.GenerateToken(rec.Base().ID, h.kind(), rec.Key())
	if err != nil {
		slog.Error("token generation failed", "kind", h.kind(), "error", err)
		c.JSON(http.StatusInternalServerError, dto.Response{Message: msgInternal})
		return
	}

	slog.Info("account login successful", "kind", h.kind(), "id", rec.Base().ID, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, dto.Response{
		Success: true,
		Message: "login successful",
		User:    h.view(rec),
		Token:   token,
	})
}

// Exists は ?email= で指定されたキーが登録済みかを返します。
func (h *AccountHandler[T, R]) Exists(c *gin.Context) {
	key := entity.NormalizeKey(c.Query("email"))
	if key == "" {
		c.JSON(http.StatusBadRequest, dto.Response{Message: "email is required"})
		return
	}

	ok, err := h.accounts.Exists(c.Request.Context(), key)
	if err != nil {
		h.fail(c, "exists", err)
		return
	}

	c.JSON(http.StatusOK, dto.Response{Success: true, Message: "ok", Exists: &ok})
}

// Me は認証済みアカウント自身のプロフィールを返します。
// AuthRequired ミドルウェアの後段で使用します。
func (h *AccountHandler[T, R]) Me(c *gin.Context) {
	claims, ok := jwtmw.ClaimsFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.Response{Message: "invalid token"})
		return
	}
	if claims.Kind != h.kind() {
		slog.Warn("token kind mismatch", "kind", h.kind(), "token_kind", claims.Kind, "remote_addr", c.ClientIP())
		c.JSON(http.StatusForbidden, dto.Response{Message: "token is not valid for this account type"})
		return
	}

	rec, found, err := h.accounts.FindByKey(c.Request.Context(), claims.Email)
	if err != nil {
		h.fail(c, "me", err)
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, dto.Response{Message: h.kind() + " not found"})
		return
	}

	c.JSON(http.StatusOK, dto.Response{Success: true, Message: "ok", User: h.view(rec)})
}

// fail はドメインエラーをHTTPステータスに変換して返却します。
func (h *AccountHandler[T, R]) fail(c *gin.Context, op string, err error) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		slog.Warn(op+" rejected", "kind", h.kind(), "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, dto.Response{Message: verr.Error()})
	case errors.Is(err, domain.ErrDuplicateKey):
		slog.Warn(op+" rejected", "kind", h.kind(), "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusConflict, dto.Response{Message: "an account with this email already exists"})
	case errors.Is(err, domain.ErrInvalidCredentials):
		// キーの有無を区別しない
		slog.Warn(op+" failed", "kind", h.kind(), "remote_addr", c.ClientIP())
		c.JSON(http.StatusUnauthorized, dto.Response{Message: "invalid email or password"})
	default:
		slog.Error(op+" failed", "kind", h.kind(), "error", err, "unavailable", errors.Is(err, domain.ErrUnavailable))
		c.JSON(http.StatusInternalServerError, dto.Response{Message: msgInternal})
	}
}
