package middleware

import (
	"context"
	"errors"
	"strings"

	"review-hub/internal/apperr"
	"review-hub/internal/cache"
	"review-hub/internal/database"
	"review-hub/internal/logger"
	"review-hub/internal/model"
	"review-hub/internal/service"
	"review-hub/internal/store"

	"github.com/labstack/echo/v4"
)

type ctxKey int

const (
	userKey ctxKey = iota
	tokenKey
)

var (
	getUserByID = store.GetUserByID
	isRevoked   = cache.IsRevoked
)

// WithUser 把呼叫者放進 request context
func WithUser(ctx context.Context, u *model.User) context.Context {
	return context.WithValue(ctx, userKey, u)
}

// UserFromContext 取出 RequireAuth 放入的呼叫者
func UserFromContext(ctx context.Context) (*model.User, bool) {
	u, ok := ctx.Value(userKey).(*model.User)
	return u, ok && u != nil
}

// WithToken 記錄本次請求使用的 bearer token
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey, token)
}

// TokenFromContext 取出本次請求使用的 bearer token（登出時用）
func TokenFromContext(ctx context.Context) (string, bool) {
	t, ok := ctx.Value(tokenKey).(string)
	return t, ok && t != ""
}

func bearerToken(c echo.Context) (string, error) {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if header == "" {
		return "", apperr.Unauthorized("missing token")
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", apperr.Unauthorized("invalid authorization header format")
	}
	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", apperr.Unauthorized("missing token")
	}
	return token, nil
}

// Guard 解析 bearer token 並載入呼叫者；rdb 為 nil 時不檢查登出黑名單
type Guard struct {
	issuer *service.TokenIssuer
	db     database.DB
	rdb    cache.Cache
}

func NewGuard(issuer *service.TokenIssuer, db database.DB, rdb cache.Cache) *Guard {
	return &Guard{issuer: issuer, db: db, rdb: rdb}
}

func (g *Guard) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token, err := bearerToken(c)
		if err != nil {
			return err
		}
		userID, err := g.issuer.Verify(token)
		if err != nil {
			return apperr.InvalidToken("invalid or expired token")
		}

		ctx := c.Request().Context()
		if g.rdb != nil {
			revoked, err := isRevoked(ctx, g.rdb, token)
			if err != nil {
				return apperr.Internal(err)
			}
			if revoked {
				return apperr.InvalidToken("token has been revoked")
			}
		}

		user, err := getUserByID(ctx, g.db, userID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				// token 有效但帳號已刪除
				logger.Debugf("token for deleted user %d", userID)
				return apperr.Unauthorized("user no longer exists")
			}
			return apperr.Internal(err)
		}

		ctx = WithUser(ctx, user)
		ctx = WithToken(ctx, token)
		c.SetRequest(c.Request().WithContext(ctx))
		return next(c)
	}
}

// RequireAdmin 必須放在 RequireAuth 之後
func RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, ok := UserFromContext(c.Request().Context())
		if !ok {
			return apperr.Unauthorized("missing token")
		}
		if !user.IsAdmin {
			return apperr.Forbidden("admin privileges required")
		}
		return next(c)
	}
}
