// File: internal/handler/auth/auth.go
package auth

import (
	"errors"
	"net/http"

	"review-hub/internal/api"
	"review-hub/internal/apperr"
	"review-hub/internal/cache"
	"review-hub/internal/database"
	"review-hub/internal/handler"
	"review-hub/internal/middleware"
	"review-hub/internal/model"
	"review-hub/internal/service"
	"review-hub/internal/store"

	"github.com/labstack/echo/v4"
)

var (
	hashPassword   = service.HashPassword
	verifyPassword = service.VerifyPassword
	createUser     = store.CreateUser
	getUserByEmail = store.GetUserByEmail
	revokeToken    = cache.RevokeToken
)

func issue(c echo.Context, issuer *service.TokenIssuer, status int, user *model.User) error {
	token, expiresAt, err := issuer.Issue(user.ID)
	if err != nil {
		return apperr.Write(c, err)
	}
	return c.JSON(status, api.AuthResponse{Token: token, ExpiresAt: expiresAt.Unix(), User: *user})
}

// RegisterHandler 建立帳號並直接登入
// @Summary     Register
// @Description 建立新帳號（Email 轉小寫），成功後回傳 token
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       body body     api.RegisterRequest true "註冊資料"
// @Success     201  {object} api.AuthResponse
// @Failure     400  {object} apperr.Response
// @Failure     500  {object} apperr.Response
// @Router      /register [post]
func RegisterHandler(db database.DB, issuer *service.TokenIssuer) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.RegisterRequest
		if err := handler.BindAndValidate(c, &req); err != nil {
			return apperr.Write(c, err)
		}
		ctx := c.Request().Context()

		// 預先檢查；並發時仍由 UNIQUE 約束擋下
		_, err := getUserByEmail(ctx, db, req.Email)
		if err == nil {
			return apperr.Write(c, apperr.DuplicateConflict("email already registered"))
		}
		if !errors.Is(err, store.ErrNotFound) {
			return apperr.Write(c, err)
		}

		hash, err := hashPassword(req.Password)
		if err != nil {
			return apperr.Write(c, err)
		}
		user, err := createUser(ctx, db, &model.User{
			FirstName:    req.FirstName,
			LastName:     req.LastName,
			Email:        req.Email,
			PasswordHash: hash,
		})
		if err != nil {
			if errors.Is(err, store.ErrDuplicate) {
				return apperr.Write(c, apperr.DuplicateConflict("email already registered"))
			}
			return apperr.Write(c, err)
		}
		return issue(c, issuer, http.StatusCreated, user)
	}
}

// LoginHandler 以 Email/Password 登入
// @Summary     Login
// @Description 帳號不存在回 404，密碼錯誤回 403
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       body body     api.LoginRequest true "登入資料"
// @Success     200  {object} api.AuthResponse
// @Failure     400  {object} apperr.Response
// @Failure     403  {object} apperr.Response
// @Failure     404  {object} apperr.Response
// @Router      /login [post]
func LoginHandler(db database.DB, issuer *service.TokenIssuer) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.LoginRequest
		if err := handler.BindAndValidate(c, &req); err != nil {
			return apperr.Write(c, err)
		}

		user, err := getUserByEmail(c.Request().Context(), db, req.Email)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return apperr.Write(c, apperr.NotFound("user not found"))
			}
			return apperr.Write(c, err)
		}
		if !verifyPassword(user.PasswordHash, req.Password) {
			return apperr.Write(c, apperr.Forbidden("invalid credentials"))
		}
		return issue(c, issuer, http.StatusOK, user)
	}
}

// LogoutHandler 撤銷目前的 token；未設定 Redis 時 token 會自然到期
// @Summary     Logout
// @Tags        auth
// @Produce     json
// @Success     200 {object} api.MessageResponse
// @Failure     401 {object} apperr.Response
// @Security    ApiKeyAuth
// @Router      /logout [post]
func LogoutHandler(rdb cache.Cache, issuer *service.TokenIssuer) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		token, ok := middleware.TokenFromContext(ctx)
		if !ok {
			return apperr.Write(c, apperr.Unauthorized("missing token"))
		}
		if rdb != nil {
			expiresAt, err := issuer.ExpiresAt(token)
			if err != nil {
				return apperr.Write(c, apperr.InvalidToken("invalid or expired token"))
			}
			if err := revokeToken(ctx, rdb, token, expiresAt); err != nil {
				return apperr.Write(c, err)
			}
		}
		return c.JSON(http.StatusOK, api.MessageResponse{Message: "logged out"})
	}
}

// AboutMeHandler 回傳目前登入者的資料
// @Summary     About me
// @Tags        auth
// @Produce     json
// @Success     200 {object} model.User
// @Failure     401 {object} apperr.Response
// @Security    ApiKeyAuth
// @Router      /aboutMe [get]
func AboutMeHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		user, err := handler.Caller(c)
		if err != nil {
			return apperr.Write(c, err)
		}
		return c.JSON(http.StatusOK, user)
	}
}
