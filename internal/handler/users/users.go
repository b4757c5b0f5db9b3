// File: internal/handler/users/users.go
package users

import (
	"errors"
	"net/http"

	"review-hub/internal/api"
	"review-hub/internal/apperr"
	"review-hub/internal/database"
	"review-hub/internal/handler"
	"review-hub/internal/model"
	"review-hub/internal/service"
	"review-hub/internal/store"

	"github.com/labstack/echo/v4"
)

var (
	hashPassword      = service.HashPassword
	listUsers         = store.ListUsers
	getUserByID       = store.GetUserByID
	updateUser        = store.UpdateUser
	deleteUser        = store.DeleteUser
	listReviewsByUser = store.ListReviewsByUser
)

// target 解析 :id 並確認呼叫者是本人或管理員
func target(c echo.Context) (*model.User, int, error) {
	caller, err := handler.Caller(c)
	if err != nil {
		return nil, 0, err
	}
	id, err := handler.ParamID(c, "id")
	if err != nil {
		return nil, 0, err
	}
	if !service.CanModify(caller, id) {
		return nil, 0, apperr.Forbidden("not allowed to access this user")
	}
	return caller, id, nil
}

func userNotFound(err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return apperr.NotFound("user not found")
	}
	return err
}

// ListUsersHandler 列出所有使用者（管理員）
// @Summary     List users
// @Tags        users
// @Produce     json
// @Success     200 {array}  model.User
// @Failure     401 {object} apperr.Response
// @Failure     403 {object} apperr.Response
// @Security    ApiKeyAuth
// @Router      /users [get]
func ListUsersHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		list, err := listUsers(c.Request().Context(), db)
		if err != nil {
			return apperr.Write(c, err)
		}
		return c.JSON(http.StatusOK, list)
	}
}

// GetUserHandler 取得使用者（本人或管理員）
// @Summary     Get user
// @Tags        users
// @Produce     json
// @Param       id  path     int true "User ID"
// @Success     200 {object} model.User
// @Failure     403 {object} apperr.Response
// @Failure     404 {object} apperr.Response
// @Security    ApiKeyAuth
// @Router      /users/{id} [get]
func GetUserHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		_, id, err := target(c)
		if err != nil {
			return apperr.Write(c, err)
		}
		u, err := getUserByID(c.Request().Context(), db, id)
		if err != nil {
			return apperr.Write(c, userNotFound(err))
		}
		return c.JSON(http.StatusOK, u)
	}
}

// UpdateUserHandler 部分更新使用者
// @Summary     Update user
// @Description 省略的欄位不變更；password 會重新雜湊；只有管理員可以變更 isAdmin
// @Tags        users
// @Accept      json
// @Produce     json
// @Param       id   path     int                   true "User ID"
// @Param       body body     api.UpdateUserRequest true "更新欄位"
// @Success     200  {object} model.User
// @Failure     400  {object} apperr.Response
// @Failure     403  {object} apperr.Response
// @Failure     404  {object} apperr.Response
// @Security    ApiKeyAuth
// @Router      /users/{id} [put]
func UpdateUserHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		caller, id, err := target(c)
		if err != nil {
			return apperr.Write(c, err)
		}
		var req api.UpdateUserRequest
		if err := handler.BindAndValidate(c, &req); err != nil {
			return apperr.Write(c, err)
		}
		if req.IsAdmin != nil && !caller.IsAdmin {
			return apperr.Write(c, apperr.Forbidden("only admins may change isAdmin"))
		}

		upd := store.UserUpdate{
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Email:     req.Email,
			IsAdmin:   req.IsAdmin,
		}
		if req.Password != nil {
			hash, err := hashPassword(*req.Password)
			if err != nil {
				return apperr.Write(c, err)
			}
			upd.PasswordHash = &hash
		}

		u, err := updateUser(c.Request().Context(), db, id, upd)
		if err != nil {
			if errors.Is(err, store.ErrDuplicate) {
				return apperr.Write(c, apperr.DuplicateConflict("email already registered"))
			}
			return apperr.Write(c, userNotFound(err))
		}
		return c.JSON(http.StatusOK, u)
	}
}

// DeleteUserHandler 刪除使用者，評論與留言一併刪除
// @Summary     Delete user
// @Tags        users
// @Produce     json
// @Param       id  path     int true "User ID"
// @Success     200 {object} api.MessageResponse
// @Failure     403 {object} apperr.Response
// @Failure     404 {object} apperr.Response
// @Security    ApiKeyAuth
// @Router      /users/{id} [delete]
func DeleteUserHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		_, id, err := target(c)
		if err != nil {
			return apperr.Write(c, err)
		}
		if err := deleteUser(c.Request().Context(), db, id); err != nil {
			return apperr.Write(c, userNotFound(err))
		}
		return c.JSON(http.StatusOK, api.MessageResponse{Message: "user deleted"})
	}
}

// ListUserReviewsHandler 列出使用者的評論，附項目摘要
// @Summary     List a user's reviews
// @Tags        users
// @Produce     json
// @Param       id  path     int true "User ID"
// @Success     200 {array}  model.Review
// @Failure     403 {object} apperr.Response
// @Security    ApiKeyAuth
// @Router      /users/{id}/reviews [get]
func ListUserReviewsHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		_, id, err := target(c)
		if err != nil {
			return apperr.Write(c, err)
		}
		reviews, err := listReviewsByUser(c.Request().Context(), db, id)
		if err != nil {
			return apperr.Write(c, err)
		}
		return c.JSON(http.StatusOK, reviews)
	}
}
