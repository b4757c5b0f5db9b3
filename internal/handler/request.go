// File: internal/handler/request.go
package handler

import (
	"strconv"

	"review-hub/internal/apperr"
	"review-hub/internal/middleware"
	"review-hub/internal/model"

	"github.com/labstack/echo/v4"
)

// ParamID 讀取正整數路徑參數
func ParamID(c echo.Context, name string) (int, error) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		return 0, apperr.Validation("invalid " + name)
	}
	return id, nil
}

// Caller 取出 RequireAuth 載入的使用者
func Caller(c echo.Context) (*model.User, error) {
	u, ok := middleware.UserFromContext(c.Request().Context())
	if !ok {
		return nil, apperr.Unauthorized("missing token")
	}
	return u, nil
}

// BindAndValidate 綁定 JSON body 並以 echo 的 Validator 驗證
func BindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return apperr.Validation("invalid request body")
	}
	if err := c.Validate(req); err != nil {
		return apperr.Validation(err.Error())
	}
	return nil
}
