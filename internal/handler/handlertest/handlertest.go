// Package handlertest 提供 handler 測試共用的 echo context 建構工具
package handlertest

import (
	"errors"
	"net/http/httptest"
	"strings"

	"review-hub/internal/middleware"
	"review-hub/internal/model"

	"github.com/labstack/echo/v4"
)

type StubValidator struct{ Err error }

func (s *StubValidator) Validate(i interface{}) error { return s.Err }

// ErrValidation 方便斷言驗證失敗訊息
var ErrValidation = errors.New("validation failed")

// NewEcho 回傳掛好 StubValidator 的 echo
func NewEcho() *echo.Echo {
	e := echo.New()
	e.Validator = &StubValidator{}
	return e
}

// NewCtx body 非空時以 JSON 送出；params 依序為 name, value
func NewCtx(e *echo.Echo, method, target, body string, params ...string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	var names, values []string
	for i := 0; i+1 < len(params); i += 2 {
		names = append(names, params[i])
		values = append(values, params[i+1])
	}
	if len(names) > 0 {
		c.SetParamNames(names...)
		c.SetParamValues(values...)
	}
	return c, rec
}

// AsUser 模擬通過 RequireAuth 的請求
func AsUser(c echo.Context, u *model.User) echo.Context {
	c.SetRequest(c.Request().WithContext(middleware.WithUser(c.Request().Context(), u)))
	return c
}
