// File: internal/apperr/apperr.go
package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"review-hub/internal/logger"
	"review-hub/internal/service"
	"review-hub/internal/store"

	"github.com/labstack/echo/v4"
)

type Kind string

const (
	KindUnauthorized      Kind = "Unauthorized"
	KindInvalidToken      Kind = "InvalidToken"
	KindForbidden         Kind = "Forbidden"
	KindNotFound          Kind = "NotFound"
	KindDuplicateConflict Kind = "DuplicateConflict"
	KindValidation        Kind = "ValidationError"
	KindInternal          Kind = "Internal"
)

var statusByKind = map[Kind]int{
	KindUnauthorized:      http.StatusUnauthorized,
	KindInvalidToken:      http.StatusUnauthorized,
	KindForbidden:         http.StatusForbidden,
	KindNotFound:          http.StatusNotFound,
	KindDuplicateConflict: http.StatusBadRequest,
	KindValidation:        http.StatusBadRequest,
	KindInternal:          http.StatusInternalServerError,
}

// Response 全域錯誤回應模型
// swagger:model apperr.Response
type Response struct {
	Code    string `json:"code" example:"NotFound"`
	Message string `json:"message" example:"item not found"`
}

// Error 攜帶分類、給 client 的訊息與內部原因；Err 只寫 log，不回傳
type Error struct {
	Kind    Kind
	Message string
	Err     error
	status  int
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Status() int {
	if e.status != 0 {
		return e.status
	}
	if s, ok := statusByKind[e.Kind]; ok {
		return s
	}
	return http.StatusInternalServerError
}

func Unauthorized(msg string) *Error      { return &Error{Kind: KindUnauthorized, Message: msg} }
func InvalidToken(msg string) *Error      { return &Error{Kind: KindInvalidToken, Message: msg} }
func Forbidden(msg string) *Error         { return &Error{Kind: KindForbidden, Message: msg} }
func NotFound(msg string) *Error          { return &Error{Kind: KindNotFound, Message: msg} }
func DuplicateConflict(msg string) *Error { return &Error{Kind: KindDuplicateConflict, Message: msg} }
func Validation(msg string) *Error        { return &Error{Kind: KindValidation, Message: msg} }

// Internal 包裝非預期錯誤，client 只會看到通用訊息
func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Message: "internal server error", Err: err}
}

// From 把任意錯誤歸類；store 的哨兵錯誤轉為對應分類
func From(err error) *Error {
	var appErr *Error
	switch {
	case errors.As(err, &appErr):
		return appErr
	case errors.Is(err, store.ErrNotFound):
		return &Error{Kind: KindNotFound, Message: "resource not found", Err: err}
	case errors.Is(err, store.ErrDuplicate):
		return &Error{Kind: KindDuplicateConflict, Message: "resource already exists", Err: err}
	case errors.Is(err, service.ErrPasswordTooLong):
		return &Error{Kind: KindValidation, Message: service.ErrPasswordTooLong.Error(), Err: err}
	default:
		return Internal(err)
	}
}

// Write 輸出 JSON 錯誤並回傳 nil，handler 可直接 return
func Write(c echo.Context, err error) error {
	e := From(err)
	if e.Kind == KindInternal {
		logger.Errorf("%s %s: %v", c.Request().Method, c.Request().URL.Path, e.Err)
	}
	return c.JSON(e.Status(), Response{Code: string(e.Kind), Message: e.Message})
}

// HTTPErrorHandler 取代 echo 預設的錯誤處理，所有逃出 handler 的錯誤都用同一個格式
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		if inner, ok := he.Internal.(*Error); ok {
			err = inner
		} else {
			err = fromHTTPError(he)
		}
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(From(err).Status())
		return
	}
	if werr := Write(c, err); werr != nil {
		logger.Errorf("write error response: %v", werr)
	}
}

func fromHTTPError(he *echo.HTTPError) *Error {
	msg := http.StatusText(he.Code)
	if m, ok := he.Message.(string); ok && m != "" {
		msg = m
	}
	switch he.Code {
	case http.StatusUnauthorized:
		return Unauthorized(msg)
	case http.StatusForbidden:
		return Forbidden(msg)
	case http.StatusNotFound:
		return NotFound(msg)
	case http.StatusBadRequest, http.StatusUnsupportedMediaType, http.StatusRequestEntityTooLarge:
		return Validation(msg)
	}
	if he.Code < http.StatusInternalServerError {
		return &Error{Kind: Kind(strings.ReplaceAll(http.StatusText(he.Code), " ", "")), Message: msg, status: he.Code}
	}
	return Internal(he)
}
