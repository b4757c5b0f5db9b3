package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"review-hub/internal/service"
	"review-hub/internal/store"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

func newCtx(method string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, "/x", nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestStatus(t *testing.T) {
	cases := map[*Error]int{
		Unauthorized("u"):      http.StatusUnauthorized,
		InvalidToken("t"):      http.StatusUnauthorized,
		Forbidden("f"):         http.StatusForbidden,
		NotFound("n"):          http.StatusNotFound,
		DuplicateConflict("d"): http.StatusBadRequest,
		Validation("v"):        http.StatusBadRequest,
		Internal(nil):          http.StatusInternalServerError,
	}
	for e, status := range cases {
		require.Equal(t, status, e.Status(), string(e.Kind))
	}
}

func TestFrom(t *testing.T) {
	require.Equal(t, KindForbidden, From(fmt.Errorf("wrap: %w", Forbidden("no"))).Kind)
	require.Equal(t, KindNotFound, From(fmt.Errorf("GetItemByID: %w", store.ErrNotFound)).Kind)
	require.Equal(t, KindDuplicateConflict, From(fmt.Errorf("CreateReview: %w", store.ErrDuplicate)).Kind)

	tooLong := From(service.ErrPasswordTooLong)
	require.Equal(t, KindValidation, tooLong.Kind)
	require.Equal(t, http.StatusBadRequest, tooLong.Status())

	e := From(errors.New("connection reset"))
	require.Equal(t, KindInternal, e.Kind)
	require.Equal(t, "internal server error", e.Message)
	require.ErrorContains(t, e, "connection reset")
}

func TestWrite(t *testing.T) {
	t.Run("typed", func(t *testing.T) {
		c, rec := newCtx(http.MethodGet)
		require.NoError(t, Write(c, DuplicateConflict("review already exists")))
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.JSONEq(t, `{"code":"DuplicateConflict","message":"review already exists"}`, rec.Body.String())
	})

	t.Run("internal hides cause", func(t *testing.T) {
		c, rec := newCtx(http.MethodGet)
		require.NoError(t, Write(c, errors.New("password=hunter2")))
		require.Equal(t, http.StatusInternalServerError, rec.Code)
		require.NotContains(t, rec.Body.String(), "hunter2")
		require.Contains(t, rec.Body.String(), `"code":"Internal"`)
	})
}

func TestHTTPErrorHandler(t *testing.T) {
	t.Run("app error", func(t *testing.T) {
		c, rec := newCtx(http.MethodGet)
		HTTPErrorHandler(InvalidToken("token expired"), c)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.JSONEq(t, `{"code":"InvalidToken","message":"token expired"}`, rec.Body.String())
	})

	t.Run("echo not found", func(t *testing.T) {
		c, rec := newCtx(http.MethodGet)
		HTTPErrorHandler(echo.ErrNotFound, c)
		require.Equal(t, http.StatusNotFound, rec.Code)
		require.Contains(t, rec.Body.String(), `"code":"NotFound"`)
	})

	t.Run("echo method not allowed keeps status", func(t *testing.T) {
		c, rec := newCtx(http.MethodGet)
		HTTPErrorHandler(echo.ErrMethodNotAllowed, c)
		require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
		require.Contains(t, rec.Body.String(), `"code":"MethodNotAllowed"`)
	})

	t.Run("wrapped app error", func(t *testing.T) {
		c, rec := newCtx(http.MethodGet)
		HTTPErrorHandler(echo.NewHTTPError(http.StatusTeapot).SetInternal(Forbidden("admin only")), c)
		require.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("plain error", func(t *testing.T) {
		c, rec := newCtx(http.MethodGet)
		HTTPErrorHandler(errors.New("boom"), c)
		require.Equal(t, http.StatusInternalServerError, rec.Code)
		require.NotContains(t, rec.Body.String(), "boom")
	})

	t.Run("head", func(t *testing.T) {
		c, rec := newCtx(http.MethodHead)
		HTTPErrorHandler(NotFound("x"), c)
		require.Equal(t, http.StatusNotFound, rec.Code)
		require.Empty(t, rec.Body.String())
	})

	t.Run("committed", func(t *testing.T) {
		c, rec := newCtx(http.MethodGet)
		require.NoError(t, c.String(http.StatusOK, "done"))
		HTTPErrorHandler(NotFound("x"), c)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "done", rec.Body.String())
	})
}
