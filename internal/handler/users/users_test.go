package users

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"review-hub/internal/database"
	"review-hub/internal/handler/handlertest"
	"review-hub/internal/model"
	"review-hub/internal/service"
	"review-hub/internal/store"

	"github.com/stretchr/testify/require"
)

func restore() {
	hashPassword = service.HashPassword
	listUsers = store.ListUsers
	getUserByID = store.GetUserByID
	updateUser = store.UpdateUser
	deleteUser = store.DeleteUser
	listReviewsByUser = store.ListReviewsByUser
}

var (
	self  = &model.User{ID: 1}
	other = &model.User{ID: 2}
	admin = &model.User{ID: 9, IsAdmin: true}
)

func TestListUsersHandler(t *testing.T) {
	t.Cleanup(restore)
	e := handlertest.NewEcho()
	listUsers = func(context.Context, database.DB) ([]model.User, error) {
		return []model.User{{ID: 1}, {ID: 2}}, nil
	}
	ctx, rec := handlertest.NewCtx(e, http.MethodGet, "/api/users", "")
	require.NoError(t, ListUsersHandler(nil)(handlertest.AsUser(ctx, admin)))
	require.Equal(t, http.StatusOK, rec.Code)

	listUsers = func(context.Context, database.DB) ([]model.User, error) { return nil, errors.New("db") }
	ctx, rec = handlertest.NewCtx(e, http.MethodGet, "/api/users", "")
	require.NoError(t, ListUsersHandler(nil)(handlertest.AsUser(ctx, admin)))
	require.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestGetUserHandler(t *testing.T) {
	e := handlertest.NewEcho()

	t.Run("unauthenticated", func(t *testing.T) {
		ctx, rec := handlertest.NewCtx(e, http.MethodGet, "/api/users/1", "", "id", "1")
		require.NoError(t, GetUserHandler(nil)(ctx))
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("bad id", func(t *testing.T) {
		ctx, rec := handlertest.NewCtx(e, http.MethodGet, "/api/users/x", "", "id", "x")
		require.NoError(t, GetUserHandler(nil)(handlertest.AsUser(ctx, self)))
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("someone else", func(t *testing.T) {
		ctx, rec := handlertest.NewCtx(e, http.MethodGet, "/api/users/1", "", "id", "1")
		require.NoError(t, GetUserHandler(nil)(handlertest.AsUser(ctx, other)))
		require.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("admin, missing user", func(t *testing.T) {
		t.Cleanup(restore)
		getUserByID = func(context.Context, database.DB, int) (*model.User, error) {
			return nil, fmt.Errorf("GetUserByID: %w", store.ErrNotFound)
		}
		ctx, rec := handlertest.NewCtx(e, http.MethodGet, "/api/users/1", "", "id", "1")
		require.NoError(t, GetUserHandler(nil)(handlertest.AsUser(ctx, admin)))
		require.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("self", func(t *testing.T) {
		t.Cleanup(restore)
		getUserByID = func(_ context.Context, _ database.DB, id int) (*model.User, error) {
			return &model.User{ID: id, Email: "a@b.c", PasswordHash: "h"}, nil
		}
		ctx, rec := handlertest.NewCtx(e, http.MethodGet, "/api/users/1", "", "id", "1")
		require.NoError(t, GetUserHandler(nil)(handlertest.AsUser(ctx, self)))
		require.Equal(t, http.StatusOK, rec.Code)
		require.NotContains(t, rec.Body.String(), "password")
	})
}

func TestUpdateUserHandler(t *testing.T) {
	e := handlertest.NewEcho()

	t.Run("forbidden for others", func(t *testing.T) {
		ctx, rec := handlertest.NewCtx(e, http.MethodPut, "/api/users/1", `{"firstName":"X"}`, "id", "1")
		require.NoError(t, UpdateUserHandler(nil)(handlertest.AsUser(ctx, other)))
		require.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("non-admin cannot promote", func(t *testing.T) {
		ctx, rec := handlertest.NewCtx(e, http.MethodPut, "/api/users/1", `{"isAdmin":true}`, "id", "1")
		require.NoError(t, UpdateUserHandler(nil)(handlertest.AsUser(ctx, self)))
		require.Equal(t, http.StatusForbidden, rec.Code)
		require.Contains(t, rec.Body.String(), "isAdmin")
	})

	t.Run("admin can promote", func(t *testing.T) {
		t.Cleanup(restore)
		var got store.UserUpdate
		updateUser = func(_ context.Context, _ database.DB, id int, upd store.UserUpdate) (*model.User, error) {
			got = upd
			return &model.User{ID: id, IsAdmin: true}, nil
		}
		ctx, rec := handlertest.NewCtx(e, http.MethodPut, "/api/users/1", `{"isAdmin":true}`, "id", "1")
		require.NoError(t, UpdateUserHandler(nil)(handlertest.AsUser(ctx, admin)))
		require.Equal(t, http.StatusOK, rec.Code)
		require.True(t, *got.IsAdmin)
		require.Nil(t, got.FirstName)
	})

	t.Run("partial update rehashes password", func(t *testing.T) {
		t.Cleanup(restore)
		hashPassword = func(p string) (string, error) { return "hashed:" + p, nil }
		var got store.UserUpdate
		updateUser = func(_ context.Context, _ database.DB, id int, upd store.UserUpdate) (*model.User, error) {
			got = upd
			return &model.User{ID: id, FirstName: "Grace"}, nil
		}
		ctx, rec := handlertest.NewCtx(e, http.MethodPut, "/api/users/1", `{"firstName":"Grace","password":"newpass"}`, "id", "1")
		require.NoError(t, UpdateUserHandler(nil)(handlertest.AsUser(ctx, self)))
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "Grace", *got.FirstName)
		require.Equal(t, "hashed:newpass", *got.PasswordHash)
		require.Nil(t, got.LastName)
		require.Nil(t, got.Email)
		require.Nil(t, got.IsAdmin)
	})

	t.Run("multibyte password over 72 bytes", func(t *testing.T) {
		t.Cleanup(restore)
		updateUser = func(context.Context, database.DB, int, store.UserUpdate) (*model.User, error) {
			t.Fatal("update must not run")
			return nil, nil
		}
		body := `{"password":"` + strings.Repeat("密", 30) + `"}`
		ctx, rec := handlertest.NewCtx(e, http.MethodPut, "/api/users/1", body, "id", "1")
		require.NoError(t, UpdateUserHandler(nil)(handlertest.AsUser(ctx, self)))
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Contains(t, rec.Body.String(), `"code":"ValidationError"`)
	})

	t.Run("hash error", func(t *testing.T) {
		t.Cleanup(restore)
		hashPassword = func(string) (string, error) { return "", errors.New("hash") }
		ctx, rec := handlertest.NewCtx(e, http.MethodPut, "/api/users/1", `{"password":"newpass"}`, "id", "1")
		require.NoError(t, UpdateUserHandler(nil)(handlertest.AsUser(ctx, self)))
		require.Equal(t, http.StatusInternalServerError, rec.Code)
	})

	t.Run("duplicate email", func(t *testing.T) {
		t.Cleanup(restore)
		updateUser = func(context.Context, database.DB, int, store.UserUpdate) (*model.User, error) {
			return nil, fmt.Errorf("UpdateUser: %w", store.ErrDuplicate)
		}
		ctx, rec := handlertest.NewCtx(e, http.MethodPut, "/api/users/1", `{"email":"taken@x.io"}`, "id", "1")
		require.NoError(t, UpdateUserHandler(nil)(handlertest.AsUser(ctx, self)))
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Contains(t, rec.Body.String(), "DuplicateConflict")
	})

	t.Run("missing user", func(t *testing.T) {
		t.Cleanup(restore)
		updateUser = func(context.Context, database.DB, int, store.UserUpdate) (*model.User, error) {
			return nil, fmt.Errorf("UpdateUser: %w", store.ErrNotFound)
		}
		ctx, rec := handlertest.NewCtx(e, http.MethodPut, "/api/users/5", `{"firstName":"X"}`, "id", "5")
		require.NoError(t, UpdateUserHandler(nil)(handlertest.AsUser(ctx, admin)))
		require.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestDeleteUserHandler(t *testing.T) {
	e := handlertest.NewEcho()

	t.Run("forbidden", func(t *testing.T) {
		ctx, rec := handlertest.NewCtx(e, http.MethodDelete, "/api/users/1", "", "id", "1")
		require.NoError(t, DeleteUserHandler(nil)(handlertest.AsUser(ctx, other)))
		require.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("not found", func(t *testing.T) {
		t.Cleanup(restore)
		deleteUser = func(context.Context, database.DB, int) error { return fmt.Errorf("DeleteUser: %w", store.ErrNotFound) }
		ctx, rec := handlertest.NewCtx(e, http.MethodDelete, "/api/users/7", "", "id", "7")
		require.NoError(t, DeleteUserHandler(nil)(handlertest.AsUser(ctx, admin)))
		require.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("self", func(t *testing.T) {
		t.Cleanup(restore)
		deleted := 0
		deleteUser = func(_ context.Context, _ database.DB, id int) error { deleted = id; return nil }
		ctx, rec := handlertest.NewCtx(e, http.MethodDelete, "/api/users/1", "", "id", "1")
		require.NoError(t, DeleteUserHandler(nil)(handlertest.AsUser(ctx, self)))
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, 1, deleted)
	})
}

func TestListUserReviewsHandler(t *testing.T) {
	e := handlertest.NewEcho()

	ctx, rec := handlertest.NewCtx(e, http.MethodGet, "/api/users/1/reviews", "", "id", "1")
	require.NoError(t, ListUserReviewsHandler(nil)(handlertest.AsUser(ctx, other)))
	require.Equal(t, http.StatusForbidden, rec.Code)

	t.Cleanup(restore)
	listReviewsByUser = func(context.Context, database.DB, int) ([]model.Review, error) {
		return []model.Review{{ID: 1, Rating: 5, Item: &model.ItemSummary{ID: 3, Name: "Pizza Place"}}}, nil
	}
	ctx, rec = handlertest.NewCtx(e, http.MethodGet, "/api/users/1/reviews", "", "id", "1")
	require.NoError(t, ListUserReviewsHandler(nil)(handlertest.AsUser(ctx, self)))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"name":"Pizza Place"`)
}
