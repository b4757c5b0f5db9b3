// File: internal/router/router.go
package router

import (
	"github.com/labstack/echo/v4"

	"review-hub/internal/cache"
	"review-hub/internal/database"
	"review-hub/internal/handler"
	"review-hub/internal/handler/auth"
	"review-hub/internal/handler/comments"
	"review-hub/internal/handler/items"
	"review-hub/internal/handler/reviews"
	"review-hub/internal/handler/users"
	"review-hub/internal/middleware"
	"review-hub/internal/service"
)

// Setup 註冊所有路由與中介層；rdb 可為 nil
func Setup(e *echo.Echo, db database.DB, rdb cache.Cache, issuer *service.TokenIssuer) {
	guard := middleware.NewGuard(issuer, db, rdb)
	requireAuth := guard.RequireAuth

	api := e.Group("/api")

	// 健康檢查
	api.GET("/ping", handler.PingHandler(db, rdb))

	// 註冊、登入與目前使用者
	api.POST("/register", auth.RegisterHandler(db, issuer))
	api.POST("/login", auth.LoginHandler(db, issuer))
	api.POST("/logout", auth.LogoutHandler(rdb, issuer), requireAuth)
	api.GET("/aboutMe", auth.AboutMeHandler(), requireAuth)

	// 使用者：本人或管理員
	api.GET("/users", users.ListUsersHandler(db), requireAuth, middleware.RequireAdmin)
	api.GET("/users/:id", users.GetUserHandler(db), requireAuth)
	api.PUT("/users/:id", users.UpdateUserHandler(db), requireAuth)
	api.DELETE("/users/:id", users.DeleteUserHandler(db), requireAuth)
	api.GET("/users/:id/reviews", users.ListUserReviewsHandler(db), requireAuth)

	// 目錄（公開）
	api.GET("/categories", items.ListCategoriesHandler(db))
	api.GET("/items", items.ListItemsHandler(db))
	api.GET("/items/:id", items.GetItemHandler(db))
	api.GET("/search", items.SearchItemsHandler(db))

	// 評論
	api.GET("/items/:id/reviews", reviews.ListItemReviewsHandler(db))
	api.POST("/items/:id/reviews", reviews.CreateReviewHandler(db), requireAuth)
	api.PUT("/reviews/:id", reviews.UpdateReviewHandler(db), requireAuth)
	api.DELETE("/reviews/:id", reviews.DeleteReviewHandler(db), requireAuth)

	// 留言
	api.GET("/reviews/:id/comments", comments.ListReviewCommentsHandler(db))
	api.POST("/reviews/:id/comments", comments.CreateCommentHandler(db), requireAuth)
	api.PUT("/comments/:id", comments.UpdateCommentHandler(db), requireAuth)
	api.DELETE("/comments/:id", comments.DeleteCommentHandler(db), requireAuth)
}
