// File: internal/handler/ping.go
package handler

import (
	"net/http"

	"review-hub/internal/apperr"
	"review-hub/internal/cache"
	"review-hub/internal/database"
	"review-hub/internal/logger"

	"github.com/labstack/echo/v4"
)

// PingResponse 健康檢查回應模型
// swagger:model PingResponse
type PingResponse struct {
	// 回應訊息
	Message string `json:"message" example:"pong"`
	// Redis 未設定時為 disabled
	Cache string `json:"cache" example:"ok"`
}

// PingHandler 健康檢查
// @Summary     Health Check
// @Description 回傳 pong，並檢查資料庫與 Redis（若有設定）連線是否正常
// @Tags        health
// @Produce     json
// @Success     200 {object} PingResponse
// @Failure     500 {object} apperr.Response
// @Router      /ping [get]
func PingHandler(db database.DB, rdb cache.Cache) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		if err := db.Ping(ctx); err != nil {
			logger.Warningf("ping: database: %v", err)
			return apperr.Write(c, &apperr.Error{Kind: apperr.KindInternal, Message: "database unhealthy", Err: err})
		}
		status := "disabled"
		if rdb != nil {
			if err := rdb.Ping(ctx).Err(); err != nil {
				logger.Warningf("ping: cache: %v", err)
				return apperr.Write(c, &apperr.Error{Kind: apperr.KindInternal, Message: "cache unhealthy", Err: err})
			}
			status = "ok"
		}
		return c.JSON(http.StatusOK, PingResponse{Message: "pong", Cache: status})
	}
}
