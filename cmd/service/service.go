// @title        Review Hub API
// @version      1.0
// @description  評論平台後端 API 文件
// @host         localhost:3000
// @BasePath     /api
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"review-hub/internal/apperr"
	"review-hub/internal/cache"
	"review-hub/internal/config"
	"review-hub/internal/database"
	"review-hub/internal/logger"
	"review-hub/internal/metrics"
	"review-hub/internal/router"
	"review-hub/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	_ "review-hub/docs" // 引入 swag 產出的 docs

	echoSwagger "github.com/swaggo/echo-swagger"
)

// CustomValidator wraps go-playground/validator for Echo
// swagger:ignore
type CustomValidator struct {
	validator *validator.Validate
}

// Validate calls the underlying validator
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

var (
	loadConfig      = config.Load
	newPgxPool      = database.NewPgxPool
	newRedisClient  = cache.NewRedisClient
	runMigrationsFn = database.RunMigrations
	startServer     = func(e *echo.Echo, addr string) error { return e.Start(addr) }
	exitFunc        = os.Exit
)

func newEcho(db database.DB, rdb cache.Cache, cfg *config.Config) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = &CustomValidator{validator: validator.New()}
	e.HTTPErrorHandler = apperr.HTTPErrorHandler

	m := metrics.New()
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(middleware.Logger())
	// metrics 包在 Recover 外層，panic 轉成的 500 也會被計入
	e.Use(m.Middleware())
	e.Use(middleware.Recover())

	router.Setup(e, db, rdb, service.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL))

	e.GET("/metrics", m.Handler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)
	return e
}

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("設定載入失敗: %w", err)
	}
	logger.Init(cfg.LogLevel, os.Stderr)
	for _, w := range cfg.Insecure() {
		logger.Warning(w)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := newPgxPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("DB 連線失敗: %w", err)
	}
	defer db.Close()
	if err := db.Ping(ctx); err != nil {
		return fmt.Errorf("DB 連線失敗: %w", err)
	}

	var rdb cache.Cache
	if cfg.RedisEnabled() {
		rdb, err = newRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return fmt.Errorf("Redis 連線失敗: %w", err)
		}
		defer rdb.Close()
	} else {
		logger.Warning("REDIS_ADDR is not set; logout will not revoke tokens")
	}

	if cfg.AutoMigrate {
		if err := runMigrationsFn(cfg.DatabaseURL); err != nil {
			return fmt.Errorf("Migration 執行失敗: %w", err)
		}
		logger.Info("migrations applied")
	}

	e := newEcho(db, rdb, cfg)
	logger.Infof("listening on :%s", cfg.Port)
	return startServer(e, ":"+cfg.Port)
}

func main() {
	if err := run(); err != nil {
		logger.Error(err)
		exitFunc(1)
	}
}
