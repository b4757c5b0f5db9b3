// Package config 載入服務設定：.env、config.yml 與環境變數
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DevJWTSecret 只在未設定 JWT_SECRET 時使用，啟動時會警告
const DevJWTSecret = "review-hub-dev-secret-change-me"

// DefaultPort 未設定 PORT 時的監聽埠
const DefaultPort = "3000"

type Config struct {
	Port          string        `mapstructure:"PORT"`
	JWTSecret     string        `mapstructure:"JWT_SECRET"`
	TokenTTL      time.Duration `mapstructure:"TOKEN_TTL"`
	DatabaseURL   string        `mapstructure:"DATABASE_URL"`
	RedisAddr     string        `mapstructure:"REDIS_ADDR"`
	RedisPassword string        `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int           `mapstructure:"REDIS_DB"`
	AutoMigrate   bool          `mapstructure:"AUTO_MIGRATE"`
	LogLevel      string        `mapstructure:"LOG_LEVEL"`
}

// 測試可覆寫
var loadDotenv = func() error { return godotenv.Load() }

// Load 依序讀取 .env（可無）、工作目錄下的 config.yml（可無）與環境變數
func Load() (*Config, error) {
	_ = loadDotenv()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yml")
	v.AddConfigPath(".")
	v.AutomaticEnv()

	v.SetDefault("PORT", DefaultPort)
	v.SetDefault("JWT_SECRET", DevJWTSecret)
	v.SetDefault("TOKEN_TTL", "8h")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("AUTO_MIGRATE", true)
	v.SetDefault("LOG_LEVEL", "info")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config.yml: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return errors.New("DATABASE_URL is required")
	}
	if c.Port == "" {
		return errors.New("PORT is required")
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("TOKEN_TTL must be positive, got %s", c.TokenTTL)
	}
	return nil
}

// Insecure 列出啟動時應該警告的設定
func (c *Config) Insecure() []string {
	var warnings []string
	if c.JWTSecret == "" || c.JWTSecret == DevJWTSecret {
		warnings = append(warnings, "JWT_SECRET is not set; using the built-in development secret")
	}
	if c.Port == DefaultPort {
		warnings = append(warnings, "PORT is not set; listening on the default port "+DefaultPort)
	}
	return warnings
}

// RedisEnabled 為 false 時服務不連 Redis，登出也不會撤銷 token
func (c *Config) RedisEnabled() bool { return c.RedisAddr != "" }
