// File: internal/config/config.go
package config

import (
	"fmt"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// ReadAccess 決定目錄讀取端點是否需要登入
type ReadAccess string

const (
	ReadAccessPublic        ReadAccess = "public"
	ReadAccessAuthenticated ReadAccess = "authenticated"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Auth     AuthConfig
	Catalog  CatalogConfig
	Log      LogConfig
}

type ServerConfig struct {
	Port        string `envconfig:"PORT" default:"8080"`
	Environment string `envconfig:"ENVIRONMENT" default:"development"`
	Debug       bool   `envconfig:"DEBUG" default:"false"`
}

type DatabaseConfig struct {
	URL         string `envconfig:"DATABASE_URL"`
	MigrateDown bool   `envconfig:"MIGRATE_DOWN" default:"false"` // 只退回所有 migration，不啟動服務
}

type RedisConfig struct {
	Addr     string        `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	Password string        `envconfig:"REDIS_PASSWORD" default:""`
	DB       int           `envconfig:"REDIS_DB" default:"0"`
	CacheTTL time.Duration `envconfig:"REDIS_CACHE_TTL" default:"5m"`
}

type AuthConfig struct {
	JWTSecret string        `envconfig:"JWT_SECRET"`
	TokenTTL  time.Duration `envconfig:"JWT_TTL" default:"30m"`
}

type CatalogConfig struct {
	ReadAccess ReadAccess `envconfig:"CATALOG_READ_ACCESS" default:"public"`
}

type LogConfig struct {
	Level  string `envconfig:"LOG_LEVEL" default:"info"`
	Format string `envconfig:"LOG_FORMAT" default:"json"`
}

// 測試可覆寫
var (
	loadDotEnv     = func() error { return godotenv.Load() }
	processEnvconf = envconfig.Process
)

// Load 先讀取 .env（可選），再以環境變數填入設定並驗證
func Load() (*Config, error) {
	// .env 不存在時直接使用既有環境變數
	_ = loadDotEnv()

	var cfg Config
	if err := processEnvconf("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL 未設定")
	}
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET 未設定")
	}
	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("無效的 JWT_TTL: %s", c.Auth.TokenTTL)
	}
	if port, err := strconv.Atoi(c.Server.Port); err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("無效的 PORT: %s", c.Server.Port)
	}
	if c.Redis.DB < 0 {
		return fmt.Errorf("無效的 REDIS_DB: %d", c.Redis.DB)
	}
	switch c.Catalog.ReadAccess {
	case ReadAccessPublic, ReadAccessAuthenticated:
	default:
		return fmt.Errorf("無效的 CATALOG_READ_ACCESS: %q", c.Catalog.ReadAccess)
	}
	return nil
}

// Addr 回傳 HTTP 監聽位址
func (c *Config) Addr() string {
	return ":" + c.Server.Port
}

// String 回傳遮蔽敏感欄位後的設定摘要
func (c *Config) String() string {
	return fmt.Sprintf("Config{Port: %s, Env: %s, Redis: %s/%d, TokenTTL: %s, ReadAccess: %s, JWT: ***}",
		c.Server.Port, c.Server.Environment, c.Redis.Addr, c.Redis.DB, c.Auth.TokenTTL, c.Catalog.ReadAccess)
}
