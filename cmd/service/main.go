// File: cmd/service/main.go
// @title        Library Catalog API
// @version      1.0
// @description  圖書館館藏管理 API：註冊登入、JWT 驗證與館藏 CRUD
// @host         localhost:8080
// @BasePath     /api
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"library-catalog/internal/api"
	"library-catalog/internal/cache"
	"library-catalog/internal/config"
	"library-catalog/internal/database"
	"library-catalog/internal/logging"
	"library-catalog/internal/metrics"
	"library-catalog/internal/middleware"
	"library-catalog/internal/router"
	"library-catalog/internal/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"

	_ "library-catalog/docs" // 引入 swag 產出的 docs
)

const shutdownTimeout = 10 * time.Second

var (
	loadConfig      = config.Load
	newPgxPool      = database.NewPgxPool
	newRedisClient  = cache.NewRedisClient
	runMigrationsFn = database.RunMigrations
	rollbackFn      = database.RollbackAll
	startServer     = func(e *echo.Echo, addr string) error { return e.Start(addr) }
	exitFunc        = os.Exit
)

func newEcho(cfg *config.Config, logger *logrus.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Debug = cfg.Server.Debug
	e.Validator = api.NewValidator()
	e.HTTPErrorHandler = router.HTTPErrorHandler

	e.Use(echomw.RequestIDWithConfig(echomw.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(middleware.RequestLogger(logger))
	e.Use(echomw.Recover())
	e.Use(metrics.HTTPMetricsMiddleware())
	return e
}

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger := logging.New(cfg.Log, cfg.Server.Environment)
	logger.WithField("config", cfg.String()).Info("starting library catalog")
	metrics.Init()

	if cfg.Database.MigrateDown {
		if err := rollbackFn(cfg.Database.URL); err != nil {
			return fmt.Errorf("Migration 退回失敗: %w", err)
		}
		logger.Info("migrations rolled back")
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := newPgxPool(ctx, cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("DB 連線失敗: %w", err)
	}
	defer db.Close()

	rdb, err := newRedisClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		return fmt.Errorf("Redis 連線失敗: %w", err)
	}
	defer rdb.Close()

	if err := runMigrationsFn(cfg.Database.URL); err != nil {
		return fmt.Errorf("Migration 執行失敗: %w", err)
	}

	tokens, err := service.NewTokenManager(service.TokenConfig{Secret: cfg.Auth.JWTSecret, TTL: cfg.Auth.TokenTTL})
	if err != nil {
		return fmt.Errorf("token manager: %w", err)
	}

	e := newEcho(cfg, logger)
	router.Setup(e, router.Deps{
		DB:         db,
		Cache:      rdb,
		Tokens:     tokens,
		Catalog:    service.NewCatalog(db, rdb, cfg.Redis.CacheTTL, logger),
		ReadAccess: cfg.Catalog.ReadAccess,
	})

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := e.Shutdown(shutdownCtx); err != nil {
			logger.WithError(err).Error("shutdown failed")
		}
	}()

	logger.WithField("addr", cfg.Addr()).Info("http server listening")
	if err := startServer(e, cfg.Addr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func main() {
	if err := run(); err != nil {
		log.Print(err)
		exitFunc(1)
	}
}
