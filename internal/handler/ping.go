// File: internal/handler/ping.go
package handler

import (
	"net/http"
	"time"

	"library-catalog/internal/api"
	"library-catalog/internal/apperror"
	"library-catalog/internal/cache"
	"library-catalog/internal/database"
	"library-catalog/internal/logging"

	"github.com/labstack/echo/v4"
)

// PingResponse 健康檢查回應模型
// swagger:model PingResponse
type PingResponse struct {
	// 回應訊息
	Message string `json:"message" example:"pong"`
}

// PingHandler 健康檢查
// @Summary     Health Check
// @Description 回傳 pong，並檢查資料庫與快取連線是否正常
// @Tags        health
// @Produce     json
// @Success     200 {object} PingResponse
// @Failure     503 {object} api.ErrorResponse
// @Router      /ping [get]
func PingHandler(db database.DB, cch cache.Cache) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		if err := db.Ping(ctx); err != nil {
			logging.FromContext(c).WithError(err).Error("database ping failed")
			return c.JSON(http.StatusServiceUnavailable, api.ErrorResponse{Code: string(apperror.CodeInternal), Message: "database unhealthy"})
		}
		if err := cch.Set(ctx, "healthcheck", "ok", 10*time.Second).Err(); err != nil {
			logging.FromContext(c).WithError(err).Error("cache ping failed")
			return c.JSON(http.StatusServiceUnavailable, api.ErrorResponse{Code: string(apperror.CodeInternal), Message: "cache unhealthy"})
		}
		return c.JSON(http.StatusOK, PingResponse{Message: "pong"})
	}
}

// RootHandler 服務存活訊息
// @Summary     Liveness
// @Tags        health
// @Produce     json
// @Success     200 {object} PingResponse
// @Router      / [get]
func RootHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, PingResponse{Message: "Library Catalog API is up and running"})
	}
}
