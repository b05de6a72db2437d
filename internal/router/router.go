// File: internal/router/router.go
package router

import (
	"errors"
	"fmt"
	"net/http"

	"library-catalog/internal/api"
	"library-catalog/internal/apperror"
	"library-catalog/internal/cache"
	"library-catalog/internal/config"
	"library-catalog/internal/database"
	"library-catalog/internal/handler"
	"library-catalog/internal/handler/auth"
	"library-catalog/internal/handler/items"
	"library-catalog/internal/logging"
	"library-catalog/internal/metrics"
	"library-catalog/internal/middleware"
	"library-catalog/internal/service"

	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// Deps 路由所需的共用元件
type Deps struct {
	DB         database.DB
	Cache      cache.Cache
	Tokens     *service.TokenManager
	Catalog    items.Catalog
	ReadAccess config.ReadAccess
}

// Setup 註冊所有路由與中介層
func Setup(e *echo.Echo, d Deps) {
	lookup := service.StoreUserLookup(d.DB)
	requireAuth := middleware.RequireAuth(d.Tokens, lookup)
	requireAdmin := middleware.RequireAdmin(d.Tokens, lookup)
	readAccess := middleware.ReadAccess(d.ReadAccess, d.Tokens, lookup)

	e.GET("/", handler.RootHandler())
	e.GET("/metrics", metrics.Handler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	apiGroup := e.Group("/api")

	// 健康檢查
	apiGroup.GET("/ping", handler.PingHandler(d.DB, d.Cache))

	// 註冊、登入與目前使用者
	apiGroup.POST("/auth/register", auth.RegisterHandler(d.DB, d.Tokens))
	apiGroup.POST("/auth/login", auth.LoginHandler(d.DB, d.Tokens))
	apiGroup.GET("/auth/me", auth.MeHandler(), requireAuth)

	// 館藏：讀取依設定開放，異動限管理員
	libraryItems := apiGroup.Group("/library_items")
	libraryItems.GET("", items.ListHandler(d.Catalog), readAccess)
	libraryItems.GET("/:item_id", items.GetHandler(d.Catalog), readAccess)
	libraryItems.POST("", items.CreateHandler(d.Catalog), requireAdmin)
	libraryItems.PUT("/:item_id", items.UpdateHandler(d.Catalog), requireAdmin)
	libraryItems.DELETE("/:item_id", items.DeleteHandler(d.Catalog), requireAdmin)
}

// HTTPErrorHandler 將未處理的錯誤統一輸出為 api.ErrorResponse
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		code := apperror.CodeInternal
		switch he.Code {
		case http.StatusNotFound:
			code = apperror.CodeNotFound
		case http.StatusUnauthorized:
			code = apperror.CodeUnauthenticated
		case http.StatusForbidden:
			code = apperror.CodeForbidden
		default:
			if he.Code < http.StatusInternalServerError {
				code = apperror.CodeBadRequest
			}
		}
		msg := http.StatusText(he.Code)
		if he.Code < http.StatusInternalServerError {
			msg = fmt.Sprint(he.Message)
		} else {
			logging.FromContext(c).WithError(err).Error("request failed")
		}
		if writeErr := c.JSON(he.Code, api.ErrorResponse{Code: string(code), Message: msg}); writeErr != nil {
			logging.FromContext(c).WithError(writeErr).Error("write error response")
		}
		return
	}

	if writeErr := api.Error(c, err); writeErr != nil {
		logging.FromContext(c).WithError(writeErr).Error("write error response")
	}
}
