// File: internal/middleware/middleware.go
package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"library-catalog/internal/api"
	"library-catalog/internal/apperror"
	"library-catalog/internal/config"
	"library-catalog/internal/model"
	"library-catalog/internal/service"

	"github.com/labstack/echo/v4"
)

const ContextUserKey = "user"

func bearerToken(c echo.Context) (string, error) {
	authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
	if authHeader == "" {
		return "", fmt.Errorf("missing token: %w", apperror.ErrUnauthenticated)
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", fmt.Errorf("invalid authorization header format: %w", apperror.ErrUnauthenticated)
	}
	return strings.TrimSpace(parts[1]), nil
}

func authenticate(c echo.Context, verifier service.TokenVerifier, lookup service.UserLookup) (*model.User, error) {
	token, err := bearerToken(c)
	if err != nil {
		return nil, err
	}
	return service.ResolveCurrentUser(c.Request().Context(), verifier, lookup, token)
}

func unauthorized(c echo.Context, err error) error {
	if apperror.HTTPStatus(err) == http.StatusUnauthorized {
		c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")
	}
	return api.Error(c, err)
}

// RequireAuth 解析 bearer token 並將目前使用者放入 context
func RequireAuth(verifier service.TokenVerifier, lookup service.UserLookup) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, err := authenticate(c, verifier, lookup)
			if err != nil {
				return unauthorized(c, err)
			}
			c.Set(ContextUserKey, user)
			return next(c)
		}
	}
}

// RequireAdmin 僅允許 admin 角色
func RequireAdmin(verifier service.TokenVerifier, lookup service.UserLookup) echo.MiddlewareFunc {
	auth := RequireAuth(verifier, lookup)
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return auth(func(c echo.Context) error {
			if err := service.RequireRole(CurrentUser(c), model.RoleAdmin); err != nil {
				return api.Error(c, err)
			}
			return next(c)
		})
	}
}

// ReadAccess 依設定決定目錄讀取是否需要登入
func ReadAccess(mode config.ReadAccess, verifier service.TokenVerifier, lookup service.UserLookup) echo.MiddlewareFunc {
	if mode == config.ReadAccessAuthenticated {
		return RequireAuth(verifier, lookup)
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
}

// CurrentUser 取得 RequireAuth 放入的使用者，未登入時為 nil
func CurrentUser(c echo.Context) *model.User {
	user, _ := c.Get(ContextUserKey).(*model.User)
	return user
}
