// File: internal/handler/auth/me.go
package auth

import (
	"net/http"

	"library-catalog/internal/api"
	"library-catalog/internal/apperror"
	"library-catalog/internal/middleware"

	"github.com/labstack/echo/v4"
)

// MeHandler 取得目前登入者資料
// @Summary     取得目前使用者
// @Tags        auth
// @Produce     json
// @Success     200 {object} api.UserResponse
// @Failure     401 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /auth/me [get]
func MeHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		user := middleware.CurrentUser(c)
		if user == nil {
			return api.Error(c, apperror.ErrUnauthenticated)
		}
		return c.JSON(http.StatusOK, api.NewUserResponse(user))
	}
}
