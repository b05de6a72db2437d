// File: internal/handler/auth/login.go
package auth

import (
	"errors"
	"net/http"

	"library-catalog/internal/api"
	"library-catalog/internal/apperror"
	"library-catalog/internal/database"
	"library-catalog/internal/logging"
	"library-catalog/internal/metrics"
	"library-catalog/internal/service"

	"github.com/labstack/echo/v4"
)

// LoginHandler 使用 Username/Password 驗證並回傳 JWT
// @Summary     登入使用者
// @Description 使用 Username 與 Password 進行驗證，回傳存取令牌與到期時間
// @Tags        auth
// @Accept      application/x-www-form-urlencoded
// @Accept      json
// @Produce     json
// @Param       username formData string true "使用者名稱"
// @Param       password formData string true "使用者密碼"
// @Success     200      {object} api.TokenResponse
// @Failure     400      {object} api.ErrorResponse
// @Failure     401      {object} api.ErrorResponse
// @Failure     500      {object} api.ErrorResponse
// @Router      /auth/login [post]
func LoginHandler(db database.DB, tokens TokenIssuer) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.LoginRequest
		if err := api.BindAndValidate(c, &req); err != nil {
			return api.Error(c, err)
		}

		user, err := authenticate(c.Request().Context(), storeUserLookup(db), req.Username, req.Password)
		if err != nil {
			if errors.Is(err, apperror.ErrInvalidCredentials) {
				metrics.RecordAuthAttempt("login", "failure")
				// 失敗原因只寫入紀錄
				logging.FromContext(c).WithError(err).Warn("login failed")
				c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")
				return c.JSON(http.StatusUnauthorized, api.ErrorResponse{
					Code:    string(apperror.CodeInvalidCredentials),
					Message: apperror.ErrInvalidCredentials.Error(),
				})
			}
			return api.Error(c, err)
		}

		claims := service.TokenClaims{Role: user.Role}
		claims.Subject = user.Username
		resp, err := issueToken(tokens, claims)
		if err != nil {
			return api.Error(c, err)
		}

		metrics.RecordAuthAttempt("login", "success")
		return c.JSON(http.StatusOK, resp)
	}
}
