// File: internal/handler/auth/register.go
package auth

import (
	"fmt"
	"net/http"

	"library-catalog/internal/api"
	"library-catalog/internal/apperror"
	"library-catalog/internal/database"
	"library-catalog/internal/logging"
	"library-catalog/internal/metrics"
	"library-catalog/internal/model"
	"library-catalog/internal/service"

	"github.com/labstack/echo/v4"
)

// RegisterHandler 註冊新使用者並直接回傳存取令牌
// @Summary     註冊使用者
// @Description 建立帳號（username 與 email 皆不可重複），成功後回傳存取令牌
// @Tags        auth
// @Accept      json
// @Accept      application/x-www-form-urlencoded
// @Produce     json
// @Param       body body     api.RegisterRequest true "註冊資料"
// @Success     201  {object} api.TokenResponse
// @Failure     400  {object} api.ErrorResponse
// @Failure     409  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Router      /auth/register [post]
func RegisterHandler(db database.DB, tokens TokenIssuer) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.RegisterRequest
		if err := api.BindAndValidate(c, &req); err != nil {
			return api.Error(c, err)
		}
		role, err := model.ParseRole(req.Role)
		if err != nil {
			return api.Error(c, fmt.Errorf("%v: %w", err, apperror.ErrValidation))
		}

		u, err := newUser(req.Username, req.Email, req.Password, role)
		if err != nil {
			return api.Error(c, err)
		}
		u, err = createUser(c.Request().Context(), db, u)
		if err != nil {
			metrics.RecordAuthAttempt("register", "failure")
			return api.Error(c, err)
		}

		claims := service.TokenClaims{Role: u.Role}
		claims.Subject = u.Username
		resp, err := issueToken(tokens, claims)
		if err != nil {
			return api.Error(c, err)
		}

		metrics.RecordAuthAttempt("register", "success")
		logging.FromContext(c).WithField("user_id", u.ID).Info("user registered")
		return c.JSON(http.StatusCreated, resp)
	}
}
