// File: internal/api/validator.go
package api

import (
	"fmt"

	"library-catalog/internal/apperror"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// CustomValidator wraps go-playground/validator for Echo
// swagger:ignore
type CustomValidator struct {
	validator *validator.Validate
}

func NewValidator() *CustomValidator {
	return &CustomValidator{validator: validator.New()}
}

// Validate calls the underlying validator
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// BindAndValidate 綁定請求（JSON、form 或 query 依 Content-Type 決定）並驗證
// 失敗時回傳包裝 apperror.ErrValidation 的錯誤
func BindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		if he, ok := err.(*echo.HTTPError); ok {
			return fmt.Errorf("invalid request: %v: %w", he.Message, apperror.ErrValidation)
		}
		return fmt.Errorf("invalid request: %v: %w", err, apperror.ErrValidation)
	}
	if err := c.Validate(req); err != nil {
		return fmt.Errorf("%v: %w", err, apperror.ErrValidation)
	}
	return nil
}
