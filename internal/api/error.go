// File: internal/api/error.go
package api

import (
	"library-catalog/internal/apperror"
	"library-catalog/internal/logging"

	"github.com/labstack/echo/v4"
)

// Error 將領域錯誤轉為 ErrorResponse；內部錯誤記錄原因後只回傳通用訊息
func Error(c echo.Context, err error) error {
	status := apperror.HTTPStatus(err)
	entry := logging.FromContext(c).WithError(err)
	if apperror.IsInternal(err) {
		entry.Error("request failed")
	} else {
		entry.WithField("code", apperror.CodeOf(err)).Info("request rejected")
	}
	return c.JSON(status, ErrorResponse{
		Code:    string(apperror.CodeOf(err)),
		Message: apperror.PublicMessage(err),
	})
}
