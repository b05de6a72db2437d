// File: internal/middleware/request_logger.go
package middleware

import (
	"time"

	"library-catalog/internal/logging"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// RequestLogger 為每個請求建立帶 request_id 的 logger，結束時記錄狀態碼與耗時
func RequestLogger(logger *logrus.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			req := c.Request()

			entry := logger.WithField("request_id", c.Response().Header().Get(echo.HeaderXRequestID))
			c.Set(logging.ContextLoggerKey, entry)

			err := next(c)
			if err != nil {
				// 交給 HTTPErrorHandler 寫入回應，才能記錄最終狀態碼
				c.Error(err)
			}

			route := c.Path()
			if route == "" {
				route = req.URL.Path
			}
			latency := float64(time.Since(start).Microseconds()) / 1000
			logging.WithRequest(entry, req.Method, route, c.Response().Status, latency).Info("request completed")
			return nil
		}
	}
}
