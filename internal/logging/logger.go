// File: internal/logging/logger.go
package logging

import (
	"io"
	"os"

	"library-catalog/internal/config"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

const ContextLoggerKey = "logger"

const serviceName = "library-catalog"

// New 依設定建立結構化 logger
func New(cfg config.LogConfig, environment string) *logrus.Logger {
	return newWithOutput(cfg, environment, os.Stdout)
}

func newWithOutput(cfg config.LogConfig, environment string, out io.Writer) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(out)

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		logger.Warnf("無效的 LOG_LEVEL %q，改用 info", cfg.Level)
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if cfg.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime:  "ts",
				logrus.FieldKeyLevel: "level",
				logrus.FieldKeyMsg:   "msg",
			},
		})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
		})
	}

	logger.AddHook(&staticFieldsHook{fields: logrus.Fields{
		"service":     serviceName,
		"environment": environment,
	}})
	return logger
}

// staticFieldsHook 為每筆紀錄補上服務層級欄位
type staticFieldsHook struct {
	fields logrus.Fields
}

func (h *staticFieldsHook) Levels() []logrus.Level { return logrus.AllLevels }

func (h *staticFieldsHook) Fire(e *logrus.Entry) error {
	for k, v := range h.fields {
		if _, ok := e.Data[k]; !ok {
			e.Data[k] = v
		}
	}
	return nil
}

// FromContext 取得請求範圍的 logger，未設定時退回標準 logger
func FromContext(c echo.Context) *logrus.Entry {
	if entry, ok := c.Get(ContextLoggerKey).(*logrus.Entry); ok && entry != nil {
		return entry
	}
	return logrus.NewEntry(logrus.StandardLogger())
}

// WithRequest 加上 HTTP 請求欄位
func WithRequest(entry *logrus.Entry, method, route string, status int, latencyMs float64) *logrus.Entry {
	return entry.WithFields(logrus.Fields{
		"http": map[string]interface{}{
			"method": method,
			"route":  route,
			"status": status,
		},
		"latency_ms": latencyMs,
	})
}
