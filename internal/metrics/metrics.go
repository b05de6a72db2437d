// File: internal/metrics/metrics.go
package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_server_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status_code"},
	)

	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_server_requests_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status_code"},
	)

	authAttemptsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_attempts_total",
			Help: "Registration and login attempts by outcome",
		},
		[]string{"operation", "result"}, // register/login, success/failure
	)

	catalogCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_item_cache_total",
			Help: "Library item cache lookups by result",
		},
		[]string{"result"}, // hit/miss/error
	)

	registerOnce sync.Once
)

// Init 將所有指標註冊到預設 registry，可重複呼叫
func Init() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			httpRequestsTotal,
			httpRequestDuration,
			authAttemptsTotal,
			catalogCacheTotal,
		)
	})
}

// HTTPMetricsMiddleware 記錄每個請求的次數與耗時
func HTTPMetricsMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			status := c.Response().Status
			if err != nil {
				if he, ok := err.(*echo.HTTPError); ok {
					status = he.Code
				}
			}
			route := c.Path()
			if route == "" {
				route = c.Request().URL.Path
			}
			code := strconv.Itoa(status)
			method := c.Request().Method

			httpRequestsTotal.WithLabelValues(method, route, code).Inc()
			httpRequestDuration.WithLabelValues(method, route, code).Observe(time.Since(start).Seconds())
			return err
		}
	}
}

// RecordAuthAttempt 記錄註冊或登入結果
func RecordAuthAttempt(operation, result string) {
	authAttemptsTotal.WithLabelValues(operation, result).Inc()
}

// RecordCacheLookup 記錄目錄快取查詢結果
func RecordCacheLookup(result string) {
	catalogCacheTotal.WithLabelValues(result).Inc()
}

// Handler 回傳 Prometheus 輸出端點
func Handler() echo.HandlerFunc {
	return echo.WrapHandler(promhttp.Handler())
}
