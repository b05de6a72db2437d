package logging

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"library-catalog/internal/config"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := newWithOutput(config.LogConfig{Level: "debug", Format: "json"}, "test", &buf)
	require.Equal(t, logrus.DebugLevel, logger.GetLevel())

	logger.WithField("username", "alice").Info("logged in")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	require.Equal(t, "logged in", line["msg"])
	require.Equal(t, "info", line["level"])
	require.Equal(t, "library-catalog", line["service"])
	require.Equal(t, "test", line["environment"])
	require.Equal(t, "alice", line["username"])
	require.Contains(t, line, "ts")
}

func TestNewTextAndBadLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := newWithOutput(config.LogConfig{Level: "loud", Format: "text"}, "dev", &buf)
	require.Equal(t, logrus.InfoLevel, logger.GetLevel())
	require.Contains(t, buf.String(), "LOG_LEVEL")

	buf.Reset()
	logger.Debug("hidden")
	require.Empty(t, buf.String())
	logger.Warn("shown")
	require.Contains(t, buf.String(), "shown")
	require.Contains(t, buf.String(), "service=library-catalog")
}

func TestFromContext(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	require.NotNil(t, FromContext(c))

	entry := logrus.New().WithField("request_id", "abc")
	c.Set(ContextLoggerKey, entry)
	require.Same(t, entry, FromContext(c))

	withReq := WithRequest(entry, http.MethodGet, "/api/ping", 200, 1.5)
	require.Equal(t, 1.5, withReq.Data["latency_ms"])
	require.Equal(t, "abc", withReq.Data["request_id"])
}
