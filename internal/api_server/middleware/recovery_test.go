package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecoveryMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("RecoversFromPanicAndLogs", func(t *testing.T) {
		var logBuffer bytes.Buffer
		testLogger := slog.New(slog.NewJSONHandler(&logBuffer, &slog.HandlerOptions{Level: slog.LevelError}))

		router := gin.New()
		router.Use(CorrelationID())
		router.Use(Recovery(testLogger))
		router.GET("/api/v1/panic", func(c *gin.Context) {
			panic("test panic")
		})

		req, _ := http.NewRequest(http.MethodGet, "/api/v1/panic", nil)
		req.Header.Set(CorrelationIDHeader, "corr-1")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusInternalServerError, rr.Code)

		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
		errorField, ok := body["error"].(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, "INTERNAL_SERVER_ERROR", errorField["code"])
		assert.Equal(t, "corr-1", body["correlation_id"])

		logOutput := logBuffer.String()
		assert.Contains(t, logOutput, `"msg":"Panic recovered"`)
		assert.Contains(t, logOutput, `"error":"test panic"`)
		assert.Contains(t, logOutput, `"stack":`)
	})

	t.Run("PagesGetHTML", func(t *testing.T) {
		router := gin.New()
		router.Use(Recovery(slog.New(slog.NewJSONHandler(&bytes.Buffer{}, nil))))
		router.GET("/views/lists", func(c *gin.Context) {
			panic("boom")
		})

		req, _ := http.NewRequest(http.MethodGet, "/views/lists", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.Contains(t, rr.Header().Get("Content-Type"), "text/html")
		assert.Contains(t, rr.Body.String(), `dir="rtl"`)
	})

	t.Run("NoPanicNoEffect", func(t *testing.T) {
		var logBuffer bytes.Buffer
		router := gin.New()
		router.Use(Recovery(slog.New(slog.NewJSONHandler(&logBuffer, nil))))
		router.GET("/no_panic", func(c *gin.Context) {
			c.String(http.StatusOK, "OK")
		})

		req, _ := http.NewRequest(http.MethodGet, "/no_panic", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Empty(t, logBuffer.String())
	})
}
