package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"
	"strings"

	"github.com/gin-gonic/gin"
)

// Recovery turns a panic into a 500. JSON clients get the error envelope,
// browser views get a short HTML page.
func Recovery(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			r := recover()
			if r == nil {
				return
			}

			correlationID := GetCorrelationID(c)
			logger.Error("Panic recovered",
				"error", r,
				"stack", string(debug.Stack()),
				"path", c.Request.URL.Path,
				"method", c.Request.Method,
				"correlation_id", correlationID,
			)

			if isPageRequest(c) {
				c.Data(http.StatusInternalServerError, "text/html; charset=utf-8",
					[]byte(`<!DOCTYPE html><html lang="ar" dir="rtl"><body><p>حدث خطأ غير متوقع</p></body></html>`))
				c.Abort()
				return
			}

			response := gin.H{
				"error": gin.H{
					"code":    "INTERNAL_SERVER_ERROR",
					"message": "An internal server error occurred",
				},
			}
			if correlationID != "" {
				response["correlation_id"] = correlationID
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, response)
		}()

		c.Next()
	}
}

func isPageRequest(c *gin.Context) bool {
	path := c.Request.URL.Path
	return strings.HasPrefix(path, "/views") || strings.HasPrefix(path, "/print")
}
