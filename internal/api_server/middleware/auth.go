package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// TokenVerifier validates a session token
type TokenVerifier interface {
	Verify(token string) error
}

// RequireSession accepts an "Authorization: Bearer" header or, for browser views, the session cookie
func RequireSession(verifier TokenVerifier, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" && cookieName != "" {
			token, _ = c.Cookie(cookieName)
		}

		if token == "" || verifier.Verify(token) != nil {
			response := gin.H{
				"error": gin.H{
					"code":    "UNAUTHORIZED",
					"message": "a valid session is required",
				},
			}
			if correlationID := GetCorrelationID(c); correlationID != "" {
				response["correlation_id"] = correlationID
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, response)
			return
		}

		c.Next()
	}
}

func bearerToken(header string) string {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
