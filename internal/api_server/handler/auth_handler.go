package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/supplier-ledger/internal/platform/auth"
)

// AuthHandler exchanges the shared password for a session token
type AuthHandler struct {
	issuer     SessionIssuer
	cookieName string
	logger     *slog.Logger
}

func NewAuthHandler(logger *slog.Logger, issuer SessionIssuer, cookieName string) *AuthHandler {
	return &AuthHandler{issuer: issuer, cookieName: cookieName, logger: logger}
}

// Login returns the token and also sets it as an HttpOnly cookie for the HTML views
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	session, err := h.issuer.Login(req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidPassword) {
			h.logger.Warn("Rejected login attempt", "client_ip", c.ClientIP())
			RespondUnauthorized(c, "كلمة المرور غير صحيحة")
			return
		}
		h.logger.Error("Failed to issue session", "error", err)
		RespondInternalError(c)
		return
	}

	if h.cookieName != "" {
		maxAge := int(time.Until(session.ExpiresAt).Seconds())
		c.SetSameSite(http.SameSiteStrictMode)
		c.SetCookie(h.cookieName, session.Token, max(maxAge, 0), "/", "", false, true)
	}

	RespondOK(c, SessionResponse{
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt.UTC().Format(time.RFC3339),
	})
}
