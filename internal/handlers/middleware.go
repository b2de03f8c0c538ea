package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// Gin context keys set by authMiddleware.
const (
	ctxUserID   = "userId"
	ctxUsername = "username"
)

const (
	errAuthHeader   = "Authorization header missing or malformed"
	errInvalidToken = "Invalid or expired token"
)

// authMiddleware verifies the Bearer access token and stores the caller's identity.
// It never touches the database.
func (h *Handler) authMiddleware(c *gin.Context) {
	token, ok := bearerToken(c.GetHeader("Authorization"))
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errAuthHeader})
		return
	}

	claims, err := h.services.VerifyAccessToken(token)
	if err != nil {
		h.log.Debugw("auth_token_rejected", "err", err)
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errInvalidToken})
		return
	}

	// store in Gin context
	c.Set(ctxUserID, claims.UserID)
	c.Set(ctxUsername, claims.Username)
	c.Next()
}

// bearerToken extracts <token> from "Bearer <token>".
func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}
	return token, true
}

func currentUserID(c *gin.Context) (int64, bool) {
	v, ok := c.Get(ctxUserID)
	if !ok {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok && id > 0
}
