package middleware

import (
	"errors"
	"net/http"
	"strings"

	"eduadmin/internal/models"
	"eduadmin/internal/token"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Context keys populated by AuthMiddleware for downstream handlers.
const (
	ContextClaims = "claims"
	ContextUserID = "userID"
	ContextRole   = "role"
)

// Every denial returns this exact body. The reason a request was rejected
// (no header, malformed token, expired token, wrong role) is logged but
// never reported to the caller.
func abortUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
}

// AuthMiddleware verifies the bearer token on the request and injects the
// recovered claims into the context. Handlers never re-derive identity.
func AuthMiddleware(issuer *token.Issuer, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logger.Debug("Request without credentials", zap.String("path", c.FullPath()))
			abortUnauthorized(c)
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			logger.Debug("Malformed Authorization header", zap.String("path", c.FullPath()))
			abortUnauthorized(c)
			return
		}

		claims, err := issuer.Verify(parts[1])
		if err != nil {
			if errors.Is(err, token.ErrTokenExpired) {
				logger.Debug("Expired token", zap.String("path", c.FullPath()))
			} else {
				logger.Debug("Invalid token", zap.String("path", c.FullPath()), zap.Error(err))
			}
			abortUnauthorized(c)
			return
		}

		c.Set(ContextClaims, claims)
		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextRole, claims.Role)

		c.Next()
	}
}

// RequireRole gates a route group on an exact role match. The role string
// recovered from the token is re-parsed against the closed role set; a
// token naming an unknown role is denied, not treated as a lesser role.
func RequireRole(required models.Role, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := c.Get(ContextRole)
		if !ok {
			abortUnauthorized(c)
			return
		}

		roleString, _ := raw.(string)
		role, err := models.ParseRole(roleString)
		if err != nil {
			logger.Warn("Token carries unknown role", zap.String("role", roleString))
			abortUnauthorized(c)
			return
		}

		if role != required {
			logger.Debug("Insufficient role",
				zap.String("have", string(role)),
				zap.String("want", string(required)))
			abortUnauthorized(c)
			return
		}

		c.Next()
	}
}
