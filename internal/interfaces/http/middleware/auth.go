package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"tripcover.backend/pkg/jwt"
	"tripcover.backend/pkg/logger"
	"tripcover.backend/pkg/redis"

	"go.uber.org/zap"
)

const (
	// AuthorizationHeader is the header key for authorization
	AuthorizationHeader = "Authorization"
	// SessionIDHeader carries a redis-backed session id as an alternative
	// to a bearer token
	SessionIDHeader = "X-Session-ID"
	// BearerPrefix is the prefix for bearer tokens
	BearerPrefix = "Bearer "
	// PrincipalIDKey is the context key for the authenticated principal
	PrincipalIDKey = "principalId"
	// PrincipalRoleKey is the context key for the principal's role
	PrincipalRoleKey = "principalRole"
)

// AuthMiddleware authenticates the caller either by bearer token or by
// session id. The identity itself was established by the external OAuth
// exchange; this only verifies what that boundary minted.
func AuthMiddleware(jwtService *jwt.Service, sessionStore *redis.SessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		if sessionID := c.GetHeader(SessionIDHeader); sessionID != "" {
			session, err := sessionStore.GetSession(c.Request.Context(), sessionID)
			if err != nil {
				logger.Warn(c.Request.Context(), "session lookup failed", zap.Error(err))
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
					"error": "Invalid or expired session",
				})
				return
			}
			c.Set(PrincipalIDKey, session.PrincipalID)
			c.Set(PrincipalRoleKey, session.Role)
			c.Next()
			return
		}

		authHeader := c.GetHeader(AuthorizationHeader)
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Authorization header is required",
			})
			return
		}

		if !strings.HasPrefix(authHeader, BearerPrefix) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid authorization format. Use: Bearer <token>",
			})
			return
		}

		tokenString := strings.TrimPrefix(authHeader, BearerPrefix)
		claims, err := jwtService.ValidateToken(tokenString)
		if err != nil {
			if err == jwt.ErrExpiredToken {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
					"error": "Token has expired",
				})
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid token",
			})
			return
		}

		c.Set(PrincipalIDKey, claims.PrincipalID)
		c.Set(PrincipalRoleKey, claims.Role)

		c.Next()
	}
}

// GetPrincipalID gets the authenticated principal id from context
func GetPrincipalID(c *gin.Context) (uuid.UUID, bool) {
	principalID, exists := c.Get(PrincipalIDKey)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := principalID.(uuid.UUID)
	return id, ok
}

// GetPrincipalRole gets the principal's role from context
func GetPrincipalRole(c *gin.Context) (string, bool) {
	role, exists := c.Get(PrincipalRoleKey)
	if !exists {
		return "", false
	}
	r, ok := role.(string)
	return r, ok
}
