package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"tripcover.backend/pkg/crypto"
)

const (
	// AdminKeyHeader carries the admin decision key
	AdminKeyHeader = "X-Admin-Api-Key"
)

// AdminKeyMiddleware authenticates the admin decision boundary. The key
// is generated by cmd/admin-apikey and only its bcrypt hash lives in
// config.
func AdminKeyMiddleware(keyHash string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if keyHash == "" {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{
				"error": "Admin API is not configured",
			})
			return
		}

		key := c.GetHeader(AdminKeyHeader)
		if key == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Admin API key is required",
			})
			return
		}

		if !crypto.CheckKey(key, keyHash) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "Invalid admin API key",
			})
			return
		}

		c.Next()
	}
}
