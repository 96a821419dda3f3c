package middleware

import (
	"net/http"
	"strings"

	"main/usecase"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware verifies the Bearer token through the identity provider
// and stores the authenticated subject in the request context as "user_id".
func AuthMiddleware(provider usecase.AuthProvider) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid token"})
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		claims, err := provider.VerifyIDToken(c.Request.Context(), tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			c.Abort()
			return
		}

		c.Set("user_id", claims.Subject)
		c.Next()
	}
}
