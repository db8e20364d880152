package middleware

import (
	"net/http"
	"strings"

	"foodsavvy/utils"

	"github.com/gin-gonic/gin"
)

// JWTAuthAdminMiddleware guards the admin API. Tokens are issued by the
// admin login endpoint and expire on their own.
func JWTAuthAdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		subject, err := utils.ExtractSubjectFromToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized admin access"})
			return
		}

		c.Set("adminUser", subject)
		c.Set("isAdmin", true)
		c.Next()
	}
}
