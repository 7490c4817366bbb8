package middleware

import (
	"net/http"
	"strings"

	"codebot-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// JwtAuthMiddleware validates the Bearer token and puts user_id and
// role into the gin context.
func JwtAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Access token required"})
			c.Abort()
			return
		}

		tokenString := strings.Replace(authHeader, "Bearer ", "", 1)
		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			return utils.ApiSecret(), nil
		})

		if err != nil || !token.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			c.Abort()
			return
		}

		// Numeric claims come back as float64 from MapClaims.
		userIDFloat, okID := claims["user_id"].(float64)
		if !okID {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Token corrupt (user_id)"})
			c.Abort()
			return
		}

		c.Set("user_id", uint(userIDFloat))
		if role, okRole := claims["role"].(string); okRole {
			c.Set("role", role)
		}
		c.Next()
	}
}
