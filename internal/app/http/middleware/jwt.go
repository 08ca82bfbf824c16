package middleware

import (
	"fmt"
	"strings"

	"subscription-plans/internal/api/httperr"
	"subscription-plans/internal/apperr"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// AuthMiddleware resolves the bearer token into "user_id" (uint) and "email" on the
// gin context. It does not load the user; authorization happens per operation.
func AuthMiddleware(secret string) gin.HandlerFunc {
	jwtKey := []byte(secret)

	return func(c *gin.Context) {
		if len(jwtKey) == 0 {
			httperr.Write(c, fmt.Errorf("JWT secret not configured"))
			c.Abort()
			return
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			httperr.Write(c, apperr.Unauthorized("Authorization header missing"))
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			httperr.Write(c, apperr.Unauthorized("Bearer token malformed"))
			c.Abort()
			return
		}

		token, err := jwt.Parse(strings.TrimSpace(tokenString), func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return jwtKey, nil
		})
		if err != nil || !token.Valid {
			httperr.Write(c, apperr.Unauthorized("Invalid or expired token"))
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			httperr.Write(c, apperr.Unauthorized("Invalid token claims"))
			c.Abort()
			return
		}

		userIDFloat, ok := claims["user_id"].(float64)
		if !ok || userIDFloat < 1 {
			httperr.Write(c, apperr.Unauthorized("Invalid token claims"))
			c.Abort()
			return
		}
		c.Set("user_id", uint(userIDFloat))

		if email, ok := claims["email"].(string); ok {
			c.Set("email", email)
		}

		c.Next()
	}
}
