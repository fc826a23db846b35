package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/hunterlab/monster-advisor/internal/repository"
	"github.com/hunterlab/monster-advisor/internal/utils"
)

// ContextUserKey is where the authenticated user lands on the gin context.
const ContextUserKey = "user"

// Authenticate requires a valid bearer token whose subject still resolves
// to an existing user. Response messages never distinguish why a token was
// rejected.
func Authenticate(userRepo *repository.UserRepository, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		// "Bearer <token>" exactly; no whitespace tolerance.
		authHeader := c.GetHeader("Authorization")
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if authHeader == "" || tokenString == authHeader || tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Access token required",
			})
			c.Abort()
			return
		}

		claims, err := utils.ValidateToken(tokenString, jwtSecret)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid token",
			})
			c.Abort()
			return
		}

		// A validly signed token for a deleted user is still invalid.
		user, err := userRepo.GetByID(claims.UserID)
		if err != nil || user == nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid token",
			})
			c.Abort()
			return
		}

		c.Set(ContextUserKey, user)
		c.Next()
	}
}
