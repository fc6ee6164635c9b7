package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"imara/utils"
)

// ContextUserID is the gin context key holding the authenticated
// Firebase UID.
const ContextUserID = "userID"

// FirebaseAuthMiddleware verifies the Firebase ID token carried in the
// Authorization header and stores the caller's UID in the context.
func FirebaseAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		idToken := strings.TrimPrefix(authHeader, "Bearer ")

		if utils.AuthClient == nil {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "Auth service unavailable"})
			return
		}

		token, err := utils.AuthClient.VerifyIDToken(c.Request.Context(), idToken)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		c.Set(ContextUserID, token.UID)
		c.Next()
	}
}

// AuthenticatedUserID returns the UID set by FirebaseAuthMiddleware.
func AuthenticatedUserID(c *gin.Context) string {
	return c.GetString(ContextUserID)
}
