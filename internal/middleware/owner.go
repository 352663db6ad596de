package middleware

import (
	"net/http" // HTTP status codes
	"strconv"  // Path parameter parsing

	"github.com/gin-gonic/gin" // Gin web framework
)

// SelfOnlyMiddleware restricts /users/:user_id routes to the account the token
// was issued to. Must run after JWTAuthMiddleware.
func SelfOnlyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get(ContextUserID)
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		target, err := strconv.ParseUint(c.Param("user_id"), 10, 64)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid user id"})
			return
		}
		if id, ok := userID.(uint); !ok || uint64(id) != target {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access to another account is not allowed"})
			return
		}
		c.Next()
	}
}
