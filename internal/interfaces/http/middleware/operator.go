package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireOperator blocks non-operator callers. It must run after the
// JWT middleware; an anonymous caller gets 401, a logged-in customer 403.
func RequireOperator() gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetJWTClaims(c) == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "UNAUTHORIZED",
					"message": "Authentication required",
				},
			})
			return
		}
		if !IsOperator(c) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "FORBIDDEN",
					"message": "Operator access required",
				},
			})
			return
		}
		c.Next()
	}
}
