package middleware

import (
	"net/http" // HTTP status codes

	"github.com/gin-gonic/gin" // Gin web framework
)

// AdminOnlyMiddleware checks the role of the user resolved for this request.
// The session manager loads the user fresh on every request, so role changes apply immediately.
func AdminOnlyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c) // Get user from context
		// Check if a session was resolved
		if !ok {
			// If not, send the visitor to login
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		// Check if user role is admin
		if !user.IsAdmin() {
			// If not admin, abort with forbidden status
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}
		// If admin, proceed to the next handler
		c.Next()
	}
}
