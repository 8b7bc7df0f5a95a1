package middleware

import (
	"net/http"                    // HTTP status codes
	"storefront/internal/domain"  // Importing domain models
	"storefront/internal/session" // Session manager

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// Context keys set by RequireSession
const (
	CookieName = "sid"    // Name of the session cookie
	UserKey    = "user"   // *domain.User of the acting user
	UserIDKey  = "userID" // uint id of the acting user
)

// RequireSession resolves the session cookie and redirects to the login page when it is missing or invalid
func RequireSession(sessions *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, _ := c.Cookie(CookieName)                          // Missing cookie reads as empty token
		user, err := sessions.Resolve(c.Request.Context(), token) // Resolve token to a fresh user
		if err != nil {
			// Session backend failure is not an authorization failure
			logrus.WithFields(logrus.Fields{
				"path":  c.Request.URL.Path, // Requested path
				"error": err.Error(),        // Error message
			}).Error("Session resolve failed")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
			return
		}
		if user == nil {
			// Soft failure: send the visitor to the login page
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		c.Set(UserKey, user)      // Store user in context
		c.Set(UserIDKey, user.ID) // Store userID in context
		c.Next()                  // Proceed to the next handler
	}
}

// CurrentUser returns the user stored by RequireSession
func CurrentUser(c *gin.Context) (*domain.User, bool) {
	v, exists := c.Get(UserKey) // Get user from context
	if !exists {
		return nil, false
	}
	user, ok := v.(*domain.User)
	return user, ok && user != nil
}
