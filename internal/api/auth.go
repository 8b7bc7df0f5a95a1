package api

import (
	"errors"                         // Error matching
	"net/http"                       // HTTP status codes
	"storefront/internal/auth"       // Credential verification
	"storefront/internal/domain"     // Importing domain models
	"storefront/internal/middleware" // Session cookie name
	"storefront/internal/session"    // Session manager
	"time"                           // Cookie lifetime

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// LoginRequest is the login form
type LoginRequest struct {
	Username string `form:"username" binding:"required"` // Email used as login identifier
	Password string `form:"password" binding:"required"` // Plaintext password
}

// RegisterRequest is the registration form
type RegisterRequest struct {
	Name     string `form:"name" binding:"required"`     // Display name
	Username string `form:"username" binding:"required"` // Email
	Password string `form:"password" binding:"required"` // Plaintext password
	Role     string `form:"role"`                        // customer or admin, defaults to customer
}

// LoginHandler verifies credentials and establishes a session.
// Every failure redirects to the login page without detail.
func LoginHandler(authn *auth.Authenticator, sessions *session.Manager, secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest // Bind form to struct
		if err := c.ShouldBind(&req); err != nil {
			c.Redirect(http.StatusFound, "/login")
			return
		}
		ctx := c.Request.Context()
		result, err := authn.Verify(ctx, req.Username, req.Password)
		if err != nil {
			// Store failure is not a rejection
			logrus.WithFields(logrus.Fields{
				"error": err.Error(), // Error message
			}).Error("Credential verification failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
			return
		}
		if !result.Ok() {
			logrus.WithFields(logrus.Fields{
				"reason": result.Reason.String(), // Kept in logs only
			}).Info("Login rejected")
			c.Redirect(http.StatusFound, "/login")
			return
		}
		if !startSession(c, sessions, result.User, secure) {
			return
		}
		c.Redirect(http.StatusFound, "/home")
	}
}

// RegisterHandler creates a user and logs them in
func RegisterHandler(authn *auth.Authenticator, sessions *session.Manager, secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest // Bind form to struct
		if err := c.ShouldBind(&req); err != nil {
			c.Redirect(http.StatusFound, "/register")
			return
		}
		ctx := c.Request.Context()
		user, err := authn.Register(ctx, req.Name, req.Username, req.Password, req.Role)
		switch {
		case errors.Is(err, auth.ErrEmailTaken):
			// Existing account: send them to log in instead
			c.Redirect(http.StatusFound, "/login")
			return
		case errors.Is(err, auth.ErrInvalidInput), errors.Is(err, auth.ErrRoleNotAllowed):
			c.Redirect(http.StatusFound, "/register")
			return
		case err != nil:
			logrus.WithFields(logrus.Fields{
				"error": err.Error(), // Error message
			}).Error("Registration failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
			return
		}
		logrus.WithFields(logrus.Fields{
			"user_id":   user.ID,                         // New user ID
			"role":      user.Role,                       // Granted role
			"timestamp": time.Now().Format(time.RFC3339), // Current timestamp
		}).Info("User registered")
		if !startSession(c, sessions, user, secure) {
			return
		}
		c.Redirect(http.StatusFound, "/home")
	}
}

// LogoutHandler destroys the session and clears the cookie
func LogoutHandler(sessions *session.Manager, secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, _ := c.Cookie(middleware.CookieName) // Missing cookie reads as empty token
		if err := sessions.Destroy(c.Request.Context(), token); err != nil {
			logrus.WithFields(logrus.Fields{
				"error": err.Error(), // Error message
			}).Error("Logout failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
			return
		}
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(middleware.CookieName, "", -1, "/", "", secure, true) // Expire the cookie
		c.Redirect(http.StatusFound, "/")
	}
}

// startSession establishes a session and writes the cookie. It reports false
// after writing an error response.
func startSession(c *gin.Context, sessions *session.Manager, user *domain.User, secure bool) bool {
	token, err := sessions.Establish(c.Request.Context(), user)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"user_id": user.ID,     // User ID
			"error":   err.Error(), // Error message
		}).Error("Session establish failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		return false
	}
	maxAge := int(sessions.TTL() / time.Second) // Cookie lives exactly as long as the session
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.CookieName, token, maxAge, "/", "", secure, true)
	return true
}
