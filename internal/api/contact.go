package api

import (
	"errors"                     // Error matching
	"net/http"                   // HTTP status codes
	"storefront/internal/mailer" // Contact form mailer

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// ContactRequest is the contact form
type ContactRequest struct {
	Email   string `form:"email" binding:"required"`   // Visitor address
	Message string `form:"message" binding:"required"` // Message body
}

// ContactHandler forwards the contact form and acknowledges the visitor
func ContactHandler(contact *mailer.Contact) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ContactRequest // Bind form to struct
		if err := c.ShouldBind(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email and message are required"})
			return
		}
		err := contact.Submit(c.Request.Context(), req.Email, req.Message)
		if errors.Is(err, mailer.ErrInvalidContact) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email and message are required"})
			return
		}
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"email": req.Email,   // Visitor address
				"error": err.Error(), // Error message
			}).Error("Error in mailing")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
			return
		}
		c.Redirect(http.StatusFound, "/contact")
	}
}
