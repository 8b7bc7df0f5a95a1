package api

import (
	"errors"                         // Error matching
	"net/http"                       // HTTP status codes
	"storefront/internal/cart"       // Cart engine
	"storefront/internal/middleware" // Acting user lookup

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// AddToCartRequest is the add-to-cart form
type AddToCartRequest struct {
	ProductID uint `form:"product_id" binding:"required"` // Product to add
	Quantity  int  `form:"quantity" binding:"required"`   // Units to add, must be positive
}

// UpdateCartRequest is the quantity update form
type UpdateCartRequest struct {
	CartItemID uint `form:"cart_item_id" binding:"required"` // Line to change
	Quantity   *int `form:"quantity" binding:"required"`     // New quantity, zero or less removes the line
}

// DeleteCartRequest is the remove-line form
type DeleteCartRequest struct {
	CartItemID uint `form:"cart_item_id" binding:"required"` // Line to remove
}

// GetCartHandler returns the acting user's cart with a freshly computed total
func GetCartHandler(carts *cart.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint(middleware.UserIDKey) // Set by RequireSession
		view, err := carts.GetCart(c.Request.Context(), userID)
		if err != nil {
			respondCartError(c, err, userID, "view")
			return
		}
		c.JSON(http.StatusOK, view)
	}
}

// AddToCartHandler accumulates a product into the acting user's cart
func AddToCartHandler(carts *cart.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint(middleware.UserIDKey) // Set by RequireSession
		var req AddToCartRequest                  // Bind form to struct
		if err := c.ShouldBind(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product or quantity"})
			return
		}
		if err := carts.AddItem(c.Request.Context(), userID, req.ProductID, req.Quantity); err != nil {
			respondCartError(c, err, userID, "add")
			return
		}
		c.Redirect(http.StatusFound, "/cart")
	}
}

// UpdateCartHandler overwrites the quantity of one of the acting user's lines
func UpdateCartHandler(carts *cart.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint(middleware.UserIDKey) // Set by RequireSession
		var req UpdateCartRequest                 // Bind form to struct
		if err := c.ShouldBind(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid cart item or quantity"})
			return
		}
		if err := carts.UpdateQuantity(c.Request.Context(), userID, req.CartItemID, *req.Quantity); err != nil {
			respondCartError(c, err, userID, "update")
			return
		}
		c.Redirect(http.StatusFound, "/cart")
	}
}

// DeleteCartHandler removes one of the acting user's lines
func DeleteCartHandler(carts *cart.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint(middleware.UserIDKey) // Set by RequireSession
		var req DeleteCartRequest                 // Bind form to struct
		if err := c.ShouldBind(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid cart item"})
			return
		}
		if err := carts.RemoveItem(c.Request.Context(), userID, req.CartItemID); err != nil {
			respondCartError(c, err, userID, "delete")
			return
		}
		c.Redirect(http.StatusFound, "/cart")
	}
}

// respondCartError maps cart engine errors onto HTTP responses
func respondCartError(c *gin.Context, err error, userID uint, op string) {
	switch {
	case errors.Is(err, cart.ErrInvalidQuantity):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Quantity must be a positive integer"})
	case errors.Is(err, cart.ErrProductNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
	case errors.Is(err, cart.ErrItemNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Cart item not found"})
	case errors.Is(err, cart.ErrForbidden):
		logrus.WithFields(logrus.Fields{
			"user_id": userID, // Acting user
			"op":      op,     // Attempted operation
		}).Warn("Cross-user cart mutation denied")
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
	default:
		logrus.WithFields(logrus.Fields{
			"user_id": userID,      // Acting user
			"op":      op,          // Attempted operation
			"error":   err.Error(), // Error message
		}).Error("Cart operation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
	}
}
