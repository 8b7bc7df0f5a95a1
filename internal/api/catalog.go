package api

import (
	"errors"                     // Error matching
	"net/http"                   // HTTP status codes
	"storefront/internal/domain" // Importing domain models
	"storefront/internal/media"  // Image storage
	"storefront/internal/store"  // Product catalog
	"storefront/internal/utils"  // Redis JSON cache
	"strconv"                    // String conversion
	"time"                       // Timestamps for logs

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// productListKey is the cache key of the full product listing
const productListKey = "products:all"

// AddProductRequest is the product ingestion form, the image travels as a multipart file
type AddProductRequest struct {
	Name        string   `form:"pname" binding:"required"`        // Product name
	Description string   `form:"pdesc"`                           // Product description
	Price       *float64 `form:"pprice" binding:"required,gte=0"` // Unit price
}

// UpdatePriceRequest is the price change form
type UpdatePriceRequest struct {
	Price *float64 `form:"price" binding:"required,gte=0"` // New unit price
}

// HomeHandler lists all products, served from cache when possible
func HomeHandler(products *store.Products, catalog *utils.JSONCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		var cached []domain.Product // Cached listing
		found, err := catalog.Get(ctx, productListKey, &cached)
		if err == nil && found {
			c.JSON(http.StatusOK, gin.H{"products": cached, "cached": true})
			return
		}
		list, err := products.List(ctx)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"error": err.Error(), // Error message
			}).Error("Failed to list products")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
			return
		}
		// Cache the listing for future requests
		if err := catalog.Set(ctx, productListKey, list); err != nil {
			logrus.WithFields(logrus.Fields{
				"error": err.Error(), // Error message
			}).Warn("Failed to cache product listing")
		}
		c.JSON(http.StatusOK, gin.H{"products": list, "cached": false})
	}
}

// ProductDetailHandler returns a single product
func ProductDetailHandler(products *store.Products) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c.Param("id"))
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid Product ID"})
			return
		}
		product, err := products.Get(c.Request.Context(), id)
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"product_id": id,          // Requested product
				"error":      err.Error(), // Error message
			}).Error("Failed to load product")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
			return
		}
		c.JSON(http.StatusOK, product)
	}
}

// AddProductHandler stores the uploaded image and creates the product
func AddProductHandler(products *store.Products, images media.Store, catalog *utils.JSONCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AddProductRequest // Bind multipart form to struct
		if err := c.ShouldBind(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product"})
			return
		}
		fh, err := c.FormFile("image") // Uploaded image
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Product image is required"})
			return
		}
		file, err := fh.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unreadable product image"})
			return
		}
		defer file.Close()

		ctx := c.Request.Context()
		imageURL, err := images.Save(ctx, fh.Filename, fh.Header.Get("Content-Type"), file)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"filename": fh.Filename, // Client file name
				"error":    err.Error(), // Error message
			}).Error("Failed to store product image")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
			return
		}

		product := domain.Product{Name: req.Name, Description: req.Description, Image: imageURL, Price: *req.Price}
		if err := products.Create(ctx, &product); err != nil {
			logrus.WithFields(logrus.Fields{
				"name":  req.Name,    // Product name
				"error": err.Error(), // Error message
			}).Error("Failed to create product")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
			return
		}
		invalidateListing(c, catalog)
		logrus.WithFields(logrus.Fields{
			"product_id": product.ID,                      // New product
			"image":      imageURL,                        // Stored image
			"timestamp":  time.Now().Format(time.RFC3339), // Current timestamp
		}).Info("Product created")
		c.Redirect(http.StatusFound, "/product")
	}
}

// UpdatePriceHandler changes a product's price; carts pick it up on their next read
func UpdatePriceHandler(products *store.Products, catalog *utils.JSONCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c.Param("id"))
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid Product ID"})
			return
		}
		var req UpdatePriceRequest // Bind form to struct
		if err := c.ShouldBind(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid price"})
			return
		}
		err := products.SetPrice(c.Request.Context(), id, *req.Price)
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"product_id": id,          // Product
				"error":      err.Error(), // Error message
			}).Error("Failed to update price")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
			return
		}
		invalidateListing(c, catalog)
		c.JSON(http.StatusOK, gin.H{"message": "Price updated"})
	}
}

// invalidateListing drops the cached product listing
func invalidateListing(c *gin.Context, catalog *utils.JSONCache) {
	if err := catalog.Delete(c.Request.Context(), productListKey); err != nil {
		logrus.WithFields(logrus.Fields{
			"error": err.Error(), // Error message
		}).Warn("Failed to invalidate product listing")
	}
}

// parseID parses a positive numeric path parameter
func parseID(raw string) (uint, bool) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
