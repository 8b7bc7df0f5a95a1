package api

import (
	"storefront/internal/auth"       // Credential verification
	"storefront/internal/cart"       // Cart engine
	"storefront/internal/mailer"     // Contact form mailer
	"storefront/internal/media"      // Image storage
	"storefront/internal/middleware" // Session and role middleware
	"storefront/internal/session"    // Session manager
	"storefront/internal/store"      // Product catalog
	"storefront/internal/utils"      // Redis JSON cache

	"github.com/gin-gonic/gin" // Gin web framework
)

// Deps are the components the HTTP surface is built from
type Deps struct {
	Authenticator *auth.Authenticator // Verifies and registers users
	Sessions      *session.Manager    // Session store
	Carts         *cart.Engine        // Cart engine
	Products      *store.Products     // Product catalog
	Catalog       *utils.JSONCache    // Cached product listing
	Images        media.Store         // Product image storage
	Contact       *mailer.Contact     // Contact form relay
	UploadDir     string              // Served at /uploads when set
	SecureCookies bool                // Set the Secure flag on the session cookie
}

// NewRouter registers every route on a fresh gin engine
func NewRouter(d Deps) *gin.Engine {
	r := gin.Default() // Gin router instance

	// Locally stored product images
	if d.UploadDir != "" {
		r.Static("/uploads", d.UploadDir)
	}

	// Public pages and auth routes
	r.GET("/", PageHandler("login"))
	r.GET("/login", PageHandler("login"))
	r.GET("/register", PageHandler("register"))
	r.POST("/login", LoginHandler(d.Authenticator, d.Sessions, d.SecureCookies))
	r.POST("/register", RegisterHandler(d.Authenticator, d.Sessions, d.SecureCookies))
	r.GET("/logout", LogoutHandler(d.Sessions, d.SecureCookies))

	// Session-protected routes, unauthenticated visitors are redirected to /login
	authed := r.Group("/")
	authed.Use(middleware.RequireSession(d.Sessions))
	authed.GET("/home", HomeHandler(d.Products, d.Catalog))      // Product listing
	authed.GET("/product", PageHandler("product"))               // Add-product page
	authed.GET("/product/:id", ProductDetailHandler(d.Products)) // Product detail
	authed.GET("/contact", PageHandler("contact"))               // Contact page
	authed.POST("/contact", ContactHandler(d.Contact))           // Contact form
	authed.GET("/cart", GetCartHandler(d.Carts))                 // Cart view
	authed.POST("/cart/add", AddToCartHandler(d.Carts))          // Accumulating add
	authed.POST("/cart/update", UpdateCartHandler(d.Carts))      // Quantity overwrite
	authed.POST("/cart/delete", DeleteCartHandler(d.Carts))      // Line removal

	// Catalog management, admin only
	admin := authed.Group("/")
	admin.Use(middleware.AdminOnlyMiddleware())
	admin.POST("/add/product", AddProductHandler(d.Products, d.Images, d.Catalog))
	admin.POST("/admin/products/:id/price", UpdatePriceHandler(d.Products, d.Catalog))

	return r
}
