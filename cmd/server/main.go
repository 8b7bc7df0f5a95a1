package main

import (
	"context"                        // Context for startup and shutdown
	"errors"                         // Error matching
	"net/http"                       // HTTP server
	"os"                             // Signals
	"os/signal"                      // Signal notification
	"storefront/internal/api"        // HTTP handlers and router
	"storefront/internal/auth"       // Credential verification
	"storefront/internal/cart"       // Cart engine
	"storefront/internal/config"     // Custom package for configuration
	"storefront/internal/db"         // Database connection
	"storefront/internal/mailer"     // Contact form mailer
	"storefront/internal/media"      // Image storage
	"storefront/internal/session"    // Session manager
	"storefront/internal/store"      // Credential store and catalog
	"storefront/internal/utils"      // Redis JSON cache
	"syscall"                        // SIGTERM
	"time"                           // Timeouts

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Setup logger
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// Connect to the database
	gdb, err := db.Open(cfg)
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err) // Fatal error if DB connection fails
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		logrus.Fatalf("failed to get SQL pool: %v", err)
	}

	// Setup Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr, // Redis server address
		Password: cfg.RedisPass, // Redis password
		DB:       cfg.RedisDB,   // Redis database number
	})

	// Test Redis connection
	if _, err := redisClient.Ping(context.Background()).Result(); err != nil {
		logrus.Fatalf("failed to connect to Redis: %v", err)
	}

	// Core components, each handed its store explicitly
	users := store.NewUsers(gdb)
	products := store.NewProducts(gdb)
	authenticator, err := auth.New(users, auth.WithAdminSignup(cfg.AllowAdminSignup))
	if err != nil {
		logrus.Fatalf("failed to init authenticator: %v", err)
	}
	sessions, err := session.NewManager(redisClient, users, cfg.SessionSecret, cfg.SessionTTL)
	if err != nil {
		logrus.Fatalf("failed to init sessions: %v", err)
	}
	images, uploadDir := newImageStore(cfg)
	contact := mailer.NewContact(mailer.NewSMTPSender(mailer.SMTPConfig{
		Host:     cfg.SMTPHost, // SMTP host
		Port:     cfg.SMTPPort, // SMTP port
		Username: cfg.SMTPUser, // SMTP user
		Password: cfg.SMTPPass, // SMTP password
	}), cfg.SMTPUser, cfg.ContactRecipient)

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	r := api.NewRouter(api.Deps{
		Authenticator: authenticator,
		Sessions:      sessions,
		Carts:         cart.NewEngine(gdb),
		Products:      products,
		Catalog:       utils.NewJSONCache(redisClient, "catalog:", 60*time.Second),
		Images:        images,
		Contact:       contact,
		UploadDir:     uploadDir,
		SecureCookies: cfg.IsProd,
	})

	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logrus.Info("Server running on " + cfg.AppPort) // Log server start
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatalf("server failed: %v", err)
		}
	}()

	<-ctx.Done() // Wait for SIGINT or SIGTERM
	logrus.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.Errorf("graceful shutdown failed: %v", err)
	}
	if err := redisClient.Close(); err != nil {
		logrus.Errorf("failed to close Redis: %v", err)
	}
	if err := sqlDB.Close(); err != nil {
		logrus.Errorf("failed to close DB: %v", err)
	}
}

// newImageStore picks the configured image backend. The upload dir is returned
// only for the local backend so the router knows to serve it.
func newImageStore(cfg *config.Config) (media.Store, string) {
	if cfg.MediaBackend == "s3" {
		s3Store, err := media.NewS3Store(context.Background(), media.S3Options{
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
		})
		if err != nil {
			logrus.Fatalf("failed to init S3 image store: %v", err)
		}
		return s3Store, ""
	}
	local, err := media.NewLocalStore(cfg.UploadDir, "/uploads")
	if err != nil {
		logrus.Fatalf("failed to init local image store: %v", err)
	}
	return local, cfg.UploadDir
}
