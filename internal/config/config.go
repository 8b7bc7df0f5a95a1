package config

import (
	"os"      // For environment variables
	"strconv" // For string to int conversion
	"time"    // For durations

	"github.com/joho/godotenv" // For loading .env files
)

// Config holds the application configuration
type Config struct {
	AppPort    string // Application port
	DBDriver   string // Database driver: mysql or postgres
	DBUser     string // Database user
	DBPassword string // Database password
	DBHost     string // Database host
	DBPort     string // Database port
	DBName     string // Database name
	IsProd     bool   // Is production environment

	SessionSecret    string        // HMAC secret for session tokens
	SessionTTL       time.Duration // Absolute session lifetime
	AllowAdminSignup bool          // Let /register grant the admin role

	RedisAddr string // Redis server address
	RedisPass string // Redis password
	RedisDB   int    // Redis database number

	MediaBackend string // Image storage: local or s3
	UploadDir    string // Directory for locally stored images
	S3Bucket     string // Bucket for product images
	S3Region     string // S3 region
	S3Endpoint   string // Custom S3 endpoint (MinIO), optional
	S3AccessKey  string // S3 access key
	S3SecretKey  string // S3 secret key

	SMTPHost         string // SMTP server host
	SMTPPort         int    // SMTP server port
	SMTPUser         string // SMTP username, also the sender address
	SMTPPass         string // SMTP password
	ContactRecipient string // Mailbox receiving contact form messages
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	_ = godotenv.Load() // Load .env file if present
	return &Config{
		AppPort:    getEnv("APP_PORT", "4040"),      // Application port
		DBDriver:   getEnv("DB_DRIVER", "mysql"),    // Database driver
		DBUser:     os.Getenv("DB_USER"),            // Database user
		DBPassword: os.Getenv("DB_PASSWORD"),        // Database password
		DBHost:     getEnv("DB_HOST", "127.0.0.1"),  // Database host
		DBPort:     os.Getenv("DB_PORT"),            // Database port
		DBName:     getEnv("DB_NAME", "storefront"), // Database name
		IsProd:     os.Getenv("IS_PROD") == "true",  // Is production environment

		SessionSecret:    os.Getenv("SESSION_SECRET"),               // Session signing secret
		SessionTTL:       getDuration("SESSION_TTL", 24*time.Hour),  // Session lifetime
		AllowAdminSignup: os.Getenv("ALLOW_ADMIN_SIGNUP") == "true", // Admin self-registration, off by default

		RedisAddr: getEnv("REDIS_ADDR", "127.0.0.1:6379"), // Redis server address
		RedisPass: os.Getenv("REDIS_PASS"),                // Redis password
		RedisDB:   getInt("REDIS_DB", 0),                  // Redis database number

		MediaBackend: getEnv("MEDIA_BACKEND", "local"),  // Image storage backend
		UploadDir:    getEnv("UPLOAD_DIR", "./uploads"), // Local image directory
		S3Bucket:     os.Getenv("S3_BUCKET"),            // S3 bucket
		S3Region:     getEnv("S3_REGION", "us-east-1"),  // S3 region
		S3Endpoint:   os.Getenv("S3_ENDPOINT"),          // S3 endpoint override
		S3AccessKey:  os.Getenv("S3_ACCESS_KEY"),        // S3 access key
		S3SecretKey:  os.Getenv("S3_SECRET_KEY"),        // S3 secret key

		SMTPHost:         getEnv("SMTP_HOST", "smtp.gmail.com"),                // SMTP host
		SMTPPort:         getInt("SMTP_PORT", 587),                             // SMTP port
		SMTPUser:         os.Getenv("EMAIL_USER"),                              // SMTP user
		SMTPPass:         os.Getenv("EMAIL_PASS"),                              // SMTP password
		ContactRecipient: getEnv("CONTACT_RECIPIENT", os.Getenv("EMAIL_USER")), // Contact inbox
	}
}

// getEnv returns the variable or the fallback when it is unset
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// getInt parses an integer variable, falling back on absence or garbage
func getInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

// getDuration parses a Go duration string such as "24h"
func getDuration(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(key))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}
