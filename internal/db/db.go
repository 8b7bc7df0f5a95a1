package db

import (
	"fmt"                        // DSN formatting
	"storefront/internal/config" // Application configuration

	"gorm.io/driver/mysql"    // MySQL driver for GORM
	"gorm.io/driver/postgres" // PostgreSQL driver for GORM (pgx)
	"gorm.io/gorm"            // GORM ORM library
)

// Open connects to the configured database driver
func Open(cfg *config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector // Driver-specific dialector
	switch cfg.DBDriver {
	case "mysql":
		port := cfg.DBPort // Default MySQL port when unset
		if port == "" {
			port = "3306"
		}
		dsn := cfg.DBUser + ":" + cfg.DBPassword + "@tcp(" + cfg.DBHost + ":" + port + ")/" + cfg.DBName + "?parseTime=true"
		dialector = mysql.Open(dsn)
	case "postgres":
		port := cfg.DBPort // Default PostgreSQL port when unset
		if port == "" {
			port = "5432"
		}
		dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			cfg.DBHost, port, cfg.DBUser, cfg.DBPassword, cfg.DBName)
		dialector = postgres.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to DB: %w", err)
	}
	return db, nil
}
