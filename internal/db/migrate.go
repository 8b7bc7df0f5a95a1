package db

import (
	"storefront/internal/domain" // Importing domain models

	"gorm.io/gorm" // GORM ORM library
)

// Migrate performs automatic migration for the database schema
func Migrate(db *gorm.DB) error {
	// AutoMigrate will create tables, missing foreign keys, constraints, columns and indexes.
	// Order matters: carts reference users, cart_items reference carts and products.
	return db.AutoMigrate(&domain.User{}, &domain.Product{}, &domain.Cart{}, &domain.CartItem{})
}
