package domain

import "time"

// Product Model
type Product struct {
	ID          uint      `gorm:"primaryKey" json:"id"`             // Primary key
	Name        string    `gorm:"size:255;not null" json:"name"`    // Product name
	Description string    `gorm:"type:text" json:"description"`     // Free-form description
	Image       string    `gorm:"size:512" json:"image"`            // Public URL of the product image
	Price       float64   `gorm:"not null;default:0" json:"price"`  // Unit price
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"` // Creation timestamp
}
