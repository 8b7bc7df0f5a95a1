package domain

// Cart Model, at most one per user
type Cart struct {
	ID     uint       `gorm:"primaryKey"`                                    // Primary key
	UserID uint       `gorm:"uniqueIndex;not null"`                          // Owner, unique per cart
	User   User       `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"` // Owning user
	Items  []CartItem `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"` // Lines of the cart
}

// CartItem Model, at most one per (cart, product)
type CartItem struct {
	ID        uint    `gorm:"primaryKey"`                                    // Primary key
	CartID    uint    `gorm:"uniqueIndex:idx_cart_product;not null"`         // Owning cart
	ProductID uint    `gorm:"uniqueIndex:idx_cart_product;not null"`         // Referenced product
	Product   Product `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"` // Referenced product row
	Quantity  int     `gorm:"not null;check:quantity > 0"`                   // Always at least one
}
