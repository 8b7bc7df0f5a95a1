// Package cart owns the per-user cart and its items.
//
// Consistency is delegated to the database: a unique index on carts.user_id
// keeps one cart per user, a unique index on (cart_id, product_id) keeps one
// line per product, and quantity changes are single SQL statements inside a
// transaction so concurrent requests from the same user never lose updates.
package cart

import (
	"context"
	"errors"
	"fmt"

	"storefront/internal/domain"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// maxCartAttempts bounds the create-then-read loop for a user's first cart.
const maxCartAttempts = 3

var (
	// ErrInvalidQuantity is returned when an add asks for fewer than one unit.
	ErrInvalidQuantity = errors.New("quantity must be a positive integer")
	// ErrProductNotFound is returned when adding a product that does not exist.
	ErrProductNotFound = errors.New("product not found")
	// ErrItemNotFound is returned when updating a cart item that does not exist.
	ErrItemNotFound = errors.New("cart item not found")
	// ErrForbidden is returned when the cart item belongs to another user.
	ErrForbidden = errors.New("cart item belongs to another user")
)

// Line is one row of the cart view.
type Line struct {
	CartItemID uint    `json:"cart_item_id"`
	ProductID  uint    `json:"product_id"`
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
	Image      string  `json:"image"`
	Quantity   int     `json:"quantity"`
}

// View is the cart as shown to its owner. Total is derived from current prices.
type View struct {
	Items []Line  `json:"items"`
	Total float64 `json:"total"`
}

// Engine mutates and reads carts.
type Engine struct {
	db *gorm.DB
}

// NewEngine returns an Engine backed by db.
func NewEngine(db *gorm.DB) *Engine {
	return &Engine{db: db}
}

// GetCart returns the user's items priced at current catalog prices.
// A user without a cart gets an empty view; no cart is created.
func (e *Engine) GetCart(ctx context.Context, userID uint) (*View, error) {
	view := &View{Items: []Line{}} // Never a nil slice in JSON

	var cart domain.Cart
	err := e.db.WithContext(ctx).Where("user_id = ?", userID).Take(&cart).Error // Find the user's cart
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return view, nil // No cart yet, reading does not create one
	}
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}

	err = e.db.WithContext(ctx).
		Table("cart_items AS ci").
		Select("ci.id AS cart_item_id, ci.product_id, p.name, p.price, p.image, ci.quantity").
		Joins("JOIN products AS p ON p.id = ci.product_id").
		Where("ci.cart_id = ?", cart.ID).
		Order("ci.id").
		Scan(&view.Items).Error // Join against current prices
	if err != nil {
		return nil, fmt.Errorf("load cart items: %w", err)
	}

	// Calculate total from current prices
	for _, line := range view.Items {
		view.Total += line.Price * float64(line.Quantity) // Add line subtotal
	}
	return view, nil
}

// AddItem adds quantity units of productID, creating the cart on first use.
// Repeated adds of the same product accumulate into one line.
func (e *Engine) AddItem(ctx context.Context, userID, productID uint, quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity // Never write a non-positive quantity
	}

	// Run the add in one transaction: product check, cart, then item upsert
	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64 // Matching products
		if err := tx.Model(&domain.Product{}).Where("id = ?", productID).Count(&count).Error; err != nil {
			return fmt.Errorf("check product: %w", err)
		}
		if count == 0 {
			return ErrProductNotFound
		}

		cart, err := ensureCart(tx, userID) // Get or lazily create the cart
		if err != nil {
			return err
		}

		item := domain.CartItem{CartID: cart.ID, ProductID: productID, Quantity: quantity} // New line if none exists
		err = tx.Omit(clause.Associations).Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "cart_id"}, {Name: "product_id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"quantity": gorm.Expr("cart_items.quantity + ?", quantity), // Atomic accumulation
			}),
		}).Create(&item).Error
		if err != nil {
			return fmt.Errorf("upsert cart item: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"user_id":    userID,    // Acting user
		"product_id": productID, // Added product
		"quantity":   quantity,  // Units added
	}).Info("Cart item added")
	return nil
}

// UpdateQuantity sets the item's quantity to exactly quantity.
// A quantity of zero or less removes the item.
func (e *Engine) UpdateQuantity(ctx context.Context, userID, cartItemID uint, quantity int) error {
	if quantity <= 0 {
		return e.RemoveItem(ctx, userID, cartItemID) // Zero or less means removal
	}

	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		item, err := ownedItem(tx, userID, cartItemID) // Ownership check
		if err != nil {
			return err
		}
		if err := tx.Model(&domain.CartItem{}).Where("id = ?", item.ID).Update("quantity", quantity).Error; err != nil {
			return fmt.Errorf("update cart item: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"user_id":      userID,     // Acting user
		"cart_item_id": cartItemID, // Updated line
		"quantity":     quantity,   // New quantity
	}).Info("Cart item updated")
	return nil
}

// RemoveItem deletes the item. Removing an unknown item is a no-op.
func (e *Engine) RemoveItem(ctx context.Context, userID, cartItemID uint) error {
	removed := false // Only log real removals
	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		item, err := ownedItem(tx, userID, cartItemID)
		if errors.Is(err, ErrItemNotFound) {
			return nil // Already gone
		}
		if err != nil {
			return err
		}
		if err := tx.Delete(&domain.CartItem{}, item.ID).Error; err != nil {
			return fmt.Errorf("delete cart item: %w", err)
		}
		removed = true
		return nil
	})
	if err != nil || !removed {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"user_id":      userID,     // Acting user
		"cart_item_id": cartItemID, // Removed line
	}).Info("Cart item removed")
	return nil
}

// ensureCart returns the user's cart, inserting it if absent. When a concurrent
// request wins the unique index the insert is a no-op and the locking re-read
// picks up the winner's committed row, which a plain snapshot read on MySQL
// REPEATABLE READ would not see.
func ensureCart(tx *gorm.DB, userID uint) (*domain.Cart, error) {
	var cart domain.Cart
	err := tx.Where("user_id = ?", userID).Take(&cart).Error // Fast path, cart already exists
	if err == nil {
		return &cart, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("load cart: %w", err)
	}

	for attempt := 1; attempt <= maxCartAttempts; attempt++ {
		cart = domain.Cart{UserID: userID} // Fresh row for this attempt
		res := tx.Omit(clause.Associations).Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoNothing: true, // Losing a race is not an error
		}).Create(&cart)
		if res.Error != nil {
			return nil, fmt.Errorf("create cart: %w", res.Error)
		}
		if res.RowsAffected == 1 && cart.ID != 0 {
			return &cart, nil // We won the insert
		}

		cart = domain.Cart{}
		locked := tx.Clauses(clause.Locking{Strength: "SHARE"}) // Locking read sees the latest committed row
		err = locked.Where("user_id = ?", userID).Take(&cart).Error
		if err == nil {
			return &cart, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("load cart: %w", err)
		}
	}
	return nil, fmt.Errorf("cart for user %d not visible after %d attempts", userID, maxCartAttempts)
}

// ownedItem loads a cart item and checks that its cart belongs to userID.
func ownedItem(tx *gorm.DB, userID, cartItemID uint) (*domain.CartItem, error) {
	var item domain.CartItem
	err := tx.Take(&item, cartItemID).Error // Load the item by primary key
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrItemNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load cart item: %w", err)
	}

	var owned int64 // Carts with this id owned by userID
	err = tx.Model(&domain.Cart{}).Where("id = ? AND user_id = ?", item.CartID, userID).Count(&owned).Error
	if err != nil {
		return nil, fmt.Errorf("check cart owner: %w", err)
	}
	if owned == 0 {
		return nil, ErrForbidden // Someone else's cart
	}
	return &item, nil
}
