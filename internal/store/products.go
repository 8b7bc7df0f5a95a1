package store

import (
	"context"
	"errors"
	"fmt"

	"storefront/internal/domain"

	"gorm.io/gorm"
)

// Products is the read path of the Product Catalog plus ingestion.
type Products struct {
	db *gorm.DB // Database connection
}

// NewProducts returns a Product Catalog over db.
func NewProducts(db *gorm.DB) *Products {
	return &Products{db: db}
}

// List returns every product ordered by id.
func (s *Products) List(ctx context.Context) ([]domain.Product, error) {
	products := []domain.Product{} // Empty list rather than null
	if err := s.db.WithContext(ctx).Order("id").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

// Get returns the product with the given id or ErrNotFound.
func (s *Products) Get(ctx context.Context, id uint) (*domain.Product, error) {
	var product domain.Product
	err := s.db.WithContext(ctx).Take(&product, id).Error // Find product by ID
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &product, nil
}

// Create inserts a new product.
func (s *Products) Create(ctx context.Context, product *domain.Product) error {
	if err := s.db.WithContext(ctx).Create(product).Error; err != nil {
		return fmt.Errorf("create product: %w", err)
	}
	return nil
}

// SetPrice changes the unit price of a product.
func (s *Products) SetPrice(ctx context.Context, id uint, price float64) error {
	res := s.db.WithContext(ctx).Model(&domain.Product{}).Where("id = ?", id).Update("price", price) // Update the unit price
	if res.Error != nil {
		return fmt.Errorf("set product price: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		// MySQL reports zero affected rows when the price is unchanged.
		_, err := s.Get(ctx, id) // Tell missing from unchanged
		return err
	}
	return nil
}
