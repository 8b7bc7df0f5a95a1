package store

import (
	"context"
	"errors"
	"fmt"

	"storefront/internal/domain"

	"gorm.io/gorm"
)

// Users is the Credential Store.
type Users struct {
	db *gorm.DB // Database connection
}

// NewUsers returns a Credential Store over db.
func NewUsers(db *gorm.DB) *Users {
	return &Users{db: db}
}

// FindByEmail does an exact, case-sensitive lookup.
func (s *Users) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	err := s.db.WithContext(ctx).Where("email = ?", email).Take(&user).Error // Find user by email
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return &user, nil
}

// FindByID loads a user by primary key.
func (s *Users) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	var user domain.User
	err := s.db.WithContext(ctx).Take(&user, id).Error // Find user by ID
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user by id: %w", err)
	}
	return &user, nil
}

// Create inserts user. A racing insert of the same email surfaces as ErrDuplicate.
func (s *Users) Create(ctx context.Context, user *domain.User) error {
	err := s.db.WithContext(ctx).Create(user).Error // Insert the user
	if err == nil {
		return nil
	}
	// Drivers report unique violations differently; a follow-up lookup is portable.
	if _, lookupErr := s.FindByEmail(ctx, user.Email); lookupErr == nil {
		return ErrDuplicate
	}
	return fmt.Errorf("create user: %w", err)
}
