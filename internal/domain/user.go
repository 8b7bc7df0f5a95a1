package domain

// Roles a user can hold
const (
	RoleCustomer = "customer" // Regular shopper
	RoleAdmin    = "admin"    // May ingest products
)

// User Model
type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`                          // Primary key
	Email    string `gorm:"size:255;uniqueIndex;not null" json:"email"`    // Unique login identifier, case-sensitive
	Password string `gorm:"not null" json:"-"`                             // Bcrypt hash
	Role     string `gorm:"size:32;not null;default:customer" json:"role"` // Role: customer or admin
	Name     string `gorm:"size:255" json:"name"`                          // Display name
}

// IsAdmin reports whether the user may manage the catalog
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// ValidRole reports whether role is one of the known roles
func ValidRole(role string) bool {
	return role == RoleCustomer || role == RoleAdmin
}
