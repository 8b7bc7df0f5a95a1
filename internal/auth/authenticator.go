// Package auth verifies credentials and registers users.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"storefront/internal/domain"
	"storefront/internal/store"

	"golang.org/x/crypto/bcrypt"
)

// HashCost is the bcrypt work factor used for new passwords.
const HashCost = bcrypt.DefaultCost

// maxSecretLen is the longest input bcrypt accepts.
const maxSecretLen = 72

var (
	// ErrEmailTaken is returned by Register when the email is already registered.
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidInput is returned by Register for empty fields or an unknown role.
	ErrInvalidInput = errors.New("invalid registration input")
	// ErrRoleNotAllowed is returned by Register when admin self-registration is disabled.
	ErrRoleNotAllowed = errors.New("role not allowed for self-registration")
)

// Reason explains a rejected verification.
type Reason int

const (
	// Accepted means the credentials matched.
	Accepted Reason = iota
	// UserNotFound means no user has the presented identifier.
	UserNotFound
	// BadCredentials means the secret did not match the stored hash.
	BadCredentials
)

func (r Reason) String() string {
	switch r {
	case Accepted:
		return "accepted"
	case UserNotFound:
		return "user_not_found"
	case BadCredentials:
		return "bad_credentials"
	}
	return "unknown"
}

// Result is the outcome of Verify. User is set only when Reason is Accepted.
type Result struct {
	User   *domain.User
	Reason Reason
}

// Ok reports whether the credentials were accepted.
func (r Result) Ok() bool {
	return r.Reason == Accepted && r.User != nil
}

// CredentialStore is the subset of the user store the authenticator needs.
type CredentialStore interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) error
}

// Authenticator checks presented secrets against stored bcrypt hashes.
type Authenticator struct {
	store       CredentialStore // User lookup and creation
	dummyHash   []byte          // Compared against for unknown users
	adminSignup bool            // Register may grant the admin role
}

// Option customises an Authenticator.
type Option func(*Authenticator)

// WithAdminSignup lets Register create admin accounts. Off by default.
func WithAdminSignup(allow bool) Option {
	return func(a *Authenticator) { a.adminSignup = allow }
}

// New builds an Authenticator. It precomputes a hash used to keep the
// unknown-user path as slow as a real comparison.
func New(store CredentialStore, opts ...Option) (*Authenticator, error) {
	dummy, err := bcrypt.GenerateFromPassword([]byte("storefront-placeholder-secret"), HashCost) // Placeholder hash
	if err != nil {
		return nil, fmt.Errorf("generate placeholder hash: %w", err)
	}
	a := &Authenticator{store: store, dummyHash: dummy}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// Verify looks up identifier and compares secret against its hash.
// Infrastructure failures come back as an error, never as a rejection.
func (a *Authenticator) Verify(ctx context.Context, identifier, secret string) (Result, error) {
	if identifier == "" || secret == "" {
		return Result{Reason: BadCredentials}, nil // Nothing to compare
	}

	user, err := a.store.FindByEmail(ctx, identifier) // Exact, case-sensitive lookup
	if errors.Is(err, store.ErrNotFound) {
		_ = bcrypt.CompareHashAndPassword(a.dummyHash, []byte(secret)) // Spend the same bcrypt work
		return Result{Reason: UserNotFound}, nil
	}
	if err != nil {
		return Result{}, fmt.Errorf("verify credentials: %w", err)
	}

	// Compare the presented secret with the stored hash
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(secret)); err != nil {
		return Result{Reason: BadCredentials}, nil // Wrong secret
	}
	return Result{User: user, Reason: Accepted}, nil
}

// Register creates a customer or admin account with a hashed password.
func (a *Authenticator) Register(ctx context.Context, name, email, secret, role string) (*domain.User, error) {
	name = strings.TrimSpace(name) // Ignore surrounding whitespace
	if role == "" {
		role = domain.RoleCustomer // Default role
	}
	if name == "" || email == "" || secret == "" || len(secret) > maxSecretLen || !domain.ValidRole(role) {
		return nil, ErrInvalidInput
	}
	if role == domain.RoleAdmin && !a.adminSignup {
		return nil, ErrRoleNotAllowed // Admins are provisioned, not self-registered
	}

	if _, err := a.store.FindByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken // Email already in use
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("check existing user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(secret), HashCost) // Hash the password
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{Email: email, Password: string(hash), Role: role, Name: name} // New user
	if err := a.store.Create(ctx, user); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, ErrEmailTaken // Lost a concurrent registration
		}
		return nil, err
	}
	return user, nil
}
