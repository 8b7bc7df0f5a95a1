// Package session maps opaque cookie tokens to authenticated user ids.
//
// A session lives in Redis under "session:<id>" with an absolute TTL set once
// at creation. The cookie value is a signed token naming that id, so forged or
// expired cookies are rejected before Redis is consulted. Destroying a session
// deletes the Redis key; the still-valid signature is then useless.
package session

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"storefront/internal/domain"
	"storefront/internal/store"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// DefaultTTL is the absolute lifetime of a session.
const DefaultTTL = 24 * time.Hour

// UserLookup resolves a stored user id to a fresh user record.
type UserLookup interface {
	FindByID(ctx context.Context, id uint) (*domain.User, error)
}

// Manager establishes, resolves and destroys sessions.
type Manager struct {
	rdb    *redis.Client    // Session keys live here
	users  UserLookup       // Fresh user lookup per request
	secret []byte           // HMAC key for cookie tokens
	ttl    time.Duration    // Absolute lifetime, never extended
	now    func() time.Time // Clock, swappable in tests
}

// Option customises a Manager.
type Option func(*Manager)

// WithClock overrides the time source used for issuing and validating tokens.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// NewManager returns a Manager. A non-positive ttl means DefaultTTL.
func NewManager(rdb *redis.Client, users UserLookup, secret string, ttl time.Duration, opts ...Option) (*Manager, error) {
	if secret == "" {
		return nil, errors.New("session secret must not be empty")
	}
	if ttl <= 0 {
		ttl = DefaultTTL // 24h unless configured
	}
	m := &Manager{rdb: rdb, users: users, secret: []byte(secret), ttl: ttl, now: time.Now}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// TTL is the lifetime given to new sessions.
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Establish records a new session for user and returns its token.
func (m *Manager) Establish(ctx context.Context, user *domain.User) (string, error) {
	id := uuid.NewString() // Random session id
	issued := m.now()      // Issue time for iat and exp

	if err := m.rdb.Set(ctx, key(id), user.ID, m.ttl).Err(); err != nil { // Store session with TTL
		return "", fmt.Errorf("store session: %w", err)
	}
	token, err := signToken(id, user.ID, issued, issued.Add(m.ttl), m.secret)
	if err != nil {
		_ = m.rdb.Del(ctx, key(id)).Err() // Do not leave an orphaned key
		return "", fmt.Errorf("sign session token: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"user_id":    user.ID, // User ID
		"session_id": id,      // Session ID
	}).Info("Session established")
	return token, nil
}

// Resolve returns the user behind token, or nil when the token is absent,
// malformed, expired or destroyed. Only infrastructure failures return an error.
func (m *Manager) Resolve(ctx context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, nil // No cookie
	}
	claims, err := parseToken(token, m.secret, m.now) // Check signature and expiry
	if err != nil {
		return nil, nil // Forged or expired token
	}

	stored, err := m.rdb.Get(ctx, key(claims.ID)).Result() // Look the session up in Redis
	if errors.Is(err, redis.Nil) {
		return nil, nil // Destroyed or expired session
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if stored != strconv.FormatUint(uint64(claims.UserID), 10) {
		return nil, nil // Token and store disagree
	}

	user, err := m.users.FindByID(ctx, claims.UserID) // Load the current user record
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil // User was deleted
	}
	if err != nil {
		return nil, fmt.Errorf("load session user: %w", err)
	}
	return user, nil
}

// Destroy ends the session named by token. Unknown, expired and malformed
// tokens are ignored.
func (m *Manager) Destroy(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	// Expired tokens still name a key worth deleting.
	claims, err := parseToken(token, m.secret, m.now, jwt.WithoutClaimsValidation())
	if err != nil {
		return nil
	}
	if err := m.rdb.Del(ctx, key(claims.ID)).Err(); err != nil { // Delete the session key
		return fmt.Errorf("delete session: %w", err)
	}
	logrus.WithFields(logrus.Fields{
		"user_id":    claims.UserID, // User ID
		"session_id": claims.ID,     // Session ID
	}).Info("Session destroyed")
	return nil
}

func key(id string) string {
	return "session:" + id
}
