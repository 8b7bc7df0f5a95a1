package session

import (
	"time" // Time for token expiration

	"github.com/golang-jwt/jwt/v5" // JWT library
)

// Claims carried by the session cookie
type Claims struct {
	UserID               uint `json:"user_id"` // Custom claim for user ID
	jwt.RegisteredClaims      // Standard JWT claims, ID holds the session id
}

// signToken creates a signed token for a session
func signToken(sessionID string, userID uint, issuedAt, expiresAt time.Time, secret []byte) (string, error) {
	// Set token claims
	claims := Claims{
		UserID: userID, // Custom claim for user ID
		// Standard claims
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        sessionID,                     // Session id, key into the session store
			ExpiresAt: jwt.NewNumericDate(expiresAt), // Absolute expiry, never extended
			IssuedAt:  jwt.NewNumericDate(issuedAt),  // Issued at establish time
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims) // Create token with claims
	return token.SignedString(secret)                          // Sign the token with the secret
}

// parseToken parses and validates a token string, checking expiry against now
func parseToken(tokenStr string, secret []byte, now func() time.Time, opts ...jwt.ParserOption) (*Claims, error) {
	opts = append(opts, jwt.WithTimeFunc(now), jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (any, error) {
		return secret, nil // Return the secret key for validation
	}, opts...)
	// Check for parsing errors
	if err != nil {
		return nil, err // Return error if parsing fails
	}
	// Validate token and extract claims
	if claims, ok := token.Claims.(*Claims); ok && token.Valid && claims.ID != "" {
		return claims, nil // Return claims if valid
	}
	// Return error if token is invalid
	return nil, jwt.ErrTokenMalformed
}
