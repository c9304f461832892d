package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenKind distinguishes the two token variants the codec mints. Both share
// one claim shape; the kind claim keeps a refresh token from being presented
// as an access token.
type TokenKind = string

const (
	TokenKindAccess  TokenKind = "access"
	TokenKindRefresh TokenKind = "refresh"
)

// JWTClaims is the claim set carried by both access and refresh tokens.
// Subject is the identity's email, matching how the rest of the backend
// keys users.
type JWTClaims struct {
	jwt.RegisteredClaims
	Kind     TokenKind `json:"kind,omitempty"`
	UserRole string    `json:"role,omitempty"`
}

// Subject returns the subject claim
func (c *JWTClaims) Subject() string {
	return c.RegisteredClaims.Subject
}

// Role returns the role claim
func (c *JWTClaims) Role() string {
	return c.UserRole
}

// Expires returns the embedded expiry, zero if absent
func (c *JWTClaims) Expires() time.Time {
	if c.RegisteredClaims.ExpiresAt != nil {
		return c.RegisteredClaims.ExpiresAt.Time
	}
	return time.Time{}
}

// IssuedAt returns the embedded issue time, zero if absent
func (c *JWTClaims) IssuedAt() time.Time {
	if c.RegisteredClaims.IssuedAt != nil {
		return c.RegisteredClaims.IssuedAt.Time
	}
	return time.Time{}
}

// RemainingLifetime is how long the token would stay naturally valid from
// now. Logout uses this as the revocation TTL so a blacklist entry never
// outlives the token it blocks.
func (c *JWTClaims) RemainingLifetime() time.Duration {
	exp := c.Expires()
	if exp.IsZero() {
		return 0
	}
	return time.Until(exp)
}
