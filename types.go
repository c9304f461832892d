package auth

import (
	"context"
	"fmt"
	"time"
)

type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}

// Identity holds the attributes of an authenticated identity
type Identity interface {
	ID() string
	Email() string
	Nickname() string
	Role() string
	Active() bool
}

// IdentityStore is the user store the resolver reads identities from
type IdentityStore interface {
	GetByEmail(ctx context.Context, email string) (*User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, user *User) (*User, error)
}

// TokenService creates and verifies the signed, time-bound identity tokens
// presented on every request
type TokenService interface {
	IssueAccessToken(subject string) (string, error)
	IssueRefreshToken(subject string) (string, error)
	Validate(token string) (*JWTClaims, error)
	IsExpired(token string) bool
}

// RevocationStore records tokens that must be treated as invalid even though
// not yet expired. Entries self-expire with the token they blacklist.
type RevocationStore interface {
	Revoke(ctx context.Context, token string, remainingTTL time.Duration) error
	IsRevoked(ctx context.Context, token string) (bool, error)
}

// TokenPair is what a successful password login mints: a short-lived access
// token plus the longer-lived refresh token that rides in a cookie.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// LoginPayload is the credential shape the login route accepts
type LoginPayload interface {
	GetIdentifier() string
	GetSecret() string
}

type defLogger struct{}

func (d defLogger) Error(format string, args ...any) {
	fmt.Printf("[ERR] AUTH "+newline(format), args...)
}

func (d defLogger) Warn(format string, args ...any) {
	fmt.Printf("[WRN] AUTH "+newline(format), args...)
}

func (d defLogger) Info(format string, args ...any) {
	fmt.Printf("[INF] AUTH "+newline(format), args...)
}

func (d defLogger) Debug(format string, args ...any) {
	fmt.Printf("[DBG] AUTH "+newline(format), args...)
}

func newline(s string) string {
	if len(s) > 0 && s[len(s)-1] != '\n' {
		s += "\n"
	}
	return s
}
