package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/goliatone/go-errors"
)

// TokenServiceImpl implements the TokenService interface
type TokenServiceImpl struct {
	signingKey []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	logger     Logger
}

// NewTokenService creates a new TokenService instance from the process config
func NewTokenService(cfg Config, logger Logger) TokenService {
	if logger == nil {
		logger = defLogger{}
	}

	cfg = cfg.withDefaults()

	return &TokenServiceImpl{
		signingKey: []byte(cfg.SigningKey),
		accessTTL:  cfg.AccessTokenTTL,
		refreshTTL: cfg.RefreshTokenTTL,
		logger:     logger,
	}
}

// IssueAccessToken signs a short-lived token for the given subject
func (ts *TokenServiceImpl) IssueAccessToken(subject string) (string, error) {
	return ts.issue(subject, TokenKindAccess, ts.accessTTL)
}

// IssueRefreshToken signs a long-lived token for the given subject, used
// solely to mint new access tokens
func (ts *TokenServiceImpl) IssueRefreshToken(subject string) (string, error) {
	return ts.issue(subject, TokenKindRefresh, ts.refreshTTL)
}

func (ts *TokenServiceImpl) issue(subject string, kind TokenKind, ttl time.Duration) (string, error) {
	if subject == "" {
		return "", errors.New("token subject must not be empty", errors.CategoryInternal)
	}

	now := time.Now()
	claims := &JWTClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Kind: kind,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString(ts.signingKey)
	if err != nil {
		return "", errors.Wrap(err, errors.CategoryInternal, "failed to sign JWT")
	}

	return signed, nil
}

// Validate parses and verifies a token string, returning structured claims.
// Expired tokens fail with ErrTokenExpired, bad signatures with
// ErrInvalidSignature, anything unparsable with ErrTokenMalformed.
func (ts *TokenServiceImpl) Validate(tokenString string) (*JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			ts.logger.Error("TokenService validate encountered unexpected signing method", "alg", t.Header["alg"])
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return ts.signingKey, nil
	})

	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrInvalidSignature
		default:
			return nil, errors.Wrap(err, ErrTokenMalformed.Category, ErrTokenMalformed.Message).
				WithTextCode(ErrTokenMalformed.TextCode).
				WithCode(ErrTokenMalformed.Code)
		}
	}

	claims, ok := token.Claims.(*JWTClaims)
	if !ok || !token.Valid {
		ts.logger.Error("TokenService validate could not decode claims")
		return nil, ErrTokenMalformed
	}

	return claims, nil
}

// IsExpired reports whether the token's embedded expiry is in the past,
// regardless of signature validity. It never returns an error: anything
// that cannot carry a readable expiry is treated as expired.
func (ts *TokenServiceImpl) IsExpired(tokenString string) bool {
	claims := &JWTClaims{}
	parser := jwt.NewParser()

	if _, _, err := parser.ParseUnverified(tokenString, claims); err != nil {
		return true
	}

	exp := claims.Expires()
	if exp.IsZero() {
		return true
	}

	return exp.Before(time.Now())
}
