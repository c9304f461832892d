package auth

import (
	"context"

	"github.com/goliatone/go-errors"
)

// Auther runs the credential-facing half of the pipeline: password login,
// access-token refresh, and logout revocation. The per-request bearer stage
// lives in TokenAuth.
type Auther struct {
	store    IdentityStore
	resolver *Resolver
	tokens   TokenService
	revoked  RevocationStore
	logger   Logger
}

// NewAuthenticator returns a new Auther wired over the given collaborators
func NewAuthenticator(store IdentityStore, resolver *Resolver, tokens TokenService, revoked RevocationStore) *Auther {
	return &Auther{
		store:    store,
		resolver: resolver,
		tokens:   tokens,
		revoked:  revoked,
		logger:   defLogger{},
	}
}

func (s *Auther) WithLogger(logger Logger) *Auther {
	if logger != nil {
		s.logger = logger
	}
	return s
}

// TokenService returns the codec this authenticator issues tokens with
func (s *Auther) TokenService() TokenService {
	return s.tokens
}

// Resolver returns the identity resolver, used by the federated callback
func (s *Auther) Resolver() *Resolver {
	return s.resolver
}

// Login verifies the identifier/secret pair and mints one access and one
// refresh token. A missing identity and a wrong secret both come back as
// ErrInvalidCredentials.
func (s *Auther) Login(ctx context.Context, identifier, secret string) (TokenPair, error) {
	user, err := s.store.GetByEmail(ctx, identifier)
	if err != nil {
		if errors.Is(err, ErrIdentityNotFound) {
			s.logger.Info("login rejected, unknown identifier")
			return TokenPair{}, ErrInvalidCredentials
		}
		return TokenPair{}, err
	}

	if err := ComparePasswordAndHash(secret, user.PasswordHash); err != nil {
		s.logger.Info("login rejected, secret mismatch", "user_id", user.ID.String())
		return TokenPair{}, ErrInvalidCredentials
	}

	access, err := s.tokens.IssueAccessToken(user.Email)
	if err != nil {
		return TokenPair{}, err
	}

	refresh, err := s.tokens.IssueRefreshToken(user.Email)
	if err != nil {
		return TokenPair{}, err
	}

	s.logger.Info("login succeeded", "user_id", user.ID.String())

	return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// Refresh exchanges a still-valid refresh token for a fresh access token.
// The refresh token itself is not rotated; it stays valid until its fixed
// expiry, which is a known hardening gap.
func (s *Auther) Refresh(ctx context.Context, refreshToken string) (string, error) {
	if refreshToken == "" {
		return "", ErrMissingRefreshToken
	}

	if s.tokens.IsExpired(refreshToken) {
		return "", ErrTokenExpired
	}

	revoked, err := s.revoked.IsRevoked(ctx, refreshToken)
	if err != nil {
		return "", err
	}
	if revoked {
		return "", ErrRevokedToken
	}

	claims, err := s.tokens.Validate(refreshToken)
	if err != nil {
		return "", err
	}

	if claims.Kind != TokenKindRefresh {
		return "", ErrNotRefreshToken
	}

	return s.tokens.IssueAccessToken(claims.Subject())
}

// Logout revokes the presented access token for the remainder of its
// natural lifetime. Tokens that are already dead, or absent, are a no-op:
// logout always succeeds.
func (s *Auther) Logout(ctx context.Context, accessToken string) error {
	if accessToken == "" {
		return nil
	}

	claims, err := s.tokens.Validate(accessToken)
	if err != nil {
		// an unverifiable token cannot authenticate anything, nothing to revoke
		s.logger.Debug("logout with unverifiable token, skipping revocation")
		return nil
	}

	remaining := claims.RemainingLifetime()
	if remaining <= 0 {
		return nil
	}

	return s.revoked.Revoke(ctx, accessToken, remaining)
}

// RegisterUser creates an active account with a bcrypt-hashed secret. This
// is the password-registration origin for identities; federated first sight
// is the other one.
func (s *Auther) RegisterUser(ctx context.Context, user *User, secret string) (*User, error) {
	hash, err := HashPassword(secret)
	if err != nil {
		return nil, err
	}

	user.PasswordHash = hash
	user.Role = RoleUser
	user.IsActive = true

	created, err := s.store.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info("registered user", "user_id", created.ID.String())
	return created, nil
}
