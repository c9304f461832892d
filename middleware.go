package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"
)

const bearerScheme = "Bearer"

// TokenAuth is the per-request bearer-token stage. It never rejects a
// request for lacking credentials: an absent, ill-formed, or revoked token
// downgrades the request to anonymous, and route guards downstream decide
// whether anonymous is acceptable. It does reject when a token is presented
// and turns out expired or unverifiable, and when the resolved identity has
// not completed registration.
//
// The revoked-token downgrade (rather than a hard 401 at the point of
// detection) is deliberate: a logged-out token behaves exactly like no
// token at all.
func TokenAuth(tokens TokenService, resolver *Resolver, revoked RevocationStore, logger Logger) fiber.Handler {
	if logger == nil {
		logger = defLogger{}
	}

	return func(c *fiber.Ctx) error {
		// idempotent short-circuit: an earlier stage already authenticated
		if _, ok := FromFiber(c); ok {
			return c.Next()
		}

		raw := bearerToken(c)
		if raw == "" {
			return c.Next()
		}

		isRevoked, err := revoked.IsRevoked(c.UserContext(), raw)
		if err != nil {
			return err
		}
		if isRevoked {
			logger.Debug("revoked token presented, proceeding anonymous")
			return c.Next()
		}

		claims, err := tokens.Validate(raw)
		if err != nil {
			if errors.Is(err, ErrTokenExpired) {
				return ErrTokenExpired
			}
			// a presented-but-unverifiable token is treated like an expired
			// one: the client must log in again
			return ErrTokenExpired.Clone().WithMetadata(map[string]any{
				"reason": "token failed verification",
			})
		}

		// a refresh token only mints new access tokens, it never
		// authenticates a request by itself
		if claims.Kind != TokenKindAccess {
			return ErrTokenExpired.Clone().WithMetadata(map[string]any{
				"reason": "refresh token presented as bearer credential",
			})
		}

		identity, err := resolver.ResolveByEmail(c.UserContext(), claims.Subject())
		if err != nil {
			return err
		}

		// the stored record is authoritative for the role; a token-embedded
		// role claim, when present, wins for that one request
		role := claims.Role()
		if role == "" {
			role = identity.Role()
		}

		AttachToFiber(c, &AuthContext{
			Identity: identity,
			Role:     role,
		})

		// attach first, then block: error logging downstream still knows
		// who the incomplete user is
		if !identity.Active() {
			return ErrProfileIncomplete
		}

		return c.Next()
	}
}

// ErrAuthenticationRequired is raised by RequireAuthenticated when an
// anonymous request reaches a protected route.
var ErrAuthenticationRequired = errors.New("authentication required", errors.CategoryAuth).
	WithTextCode(TextCodeUnauthorized).
	WithCode(errors.CodeUnauthorized)

// RequireAuthenticated rejects requests that reached this point anonymous.
// Compose it after TokenAuth on routes that need an identified caller.
func RequireAuthenticated() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := FromFiber(c); !ok {
			return ErrAuthenticationRequired
		}
		return c.Next()
	}
}

// RequireActiveProfile rejects identified callers whose registration is
// still incomplete. The bearer stage already enforces this for token
// logins; the guard covers identities attached by other stages.
func RequireActiveProfile() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ac, ok := FromFiber(c)
		if !ok {
			return ErrAuthenticationRequired
		}

		if !ac.Identity.Active() {
			return ErrProfileIncomplete
		}

		return c.Next()
	}
}

// RequireRole rejects identified callers whose role sits below minRole.
func RequireRole(minRole UserRole) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ac, ok := FromFiber(c)
		if !ok {
			return ErrAuthenticationRequired
		}

		if !RoleIsAtLeast(ac.Role, minRole) {
			return errors.New("insufficient role", errors.CategoryAuthz).
				WithTextCode(TextCodeInvalidRequest).
				WithCode(errors.CodeForbidden).
				WithMetadata(map[string]any{"required_role": minRole})
		}

		return c.Next()
	}
}

func bearerToken(c *fiber.Ctx) string {
	header := c.Get(fiber.HeaderAuthorization)
	prefix := bearerScheme + " "
	if len(header) > len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
		return strings.TrimSpace(header[len(prefix):])
	}
	return ""
}
