package auth

import (
	"context"

	"github.com/gofiber/fiber/v2"
)

// AuthContext is the request-scoped result of a successful authentication
// stage: the resolved identity plus the role claim granted by the token.
// It exists only for the duration of one request and is never shared.
type AuthContext struct {
	Identity Identity
	Role     UserRole
}

var authCtxKey = &contextKey{"auth"}

type contextKey struct {
	name string
}

// LocalsAuthKey is where the middleware stores the AuthContext in fiber
// locals, mirroring the std-context attachment.
const LocalsAuthKey = "auth_context"

// WithContext sets the AuthContext in the given context
func WithContext(ctx context.Context, ac *AuthContext) context.Context {
	return context.WithValue(ctx, authCtxKey, ac)
}

// FromContext finds the AuthContext in the std context.
func FromContext(ctx context.Context) (*AuthContext, bool) {
	raw, ok := ctx.Value(authCtxKey).(*AuthContext)
	return raw, ok
}

// FromFiber finds the AuthContext attached to the current request, if any.
func FromFiber(c *fiber.Ctx) (*AuthContext, bool) {
	raw, ok := c.Locals(LocalsAuthKey).(*AuthContext)
	return raw, ok
}

// AttachToFiber stores the AuthContext on the request, in fiber locals and in
// the user context. An earlier stage attaching one makes the bearer stage
// short-circuit.
func AttachToFiber(c *fiber.Ctx, ac *AuthContext) {
	c.Locals(LocalsAuthKey, ac)
	c.SetUserContext(WithContext(c.UserContext(), ac))
}
