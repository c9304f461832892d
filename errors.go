package auth

import (
	"github.com/goliatone/go-errors"
)

// Wire codes returned to clients by the error mapper. They are stable API:
// the mobile client switches on them to decide between "log in again",
// "finish onboarding", and "fix the request".
const (
	TextCodeUnauthorized      = "UNAUTHORIZED"
	TextCodeTokenExpired      = "EXPIRED_TOKEN"
	TextCodeProfileIncomplete = "PROFILE_INCOMPLETE"
	TextCodeInvalidRequest    = "INVALID_REQUEST"
	TextCodeInternalError     = "INTERNAL_SERVER_ERROR"
)

// ErrInvalidCredentials is returned when the identifier or secret does not
// match. The two cases are deliberately indistinguishable to the caller.
var ErrInvalidCredentials = errors.New("the credentials provided are invalid", errors.CategoryAuth).
	WithTextCode(TextCodeUnauthorized).
	WithCode(errors.CodeUnauthorized)

// ErrTokenExpired is returned when a presented token is past its expiry.
var ErrTokenExpired = errors.New("token is expired", errors.CategoryAuth).
	WithTextCode(TextCodeTokenExpired).
	WithCode(errors.CodeUnauthorized)

// ErrTokenMalformed is returned when a token cannot be parsed at all.
var ErrTokenMalformed = errors.New("token is malformed", errors.CategoryAuth).
	WithTextCode(TextCodeUnauthorized).
	WithCode(errors.CodeUnauthorized)

// ErrInvalidSignature is returned when a token parses but its signature does
// not verify against the configured signing key.
var ErrInvalidSignature = errors.New("token signature is invalid", errors.CategoryAuth).
	WithTextCode(TextCodeUnauthorized).
	WithCode(errors.CodeUnauthorized)

// ErrMissingRefreshToken is returned by the refresh endpoint when the
// refresh_token cookie is absent.
var ErrMissingRefreshToken = errors.New("refresh token is missing", errors.CategoryAuth).
	WithTextCode(TextCodeUnauthorized).
	WithCode(errors.CodeUnauthorized)

// ErrNotRefreshToken is returned when the refresh endpoint is handed a token
// of the wrong kind, such as an access token.
var ErrNotRefreshToken = errors.New("token is not a refresh token", errors.CategoryAuth).
	WithTextCode(TextCodeUnauthorized).
	WithCode(errors.CodeUnauthorized)

// ErrRevokedToken is returned when a refresh token has been revoked ahead of
// its natural expiry.
var ErrRevokedToken = errors.New("token has been revoked", errors.CategoryAuth).
	WithTextCode(TextCodeUnauthorized).
	WithCode(errors.CodeUnauthorized)

// ErrProfileIncomplete is returned for identities created through federated
// login that have not completed registration. It is an authorization failure,
// not an authentication failure: the caller is identified, just blocked.
var ErrProfileIncomplete = errors.New("profile registration is incomplete", errors.CategoryAuthz).
	WithTextCode(TextCodeProfileIncomplete).
	WithCode(errors.CodeForbidden)

// ErrUnsupportedProvider is returned when no adapter matches a federated
// provider name.
var ErrUnsupportedProvider = errors.New("unsupported federated provider", errors.CategoryBadInput).
	WithTextCode(TextCodeInvalidRequest).
	WithCode(errors.CodeBadRequest)

// ErrIdentityNotFound is returned when no identity matches the given email.
var ErrIdentityNotFound = errors.New("identity not found", errors.CategoryNotFound).
	WithTextCode(TextCodeUnauthorized).
	WithCode(errors.CodeUnauthorized)

// ErrEmailAlreadyExists is returned by registration when the email is taken.
var ErrEmailAlreadyExists = errors.New("email already exists", errors.CategoryConflict).
	WithTextCode(TextCodeInvalidRequest).
	WithCode(errors.CodeConflict)
