package auth

import (
	"context"
	"fmt"
	"net/url"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"
	"github.com/nyaruka/phonenumbers"
)

// RefreshTokenCookie is the cookie the refresh token rides in.
const RefreshTokenCookie = "refresh_token"

// ProviderClient is the external collaborator that resolves a federated
// provider's authorization code into the raw profile attributes of the
// provider's user-info endpoint. The OAuth transport lives behind it.
type ProviderClient interface {
	FetchProfile(ctx context.Context, provider, code string) (map[string]any, error)
}

// HTTPController exposes the pipeline's credential endpoints.
type HTTPController struct {
	auther   *Auther
	cfg      Config
	provider ProviderClient
	logger   Logger
}

// NewHTTPController creates the controller over an authenticator. The
// provider client may be nil when federated login is disabled.
func NewHTTPController(auther *Auther, cfg Config, provider ProviderClient) *HTTPController {
	return &HTTPController{
		auther:   auther,
		cfg:      cfg.withDefaults(),
		provider: provider,
		logger:   defLogger{},
	}
}

func (h *HTTPController) WithLogger(logger Logger) *HTTPController {
	if logger != nil {
		h.logger = logger
	}
	return h
}

// LoginRequest is the password-login payload
type LoginRequest struct {
	Identifier string `json:"identifier"`
	Secret     string `json:"secret"`
}

func (r LoginRequest) GetIdentifier() string { return r.Identifier }
func (r LoginRequest) GetSecret() string     { return r.Secret }

var _ LoginPayload = LoginRequest{}

// Validate will validate the payload
func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Identifier, validation.Required, is.Email),
		validation.Field(&r.Secret, validation.Required),
	)
}

// Login handles POST /login: verifies credentials, returns the access token
// in the Authorization header and body, and sets the refresh-token cookie.
func (h *HTTPController) Login(c *fiber.Ctx) error {
	payload := new(LoginRequest)
	if err := c.BodyParser(payload); err != nil {
		return badPayload(err)
	}

	if err := payload.Validate(); err != nil {
		return invalidPayload(err)
	}

	pair, err := h.auther.Login(c.UserContext(), payload.GetIdentifier(), payload.GetSecret())
	if err != nil {
		return err
	}

	h.setRefreshCookie(c, pair.RefreshToken)
	c.Set(fiber.HeaderAuthorization, bearerScheme+" "+pair.AccessToken)

	return c.JSON(fiber.Map{"access_token": pair.AccessToken})
}

// Logout handles POST /logout: revokes the presented access token, if any,
// for its remaining lifetime. Always answers 200.
func (h *HTTPController) Logout(c *fiber.Ctx) error {
	if err := h.auther.Logout(c.UserContext(), bearerToken(c)); err != nil {
		return err
	}

	h.clearRefreshCookie(c)

	return c.JSON(fiber.Map{"message": "logged out"})
}

// RefreshToken handles POST /refresh-token: exchanges the refresh-token
// cookie for a new access token. The refresh token is not rotated.
func (h *HTTPController) RefreshToken(c *fiber.Ctx) error {
	refresh := c.Cookies(RefreshTokenCookie)
	if refresh == "" {
		return ErrMissingRefreshToken
	}

	access, err := h.auther.Refresh(c.UserContext(), refresh)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"newAccessToken": access})
}

// RegisterRequest is the password-registration payload
type RegisterRequest struct {
	Email         string `json:"email"`
	Password      string `json:"password"`
	Username      string `json:"username"`
	Nickname      string `json:"nickname"`
	Phone         string `json:"phone_number"`
	BankType      string `json:"bank_type"`
	Account       string `json:"account"`
	AccountHolder string `json:"account_holder"`
}

// Validate will validate the payload
func (r RegisterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, validation.Length(6, 100), is.Email),
		validation.Field(&r.Password, validation.Required, validation.Length(8, 100)),
		validation.Field(&r.Username, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Nickname, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Phone, validation.Required, validation.By(validPhoneNumber("KR"))),
	)
}

// validPhoneNumber validates against the national numbering plan rather
// than a digit-count heuristic.
func validPhoneNumber(region string) validation.RuleFunc {
	return func(value any) error {
		s, _ := value.(string)
		if s == "" {
			return nil
		}

		num, err := phonenumbers.Parse(s, region)
		if err != nil {
			return fmt.Errorf("unparsable phone number")
		}
		if !phonenumbers.IsValidNumber(num) {
			return fmt.Errorf("invalid phone number")
		}
		return nil
	}
}

// Register handles POST /register: creates an active account.
func (h *HTTPController) Register(c *fiber.Ctx) error {
	payload := new(RegisterRequest)
	if err := c.BodyParser(payload); err != nil {
		return badPayload(err)
	}

	if err := payload.Validate(); err != nil {
		return invalidPayload(err)
	}

	user, err := h.auther.RegisterUser(c.UserContext(), &User{
		Email:         payload.Email,
		Username:      payload.Username,
		Nickname:      payload.Nickname,
		Phone:         payload.Phone,
		BankType:      payload.BankType,
		Account:       payload.Account,
		AccountHolder: payload.AccountHolder,
	}, payload.Password)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(user)
}

// FederatedCallback handles the provider redirect: it resolves the
// provider's profile into a local identity (creating a placeholder one on
// first sight) and issues an access token. Incomplete profiles are sent to
// the completion route instead of receiving a token.
func (h *HTTPController) FederatedCallback(c *fiber.Ctx) error {
	if h.provider == nil {
		return ErrUnsupportedProvider
	}

	providerName := c.Params("provider")
	code := c.Query("code")
	if code == "" {
		return errors.New("authorization code is missing", errors.CategoryBadInput).
			WithTextCode(TextCodeInvalidRequest).
			WithCode(errors.CodeBadRequest)
	}

	attrs, err := h.provider.FetchProfile(c.UserContext(), providerName, code)
	if err != nil {
		return err
	}

	identity, err := h.auther.Resolver().ResolveOrCreateFromFederated(c.UserContext(), providerName, attrs)
	if err != nil {
		return err
	}

	if !identity.Active() {
		return c.Redirect(h.cfg.ProfileCompletionPath, fiber.StatusFound)
	}

	access, err := h.auther.TokenService().IssueAccessToken(identity.Email())
	if err != nil {
		return err
	}

	// a token could have been minted and revoked for this user in the same
	// instant window; refuse to hand out a blacklisted one
	revoked, err := h.auther.revoked.IsRevoked(c.UserContext(), access)
	if err != nil {
		return err
	}
	if revoked {
		return ErrRevokedToken
	}

	target := h.cfg.ClientRedirectURI + "?accessToken=" + url.QueryEscape(access)
	return c.Redirect(target, fiber.StatusFound)
}

func (h *HTTPController) setRefreshCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     RefreshTokenCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.cfg.RefreshTokenTTL.Seconds()),
		HTTPOnly: true,
		Secure:   h.cfg.CookieSecure,
		SameSite: h.cfg.CookieSameSite,
	})
}

func (h *HTTPController) clearRefreshCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     RefreshTokenCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HTTPOnly: true,
		Secure:   h.cfg.CookieSecure,
		SameSite: h.cfg.CookieSameSite,
	})
}

func badPayload(err error) error {
	return errors.Wrap(err, errors.CategoryBadInput, "failed to parse request body").
		WithTextCode(TextCodeInvalidRequest).
		WithCode(errors.CodeBadRequest)
}

func invalidPayload(err error) error {
	return errors.Wrap(err, errors.CategoryValidation, "invalid request payload").
		WithTextCode(TextCodeInvalidRequest).
		WithCode(errors.CodeBadRequest).
		WithMetadata(map[string]any{"detail": err.Error()})
}
