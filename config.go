package auth

import (
	"os"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/goliatone/go-errors"
	"github.com/joho/godotenv"
)

const (
	// DefaultAccessTokenTTL keeps access tokens short-lived; a stolen token
	// is only useful until the next refresh.
	DefaultAccessTokenTTL = 15 * time.Minute
	// DefaultRefreshTokenTTL bounds how long a session survives without a
	// fresh password login.
	DefaultRefreshTokenTTL = 14 * 24 * time.Hour
)

// Config holds every knob the pipeline needs. It is constructed once at
// process start and passed by reference into the codec and pipeline
// constructors; nothing reads configuration ambiently after that.
type Config struct {
	// SigningKey is the symmetric key shared by token issuance and
	// verification. Required. Rotation at runtime is not supported.
	SigningKey string

	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration

	// AllowedOrigins feeds the CORS middleware mounted by RegisterRoutes.
	AllowedOrigins []string

	// CookieSecure and CookieSameSite apply to the refresh_token cookie.
	CookieSecure   bool
	CookieSameSite string

	// ClientRedirectURI is where the federated callback sends the client,
	// with the freshly minted access token appended.
	ClientRedirectURI string

	// ProfileCompletionPath is where federated first-timers are redirected
	// until they finish registration.
	ProfileCompletionPath string
}

// Validate checks the config is usable before anything is constructed from it.
func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.SigningKey, validation.Required, validation.Length(32, 0)),
		validation.Field(&c.CookieSameSite, validation.In("Strict", "Lax", "None", "")),
	)
}

func (c Config) withDefaults() Config {
	if c.AccessTokenTTL <= 0 {
		c.AccessTokenTTL = DefaultAccessTokenTTL
	}
	if c.RefreshTokenTTL <= 0 {
		c.RefreshTokenTTL = DefaultRefreshTokenTTL
	}
	if c.CookieSameSite == "" {
		c.CookieSameSite = "Lax"
	}
	if c.ProfileCompletionPath == "" {
		c.ProfileCompletionPath = "/profile/complete"
	}
	return c
}

// ConfigFromEnv builds a Config from the process environment, loading a .env
// file first if one exists. Recognized variables:
//
//	AUTH_SIGNING_KEY        (required)
//	AUTH_ACCESS_TOKEN_TTL   (Go duration, default 15m)
//	AUTH_REFRESH_TOKEN_TTL  (Go duration, default 336h)
//	AUTH_ALLOWED_ORIGINS    (comma separated)
//	AUTH_COOKIE_SECURE      (true/false, default true)
//	AUTH_COOKIE_SAMESITE    (Strict|Lax|None, default Lax)
//	AUTH_CLIENT_REDIRECT_URI
//	AUTH_PROFILE_COMPLETION_PATH
func ConfigFromEnv() (Config, error) {
	// missing .env is fine, the environment may be populated directly
	_ = godotenv.Load()

	cfg := Config{
		SigningKey:            os.Getenv("AUTH_SIGNING_KEY"),
		ClientRedirectURI:     os.Getenv("AUTH_CLIENT_REDIRECT_URI"),
		ProfileCompletionPath: os.Getenv("AUTH_PROFILE_COMPLETION_PATH"),
		CookieSameSite:        os.Getenv("AUTH_COOKIE_SAMESITE"),
		CookieSecure:          true,
	}

	if v := os.Getenv("AUTH_COOKIE_SECURE"); v != "" {
		cfg.CookieSecure = strings.EqualFold(v, "true") || v == "1"
	}

	if v := os.Getenv("AUTH_ALLOWED_ORIGINS"); v != "" {
		for _, origin := range strings.Split(v, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, origin)
			}
		}
	}

	var err error
	if cfg.AccessTokenTTL, err = parseEnvDuration("AUTH_ACCESS_TOKEN_TTL"); err != nil {
		return Config{}, err
	}
	if cfg.RefreshTokenTTL, err = parseEnvDuration("AUTH_REFRESH_TOKEN_TTL"); err != nil {
		return Config{}, err
	}

	cfg = cfg.withDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, errors.Wrap(err, errors.CategoryValidation, "invalid auth configuration")
	}

	return cfg, nil
}

func parseEnvDuration(key string) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return 0, nil
	}

	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, errors.Wrap(err, errors.CategoryValidation, "invalid duration in "+key)
	}
	return d, nil
}
