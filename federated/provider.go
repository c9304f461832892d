// Package federated maps third-party identity-provider profiles onto the
// attribute set the resolver needs. Each supported provider ships a variant
// of the Provider interface; dispatch is by provider name into a closed
// registry, failing explicitly for unknown names.
package federated

import (
	"sort"

	"github.com/goliatone/go-errors"
)

// Provider extracts canonical identity attributes from the raw attribute map
// a provider's user-info endpoint returned. Implementations are stateless.
type Provider interface {
	// Name returns the provider identifier (e.g. "google", "kakao").
	Name() string

	// ExtractEmail returns the account email, failing when the provider
	// payload does not carry one.
	ExtractEmail(attrs map[string]any) (string, error)

	// ExtractDisplayName returns the human-readable name, empty if absent.
	ExtractDisplayName(attrs map[string]any) string

	// ExtractProviderID returns the provider's stable user identifier.
	ExtractProviderID(attrs map[string]any) string
}

// ErrMissingEmail is returned when a provider payload has no usable email.
var ErrMissingEmail = errors.New("provider profile carries no email", errors.CategoryBadInput).
	WithCode(errors.CodeBadRequest)

// Profile is the normalized result of running a Provider over a raw
// attribute payload.
type Profile struct {
	Provider    string
	ProviderID  string
	Email       string
	DisplayName string
}

// Registry is the closed set of supported providers.
type Registry struct {
	providers map[string]Provider
}

// NewRegistry builds a registry over the given providers. Later entries with
// a duplicate name override earlier ones.
func NewRegistry(providers ...Provider) *Registry {
	r := &Registry{providers: make(map[string]Provider, len(providers))}
	for _, p := range providers {
		if p != nil {
			r.providers[p.Name()] = p
		}
	}
	return r
}

// DefaultRegistry returns the registry with every provider this backend
// federates with.
func DefaultRegistry() *Registry {
	return NewRegistry(Google{}, Kakao{}, Naver{})
}

// Lookup returns the provider registered under name.
func (r *Registry) Lookup(name string) (Provider, bool) {
	p, ok := r.providers[name]
	return p, ok
}

// Resolve dispatches into the registry and normalizes the raw attributes.
func (r *Registry) Resolve(name string, attrs map[string]any) (*Profile, error) {
	p, ok := r.Lookup(name)
	if !ok {
		return nil, errors.New("no adapter for provider "+name, errors.CategoryBadInput).
			WithCode(errors.CodeBadRequest)
	}

	email, err := p.ExtractEmail(attrs)
	if err != nil {
		return nil, err
	}

	return &Profile{
		Provider:    p.Name(),
		ProviderID:  p.ExtractProviderID(attrs),
		Email:       email,
		DisplayName: p.ExtractDisplayName(attrs),
	}, nil
}

// Names lists the registered provider names in stable order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func stringAttr(attrs map[string]any, key string) string {
	if v, ok := attrs[key].(string); ok {
		return v
	}
	return ""
}

func mapAttr(attrs map[string]any, key string) map[string]any {
	if v, ok := attrs[key].(map[string]any); ok {
		return v
	}
	return nil
}
