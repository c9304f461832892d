package auth

import (
	"context"

	"github.com/ddip/go-auth/federated"
	"github.com/goliatone/go-errors"
)

// Resolver maps a verified token subject, or a federated-provider profile,
// to a canonical local identity record, creating one on first federated
// sight.
type Resolver struct {
	store     IdentityStore
	providers *federated.Registry
	logger    Logger
}

// NewResolver creates a Resolver over the given store and provider registry.
// A nil registry means no federated providers are supported.
func NewResolver(store IdentityStore, providers *federated.Registry, logger Logger) *Resolver {
	if providers == nil {
		providers = federated.NewRegistry()
	}
	if logger == nil {
		logger = defLogger{}
	}
	return &Resolver{
		store:     store,
		providers: providers,
		logger:    logger,
	}
}

// ResolveByEmail returns the identity registered under email, or
// ErrIdentityNotFound.
func (r *Resolver) ResolveByEmail(ctx context.Context, email string) (Identity, error) {
	user, err := r.store.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	return IdentityFromUser(user), nil
}

// ResolveOrCreateFromFederated maps a provider's raw profile attributes onto
// a local identity. The first time an email is seen it creates an inactive
// placeholder record that forces a profile-completion step; afterwards it
// returns the existing identity unchanged. Unknown provider names fail with
// ErrUnsupportedProvider.
//
// The check-then-create race is closed by the unique email constraint: a
// conflicting concurrent insert is caught and the winner's record re-read,
// so two calls with the same profile never yield two identities.
func (r *Resolver) ResolveOrCreateFromFederated(ctx context.Context, providerName string, attrs map[string]any) (Identity, error) {
	if _, ok := r.providers.Lookup(providerName); !ok {
		return nil, ErrUnsupportedProvider.Clone().
			WithMetadata(map[string]any{"provider": providerName})
	}

	profile, err := r.providers.Resolve(providerName, attrs)
	if err != nil {
		return nil, err
	}

	exists, err := r.store.ExistsByEmail(ctx, profile.Email)
	if err != nil {
		return nil, err
	}

	if exists {
		return r.ResolveByEmail(ctx, profile.Email)
	}

	user, err := r.store.Create(ctx, NewFederatedUser(profile.Email, profile.DisplayName))
	if err != nil {
		if errors.Is(err, ErrEmailAlreadyExists) {
			// lost the race, somebody inserted between the check and here
			r.logger.Debug("federated create conflicted, re-reading", "provider", providerName)
			return r.ResolveByEmail(ctx, profile.Email)
		}
		return nil, err
	}

	r.logger.Info("created placeholder identity from federated login",
		"provider", providerName, "user_id", user.ID.String())

	return IdentityFromUser(user), nil
}
