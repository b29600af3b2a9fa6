// Package session resolves the identity the client calls the store as and
// produces the ready-to-use agent bound to it.
package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/cvboard/internal/client/agent"
	"github.com/dmitrijs2005/cvboard/internal/common"
	"github.com/dmitrijs2005/cvboard/internal/logging"
)

// Session is an authenticated handle: the identity and an agent that has
// already fetched the store's root key.
type Session struct {
	Identity Identity
	Agent    *agent.Agent
}

func (s *Session) Close() error {
	return s.Agent.Close()
}

type Authenticator struct {
	mode        Mode
	provider    IdentityProvider
	endpointURL string
	logger      logging.Logger
	agentOpts   []agent.Option
}

// NewAuthenticator returns an Authenticator for the store at endpointURL.
// provider may be nil in development mode.
func NewAuthenticator(mode Mode, provider IdentityProvider, endpointURL string, logger logging.Logger, agentOpts ...agent.Option) *Authenticator {
	return &Authenticator{
		mode:        mode,
		provider:    provider,
		endpointURL: endpointURL,
		logger:      logger.With("module", "authenticator"),
		agentOpts:   agentOpts,
	}
}

// Authenticate resolves the identity for the configured mode, logging in
// when needed, then builds the agent and fetches the root key. A cached
// identity the store rejects is discarded and replaced by one fresh login.
// No session is returned on any failure.
func (a *Authenticator) Authenticate(ctx context.Context) (*Session, error) {
	identity, cached, err := a.identity(ctx)
	if err != nil {
		return nil, err
	}

	s, err := a.open(ctx, identity)
	if err == nil || !cached || !errors.Is(err, common.ErrUnauthorized) {
		return s, err
	}

	a.logger.Warn(ctx, "cached identity rejected by the store", "principal", identity.Principal)
	if err := a.provider.Logout(ctx); err != nil {
		return nil, fmt.Errorf("logout: %w", err)
	}

	identity, err = a.login(ctx)
	if err != nil {
		return nil, err
	}
	return a.open(ctx, identity)
}

func (a *Authenticator) open(ctx context.Context, identity Identity) (*Session, error) {
	opts := append([]agent.Option{
		agent.WithLogger(a.logger),
		agent.WithIdentity(identity.Principal, identity.Token),
	}, a.agentOpts...)

	ag, err := agent.New(a.endpointURL, opts...)
	if err != nil {
		return nil, fmt.Errorf("agent: %w", err)
	}

	if err := ag.FetchRootKey(ctx); err != nil {
		_ = ag.Close()
		return nil, fmt.Errorf("fetch root key: %w", err)
	}

	a.logger.Info(ctx, "session ready", "mode", a.mode, "principal", identity.Principal)
	return &Session{Identity: identity, Agent: ag}, nil
}

// identity reports whether the returned identity came from the provider's
// cache.
func (a *Authenticator) identity(ctx context.Context) (Identity, bool, error) {
	switch a.mode {
	case ModeDevelopment:
		return Anonymous(), false, nil
	case ModeProduction:
	default:
		return Identity{}, false, fmt.Errorf("unknown mode %q", a.mode)
	}

	if a.provider == nil {
		return Identity{}, false, errors.New("production mode needs an identity provider")
	}

	ok, err := a.provider.IsAuthenticated(ctx)
	if err != nil {
		return Identity{}, false, fmt.Errorf("identity check: %w", err)
	}
	if ok {
		identity, err := a.provider.GetIdentity(ctx)
		return identity, err == nil, err
	}

	identity, err := a.login(ctx)
	return identity, false, err
}

func (a *Authenticator) login(ctx context.Context) (Identity, error) {
	a.logger.Info(ctx, "login required")
	identity, err := a.provider.Login(ctx)
	if err != nil {
		return Identity{}, fmt.Errorf("login: %w", err)
	}
	return identity, nil
}
