package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/cvboard/internal/client/agent"
	"github.com/dmitrijs2005/cvboard/internal/client/config"
	"github.com/dmitrijs2005/cvboard/internal/client/records"
	"github.com/dmitrijs2005/cvboard/internal/client/repositories"
	"github.com/dmitrijs2005/cvboard/internal/client/session"
	"github.com/dmitrijs2005/cvboard/internal/logging"
	"golang.org/x/text/language"
)

type Client struct {
	Session  *session.Session
	Records  *records.Client
	Location *time.Location
	Language language.Tag

	provider session.IdentityProvider
	repos    *repositories.Repositories
}

// Connect authenticates against the store named by cfg. Login prompts go
// to out.
func Connect(ctx context.Context, cfg *config.Config, logger logging.Logger, out io.Writer) (*Client, error) {
	mode, err := session.ParseMode(cfg.Mode)
	if err != nil {
		return nil, err
	}

	loc, err := cfg.Location()
	if err != nil {
		return nil, fmt.Errorf("time zone: %w", err)
	}

	lang, err := cfg.Collation()
	if err != nil {
		return nil, fmt.Errorf("language: %w", err)
	}

	pinned, err := cfg.PinnedRootKey()
	if err != nil {
		return nil, err
	}

	var agentOpts []agent.Option
	if pinned != nil {
		agentOpts = append(agentOpts, agent.WithPinnedRootKey(pinned))
	}

	c := &Client{Location: loc, Language: lang}

	if mode == session.ModeProduction {
		c.repos, err = repositories.Open(ctx, cfg.SessionDB)
		if err != nil {
			return nil, fmt.Errorf("session cache: %w", err)
		}
		c.provider = session.NewOAuthProvider(session.OAuthConfig{
			ClientID:     cfg.OAuth.ClientID,
			ClientSecret: cfg.OAuth.ClientSecret,
			AuthURL:      cfg.OAuth.AuthURL,
			TokenURL:     cfg.OAuth.TokenURL,
			Scopes:       cfg.OAuth.Scopes,
			RedirectAddr: cfg.OAuth.RedirectAddr,
			ManualCode:   cfg.OAuth.ManualCode,
		}, c.repos.Metadata, session.WithProviderLogger(logger), session.WithOutput(out))
	}

	authCtx := ctx
	if cfg.OAuth.LoginTimeout > 0 {
		var cancel context.CancelFunc
		authCtx, cancel = context.WithTimeout(ctx, cfg.OAuth.LoginTimeout)
		defer cancel()
	}

	authenticator := session.NewAuthenticator(mode, c.provider, cfg.ServerEndpointAddr, logger, agentOpts...)
	s, err := authenticator.Authenticate(authCtx)
	if err != nil {
		c.closeRepos()
		return nil, err
	}

	c.Session = s
	c.Records = records.NewClient(s.Agent)
	return c, nil
}

// Logout forgets the cached identity. It is a no-op in development mode.
func (c *Client) Logout(ctx context.Context) error {
	if c.provider == nil {
		return nil
	}
	return c.provider.Logout(ctx)
}

func (c *Client) Close() error {
	var err error
	if c.Session != nil {
		err = c.Session.Close()
	}
	return errors.Join(err, c.closeRepos())
}

func (c *Client) closeRepos() error {
	if c.repos == nil {
		return nil
	}
	return c.repos.Close()
}
