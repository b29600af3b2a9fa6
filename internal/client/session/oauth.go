package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/dmitrijs2005/cvboard/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/cvboard/internal/common"
	"github.com/dmitrijs2005/cvboard/internal/logging"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/term"
)

const (
	callbackPath = "/callback"

	principalCacheKey = "identity.principal"
	tokenCacheKey     = "identity.token"

	// manualRedirectURL asks the provider to show the code instead of
	// redirecting.
	manualRedirectURL = "urn:ietf:wg:oauth:2.0:oob"
)

// readCode is a test seam for term.ReadPassword.
var readCode = term.ReadPassword

type OAuthConfig struct {
	ClientID     string
	ClientSecret string
	AuthURL      string
	TokenURL     string
	Scopes       []string
	// RedirectAddr is the loopback address the callback server listens on.
	RedirectAddr string
	// ManualCode makes the user paste the code instead of running the
	// callback server.
	ManualCode bool
}

// OAuthProvider logs in with the authorization-code flow with PKCE and keeps
// the resulting identity in the local session cache.
type OAuthProvider struct {
	config  OAuthConfig
	cache   metadata.Repository
	logger  logging.Logger
	out     io.Writer
	now     func() time.Time
	showURL func(authURL string) error
}

type ProviderOption func(*OAuthProvider)

func WithProviderLogger(l logging.Logger) ProviderOption {
	return func(p *OAuthProvider) { p.logger = l }
}

// WithOutput sets where the login prompts are written. Defaults to stdout.
func WithOutput(w io.Writer) ProviderOption {
	return func(p *OAuthProvider) { p.out = w }
}

func NewOAuthProvider(c OAuthConfig, cache metadata.Repository, opts ...ProviderOption) *OAuthProvider {
	p := &OAuthProvider{
		config: c,
		cache:  cache,
		logger: logging.Nop(),
		out:    os.Stdout,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.logger = p.logger.With("module", "session")
	if p.showURL == nil {
		p.showURL = p.printURL
	}
	return p
}

func (p *OAuthProvider) oauthConfig(redirectURL string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     p.config.ClientID,
		ClientSecret: p.config.ClientSecret,
		RedirectURL:  redirectURL,
		Scopes:       p.config.Scopes,
		Endpoint: oauth2.Endpoint{
			AuthURL:  p.config.AuthURL,
			TokenURL: p.config.TokenURL,
		},
	}
}

func (p *OAuthProvider) printURL(authURL string) error {
	_, err := fmt.Fprintf(p.out, "Open this address in a browser to log in:\n%s\n", authURL)
	return err
}

func (p *OAuthProvider) IsAuthenticated(ctx context.Context) (bool, error) {
	if n, err := p.cache.Purge(ctx, p.now()); err != nil {
		return false, err
	} else if n > 0 {
		p.logger.Debug(ctx, "expired identity purged")
	}

	e, err := p.cache.Get(ctx, tokenCacheKey)
	if errors.Is(err, common.ErrorNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return !e.Expired(p.now()), nil
}

func (p *OAuthProvider) GetIdentity(ctx context.Context) (Identity, error) {
	principal, err := p.cache.Get(ctx, principalCacheKey)
	if err != nil {
		return Identity{}, p.noSession(err)
	}
	token, err := p.cache.Get(ctx, tokenCacheKey)
	if err != nil {
		return Identity{}, p.noSession(err)
	}
	if token.Expired(p.now()) {
		return Identity{}, common.ErrNoSession
	}

	return Identity{Principal: principal.Value, Token: token.Value, ExpiresAt: token.ExpiresAt}, nil
}

func (p *OAuthProvider) noSession(err error) error {
	if errors.Is(err, common.ErrorNotFound) {
		return common.ErrNoSession
	}
	return err
}

func (p *OAuthProvider) Logout(ctx context.Context) error {
	return p.cache.Clear(ctx)
}

// Login shows the authorization URL, waits for the code, exchanges it and
// caches the identity.
func (p *OAuthProvider) Login(ctx context.Context) (Identity, error) {
	state := uuid.NewString()
	verifier := oauth2.GenerateVerifier()

	var (
		code string
		cfg  *oauth2.Config
		err  error
	)
	if p.config.ManualCode {
		cfg = p.oauthConfig(manualRedirectURL)
		code, err = p.manualCode(ctx, cfg, state, verifier)
	} else {
		cfg, code, err = p.callbackCode(ctx, state, verifier)
	}
	if err != nil {
		return Identity{}, err
	}

	tok, err := cfg.Exchange(ctx, code, oauth2.VerifierOption(verifier))
	if err != nil {
		return Identity{}, fmt.Errorf("code exchange: %w", err)
	}

	identity, err := p.identityFromToken(tok)
	if err != nil {
		return Identity{}, err
	}

	if err := p.store(ctx, identity); err != nil {
		return Identity{}, err
	}

	p.logger.Info(ctx, "logged in", "principal", identity.Principal)
	return identity, nil
}

func (p *OAuthProvider) authCodeURL(cfg *oauth2.Config, state, verifier string) string {
	return cfg.AuthCodeURL(state, oauth2.S256ChallengeOption(verifier))
}

func (p *OAuthProvider) manualCode(ctx context.Context, cfg *oauth2.Config, state, verifier string) (string, error) {
	if err := p.showURL(p.authCodeURL(cfg, state, verifier)); err != nil {
		return "", err
	}
	if _, err := fmt.Fprint(p.out, "Paste the code: "); err != nil {
		return "", err
	}

	raw, err := readCode(int(os.Stdin.Fd()))
	fmt.Fprintln(p.out)
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrLoginAbandoned, err)
	}

	code := strings.TrimSpace(string(raw))
	clear(raw)
	if code == "" {
		return "", common.ErrLoginAbandoned
	}
	return code, nil
}

type callbackResult struct {
	code string
	err  error
}

// callbackCode serves the redirect target on the loopback address until it
// is hit once or ctx ends.
func (p *OAuthProvider) callbackCode(ctx context.Context, state, verifier string) (*oauth2.Config, string, error) {
	lis, err := net.Listen("tcp", p.config.RedirectAddr)
	if err != nil {
		return nil, "", fmt.Errorf("callback listener: %w", err)
	}

	cfg := p.oauthConfig("http://" + lis.Addr().String() + callbackPath)
	results := make(chan callbackResult, 1)

	router := gin.New()
	router.Use(gin.Recovery())
	router.GET(callbackPath, func(c *gin.Context) {
		res := callbackResult{code: c.Query("code")}
		switch {
		case c.Query("error") != "":
			res.err = fmt.Errorf("%w: %s", common.ErrLoginAbandoned, c.Query("error"))
		case c.Query("state") != state:
			res.err = fmt.Errorf("%w: state mismatch", common.ErrLoginAbandoned)
		case res.code == "":
			res.err = fmt.Errorf("%w: no code", common.ErrLoginAbandoned)
		}

		select {
		case results <- res:
		default:
		}

		if res.err != nil {
			c.String(http.StatusBadRequest, "Login failed. You can close this window.")
			return
		}
		c.String(http.StatusOK, "Login complete. You can close this window.")
	})

	srv := &http.Server{Handler: router, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.Serve(lis); err != nil && !errors.Is(err, http.ErrServerClosed) {
			p.logger.Error(ctx, "callback server failed", "error", err)
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := p.showURL(p.authCodeURL(cfg, state, verifier)); err != nil {
		return nil, "", err
	}

	select {
	case res := <-results:
		if res.err != nil {
			return nil, "", res.err
		}
		return cfg, res.code, nil
	case <-ctx.Done():
		return nil, "", fmt.Errorf("%w: %v", common.ErrLoginAbandoned, ctx.Err())
	}
}

// identityFromToken prefers the id_token; otherwise the access token must
// itself be a JWT. Claims are read without verification: the store checks
// the signature on every call.
func (p *OAuthProvider) identityFromToken(tok *oauth2.Token) (Identity, error) {
	raw := tok.AccessToken
	if idToken, ok := tok.Extra("id_token").(string); ok && idToken != "" {
		raw = idToken
	}

	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return Identity{}, fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}
	if claims.Subject == "" {
		return Identity{}, fmt.Errorf("%w: no subject", common.ErrInvalidToken)
	}

	expiresAt := tok.Expiry
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}
	if expiresAt.IsZero() {
		return Identity{}, fmt.Errorf("%w: no expiry", common.ErrInvalidToken)
	}

	return Identity{Principal: claims.Subject, Token: raw, ExpiresAt: expiresAt}, nil
}

func (p *OAuthProvider) store(ctx context.Context, i Identity) error {
	if err := p.cache.Set(ctx, principalCacheKey, metadata.Entry{Value: i.Principal, ExpiresAt: i.ExpiresAt}); err != nil {
		return err
	}
	return p.cache.Set(ctx, tokenCacheKey, metadata.Entry{Value: i.Token, ExpiresAt: i.ExpiresAt})
}
