package config

import (
	"crypto/ed25519"
	"encoding/hex"
	"fmt"
	"time"

	"golang.org/x/text/language"
)

// OAuth holds the identity provider settings used in production mode.
type OAuth struct {
	ClientID     string        `env:"CVBOARD_OAUTH_CLIENT_ID"`
	ClientSecret string        `env:"CVBOARD_OAUTH_CLIENT_SECRET"`
	AuthURL      string        `env:"CVBOARD_OAUTH_AUTH_URL"`
	TokenURL     string        `env:"CVBOARD_OAUTH_TOKEN_URL"`
	Scopes       []string      `env:"CVBOARD_OAUTH_SCOPES" envSeparator:","`
	RedirectAddr string        `env:"CVBOARD_OAUTH_REDIRECT_ADDR"`
	ManualCode   bool          `env:"CVBOARD_OAUTH_MANUAL_CODE"`
	LoginTimeout time.Duration `env:"CVBOARD_OAUTH_LOGIN_TIMEOUT"`
}

// Config holds runtime settings for the client.
//
// Fields:
//   - ServerEndpointAddr: host:port of the record store gRPC endpoint.
//   - Mode: "development" (anonymous) or "production" (identity provider).
//   - RootKey: hex public key the store must present; empty trusts the
//     key the store reports.
//   - SessionDB: SQLite file caching the logged-in identity.
//   - WebAddr: listen address of the web surface.
//   - TimeZone: IANA zone for posting times; "Local" uses the system zone.
//   - Language: BCP 47 tag the skill picker is collated by.
type Config struct {
	ServerEndpointAddr string `env:"CVBOARD_SERVER_ADDR"`
	Mode               string `env:"CVBOARD_MODE"`
	RootKey            string `env:"CVBOARD_ROOT_KEY"`
	SessionDB          string `env:"CVBOARD_SESSION_DB"`
	WebAddr            string `env:"CVBOARD_WEB_ADDR"`
	TimeZone           string `env:"CVBOARD_TIME_ZONE"`
	Language           string `env:"CVBOARD_LANGUAGE"`
	LogLevel           string `env:"CVBOARD_LOG_LEVEL"`
	OTLPEndpoint       string `env:"CVBOARD_OTLP_ENDPOINT"`
	OAuth              OAuth
}

// LoadDefaults populates c with development defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.Mode = "development"
	c.RootKey = ""
	c.SessionDB = "session.db"
	c.WebAddr = "127.0.0.1:8080"
	c.TimeZone = "Local"
	c.Language = "en"
	c.LogLevel = "info"
	c.OTLPEndpoint = ""
	c.OAuth = OAuth{
		Scopes:       []string{"openid"},
		RedirectAddr: "127.0.0.1:8765",
		LoginTimeout: 5 * time.Minute,
	}
}

// LoadConfig constructs a Config, applies defaults, then overlays the dotenv
// file and environment, JSON (if present) and command-line flags (if
// present). Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}

// PinnedRootKey decodes RootKey. It returns nil when none is configured.
func (c *Config) PinnedRootKey() (ed25519.PublicKey, error) {
	if c.RootKey == "" {
		return nil, nil
	}
	b, err := hex.DecodeString(c.RootKey)
	if err != nil {
		return nil, fmt.Errorf("root key: %w", err)
	}
	if len(b) != ed25519.PublicKeySize {
		return nil, fmt.Errorf("root key: want %d bytes, got %d", ed25519.PublicKeySize, len(b))
	}
	return ed25519.PublicKey(b), nil
}

// Location resolves TimeZone.
func (c *Config) Location() (*time.Location, error) {
	return time.LoadLocation(c.TimeZone)
}

// Collation parses Language.
func (c *Config) Collation() (language.Tag, error) {
	return language.Parse(c.Language)
}
