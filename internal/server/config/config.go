// Package config handles configuration for the development replica,
// layering defaults, a dotenv file, environment variables, a JSON file and
// command-line flags.
package config

import (
	"crypto/ed25519"
	"encoding/hex"
	"fmt"
)

// Config holds runtime settings for the development replica.
//
// Fields:
//   - EndpointAddrGRPC: bind address for the RecordStore gRPC endpoint.
//   - DatabaseDSN: PostgreSQL DSN (pgx). Empty keeps records in memory.
//   - IdentitySecret: HMAC secret shared with the identity provider (HS256).
//   - RootKeySeed: hex Ed25519 seed of the key that certifies responses.
//   - LogLevel: debug, info, warn or error.
//   - OTLPEndpoint: OTLP/HTTP traces endpoint; empty disables tracing.
type Config struct {
	EndpointAddrGRPC string `env:"CVBOARD_GRPC_ADDR"`
	DatabaseDSN      string `env:"CVBOARD_DATABASE_DSN"`
	IdentitySecret   string `env:"CVBOARD_IDENTITY_SECRET"`
	RootKeySeed      string `env:"CVBOARD_ROOT_KEY_SEED"`
	LogLevel         string `env:"CVBOARD_LOG_LEVEL"`
	OTLPEndpoint     string `env:"CVBOARD_OTLP_ENDPOINT"`
}

// LoadDefaults populates Config with development defaults.
// NOTE: the secret and the seed are public; override them outside a laptop.
func (c *Config) LoadDefaults() {
	c.EndpointAddrGRPC = ":50051"
	c.DatabaseDSN = ""
	c.IdentitySecret = "secretKey"
	c.RootKeySeed = "9d61b19deffd5a60ba844af492ec2cc44449c5697b326919703bac031cae7f60"
	c.LogLevel = "info"
	c.OTLPEndpoint = ""
}

// LoadConfig builds a Config from defaults, then the dotenv file and
// environment, then an optional JSON file, and finally command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}

// RootKey derives the certifying key from RootKeySeed.
func (c *Config) RootKey() (ed25519.PrivateKey, error) {
	seed, err := hex.DecodeString(c.RootKeySeed)
	if err != nil {
		return nil, fmt.Errorf("root key seed: %w", err)
	}
	if len(seed) != ed25519.SeedSize {
		return nil, fmt.Errorf("root key seed: want %d bytes, got %d", ed25519.SeedSize, len(seed))
	}
	return ed25519.NewKeyFromSeed(seed), nil
}
