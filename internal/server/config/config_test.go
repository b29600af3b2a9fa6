package config

import (
	"crypto/ed25519"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withArgs(t *testing.T, args ...string) {
	t.Helper()
	orig := os.Args
	os.Args = append([]string{"testbin"}, args...)
	t.Cleanup(func() { os.Args = orig })
}

func defaults() *Config {
	c := &Config{}
	c.LoadDefaults()
	return c
}

func TestLoadDefaults(t *testing.T) {
	c := defaults()

	assert.Equal(t, ":50051", c.EndpointAddrGRPC)
	assert.Empty(t, c.DatabaseDSN)
	assert.Equal(t, "secretKey", c.IdentitySecret)
	assert.Equal(t, "info", c.LogLevel)
	assert.Empty(t, c.OTLPEndpoint)

	key, err := c.RootKey()
	require.NoError(t, err)
	assert.Len(t, key, ed25519.PrivateKeySize)
}

func TestLoadConfig_UsesDefaultsWithoutOverrides(t *testing.T) {
	withArgs(t)

	c := LoadConfig()
	require.NotNil(t, c, "LoadConfig must not return nil")
	assert.Empty(t, cmp.Diff(defaults(), c))
}

func TestLoadConfig_Precedence(t *testing.T) {
	dir := t.TempDir()

	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("CVBOARD_LOG_LEVEL=debug\n"), 0o600))
	t.Cleanup(func() { _ = os.Unsetenv("CVBOARD_LOG_LEVEL") })

	jsonFile := filepath.Join(dir, "cfg.json")
	require.NoError(t, os.WriteFile(jsonFile, []byte(`{"database_dsn":"from-json","endpoint_addr_grpc":":7000"}`), 0o600))

	t.Setenv("CVBOARD_DATABASE_DSN", "from-env")
	t.Setenv("CVBOARD_IDENTITY_SECRET", "env-secret")

	withArgs(t, "-e", envFile, "-c", jsonFile, "-a", ":9000")

	c := LoadConfig()
	assert.Equal(t, ":9000", c.EndpointAddrGRPC, "flag beats json")
	assert.Equal(t, "from-json", c.DatabaseDSN, "json beats env")
	assert.Equal(t, "env-secret", c.IdentitySecret)
	assert.Equal(t, "debug", c.LogLevel, "dotenv feeds the env layer")
}

func TestRootKey_Errors(t *testing.T) {
	for name, seed := range map[string]string{
		"not hex":   "zz",
		"too short": "abcd",
	} {
		t.Run(name, func(t *testing.T) {
			c := &Config{RootKeySeed: seed}
			_, err := c.RootKey()
			assert.Error(t, err)
		})
	}
}
