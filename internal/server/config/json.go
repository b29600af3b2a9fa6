package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/cvboard/internal/flagx"
)

// JsonConfig is the on-disk shape of the replica configuration.
type JsonConfig struct {
	EndpointAddrGRPC string `json:"endpoint_addr_grpc"`
	DatabaseDSN      string `json:"database_dsn"`
	IdentitySecret   string `json:"identity_secret"`
	RootKeySeed      string `json:"root_key_seed"`
	LogLevel         string `json:"log_level"`
	OTLPEndpoint     string `json:"otlp_endpoint"`
}

// parseJson overlays values from the JSON file named by -c or -config.
// Absent or empty fields keep their current values. An unreadable file or
// invalid JSON panics.
func parseJson(config *Config) {
	jsonConfigFile := flagx.ConfigFileFlag(os.Args[1:])

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	overlay(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	overlay(&config.DatabaseDSN, c.DatabaseDSN)
	overlay(&config.IdentitySecret, c.IdentitySecret)
	overlay(&config.RootKeySeed, c.RootKeySeed)
	overlay(&config.LogLevel, c.LogLevel)
	overlay(&config.OTLPEndpoint, c.OTLPEndpoint)
}

func overlay(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
