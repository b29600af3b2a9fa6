package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/cvboard/internal/flagx"
	"github.com/dmitrijs2005/cvboard/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
type JsonConfig struct {
	ServerEndpointAddr string    `json:"server_endpoint_addr"`
	Mode               string    `json:"mode"`
	RootKey            string    `json:"root_key"`
	SessionDB          string    `json:"session_db"`
	WebAddr            string    `json:"web_addr"`
	TimeZone           string    `json:"time_zone"`
	Language           string    `json:"language"`
	LogLevel           string    `json:"log_level"`
	OTLPEndpoint       string    `json:"otlp_endpoint"`
	OAuth              JsonOAuth `json:"oauth"`
}

type JsonOAuth struct {
	ClientID     string         `json:"client_id"`
	ClientSecret string         `json:"client_secret"`
	AuthURL      string         `json:"auth_url"`
	TokenURL     string         `json:"token_url"`
	Scopes       []string       `json:"scopes"`
	RedirectAddr string         `json:"redirect_addr"`
	ManualCode   *bool          `json:"manual_code"`
	LoginTimeout timex.Duration `json:"login_timeout"`
}

// parseJson overlays Config with values loaded from the JSON file named by
// -c or -config. Absent or empty fields keep their current values.
// Panics on read or unmarshal errors.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.ConfigFileFlag(os.Args[1:])
	if jsonConfigFile == "" {
		return
	}

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	overlay(&cfg.ServerEndpointAddr, jc.ServerEndpointAddr)
	overlay(&cfg.Mode, jc.Mode)
	overlay(&cfg.RootKey, jc.RootKey)
	overlay(&cfg.SessionDB, jc.SessionDB)
	overlay(&cfg.WebAddr, jc.WebAddr)
	overlay(&cfg.TimeZone, jc.TimeZone)
	overlay(&cfg.Language, jc.Language)
	overlay(&cfg.LogLevel, jc.LogLevel)
	overlay(&cfg.OTLPEndpoint, jc.OTLPEndpoint)

	overlay(&cfg.OAuth.ClientID, jc.OAuth.ClientID)
	overlay(&cfg.OAuth.ClientSecret, jc.OAuth.ClientSecret)
	overlay(&cfg.OAuth.AuthURL, jc.OAuth.AuthURL)
	overlay(&cfg.OAuth.TokenURL, jc.OAuth.TokenURL)
	overlay(&cfg.OAuth.RedirectAddr, jc.OAuth.RedirectAddr)
	if len(jc.OAuth.Scopes) > 0 {
		cfg.OAuth.Scopes = jc.OAuth.Scopes
	}
	if jc.OAuth.ManualCode != nil {
		cfg.OAuth.ManualCode = *jc.OAuth.ManualCode
	}
	if jc.OAuth.LoginTimeout.Duration != 0 {
		cfg.OAuth.LoginTimeout = time.Duration(jc.OAuth.LoginTimeout.Duration)
	}
}

func overlay(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
