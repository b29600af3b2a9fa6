// Package config loads runtime configuration for the cvboard client
// surfaces (REPL and web).
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional dotenv file selected by -e or -env-file, then CVBOARD_*
//     environment variables (see parseEnv).
//  3. Optional JSON file (see parseJson) selected by -c or -config.
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   address:port of the record store gRPC endpoint
//	-m string   mode: development or production
//	-k string   hex Ed25519 root key the store must present
//	-s string   session cache database path
//	-w string   web surface listen address
//	-z string   IANA time zone posting times are shown in
//	-g string   BCP 47 language the skill picker is collated by
//	-l string   log level
//	-o string   OTLP/HTTP traces endpoint
//	-t int      login timeout (seconds)
//	-p          paste the login code instead of running the callback server
//
// # JSON schema
//
// Durations use timex.Duration, so they can be strings like "5m" or integer
// nanoseconds:
//
//	{
//	  "server_endpoint_addr": "127.0.0.1:50051",
//	  "mode": "production",
//	  "oauth": {
//	    "client_id": "cvboard",
//	    "auth_url": "https://id.example/authorize",
//	    "token_url": "https://id.example/token",
//	    "scopes": ["openid"],
//	    "login_timeout": "5m"
//	  }
//	}
package config
