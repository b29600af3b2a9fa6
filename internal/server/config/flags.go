package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/cvboard/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
// Supported flags:
//
//	-a string   gRPC bind address (e.g., ":50051")
//	-d string   PostgreSQL DSN; empty keeps records in memory
//	-s string   identity token HMAC secret
//	-k string   hex Ed25519 root key seed
//	-l string   log level
//	-o string   OTLP/HTTP traces endpoint
//
// os.Args is filtered to these flags first, so -c and -e, read by the
// other layers, do not collide.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-s", "-k", "-l", "-o"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrGRPC, "a", config.EndpointAddrGRPC, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.IdentitySecret, "s", config.IdentitySecret, "identity token secret")
	fs.StringVar(&config.RootKeySeed, "k", config.RootKeySeed, "root key seed (hex)")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")
	fs.StringVar(&config.OTLPEndpoint, "o", config.OTLPEndpoint, "OTLP traces endpoint")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
