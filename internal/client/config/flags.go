package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/cvboard/internal/flagx"
)

// parseFlags populates Config fields from command-line flags. os.Args is
// filtered to the flags handled here first. -p takes no value; pass it last
// or as -p=true.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-m", "-k", "-s", "-w", "-z", "-g", "-l", "-o", "-t", "-p"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerEndpointAddr, "a", cfg.ServerEndpointAddr, "address and port of the record store")
	fs.StringVar(&cfg.Mode, "m", cfg.Mode, "mode: development or production")
	fs.StringVar(&cfg.RootKey, "k", cfg.RootKey, "pinned root key (hex)")
	fs.StringVar(&cfg.SessionDB, "s", cfg.SessionDB, "session cache database")
	fs.StringVar(&cfg.WebAddr, "w", cfg.WebAddr, "web surface listen address")
	fs.StringVar(&cfg.TimeZone, "z", cfg.TimeZone, "time zone")
	fs.StringVar(&cfg.Language, "g", cfg.Language, "skill picker language (BCP 47)")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	fs.StringVar(&cfg.OTLPEndpoint, "o", cfg.OTLPEndpoint, "OTLP traces endpoint")
	loginTimeout := fs.Int("t", int(cfg.OAuth.LoginTimeout.Seconds()), "login timeout (in seconds)")
	fs.BoolVar(&cfg.OAuth.ManualCode, "p", cfg.OAuth.ManualCode, "paste the login code")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.OAuth.LoginTimeout = time.Duration(*loginTimeout) * time.Second
}
