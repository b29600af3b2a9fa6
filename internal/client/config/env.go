package config

import (
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/dmitrijs2005/cvboard/internal/flagx"
	"github.com/joho/godotenv"
)

// parseEnv overlays CVBOARD_* environment variables, after loading the
// dotenv file named by -e or -env-file. Unset variables leave fields
// untouched.
func parseEnv(config *Config) {
	if envFile := flagx.EnvFileFlag(os.Args[1:]); envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			panic(err)
		}
	}

	if err := env.Parse(config); err != nil {
		panic(err)
	}
}
