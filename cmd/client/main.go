package main

import (
	"context"
	"os"

	"github.com/dmitrijs2005/cvboard/internal/buildinfo"
	"github.com/dmitrijs2005/cvboard/internal/client/cli"
	"github.com/dmitrijs2005/cvboard/internal/client/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	app := cli.NewApp(cfg)

	if err := app.Run(ctx); err != nil {
		os.Exit(1)
	}

}
