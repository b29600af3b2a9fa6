package main

import (
	"context"
	"os"

	"github.com/dmitrijs2005/cvboard/internal/buildinfo"
	"github.com/dmitrijs2005/cvboard/internal/client/config"
	"github.com/dmitrijs2005/cvboard/internal/client/web"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	app := web.NewApp(cfg)

	if err := app.Run(ctx); err != nil {
		os.Exit(1)
	}

}
