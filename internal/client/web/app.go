package web

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/cvboard/internal/client/client"
	"github.com/dmitrijs2005/cvboard/internal/client/config"
	"github.com/dmitrijs2005/cvboard/internal/client/ui"
	"github.com/dmitrijs2005/cvboard/internal/logging"
	"github.com/dmitrijs2005/cvboard/internal/telemetry"
	"github.com/gin-gonic/gin"
)

type App struct {
	config *config.Config
	logger logging.Logger
}

func NewApp(c *config.Config) *App {
	return &App{
		config: c,
		logger: logging.New(os.Stdout, "json", c.LogLevel),
	}
}

// Run authenticates, then serves the page until a signal arrives. The page
// is not served when no session is established.
func (app *App) Run(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer cancel()

	shutdownTracing, err := telemetry.Setup(ctx, "cvboard-web", app.config.OTLPEndpoint)
	if err != nil {
		app.logger.Warn(ctx, "tracing disabled", "error", err)
	}
	defer func() { _ = shutdownTracing(context.Background()) }()

	c, err := client.Connect(ctx, app.config, app.logger, os.Stdout)
	if err != nil {
		app.logger.Error(ctx, "no session", "error", err)
		return err
	}
	defer c.Close()

	gin.SetMode(gin.ReleaseMode)
	s := NewServer(app.config.WebAddr, c.Records, app.logger, ui.WithLocation(c.Location), ui.WithLanguage(c.Language))
	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		return err
	}

	app.logger.Info(ctx, "App stopped")
	return nil
}
