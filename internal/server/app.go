// Package server initializes and runs the development replica: it opens the
// record storage, sets up tracing, handles graceful shutdown, and serves the
// RecordStore gRPC endpoint.
package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/cvboard/internal/logging"
	"github.com/dmitrijs2005/cvboard/internal/server/config"
	"github.com/dmitrijs2005/cvboard/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/cvboard/internal/server/services"
	"github.com/dmitrijs2005/cvboard/internal/telemetry"

	gs "github.com/dmitrijs2005/cvboard/internal/server/grpc"
)

type App struct {
	config        *config.Config
	logger        logging.Logger
	repomanager   repomanager.RepositoryManager
	recordService *services.RecordService
}

func NewApp(c *config.Config) (*App, error) {
	logger := logging.New(os.Stdout, "json", c.LogLevel)

	var rm repomanager.RepositoryManager
	if c.DatabaseDSN == "" {
		rm = repomanager.NewMemoryRepositoryManager()
	} else {
		pm, err := repomanager.NewPostgresRepositoryManager(c.DatabaseDSN)
		if err != nil {
			return nil, fmt.Errorf("db init error: %w", err)
		}
		rm = pm
	}

	return &App{
		config:        c,
		logger:        logger,
		repomanager:   rm,
		recordService: services.NewRecordService(rm),
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {
	rootKey, err := app.config.RootKey()
	if err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
		return
	}

	s := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, app.recordService, app.config.IdentitySecret, rootKey)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	shutdownTracing, err := telemetry.Setup(ctx, "cvboard-replica", app.config.OTLPEndpoint)
	if err != nil {
		app.logger.Warn(ctx, "tracing disabled", "error", err)
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			app.logger.Warn(ctx, "tracing shutdown", "error", err)
		}
	}()

	if err := app.repomanager.RunMigrations(ctx); err != nil {
		app.logger.Error(ctx, "migrations failed", "error", err)
		return
	}
	defer app.repomanager.Close()

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startGRPCServer(ctx, cancelFunc)
	}()

	wg.Wait()

	app.logger.Info(ctx, "App stopped")
}
