// Package server wires configuration, storage, services and the REST API
// into a runnable application and handles graceful shutdown.
package server

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dmitrijs2005/smartirrigation/internal/logging"
	"github.com/dmitrijs2005/smartirrigation/internal/server/config"
	"github.com/dmitrijs2005/smartirrigation/internal/server/httpapi"
	"github.com/dmitrijs2005/smartirrigation/internal/server/obs"
	"github.com/dmitrijs2005/smartirrigation/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/smartirrigation/internal/server/services"
	"github.com/gin-gonic/gin"
)

type App struct {
	config         *config.Config
	logger         logging.Logger
	repomanager    repomanager.RepositoryManager
	httpServer     *httpapi.HTTPServer
	shutdownTracer obs.ShutdownFunc
}

// NewApp connects the store (falling back to memory when it is unreachable)
// and builds the HTTP server. Tracing is enabled when an OTLP endpoint is set.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewJSONLogger(os.Stdout, c.LogLevel)

	if c.InsecureSecret() {
		logger.Warn(ctx, "JWT secret is the development default, set JWT_SECRET")
	}
	if err := httpapi.ValidateOrigins(c.AllowedOrigins); err != nil {
		return nil, err
	}
	if c.Production() {
		gin.SetMode(gin.ReleaseMode)
	}

	shutdownTracer, err := obs.InitTracer(ctx, c.OTLPEndpoint, c.Environment)
	if err != nil {
		return nil, err
	}

	m := repomanager.Connect(ctx, c, logger)

	svc := httpapi.Services{
		Users:      services.NewUserService(m, c),
		Proposals:  services.NewProposalService(m),
		WaterUsage: services.NewWaterUsageService(m),
	}

	// nil: spans go to the global provider installed by InitTracer
	hs := httpapi.NewHTTPServer(c, logger, m, svc, nil)

	return &App{
		config:         c,
		logger:         logger,
		repomanager:    m,
		httpServer:     hs,
		shutdownTracer: shutdownTracer,
	}, nil
}

func (app *App) initSignalHandler(ctx context.Context, cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		defer signal.Stop(sigs)
		select {
		case s := <-sigs:
			app.logger.Info(ctx, "Signal received", "signal", s.String())
			cancelFunc()
		case <-ctx.Done():
		}
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	if err := app.httpServer.Run(ctx); err != nil {
		app.logger.Error(ctx, "HTTP server failed", "error", err)
		cancelFunc()
	}
}

// Run serves until ctx is cancelled or a termination signal arrives, then
// releases the store connection and flushes pending spans.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "store", app.repomanager.Name(), "store_connected", app.repomanager.Available())

	app.initSignalHandler(ctx, cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	app.shutdown()
}

func (app *App) shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), app.config.StoreConnectTimeout+5*time.Second)
	defer cancel()

	if err := app.repomanager.Close(ctx); err != nil {
		app.logger.Error(ctx, "store close", "error", err)
	}
	if err := app.shutdownTracer(ctx); err != nil {
		app.logger.Error(ctx, "tracer shutdown", "error", err)
	}

	app.logger.Info(ctx, "App stopped")
}
