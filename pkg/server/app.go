package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/labstack/echo/v4"

	pkgcache "StockScreener/pkg/cache"
	pkgch "StockScreener/pkg/clickhouse"
	"StockScreener/pkg/config"
	xhttp "StockScreener/pkg/http"
	pkgkafka "StockScreener/pkg/kafka"
	applogger "StockScreener/pkg/logger"
	pkgpg "StockScreener/pkg/postgres"
)

// App encapsulates the entire application lifecycle.
type App struct {
	cfg        *config.Config
	logger     *applogger.Logger
	handler    xhttp.Handler
	httpServer *xhttp.Server

	pgClient *pkgpg.Client
	chClient *pkgch.Client
	cache    pkgcache.Service
	producer *pkgkafka.Producer
}

// New creates a new App instance with all dependencies.
func New(
	cfg *config.Config,
	logger *applogger.Logger,
	handler xhttp.Handler,
	pgClient *pkgpg.Client,
	chClient *pkgch.Client,
	cache pkgcache.Service,
	producer *pkgkafka.Producer,
) *App {
	return &App{
		cfg:      cfg,
		logger:   logger,
		handler:  handler,
		pgClient: pgClient,
		chClient: chClient,
		cache:    cache,
		producer: producer,
	}
}

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	a.httpServer = xhttp.NewServer(a.handler,
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
	)
	a.httpServer.Echo().GET("/healthz", a.healthz)

	if err := a.httpServer.Start(); err != nil {
		a.logger.Error("http server start error", applogger.Error(err))
		return err
	}
	a.logger.Info("screener started",
		applogger.String("env", a.cfg.Environment),
		applogger.Int("port", a.cfg.Server.Port),
	)

	// Wait for interrupt
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	a.logger.Info("shutdown signal received")
	return a.shutdown()
}

// healthz checks all infrastructure dependencies.
func (a *App) healthz(c echo.Context) error {
	ctx := c.Request().Context()
	status := map[string]string{"status": "ok"}
	code := http.StatusOK

	if err := a.pgClient.Health(ctx); err != nil {
		status["postgres"] = err.Error()
		status["status"] = "degraded"
		code = http.StatusServiceUnavailable
	}
	if err := a.chClient.Health(ctx); err != nil {
		status["clickhouse"] = err.Error()
		status["status"] = "degraded"
		code = http.StatusServiceUnavailable
	}
	return c.JSON(code, status)
}

// shutdown gracefully stops all services.
func (a *App) shutdown() error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := a.httpServer.Stop(shutdownCtx); err != nil {
		a.logger.Error("http shutdown error", applogger.Error(err))
	}

	if a.producer != nil {
		if err := a.producer.Close(); err != nil {
			a.logger.Warn("kafka producer close error", applogger.Error(err))
		}
	}
	if closer, ok := a.cache.(interface{ Close() error }); ok && closer != nil {
		if err := closer.Close(); err != nil {
			a.logger.Warn("cache close error", applogger.Error(err))
		}
	}
	if a.chClient != nil {
		if err := a.chClient.Close(); err != nil {
			a.logger.Warn("clickhouse close error", applogger.Error(err))
		}
	}
	if a.pgClient != nil {
		if err := a.pgClient.Close(); err != nil {
			a.logger.Warn("postgres close error", applogger.Error(err))
		}
	}

	a.logger.Info("shutdown complete")
	return nil
}
