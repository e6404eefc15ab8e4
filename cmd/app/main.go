package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/hunter-yen/hunter-server/internal/bootstrap"
	"github.com/hunter-yen/hunter-server/internal/config"
	"github.com/hunter-yen/hunter-server/internal/server"

	_ "github.com/hunter-yen/hunter-server/docs"
)

// @title Hunter Game API
// @version 1.0
// @description Backend for the location-based treasure hunter game.
// @BasePath /api/v1
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Configuration failed", "error", err)
		os.Exit(1)
	}

	logFile, err := bootstrap.SetupLogger(cfg)
	if err != nil {
		slog.Error("Logger setup failed", "error", err)
		os.Exit(1)
	}
	if logFile != nil {
		defer logFile.Close()
	}

	slog.Info(bootstrap.LogMsgStartingServer, "version", cfg.Version, "environment", cfg.Environment)
	slog.Info(bootstrap.LogMsgConfigurationLoaded, "storage", cfg.Storage, "port", cfg.Port)
	for _, warning := range cfg.Warnings() {
		slog.Warn(warning)
	}

	if err := run(cfg); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	ctx := context.Background()

	repos, err := bootstrap.InitializeRepositories(ctx, cfg)
	if err != nil {
		return err
	}

	content, err := bootstrap.SyncCatalog(ctx, repos.Seeder, cfg.ContentPath)
	if err != nil {
		repos.Close()
		return err
	}

	bus, publisher, err := bootstrap.InitializeEventSystem(cfg)
	if err != nil {
		repos.Close()
		return err
	}

	games, rdb, err := bootstrap.InitializeWordleStore(ctx, cfg)
	if err != nil {
		repos.Close()
		return err
	}

	app := bootstrap.BuildServices(repos, content, publisher, games, bootstrap.OptionsFromConfig(cfg))
	if err := bootstrap.RegisterEventHandlers(bus, app); err != nil {
		repos.Close()
		return err
	}

	pool, sched := bootstrap.StartBackgroundJobs(cfg, app.EventLog)

	srv := server.NewServer(cfg.Port, cfg.APIKey, cfg.TrustedProxies, repos.Health, app.Services)

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	var runErr error
	select {
	case <-quit:
	case runErr = <-serverErr:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), bootstrap.ShutdownTimeout)
	defer cancel()

	bootstrap.GracefulShutdown(shutdownCtx, bootstrap.ShutdownComponents{
		Stream:             app.Stream,
		Server:             srv,
		Scheduler:          sched,
		WorkerPool:         pool,
		ResilientPublisher: publisher,
		Redis:              rdb,
		Repositories:       repos,
	})
	return runErr
}
