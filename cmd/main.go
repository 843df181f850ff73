package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	authconfig "chess-fen/internal/auth/config"
	"chess-fen/internal/di"
	predictconfig "chess-fen/internal/predict/config"
	"chess-fen/internal/shared/accesslog"
	"chess-fen/internal/shared/database"
	"chess-fen/internal/shared/logger"

	"github.com/joho/godotenv"
)

func main() {
	if err := run(); err != nil {
		log.Printf("fatal: %v", err)
		os.Exit(1)
	}
}

// run owns every resource it opens, so returning from it always closes them.
func run() error {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: Could not load .env file: %v", err)
	}

	serverCfg, err := di.LoadServerConfig()
	if err != nil {
		return fmt.Errorf("load server configuration: %w", err)
	}
	dbCfg, err := database.LoadConfig()
	if err != nil {
		return fmt.Errorf("load store configuration: %w", err)
	}
	authCfg, err := authconfig.LoadConfig()
	if err != nil {
		return fmt.Errorf("load auth configuration: %w", err)
	}
	predictCfg, err := predictconfig.LoadConfig()
	if err != nil {
		return fmt.Errorf("load predict configuration: %w", err)
	}

	appLogger := logger.NewLogger()
	access, err := accesslog.NewZapLogger(logger.IsProduction())
	if err != nil {
		return fmt.Errorf("create access logger: %w", err)
	}
	defer func() { _ = access.Sync() }()

	container := di.NewContainer(appLogger)
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := container.Close(closeCtx); err != nil {
			appLogger.WithError(err).Error("failed to close container")
		}
	}()

	initCtx, cancel := context.WithTimeout(context.Background(), dbCfg.ConnectTimeout+5*time.Second)
	err = container.InitializeStores(initCtx, dbCfg)
	cancel()
	if err != nil {
		appLogger.WithError(err).Error("failed to initialize stores")
		return err
	}

	if err := container.InitializeModules(authCfg, predictCfg, nil); err != nil {
		appLogger.WithError(err).Error("failed to initialize modules")
		return err
	}

	app := di.NewApp(container, serverCfg, access)

	serverAddr := fmt.Sprintf("%s:%s", serverCfg.Host, serverCfg.Port)
	appLogger.WithFields(map[string]interface{}{
		"addr":     serverAddr,
		"driver":   dbCfg.Driver,
		"upstream": predictCfg.UpstreamURL,
	}).Info("starting HTTP server")

	serverShutdown := make(chan error, 1)
	go func() {
		serverShutdown <- app.Listen(serverAddr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-serverShutdown:
		if err != nil {
			appLogger.WithError(err).Error("server failed")
			return err
		}
	case sig := <-quit:
		appLogger.Infof("received shutdown signal: %v", sig)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), serverCfg.ShutdownTimeout)
		defer cancel()

		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			appLogger.WithError(err).Error("server forced to shutdown")
		}
		appLogger.Info("HTTP server stopped")
	}
	return nil
}
