// Package server wires the storage, service and handlers together and runs
// the HTTP server with graceful shutdown.
package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"minibitly/config"
	"minibitly/handlers"
	"minibitly/services"
	"minibitly/storage"
)

// Run starts the URL shortener service and blocks until an interrupt
// signal arrives or startup fails.
func Run(logger *zap.Logger, cfg *config.Config) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, err := setupStorage(ctx, cfg, logger)
	if err != nil {
		return err
	}

	urlHandler, err := setupURLHandler(ctx, cfg, store, logger)
	if err != nil {
		return err
	}

	router := setupRouter(urlHandler, cfg)
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.ServerPort),
		Handler: router,
	}

	go startServer(srv, logger)

	return waitForShutdown(ctx, srv, cfg, logger)
}

// setupStorage picks the backing store: PostgreSQL when a DSN is configured,
// otherwise the in-memory store for local runs and tests.
func setupStorage(ctx context.Context, cfg *config.Config, logger *zap.Logger) (storage.Storage, error) {
	if cfg.DatabaseDSN != "" {
		store, err := storage.NewPostgresStorage(ctx, cfg.DatabaseDSN, logger)
		if err != nil {
			logger.Error("Failed to connect to PostgreSQL storage", zap.Error(err))
			return nil, err
		}
		return store, nil
	}

	logger.Warn("No database DSN configured, using in-memory storage")
	return storage.NewInMemoryStorage(cfg.StorageCapacity, logger), nil
}

func setupURLHandler(ctx context.Context, cfg *config.Config, store storage.Storage, logger *zap.Logger) (handlers.URLHandlerInterface, error) {
	handlerCtx, cancel := context.WithTimeout(ctx, cfg.RequestTimeout)
	defer cancel()

	urlService := services.NewURLService(store, cfg.ShortCodeLength, cfg.MaxGenerateAttempts)

	handler, err := handlers.NewURLHandler(handlerCtx, urlService, cfg, logger)
	if err != nil {
		logger.Error("Failed to create URL handler", zap.Error(err))
		return nil, err
	}

	logger.Debug("URL handler created successfully")
	return handler, nil
}

func setupRouter(urlHandler handlers.URLHandlerInterface, cfg *config.Config) *gin.Engine {
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	handlers.RegisterRoutes(router, urlHandler)
	return router
}

func startServer(srv *http.Server, logger *zap.Logger) {
	logger.Info("Starting server", zap.String("address", srv.Addr))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", zap.Error(err))
	}
	logger.Debug("Server stopped")
}

func waitForShutdown(ctx context.Context, srv *http.Server, cfg *config.Config, logger *zap.Logger) error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	logger.Info("Received interrupt signal. Initiating server shutdown...")

	shutdownCtx, cancel := context.WithTimeout(ctx, cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
		return err
	}

	logger.Info("Server gracefully stopped")
	return nil
}
