package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/regexboard/internal/app"
	"github.com/kailas-cloud/regexboard/internal/config"
	"github.com/kailas-cloud/regexboard/internal/db/factory"
	logpkg "github.com/kailas-cloud/regexboard/internal/logger"
	chiTransport "github.com/kailas-cloud/regexboard/internal/transport/chi"
	"github.com/kailas-cloud/regexboard/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting regexboard API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("storage_driver", cfg.Storage.Driver),
		zap.Duration("match_timeout", cfg.Matching.Timeout()),
	)

	store, err := factory.New(cfg.Storage)
	if err != nil {
		logger.Fatal("Failed to create store", zap.Error(err))
	}
	defer store.Close()

	ctx := logpkg.ContextWithLogger(context.Background(), logger)
	if err := store.WaitForReady(ctx, time.Duration(cfg.Storage.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Store not ready", zap.Error(err))
	}
	logger.Info("Connected to store")

	services := app.New(store, app.Settings{
		KeyPrefix:       cfg.Storage.KeyPrefix,
		FillerSentences: cfg.Document.FillerSentences,
		MatchTimeout:    cfg.Matching.Timeout(),
		Instrumented:    true,
	}, logger)

	// Seed the document up front so the first request does not race to create it.
	if _, err := services.Documents.Load(ctx); err != nil {
		logger.Fatal("Failed to load document", zap.Error(err))
	}

	server := chiTransport.NewServer(services.Dashboard, services.Patterns, services.Health, logger)
	handler := chiTransport.NewRouter(server, logger, cfg.Auth.APIKeys)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}
