/*
Package main is the entry point for the emerald clicker server.

It is responsible for loading configuration, initializing the global logging
system, opening the snapshot store, setting up the HTTP server, starting the
WebSocket hub, and gracefully handling operating system interrupt signals
(SIGINT, SIGTERM) for a smooth shutdown.
*/
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"emclicker/internal/app/game"
	"emclicker/internal/app/storage"
	"emclicker/internal/app/store"
	"emclicker/internal/configs"
	"emclicker/internal/handler"
	"emclicker/internal/pkg/logx"
)

func main() {
	// Load .env if present (ignored in production deployments without one).
	_ = godotenv.Load()

	cfg, err := configs.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logx.InitGlobalLogger(cfg.Environment == "development")
	logx.Logger().Info().
		Str("environment", cfg.Environment).
		Int("port", cfg.Port).
		Str("data_file", cfg.DataFile).
		Str("storage_backend", cfg.StorageBackend).
		Strs("allowed_origins", cfg.AllowedOrigins).
		Msg("Configuration loaded successfully")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := store.Open(store.NewFilePersister(cfg.DataFile))
	if err != nil {
		logx.Fatal(err, "Failed to open snapshot store")
	}

	blobs, err := storage.New(cfg.StorageConfig())
	if err != nil {
		logx.Fatal(err, "Failed to initialize avatar storage")
	}

	hub := game.NewHub(st)
	go hub.Run()

	deps := &handler.AppDeps{
		Hub:    hub,
		Config: cfg,
		Blobs:  blobs,
	}
	router := handler.Router(deps)

	serverAddr := fmt.Sprintf(":%d", cfg.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logx.Info(fmt.Sprintf("Emerald clicker server starting on http://localhost%s", serverAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logx.Fatal(err, "Server failed to start")
		}
	}()

	<-ctx.Done()
	logx.Info("Received shutdown signal. Starting graceful shutdown...")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logx.Fatal(err, "Server forced to shutdown")
	}

	hub.Shutdown()

	logx.Info("Server gracefully stopped.")
}
