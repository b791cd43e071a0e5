// Command main is the entry point for the Startup Connect backend server.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"startupconnect/internal/cache"
	"startupconnect/internal/config"
	"startupconnect/internal/middleware"
	"startupconnect/internal/observability"
	"startupconnect/internal/server"
	"startupconnect/internal/storage"
	"startupconnect/internal/store"
)

// @title Startup Connect API
// @version 1.0
// @description Local social graph API for founders and investors: profiles, connections, startups, ideas, messaging and notifications.

// @contact.name API Support

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api
// @schemes http https

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	shutdownTracing, err := observability.InitTracing(observability.TracingConfig{
		ServiceName:    "startup-connect-api",
		ServiceVersion: "1.0.0",
		Environment:    cfg.Env,
		Enabled:        cfg.TracingEnabled,
		Exporter:       cfg.TracingExporter,
		OTLPEndpoint:   cfg.OTLPEndpoint,
		SamplerRatio:   cfg.TracingSampleRate,
	})
	if err != nil {
		log.Fatalf("Failed to initialize tracing: %v", err)
	}

	ctx := context.Background()

	backend, err := storage.Open(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to open %s storage: %v", cfg.StorageDriver, err)
	}

	st, err := store.Open(ctx, backend,
		store.WithFallbackMode(store.FallbackMode(cfg.SeedFallback)),
		store.WithStrictConnections(cfg.StrictConnections),
		store.WithKeyPrefix(cfg.StorageKeyPrefix),
		store.WithLogger(middleware.Logger),
	)
	if err != nil {
		log.Fatalf("Failed to load store: %v", err)
	}

	// Redis backs rate limits and live notification fan-out. It is optional.
	cache.InitRedis(cfg.RedisURL)

	srv, err := server.NewServer(cfg, st, cache.GetClient())
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}

	// Graceful shutdown
	done := make(chan struct{})
	go func() {
		defer close(done)
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down server...")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Printf("Server resource shutdown error: %v", err)
		}
		if err := shutdownTracing(ctx); err != nil {
			log.Printf("Tracing shutdown error: %v", err)
		}
	}()

	if err := srv.Start(); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
	<-done
}
