package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prajanews/cms-backend/config"
	"github.com/prajanews/cms-backend/internal/api"
	"github.com/prajanews/cms-backend/internal/auth"
	"github.com/prajanews/cms-backend/internal/storage"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Auth.JWTSecret == "" {
		log.Fatal("auth.jwtsecret must be configured")
	}

	// Initialize storage
	store, err := openStore(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}
	defer store.Close()

	// Initialize database tables
	if err := store.Initialize(); err != nil {
		log.Fatalf("Failed to initialize database tables: %v", err)
	}

	tokens := auth.TokenService{
		Secret:   []byte(cfg.Auth.JWTSecret),
		Issuer:   cfg.Auth.Issuer,
		Duration: cfg.GetTokenDuration(),
	}

	// Initialize API server
	server := api.NewServer(cfg.Server.Port, store, tokens)

	go func() {
		log.Printf("Starting API server on port %d", cfg.Server.Port)
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start API server: %v", err)
		}
	}()

	waitForShutdown(server)
}

func openStore(cfg *config.Config) (storage.Store, error) {
	if cfg.Database.Driver == "sqlite" {
		return storage.NewSQLiteStore(cfg.Database.Path)
	}
	return storage.NewPostgresStore(cfg.Database.URL)
}

func waitForShutdown(server *api.Server) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan
	log.Println("Shutting down...")

	ctx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Error shutting down server: %v", err)
	}
	log.Println("Server shut down gracefully")
}
