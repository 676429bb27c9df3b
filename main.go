package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/harborgrid/gridiq/internal/adapter/assist"
	"github.com/harborgrid/gridiq/internal/config"
	"github.com/harborgrid/gridiq/internal/service"
	"github.com/harborgrid/gridiq/internal/store"
	transport "github.com/harborgrid/gridiq/internal/transport/http"
	"github.com/harborgrid/gridiq/internal/transport/ws"
	"github.com/harborgrid/gridiq/policy"
)

func main() {
	// Load .env if present; real deployments set the environment directly.
	if err := godotenv.Load(); err == nil {
		log.Printf("INFO: loaded environment from .env")
	}

	cfg := config.Load()

	log.Printf("Starting gridiq...")
	log.Printf("HTTP Port: %d", cfg.HTTPPort)
	log.Printf("Database: %s", cfg.DatabaseURL)
	log.Printf("Assist URL: %s", cfg.AssistURL)

	// Initialize store
	db, err := store.NewSQLiteStore(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer db.Close()

	// Initialize assist client
	assistClient := assist.NewClient(cfg.AssistURL, cfg.AssistTimeout)

	// Initialize policy engine
	ctx := context.Background()
	policyEngine, err := policy.NewEngine(ctx, policy.DefaultPolicy)
	if err != nil {
		log.Fatalf("Failed to initialize policy engine: %v", err)
	}

	// Initialize event stream hub
	hub := ws.NewHub()
	hubStop := make(chan struct{})
	go hub.Run(hubStop)

	// Initialize service
	svc := service.New(db, assistClient, cfg, policyEngine, hub)

	// Create HTTP server
	server := transport.NewServer(svc, hub)

	go func() {
		addr := fmt.Sprintf(":%d", cfg.HTTPPort)
		if err := server.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	log.Printf("API started on port %d", cfg.HTTPPort)

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down gridiq...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Failed to shutdown server gracefully: %v", err)
	}
	svc.Shutdown()
	close(hubStop)

	log.Println("gridiq stopped")
}
