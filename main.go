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

	"github.com/bes-dev/flowento/internal/adapter/llm"
	"github.com/bes-dev/flowento/internal/bot"
	"github.com/bes-dev/flowento/internal/config"
	"github.com/bes-dev/flowento/internal/service"
	"github.com/bes-dev/flowento/internal/store"
	transport "github.com/bes-dev/flowento/internal/transport/http"
	"github.com/bes-dev/flowento/policy"
)

func main() {
	// Load configuration
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	log.Printf("Starting flowento...")
	log.Printf("HTTP Port: %d", cfg.HTTPPort)
	log.Printf("Model: %s", cfg.OpenAIModel)

	// Initialize store: volatile in-memory by default, sqlite when a DSN is
	// configured.
	var db store.Store
	if cfg.DatabaseURL != "" {
		log.Printf("Database: %s", cfg.DatabaseURL)
		sqliteStore, err := store.NewSQLiteStore(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Failed to initialize store: %v", err)
		}
		db = sqliteStore
	} else {
		log.Printf("Database: in-memory (volatile)")
		db = store.NewMemoryStore()
	}
	defer db.Close()

	// Initialize LLM client
	llmClient := llm.NewLLMClient(cfg.OpenAIBaseURL, cfg.OpenAIAPIKey, cfg.LLMTimeout)

	// Initialize policy engine
	ctx := context.Background()
	policyEngine, err := policy.NewDefaultEngine(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize policy engine: %v", err)
	}

	// Initialize service and bot router
	svc := service.New(db, llmClient, policyEngine, cfg)
	router := bot.NewRouter(svc, cfg.WebAppURL)

	// Create HTTP server: kanban web app API plus the internal events API
	// for the chat transport adapter.
	server := transport.NewServer(svc, router)

	// Start server
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

	log.Println("Shutting down flowento...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Failed to shutdown server gracefully: %v", err)
	}

	log.Println("flowento stopped")
}
