/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the Courtside stat engine server. Handles
  configuration, dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
  1. Load environment configuration, apply flag overrides
  2. Initialize SQLite store
  3. Select payment gateway (real HTTP client or offline fake)
  4. Load product catalog (plans.yaml or built-in defaults)
  5. Build the app layer and HTTP router
  6. Start server with graceful shutdown

COMMAND-LINE FLAGS:
  -port    HTTP server port (default: 8080, env PORT)
  -db      SQLite database path (default: courtside.db, env DB_PATH)
           Use ":memory:" for an in-memory database

ENVIRONMENT:
  PORT, DB_PATH, GATEWAY_URL, GATEWAY_API_KEY, PLANS_PATH.
  Without GATEWAY_URL the server runs against an in-memory fake
  gateway, which is what you want for offline development.

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (30s timeout)
  3. Close database connection
  4. Exit

EXAMPLES:
  # Run with file database
  ./server -db="./data/courtside.db"

  # Run with in-memory database
  ./server -db=":memory:"

  # Run against a real payment gateway
  GATEWAY_URL=https://pay.example.com GATEWAY_API_KEY=sk_live_x ./server

SEE ALSO:
  - config/config.go: Environment configuration
  - api/server.go: Router configuration
  - store/sqlite/sqlite.go: Database implementation
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/courtside/stat-engine/api"
	"github.com/courtside/stat-engine/app"
	"github.com/courtside/stat-engine/config"
	"github.com/courtside/stat-engine/factory"
	"github.com/courtside/stat-engine/gateway"
	"github.com/courtside/stat-engine/store/sqlite"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Flags override the environment.
	port := flag.Int("port", cfg.Port, "HTTP server port")
	dbPath := flag.String("db", cfg.DBPath, "SQLite database path")
	flag.Parse()

	// Initialize store
	st, err := sqlite.New(*dbPath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer st.Close()

	// Select gateway
	var gw gateway.Gateway
	if cfg.GatewayURL != "" {
		gw = gateway.NewHTTPClient(cfg.GatewayURL, cfg.GatewayKey)
	} else {
		log.Println("GATEWAY_URL not set, using in-memory fake gateway")
		gw = gateway.NewFake()
	}

	// Load catalog
	var catalog *factory.Catalog
	if cfg.PlansPath != "" {
		catalog, err = factory.Load(cfg.PlansPath)
		if err != nil {
			log.Fatalf("Failed to load plans from %s: %v", cfg.PlansPath, err)
		}
	} else {
		catalog = factory.Default()
	}

	// Build the app layer
	engine, err := app.New(context.Background(), app.Options{
		Store:   st,
		Gateway: gw,
		Catalog: catalog,
	})
	if err != nil {
		log.Fatalf("Failed to initialize app: %v", err)
	}

	// Create router
	router := api.NewRouter(api.NewHandler(engine))

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", *port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("🏀 Server starting on http://localhost:%d", *port)
		log.Printf("📊 API available at http://localhost:%d/api", *port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped")
}
