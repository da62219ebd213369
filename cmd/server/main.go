/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the time-off planner server: configuration,
  SQLite state store, planner engine, HTTP router, graceful shutdown.

STARTUP SEQUENCE:
  1. Parse command-line flags (override config file and environment)
  2. Load configuration (defaults <- YAML file <- environment)
  3. Open SQLite store and load persisted state (defaults on first run)
  4. Load optional auth credentials
  5. Start server with graceful shutdown

COMMAND-LINE FLAGS:
  -config  YAML config file path (optional)
  -listen  HTTP listen address (overrides config)
  -db      SQLite database path (overrides config; ":memory:" works)

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM: stop accepting connections, wait for active
  requests (bounded by shutdown_timeout), close the database, exit.

EXAMPLES:
  ./server -db="./data/timeoff.db"
  ./server -config=planner.yaml
  PORT=3000 ./server
*/
package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/warp/timeoff-planner/api"
	"github.com/warp/timeoff-planner/config"
	"github.com/warp/timeoff-planner/planner"
	"github.com/warp/timeoff-planner/store/sqlite"
)

func main() {
	configPath := flag.String("config", "", "YAML config file path")
	listen := flag.String("listen", "", "HTTP listen address (overrides config)")
	dbPath := flag.String("db", "", "SQLite database path (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if *listen != "" {
		cfg.Listen = *listen
	}
	if *dbPath != "" {
		cfg.DBPath = *dbPath
	}

	// State store
	st, err := sqlite.New(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer st.Close()

	state, err := st.Load(context.Background())
	if err != nil {
		log.Printf("Warning: persisted state unreadable, starting fresh: %v", err)
	}
	if state == nil {
		state = planner.DefaultStore(time.Now().Year())
		if err := st.Save(context.Background(), state); err != nil {
			log.Printf("Warning: failed to persist initial state: %v", err)
		}
	}

	// Optional auth on mutating routes
	auth, err := api.LoadAuth(cfg.AuthFile)
	if err != nil {
		log.Fatalf("Failed to load auth credentials: %v", err)
	}
	if auth == nil {
		log.Printf("No auth file at %s, mutating routes are unprotected (local mode)", cfg.AuthFile)
	} else {
		log.Printf("Basic Auth enabled for mutations (user: %s)", auth.User)
	}

	handler := api.NewHandler(state, st)
	router := api.NewRouter(handler, auth)

	server := &http.Server{
		Addr:         cfg.Listen,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("🚀 Planner starting on http://localhost%s", cfg.Listen)
		log.Printf("📊 API available at http://localhost%s/api", cfg.Listen)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped")
}
