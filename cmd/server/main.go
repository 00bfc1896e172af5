/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the shift engine server. Handles
  configuration, dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
  1. Load .env (optional) and parse command-line flags
  2. Initialize SQLite store
  3. Build the extraction engines (model engine only with an API key)
  4. Configure HTTP router
  5. Start server with graceful shutdown

COMMAND-LINE FLAGS:
  -port    HTTP server port (default: 8080)
  -db      SQLite database path (default: asmito.db)
           Use ":memory:" for an in-memory database

ENVIRONMENT:
  OPENAI_API_KEY   enables the model-assisted extraction engine
  OPENAI_MODEL     overrides the default chat model

  Without an API key the server runs rule-based only; requests naming
  the model engine get a client error.

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (30s timeout)
  3. Close database connection
  4. Exit

SEE ALSO:
  - api/server.go: Router configuration
  - api/handlers.go: HTTP handlers
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

	"github.com/joho/godotenv"
	"github.com/nohataku/Asmito-sub001/api"
	"github.com/nohataku/Asmito-sub001/extract"
	"github.com/nohataku/Asmito-sub001/store/sqlite"
)

func main() {
	// .env is optional; flags and real env vars win.
	_ = godotenv.Load()

	port := flag.Int("port", 8080, "HTTP server port")
	dbPath := flag.String("db", "asmito.db", "SQLite database path")
	flag.Parse()

	// Initialize store
	store, err := sqlite.New(*dbPath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer store.Close()

	// Extraction engines: rule-based always, model only with a key.
	var model *extract.ModelExtractor
	if apiKey := os.Getenv("OPENAI_API_KEY"); apiKey != "" {
		model = extract.NewModelExtractor(extract.NewOpenAICompleter(apiKey, os.Getenv("OPENAI_MODEL")))
		log.Printf("Model-assisted extraction enabled")
	} else {
		log.Printf("OPENAI_API_KEY not set; running rule-based extraction only")
	}

	handler := api.NewHandler(store, extract.NewBatch(model))
	router := api.NewRouter(handler)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", *port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Server starting on http://localhost:%d", *port)
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
