package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pricecart/backend/config"
	httpDelivery "github.com/pricecart/backend/internal/delivery/http"
	"github.com/pricecart/backend/internal/domain"
	"github.com/pricecart/backend/internal/infrastructure/catalog"
	"github.com/pricecart/backend/internal/infrastructure/history"
	"github.com/pricecart/backend/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting PriceCart Backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)
	log.Printf("Catalog Source: %s", cfg.Catalog.Source)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load the catalog once; a broken catalog aborts startup
	source, closeSource, err := catalog.NewSource(ctx, cfg.Catalog)
	if err != nil {
		log.Fatalf("Failed to open catalog source: %v", err)
	}
	defer closeSource()

	if feed, ok := source.(*catalog.FeedClient); ok && cfg.Server.Environment == "development" {
		feed.SetDebug(true)
		log.Printf("Catalog feed debug mode enabled")
	}

	products, err := catalog.Load(ctx, source)
	if err != nil {
		log.Fatalf("Failed to load catalog: %v", err)
	}

	var historyRepo domain.HistoryRepository
	if cfg.History.Enabled {
		store := history.NewMemoryStore(cfg.History.TTL, cfg.History.MaxEntries)
		go store.RunCleanup(ctx, 10*time.Minute)
		historyRepo = store
		log.Printf("History: ttl=%s, max entries=%d", cfg.History.TTL, cfg.History.MaxEntries)
	}

	// Initialize usecase layer
	comparisonService := usecase.NewComparisonService(
		products,
		usecase.NewMatchingService(usecase.MatchConfig{
			EnableDebugLogging: cfg.Matching.EnableDebugLogging,
		}),
		historyRepo,
		usecase.ComparisonServiceConfig{
			EnableDebugLogging: cfg.Matching.EnableDebugLogging,
		},
	)

	log.Printf("Matching: review threshold=%.2f, debug=%v",
		cfg.Matching.ReviewThreshold,
		cfg.Matching.EnableDebugLogging)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(comparisonService, products)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler)

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	server := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("Server shutdown error: %v", err)
		}
	}()

	log.Printf("Server listening on %s", addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("Failed to start server: %v", err)
	}
	log.Printf("Server stopped")
}

func init() {
	// Set log flags for better debugging
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
