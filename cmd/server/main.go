// Package main runs the dashboard analytics API:
// - Query surface: event summaries, registration/revenue charts, field distributions
// - Org scope resolved per request from the encrypted org token
// - Optional snapshot mode: one org's dataset held in memory and swapped
//   atomically on a refresh schedule, so reads never block on the database
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"event-insights/internal/analytics"
	"event-insights/internal/idhash"
	"event-insights/internal/snapshot"
	"event-insights/internal/storage"
	"event-insights/internal/storage/postgres"
)

// Server holds the API's wiring and runtime state.
type Server struct {
	addr      string
	refresher *snapshot.Refresher // nil when snapshot mode is off
	live      storage.Sources
	codec     *idhash.Codec
	logger    *log.Logger

	mu            sync.Mutex
	startedAt     time.Time
	queriesServed int
}

func main() {
	// Load .env file if exists
	loadEnvFile()

	// Parse flags (env vars as defaults)
	addr := flag.String("addr", envOr("LISTEN_ADDR", ":8080"), "HTTP listen address")
	postgresDSN := flag.String("postgres-dsn", os.Getenv("POSTGRES_DSN"), "PostgreSQL connection string")
	idSalt := flag.String("id-salt", os.Getenv("EVENT_ID_SALT"), "Salt for opaque event-id encoding")
	snapshotOrg := flag.Int64("snapshot-org", 0, "Serve this organization from an in-memory snapshot (0 = live queries only)")
	refreshInterval := flag.Duration("refresh-interval", 20*time.Minute, "Snapshot refresh interval")

	flag.Parse()

	logger := log.New(os.Stdout, "[server] ", log.LstdFlags|log.Lshortfile)

	if *postgresDSN == "" {
		logger.Fatal("--postgres-dsn is required")
	}
	if *idSalt == "" {
		logger.Fatal("--id-salt is required")
	}

	codec, err := idhash.NewCodec(*idSalt)
	if err != nil {
		logger.Fatalf("Failed to create id codec: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := postgres.NewPool(ctx, *postgresDSN)
	if err != nil {
		logger.Fatalf("Failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	live := storage.Sources{
		Events:        postgres.NewEventStore(pool),
		Registrations: postgres.NewRegistrationStore(pool),
		Transactions:  postgres.NewTransactionStore(pool),
		Fields:        postgres.NewFieldDefinitionStore(pool),
	}

	server := &Server{
		addr:      *addr,
		live:      live,
		codec:     codec,
		logger:    logger,
		startedAt: time.Now(),
	}

	if *snapshotOrg != 0 {
		server.refresher = snapshot.NewRefresher(live, *snapshotOrg, *refreshInterval,
			log.New(os.Stdout, "[refresh] ", log.LstdFlags))
		go func() {
			if err := server.refresher.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Printf("refresher stopped: %v", err)
			}
		}()
		logger.Printf("Snapshot mode on for org %d (refresh every %v)", *snapshotOrg, *refreshInterval)
	}

	httpServer := &http.Server{
		Addr:              server.addr,
		Handler:           server.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Printf("Received signal %v, shutting down...", sig)
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Printf("Shutdown error: %v", err)
		}
	}()

	logger.Printf("Listening on %s", server.addr)
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatalf("Server error: %v", err)
	}
	logger.Println("Shutdown complete")
}

// sources picks the dataset for one request: the current snapshot when
// the request targets the snapshot org, the live stores otherwise. A
// request keeps whichever snapshot it was handed for its whole lifetime.
func (s *Server) sources(orgID int64) storage.Sources {
	if s.refresher != nil {
		if snap := s.refresher.Current(); snap != nil && snap.OrgID() == orgID {
			return snap.Sources()
		}
	}
	return s.live
}

// service builds the request-scoped analytics facade.
func (s *Server) service(orgID int64) *analytics.Service {
	src := s.sources(orgID)
	return analytics.NewService(analytics.Options{
		Events:        src.Events,
		Registrations: src.Registrations,
		Transactions:  src.Transactions,
		Fields:        src.Fields,
		IDs:           s.codec,
	})
}

// envOr returns the env var value, or fallback when unset.
func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// loadEnvFile loads environment variables from .env file if it exists.
func loadEnvFile() {
	data, err := os.ReadFile(".env")
	if err != nil {
		return // File doesn't exist, use system env vars
	}

	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		// Don't override existing env vars
		if os.Getenv(key) == "" {
			os.Setenv(key, value)
		}
	}
}
