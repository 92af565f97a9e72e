// Package main runs the one-shot warehouse export: it reads one
// organization's registrations and transactions from PostgreSQL and
// mirrors them into the ClickHouse archive tables for BI queries.
// Re-running the job is safe; the archive keeps the latest export of
// each row.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"strings"
	"time"

	"event-insights/internal/observability"
	"event-insights/internal/storage/clickhouse"
	"event-insights/internal/storage/postgres"
)

func main() {
	// Load .env file if exists
	loadEnvFile()

	postgresDSN := flag.String("postgres-dsn", os.Getenv("POSTGRES_DSN"), "PostgreSQL connection string")
	clickhouseDSN := flag.String("clickhouse-dsn", os.Getenv("CLICKHOUSE_DSN"), "ClickHouse connection string")
	orgID := flag.Int64("org-id", 0, "Organization to export")
	timeout := flag.Duration("timeout", 10*time.Minute, "Export deadline")

	flag.Parse()

	logger := log.New(os.Stdout, "[export] ", log.LstdFlags|log.Lshortfile)

	if *postgresDSN == "" {
		logger.Fatal("--postgres-dsn is required")
	}
	if *clickhouseDSN == "" {
		logger.Fatal("--clickhouse-dsn is required")
	}
	if *orgID == 0 {
		logger.Fatal("--org-id is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	pool, err := postgres.NewPool(ctx, *postgresDSN)
	if err != nil {
		logger.Fatalf("Failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	conn, err := clickhouse.NewConn(ctx, *clickhouseDSN)
	if err != nil {
		logger.Fatalf("Failed to connect to clickhouse: %v", err)
	}
	defer conn.Close()

	events := postgres.NewEventStore(pool)
	regs := postgres.NewRegistrationStore(pool)
	txs := postgres.NewTransactionStore(pool)
	archive := clickhouse.NewArchiveStore(conn)

	start := time.Now()

	list, err := events.ListByOrg(ctx, *orgID)
	if err != nil {
		logger.Fatalf("Failed to list events: %v", err)
	}
	logger.Printf("Exporting %d events for org %d", len(list), *orgID)

	var totalRegs, totalTxs int
	for _, event := range list {
		eventRegs, err := regs.ListByEvent(ctx, event.ID)
		if err != nil {
			logger.Fatalf("Failed to list registrations for event %d: %v", event.ID, err)
		}
		if err := archive.ArchiveRegistrations(ctx, *orgID, eventRegs); err != nil {
			logger.Fatalf("Failed to archive registrations for event %d: %v", event.ID, err)
		}

		eventTxs, err := txs.ListByEvent(ctx, event.ID)
		if err != nil {
			logger.Fatalf("Failed to list transactions for event %d: %v", event.ID, err)
		}
		if err := archive.ArchiveTransactions(ctx, *orgID, eventTxs); err != nil {
			logger.Fatalf("Failed to archive transactions for event %d: %v", event.ID, err)
		}

		totalRegs += len(eventRegs)
		totalTxs += len(eventTxs)
		logger.Printf("Event %d (%s): %d registrations, %d transactions", event.ID, event.Name, len(eventRegs), len(eventTxs))
	}

	observability.RecordRowsExported("registrations", totalRegs)
	observability.RecordRowsExported("transactions", totalTxs)
	logger.Printf("Export complete in %v: %d registrations, %d transactions", time.Since(start), totalRegs, totalTxs)
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
