package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"

	"portal-coordinadores/internal/airtable"
	"portal-coordinadores/internal/config"
	"portal-coordinadores/internal/core"
)

// verify-store probes the remote base: it lists one record from every table
// the portal reads or writes and reports which are reachable. Run it after
// rotating credentials or pointing at a new base.
func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.ValidateRemoteStore(); err != nil {
		log.Fatalf("[CONFIG] %v", err)
	}

	store := airtable.NewClient(cfg.AirtableAPIKey, cfg.AirtableBaseID)

	tables := core.Tables()

	failed := 0
	for _, table := range tables {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		page, err := store.List(ctx, table, airtable.ListOptions{MaxRecords: 1})
		cancel()
		if err != nil {
			log.Printf("[FAIL] %s: %v", table, err)
			failed++
			continue
		}
		log.Printf("[OK]   %s (%d record sampled)", table, len(page.Records))
	}

	if failed > 0 {
		log.Fatalf("[DONE] %d of %d tables unreachable", failed, len(tables))
	}
	log.Println("[DONE] all tables reachable")
}
