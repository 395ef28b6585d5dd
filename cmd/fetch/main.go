package main

import (
	"context"
	"log"
	"os"
	"time"

	"animecal/internal/catalog"
	"animecal/pkg/database"
)

// One-shot season fetch: pulls the current season from the catalog API
// and refreshes the local snapshot the server falls back to.
func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	db := database.MustOpen(database.DefaultConfig())
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("db migrate failed: %v", err)
	}

	var opts []catalog.Option
	if base := os.Getenv("ANIMECAL_CATALOG_URL"); base != "" {
		opts = append(opts, catalog.WithBaseURL(base))
	}
	client := catalog.NewClient(opts...)

	resp, err := client.CurrentSeason(ctx, 1)
	if err != nil {
		log.Fatalf("season fetch failed: %v", err)
	}

	airing := 0
	for _, a := range resp.Data {
		if a.Airing {
			airing++
		}
	}
	log.Printf("fetched %d season entries (%d airing)", len(resp.Data), airing)

	cache := catalog.NewCache(db)
	if err := cache.SaveSeason(ctx, resp.Data); err != nil {
		log.Fatalf("cache save failed: %v", err)
	}

	log.Println("season snapshot refreshed")
}
