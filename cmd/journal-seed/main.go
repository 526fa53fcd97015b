// Command journal-seed creates the journal's stock categories upstream
// when they do not exist yet. Safe to run repeatedly.
package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	journal "github.com/vibecircle/journal"
)

type seedCategory struct {
	Title string
	Color string
}

var categories = []seedCategory{
	{Title: "City Culture", Color: "#FF6B00"},
	{Title: "Creator Economy", Color: "#FF2D78"},
	{Title: "Brand Strategy", Color: "#00D4FF"},
	{Title: "Music & Events", Color: "#9B59FF"},
	{Title: "Tech & Maps", Color: "#FFD700"},
	{Title: "Campus Life", Color: "#FF6B00"},
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := journal.ConfigFromEnv()
	cfg.Content.UseCDN = false

	module, err := journal.New(ctx, cfg)
	if err != nil {
		log.Fatalf("journal-seed: %v", err)
	}
	defer module.Close()

	publisher := module.Publisher()
	if publisher == nil {
		log.Fatal("journal-seed: JOURNAL_CONTENT_TOKEN is required")
	}
	for _, c := range categories {
		id, err := publisher.EnsureCategory(ctx, c.Title, c.Color)
		if err != nil {
			log.Fatalf("journal-seed: %s: %v", c.Title, err)
		}
		log.Printf("journal-seed: %s -> %s", c.Title, id)
	}
}
