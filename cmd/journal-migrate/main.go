// Command journal-migrate rewrites legacy plain-text post bodies into
// structured rich content through patch mutations against the content
// service.
package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"syscall"

	journal "github.com/vibecircle/journal"
	publishcmd "github.com/vibecircle/journal/internal/commands/publish"
)

func main() {
	dryRun := flag.Bool("dry-run", false, "report what would change without writing")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := journal.ConfigFromEnv()
	cfg.Content.UseCDN = false

	module, err := journal.New(ctx, cfg)
	if err != nil {
		log.Fatalf("journal-migrate: %v", err)
	}
	defer module.Close()

	migrator := module.Migrator()
	if migrator == nil {
		log.Fatal("journal-migrate: JOURNAL_CONTENT_TOKEN is required")
	}

	handler := publishcmd.NewMigrateLegacyHandler(migrator, nil)
	if err := handler.Execute(ctx, publishcmd.MigrateLegacyCommand{DryRun: *dryRun}); err != nil {
		log.Fatalf("journal-migrate: %v", err)
	}
	log.Printf("journal-migrate: done (dry-run=%v)", *dryRun)
}
