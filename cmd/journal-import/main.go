// Command journal-import publishes every markdown post file found in a
// directory. Each file carries YAML front matter for the post metadata and
// a markdown body.
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
	dir := flag.String("dir", "content", "directory holding .md post files")
	dryRun := flag.Bool("dry-run", false, "parse files without publishing")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := journal.ConfigFromEnv()
	cfg.Content.UseCDN = false

	module, err := journal.New(ctx, cfg)
	if err != nil {
		log.Fatalf("journal-import: %v", err)
	}
	defer module.Close()

	importer := module.Importer()
	if importer == nil {
		log.Fatal("journal-import: JOURNAL_CONTENT_TOKEN is required")
	}

	handler := publishcmd.NewImportDirectoryHandler(importer, nil)
	cmd := publishcmd.ImportDirectoryCommand{Directory: *dir, DryRun: *dryRun}
	if err := handler.Execute(ctx, cmd); err != nil {
		log.Fatalf("journal-import: %v", err)
	}
	log.Printf("journal-import: done (dir=%s dry-run=%v)", *dir, *dryRun)
}
