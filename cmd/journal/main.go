// Command journal runs the HTTP server exposing the journal read API and,
// when configured with a write token and admin secret, the admin write
// endpoints.
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	journal "github.com/vibecircle/journal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := journal.ConfigFromEnv()
	module, err := journal.New(ctx, cfg)
	if err != nil {
		log.Fatalf("journal: %v", err)
	}
	defer module.Close()

	handler, err := module.Handler()
	if err != nil {
		log.Fatalf("journal: %v", err)
	}

	server := &http.Server{
		Addr:              cfg.Admin.ListenAddr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("journal: listening on %s", cfg.Admin.ListenAddr)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("journal: serve: %v", err)
		}
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("journal: shutdown: %v", err)
		}
	}
}
