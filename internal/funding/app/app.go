// Package app wires the funding runtime: storage, engine, payer, and the
// HTTP lifecycle.
package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/louisbranch/fundraising.space/internal/funding/api/httpapi"
	"github.com/louisbranch/fundraising.space/internal/funding/auth"
	"github.com/louisbranch/fundraising.space/internal/funding/service"
	"github.com/louisbranch/fundraising.space/internal/funding/storage"
	"github.com/louisbranch/fundraising.space/internal/funding/storage/memory"
	"github.com/louisbranch/fundraising.space/internal/funding/storage/sqlite"
	"github.com/louisbranch/fundraising.space/internal/platform/timeouts"
)

// Config controls the funding runtime.
type Config struct {
	// Addr is the HTTP listen address, e.g. ":8080".
	Addr string
	// DBPath locates the sqlite database. Empty selects the in-memory store.
	DBPath string
}

// Run serves the funding API until ctx is canceled.
func Run(ctx context.Context, cfg Config) error {
	if strings.TrimSpace(cfg.Addr) == "" {
		return errors.New("listen address is required")
	}

	store, cleanup, err := openStore(cfg.DBPath)
	if err != nil {
		return err
	}
	defer cleanup()

	payer, err := service.NewLedgerPayer(store)
	if err != nil {
		return fmt.Errorf("build payer: %w", err)
	}
	engine, err := service.NewEngine(store, payer)
	if err != nil {
		return fmt.Errorf("build engine: %w", err)
	}

	verifier, err := auth.LoadVerifierConfigFromEnv(time.Now)
	if err != nil {
		return fmt.Errorf("load access token config: %w", err)
	}
	server, err := httpapi.NewServer(engine, verifier)
	if err != nil {
		return fmt.Errorf("build http server: %w", err)
	}

	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           server.Handler(),
		ReadHeaderTimeout: timeouts.ReadHeader,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("funding listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return <-errCh
	case err := <-errCh:
		return err
	}
}

// openStore selects sqlite when a path is configured, otherwise the
// in-memory store.
func openStore(dbPath string) (storage.Store, func(), error) {
	if strings.TrimSpace(dbPath) == "" {
		log.Print("no database path configured, using in-memory store")
		return memory.NewStore(), func() {}, nil
	}
	store, err := sqlite.Open(dbPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open funding store: %w", err)
	}
	return store, func() {
		if err := store.Close(); err != nil {
			log.Printf("close funding store: %v", err)
		}
	}, nil
}
