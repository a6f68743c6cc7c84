package app

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/louisbranch/fundraising.space/internal/funding/storage/memory"
	"github.com/louisbranch/fundraising.space/internal/funding/storage/sqlite"
)

func TestRunRequiresAddr(t *testing.T) {
	if err := Run(context.Background(), Config{}); err == nil {
		t.Fatal("expected error for missing listen address")
	}
}

func TestRunRequiresTokenConfig(t *testing.T) {
	t.Setenv("FUNDRAISING_SPACE_ACCESS_TOKEN_ISSUER", "")
	t.Setenv("FUNDRAISING_SPACE_ACCESS_TOKEN_AUDIENCE", "")
	t.Setenv("FUNDRAISING_SPACE_ACCESS_TOKEN_PUBLIC_KEY", "")

	err := Run(context.Background(), Config{Addr: ":0"})
	if err == nil || !strings.Contains(err.Error(), "access token") {
		t.Fatalf("err = %v, want access token config error", err)
	}
}

func TestOpenStoreSelectsBacking(t *testing.T) {
	store, cleanup, err := openStore("")
	if err != nil {
		t.Fatalf("open memory store: %v", err)
	}
	defer cleanup()
	if _, ok := store.(*memory.Store); !ok {
		t.Fatalf("store = %T, want *memory.Store", store)
	}

	path := filepath.Join(t.TempDir(), "funding.db")
	persisted, cleanupSqlite, err := openStore(path)
	if err != nil {
		t.Fatalf("open sqlite store: %v", err)
	}
	defer cleanupSqlite()
	if _, ok := persisted.(*sqlite.Store); !ok {
		t.Fatalf("store = %T, want *sqlite.Store", persisted)
	}
}
