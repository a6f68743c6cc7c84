package sqlitemigrate

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"testing/fstest"

	_ "modernc.org/sqlite"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "migrate.db")
	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })
	return sqlDB
}

func TestApplyRunsMigrationsInOrder(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"0002_add_column.sql": {Data: []byte("-- +migrate Up\nALTER TABLE items ADD COLUMN label TEXT;\n-- +migrate Down\nSELECT 1;\n")},
		"0001_items.sql":      {Data: []byte("-- +migrate Up\nCREATE TABLE items (id INTEGER PRIMARY KEY);\n")},
	}
	sqlDB := openTestDB(t)
	if err := Apply(context.Background(), sqlDB, fsys); err != nil {
		t.Fatalf("apply: %v", err)
	}

	if _, err := sqlDB.Exec("INSERT INTO items (id, label) VALUES (1, 'a')"); err != nil {
		t.Fatalf("expected both migrations applied: %v", err)
	}
}

func TestApplyIsIdempotent(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"0001_items.sql": {Data: []byte("-- +migrate Up\nCREATE TABLE items (id INTEGER PRIMARY KEY);\n")},
	}
	sqlDB := openTestDB(t)
	if err := Apply(context.Background(), sqlDB, fsys); err != nil {
		t.Fatalf("first apply: %v", err)
	}
	if err := Apply(context.Background(), sqlDB, fsys); err != nil {
		t.Fatalf("second apply: %v", err)
	}

	var count int
	if err := sqlDB.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count); err != nil {
		t.Fatalf("count ledger: %v", err)
	}
	if count != 1 {
		t.Fatalf("ledger rows = %d, want 1", count)
	}
}

func TestApplyRequiresHandleAndFS(t *testing.T) {
	t.Parallel()

	if err := Apply(context.Background(), nil, fstest.MapFS{}); err == nil {
		t.Fatal("expected missing db error")
	}
	if err := Apply(context.Background(), openTestDB(t), nil); err == nil {
		t.Fatal("expected missing fs error")
	}
}

func TestUpSectionExtraction(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"no markers", "SELECT 1;", "SELECT 1;"},
		{"up only", "-- +migrate Up\nSELECT 2;", "\nSELECT 2;"},
		{"up and down", "-- +migrate Up\nSELECT 3;\n-- +migrate Down\nSELECT 4;", "\nSELECT 3;\n"},
	}
	for _, tc := range tests {
		if got := UpSection(tc.content); got != tc.want {
			t.Fatalf("%s: up section = %q, want %q", tc.name, got, tc.want)
		}
	}
}
