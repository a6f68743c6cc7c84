package funding

import (
	"flag"
	"testing"
)

func TestParseConfigDefaults(t *testing.T) {
	t.Setenv("FUNDRAISING_SPACE_FUNDING_PORT", "")
	t.Setenv("FUNDRAISING_SPACE_FUNDING_DB_PATH", "")

	fs := flag.NewFlagSet("funding", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Port != 8080 {
		t.Fatalf("port = %d, want 8080", cfg.Port)
	}
	if cfg.DBPath != "" {
		t.Fatalf("db path = %q, want empty", cfg.DBPath)
	}
}

func TestParseConfigEnvOverride(t *testing.T) {
	t.Setenv("FUNDRAISING_SPACE_FUNDING_PORT", "9100")
	t.Setenv("FUNDRAISING_SPACE_FUNDING_DB_PATH", "data/funding.db")

	fs := flag.NewFlagSet("funding", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Port != 9100 {
		t.Fatalf("port = %d, want 9100", cfg.Port)
	}
	if cfg.DBPath != "data/funding.db" {
		t.Fatalf("db path = %q, want data/funding.db", cfg.DBPath)
	}
}

func TestParseConfigFlagsWinOverEnv(t *testing.T) {
	t.Setenv("FUNDRAISING_SPACE_FUNDING_PORT", "9100")

	fs := flag.NewFlagSet("funding", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{"-port", "9200"})
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Port != 9200 {
		t.Fatalf("port = %d, want 9200", cfg.Port)
	}
}
