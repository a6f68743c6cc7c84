package config

import "testing"

type sampleConfig struct {
	Port int    `env:"FUNDRAISING_SPACE_TEST_PORT" envDefault:"9400"`
	Name string `env:"FUNDRAISING_SPACE_TEST_NAME"`
}

func TestParseEnvAppliesDefaults(t *testing.T) {
	var cfg sampleConfig
	if err := ParseEnv(&cfg); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.Port != 9400 {
		t.Fatalf("port = %d, want 9400", cfg.Port)
	}
}

func TestParseEnvReadsValues(t *testing.T) {
	t.Setenv("FUNDRAISING_SPACE_TEST_PORT", "7001")
	t.Setenv("FUNDRAISING_SPACE_TEST_NAME", "funding")

	var cfg sampleConfig
	if err := ParseEnv(&cfg); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.Port != 7001 {
		t.Fatalf("port = %d, want 7001", cfg.Port)
	}
	if cfg.Name != "funding" {
		t.Fatalf("name = %q, want %q", cfg.Name, "funding")
	}
}

func TestParseEnvRejectsBadValues(t *testing.T) {
	t.Setenv("FUNDRAISING_SPACE_TEST_PORT", "not-a-number")

	var cfg sampleConfig
	if err := ParseEnv(&cfg); err == nil {
		t.Fatal("expected parse error for non-numeric port")
	}
}
