package cmd

import (
	"context"
	"errors"
	"flag"
	"testing"
)

func TestParseConfigRequiresTarget(t *testing.T) {
	t.Parallel()

	if err := ParseConfig[struct{}](nil); err == nil {
		t.Fatal("expected nil target error")
	}
}

func TestParseArgsParsesFlags(t *testing.T) {
	t.Parallel()

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	port := fs.Int("port", 0, "")
	if err := ParseArgs(fs, []string{"-port", "8095"}); err != nil {
		t.Fatalf("parse args: %v", err)
	}
	if *port != 8095 {
		t.Fatalf("port = %d, want 8095", *port)
	}
}

func TestParseArgsRequiresFlagSet(t *testing.T) {
	t.Parallel()

	if err := ParseArgs(nil, nil); err == nil {
		t.Fatal("expected missing flag set error")
	}
}

func TestRunWithTelemetryValidatesInputs(t *testing.T) {
	t.Parallel()

	if err := RunWithTelemetry(context.Background(), "", func(context.Context) error { return nil }); err == nil {
		t.Fatal("expected service name error")
	}
	if err := RunWithTelemetry(context.Background(), ServiceFunding, nil); err == nil {
		t.Fatal("expected run function error")
	}
}

func TestRunWithTelemetryPropagatesRunError(t *testing.T) {
	want := errors.New("boom")
	err := RunWithTelemetry(context.Background(), ServiceFunding, func(context.Context) error { return want })
	if !errors.Is(err, want) {
		t.Fatalf("err = %v, want %v", err, want)
	}
}
