// Package funding parses funding service flags and launches the service.
package funding

import (
	"context"
	"flag"
	"fmt"

	"github.com/louisbranch/fundraising.space/internal/funding/app"
	entrypoint "github.com/louisbranch/fundraising.space/internal/platform/cmd"
)

// Config holds funding command configuration.
type Config struct {
	Port   int    `env:"FUNDRAISING_SPACE_FUNDING_PORT" envDefault:"8080"`
	DBPath string `env:"FUNDRAISING_SPACE_FUNDING_DB_PATH"`
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.IntVar(&cfg.Port, "port", cfg.Port, "The funding HTTP server port")
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "Path to the funding sqlite database (empty for in-memory)")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the funding HTTP API service.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceFunding, func(ctx context.Context) error {
		return app.Run(ctx, app.Config{
			Addr:   fmt.Sprintf(":%d", cfg.Port),
			DBPath: cfg.DBPath,
		})
	})
}
