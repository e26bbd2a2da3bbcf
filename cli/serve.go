package cli

import (
	"context"
	"fmt"

	"github.com/alecthomas/kong"

	"github.com/ledgerlab/bookledger/scenario"
	"github.com/ledgerlab/bookledger/web"
)

// ServeCmd starts the web server. Configuration comes from the
// BOOKLEDGER_* environment variables; flags override the environment.
type ServeCmd struct {
	Host     string `help:"Host to bind to (overrides BOOKLEDGER_HOST)."`
	Port     int    `help:"Port to listen on (overrides BOOKLEDGER_PORT)."`
	ReadOnly bool   `help:"Enable read-only mode (no write operations allowed)." short:"r"`
	NoWatch  bool   `help:"Disable watching the snapshot file for external changes."`
}

func (cmd *ServeCmd) Run(ctx *kong.Context, globals *Globals) error {
	if globals.DB != "" {
		return fmt.Errorf("serve works against the JSON snapshot; --db is not supported here")
	}

	cfg, err := web.ConfigFromEnv()
	if err != nil {
		return err
	}

	if cmd.Host != "" {
		cfg.Host = cmd.Host
	}
	if cmd.Port != 0 {
		cfg.Port = cmd.Port
	}
	if cmd.ReadOnly {
		cfg.ReadOnly = true
	}
	if cmd.NoWatch {
		cfg.WatchEnabled = false
	}
	if cfg.Snapshot == "" {
		cfg.Snapshot = globals.Snapshot
	}

	sc := scenario.Consulting()
	if globals.Scenario != "" {
		sc, err = scenario.LoadFile(globals.Scenario)
		if err != nil {
			return err
		}
	}

	version := Version
	if version == "" {
		version = "dev"
	}
	commitSHA := CommitSHA
	if commitSHA == "" {
		commitSHA = "local"
	}

	server := web.NewWithVersion(cfg, sc, version, commitSHA)

	printInfof(ctx.Stdout, "Starting server on %s:%d", cfg.Host, cfg.Port)
	printInfof(ctx.Stdout, "Snapshot: %s", pathStyle.Render(cfg.Snapshot))
	if cfg.ReadOnly {
		printInfof(ctx.Stdout, "Server running in READ-ONLY mode")
	}

	return server.Start(context.Background())
}
