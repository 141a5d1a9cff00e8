// Package cmd implements the CLI application to manage a flow ledger.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/ledger"
	"github.com/etnz/ledger/config"
	"github.com/etnz/ledger/logger"
	"github.com/google/subcommands"
	"github.com/rs/zerolog"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&importCmd{}, "ledger")
	c.Register(&addCmd{}, "ledger")
	c.Register(&tradeCmd{}, "ledger")
	c.Register(&reverseCmd{}, "ledger")

	c.Register(&txCmd{}, "views")
	c.Register(&balanceCmd{}, "views")
	c.Register(&assetsCmd{}, "views")
	c.Register(&venuesCmd{}, "views")
	c.Register(&diagCmd{}, "views")
	c.Register(&exportCmd{}, "views")

	c.Register(&topicCmd{}, "help")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var configFile = flag.String("config", config.DefaultFile, "Path to the dotenv file holding the settings")
var dbPath = flag.String("db", "", "Path to the ledger database (overrides "+config.EnvDBPath+")")
var logLevel = flag.String("log-level", "", "Log level: debug, info, warn, error (overrides "+config.EnvLogLevel+")")
var plain = flag.Bool("plain", false, "Print raw markdown instead of rendering it")

// Settings returns the configuration, with the global flags applied on top.
func Settings() (config.Config, error) {
	cfg, err := config.Load(*configFile)
	if err != nil {
		return config.Config{}, err
	}
	if *dbPath != "" {
		cfg.DBPath = *dbPath
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	return cfg, nil
}

// Logger returns the logger configured by the settings, for the main package
// to attach to the context given to the commands.
func Logger() zerolog.Logger {
	cfg, err := Settings()
	if err != nil {
		return logger.New("")
	}
	return logger.New(cfg.LogLevel)
}

// OpenStore is the central function to open the ledger database. The store
// logs through the logger carried by ctx.
func OpenStore(ctx context.Context) (*ledger.Store, config.Config, error) {
	cfg, err := Settings()
	if err != nil {
		return nil, config.Config{}, err
	}
	s, err := ledger.Open(ctx, cfg.DBPath, ledger.WithLogger(logger.FromContext(ctx)))
	if err != nil {
		return nil, config.Config{}, err
	}
	return s, cfg, nil
}

// printMarkdown renders md for the terminal, or prints it as is when
// rendering fails or is disabled.
func printMarkdown(md string) {
	if *plain {
		fmt.Print(md)
		return
	}
	out, err := glamour.Render(md, "auto")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not render markdown: %v\n", err)
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}

// exitOn reports err and returns the matching exit status.
func exitOn(err error) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	return subcommands.ExitFailure
}
