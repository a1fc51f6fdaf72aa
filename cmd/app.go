// Package cmd implements the sbk command line application.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/etnz/stockbook"
	"github.com/etnz/stockbook/config"
	"github.com/google/subcommands"
	"github.com/rs/zerolog"
)

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var (
	configFile = flag.String("config", "", "Configuration file. Defaults to stockbook.toml in the user configuration directory, then in the working directory.")
	ledgerFile = flag.String("ledger-file", "", "Path to the ledger file (JSONL format). Overrides the configuration.")
	currency   = flag.String("currency", "", "Display currency. Overrides the configuration.")
	verbose    = flag.Bool("v", false, "Log debug messages.")
	raw        = flag.Bool("raw", false, "Print markdown as is, without terminal rendering.")
)

// stdout and stderr are the command outputs.
var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// app is what every command needs: the configuration, the logger and the book.
type app struct {
	cfg  *config.Config
	log  zerolog.Logger
	book *stockbook.Book
}

// loadConfig loads the .env file and the configuration, then applies the
// global flags.
func loadConfig() (*config.Config, error) {
	if err := config.LoadEnv(); err != nil {
		return nil, err
	}
	paths := config.DefaultPaths()
	if *configFile != "" {
		paths = []string{*configFile}
	}
	cfg, err := config.LoadConfig(paths...)
	if err != nil {
		return nil, err
	}
	if *ledgerFile != "" {
		cfg.LedgerFile = *ledgerFile
	}
	if *currency != "" {
		cfg.Currency = *currency
	}
	if *verbose {
		cfg.LogLevel = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// load loads the configuration and opens the book.
func load() (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, fmt.Errorf("could not load configuration: %w", err)
	}
	log := newLogger(cfg)
	book, err := stockbook.OpenBook(cfg.LedgerFile, log)
	if err != nil {
		return nil, fmt.Errorf("could not open ledger: %w", err)
	}
	return &app{cfg: cfg, log: log, book: book}, nil
}

// fail prints err and returns the matching exit status: unknown or
// duplicated transaction ids are usage errors.
func fail(err error) subcommands.ExitStatus {
	fmt.Fprintf(stderr, "Error: %v\n", err)
	if errors.Is(err, stockbook.ErrNotFound) || errors.Is(err, stockbook.ErrDuplicateID) {
		return subcommands.ExitUsageError
	}
	return subcommands.ExitFailure
}

// usage prints a usage error.
func usage(format string, a ...any) subcommands.ExitStatus {
	fmt.Fprintf(stderr, format+"\n", a...)
	return subcommands.ExitUsageError
}
