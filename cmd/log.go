package cmd

import (
	"github.com/etnz/stockbook/config"
	"github.com/etnz/stockbook/logger"
	"github.com/rs/zerolog"
)

// newLogger returns the console logger on stderr, at the configured level.
func newLogger(cfg *config.Config) zerolog.Logger {
	return logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: true,
		Out:    stderr,
	})
}
