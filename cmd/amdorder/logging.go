package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/samcharles93/amdorder/internal/logger"
	"github.com/urfave/cli/v3"
)

// setupLogging builds the process logger from flags and config and stores
// it in the context for subcommands.
func setupLogging(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	applyLoggingConfig(cmd, LoadConfig())

	level := logger.ParseLevel(logLevel)
	if debug {
		level = slog.LevelDebug
	}
	log, err := logger.ForFormat(resolveLogFormat(logFormat, isTerminal(os.Stderr)), os.Stderr, level)
	if err != nil {
		return ctx, err
	}
	return logger.WithContext(ctx, log), nil
}

// resolveLogFormat maps "auto" to pretty output on a terminal and text
// otherwise.
func resolveLogFormat(format string, terminal bool) string {
	if format != "auto" && format != "" {
		return format
	}
	if terminal {
		return logger.FormatPretty
	}
	return logger.FormatText
}
