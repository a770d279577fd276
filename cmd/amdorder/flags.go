package main

import "github.com/urfave/cli/v3"

var (
	logLevel   string
	logFormat  string
	debug      bool
	dense      float64
	aggressive bool
)

func loggingFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "log level (debug, info, warn, error)",
			Value:       "info",
			Sources:     cli.EnvVars("AMDORDER_LOG_LEVEL"),
			Destination: &logLevel,
		},
		&cli.StringFlag{
			Name:        "log-format",
			Usage:       "log format (auto, pretty, json, text)",
			Value:       "auto",
			Destination: &logFormat,
		},
		&cli.BoolFlag{
			Name:        "debug",
			Usage:       "enable debug logging (shorthand for --log-level=debug)",
			Destination: &debug,
		},
	}
}

func orderingFlags() []cli.Flag {
	return []cli.Flag{
		&cli.FloatFlag{
			Name:        "dense",
			Usage:       "dense row parameter; rows with more than max(16, dense*sqrt(n)) entries are ordered last, negative keeps only full rows out",
			Value:       10,
			Sources:     cli.EnvVars("AMD_DENSE"),
			Destination: &dense,
		},
		&cli.BoolFlag{
			Name:        "aggressive",
			Usage:       "aggressive absorption",
			Value:       true,
			Sources:     cli.EnvVars("AMD_AGGRESSIVE"),
			Destination: &aggressive,
		},
	}
}
