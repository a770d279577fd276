package main

import (
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

// Config represents the amdorder configuration file (~/.config/amdorder/config.yaml).
// Pointer fields distinguish "not set" from zero values.
type Config struct {
	// Ordering defaults
	Dense      *float64 `yaml:"dense"`
	Aggressive *bool    `yaml:"aggressive"`

	// Output
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`

	// Server
	ServerAddress string `yaml:"server_address"`
	MaxDimension  *int   `yaml:"max_dimension"`
}

func configPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "amdorder", "config.yaml")
}

// applyLoggingConfig applies config file defaults to the logging flags
// when they were not set on the command line or in the environment.
func applyLoggingConfig(c *cli.Command, cfg Config) {
	if cfg.LogLevel != "" && !c.IsSet("log-level") {
		logLevel = cfg.LogLevel
	}
	if cfg.LogFormat != "" && !c.IsSet("log-format") {
		logFormat = cfg.LogFormat
	}
}

// orderingOverrides returns the dense and aggressive settings that replace
// the backend defaults. Flags and environment win over the config file; nil
// means the backend default applies.
func orderingOverrides(c *cli.Command, cfg Config) (*float64, *bool) {
	var (
		d *float64
		a *bool
	)
	if c.IsSet("dense") {
		v := dense
		d = &v
	} else if cfg.Dense != nil {
		d = cfg.Dense
	}
	if c.IsSet("aggressive") {
		v := aggressive
		a = &v
	} else if cfg.Aggressive != nil {
		a = cfg.Aggressive
	}
	return d, a
}

// applyServeConfig applies config file defaults to serve command variables.
func applyServeConfig(c *cli.Command, cfg Config, addr *string, maxDim *int) {
	if cfg.ServerAddress != "" && !c.IsSet("addr") {
		*addr = cfg.ServerAddress
	}
	if cfg.MaxDimension != nil && !c.IsSet("max-dimension") {
		*maxDim = *cfg.MaxDimension
	}
}

// LoadConfig reads the config file. Returns a zero Config if the file doesn't exist.
func LoadConfig() Config {
	path := configPath()
	if path == "" {
		return Config{}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}
	}
	return cfg
}
