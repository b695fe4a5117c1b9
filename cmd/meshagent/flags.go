package main

import (
	"flag"
	"fmt"
	"time"
)

// CLIConfig holds the parsed command line options.
type CLIConfig struct {
	ConfigPath      string
	LogLevel        string
	LogFormat       string
	Validate        bool
	ShowVersion     bool
	ShutdownTimeout time.Duration
}

func parseFlags() *CLIConfig {
	cfg := &CLIConfig{}

	flag.StringVar(&cfg.ConfigPath, "config", "/etc/meshagent/agent.json", "path to the agent config file")
	flag.StringVar(&cfg.LogLevel, "log-level", "", "log level override (debug, info, warn, error)")
	flag.StringVar(&cfg.LogFormat, "log-format", "", "log format override (text, json)")
	flag.BoolVar(&cfg.Validate, "validate", false, "validate the configuration and exit")
	flag.BoolVar(&cfg.ShowVersion, "version", false, "print the version and exit")
	flag.DurationVar(&cfg.ShutdownTimeout, "shutdown-timeout", 10*time.Second, "graceful shutdown timeout")

	flag.Parse()
	return cfg
}

func validateFlags(cfg *CLIConfig) error {
	switch cfg.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q", cfg.LogLevel)
	}
	switch cfg.LogFormat {
	case "", "text", "json":
	default:
		return fmt.Errorf("invalid log format %q", cfg.LogFormat)
	}
	if cfg.ShutdownTimeout <= 0 {
		return fmt.Errorf("shutdown timeout must be positive")
	}
	return nil
}
