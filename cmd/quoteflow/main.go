// Package main is the entry point for QuoteFlow.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/quoteflow/quoteflow/bootstrap"
	"github.com/quoteflow/quoteflow/config"
)

var (
	version   = "dev"
	commit    = "none"
	buildDate = "unknown"
)

func main() {
	configPath := flag.String("config", "quoteflow.yaml", "Path to configuration file")
	showVersion := flag.Bool("version", false, "Show version and exit")
	validateOnly := flag.Bool("validate", false, "Validate configuration and exit")
	hotReload := flag.Bool("hot-reload", true, "Reload configuration on file change and SIGHUP")
	flag.Parse()

	if *showVersion {
		fmt.Printf("quoteflow %s (commit: %s, built: %s)\n", version, commit, buildDate)
		os.Exit(0)
	}

	// A missing .env file is fine; explicit env vars still apply.
	_ = godotenv.Load()

	if *validateOnly {
		cfg, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Configuration invalid: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Configuration valid\n")
		fmt.Printf("  Server: %s\n", cfg.Server.Addr)
		fmt.Printf("  Database: %s\n", cfg.Database.Path)
		os.Exit(0)
	}

	logger := newLogger()

	holder, err := config.NewHolder(*configPath, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("load configuration")
	}
	logger = loggerFor(holder.Get())

	app, err := bootstrap.New(holder, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("bootstrap")
	}

	if *hotReload {
		if err := holder.WatchFile(); err != nil {
			logger.Warn().Err(err).Msg("config file watch unavailable")
		}
		holder.WatchSignals()
	}

	if err := app.Run(); err != nil {
		logger.Fatal().Err(err).Msg("server failed")
	}
}

// newLogger builds the pre-config logger used until the file is parsed.
func newLogger() zerolog.Logger {
	return zerolog.New(os.Stderr).With().Timestamp().Logger()
}

// loggerFor rebuilds the logger per the loaded logging configuration.
func loggerFor(cfg *config.Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Logging.Level))
	if err != nil {
		level = zerolog.InfoLevel
	}

	var out zerolog.Logger
	if cfg.Logging.Format == "console" {
		out = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	} else {
		out = zerolog.New(os.Stderr)
	}
	return out.Level(level).With().Timestamp().Logger()
}
