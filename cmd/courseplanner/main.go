package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/JonMunkholm/courseplanner/internal/catalog"
	"github.com/JonMunkholm/courseplanner/internal/cli"
	"github.com/JonMunkholm/courseplanner/internal/config"
	"github.com/JonMunkholm/courseplanner/internal/logging"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	envErr := godotenv.Overload()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	if envErr != nil {
		slog.Debug("no .env file found, using environment variables")
	} else {
		slog.Debug("loaded .env file (overwriting existing env vars)")
	}
	slog.Debug("configuration loaded", "config", cfg.String())

	if err := cli.Execute(context.Background(), cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if catalog.IsUserFacing(err) {
			fmt.Fprintln(os.Stderr, catalog.FormatUserError(err))
		}
		os.Exit(1)
	}
}
