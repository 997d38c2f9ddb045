package main

import (
	"log/slog"
	"os"

	"github.com/foodkinetics/shelflife-go/cmd"
	"github.com/foodkinetics/shelflife-go/internal/conf"
	"github.com/foodkinetics/shelflife-go/internal/logging"
)

func main() {
	logging.Init(slog.LevelInfo)

	// Load the configuration, creating a default config file on first run.
	settings, err := conf.Load()
	if err != nil {
		logging.Fatal("failed to load configuration", "error", err)
	}

	level := slog.LevelInfo
	if settings.Main.Debug {
		level = slog.LevelDebug
		logging.Init(level)
	}

	// With file logging enabled all log output goes to the rotating file
	// instead of the console.
	if settings.Main.Log.Enabled {
		fileLogger, closeLogger, err := logging.NewFileLogger(settings.Main.Log.Path, settings.Main.Name, level)
		if err != nil {
			logging.Warn("failed to set up file logging, falling back to console", "error", err)
		} else {
			defer closeLogger() //nolint:errcheck // log writer close on exit
			slog.SetDefault(fileLogger)
			logging.Info("file logging enabled", "path", settings.Main.Log.Path)
		}
	}

	rootCmd := cmd.RootCommand(settings)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
