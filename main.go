package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/jhenke/lootscout-go/app"
	"github.com/jhenke/lootscout-go/config"
	"github.com/jhenke/lootscout-go/diag"
	"github.com/jhenke/lootscout-go/domain/capture"
)

func main() {
	configPath := flag.String("config", "lootscout.json", "path to the config file")
	debug := flag.Bool("debug", false, "enable diagnostics output")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("load config", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if *debug {
		cfg.Debug = true
	}

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	logger, closeLogs := NewLogger(level, cfg.LogFile)
	defer closeLogs()

	// Capture coordinates must match physical pixels, not the scaled
	// virtual desktop.
	capture.EnableDPIAwareness()

	container, err := app.BuildContainer(cfg, logger)
	if err != nil {
		logger.Error("startup failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.Debug {
		diag.StartRuntimeLogger(0, logger)
		diag.StartMemLogger(0, logger)
	}

	application := app.NewApp(container, logger)
	application.Start()
}
