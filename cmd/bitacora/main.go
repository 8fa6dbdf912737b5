package main

import (
	"context"
	"flag"
	"os"

	"github.com/esconsultorescorp1998-eng/mi-bitacora/config"
	"github.com/esconsultorescorp1998-eng/mi-bitacora/internal/app"
	"github.com/esconsultorescorp1998-eng/mi-bitacora/pkg/logger"
)

var (
	helpFlag   = flag.Bool("help", false, "Show help message")
	configPath = flag.String("config-path", "config.yaml", "Path to the config yaml file")
)

func main() {
	flag.Parse()
	if *helpFlag {
		config.PrintHelp()
		return
	}

	ctx := context.Background()
	log := logger.InitLogger("bitacora", logger.LevelDebug)

	cfg, err := config.NewConfig(*configPath)
	if err != nil {
		log.Error(ctx, "failed to configure application", err)
		config.PrintHelp()
		return
	}

	// Printing configuration
	config.PrintConfig(cfg)

	if logger.ValidateLogLevel(cfg.Log.Level) {
		log = logger.InitLogger("bitacora", cfg.Log.Level)
	} else if cfg.Log.Level != "" {
		log.Warn(ctx, "unknown log level, keeping DEBUG", "level", cfg.Log.Level)
	}

	// Creating application
	application, err := app.NewApplication(ctx, *cfg, log)
	if err != nil {
		log.Error(ctx, "failed to init application", err)
		os.Exit(1)
	}

	// Running the application
	if err = application.Run(ctx); err != nil {
		log.Error(ctx, "application stopped with error", err)
		os.Exit(1)
	}
}
