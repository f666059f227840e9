package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"syscall"

	"github.com/jollyfox-guild/vale-bot/app"
	"github.com/jollyfox-guild/vale-bot/app/shared/observability"
	"github.com/jollyfox-guild/vale-bot/config"
)

func main() {
	configFile := flag.String("config", "config.yaml", "Path to the configuration file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configFile)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	obs := observability.NewProvider(config.ToObsConfig(cfg))
	logger := obs.Logger

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	application := &app.App{}
	if err := application.Initialize(ctx, cfg, obs); err != nil {
		log.Fatalf("Failed to initialize app: %v", err)
	}

	logger.Info("vale-bot backend starting")

	if err := application.Run(ctx); err != nil {
		logger.Error("Application stopped with error", "error", err)
	}

	application.Close()
	logger.Info("vale-bot backend shut down gracefully")
}
