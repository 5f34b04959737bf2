package main

import (
	"log"

	"github.com/joho/godotenv"

	"datalens/internal"
	"datalens/internal/config"
	"datalens/ui"
)

func main() {
	// .env is optional; real deployments use the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	server := ui.NewServer(cfg)
	internal.DefaultLogger.Info("[Main] starting datalens on port %s", cfg.Server.Port)
	if err := server.Run(); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}
