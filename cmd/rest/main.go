package main

import (
	"context"
	"log"

	"github.com/y-ymmt/ikitaitoko-bot/internal/bootstrap"
	"github.com/y-ymmt/ikitaitoko-bot/internal/config"
	"github.com/y-ymmt/ikitaitoko-bot/internal/server"
)

func main() {
	// 1. Load Configuration
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// 2. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(cfg)

	// 3. Start Background Services
	log.Println("Background: Starting Consumer Service...")
	if err := container.ConsumerService.Consume(context.Background()); err != nil {
		log.Fatalf("Background Consumer Error: %v", err)
	}

	// 4. Initialize Server
	srv := server.New(cfg, container)

	// 5. Run Server
	log.Fatal(srv.Run())
}
