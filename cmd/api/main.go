package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/isaacnngt/pedido-unijovem/internal/app/api"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := api.LoadConfig()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	if err := api.Run(ctx, cfg); err != nil {
		log.Fatalf("delivery api failed: %v", err)
	}
}
