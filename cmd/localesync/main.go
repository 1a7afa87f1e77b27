package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"localesync/internal/adapters/cli"
	"localesync/internal/adapters/console"
	"localesync/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ invalid configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.Execute(ctx, cfg, os.Stdout); err != nil {
		if msg := console.DomainErrorMessage(err); msg != "" {
			fmt.Fprintln(os.Stderr, msg)
		}
		stop()
		os.Exit(1)
	}
}
