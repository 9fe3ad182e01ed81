package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"dog-match/internal/app"
	"dog-match/internal/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	a, err := app.New(ctx, cfg, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() { _ = a.Close(context.Background()) }()

	if err := a.Serve(ctx); err != nil {
		a.Logger.Error("server error", map[string]any{"error": err})
		os.Exit(1)
	}
}
