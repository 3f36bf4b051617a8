// Package main is the entry point for the taskpilot CLI.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"taskpilot/internal/backend/restapi"
	"taskpilot/internal/cli"
	"taskpilot/internal/commands"
	"taskpilot/internal/config"
	"taskpilot/internal/service"
	"taskpilot/internal/session"
)

func main() {
	// Create context that cancels on interrupt
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	factory := func(ctx context.Context, cfg *config.Config) (service.Service, error) {
		return restapi.New(ctx, cfg, session.NewStore(cfg.TokenPath()))
	}

	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, factory)

	code := dispatcher.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	os.Exit(code)
}
