// Package main provides the entry point for the TripLog sync tool.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/samber/do/v2"

	"github.com/triplogapp/triplog-server/internal/config"
	"github.com/triplogapp/triplog-server/internal/di"
	"github.com/triplogapp/triplog-server/internal/logger"
	"github.com/triplogapp/triplog-server/internal/sync"
)

const usage = `Usage: triplog <command> [flags]

Commands:
  preflight   Verify write access to the remote backup namespace
  backup      Copy the local trips of a user to the remote store
  restore     Rebuild a user's trips locally from the remote backup

Run "triplog <command> -h" for the command's flags.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	command := os.Args[1]
	if command == "-h" || command == "--help" || command == "help" {
		fmt.Fprint(os.Stderr, usage)
		return
	}

	// Create DI container
	injector := di.NewContainer(os.Args[2:])

	// Bootstrap all services
	if err := di.Bootstrap(injector); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start: %v\n", err)
		os.Exit(1)
	}

	log := do.MustInvoke[*logger.Logger](injector)
	cfg := do.MustInvoke[*config.Config](injector)
	service := do.MustInvoke[*sync.Service](injector)

	// Cancel the running operation on Ctrl-C instead of dying mid-write.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var err error
	switch command {
	case "preflight":
		err = service.Preflight(ctx)
	case "backup":
		err = service.Backup(ctx, cfg.Auth.LocalUser)
	case "restore":
		err = service.Restore(ctx, cfg.Auth.LocalUser)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command %q\n\n%s", command, usage)
		os.Exit(2)
	}

	if shutdownErr := injector.Shutdown(); shutdownErr != nil {
		log.Error("Shutdown error", "error", shutdownErr)
	}

	if err != nil {
		log.Error("Command failed", "command", command, "error", err)
		os.Exit(1)
	}
	log.Info("Command complete", "command", command)
}
