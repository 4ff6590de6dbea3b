// Package main is the entry point for the gid CLI.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"gid/internal/cli"
	"gid/internal/commands"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, cli.GoogleTasks)

	code := dispatcher.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	cancel()
	os.Exit(code)
}
