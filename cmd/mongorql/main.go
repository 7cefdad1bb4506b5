// Package main is the entry point for the mongorql CLI.
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/vinicius-lino-figueiredo/mongorql/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cmd := cli.NewRootCommand()
	if err := cmd.ExecuteContext(ctx); err != nil {
		cli.PrintError(os.Stderr, err)
		stop()
		os.Exit(cli.GetExitCode(err))
	}
}
