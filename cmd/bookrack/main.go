package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/matzehuels/bookrack/internal/cli"
	bkerrors "github.com/matzehuels/bookrack/pkg/errors"
)

// Exit statuses. Bad input (a scene file out of range, an unknown format)
// exits 2 so scripts can tell it apart from a failed render.
const (
	exitFailure     = 1
	exitBadInput    = 2
	exitInterrupted = 130
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := execute(ctx)
	stop()
	os.Exit(exitCode(err))
}

func execute(ctx context.Context) error {
	c := cli.New(os.Stderr, cli.LogInfo)
	root := c.RootCommand()

	var verbose bool
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log pipeline stages, cache lookups and hooks")

	next := root.PersistentPreRunE
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if verbose {
			c.SetLogLevel(cli.LogDebug)
		}
		if next == nil {
			return nil
		}
		return next(cmd, args)
	}

	return root.ExecuteContext(ctx)
}

func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, context.Canceled):
		return exitInterrupted
	}
	fmt.Fprintln(os.Stderr, "bookrack:", bkerrors.UserMessage(err))
	if bkerrors.IsValidation(err) {
		return exitBadInput
	}
	return exitFailure
}
