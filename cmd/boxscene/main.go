package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/matzehuels/boxscene/internal/cli"
	bserrors "github.com/matzehuels/boxscene/pkg/errors"
)

// Exit codes.
const (
	exitFailure   = 1
	exitBadInput  = 2   // the diagram or flags were rejected
	exitInterrupt = 130 // standard shell convention for SIGINT
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		os.Exit(report(err))
	}
}

func run(ctx context.Context) error {
	var verbose bool

	c := cli.New(os.Stderr, cli.LogInfo)
	root := c.RootCommand()
	root.SilenceErrors = true

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	// The log level must be set before the root pre-run loads config.
	originalPreRun := root.PersistentPreRunE
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if verbose {
			c.SetLogLevel(cli.LogDebug)
		}
		if originalPreRun != nil {
			return originalPreRun(cmd, args)
		}
		return nil
	}

	return root.ExecuteContext(ctx)
}

// report prints err and returns the process exit code.
func report(err error) int {
	if errors.Is(err, context.Canceled) {
		return exitInterrupt
	}
	fmt.Fprintln(os.Stderr, "Error:", bserrors.UserMessage(err))
	if bserrors.IsClientError(err) {
		return exitBadInput
	}
	return exitFailure
}
