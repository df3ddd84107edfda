package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/work-time-saver/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Print the running month each time a ledger file changes",
	Args:  cobra.NoArgs,
	RunE:  runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	if err := os.MkdirAll(cfg.LedgerDir, 0o755); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	rates := cfg.Pay.Rates()
	w, err := watch.New(cfg.LedgerDir, 0, func(path string) {
		if err := printStatus(os.Stdout, path, rates); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("Watching %s (Ctrl-C to stop)\n", cfg.LedgerDir)
	if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	return nil
}
