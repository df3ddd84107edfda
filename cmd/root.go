package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/work-time-saver/internal/config"
	"github.com/Tiliavir/work-time-saver/internal/storage"
)

var (
	flagDir     string
	flagVerbose bool

	// Resolved in PersistentPreRunE for every command.
	baseDir string
	cfg     config.Config
)

var rootCmd = &cobra.Command{
	Use:   "wts",
	Short: "Work Time Saver – log work days and follow this month's salary",
	Long: `wts appends each work day to a plain-text ledger, one file per year
(~/.wts/2019.txt, ...). When a new month starts it closes the previous one
with a summary: days worked, hours, salary before and after tax.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDir, "dir", "", "Ledger directory (overrides config and $WTS_LEDGER_DIR)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log debug output to stderr")

	rootCmd.AddCommand(logCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(outlookCmd)
}

func setup(cmd *cobra.Command, args []string) error {
	level := slog.LevelWarn
	if flagVerbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	config.LoadEnvFile()

	var err error
	baseDir, err = storage.BaseDir()
	if err != nil {
		return err
	}
	cfg, err = config.Load(baseDir)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config %s:\n%w", config.FilePath(baseDir), err)
	}
	if flagDir != "" {
		cfg.LedgerDir = flagDir
	}
	slog.Debug("configuration loaded", "base", baseDir, "ledger_dir", cfg.LedgerDir)
	return nil
}
