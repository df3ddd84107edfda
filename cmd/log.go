package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/work-time-saver/internal/ledger"
	"github.com/Tiliavir/work-time-saver/internal/model"
	"github.com/Tiliavir/work-time-saver/internal/timecalc"
)

var (
	logDate string
	logFrom string
	logTo   string
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Log a work day and show this month's earnings",
	Example: `  wts log                                  # today, 8:00-16:30
  wts log --from 7:40 --to 22:30
  wts log --date 31.08.19 --from 8:00 --to 0:00`,
	Args: cobra.NoArgs,
	RunE: runLog,
}

func init() {
	logCmd.Flags().StringVar(&logDate, "date", "", "Day of work as dd.mm.yy (default today)")
	logCmd.Flags().StringVar(&logFrom, "from", "8:00", "Start of work as HH:MM")
	logCmd.Flags().StringVar(&logTo, "to", "16:30", "End of work as HH:MM")
}

func runLog(cmd *cobra.Command, args []string) error {
	date := logDate
	if date == "" {
		date = time.Now().Format("02.01.06")
	}

	iv, err := parseInterval(date, logFrom, logTo)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	total, err := ledger.New(cfg.LedgerDir, iv, cfg.Pay.Rates()).Process()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	fmt.Printf("Record added. In current month you have earned %s before tax. Keep going.\n", total)
	return nil
}

// parseInterval validates the user's input before it reaches the ledger.
func parseInterval(date, from, to string) (model.WorkInterval, error) {
	start, err := timecalc.ParseWorkStart(date + " " + from)
	if err != nil {
		return model.WorkInterval{}, err
	}
	end, err := timecalc.ParseWorkEnd(to)
	if err != nil {
		return model.WorkInterval{}, err
	}
	return model.WorkInterval{Start: start, End: end}, nil
}
