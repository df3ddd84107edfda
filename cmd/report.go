package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/work-time-saver/internal/ledger"
	"github.com/Tiliavir/work-time-saver/internal/storage"
)

var reportYear int

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Show the monthly summaries of a year, recomputed from its records",
	Args:  cobra.NoArgs,
	RunE:  runReport,
}

func init() {
	reportCmd.Flags().IntVar(&reportYear, "year", 0, "Ledger year (default current year)")
}

func runReport(cmd *cobra.Command, args []string) error {
	year := reportYear
	if year == 0 {
		year = time.Now().Year()
	}

	lines, err := ledger.Load(storage.YearPath(cfg.LedgerDir, year))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	months, err := ledger.Months(lines, cfg.Pay.Rates())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	printReport(os.Stdout, year, months)
	return nil
}

func printReport(w io.Writer, year int, months []ledger.MonthTotal) {
	if len(months) == 0 {
		fmt.Fprintf(w, "No records in %d.\n", year)
		return
	}
	for _, m := range months {
		title := fmt.Sprintf("%s %d", monthName(m.Month), year)
		body := strings.ReplaceAll(strings.TrimRight(m.Salary.SummaryText(), "\n"), "\t", "  ")
		fmt.Fprintln(w, titleStyle.Render(title))
		fmt.Fprintln(w, blockStyle.Render(body))
	}
}
