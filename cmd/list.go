package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/work-time-saver/internal/ledger"
	"github.com/Tiliavir/work-time-saver/internal/storage"
	"github.com/Tiliavir/work-time-saver/internal/timecalc"
)

var (
	listYear  int
	listMonth int
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List logged work days",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	listCmd.Flags().IntVar(&listYear, "year", 0, "Ledger year (default current year)")
	listCmd.Flags().IntVar(&listMonth, "month", 0, "Only this month (1-12)")
}

func runList(cmd *cobra.Command, args []string) error {
	now := time.Now()
	year := listYear
	if year == 0 {
		year = now.Year()
	}
	if listMonth < 0 || listMonth > 12 {
		fmt.Fprintf(os.Stderr, "invalid --month value %d\n", listMonth)
		os.Exit(1)
	}

	lines, err := ledger.Load(storage.YearPath(cfg.LedgerDir, year))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	entries := ledger.Records(lines)
	if listMonth != 0 {
		entries = filterMonth(entries, listMonth)
	}
	printList(os.Stdout, entries)
	return nil
}

func filterMonth(entries []ledger.Entry, month int) []ledger.Entry {
	var out []ledger.Entry
	for _, e := range entries {
		if e.Month == month {
			out = append(out, e)
		}
	}
	return out
}

// printList groups entries by month and prints them.
func printList(w io.Writer, entries []ledger.Entry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No entries found.")
		return
	}

	currentMonth := -1
	for _, e := range entries {
		if e.Month != currentMonth {
			fmt.Fprintln(w, titleStyle.Render(monthName(e.Month)))
			currentMonth = e.Month
		}
		fmt.Fprintf(w, "%02d.%02d  %s–%s  (%s)\n",
			e.Day, e.Month, e.Start, e.End, timecalc.FormatHours(e.Minutes))
	}
}
