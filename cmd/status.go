package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/work-time-saver/internal/ledger"
	"github.com/Tiliavir/work-time-saver/internal/salary"
	"github.com/Tiliavir/work-time-saver/internal/storage"
	"github.com/Tiliavir/work-time-saver/internal/timecalc"
)

var statusYear int

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the running month without logging anything",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func init() {
	statusCmd.Flags().IntVar(&statusYear, "year", 0, "Ledger year (default current year)")
}

func runStatus(cmd *cobra.Command, args []string) error {
	year := statusYear
	if year == 0 {
		year = time.Now().Year()
	}
	if err := printStatus(os.Stdout, storage.YearPath(cfg.LedgerDir, year), cfg.Pay.Rates()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	return nil
}

// printStatus summarizes the records at the end of the ledger at path.
func printStatus(w io.Writer, path string, rates salary.Rates) error {
	snap, err := ledger.Current(path, rates)
	if err != nil {
		return err
	}
	s := snap.Salary
	if s.DaysWorked == 0 {
		fmt.Fprintf(w, "No running month in %s.\n", path)
		return nil
	}

	pay := s.Calculate()
	fmt.Fprintln(w, titleStyle.Render(monthName(snap.Month)))
	fmt.Fprintf(w, "%s %d\n", labelStyle.Render("Days:      "), s.DaysWorked)
	fmt.Fprintf(w, "%s %sh\n", labelStyle.Render("Hours:     "), timecalc.FormatHours(s.MinutesWorked))
	fmt.Fprintf(w, "%s %s\n", labelStyle.Render("Before tax:"), moneyStyle.Render(s.Total()))
	fmt.Fprintf(w, "%s %.2f%s\n", labelStyle.Render("After tax: "), s.DeductTax(pay), s.Rates.Currency)
	return nil
}

// monthName returns the English name of month, or "unknown month" outside 1..12.
func monthName(month int) string {
	if month < 1 || month > 12 {
		return "unknown month"
	}
	return time.Month(month).String()
}
