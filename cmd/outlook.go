package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/work-time-saver/internal/msgraph"
	"github.com/Tiliavir/work-time-saver/internal/timecalc"
)

var (
	outlookImportFrom    string
	outlookImportTo      string
	outlookImportDate    string
	outlookImportDryRun  bool
	outlookImportSubject string
	outlookImportTZ      string
)

var outlookCmd = &cobra.Command{
	Use:   "outlook",
	Short: "Outlook calendar integration",
}

var outlookImportCmd = &cobra.Command{
	Use:   "import",
	Short: "Log work shifts from the Outlook calendar",
	Long: `Reads the calendar view of the signed-in account and logs every event
whose subject matches --subject as a work day, oldest first. Days already
in the ledger with the same times are skipped.`,
	Args: cobra.NoArgs,
	RunE: runOutlookImport,
}

func init() {
	outlookImportCmd.Flags().StringVar(&outlookImportFrom, "from", "", "Start date (YYYY-MM-DD); required when --to is specified")
	outlookImportCmd.Flags().StringVar(&outlookImportTo, "to", "", "End date (YYYY-MM-DD); defaults to today")
	outlookImportCmd.Flags().StringVar(&outlookImportDate, "date", "", "Import a specific date (YYYY-MM-DD)")
	outlookImportCmd.Flags().BoolVar(&outlookImportDryRun, "dry-run", false, "Print planned records without writing")
	outlookImportCmd.Flags().StringVar(&outlookImportSubject, "subject", "", "Event subject marking a shift (default from config)")
	outlookImportCmd.Flags().StringVar(&outlookImportTZ, "timezone", "", "IANA timezone for event times (default from config)")
	outlookCmd.AddCommand(outlookImportCmd)
}

// importRange resolves the --date, --from and --to flags to a day range.
func importRange(date, fromStr, toStr string, now time.Time) (from, to time.Time, err error) {
	switch {
	case date != "":
		d, err := time.ParseInLocation("2006-01-02", date, time.Local)
		if err != nil {
			return from, to, fmt.Errorf("invalid --date value %q: %w", date, err)
		}
		return timecalc.StartOfDay(d), timecalc.EndOfDay(d), nil

	case fromStr != "" || toStr != "":
		if fromStr == "" {
			return from, to, fmt.Errorf("--from is required when --to is specified")
		}
		f, err := time.ParseInLocation("2006-01-02", fromStr, time.Local)
		if err != nil {
			return from, to, fmt.Errorf("invalid --from value %q: %w", fromStr, err)
		}
		t := now
		if toStr != "" {
			t, err = time.ParseInLocation("2006-01-02", toStr, time.Local)
			if err != nil {
				return from, to, fmt.Errorf("invalid --to value %q: %w", toStr, err)
			}
		}
		if t.Before(f) {
			return from, to, fmt.Errorf("--to %s is before --from %s", t.Format("2006-01-02"), f.Format("2006-01-02"))
		}
		return timecalc.StartOfDay(f), timecalc.EndOfDay(t), nil

	default:
		return timecalc.StartOfDay(now), timecalc.EndOfDay(now), nil
	}
}

func runOutlookImport(cmd *cobra.Command, args []string) error {
	from, to, err := importRange(outlookImportDate, outlookImportFrom, outlookImportTo, time.Now())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	subject := outlookImportSubject
	if subject == "" {
		subject = cfg.Outlook.Subject
	}
	timezone := outlookImportTZ
	if timezone == "" {
		timezone = cfg.Outlook.Timezone
	}

	dryTag := ""
	if outlookImportDryRun {
		dryTag = " [dry-run]"
	}
	fmt.Printf("Importing %q shifts (%s → %s)%s...\n",
		subject, from.Format("2006-01-02"), to.Format("2006-01-02"), dryTag)
	fmt.Println()

	ctx := context.Background()

	tok, oauthCfg, err := msgraph.Authenticate(ctx, baseDir, cfg.Outlook.TenantID, cfg.Outlook.ClientID, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Authentication failed: %v\n", err)
		os.Exit(1)
	}

	client := msgraph.NewClient(ctx, baseDir, tok, oauthCfg)

	events, err := client.GetCalendarView(ctx, from, to, timezone)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to fetch calendar events: %v\n", err)
		os.Exit(1)
	}

	result, err := msgraph.ImportShifts(events, msgraph.ImportOptions{
		LedgerDir: cfg.LedgerDir,
		Rates:     cfg.Pay.Rates(),
		Subject:   subject,
		Timezone:  timezone,
		DryRun:    outlookImportDryRun,
		Out:       os.Stdout,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Import error: %v\n", err)
		os.Exit(2)
	}

	fmt.Println()
	fmt.Println("Summary:")
	fmt.Printf("  %d imported\n", result.Imported)
	fmt.Printf("  %d skipped\n", result.Skipped)
	if result.Errors > 0 {
		fmt.Printf("  %d errors\n", result.Errors)
		os.Exit(2)
	}
	return nil
}
