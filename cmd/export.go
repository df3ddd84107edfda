package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Tiliavir/work-time-saver/internal/ledger"
	"github.com/Tiliavir/work-time-saver/internal/storage"
)

var (
	exportFormat string
	exportYear   int
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the work days of a year to stdout",
	Args:  cobra.NoArgs,
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "csv", "Output format: csv, json, yaml")
	exportCmd.Flags().IntVar(&exportYear, "year", 0, "Ledger year (default current year)")
}

func runExport(cmd *cobra.Command, args []string) error {
	year := exportYear
	if year == 0 {
		year = time.Now().Year()
	}

	lines, err := ledger.Load(storage.YearPath(cfg.LedgerDir, year))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	if err := writeExport(os.Stdout, exportFormat, year, ledger.Records(lines)); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	return nil
}

func writeExport(w io.Writer, format string, year int, entries []ledger.Entry) error {
	switch format {
	case "json":
		data, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return fmt.Errorf("error encoding JSON: %w", err)
		}
		fmt.Fprintln(w, string(data))
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(entries); err != nil {
			return fmt.Errorf("error encoding YAML: %w", err)
		}
		return enc.Close()
	case "csv":
		printCSV(w, year, entries)
	default:
		return fmt.Errorf("unknown format %q: expected csv, json or yaml", format)
	}
	return nil
}

func printCSV(w io.Writer, year int, entries []ledger.Entry) {
	fmt.Fprintln(w, "date,start,end,duration_minutes")
	for _, e := range entries {
		date := fmt.Sprintf("%04d-%02d-%02d", year, e.Month, e.Day)
		fmt.Fprintf(w, "%s,%s,%s,%d\n",
			csvEscape(date),
			csvEscape(e.Start),
			csvEscape(e.End),
			e.Minutes,
		)
	}
}

// csvEscape wraps a field in quotes if it contains a comma, quote, or newline.
func csvEscape(s string) string {
	if !strings.ContainsAny(s, ",\"\n\r") {
		return s
	}
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
