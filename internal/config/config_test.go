package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Tiliavir/work-time-saver/internal/config"
	"github.com/Tiliavir/work-time-saver/internal/salary"
)

func TestLoadFirstRunWritesTemplate(t *testing.T) {
	base := t.TempDir()
	t.Setenv("WTS_LEDGER_DIR", "")

	cfg, err := config.Load(base)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LedgerDir != base {
		t.Errorf("LedgerDir = %q, want %q", cfg.LedgerDir, base)
	}
	if cfg.Pay.Rates() != salary.DefaultRates() {
		t.Errorf("Rates = %+v, want defaults", cfg.Pay.Rates())
	}

	// The template written on first run must itself load to the defaults.
	if _, err := os.Stat(config.FilePath(base)); err != nil {
		t.Fatalf("config template not written: %v", err)
	}
	again, err := config.Load(base)
	if err != nil {
		t.Fatalf("Load of written template: %v", err)
	}
	if again.Pay.Rates() != salary.DefaultRates() {
		t.Errorf("template Rates = %+v, want defaults", again.Pay.Rates())
	}
	if again.Outlook.Subject != config.DefaultSubject {
		t.Errorf("Outlook.Subject = %q", again.Outlook.Subject)
	}
}

func TestLoadPartialFile(t *testing.T) {
	base := t.TempDir()
	t.Setenv("WTS_LEDGER_DIR", "")
	content := `// my settings
{
  "ledger_dir": "/srv/ledger",
  "pay": {
    // raise
    "hourly_rate": 300,
    "tax_rate": 0,
    "exchange": {"enabled": false}
  }
}
`
	if err := os.WriteFile(config.FilePath(base), []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := config.Load(base)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LedgerDir != "/srv/ledger" {
		t.Errorf("LedgerDir = %q", cfg.LedgerDir)
	}
	r := cfg.Pay.Rates()
	if r.HourlyRate != 300 {
		t.Errorf("HourlyRate = %v, want 300", r.HourlyRate)
	}
	if r.TaxRate != 0 {
		t.Errorf("TaxRate = %v, want 0", r.TaxRate)
	}
	if r.Exchange.Enabled {
		t.Error("Exchange.Enabled = true, want false")
	}
	if r.Currency != "NOK" || r.OvertimeThreshold != 162.5 || r.Exchange.Currency != "PLN" {
		t.Errorf("defaults not kept: %+v", r)
	}
	if cfg.Outlook.TenantID != config.DefaultTenantID || cfg.Outlook.ClientID != config.DefaultClientID {
		t.Errorf("Outlook defaults not filled: %+v", cfg.Outlook)
	}
}

func TestLoadLedgerDirFromEnv(t *testing.T) {
	base := t.TempDir()
	dir := filepath.Join(t.TempDir(), "ledger")
	t.Setenv("WTS_LEDGER_DIR", dir)

	cfg, err := config.Load(base)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.LedgerDir != dir {
		t.Errorf("LedgerDir = %q, want %q", cfg.LedgerDir, dir)
	}
}

func TestLoadCorruptFile(t *testing.T) {
	base := t.TempDir()
	t.Setenv("WTS_LEDGER_DIR", "")
	if err := os.WriteFile(config.FilePath(base), []byte("{bad json"), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := config.Load(base)
	if err == nil {
		t.Fatal("expected error for corrupt config, got nil")
	}
	if !strings.Contains(err.Error(), "delete the file") {
		t.Errorf("error = %v", err)
	}
	if cfg.Pay.Rates() != salary.DefaultRates() {
		t.Error("corrupt config should fall back to defaults")
	}
}

func TestValidate(t *testing.T) {
	if err := config.Default().Validate(); err != nil {
		t.Errorf("Default().Validate() = %v", err)
	}
	withZone := config.Default()
	withZone.Outlook.Timezone = "UTC"
	if err := withZone.Validate(); err != nil {
		t.Errorf("Validate with UTC timezone = %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"negative rate", func(c *config.Config) { c.Pay.HourlyRate = -1 }},
		{"tax above one", func(c *config.Config) { c.Pay.TaxRate = 1.5 }},
		{"negative overtime tax", func(c *config.Config) { c.Pay.OvertimeTaxRate = -0.1 }},
		{"break longer than threshold", func(c *config.Config) { c.Pay.UnpaidBreakMinutes = 300 }},
		{"negative threshold", func(c *config.Config) { c.Pay.OvertimeThresholdHours = -1 }},
		{"unknown timezone", func(c *config.Config) { c.Outlook.Timezone = "Europe/Nowhere" }},
	}
	for _, tt := range tests {
		cfg := config.Default()
		tt.mutate(&cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: expected validation error", tt.name)
		}
	}
}
