package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"

	"github.com/Tiliavir/work-time-saver/internal/salary"
)

// Config is the root configuration for wts, stored in ~/.wts/config.json.
// The file supports single-line // comments for documentation purposes.
type Config struct {
	// LedgerDir holds the yearly ledger files. Empty = the wts home directory.
	LedgerDir string        `json:"ledger_dir"`
	Pay       PayConfig     `json:"pay"`
	Outlook   OutlookConfig `json:"outlook"`
}

// PayConfig holds the rules salaries are computed with.
type PayConfig struct {
	HourlyRate             float64        `json:"hourly_rate"`
	Currency               string         `json:"currency"`
	OvertimeThresholdHours float64        `json:"overtime_threshold_hours"`
	OvertimeMultiplier     float64        `json:"overtime_multiplier"`
	BreakAfterMinutes      int            `json:"break_after_minutes"`
	UnpaidBreakMinutes     int            `json:"unpaid_break_minutes"`
	TaxRate                float64        `json:"tax_rate"`
	OvertimeTaxRate        float64        `json:"overtime_tax_rate"`
	Exchange               ExchangeConfig `json:"exchange"`
}

// ExchangeConfig controls the second currency shown in monthly summaries.
// Enabled is a pointer so that an omitted value keeps the default.
type ExchangeConfig struct {
	Enabled  *bool   `json:"enabled"`
	Rate     float64 `json:"rate"`
	Currency string  `json:"currency"`
}

// OutlookConfig holds Microsoft Graph / Outlook calendar import settings.
type OutlookConfig struct {
	// TenantID is the Azure AD tenant. Use "common" for personal/multi-tenant accounts.
	TenantID string `json:"tenant_id"`
	// ClientID is the Azure app (client) ID for the OAuth2 device code flow.
	ClientID string `json:"client_id"`
	// Subject selects the calendar events imported as work days.
	Subject string `json:"subject"`
	// Timezone is the IANA timezone for event times (e.g. "Europe/Oslo"). Empty = local.
	Timezone string `json:"timezone"`
}

const (
	// DefaultTenantID is the Microsoft "common" tenant.
	DefaultTenantID = "common"
	// DefaultClientID is the well-known public Azure CLI app ID, usable for
	// the device code flow without an app registration.
	DefaultClientID = "04b07795-8542-4c4a-95af-30b2c573d5ab"
	// DefaultSubject is the event subject imported as a work day.
	DefaultSubject = "Work"
)

// Rates converts the pay section into salary rules.
func (p PayConfig) Rates() salary.Rates {
	enabled := true
	if p.Exchange.Enabled != nil {
		enabled = *p.Exchange.Enabled
	}
	return salary.Rates{
		HourlyRate:         p.HourlyRate,
		Currency:           p.Currency,
		OvertimeThreshold:  p.OvertimeThresholdHours,
		OvertimeMultiplier: p.OvertimeMultiplier,
		BreakAfter:         p.BreakAfterMinutes,
		UnpaidBreak:        p.UnpaidBreakMinutes,
		TaxRate:            p.TaxRate,
		OvertimeTaxRate:    p.OvertimeTaxRate,
		Exchange: salary.Exchange{
			Enabled:  enabled,
			Rate:     p.Exchange.Rate,
			Currency: p.Exchange.Currency,
		},
	}
}

// Default returns a Config pre-filled with the built-in defaults.
func Default() Config {
	r := salary.DefaultRates()
	enabled := r.Exchange.Enabled
	return Config{
		Pay: PayConfig{
			HourlyRate:             r.HourlyRate,
			Currency:               r.Currency,
			OvertimeThresholdHours: r.OvertimeThreshold,
			OvertimeMultiplier:     r.OvertimeMultiplier,
			BreakAfterMinutes:      r.BreakAfter,
			UnpaidBreakMinutes:     r.UnpaidBreak,
			TaxRate:                r.TaxRate,
			OvertimeTaxRate:        r.OvertimeTaxRate,
			Exchange: ExchangeConfig{
				Enabled:  &enabled,
				Rate:     r.Exchange.Rate,
				Currency: r.Exchange.Currency,
			},
		},
		Outlook: OutlookConfig{
			TenantID: DefaultTenantID,
			ClientID: DefaultClientID,
			Subject:  DefaultSubject,
		},
	}
}

// configTemplate is the annotated config written on first run.
// Lines whose trimmed content starts with // are stripped before JSON parsing.
const configTemplate = `// wts configuration – ~/.wts/config.json
//
// All settings are optional; anything left out falls back to the values
// shown below.
{
  // Directory holding the yearly ledger files (2019.txt, 2020.txt, ...).
  // Leave empty to keep them next to this file. $WTS_LEDGER_DIR wins.
  "ledger_dir": "",

  // ── Pay rules ─────────────────────────────────────────────────────────────
  "pay": {
    "hourly_rate": 250,
    "currency": "NOK",

    // Hours per month paid at the normal rate; the rest is overtime.
    "overtime_threshold_hours": 162.5,
    "overtime_multiplier": 1.5,

    // A day longer than break_after_minutes loses one unpaid break.
    "break_after_minutes": 240,
    "unpaid_break_minutes": 30,

    "tax_rate": 0.23,
    "overtime_tax_rate": 0.35,

    // Second currency printed in the monthly summary.
    "exchange": {
      "enabled": true,
      "rate": 0.41,
      "currency": "PLN"
    }
  },

  // ── Outlook calendar import ──────────────────────────────────────────────
  "outlook": {
    // Azure AD tenant ID: "common" or your organisation's tenant GUID.
    "tenant_id": "common",

    // Azure application (client) ID used for the OAuth2 device code flow.
    "client_id": "04b07795-8542-4c4a-95af-30b2c573d5ab",

    // Events with this subject are imported as work days.
    "subject": "Work",

    // IANA timezone for event times, e.g. "Europe/Oslo". Empty = local time.
    "timezone": ""
  }
}
`

// FilePath returns the path to config.json inside base.
func FilePath(base string) string {
	return filepath.Join(base, "config.json")
}

// stripLineComments removes lines whose leading non-whitespace content starts
// with //. Only full-line comments are handled; inline comments are not stripped.
func stripLineComments(data []byte) []byte {
	var out []byte
	for _, line := range bytes.Split(data, []byte("\n")) {
		if bytes.HasPrefix(bytes.TrimLeft(line, " \t"), []byte("//")) {
			continue
		}
		out = append(out, line...)
		out = append(out, '\n')
	}
	return out
}

// LoadEnvFile loads a .env file from the working directory, if present.
func LoadEnvFile() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("could not load .env file", "error", err)
	}
}

// Load reads base/config.json, creating it with annotated defaults on first
// run, and applies environment overrides.
func Load(base string) (Config, error) {
	path := FilePath(base)

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		// First run: write the annotated template so users can discover options.
		if writeErr := writeDefault(path); writeErr != nil {
			slog.Warn("could not create config file", "path", path, "error", writeErr)
		}
		return finish(Default(), base), nil
	}
	if err != nil {
		return finish(Default(), base), fmt.Errorf("reading config file %s: %w", path, err)
	}

	cfg := Default()
	if err := json.Unmarshal(stripLineComments(data), &cfg); err != nil {
		return finish(Default(), base), fmt.Errorf("parsing config file %s: %w\nTip: delete the file to regenerate defaults", path, err)
	}
	fillDefaults(&cfg)
	return finish(cfg, base), nil
}

// fillDefaults replaces zero values a partially filled file left behind.
func fillDefaults(cfg *Config) {
	def := Default()
	p, d := &cfg.Pay, def.Pay
	if p.HourlyRate == 0 {
		p.HourlyRate = d.HourlyRate
	}
	if p.Currency == "" {
		p.Currency = d.Currency
	}
	if p.OvertimeThresholdHours == 0 {
		p.OvertimeThresholdHours = d.OvertimeThresholdHours
	}
	if p.OvertimeMultiplier == 0 {
		p.OvertimeMultiplier = d.OvertimeMultiplier
	}
	if p.Exchange.Enabled == nil {
		p.Exchange.Enabled = d.Exchange.Enabled
	}
	if p.Exchange.Rate == 0 {
		p.Exchange.Rate = d.Exchange.Rate
	}
	if p.Exchange.Currency == "" {
		p.Exchange.Currency = d.Exchange.Currency
	}
	if cfg.Outlook.TenantID == "" {
		cfg.Outlook.TenantID = DefaultTenantID
	}
	if cfg.Outlook.ClientID == "" {
		cfg.Outlook.ClientID = DefaultClientID
	}
	if cfg.Outlook.Subject == "" {
		cfg.Outlook.Subject = DefaultSubject
	}
}

// finish resolves the ledger directory: $WTS_LEDGER_DIR, then the file, then base.
func finish(cfg Config, base string) Config {
	if dir := os.Getenv("WTS_LEDGER_DIR"); dir != "" {
		cfg.LedgerDir = dir
	}
	if cfg.LedgerDir == "" {
		cfg.LedgerDir = base
	}
	return cfg
}

// Validate reports pay rules that would produce meaningless salaries.
func (c Config) Validate() error {
	var errs []error
	p := c.Pay
	if p.HourlyRate < 0 {
		errs = append(errs, fmt.Errorf("pay.hourly_rate must not be negative, got %g", p.HourlyRate))
	}
	if p.OvertimeThresholdHours < 0 {
		errs = append(errs, fmt.Errorf("pay.overtime_threshold_hours must not be negative, got %g", p.OvertimeThresholdHours))
	}
	if p.BreakAfterMinutes < 0 || p.UnpaidBreakMinutes < 0 {
		errs = append(errs, errors.New("pay break minutes must not be negative"))
	}
	if p.UnpaidBreakMinutes > p.BreakAfterMinutes {
		errs = append(errs, fmt.Errorf("pay.unpaid_break_minutes (%d) exceeds pay.break_after_minutes (%d)",
			p.UnpaidBreakMinutes, p.BreakAfterMinutes))
	}
	taxes := []struct {
		name string
		rate float64
	}{
		{"pay.tax_rate", p.TaxRate},
		{"pay.overtime_tax_rate", p.OvertimeTaxRate},
	}
	for _, tax := range taxes {
		if tax.rate < 0 || tax.rate > 1 {
			errs = append(errs, fmt.Errorf("%s must be between 0 and 1, got %g", tax.name, tax.rate))
		}
	}
	if tz := c.Outlook.Timezone; tz != "" {
		if _, err := time.LoadLocation(tz); err != nil {
			errs = append(errs, fmt.Errorf("outlook.timezone %q is not a known IANA timezone", tz))
		}
	}
	return errors.Join(errs...)
}

// writeDefault creates the config directory and writes the annotated default
// config template.
func writeDefault(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(configTemplate), 0o600); err != nil {
		return fmt.Errorf("writing default config: %w", err)
	}
	return nil
}
