// Package salary accumulates a month of work and computes gross pay,
// overtime, tax and the exchanged amounts written to the monthly summary.
package salary

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Tiliavir/work-time-saver/internal/timecalc"
)

// SeparatorWidth is the number of dashes closing a summary block.
const SeparatorWidth = 84

// ErrSealed is returned when work is added to a finalized or discarded Salary.
var ErrSealed = errors.New("salary is sealed")

// Pay is the gross pay for a month split into the normal and overtime part.
type Pay struct {
	Normal   float64
	Overtime float64
}

// Gross returns the total pay before tax.
func (p Pay) Gross() float64 {
	return p.Normal + p.Overtime
}

// Salary holds the work accumulated over one calendar month.
type Salary struct {
	Rates         Rates
	MinutesWorked int
	DaysWorked    int

	lc *lifecycle
}

// New returns an empty Salary computed with rates.
func New(rates Rates) *Salary {
	s := &Salary{Rates: rates}
	if lifecycleErr == nil {
		s.lc = startLifecycle()
	}
	return s
}

// State returns the lifecycle state name, or "" without a lifecycle.
func (s *Salary) State() string {
	if s.lc == nil {
		return ""
	}
	return s.lc.current()
}

// ready returns the reason a Salary has no lifecycle.
func (s *Salary) ready() error {
	if s.lc == nil {
		return lifecycleErr
	}
	return nil
}

// UpdateWork adds one day of work. Days longer than BreakAfter minutes lose
// one UnpaidBreak.
func (s *Salary) UpdateWork(minutes int) error {
	if err := s.ready(); err != nil {
		return err
	}
	if s.lc.sealed() {
		return ErrSealed
	}
	if s.State() == StateEmpty {
		if err := s.lc.send(eventWork); err != nil {
			return err
		}
	}
	if minutes > s.Rates.BreakAfter {
		minutes -= s.Rates.UnpaidBreak
	}
	s.MinutesWorked += minutes
	s.DaysWorked++
	return nil
}

// Calculate splits the month's hours at the overtime threshold and prices both parts.
func (s *Salary) Calculate() Pay {
	hours := float64(s.MinutesWorked) / 60
	extra := 0.0
	if hours > s.Rates.OvertimeThreshold {
		extra = hours - s.Rates.OvertimeThreshold
		hours -= extra
	}
	return Pay{
		Normal:   hours * s.Rates.HourlyRate,
		Overtime: extra * s.Rates.HourlyRate * s.Rates.OvertimeMultiplier,
	}
}

// DeductTax returns the net pay: each part of p taxed at its own rate.
func (s *Salary) DeductTax(p Pay) float64 {
	// Conversions keep the products rounded separately (no fused multiply-add).
	normal := float64(p.Normal * (1 - s.Rates.TaxRate))
	overtime := float64(p.Overtime * (1 - s.Rates.OvertimeTaxRate))
	return normal + overtime
}

// ExchangeCurrency converts amount and formats it with the exchange currency.
func (s *Salary) ExchangeCurrency(amount float64) string {
	return fmt.Sprintf("%.2f%s", amount*s.Rates.Exchange.Rate, s.Rates.Exchange.Currency)
}

// Total returns the gross pay formatted with the pay currency, e.g. "2500.00NOK".
func (s *Salary) Total() string {
	return fmt.Sprintf("%.2f%s", s.Calculate().Gross(), s.Rates.Currency)
}

// SummaryText renders days, hours, gross and net pay for the month.
func (s *Salary) SummaryText() string {
	pay := s.Calculate()
	gross := pay.Gross()
	net := s.DeductTax(pay)

	var exGross, exNet string
	if s.Rates.Exchange.Enabled {
		exGross = " (" + s.ExchangeCurrency(gross) + ")"
		exNet = " (" + s.ExchangeCurrency(net) + ")"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d\t\t\t\t%sh\n", s.DaysWorked, timecalc.FormatHours(s.MinutesWorked))
	fmt.Fprintf(&b, "\t\t\t\t%.2f%s%s\n", gross, s.Rates.Currency, exGross)
	fmt.Fprintf(&b, "After tax:\t\t\t%.2f%s%s\n", net, s.Rates.Currency, exNet)
	return b.String()
}

// String renders the summary block as written to the ledger, closed by a
// separator line.
func (s *Salary) String() string {
	return s.SummaryText() + "\n" + strings.Repeat("-", SeparatorWidth) + "\n"
}

// GoString is used in debug logs.
func (s *Salary) GoString() string {
	return fmt.Sprintf("<Salary %g%s per hour. Worktime %d minutes>",
		s.Rates.HourlyRate, s.Rates.Currency, s.MinutesWorked)
}

// Finalize seals the Salary and returns its summary block.
func (s *Salary) Finalize() (string, error) {
	if err := s.ready(); err != nil {
		return "", err
	}
	if s.lc.sealed() {
		return "", ErrSealed
	}
	if err := s.lc.send(eventFinalize); err != nil {
		return "", err
	}
	return s.String(), nil
}

// Discard seals the Salary without producing a summary.
func (s *Salary) Discard() error {
	if err := s.ready(); err != nil {
		return err
	}
	if s.lc.sealed() {
		return ErrSealed
	}
	return s.lc.send(eventDiscard)
}
