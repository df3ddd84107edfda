package salary

// Rates holds the pay rules a Salary is computed with.
type Rates struct {
	HourlyRate float64
	Currency   string

	// OvertimeThreshold is the number of hours per month paid at the normal
	// rate; hours above it are paid at HourlyRate * OvertimeMultiplier.
	OvertimeThreshold  float64
	OvertimeMultiplier float64

	// UnpaidBreak minutes are deducted once from a day longer than BreakAfter minutes.
	BreakAfter  int
	UnpaidBreak int

	TaxRate         float64
	OvertimeTaxRate float64

	Exchange Exchange
}

// Exchange converts amounts into a second currency for the monthly summary.
type Exchange struct {
	Enabled  bool
	Rate     float64
	Currency string
}

// DefaultRates returns the built-in pay rules.
func DefaultRates() Rates {
	return Rates{
		HourlyRate:         250,
		Currency:           "NOK",
		OvertimeThreshold:  162.5,
		OvertimeMultiplier: 1.5,
		BreakAfter:         240,
		UnpaidBreak:        30,
		TaxRate:            0.23,
		OvertimeTaxRate:    0.35,
		Exchange: Exchange{
			Enabled:  true,
			Rate:     0.41,
			Currency: "PLN",
		},
	}
}
