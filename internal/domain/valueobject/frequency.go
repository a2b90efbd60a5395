package valueobject

import (
	"fmt"
	"time"
)

// ---------------------------------------------------------------------------
// PaymentFrequency – immutable value object
// ---------------------------------------------------------------------------

// PaymentFrequency is the cadence at which loan installments fall due.
type PaymentFrequency struct {
	value string
}

const (
	frequencyDaily    = "DAILY"
	frequencyWeekly   = "WEEKLY"
	frequencyBiweekly = "BIWEEKLY"
	frequencyMonthly  = "MONTHLY"
)

var (
	PaymentFrequencyDaily    = PaymentFrequency{value: frequencyDaily}
	PaymentFrequencyWeekly   = PaymentFrequency{value: frequencyWeekly}
	PaymentFrequencyBiweekly = PaymentFrequency{value: frequencyBiweekly}
	PaymentFrequencyMonthly  = PaymentFrequency{value: frequencyMonthly}
)

var validPaymentFrequencies = map[string]PaymentFrequency{
	frequencyDaily:    PaymentFrequencyDaily,
	frequencyWeekly:   PaymentFrequencyWeekly,
	frequencyBiweekly: PaymentFrequencyBiweekly,
	frequencyMonthly:  PaymentFrequencyMonthly,
}

// NewPaymentFrequency creates a PaymentFrequency from a raw string.
func NewPaymentFrequency(s string) (PaymentFrequency, error) {
	v, ok := validPaymentFrequencies[s]
	if !ok {
		return PaymentFrequency{}, fmt.Errorf("invalid payment frequency: %q", s)
	}
	return v, nil
}

// Next advances a due date by one period.
//
// Daily, weekly and biweekly cadences add fixed day counts of 1, 7 and 15
// days; the business counts a fortnight as 15 days. Monthly adds one calendar month;
// when the day of month does not exist in the target month the date rolls over
// per time.AddDate's normalisation, which is the accepted behaviour.
func (f PaymentFrequency) Next(d time.Time) time.Time {
	switch f.value {
	case frequencyDaily:
		return d.AddDate(0, 0, 1)
	case frequencyWeekly:
		return d.AddDate(0, 0, 7)
	case frequencyBiweekly:
		return d.AddDate(0, 0, 15)
	case frequencyMonthly:
		return d.AddDate(0, 1, 0)
	default:
		return d
	}
}

// String returns the string representation of the frequency.
func (f PaymentFrequency) String() string { return f.value }

// IsZero returns true if the frequency has not been initialised.
func (f PaymentFrequency) IsZero() bool { return f.value == "" }

// Equal returns true when both frequencies carry the same value.
func (f PaymentFrequency) Equal(other PaymentFrequency) bool { return f.value == other.value }
