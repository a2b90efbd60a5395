package model

import (
	"math"

	"github.com/shopspring/decimal"
)

// ComputeInstallment computes the fixed per-period installment for a loan
// using the French (annuity) amortization method.
//
// Parameters:
//   - principal:       the disbursed amount
//   - periodicRatePct: interest rate applied once per payment period, as a
//     percentage (e.g. 5 means 5.00% per period, not annualized)
//   - termCount:       number of installments
//
// The calculation uses:
//
//	rate    = periodicRatePct / 100
//	payment = P * rate * (1+rate)^n / ((1+rate)^n - 1)
//
// Non-positive principal or term, and a degenerate zero denominator, yield
// decimal.Zero rather than an error. A zero rate
// degrades to an even split. Rounding to 2 decimal places happens once, at
// the end, to preserve precision.
func ComputeInstallment(principal, periodicRatePct decimal.Decimal, termCount int) decimal.Decimal {
	if termCount <= 0 || principal.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}

	if periodicRatePct.IsZero() {
		return principal.Div(decimal.NewFromInt(int64(termCount))).Round(2)
	}

	// float64 for the power calculation, decimal for the monetary boundary.
	rate := periodicRatePct.InexactFloat64() / 100.0
	factor := math.Pow(1+rate, float64(termCount))
	denominator := factor - 1
	if denominator == 0 {
		return decimal.Zero
	}

	payment := principal.InexactFloat64() * rate * factor / denominator
	return decimal.NewFromFloat(payment).Round(2)
}

// TotalInterestPercent derives the loan's total interest percentage from the
// agreed installment amount: ((n*installment - principal) / principal) * 100,
// rounded to 2 decimal places. It is recomputed at save time and never
// trusted from input. Non-positive inputs yield decimal.Zero.
func TotalInterestPercent(principal, installmentAmount decimal.Decimal, termCount int) decimal.Decimal {
	if termCount <= 0 || principal.LessThanOrEqual(decimal.Zero) || installmentAmount.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}

	totalRepaid := installmentAmount.Mul(decimal.NewFromInt(int64(termCount)))
	earned := totalRepaid.Sub(principal)
	return earned.Div(principal).Mul(decimal.NewFromInt(100)).Round(2)
}
