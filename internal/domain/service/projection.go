package service

import (
	"github.com/shopspring/decimal"

	"github.com/sigecred/sgcred/internal/domain/model"
)

// ---------------------------------------------------------------------------
// ScheduleProjector – read-side projections over stored payment facts
// ---------------------------------------------------------------------------

// Late/partial flags and loan-level aggregates are never persisted; they are
// recomputed from due/paid amounts and dates on every read so there is a
// single source of truth.

// latePaymentThresholdDays is a fixed business rule: a payment made this many
// days or more after the due date counts as late.
const latePaymentThresholdDays = 4

// InstallmentView is one schedule line with its display classification.
type InstallmentView struct {
	Installment model.Installment
	Late        bool
	Partial     bool
	DaysLate    int
}

// LoanSummary holds the loan-level aggregates derived from the schedule.
type LoanSummary struct {
	TotalPaid     decimal.Decimal
	Balance       decimal.Decimal
	TotalDaysLate int
	PaidCount     int
	HasPayments   bool
}

// ScheduleProjector derives display state from a loan's stored schedule.
type ScheduleProjector struct{}

// NewScheduleProjector returns a new projector instance.
func NewScheduleProjector() *ScheduleProjector {
	return &ScheduleProjector{}
}

// Classify computes the late and partial flags for a single installment.
// Both flags are independent and may hold at the same time. Unpaid
// installments carry neither flag.
func (p *ScheduleProjector) Classify(inst model.Installment) InstallmentView {
	view := InstallmentView{Installment: inst}
	if !inst.IsPaid() {
		return view
	}

	if paidOn := inst.PaymentDate(); paidOn != nil {
		delay := model.DaysBetween(inst.DueDate(), *paidOn)
		view.Late = delay >= latePaymentThresholdDays
		if delay > 0 {
			view.DaysLate = delay
		}
	}
	if paid := inst.AmountPaid(); paid != nil {
		view.Partial = paid.LessThan(inst.DueAmount())
	}

	return view
}

// ClassifyAll projects every installment of a schedule.
func (p *ScheduleProjector) ClassifyAll(installments []model.Installment) []InstallmentView {
	views := make([]InstallmentView, 0, len(installments))
	for _, inst := range installments {
		views = append(views, p.Classify(inst))
	}
	return views
}

// Summarize derives the loan-level aggregates:
//
//	balance       = principal * (1 + totalInterestPct/100) - Σ amountPaid
//	totalDaysLate = Σ max(0, paymentDate - dueDate) over paid installments
//
// Days late are clamped at zero per installment so early payments never
// subtract from the total.
func (p *ScheduleProjector) Summarize(loan model.Loan, installments []model.Installment) LoanSummary {
	summary := LoanSummary{
		TotalPaid: decimal.Zero,
	}

	for _, inst := range installments {
		if !inst.IsPaid() {
			continue
		}
		summary.PaidCount++
		summary.HasPayments = true
		if paid := inst.AmountPaid(); paid != nil {
			summary.TotalPaid = summary.TotalPaid.Add(*paid)
		}
		if paidOn := inst.PaymentDate(); paidOn != nil {
			if delay := model.DaysBetween(inst.DueDate(), *paidOn); delay > 0 {
				summary.TotalDaysLate += delay
			}
		}
	}

	summary.Balance = loan.TotalRepayable().Sub(summary.TotalPaid)
	return summary
}

// HasRecordedPayments reports whether any installment of the schedule has a
// payment on record. Loans with recorded payments can no longer be deleted.
func (p *ScheduleProjector) HasRecordedPayments(installments []model.Installment) bool {
	for _, inst := range installments {
		if inst.IsPaid() {
			return true
		}
	}
	return false
}
