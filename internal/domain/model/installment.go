package model

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sigecred/sgcred/internal/domain/event"
	"github.com/sigecred/sgcred/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// Installment aggregate (one dated line of a loan's payment plan)
// ---------------------------------------------------------------------------

// Installment is an immutable aggregate. Mutations return a new copy.
type Installment struct {
	id           string
	loanID       string
	number       int
	dueAmount    decimal.Decimal
	dueDate      time.Time
	status       valueobject.InstallmentStatus
	paymentDate  *time.Time
	amountPaid   *decimal.Decimal
	balance      decimal.Decimal
	domainEvents []event.DomainEvent
}

// newPendingInstallment builds a schedule line at loan-creation time. Only
// Loan.BuildSchedule creates installments, so this stays unexported.
func newPendingInstallment(id, loanID string, number int, dueAmount decimal.Decimal, dueDate time.Time) Installment {
	return Installment{
		id:        id,
		loanID:    loanID,
		number:    number,
		dueAmount: dueAmount,
		dueDate:   NormalizeDate(dueDate),
		status:    valueobject.InstallmentStatusPending,
		balance:   dueAmount,
	}
}

// ReconstructInstallment rebuilds an Installment from persistence.
func ReconstructInstallment(
	id, loanID string,
	number int,
	dueAmount decimal.Decimal,
	dueDate time.Time,
	status valueobject.InstallmentStatus,
	paymentDate *time.Time,
	amountPaid *decimal.Decimal,
	balance decimal.Decimal,
) Installment {
	return Installment{
		id:          id,
		loanID:      loanID,
		number:      number,
		dueAmount:   dueAmount,
		dueDate:     dueDate,
		status:      status,
		paymentDate: paymentDate,
		amountPaid:  amountPaid,
		balance:     balance,
	}
}

// ---------------------------------------------------------------------------
// State transitions
// ---------------------------------------------------------------------------

// RecordPayment applies a payment to the installment and emits
// PaymentRecorded. Calling it on an already-paid installment overwrites the
// prior payment record, which is how corrections are made. The balance is
// dueAmount minus amountPaid and is not clamped: negative means overpaid,
// positive means partial. A PAID installment never returns to PENDING.
func (i Installment) RecordPayment(paymentDate time.Time, amountPaid decimal.Decimal) (Installment, error) {
	if paymentDate.IsZero() {
		return i, errors.New("payment date is required")
	}
	if amountPaid.LessThanOrEqual(decimal.Zero) {
		return i, errors.New("amount paid must be positive")
	}

	day := NormalizeDate(paymentDate)
	paid := amountPaid

	next := i
	next.status = valueobject.InstallmentStatusPaid
	next.paymentDate = &day
	next.amountPaid = &paid
	next.balance = i.dueAmount.Sub(amountPaid)
	next.domainEvents = append(copyEvents(i.domainEvents), event.NewPaymentRecorded(
		i.id, i.loanID, i.number, day, paid, next.balance,
	))

	return next, nil
}

// ---------------------------------------------------------------------------
// Accessors
// ---------------------------------------------------------------------------

func (i Installment) ID() string                                { return i.id }
func (i Installment) LoanID() string                            { return i.loanID }
func (i Installment) Number() int                               { return i.number }
func (i Installment) DueAmount() decimal.Decimal                { return i.dueAmount }
func (i Installment) DueDate() time.Time                        { return i.dueDate }
func (i Installment) Status() valueobject.InstallmentStatus     { return i.status }
func (i Installment) Balance() decimal.Decimal                  { return i.balance }
func (i Installment) DomainEvents() []event.DomainEvent         { return i.domainEvents }

// PaymentDate returns the recorded payment date, nil while pending.
func (i Installment) PaymentDate() *time.Time {
	if i.paymentDate == nil {
		return nil
	}
	d := *i.paymentDate
	return &d
}

// AmountPaid returns the recorded payment amount, nil while pending.
func (i Installment) AmountPaid() *decimal.Decimal {
	if i.amountPaid == nil {
		return nil
	}
	a := *i.amountPaid
	return &a
}

// IsPaid reports whether a payment has been recorded.
func (i Installment) IsPaid() bool {
	return i.status.Equal(valueobject.InstallmentStatusPaid)
}

// ClearEvents returns a copy with an empty event list.
func (i Installment) ClearEvents() Installment {
	next := i
	next.domainEvents = nil
	return next
}

func copyEvents(evts []event.DomainEvent) []event.DomainEvent {
	if evts == nil {
		return nil
	}
	out := make([]event.DomainEvent, len(evts))
	copy(out, evts)
	return out
}
