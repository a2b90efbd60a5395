package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sigecred/sgcred/internal/domain/event"
	"github.com/sigecred/sgcred/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// Loan aggregate root
// ---------------------------------------------------------------------------

// Loan is an immutable aggregate. Mutations return a new copy.
//
// The total interest percentage is always derived from the agreed installment
// amount and never taken from input; a client-supplied figure is advisory
// display data only.
type Loan struct {
	id                string
	clientNationalID  string
	principal         decimal.Decimal
	frequency         valueobject.PaymentFrequency
	installmentCount  int
	installmentAmount decimal.Decimal
	totalInterestPct  decimal.Decimal
	disbursementDate  time.Time
	firstPaymentDate  time.Time
	status            valueobject.LoanStatus
	createdAt         time.Time
	updatedAt         time.Time
	domainEvents      []event.DomainEvent
}

// NewLoan creates a loan in ACTIVE status. The installment amount must
// already be settled (entered by the operator or computed with
// ComputeInstallment); the total interest percentage is recomputed here.
func NewLoan(
	clientNationalID string,
	principal decimal.Decimal,
	frequency valueobject.PaymentFrequency,
	installmentCount int,
	installmentAmount decimal.Decimal,
	disbursementDate, firstPaymentDate time.Time,
	now time.Time,
) (Loan, error) {
	if clientNationalID == "" {
		return Loan{}, errors.New("client national ID is required")
	}
	if principal.LessThanOrEqual(decimal.Zero) {
		return Loan{}, errors.New("principal must be positive")
	}
	if frequency.IsZero() {
		return Loan{}, errors.New("payment frequency is required")
	}
	if installmentCount <= 0 {
		return Loan{}, errors.New("installment count must be positive")
	}
	if installmentAmount.LessThanOrEqual(decimal.Zero) {
		return Loan{}, errors.New("installment amount must be positive")
	}
	if disbursementDate.IsZero() {
		return Loan{}, errors.New("disbursement date is required")
	}
	if firstPaymentDate.IsZero() {
		return Loan{}, errors.New("first payment date is required")
	}

	loan := Loan{
		id:                uuid.New().String(),
		clientNationalID:  clientNationalID,
		principal:         principal,
		frequency:         frequency,
		installmentCount:  installmentCount,
		installmentAmount: installmentAmount,
		totalInterestPct:  TotalInterestPercent(principal, installmentAmount, installmentCount),
		disbursementDate:  NormalizeDate(disbursementDate),
		firstPaymentDate:  NormalizeDate(firstPaymentDate),
		status:            valueobject.LoanStatusActive,
		createdAt:         now,
		updatedAt:         now,
	}

	loan.domainEvents = append(loan.domainEvents, event.NewLoanCreated(
		loan.id, clientNationalID,
		principal, installmentAmount, loan.totalInterestPct,
		frequency.String(), installmentCount, loan.firstPaymentDate,
	))

	return loan, nil
}

// ReconstructLoan rebuilds a Loan aggregate from persistence.
func ReconstructLoan(
	id, clientNationalID string,
	principal decimal.Decimal,
	frequency valueobject.PaymentFrequency,
	installmentCount int,
	installmentAmount, totalInterestPct decimal.Decimal,
	disbursementDate, firstPaymentDate time.Time,
	status valueobject.LoanStatus,
	createdAt, updatedAt time.Time,
) Loan {
	return Loan{
		id:                id,
		clientNationalID:  clientNationalID,
		principal:         principal,
		frequency:         frequency,
		installmentCount:  installmentCount,
		installmentAmount: installmentAmount,
		totalInterestPct:  totalInterestPct,
		disbursementDate:  disbursementDate,
		firstPaymentDate:  firstPaymentDate,
		status:            status,
		createdAt:         createdAt,
		updatedAt:         updatedAt,
	}
}

// ---------------------------------------------------------------------------
// Schedule generation
// ---------------------------------------------------------------------------

// BuildSchedule produces the loan's full payment plan: installmentCount
// pending lines numbered 1..N, each due the loan's flat installment amount.
// The first line falls due on the first-payment date; each later line
// advances by one frequency period. All lines are persisted together with the
// loan in a single transaction.
func (l Loan) BuildSchedule() []Installment {
	schedule := make([]Installment, 0, l.installmentCount)
	dueDate := l.firstPaymentDate

	for number := 1; number <= l.installmentCount; number++ {
		schedule = append(schedule, newPendingInstallment(
			uuid.New().String(), l.id, number, l.installmentAmount, dueDate,
		))
		dueDate = l.frequency.Next(dueDate)
	}

	return schedule
}

// ---------------------------------------------------------------------------
// State transitions
// ---------------------------------------------------------------------------

// ChangeStatus edits the loan status and emits LoanStatusChanged. Setting the
// current status again is a no-op.
func (l Loan) ChangeStatus(status valueobject.LoanStatus, now time.Time) (Loan, error) {
	if status.IsZero() {
		return l, valueobject.ErrInvalidStatusTransition
	}
	if l.status.Equal(status) {
		return l, nil
	}

	next := l
	next.status = status
	next.updatedAt = now
	next.domainEvents = append(copyEvents(l.domainEvents), event.NewLoanStatusChanged(
		l.id, l.status.String(), status.String(),
	))
	return next, nil
}

// ---------------------------------------------------------------------------
// Accessors
// ---------------------------------------------------------------------------

func (l Loan) ID() string                               { return l.id }
func (l Loan) ClientNationalID() string                 { return l.clientNationalID }
func (l Loan) Principal() decimal.Decimal               { return l.principal }
func (l Loan) Frequency() valueobject.PaymentFrequency  { return l.frequency }
func (l Loan) InstallmentCount() int                    { return l.installmentCount }
func (l Loan) InstallmentAmount() decimal.Decimal       { return l.installmentAmount }
func (l Loan) TotalInterestPct() decimal.Decimal        { return l.totalInterestPct }
func (l Loan) DisbursementDate() time.Time              { return l.disbursementDate }
func (l Loan) FirstPaymentDate() time.Time              { return l.firstPaymentDate }
func (l Loan) Status() valueobject.LoanStatus           { return l.status }
func (l Loan) CreatedAt() time.Time                     { return l.createdAt }
func (l Loan) UpdatedAt() time.Time                     { return l.updatedAt }
func (l Loan) DomainEvents() []event.DomainEvent        { return l.domainEvents }

// IsActive reports whether the loan is in ACTIVE status.
func (l Loan) IsActive() bool {
	return l.status.Equal(valueobject.LoanStatusActive)
}

// TotalRepayable is the principal plus the total agreed interest:
// principal * (1 + totalInterestPct/100).
func (l Loan) TotalRepayable() decimal.Decimal {
	factor := decimal.NewFromInt(1).Add(l.totalInterestPct.Div(decimal.NewFromInt(100)))
	return l.principal.Mul(factor)
}

// ClearEvents returns a copy with an empty event list.
func (l Loan) ClearEvents() Loan {
	next := l
	next.domainEvents = nil
	return next
}
