package event

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/sigecred/sgcred/pkg/events"
)

// DomainEvent is an alias for the shared pkg/events.DomainEvent interface.
type DomainEvent = events.DomainEvent

// ---------------------------------------------------------------------------
// Client events
// ---------------------------------------------------------------------------

// ClientRegistered is raised when a client record is created or merged.
type ClientRegistered struct {
	events.BaseEvent
	NationalID  string `json:"national_id"`
	DisplayName string `json:"display_name"`
}

func NewClientRegistered(clientID, nationalID, displayName string) ClientRegistered {
	return ClientRegistered{
		BaseEvent:   events.NewBaseEvent("sgcred.client.registered", clientID, "Client"),
		NationalID:  nationalID,
		DisplayName: displayName,
	}
}

// ClientDeleted is raised when a client and its loans are cascade-deleted.
type ClientDeleted struct {
	events.BaseEvent
	NationalID string `json:"national_id"`
}

func NewClientDeleted(clientID, nationalID string) ClientDeleted {
	return ClientDeleted{
		BaseEvent:  events.NewBaseEvent("sgcred.client.deleted", clientID, "Client"),
		NationalID: nationalID,
	}
}

// ---------------------------------------------------------------------------
// Loan events
// ---------------------------------------------------------------------------

// LoanCreated is raised when a loan and its payment plan are persisted.
type LoanCreated struct {
	events.BaseEvent
	ClientNationalID  string          `json:"client_national_id"`
	Principal         decimal.Decimal `json:"principal"`
	Frequency         string          `json:"frequency"`
	InstallmentCount  int             `json:"installment_count"`
	InstallmentAmount decimal.Decimal `json:"installment_amount"`
	TotalInterestPct  decimal.Decimal `json:"total_interest_pct"`
	FirstPaymentDate  time.Time       `json:"first_payment_date"`
}

func NewLoanCreated(
	loanID, clientNationalID string,
	principal, installmentAmount, totalInterestPct decimal.Decimal,
	frequency string, installmentCount int, firstPaymentDate time.Time,
) LoanCreated {
	return LoanCreated{
		BaseEvent:         events.NewBaseEvent("sgcred.loan.created", loanID, "Loan"),
		ClientNationalID:  clientNationalID,
		Principal:         principal,
		Frequency:         frequency,
		InstallmentCount:  installmentCount,
		InstallmentAmount: installmentAmount,
		TotalInterestPct:  totalInterestPct,
		FirstPaymentDate:  firstPaymentDate,
	}
}

// LoanStatusChanged is raised when the loan status is edited.
type LoanStatusChanged struct {
	events.BaseEvent
	OldStatus string `json:"old_status"`
	NewStatus string `json:"new_status"`
}

func NewLoanStatusChanged(loanID, oldStatus, newStatus string) LoanStatusChanged {
	return LoanStatusChanged{
		BaseEvent: events.NewBaseEvent("sgcred.loan.status_changed", loanID, "Loan"),
		OldStatus: oldStatus,
		NewStatus: newStatus,
	}
}

// LoanDeleted is raised when an unpaid loan and its installments are removed.
type LoanDeleted struct {
	events.BaseEvent
	ClientNationalID string `json:"client_national_id"`
}

func NewLoanDeleted(loanID, clientNationalID string) LoanDeleted {
	return LoanDeleted{
		BaseEvent:        events.NewBaseEvent("sgcred.loan.deleted", loanID, "Loan"),
		ClientNationalID: clientNationalID,
	}
}

// ---------------------------------------------------------------------------
// Installment events
// ---------------------------------------------------------------------------

// PaymentRecorded is raised when a payment is recorded (or corrected) against
// an installment.
type PaymentRecorded struct {
	events.BaseEvent
	LoanID      string          `json:"loan_id"`
	Number      int             `json:"number"`
	PaymentDate time.Time       `json:"payment_date"`
	AmountPaid  decimal.Decimal `json:"amount_paid"`
	Balance     decimal.Decimal `json:"balance"`
}

func NewPaymentRecorded(
	installmentID, loanID string, number int,
	paymentDate time.Time, amountPaid, balance decimal.Decimal,
) PaymentRecorded {
	return PaymentRecorded{
		BaseEvent:   events.NewBaseEvent("sgcred.installment.payment_recorded", installmentID, "Installment"),
		LoanID:      loanID,
		Number:      number,
		PaymentDate: paymentDate,
		AmountPaid:  amountPaid,
		Balance:     balance,
	}
}
