// Package dto defines the request and response shapes exchanged between the
// presentation layer and the use cases.
package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/sigecred/sgcred/internal/domain/model"
	"github.com/sigecred/sgcred/internal/domain/service"
)

// ---------------------------------------------------------------------------
// Requests
// ---------------------------------------------------------------------------

// RegisterClientRequest carries the data of the client registration form.
// Registering an existing cédula merges the data into the stored record.
type RegisterClientRequest struct {
	NationalID     string `json:"national_id"`
	GivenNames     string `json:"given_names"`
	Surnames       string `json:"surnames"`
	Address        string `json:"address"`
	Neighborhood   string `json:"neighborhood"`
	City           string `json:"city"`
	PhonePrimary   string `json:"phone_primary"`
	PhoneSecondary string `json:"phone_secondary"`
	ReferenceName  string `json:"reference_name"`
	ReferencePhone string `json:"reference_phone"`
}

// UpdateClientRequest carries the editable contact fields of a client.
type UpdateClientRequest struct {
	NationalID     string `json:"-"`
	Address        string `json:"address"`
	Neighborhood   string `json:"neighborhood"`
	City           string `json:"city"`
	PhonePrimary   string `json:"phone_primary"`
	PhoneSecondary string `json:"phone_secondary"`
	ReferenceName  string `json:"reference_name"`
	ReferencePhone string `json:"reference_phone"`
}

// CreateLoanRequest carries the loan form. The form also carries the client's
// identity so that a loan for a new client registers the client on the fly.
// InstallmentAmount may be zero when PeriodicRatePct is given; the amount is
// then derived with the amortization formula.
type CreateLoanRequest struct {
	ClientNationalID  string          `json:"client_national_id"`
	GivenNames        string          `json:"given_names"`
	Surnames          string          `json:"surnames"`
	Principal         decimal.Decimal `json:"principal"`
	Frequency         string          `json:"frequency"`
	InstallmentCount  int             `json:"installment_count"`
	InstallmentAmount decimal.Decimal `json:"installment_amount"`
	PeriodicRatePct   decimal.Decimal `json:"periodic_rate_pct"`
	DisbursementDate  time.Time       `json:"disbursement_date"`
	FirstPaymentDate  time.Time       `json:"first_payment_date"`
}

// RecordPaymentRequest carries a payment (or payment correction) for one
// installment.
type RecordPaymentRequest struct {
	InstallmentID string          `json:"-"`
	PaymentDate   time.Time       `json:"payment_date"`
	AmountPaid    decimal.Decimal `json:"amount_paid"`
}

// UpdateLoanStatusRequest edits a loan's status.
type UpdateLoanStatusRequest struct {
	LoanID string `json:"-"`
	Status string `json:"status"`
}

// ListLoansRequest filters and sorts the loan list.
type ListLoansRequest struct {
	NationalID   string `json:"national_id"`
	NameContains string `json:"name_contains"`
	SortBy       string `json:"sort_by"`    // "created_at", "principal", "client_name"
	SortOrder    string `json:"sort_order"` // "asc", "desc"
}

// ---------------------------------------------------------------------------
// Responses
// ---------------------------------------------------------------------------

// ClientResponse is the outward representation of a client.
type ClientResponse struct {
	ID             string    `json:"id"`
	NationalID     string    `json:"national_id"`
	GivenNames     string    `json:"given_names"`
	Surnames       string    `json:"surnames"`
	DisplayName    string    `json:"display_name"`
	Address        string    `json:"address,omitempty"`
	Neighborhood   string    `json:"neighborhood,omitempty"`
	City           string    `json:"city,omitempty"`
	PhonePrimary   string    `json:"phone_primary,omitempty"`
	PhoneSecondary string    `json:"phone_secondary,omitempty"`
	ReferenceName  string    `json:"reference_name,omitempty"`
	ReferencePhone string    `json:"reference_phone,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// LoanResponse is the outward representation of a loan, enriched with the
// read-side aggregates.
type LoanResponse struct {
	ID                string          `json:"id"`
	ClientNationalID  string          `json:"client_national_id"`
	ClientName        string          `json:"client_name,omitempty"`
	Principal         decimal.Decimal `json:"principal"`
	Frequency         string          `json:"frequency"`
	InstallmentCount  int             `json:"installment_count"`
	InstallmentAmount decimal.Decimal `json:"installment_amount"`
	TotalInterestPct  decimal.Decimal `json:"total_interest_pct"`
	DisbursementDate  time.Time       `json:"disbursement_date"`
	FirstPaymentDate  time.Time       `json:"first_payment_date"`
	Status            string          `json:"status"`
	Balance           decimal.Decimal `json:"balance"`
	TotalDaysLate     int             `json:"total_days_late"`
	CreatedAt         time.Time       `json:"created_at"`
}

// InstallmentResponse is one schedule line with its display classification.
type InstallmentResponse struct {
	ID          string           `json:"id"`
	LoanID      string           `json:"loan_id"`
	Number      int              `json:"number"`
	DueDate     time.Time        `json:"due_date"`
	DueAmount   decimal.Decimal  `json:"due_amount"`
	Status      string           `json:"status"`
	PaymentDate *time.Time       `json:"payment_date,omitempty"`
	AmountPaid  *decimal.Decimal `json:"amount_paid,omitempty"`
	Balance     decimal.Decimal  `json:"balance"`
	Late        bool             `json:"late"`
	Partial     bool             `json:"partial"`
	DaysLate    int              `json:"days_late"`
}

// PaymentPlanResponse is the full payment plan for one loan.
type PaymentPlanResponse struct {
	Loan         LoanResponse          `json:"loan"`
	Client       ClientResponse        `json:"client"`
	Installments []InstallmentResponse `json:"installments"`
	TotalPaid    decimal.Decimal       `json:"total_paid"`
}

// ---------------------------------------------------------------------------
// Mapping helpers
// ---------------------------------------------------------------------------

// FromClient maps a client aggregate to its response shape.
func FromClient(c model.Client) ClientResponse {
	contact := c.Contact()
	return ClientResponse{
		ID:             c.ID(),
		NationalID:     c.NationalID(),
		GivenNames:     c.GivenNames(),
		Surnames:       c.Surnames(),
		DisplayName:    c.DisplayName(),
		Address:        contact.Address,
		Neighborhood:   contact.Neighborhood,
		City:           contact.City,
		PhonePrimary:   contact.PhonePrimary,
		PhoneSecondary: contact.PhoneSecondary,
		ReferenceName:  contact.ReferenceName,
		ReferencePhone: contact.ReferencePhone,
		CreatedAt:      c.CreatedAt(),
		UpdatedAt:      c.UpdatedAt(),
	}
}

// FromLoan maps a loan aggregate plus its read-side summary to the response
// shape.
func FromLoan(l model.Loan, clientName string, summary service.LoanSummary) LoanResponse {
	return LoanResponse{
		ID:                l.ID(),
		ClientNationalID:  l.ClientNationalID(),
		ClientName:        clientName,
		Principal:         l.Principal(),
		Frequency:         l.Frequency().String(),
		InstallmentCount:  l.InstallmentCount(),
		InstallmentAmount: l.InstallmentAmount(),
		TotalInterestPct:  l.TotalInterestPct(),
		DisbursementDate:  l.DisbursementDate(),
		FirstPaymentDate:  l.FirstPaymentDate(),
		Status:            l.Status().String(),
		Balance:           summary.Balance,
		TotalDaysLate:     summary.TotalDaysLate,
		CreatedAt:         l.CreatedAt(),
	}
}

// FromInstallmentView maps a classified installment to the response shape.
func FromInstallmentView(v service.InstallmentView) InstallmentResponse {
	inst := v.Installment
	return InstallmentResponse{
		ID:          inst.ID(),
		LoanID:      inst.LoanID(),
		Number:      inst.Number(),
		DueDate:     inst.DueDate(),
		DueAmount:   inst.DueAmount(),
		Status:      inst.Status().String(),
		PaymentDate: inst.PaymentDate(),
		AmountPaid:  inst.AmountPaid(),
		Balance:     inst.Balance(),
		Late:        v.Late,
		Partial:     v.Partial,
		DaysLate:    v.DaysLate,
	}
}
