package rest

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sigecred/sgcred/internal/application/dto"
	"github.com/sigecred/sgcred/internal/application/usecase"
	"github.com/sigecred/sgcred/internal/presentation/pdf"
)

const dateLayout = "2006-01-02"

// LoanHandler serves the loan resource, its payment plan and the payment
// endpoint on individual installments.
type LoanHandler struct {
	create       *usecase.CreateLoanUseCase
	get          *usecase.GetLoanUseCase
	list         *usecase.ListLoansUseCase
	updateStatus *usecase.UpdateLoanStatusUseCase
	remove       *usecase.DeleteLoanUseCase
	plan         *usecase.GetPaymentPlanUseCase
	payment      *usecase.RecordPaymentUseCase
	logger       *slog.Logger
}

// NewLoanHandler wires the loan use cases into an HTTP handler.
func NewLoanHandler(
	create *usecase.CreateLoanUseCase,
	get *usecase.GetLoanUseCase,
	list *usecase.ListLoansUseCase,
	updateStatus *usecase.UpdateLoanStatusUseCase,
	remove *usecase.DeleteLoanUseCase,
	plan *usecase.GetPaymentPlanUseCase,
	payment *usecase.RecordPaymentUseCase,
	logger *slog.Logger,
) *LoanHandler {
	return &LoanHandler{
		create:       create,
		get:          get,
		list:         list,
		updateStatus: updateStatus,
		remove:       remove,
		plan:         plan,
		payment:      payment,
		logger:       logger,
	}
}

// RegisterRoutes attaches loan and installment routes to the given mux.
func (h *LoanHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/v1/loans", h.createLoan)
	mux.HandleFunc("GET /api/v1/loans", h.listLoans)
	mux.HandleFunc("GET /api/v1/loans/{id}", h.getLoan)
	mux.HandleFunc("PUT /api/v1/loans/{id}/status", h.updateLoanStatus)
	mux.HandleFunc("DELETE /api/v1/loans/{id}", h.deleteLoan)
	mux.HandleFunc("GET /api/v1/loans/{id}/plan", h.getPlan)
	mux.HandleFunc("GET /api/v1/loans/{id}/plan.pdf", h.getPlanPDF)
	mux.HandleFunc("GET /api/v1/loans/{id}/receipt.pdf", h.getReceiptPDF)
	mux.HandleFunc("POST /api/v1/installments/{id}/payment", h.recordPayment)
}

// createLoanPayload is the wire shape of the loan form. Dates arrive as plain
// calendar dates without a time component.
type createLoanPayload struct {
	ClientNationalID  string          `json:"client_national_id"`
	GivenNames        string          `json:"given_names"`
	Surnames          string          `json:"surnames"`
	Principal         decimal.Decimal `json:"principal"`
	Frequency         string          `json:"frequency"`
	InstallmentCount  int             `json:"installment_count"`
	InstallmentAmount decimal.Decimal `json:"installment_amount"`
	PeriodicRatePct   decimal.Decimal `json:"periodic_rate_pct"`
	DisbursementDate  string          `json:"disbursement_date"`
	FirstPaymentDate  string          `json:"first_payment_date"`
}

func (h *LoanHandler) createLoan(w http.ResponseWriter, r *http.Request) {
	var payload createLoanPayload
	if err := decodeBody(r, &payload); err != nil {
		writeError(w, err)
		return
	}

	disbursement, err := parseDate(payload.DisbursementDate)
	if err != nil {
		writeError(w, fmt.Errorf("disbursement_date: %w", err))
		return
	}
	firstPayment, err := parseDate(payload.FirstPaymentDate)
	if err != nil {
		writeError(w, fmt.Errorf("first_payment_date: %w", err))
		return
	}

	resp, err := h.create.Execute(r.Context(), dto.CreateLoanRequest{
		ClientNationalID:  payload.ClientNationalID,
		GivenNames:        payload.GivenNames,
		Surnames:          payload.Surnames,
		Principal:         payload.Principal,
		Frequency:         payload.Frequency,
		InstallmentCount:  payload.InstallmentCount,
		InstallmentAmount: payload.InstallmentAmount,
		PeriodicRatePct:   payload.PeriodicRatePct,
		DisbursementDate:  disbursement,
		FirstPaymentDate:  firstPayment,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (h *LoanHandler) listLoans(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	resp, err := h.list.Execute(r.Context(), dto.ListLoansRequest{
		NationalID:   q.Get("national_id"),
		NameContains: q.Get("name"),
		SortBy:       q.Get("sort_by"),
		SortOrder:    q.Get("sort_order"),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *LoanHandler) getLoan(w http.ResponseWriter, r *http.Request) {
	resp, err := h.get.Execute(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *LoanHandler) updateLoanStatus(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateLoanStatusRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	loanID := r.PathValue("id")

	if err := h.updateStatus.Execute(r.Context(), loanID, req); err != nil {
		writeError(w, err)
		return
	}

	resp, err := h.get.Execute(r.Context(), loanID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *LoanHandler) deleteLoan(w http.ResponseWriter, r *http.Request) {
	if err := h.remove.Execute(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *LoanHandler) getPlan(w http.ResponseWriter, r *http.Request) {
	resp, err := h.plan.Execute(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *LoanHandler) getPlanPDF(w http.ResponseWriter, r *http.Request) {
	resp, err := h.plan.Execute(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	doc, err := pdf.PlanDocument(resp)
	if err != nil {
		writeError(w, err)
		return
	}
	writePDF(w, "plan_"+resp.Loan.ID+".pdf", doc)
}

func (h *LoanHandler) getReceiptPDF(w http.ResponseWriter, r *http.Request) {
	resp, err := h.plan.PaidLines(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	doc, err := pdf.ReceiptDocument(resp)
	if err != nil {
		writeError(w, err)
		return
	}
	writePDF(w, "recibo_"+resp.Loan.ID+".pdf", doc)
}

// recordPaymentPayload is the wire shape of a payment entry.
type recordPaymentPayload struct {
	PaymentDate string          `json:"payment_date"`
	AmountPaid  decimal.Decimal `json:"amount_paid"`
}

func (h *LoanHandler) recordPayment(w http.ResponseWriter, r *http.Request) {
	var payload recordPaymentPayload
	if err := decodeBody(r, &payload); err != nil {
		writeError(w, err)
		return
	}

	paymentDate, err := parseDate(payload.PaymentDate)
	if err != nil {
		writeError(w, fmt.Errorf("payment_date: %w", err))
		return
	}

	resp, err := h.payment.Execute(r.Context(), dto.RecordPaymentRequest{
		InstallmentID: r.PathValue("id"),
		PaymentDate:   paymentDate,
		AmountPaid:    payload.AmountPaid,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func parseDate(s string) (time.Time, error) {
	d, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("expected YYYY-MM-DD date, got %q", s)
	}
	return d, nil
}

func writePDF(w http.ResponseWriter, filename string, doc []byte) {
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(doc) //nolint:errcheck
}
