package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sigecred/sgcred/internal/application/dto"
	"github.com/sigecred/sgcred/internal/domain/model"
	"github.com/sigecred/sgcred/internal/domain/port"
	"github.com/sigecred/sgcred/internal/domain/service"
	"github.com/sigecred/sgcred/internal/domain/valueobject"
)

// CreateLoanUseCase registers a loan and its full payment plan in one logical
// operation. The loan form carries the client's identity, so an unknown
// cédula registers the client on the fly and a known one merges the names.
type CreateLoanUseCase struct {
	clientRepo port.ClientRepository
	loanRepo   port.LoanRepository
	projector  *service.ScheduleProjector
	publisher  port.EventPublisher
}

// NewCreateLoanUseCase wires dependencies.
func NewCreateLoanUseCase(
	clientRepo port.ClientRepository,
	loanRepo port.LoanRepository,
	projector *service.ScheduleProjector,
	publisher port.EventPublisher,
) *CreateLoanUseCase {
	return &CreateLoanUseCase{
		clientRepo: clientRepo,
		loanRepo:   loanRepo,
		projector:  projector,
		publisher:  publisher,
	}
}

// Execute validates the loan, settles the installment amount, persists the
// loan with its schedule atomically and returns the resulting payment plan.
func (uc *CreateLoanUseCase) Execute(ctx context.Context, req dto.CreateLoanRequest) (dto.PaymentPlanResponse, error) {
	now := time.Now().UTC()

	// 1. Parse the frequency.
	frequency, err := valueobject.NewPaymentFrequency(req.Frequency)
	if err != nil {
		return dto.PaymentPlanResponse{}, fmt.Errorf("parse frequency: %w", err)
	}

	// 2. Settle the installment amount: entered by the operator, or derived
	//    from the periodic rate with the annuity formula.
	amount := req.InstallmentAmount
	if amount.IsZero() {
		amount = model.ComputeInstallment(req.Principal, req.PeriodicRatePct, req.InstallmentCount)
	}

	// 3. Upsert the client carried on the form.
	client, err := uc.upsertClient(ctx, req, now)
	if err != nil {
		return dto.PaymentPlanResponse{}, err
	}

	// 4. Create the loan aggregate (recomputes total interest).
	loan, err := model.NewLoan(
		client.NationalID(),
		req.Principal,
		frequency,
		req.InstallmentCount,
		amount,
		req.DisbursementDate,
		req.FirstPaymentDate,
		now,
	)
	if err != nil {
		return dto.PaymentPlanResponse{}, fmt.Errorf("new loan: %w", err)
	}

	// 5. Generate the schedule and persist everything atomically.
	schedule := loan.BuildSchedule()
	if err := uc.loanRepo.CreateWithSchedule(ctx, loan, schedule); err != nil {
		return dto.PaymentPlanResponse{}, fmt.Errorf("save loan: %w", err)
	}

	// 6. Publish events.
	evts := append(client.DomainEvents(), loan.DomainEvents()...)
	if err := uc.publisher.Publish(ctx, evts...); err != nil {
		return dto.PaymentPlanResponse{}, fmt.Errorf("publish events: %w", err)
	}

	// 7. Assemble the plan response.
	summary := uc.projector.Summarize(loan, schedule)
	resp := dto.PaymentPlanResponse{
		Loan:      dto.FromLoan(loan, client.DisplayName(), summary),
		Client:    dto.FromClient(client),
		TotalPaid: summary.TotalPaid,
	}
	for _, view := range uc.projector.ClassifyAll(schedule) {
		resp.Installments = append(resp.Installments, dto.FromInstallmentView(view))
	}
	return resp, nil
}

func (uc *CreateLoanUseCase) upsertClient(ctx context.Context, req dto.CreateLoanRequest, now time.Time) (model.Client, error) {
	existing, err := uc.clientRepo.FindByNationalID(ctx, req.ClientNationalID)
	var client model.Client
	switch {
	case err == nil:
		client = existing.Merge(req.GivenNames, req.Surnames, model.ClientContact{}, now)
	case errors.Is(err, port.ErrNotFound):
		client, err = model.NewClient(req.ClientNationalID, req.GivenNames, req.Surnames, model.ClientContact{}, now)
		if err != nil {
			return model.Client{}, fmt.Errorf("new client: %w", err)
		}
	default:
		return model.Client{}, fmt.Errorf("find client: %w", err)
	}

	if err := uc.clientRepo.Upsert(ctx, client); err != nil {
		return model.Client{}, fmt.Errorf("save client: %w", err)
	}
	return client, nil
}
