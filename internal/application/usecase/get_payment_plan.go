package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/sigecred/sgcred/internal/application/dto"
	"github.com/sigecred/sgcred/internal/domain/port"
	"github.com/sigecred/sgcred/internal/domain/service"
)

// GetPaymentPlanUseCase assembles the full payment plan view for one loan:
// loan, client, ordered installments with their late/partial classification
// and the loan-level aggregates.
type GetPaymentPlanUseCase struct {
	clientRepo      port.ClientRepository
	loanRepo        port.LoanRepository
	installmentRepo port.InstallmentRepository
	projector       *service.ScheduleProjector
}

// NewGetPaymentPlanUseCase wires dependencies.
func NewGetPaymentPlanUseCase(
	clientRepo port.ClientRepository,
	loanRepo port.LoanRepository,
	installmentRepo port.InstallmentRepository,
	projector *service.ScheduleProjector,
) *GetPaymentPlanUseCase {
	return &GetPaymentPlanUseCase{
		clientRepo:      clientRepo,
		loanRepo:        loanRepo,
		installmentRepo: installmentRepo,
		projector:       projector,
	}
}

// Execute builds the plan for the given loan ID.
func (uc *GetPaymentPlanUseCase) Execute(ctx context.Context, loanID string) (dto.PaymentPlanResponse, error) {
	// 1. Retrieve the loan.
	loan, err := uc.loanRepo.FindByID(ctx, loanID)
	if err != nil {
		return dto.PaymentPlanResponse{}, fmt.Errorf("find loan: %w", err)
	}

	// 2. The client may have been edited independently; a missing client is
	//    tolerated on the display side.
	clientName := ""
	var clientResp dto.ClientResponse
	client, err := uc.clientRepo.FindByNationalID(ctx, loan.ClientNationalID())
	switch {
	case err == nil:
		clientName = client.DisplayName()
		clientResp = dto.FromClient(client)
	case errors.Is(err, port.ErrNotFound):
		// keep zero client
	default:
		return dto.PaymentPlanResponse{}, fmt.Errorf("find client: %w", err)
	}

	// 3. Load the schedule, ordered by installment number.
	installments, err := uc.installmentRepo.ListByLoan(ctx, loanID)
	if err != nil {
		return dto.PaymentPlanResponse{}, fmt.Errorf("list installments: %w", err)
	}

	// 4. Project.
	summary := uc.projector.Summarize(loan, installments)
	resp := dto.PaymentPlanResponse{
		Loan:      dto.FromLoan(loan, clientName, summary),
		Client:    clientResp,
		TotalPaid: summary.TotalPaid,
	}
	for _, view := range uc.projector.ClassifyAll(installments) {
		resp.Installments = append(resp.Installments, dto.FromInstallmentView(view))
	}
	return resp, nil
}

// PaidLines returns only the paid installments of the plan, classified.
// These are the rows a payment receipt is made of.
func (uc *GetPaymentPlanUseCase) PaidLines(ctx context.Context, loanID string) (dto.PaymentPlanResponse, error) {
	plan, err := uc.Execute(ctx, loanID)
	if err != nil {
		return dto.PaymentPlanResponse{}, err
	}

	paid := make([]dto.InstallmentResponse, 0, len(plan.Installments))
	for _, line := range plan.Installments {
		if line.Status == "PAID" {
			paid = append(paid, line)
		}
	}
	plan.Installments = paid
	return plan, nil
}
