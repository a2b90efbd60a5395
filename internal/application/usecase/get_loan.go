package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/sigecred/sgcred/internal/application/dto"
	"github.com/sigecred/sgcred/internal/domain/port"
	"github.com/sigecred/sgcred/internal/domain/service"
)

// GetLoanUseCase retrieves one loan enriched with its read-side aggregates.
type GetLoanUseCase struct {
	clientRepo      port.ClientRepository
	loanRepo        port.LoanRepository
	installmentRepo port.InstallmentRepository
	projector       *service.ScheduleProjector
}

// NewGetLoanUseCase wires dependencies.
func NewGetLoanUseCase(
	clientRepo port.ClientRepository,
	loanRepo port.LoanRepository,
	installmentRepo port.InstallmentRepository,
	projector *service.ScheduleProjector,
) *GetLoanUseCase {
	return &GetLoanUseCase{
		clientRepo:      clientRepo,
		loanRepo:        loanRepo,
		installmentRepo: installmentRepo,
		projector:       projector,
	}
}

// Execute retrieves the loan by ID.
func (uc *GetLoanUseCase) Execute(ctx context.Context, loanID string) (dto.LoanResponse, error) {
	loan, err := uc.loanRepo.FindByID(ctx, loanID)
	if err != nil {
		return dto.LoanResponse{}, fmt.Errorf("find loan: %w", err)
	}

	clientName := ""
	client, err := uc.clientRepo.FindByNationalID(ctx, loan.ClientNationalID())
	if err == nil {
		clientName = client.DisplayName()
	} else if !errors.Is(err, port.ErrNotFound) {
		return dto.LoanResponse{}, fmt.Errorf("find client: %w", err)
	}

	installments, err := uc.installmentRepo.ListByLoan(ctx, loanID)
	if err != nil {
		return dto.LoanResponse{}, fmt.Errorf("list installments: %w", err)
	}

	summary := uc.projector.Summarize(loan, installments)
	return dto.FromLoan(loan, clientName, summary), nil
}
