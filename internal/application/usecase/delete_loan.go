package usecase

import (
	"context"
	"fmt"

	"github.com/sigecred/sgcred/internal/domain/event"
	"github.com/sigecred/sgcred/internal/domain/port"
	"github.com/sigecred/sgcred/internal/domain/service"
)

// DeleteLoanUseCase removes a loan and its schedule, provided no
// installment has been paid yet.
type DeleteLoanUseCase struct {
	loanRepo        port.LoanRepository
	installmentRepo port.InstallmentRepository
	projector       *service.ScheduleProjector
	publisher       port.EventPublisher
}

// NewDeleteLoanUseCase wires dependencies.
func NewDeleteLoanUseCase(
	loanRepo port.LoanRepository,
	installmentRepo port.InstallmentRepository,
	projector *service.ScheduleProjector,
	publisher port.EventPublisher,
) *DeleteLoanUseCase {
	return &DeleteLoanUseCase{
		loanRepo:        loanRepo,
		installmentRepo: installmentRepo,
		projector:       projector,
		publisher:       publisher,
	}
}

// Execute deletes the loan together with its installments.
func (uc *DeleteLoanUseCase) Execute(ctx context.Context, loanID string) error {
	// 1. Load the aggregate.
	loan, err := uc.loanRepo.FindByID(ctx, loanID)
	if err != nil {
		return fmt.Errorf("find loan: %w", err)
	}

	// 2. A loan with recorded payments is part of the books and stays.
	installments, err := uc.installmentRepo.ListByLoan(ctx, loanID)
	if err != nil {
		return fmt.Errorf("list installments: %w", err)
	}
	if uc.projector.HasRecordedPayments(installments) {
		return fmt.Errorf("loan has recorded payments: %w", port.ErrConflict)
	}

	// 3. Remove the loan and its schedule in one shot.
	if err := uc.loanRepo.DeleteCascade(ctx, loanID); err != nil {
		return fmt.Errorf("delete loan: %w", err)
	}

	// 4. Publish the deletion event.
	if err := uc.publisher.Publish(ctx, event.NewLoanDeleted(loan.ID(), loan.ClientNationalID())); err != nil {
		return fmt.Errorf("publish events: %w", err)
	}
	return nil
}
