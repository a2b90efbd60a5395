package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/sigecred/sgcred/internal/application/dto"
	"github.com/sigecred/sgcred/internal/domain/port"
	"github.com/sigecred/sgcred/internal/domain/valueobject"
)

// UpdateLoanStatusUseCase transitions a loan between ACTIVE and CLOSED.
type UpdateLoanStatusUseCase struct {
	loanRepo  port.LoanRepository
	publisher port.EventPublisher
}

// NewUpdateLoanStatusUseCase wires dependencies.
func NewUpdateLoanStatusUseCase(loanRepo port.LoanRepository, publisher port.EventPublisher) *UpdateLoanStatusUseCase {
	return &UpdateLoanStatusUseCase{loanRepo: loanRepo, publisher: publisher}
}

// Execute applies the requested status to the loan.
func (uc *UpdateLoanStatusUseCase) Execute(ctx context.Context, loanID string, req dto.UpdateLoanStatusRequest) error {
	// 1. Validate the requested status.
	status, err := valueobject.NewLoanStatus(req.Status)
	if err != nil {
		return fmt.Errorf("parse status: %w", err)
	}

	// 2. Load the aggregate.
	loan, err := uc.loanRepo.FindByID(ctx, loanID)
	if err != nil {
		return fmt.Errorf("find loan: %w", err)
	}

	// 3. Apply the transition.
	updated, err := loan.ChangeStatus(status, time.Now())
	if err != nil {
		return fmt.Errorf("change status: %w", err)
	}

	// 4. Persist.
	if err := uc.loanRepo.UpdateStatus(ctx, updated.ID(), updated.Status()); err != nil {
		return fmt.Errorf("update loan: %w", err)
	}

	// 5. Publish domain events.
	if err := uc.publisher.Publish(ctx, updated.DomainEvents()...); err != nil {
		return fmt.Errorf("publish events: %w", err)
	}
	return nil
}
