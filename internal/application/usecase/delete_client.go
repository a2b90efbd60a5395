package usecase

import (
	"context"
	"fmt"

	"github.com/sigecred/sgcred/internal/domain/event"
	"github.com/sigecred/sgcred/internal/domain/port"
)

// DeleteClientUseCase removes a client together with all of their loans and
// installments. Refused while any loan is still active.
type DeleteClientUseCase struct {
	clientRepo port.ClientRepository
	loanRepo   port.LoanRepository
	publisher  port.EventPublisher
}

// NewDeleteClientUseCase wires dependencies.
func NewDeleteClientUseCase(
	clientRepo port.ClientRepository,
	loanRepo port.LoanRepository,
	publisher port.EventPublisher,
) *DeleteClientUseCase {
	return &DeleteClientUseCase{clientRepo: clientRepo, loanRepo: loanRepo, publisher: publisher}
}

// Execute cascade-deletes the client identified by cédula.
func (uc *DeleteClientUseCase) Execute(ctx context.Context, nationalID string) error {
	// 1. Retrieve the client.
	client, err := uc.clientRepo.FindByNationalID(ctx, nationalID)
	if err != nil {
		return fmt.Errorf("find client: %w", err)
	}

	// 2. Refuse while any loan is active.
	loans, err := uc.loanRepo.FindByClientNationalID(ctx, nationalID)
	if err != nil {
		return fmt.Errorf("list loans: %w", err)
	}
	for _, loan := range loans {
		if loan.IsActive() {
			return fmt.Errorf("client has active loans: %w", port.ErrConflict)
		}
	}

	// 3. Remove client, loans and installments in one transaction.
	if err := uc.clientRepo.DeleteCascade(ctx, client.ID()); err != nil {
		return fmt.Errorf("delete client: %w", err)
	}

	// 4. Publish.
	if err := uc.publisher.Publish(ctx, event.NewClientDeleted(client.ID(), nationalID)); err != nil {
		return fmt.Errorf("publish events: %w", err)
	}

	return nil
}
