package port

import (
	"context"
	"errors"

	"github.com/sigecred/sgcred/internal/domain/event"
	"github.com/sigecred/sgcred/internal/domain/model"
	"github.com/sigecred/sgcred/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// Sentinel errors
// ---------------------------------------------------------------------------

var (
	// ErrNotFound is returned when a referenced client, loan or installment
	// does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrConflict is returned on a uniqueness violation (duplicate client
	// national ID) or when a guarded delete is refused.
	ErrConflict = errors.New("conflict")

	// ErrStorageUnavailable is returned when the underlying store is not
	// initialised or reachable.
	ErrStorageUnavailable = errors.New("storage unavailable")
)

// ---------------------------------------------------------------------------
// Repository ports (driven/secondary adapters)
// ---------------------------------------------------------------------------

// ClientRepository persists and retrieves clients.
type ClientRepository interface {
	// Upsert inserts or updates a client keyed by its surrogate ID; the
	// national-ID uniqueness constraint is enforced by the store.
	Upsert(ctx context.Context, client model.Client) error
	FindByNationalID(ctx context.Context, nationalID string) (model.Client, error)
	FindByID(ctx context.Context, id string) (model.Client, error)
	List(ctx context.Context) ([]model.Client, error)
	// DeleteCascade removes the client, all its loans and all their
	// installments in one transaction. The caller pre-checks that no loan is
	// active.
	DeleteCascade(ctx context.Context, clientID string) error
}

// LoanRepository persists and retrieves loans.
type LoanRepository interface {
	// CreateWithSchedule writes the loan and its full installment schedule
	// atomically: either all rows land or none do.
	CreateWithSchedule(ctx context.Context, loan model.Loan, schedule []model.Installment) error
	FindByID(ctx context.Context, id string) (model.Loan, error)
	FindByClientNationalID(ctx context.Context, nationalID string) ([]model.Loan, error)
	List(ctx context.Context) ([]model.Loan, error)
	UpdateStatus(ctx context.Context, loanID string, status valueobject.LoanStatus) error
	// DeleteCascade removes the loan and all its installments in one
	// transaction. The caller pre-checks that no installment has a payment.
	DeleteCascade(ctx context.Context, loanID string) error
}

// InstallmentRepository persists and retrieves schedule lines.
type InstallmentRepository interface {
	FindByID(ctx context.Context, id string) (model.Installment, error)
	ListByLoan(ctx context.Context, loanID string) ([]model.Installment, error)
	Update(ctx context.Context, installment model.Installment) error
}

// ---------------------------------------------------------------------------
// Event publisher port
// ---------------------------------------------------------------------------

// EventPublisher publishes domain events to external consumers.
type EventPublisher interface {
	Publish(ctx context.Context, events ...event.DomainEvent) error
}
