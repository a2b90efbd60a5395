package usecase_test

import (
	"context"
	"fmt"

	"github.com/sigecred/sgcred/internal/domain/event"
	"github.com/sigecred/sgcred/internal/domain/model"
	"github.com/sigecred/sgcred/internal/domain/port"
	"github.com/sigecred/sgcred/internal/domain/valueobject"
)

// --- Mock implementations ---

type mockClientRepository struct {
	upsertFunc           func(ctx context.Context, client model.Client) error
	findByNationalIDFunc func(ctx context.Context, nationalID string) (model.Client, error)
	listFunc             func(ctx context.Context) ([]model.Client, error)
	deleteCascadeFunc    func(ctx context.Context, clientID string) error
	upserted             []model.Client
	deletedIDs           []string
}

func (m *mockClientRepository) Upsert(ctx context.Context, client model.Client) error {
	if m.upsertFunc != nil {
		return m.upsertFunc(ctx, client)
	}
	m.upserted = append(m.upserted, client)
	return nil
}

func (m *mockClientRepository) FindByNationalID(ctx context.Context, nationalID string) (model.Client, error) {
	if m.findByNationalIDFunc != nil {
		return m.findByNationalIDFunc(ctx, nationalID)
	}
	return model.Client{}, fmt.Errorf("client %s: %w", nationalID, port.ErrNotFound)
}

func (m *mockClientRepository) FindByID(_ context.Context, id string) (model.Client, error) {
	return model.Client{}, fmt.Errorf("client %s: %w", id, port.ErrNotFound)
}

func (m *mockClientRepository) List(ctx context.Context) ([]model.Client, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx)
	}
	return nil, nil
}

func (m *mockClientRepository) DeleteCascade(ctx context.Context, clientID string) error {
	if m.deleteCascadeFunc != nil {
		return m.deleteCascadeFunc(ctx, clientID)
	}
	m.deletedIDs = append(m.deletedIDs, clientID)
	return nil
}

type mockLoanRepository struct {
	createWithScheduleFunc     func(ctx context.Context, loan model.Loan, schedule []model.Installment) error
	findByIDFunc               func(ctx context.Context, id string) (model.Loan, error)
	findByClientNationalIDFunc func(ctx context.Context, nationalID string) ([]model.Loan, error)
	listFunc                   func(ctx context.Context) ([]model.Loan, error)
	updateStatusFunc           func(ctx context.Context, loanID string, status valueobject.LoanStatus) error
	deleteCascadeFunc          func(ctx context.Context, loanID string) error
	createdLoans               []model.Loan
	createdSchedules           [][]model.Installment
	updatedStatuses            []valueobject.LoanStatus
	deletedIDs                 []string
}

func (m *mockLoanRepository) CreateWithSchedule(ctx context.Context, loan model.Loan, schedule []model.Installment) error {
	if m.createWithScheduleFunc != nil {
		return m.createWithScheduleFunc(ctx, loan, schedule)
	}
	m.createdLoans = append(m.createdLoans, loan)
	m.createdSchedules = append(m.createdSchedules, schedule)
	return nil
}

func (m *mockLoanRepository) FindByID(ctx context.Context, id string) (model.Loan, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return model.Loan{}, fmt.Errorf("loan %s: %w", id, port.ErrNotFound)
}

func (m *mockLoanRepository) FindByClientNationalID(ctx context.Context, nationalID string) ([]model.Loan, error) {
	if m.findByClientNationalIDFunc != nil {
		return m.findByClientNationalIDFunc(ctx, nationalID)
	}
	return nil, nil
}

func (m *mockLoanRepository) List(ctx context.Context) ([]model.Loan, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx)
	}
	return nil, nil
}

func (m *mockLoanRepository) UpdateStatus(ctx context.Context, loanID string, status valueobject.LoanStatus) error {
	if m.updateStatusFunc != nil {
		return m.updateStatusFunc(ctx, loanID, status)
	}
	m.updatedStatuses = append(m.updatedStatuses, status)
	return nil
}

func (m *mockLoanRepository) DeleteCascade(ctx context.Context, loanID string) error {
	if m.deleteCascadeFunc != nil {
		return m.deleteCascadeFunc(ctx, loanID)
	}
	m.deletedIDs = append(m.deletedIDs, loanID)
	return nil
}

type mockInstallmentRepository struct {
	findByIDFunc   func(ctx context.Context, id string) (model.Installment, error)
	listByLoanFunc func(ctx context.Context, loanID string) ([]model.Installment, error)
	updateFunc     func(ctx context.Context, installment model.Installment) error
	updated        []model.Installment
}

func (m *mockInstallmentRepository) FindByID(ctx context.Context, id string) (model.Installment, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return model.Installment{}, fmt.Errorf("installment %s: %w", id, port.ErrNotFound)
}

func (m *mockInstallmentRepository) ListByLoan(ctx context.Context, loanID string) ([]model.Installment, error) {
	if m.listByLoanFunc != nil {
		return m.listByLoanFunc(ctx, loanID)
	}
	return nil, nil
}

func (m *mockInstallmentRepository) Update(ctx context.Context, installment model.Installment) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, installment)
	}
	m.updated = append(m.updated, installment)
	return nil
}

type mockEventPublisher struct {
	publishFunc     func(ctx context.Context, events ...event.DomainEvent) error
	publishedEvents []event.DomainEvent
}

func (m *mockEventPublisher) Publish(ctx context.Context, evts ...event.DomainEvent) error {
	if m.publishFunc != nil {
		return m.publishFunc(ctx, evts...)
	}
	m.publishedEvents = append(m.publishedEvents, evts...)
	return nil
}
