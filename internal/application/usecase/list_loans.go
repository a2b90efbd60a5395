package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/sigecred/sgcred/internal/application/dto"
	"github.com/sigecred/sgcred/internal/domain/model"
	"github.com/sigecred/sgcred/internal/domain/port"
	"github.com/sigecred/sgcred/internal/domain/service"
)

// ListLoansUseCase lists loans enriched with the client name and the
// read-side aggregates (balance, total days late), optionally filtered by
// cédula or name fragment and sorted.
type ListLoansUseCase struct {
	clientRepo      port.ClientRepository
	loanRepo        port.LoanRepository
	installmentRepo port.InstallmentRepository
	projector       *service.ScheduleProjector
}

// NewListLoansUseCase wires dependencies.
func NewListLoansUseCase(
	clientRepo port.ClientRepository,
	loanRepo port.LoanRepository,
	installmentRepo port.InstallmentRepository,
	projector *service.ScheduleProjector,
) *ListLoansUseCase {
	return &ListLoansUseCase{
		clientRepo:      clientRepo,
		loanRepo:        loanRepo,
		installmentRepo: installmentRepo,
		projector:       projector,
	}
}

// Execute lists and enriches loans.
func (uc *ListLoansUseCase) Execute(ctx context.Context, req dto.ListLoansRequest) ([]dto.LoanResponse, error) {
	// 1. Load loans, by client when a cédula filter is present.
	loans, err := uc.loadLoans(ctx, req.NationalID)
	if err != nil {
		return nil, err
	}

	// 2. Enrich each loan. Loans whose client record is gone are skipped,
	//    matching the behaviour of the loan list screen.
	out := make([]dto.LoanResponse, 0, len(loans))
	nameFilter := strings.ToLower(strings.TrimSpace(req.NameContains))

	for _, loan := range loans {
		client, err := uc.clientRepo.FindByNationalID(ctx, loan.ClientNationalID())
		if errors.Is(err, port.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("find client: %w", err)
		}
		if nameFilter != "" && !strings.Contains(strings.ToLower(client.DisplayName()), nameFilter) {
			continue
		}

		installments, err := uc.installmentRepo.ListByLoan(ctx, loan.ID())
		if err != nil {
			return nil, fmt.Errorf("list installments: %w", err)
		}

		summary := uc.projector.Summarize(loan, installments)
		out = append(out, dto.FromLoan(loan, client.DisplayName(), summary))
	}

	// 3. Sort.
	sortLoans(out, req.SortBy, req.SortOrder)
	return out, nil
}

func (uc *ListLoansUseCase) loadLoans(ctx context.Context, nationalID string) ([]model.Loan, error) {
	if nationalID != "" {
		loans, err := uc.loanRepo.FindByClientNationalID(ctx, nationalID)
		if err != nil {
			return nil, fmt.Errorf("list loans by client: %w", err)
		}
		return loans, nil
	}
	loans, err := uc.loanRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list loans: %w", err)
	}
	return loans, nil
}

func sortLoans(loans []dto.LoanResponse, sortBy, sortOrder string) {
	desc := strings.EqualFold(sortOrder, "desc")
	less := func(i, j int) bool {
		switch sortBy {
		case "principal":
			return loans[i].Principal.LessThan(loans[j].Principal)
		case "client_name":
			return strings.ToLower(loans[i].ClientName) < strings.ToLower(loans[j].ClientName)
		default:
			return loans[i].CreatedAt.Before(loans[j].CreatedAt)
		}
	}
	sort.SliceStable(loans, func(i, j int) bool {
		if desc {
			return less(j, i)
		}
		return less(i, j)
	})
}
