package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sigecred/sgcred/internal/application/usecase"
	"github.com/sigecred/sgcred/internal/domain/model"
	"github.com/sigecred/sgcred/internal/domain/port"
	"github.com/sigecred/sgcred/internal/domain/service"
	"github.com/sigecred/sgcred/internal/domain/valueobject"
)

func planFixture(t *testing.T) (*mockClientRepository, *mockLoanRepository, *mockInstallmentRepository) {
	t.Helper()

	client, err := model.NewClient("1234567", "María", "González", model.ClientContact{}, time.Now().UTC())
	require.NoError(t, err)
	client = client.ClearEvents()

	loan := reconstructLoan(valueobject.LoanStatusActive)

	due := time.Date(2025, 2, 15, 0, 0, 0, 0, time.UTC)
	mkLine := func(number int) model.Installment {
		return model.ReconstructInstallment(
			"inst-00"+string(rune('0'+number)), loan.ID(), number,
			decimal.NewFromInt(400_000), due.AddDate(0, number-1, 0),
			valueobject.InstallmentStatusPending,
			nil, nil,
			decimal.NewFromInt(400_000),
		)
	}
	paid, err := mkLine(1).RecordPayment(due.AddDate(0, 0, 6), decimal.NewFromInt(300_000))
	require.NoError(t, err)
	schedule := []model.Installment{paid.ClearEvents(), mkLine(2), mkLine(3)}

	clientRepo := &mockClientRepository{
		findByNationalIDFunc: func(ctx context.Context, nationalID string) (model.Client, error) {
			return client, nil
		},
	}
	loanRepo := &mockLoanRepository{
		findByIDFunc: func(ctx context.Context, id string) (model.Loan, error) {
			return loan, nil
		},
	}
	installmentRepo := &mockInstallmentRepository{
		listByLoanFunc: func(ctx context.Context, loanID string) ([]model.Installment, error) {
			return schedule, nil
		},
	}
	return clientRepo, loanRepo, installmentRepo
}

func TestGetPaymentPlan_Execute(t *testing.T) {
	t.Run("assembles the full plan", func(t *testing.T) {
		clientRepo, loanRepo, installmentRepo := planFixture(t)
		uc := usecase.NewGetPaymentPlanUseCase(clientRepo, loanRepo, installmentRepo, service.NewScheduleProjector())

		plan, err := uc.Execute(context.Background(), "loan-001")
		require.NoError(t, err)

		assert.Equal(t, "María González", plan.Loan.ClientName)
		assert.Equal(t, "María González", plan.Client.DisplayName)
		require.Len(t, plan.Installments, 3)

		first := plan.Installments[0]
		assert.Equal(t, "PAID", first.Status)
		assert.True(t, first.Late)
		assert.True(t, first.Partial)
		assert.Equal(t, 6, first.DaysLate)

		assert.True(t, decimal.NewFromInt(300_000).Equal(plan.TotalPaid))
		// Repayable 1,200,000 minus 300,000 paid.
		assert.True(t, decimal.NewFromInt(900_000).Equal(plan.Loan.Balance),
			"expected 900000, got %s", plan.Loan.Balance)
		assert.Equal(t, 6, plan.Loan.TotalDaysLate)
	})

	t.Run("tolerates a missing client record", func(t *testing.T) {
		_, loanRepo, installmentRepo := planFixture(t)
		uc := usecase.NewGetPaymentPlanUseCase(&mockClientRepository{}, loanRepo, installmentRepo,
			service.NewScheduleProjector())

		plan, err := uc.Execute(context.Background(), "loan-001")
		require.NoError(t, err)

		assert.Empty(t, plan.Loan.ClientName)
		assert.Empty(t, plan.Client.ID)
		require.Len(t, plan.Installments, 3)
	})

	t.Run("fails when loan not found", func(t *testing.T) {
		uc := usecase.NewGetPaymentPlanUseCase(&mockClientRepository{}, &mockLoanRepository{},
			&mockInstallmentRepository{}, service.NewScheduleProjector())

		_, err := uc.Execute(context.Background(), "missing")
		require.Error(t, err)
		assert.ErrorIs(t, err, port.ErrNotFound)
	})
}

func TestGetPaymentPlan_PaidLines(t *testing.T) {
	clientRepo, loanRepo, installmentRepo := planFixture(t)
	uc := usecase.NewGetPaymentPlanUseCase(clientRepo, loanRepo, installmentRepo, service.NewScheduleProjector())

	receipt, err := uc.PaidLines(context.Background(), "loan-001")
	require.NoError(t, err)

	require.Len(t, receipt.Installments, 1)
	assert.Equal(t, "PAID", receipt.Installments[0].Status)
	assert.Equal(t, 1, receipt.Installments[0].Number)
}
