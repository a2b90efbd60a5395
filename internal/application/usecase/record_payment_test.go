package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sigecred/sgcred/internal/application/dto"
	"github.com/sigecred/sgcred/internal/application/usecase"
	"github.com/sigecred/sgcred/internal/domain/model"
	"github.com/sigecred/sgcred/internal/domain/port"
	"github.com/sigecred/sgcred/internal/domain/service"
	"github.com/sigecred/sgcred/internal/domain/valueobject"
)

var testDueDate = time.Date(2025, 2, 15, 0, 0, 0, 0, time.UTC)

func storedInstallment() model.Installment {
	return model.ReconstructInstallment(
		"inst-001", "loan-001", 1,
		decimal.NewFromInt(400_000), testDueDate,
		valueobject.InstallmentStatusPending,
		nil, nil,
		decimal.NewFromInt(400_000),
	)
}

func TestRecordPayment_Execute(t *testing.T) {
	t.Run("records an on-time full payment", func(t *testing.T) {
		installmentRepo := &mockInstallmentRepository{
			findByIDFunc: func(ctx context.Context, id string) (model.Installment, error) {
				return storedInstallment(), nil
			},
		}
		publisher := &mockEventPublisher{}

		uc := usecase.NewRecordPaymentUseCase(installmentRepo, service.NewScheduleProjector(), publisher)

		resp, err := uc.Execute(context.Background(), dto.RecordPaymentRequest{
			InstallmentID: "inst-001",
			PaymentDate:   testDueDate,
			AmountPaid:    decimal.NewFromInt(400_000),
		})
		require.NoError(t, err)

		assert.Equal(t, "PAID", resp.Status)
		assert.False(t, resp.Late)
		assert.False(t, resp.Partial)
		assert.True(t, resp.Balance.IsZero())

		require.Len(t, installmentRepo.updated, 1)
		assert.NotEmpty(t, publisher.publishedEvents)
	})

	t.Run("flags a late partial payment", func(t *testing.T) {
		installmentRepo := &mockInstallmentRepository{
			findByIDFunc: func(ctx context.Context, id string) (model.Installment, error) {
				return storedInstallment(), nil
			},
		}
		uc := usecase.NewRecordPaymentUseCase(installmentRepo,
			service.NewScheduleProjector(), &mockEventPublisher{})

		resp, err := uc.Execute(context.Background(), dto.RecordPaymentRequest{
			InstallmentID: "inst-001",
			PaymentDate:   testDueDate.AddDate(0, 0, 6),
			AmountPaid:    decimal.NewFromInt(250_000),
		})
		require.NoError(t, err)

		assert.True(t, resp.Late)
		assert.True(t, resp.Partial)
		assert.Equal(t, 6, resp.DaysLate)
		assert.True(t, decimal.NewFromInt(150_000).Equal(resp.Balance))
	})

	t.Run("correction overwrites an existing payment", func(t *testing.T) {
		alreadyPaid, err := storedInstallment().RecordPayment(testDueDate, decimal.NewFromInt(300_000))
		require.NoError(t, err)
		alreadyPaid = alreadyPaid.ClearEvents()

		installmentRepo := &mockInstallmentRepository{
			findByIDFunc: func(ctx context.Context, id string) (model.Installment, error) {
				return alreadyPaid, nil
			},
		}
		uc := usecase.NewRecordPaymentUseCase(installmentRepo,
			service.NewScheduleProjector(), &mockEventPublisher{})

		resp, err := uc.Execute(context.Background(), dto.RecordPaymentRequest{
			InstallmentID: "inst-001",
			PaymentDate:   testDueDate,
			AmountPaid:    decimal.NewFromInt(400_000),
		})
		require.NoError(t, err)

		assert.Equal(t, "PAID", resp.Status)
		assert.True(t, resp.Balance.IsZero())
		require.NotNil(t, resp.AmountPaid)
		assert.True(t, decimal.NewFromInt(400_000).Equal(*resp.AmountPaid))
	})

	t.Run("fails when installment not found", func(t *testing.T) {
		uc := usecase.NewRecordPaymentUseCase(&mockInstallmentRepository{},
			service.NewScheduleProjector(), &mockEventPublisher{})

		_, err := uc.Execute(context.Background(), dto.RecordPaymentRequest{
			InstallmentID: "missing",
			PaymentDate:   testDueDate,
			AmountPaid:    decimal.NewFromInt(100),
		})

		require.Error(t, err)
		assert.ErrorIs(t, err, port.ErrNotFound)
	})

	t.Run("rejects a non-positive amount", func(t *testing.T) {
		installmentRepo := &mockInstallmentRepository{
			findByIDFunc: func(ctx context.Context, id string) (model.Installment, error) {
				return storedInstallment(), nil
			},
		}
		uc := usecase.NewRecordPaymentUseCase(installmentRepo,
			service.NewScheduleProjector(), &mockEventPublisher{})

		_, err := uc.Execute(context.Background(), dto.RecordPaymentRequest{
			InstallmentID: "inst-001",
			PaymentDate:   testDueDate,
			AmountPaid:    decimal.Zero,
		})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "record payment")
		assert.Empty(t, installmentRepo.updated)
	})
}
