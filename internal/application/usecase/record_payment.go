package usecase

import (
	"context"
	"fmt"

	"github.com/sigecred/sgcred/internal/application/dto"
	"github.com/sigecred/sgcred/internal/domain/port"
	"github.com/sigecred/sgcred/internal/domain/service"
)

// RecordPaymentUseCase applies a payment to one installment. Invoking it
// again on a paid installment overwrites the prior payment record, which is
// how the business corrects mistakes.
type RecordPaymentUseCase struct {
	installmentRepo port.InstallmentRepository
	projector       *service.ScheduleProjector
	publisher       port.EventPublisher
}

// NewRecordPaymentUseCase wires dependencies.
func NewRecordPaymentUseCase(
	installmentRepo port.InstallmentRepository,
	projector *service.ScheduleProjector,
	publisher port.EventPublisher,
) *RecordPaymentUseCase {
	return &RecordPaymentUseCase{
		installmentRepo: installmentRepo,
		projector:       projector,
		publisher:       publisher,
	}
}

// Execute records the payment and returns the updated, classified line.
func (uc *RecordPaymentUseCase) Execute(ctx context.Context, req dto.RecordPaymentRequest) (dto.InstallmentResponse, error) {
	// 1. Retrieve the installment.
	installment, err := uc.installmentRepo.FindByID(ctx, req.InstallmentID)
	if err != nil {
		return dto.InstallmentResponse{}, fmt.Errorf("find installment: %w", err)
	}

	// 2. Apply the payment.
	installment, err = installment.RecordPayment(req.PaymentDate, req.AmountPaid)
	if err != nil {
		return dto.InstallmentResponse{}, fmt.Errorf("record payment: %w", err)
	}

	// 3. Persist.
	if err := uc.installmentRepo.Update(ctx, installment); err != nil {
		return dto.InstallmentResponse{}, fmt.Errorf("save installment: %w", err)
	}

	// 4. Publish events.
	if err := uc.publisher.Publish(ctx, installment.DomainEvents()...); err != nil {
		return dto.InstallmentResponse{}, fmt.Errorf("publish events: %w", err)
	}

	return dto.FromInstallmentView(uc.projector.Classify(installment)), nil
}
