package pdf_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sigecred/sgcred/internal/application/dto"
	"github.com/sigecred/sgcred/internal/presentation/pdf"
)

func samplePlan() dto.PaymentPlanResponse {
	due := time.Date(2025, 2, 15, 0, 0, 0, 0, time.UTC)
	payDate := due.AddDate(0, 0, 6)
	paidAmount := decimal.NewFromInt(300_000)

	return dto.PaymentPlanResponse{
		Loan: dto.LoanResponse{
			ID:                "loan-001",
			ClientNationalID:  "1234567",
			ClientName:        "María González",
			Principal:         decimal.NewFromInt(1_000_000),
			InstallmentCount:  3,
			InstallmentAmount: decimal.NewFromInt(400_000),
		},
		Client: dto.ClientResponse{DisplayName: "María González"},
		Installments: []dto.InstallmentResponse{
			{
				Number: 1, DueDate: due, DueAmount: decimal.NewFromInt(400_000),
				Status: "PAID", PaymentDate: &payDate, AmountPaid: &paidAmount,
				Late: true, Partial: true, DaysLate: 6,
			},
			{
				Number: 2, DueDate: due.AddDate(0, 1, 0),
				DueAmount: decimal.NewFromInt(400_000), Status: "PENDING",
			},
		},
		TotalPaid: paidAmount,
	}
}

func TestPlanDocument(t *testing.T) {
	doc, err := pdf.PlanDocument(samplePlan())
	require.NoError(t, err)

	assert.NotEmpty(t, doc)
	assert.Equal(t, "%PDF", string(doc[:4]))
}

func TestReceiptDocument(t *testing.T) {
	plan := samplePlan()
	plan.Installments = plan.Installments[:1] // paid lines only

	doc, err := pdf.ReceiptDocument(plan)
	require.NoError(t, err)

	assert.NotEmpty(t, doc)
	assert.Equal(t, "%PDF", string(doc[:4]))
}

func TestPlanDocument_ManyPagesDoesNotFail(t *testing.T) {
	plan := samplePlan()
	due := time.Date(2025, 2, 15, 0, 0, 0, 0, time.UTC)
	plan.Installments = nil
	for i := 1; i <= 120; i++ {
		plan.Installments = append(plan.Installments, dto.InstallmentResponse{
			Number: i, DueDate: due.AddDate(0, 0, i),
			DueAmount: decimal.NewFromInt(50_000), Status: "PENDING",
		})
	}

	doc, err := pdf.PlanDocument(plan)
	require.NoError(t, err)
	assert.NotEmpty(t, doc)
}
