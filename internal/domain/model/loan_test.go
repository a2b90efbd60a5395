package model_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sigecred/sgcred/internal/domain/event"
	"github.com/sigecred/sgcred/internal/domain/model"
	"github.com/sigecred/sgcred/internal/domain/valueobject"
)

func newTestLoan(t *testing.T, frequency string, count int) model.Loan {
	t.Helper()
	freq, err := valueobject.NewPaymentFrequency(frequency)
	require.NoError(t, err)

	loan, err := model.NewLoan(
		"1234567",
		decimal.NewFromInt(1_000_000),
		freq,
		count,
		decimal.NewFromFloat(367208.56),
		time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 2, 15, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 1, 15, 10, 30, 0, 0, time.UTC),
	)
	require.NoError(t, err)
	return loan
}

func TestNewLoan(t *testing.T) {
	loan := newTestLoan(t, "MONTHLY", 3)

	assert.NotEmpty(t, loan.ID())
	assert.Equal(t, "1234567", loan.ClientNationalID())
	assert.Equal(t, "ACTIVE", loan.Status().String())
	assert.True(t, loan.IsActive())

	// Total interest is always derived from the installment amount.
	assert.True(t, decimal.NewFromFloat(10.16).Equal(loan.TotalInterestPct()),
		"expected 10.16, got %s", loan.TotalInterestPct())

	require.Len(t, loan.DomainEvents(), 1)
	created, ok := loan.DomainEvents()[0].(event.LoanCreated)
	require.True(t, ok)
	assert.Equal(t, loan.ID(), created.AggregateID())
}

func TestNewLoan_Validation(t *testing.T) {
	freq, err := valueobject.NewPaymentFrequency("MONTHLY")
	require.NoError(t, err)
	now := time.Now().UTC()
	disbursed := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	firstDue := time.Date(2025, 2, 15, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name       string
		nationalID string
		principal  decimal.Decimal
		frequency  valueobject.PaymentFrequency
		count      int
		amount     decimal.Decimal
		disbursed  time.Time
		firstDue   time.Time
	}{
		{"missing national ID", "", decimal.NewFromInt(1000), freq, 3, decimal.NewFromInt(400), disbursed, firstDue},
		{"zero principal", "123", decimal.Zero, freq, 3, decimal.NewFromInt(400), disbursed, firstDue},
		{"zero frequency", "123", decimal.NewFromInt(1000), valueobject.PaymentFrequency{}, 3, decimal.NewFromInt(400), disbursed, firstDue},
		{"zero count", "123", decimal.NewFromInt(1000), freq, 0, decimal.NewFromInt(400), disbursed, firstDue},
		{"zero amount", "123", decimal.NewFromInt(1000), freq, 3, decimal.Zero, disbursed, firstDue},
		{"missing disbursement date", "123", decimal.NewFromInt(1000), freq, 3, decimal.NewFromInt(400), time.Time{}, firstDue},
		{"missing first payment date", "123", decimal.NewFromInt(1000), freq, 3, decimal.NewFromInt(400), disbursed, time.Time{}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := model.NewLoan(tc.nationalID, tc.principal, tc.frequency,
				tc.count, tc.amount, tc.disbursed, tc.firstDue, now)
			assert.Error(t, err)
		})
	}
}

func TestBuildSchedule_Monthly(t *testing.T) {
	loan := newTestLoan(t, "MONTHLY", 3)
	schedule := loan.BuildSchedule()

	require.Len(t, schedule, 3)

	for i, inst := range schedule {
		assert.Equal(t, i+1, inst.Number())
		assert.Equal(t, loan.ID(), inst.LoanID())
		assert.Equal(t, "PENDING", inst.Status().String())
		assert.True(t, loan.InstallmentAmount().Equal(inst.DueAmount()))
		assert.True(t, inst.DueAmount().Equal(inst.Balance()))
		assert.Nil(t, inst.PaymentDate())
		assert.Nil(t, inst.AmountPaid())
	}

	assert.Equal(t, time.Date(2025, 2, 15, 0, 0, 0, 0, time.UTC), schedule[0].DueDate())
	assert.Equal(t, time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC), schedule[1].DueDate())
	assert.Equal(t, time.Date(2025, 4, 15, 0, 0, 0, 0, time.UTC), schedule[2].DueDate())
}

func TestBuildSchedule_OtherFrequencies(t *testing.T) {
	t.Run("daily", func(t *testing.T) {
		schedule := newTestLoan(t, "DAILY", 3).BuildSchedule()
		assert.Equal(t, time.Date(2025, 2, 15, 0, 0, 0, 0, time.UTC), schedule[0].DueDate())
		assert.Equal(t, time.Date(2025, 2, 16, 0, 0, 0, 0, time.UTC), schedule[1].DueDate())
		assert.Equal(t, time.Date(2025, 2, 17, 0, 0, 0, 0, time.UTC), schedule[2].DueDate())
	})

	t.Run("weekly", func(t *testing.T) {
		schedule := newTestLoan(t, "WEEKLY", 2).BuildSchedule()
		assert.Equal(t, time.Date(2025, 2, 15, 0, 0, 0, 0, time.UTC), schedule[0].DueDate())
		assert.Equal(t, time.Date(2025, 2, 22, 0, 0, 0, 0, time.UTC), schedule[1].DueDate())
	})

	t.Run("biweekly advances 15 days", func(t *testing.T) {
		schedule := newTestLoan(t, "BIWEEKLY", 2).BuildSchedule()
		assert.Equal(t, time.Date(2025, 2, 15, 0, 0, 0, 0, time.UTC), schedule[0].DueDate())
		assert.Equal(t, time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC), schedule[1].DueDate())
	})

	t.Run("monthly at end of january", func(t *testing.T) {
		freq, err := valueobject.NewPaymentFrequency("MONTHLY")
		require.NoError(t, err)
		loan, err := model.NewLoan("1234567", decimal.NewFromInt(1000), freq, 2,
			decimal.NewFromInt(550),
			time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
			time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC),
			time.Now().UTC(),
		)
		require.NoError(t, err)

		schedule := loan.BuildSchedule()
		assert.Equal(t, time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC), schedule[0].DueDate())
		// AddDate normalization: Jan 31 + 1 month rolls into March.
		assert.Equal(t, time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC), schedule[1].DueDate())
	})
}

func TestChangeStatus(t *testing.T) {
	loan := newTestLoan(t, "MONTHLY", 3).ClearEvents()
	now := time.Now().UTC()

	t.Run("transition to closed", func(t *testing.T) {
		closed, err := loan.ChangeStatus(valueobject.LoanStatusClosed, now)
		require.NoError(t, err)
		assert.Equal(t, "CLOSED", closed.Status().String())
		assert.False(t, closed.IsActive())
		require.Len(t, closed.DomainEvents(), 1)
	})

	t.Run("same status is a no-op", func(t *testing.T) {
		same, err := loan.ChangeStatus(valueobject.LoanStatusActive, now)
		require.NoError(t, err)
		assert.Equal(t, "ACTIVE", same.Status().String())
		assert.Empty(t, same.DomainEvents())
	})

	t.Run("zero status is rejected", func(t *testing.T) {
		_, err := loan.ChangeStatus(valueobject.LoanStatus{}, now)
		assert.ErrorIs(t, err, valueobject.ErrInvalidStatusTransition)
	})
}

func TestTotalRepayable(t *testing.T) {
	freq, err := valueobject.NewPaymentFrequency("MONTHLY")
	require.NoError(t, err)

	// 3 x 400,000 on 1,000,000 lent: 20% interest, 1,200,000 repayable.
	loan, err := model.NewLoan("1234567", decimal.NewFromInt(1_000_000), freq, 3,
		decimal.NewFromInt(400_000),
		time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 2, 15, 0, 0, 0, 0, time.UTC),
		time.Now().UTC(),
	)
	require.NoError(t, err)

	assert.True(t, decimal.NewFromInt(20).Equal(loan.TotalInterestPct()))
	assert.True(t, decimal.NewFromInt(1_200_000).Equal(loan.TotalRepayable()),
		"expected 1200000, got %s", loan.TotalRepayable())
}
