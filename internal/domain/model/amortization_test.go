package model_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/sigecred/sgcred/internal/domain/model"
)

func TestComputeInstallment_TypicalLoan(t *testing.T) {
	// Gs. 1,000,000 at 5% per period over 3 installments.
	principal := decimal.NewFromInt(1_000_000)
	rate := decimal.NewFromInt(5)

	amount := model.ComputeInstallment(principal, rate, 3)

	assert.True(t, decimal.NewFromFloat(367208.56).Equal(amount),
		"expected 367208.56, got %s", amount)
}

func TestComputeInstallment_ZeroRate(t *testing.T) {
	// An interest-free loan splits the principal evenly.
	amount := model.ComputeInstallment(decimal.NewFromInt(10_000), decimal.Zero, 3)

	assert.True(t, decimal.NewFromFloat(3333.33).Equal(amount),
		"expected 3333.33, got %s", amount)
}

func TestComputeInstallment_SingleInstallment(t *testing.T) {
	// One installment repays principal plus one period of interest.
	amount := model.ComputeInstallment(decimal.NewFromInt(100_000), decimal.NewFromInt(10), 1)

	assert.True(t, decimal.NewFromInt(110_000).Equal(amount),
		"expected 110000, got %s", amount)
}

func TestComputeInstallment_InvalidInputs(t *testing.T) {
	t.Run("zero term", func(t *testing.T) {
		amount := model.ComputeInstallment(decimal.NewFromInt(1000), decimal.NewFromInt(5), 0)
		assert.True(t, amount.IsZero())
	})

	t.Run("negative term", func(t *testing.T) {
		amount := model.ComputeInstallment(decimal.NewFromInt(1000), decimal.NewFromInt(5), -3)
		assert.True(t, amount.IsZero())
	})

	t.Run("zero principal", func(t *testing.T) {
		amount := model.ComputeInstallment(decimal.Zero, decimal.NewFromInt(5), 12)
		assert.True(t, amount.IsZero())
	})

	t.Run("negative principal", func(t *testing.T) {
		amount := model.ComputeInstallment(decimal.NewFromInt(-1000), decimal.NewFromInt(5), 12)
		assert.True(t, amount.IsZero())
	})
}

func TestTotalInterestPercent(t *testing.T) {
	t.Run("flat numbers", func(t *testing.T) {
		// 3 x 400,000 repaid on 1,000,000 lent earns 20%.
		pct := model.TotalInterestPercent(
			decimal.NewFromInt(1_000_000), decimal.NewFromInt(400_000), 3)
		assert.True(t, decimal.NewFromInt(20).Equal(pct), "expected 20, got %s", pct)
	})

	t.Run("derived from annuity amount", func(t *testing.T) {
		pct := model.TotalInterestPercent(
			decimal.NewFromInt(1_000_000), decimal.NewFromFloat(367208.56), 3)
		assert.True(t, decimal.NewFromFloat(10.16).Equal(pct), "expected 10.16, got %s", pct)
	})

	t.Run("invalid inputs yield zero", func(t *testing.T) {
		assert.True(t, model.TotalInterestPercent(decimal.Zero, decimal.NewFromInt(100), 3).IsZero())
		assert.True(t, model.TotalInterestPercent(decimal.NewFromInt(100), decimal.Zero, 3).IsZero())
		assert.True(t, model.TotalInterestPercent(decimal.NewFromInt(100), decimal.NewFromInt(50), 0).IsZero())
	})
}
