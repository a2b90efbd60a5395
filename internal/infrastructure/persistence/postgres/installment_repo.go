package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/sigecred/sgcred/internal/domain/model"
	"github.com/sigecred/sgcred/internal/domain/port"
	"github.com/sigecred/sgcred/internal/domain/valueobject"
)

// InstallmentRepo implements port.InstallmentRepository on PostgreSQL.
type InstallmentRepo struct {
	pool *pgxpool.Pool
}

// NewInstallmentRepo creates a new PostgreSQL-backed installment repository.
func NewInstallmentRepo(pool *pgxpool.Pool) *InstallmentRepo {
	return &InstallmentRepo{pool: pool}
}

// FindByID retrieves one schedule line by ID.
func (r *InstallmentRepo) FindByID(ctx context.Context, id string) (model.Installment, error) {
	query := selectInstallmentQuery + ` WHERE id = $1`
	installment, err := scanInstallmentRow(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Installment{}, fmt.Errorf("installment %s: %w", id, port.ErrNotFound)
		}
		return model.Installment{}, err
	}
	return installment, nil
}

// ListByLoan retrieves the full schedule of a loan, ordered by line number.
func (r *InstallmentRepo) ListByLoan(ctx context.Context, loanID string) ([]model.Installment, error) {
	query := selectInstallmentQuery + ` WHERE loan_id = $1 ORDER BY number`
	rows, err := r.pool.Query(ctx, query, loanID)
	if err != nil {
		return nil, fmt.Errorf("query installments: %w", err)
	}
	defer rows.Close()

	var installments []model.Installment
	for rows.Next() {
		installment, err := scanInstallmentRow(rows)
		if err != nil {
			return nil, err
		}
		installments = append(installments, installment)
	}
	return installments, rows.Err()
}

// Update persists a payment record or correction on one schedule line.
func (r *InstallmentRepo) Update(ctx context.Context, installment model.Installment) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE installments
		SET status = $1, payment_date = $2, amount_paid = $3, balance = $4
		WHERE id = $5
	`,
		installment.Status().String(), installment.PaymentDate(),
		installment.AmountPaid(), installment.Balance(), installment.ID(),
	)
	if err != nil {
		return fmt.Errorf("update installment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("installment %s: %w", installment.ID(), port.ErrNotFound)
	}
	return nil
}

// ---------------------------------------------------------------------------
// internal helpers
// ---------------------------------------------------------------------------

const selectInstallmentQuery = `
	SELECT id, loan_id, number, due_amount, due_date,
	       status, payment_date, amount_paid, balance
	FROM installments
`

func scanInstallmentRow(s scannable) (model.Installment, error) {
	var (
		id, loanID  string
		number      int
		dueAmount   decimal.Decimal
		dueDate     time.Time
		statusStr   string
		paymentDate *time.Time
		amountPaid  *decimal.Decimal
		balance     decimal.Decimal
	)

	err := s.Scan(
		&id, &loanID, &number, &dueAmount, &dueDate,
		&statusStr, &paymentDate, &amountPaid, &balance,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Installment{}, err
		}
		return model.Installment{}, fmt.Errorf("scan installment: %w", err)
	}

	status, err := valueobject.NewInstallmentStatus(statusStr)
	if err != nil {
		return model.Installment{}, fmt.Errorf("parse installment status: %w", err)
	}

	return model.ReconstructInstallment(
		id, loanID, number, dueAmount, dueDate,
		status, paymentDate, amountPaid, balance,
	), nil
}
