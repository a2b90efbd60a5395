package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	pgdb "github.com/sigecred/sgcred/pkg/postgres"

	"github.com/sigecred/sgcred/internal/domain/model"
	"github.com/sigecred/sgcred/internal/domain/port"
	"github.com/sigecred/sgcred/internal/domain/valueobject"
)

// LoanRepo implements port.LoanRepository on PostgreSQL.
type LoanRepo struct {
	pool *pgxpool.Pool
}

// NewLoanRepo creates a new PostgreSQL-backed loan repository.
func NewLoanRepo(pool *pgxpool.Pool) *LoanRepo {
	return &LoanRepo{pool: pool}
}

// CreateWithSchedule persists the loan and its full installment schedule in
// one transaction.
func (r *LoanRepo) CreateWithSchedule(ctx context.Context, loan model.Loan, schedule []model.Installment) error {
	return pgdb.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		loanQuery := `
			INSERT INTO loans (
				id, client_national_id, principal, frequency,
				installment_count, installment_amount, total_interest_pct,
				disbursement_date, first_payment_date, status,
				created_at, updated_at
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
		`
		_, err := tx.Exec(ctx, loanQuery,
			loan.ID(), loan.ClientNationalID(), loan.Principal(), loan.Frequency().String(),
			loan.InstallmentCount(), loan.InstallmentAmount(), loan.TotalInterestPct(),
			loan.DisbursementDate(), loan.FirstPaymentDate(), loan.Status().String(),
			loan.CreatedAt(), loan.UpdatedAt(),
		)
		if err != nil {
			return fmt.Errorf("insert loan: %w", err)
		}

		entryQuery := `
			INSERT INTO installments (
				id, loan_id, number, due_amount, due_date,
				status, payment_date, amount_paid, balance
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		`
		for _, line := range schedule {
			_, err := tx.Exec(ctx, entryQuery,
				line.ID(), line.LoanID(), line.Number(), line.DueAmount(), line.DueDate(),
				line.Status().String(), line.PaymentDate(), line.AmountPaid(), line.Balance(),
			)
			if err != nil {
				return fmt.Errorf("insert installment %d: %w", line.Number(), err)
			}
		}
		return nil
	})
}

// FindByID retrieves a loan by ID.
func (r *LoanRepo) FindByID(ctx context.Context, id string) (model.Loan, error) {
	query := selectLoanQuery + ` WHERE id = $1`
	loan, err := scanLoanRow(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Loan{}, fmt.Errorf("loan %s: %w", id, port.ErrNotFound)
		}
		return model.Loan{}, err
	}
	return loan, nil
}

// FindByClientNationalID retrieves all loans held by one client.
func (r *LoanRepo) FindByClientNationalID(ctx context.Context, nationalID string) ([]model.Loan, error) {
	query := selectLoanQuery + ` WHERE client_national_id = $1 ORDER BY created_at DESC`
	return r.queryLoans(ctx, query, nationalID)
}

// List retrieves every loan, newest first.
func (r *LoanRepo) List(ctx context.Context) ([]model.Loan, error) {
	query := selectLoanQuery + ` ORDER BY created_at DESC`
	return r.queryLoans(ctx, query)
}

// UpdateStatus persists a status transition.
func (r *LoanRepo) UpdateStatus(ctx context.Context, loanID string, status valueobject.LoanStatus) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE loans SET status = $1, updated_at = $2 WHERE id = $3`,
		status.String(), time.Now(), loanID,
	)
	if err != nil {
		return fmt.Errorf("update loan status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("loan %s: %w", loanID, port.ErrNotFound)
	}
	return nil
}

// DeleteCascade removes the loan together with its installments.
func (r *LoanRepo) DeleteCascade(ctx context.Context, loanID string) error {
	return pgdb.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM installments WHERE loan_id = $1`, loanID); err != nil {
			return fmt.Errorf("delete installments: %w", err)
		}
		tag, err := tx.Exec(ctx, `DELETE FROM loans WHERE id = $1`, loanID)
		if err != nil {
			return fmt.Errorf("delete loan: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("loan %s: %w", loanID, port.ErrNotFound)
		}
		return nil
	})
}

// ---------------------------------------------------------------------------
// internal helpers
// ---------------------------------------------------------------------------

const selectLoanQuery = `
	SELECT id, client_national_id, principal, frequency,
	       installment_count, installment_amount, total_interest_pct,
	       disbursement_date, first_payment_date, status,
	       created_at, updated_at
	FROM loans
`

func (r *LoanRepo) queryLoans(ctx context.Context, query string, args ...any) ([]model.Loan, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query loans: %w", err)
	}
	defer rows.Close()

	var loans []model.Loan
	for rows.Next() {
		loan, err := scanLoanRow(rows)
		if err != nil {
			return nil, err
		}
		loans = append(loans, loan)
	}
	return loans, rows.Err()
}

func scanLoanRow(s scannable) (model.Loan, error) {
	var (
		id, nationalID                       string
		principal                            decimal.Decimal
		frequencyStr                         string
		installmentCount                     int
		installmentAmount, totalInterestPct  decimal.Decimal
		disbursementDate, firstPaymentDate   time.Time
		statusStr                            string
		createdAt, updatedAt                 time.Time
	)

	err := s.Scan(
		&id, &nationalID, &principal, &frequencyStr,
		&installmentCount, &installmentAmount, &totalInterestPct,
		&disbursementDate, &firstPaymentDate, &statusStr,
		&createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Loan{}, err
		}
		return model.Loan{}, fmt.Errorf("scan loan: %w", err)
	}

	frequency, err := valueobject.NewPaymentFrequency(frequencyStr)
	if err != nil {
		return model.Loan{}, fmt.Errorf("parse frequency: %w", err)
	}
	status, err := valueobject.NewLoanStatus(statusStr)
	if err != nil {
		return model.Loan{}, fmt.Errorf("parse loan status: %w", err)
	}

	return model.ReconstructLoan(
		id, nationalID, principal, frequency,
		installmentCount, installmentAmount, totalInterestPct,
		disbursementDate, firstPaymentDate, status,
		createdAt, updatedAt,
	), nil
}
