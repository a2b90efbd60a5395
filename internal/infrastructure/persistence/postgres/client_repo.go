package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	pgdb "github.com/sigecred/sgcred/pkg/postgres"

	"github.com/sigecred/sgcred/internal/domain/model"
	"github.com/sigecred/sgcred/internal/domain/port"
)

const uniqueViolation = "23505"

// ClientRepo implements port.ClientRepository on PostgreSQL.
type ClientRepo struct {
	pool *pgxpool.Pool
}

// NewClientRepo creates a new PostgreSQL-backed client repository.
func NewClientRepo(pool *pgxpool.Pool) *ClientRepo {
	return &ClientRepo{pool: pool}
}

// Upsert inserts the client or updates the row with the same surrogate ID.
func (r *ClientRepo) Upsert(ctx context.Context, client model.Client) error {
	query := `
		INSERT INTO clients (
			id, national_id, given_names, surnames,
			address, neighborhood, city,
			phone_primary, phone_secondary,
			reference_name, reference_phone,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
		ON CONFLICT (id) DO UPDATE SET
			given_names     = EXCLUDED.given_names,
			surnames        = EXCLUDED.surnames,
			address         = EXCLUDED.address,
			neighborhood    = EXCLUDED.neighborhood,
			city            = EXCLUDED.city,
			phone_primary   = EXCLUDED.phone_primary,
			phone_secondary = EXCLUDED.phone_secondary,
			reference_name  = EXCLUDED.reference_name,
			reference_phone = EXCLUDED.reference_phone,
			updated_at      = EXCLUDED.updated_at
	`
	contact := client.Contact()
	_, err := r.pool.Exec(ctx, query,
		client.ID(), client.NationalID(), client.GivenNames(), client.Surnames(),
		contact.Address, contact.Neighborhood, contact.City,
		contact.PhonePrimary, contact.PhoneSecondary,
		contact.ReferenceName, contact.ReferencePhone,
		client.CreatedAt(), client.UpdatedAt(),
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return fmt.Errorf("client %s: %w", client.NationalID(), port.ErrConflict)
		}
		return fmt.Errorf("upsert client: %w", err)
	}
	return nil
}

// FindByNationalID retrieves a client by cédula.
func (r *ClientRepo) FindByNationalID(ctx context.Context, nationalID string) (model.Client, error) {
	query := selectClientQuery + ` WHERE national_id = $1`
	return r.scanOneClient(ctx, query, nationalID)
}

// FindByID retrieves a client by surrogate ID.
func (r *ClientRepo) FindByID(ctx context.Context, id string) (model.Client, error) {
	query := selectClientQuery + ` WHERE id = $1`
	return r.scanOneClient(ctx, query, id)
}

// List retrieves all clients ordered by surname.
func (r *ClientRepo) List(ctx context.Context) ([]model.Client, error) {
	query := selectClientQuery + ` ORDER BY surnames, given_names`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query clients: %w", err)
	}
	defer rows.Close()

	var clients []model.Client
	for rows.Next() {
		client, err := scanClientRow(rows)
		if err != nil {
			return nil, err
		}
		clients = append(clients, client)
	}
	return clients, rows.Err()
}

// DeleteCascade removes the client with all of its loans and installments.
func (r *ClientRepo) DeleteCascade(ctx context.Context, clientID string) error {
	return pgdb.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		var nationalID string
		err := tx.QueryRow(ctx, `SELECT national_id FROM clients WHERE id = $1`, clientID).Scan(&nationalID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return fmt.Errorf("client %s: %w", clientID, port.ErrNotFound)
			}
			return fmt.Errorf("query client: %w", err)
		}

		if _, err := tx.Exec(ctx, `
			DELETE FROM installments
			WHERE loan_id IN (SELECT id FROM loans WHERE client_national_id = $1)
		`, nationalID); err != nil {
			return fmt.Errorf("delete installments: %w", err)
		}
		if _, err := tx.Exec(ctx, `DELETE FROM loans WHERE client_national_id = $1`, nationalID); err != nil {
			return fmt.Errorf("delete loans: %w", err)
		}
		if _, err := tx.Exec(ctx, `DELETE FROM clients WHERE id = $1`, clientID); err != nil {
			return fmt.Errorf("delete client: %w", err)
		}
		return nil
	})
}

// ---------------------------------------------------------------------------
// internal helpers
// ---------------------------------------------------------------------------

const selectClientQuery = `
	SELECT id, national_id, given_names, surnames,
	       address, neighborhood, city,
	       phone_primary, phone_secondary,
	       reference_name, reference_phone,
	       created_at, updated_at
	FROM clients
`

func (r *ClientRepo) scanOneClient(ctx context.Context, query string, args ...any) (model.Client, error) {
	client, err := scanClientRow(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Client{}, fmt.Errorf("client: %w", port.ErrNotFound)
		}
		return model.Client{}, err
	}
	return client, nil
}

type scannable interface {
	Scan(dest ...any) error
}

func scanClientRow(s scannable) (model.Client, error) {
	var (
		id, nationalID, givenNames, surnames string
		contact                              model.ClientContact
		createdAt, updatedAt                 time.Time
	)

	err := s.Scan(
		&id, &nationalID, &givenNames, &surnames,
		&contact.Address, &contact.Neighborhood, &contact.City,
		&contact.PhonePrimary, &contact.PhoneSecondary,
		&contact.ReferenceName, &contact.ReferencePhone,
		&createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Client{}, err
		}
		return model.Client{}, fmt.Errorf("scan client: %w", err)
	}

	return model.ReconstructClient(id, nationalID, givenNames, surnames, contact, createdAt, updatedAt), nil
}
