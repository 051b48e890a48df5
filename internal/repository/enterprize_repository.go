package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/enterprize-service/internal/domain"
)

const pgUniqueViolation = "23505"

// EnterprizeRepository persists tenants. Tenants are append-only.
type EnterprizeRepository interface {
	Create(ctx context.Context, enterprize *domain.Enterprize) error
	RetrieveBySubdomain(ctx context.Context, subdomain string) (*domain.Enterprize, error)
}

type enterprizeRepository struct {
	pool *pgxpool.Pool
}

// NewEnterprizeRepository returns a Postgres-backed implementation.
func NewEnterprizeRepository(pool *pgxpool.Pool) EnterprizeRepository {
	return &enterprizeRepository{pool: pool}
}

func (r *enterprizeRepository) Create(ctx context.Context, enterprize *domain.Enterprize) error {
	const query = `
        INSERT INTO enterprizes (reference, name, subdomain, created)
        VALUES ($1, $2, $3, $4)`

	_, err := r.pool.Exec(ctx, query,
		enterprize.Reference,
		enterprize.Name,
		enterprize.Subdomain,
		enterprize.Created,
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("subdomain %q: %w", enterprize.Subdomain, domain.ErrEnterprizeExists)
	}
	return err
}

func (r *enterprizeRepository) RetrieveBySubdomain(ctx context.Context, subdomain string) (*domain.Enterprize, error) {
	const query = `
        SELECT reference, name, subdomain, created
        FROM enterprizes WHERE subdomain=$1`

	var enterprize domain.Enterprize
	if err := r.pool.QueryRow(ctx, query, subdomain).Scan(
		&enterprize.Reference,
		&enterprize.Name,
		&enterprize.Subdomain,
		&enterprize.Created,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("subdomain %q: %w", subdomain, domain.ErrEnterprizeNotFound)
		}
		return nil, err
	}
	return &enterprize, nil
}

// isUniqueViolation detects the unique-constraint failure the storage layer
// raises on concurrent conflicting writes.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}
