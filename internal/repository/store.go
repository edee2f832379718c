package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Store combines the query surface with transaction execution. Services that
// must mutate several rows atomically (a cart item write plus the totals
// refresh) depend on Store; read-only services can depend on Querier alone.
type Store interface {
	Querier

	// ExecTx runs fn inside a single transaction. The Querier passed to fn is
	// bound to that transaction. A non-nil error from fn rolls everything
	// back; otherwise the transaction commits.
	ExecTx(ctx context.Context, fn func(Querier) error) error
}

// SQLStore is the PostgreSQL-backed Store.
type SQLStore struct {
	*Queries
	pool *pgxpool.Pool
}

// NewStore creates a Store over a pgx connection pool.
func NewStore(pool *pgxpool.Pool) *SQLStore {
	return &SQLStore{
		Queries: New(pool),
		pool:    pool,
	}
}

// ExecTx runs fn inside a transaction.
func (s *SQLStore) ExecTx(ctx context.Context, fn func(Querier) error) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := fn(s.Queries.WithTx(tx)); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			return fmt.Errorf("tx error: %v, rollback error: %w", err, rbErr)
		}
		return err
	}

	return tx.Commit(ctx)
}
