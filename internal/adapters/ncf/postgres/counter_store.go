package postgres

import (
	"context"
	"fmt"

	"lexcaribe/ms_fiscal_core/internal/core/ncf"

	"github.com/jackc/pgx/v5/pgxpool"
)

// CounterStore implements the ncf.CounterStore interface using PostgreSQL.
// Counters live in their own table, one row per NCF type, and are never
// recomputed from the invoices relation.
type CounterStore struct {
	pool *pgxpool.Pool
}

// NewCounterStore creates a new PostgreSQL counter store.
func NewCounterStore(pool *pgxpool.Pool) ncf.CounterStore {
	return &CounterStore{pool: pool}
}

// Get returns the current counter value for a type, 0 when the type has
// never issued a number.
func (s *CounterStore) Get(ctx context.Context, t ncf.Type) (int64, error) {
	query := `
		SELECT COALESCE(
			(SELECT counter FROM ncf_counters WHERE ncf_type = $1), 0
		)
	`

	var counter int64
	if err := s.pool.QueryRow(ctx, query, t).Scan(&counter); err != nil {
		return 0, fmt.Errorf("query ncf counter: %w", err)
	}

	return counter, nil
}

// Increment advances the counter for a type by one and returns the new
// value. The upsert makes the advance a single atomic statement, so even
// without the sequencer's type lock two increments can never collide.
func (s *CounterStore) Increment(ctx context.Context, t ncf.Type) (int64, error) {
	query := `
		INSERT INTO ncf_counters (ncf_type, counter)
		VALUES ($1, 1)
		ON CONFLICT (ncf_type)
		DO UPDATE SET counter = ncf_counters.counter + 1, updated_at = NOW()
		RETURNING counter
	`

	var counter int64
	if err := s.pool.QueryRow(ctx, query, t).Scan(&counter); err != nil {
		return 0, fmt.Errorf("increment ncf counter: %w", err)
	}

	return counter, nil
}

// ResetAll sets every counter back to zero.
func (s *CounterStore) ResetAll(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `UPDATE ncf_counters SET counter = 0, updated_at = NOW()`)
	if err != nil {
		return fmt.Errorf("reset ncf counters: %w", err)
	}
	return nil
}
