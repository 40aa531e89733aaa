package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"lexcaribe/ms_fiscal_core/internal/core/audit"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository implements the audit.Repository interface using PostgreSQL.
type Repository struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

// NewRepository creates a new PostgreSQL audit repository.
func NewRepository(pool *pgxpool.Pool) audit.Repository {
	return &Repository{pool: pool, log: nil}
}

// NewRepositoryWithLogger creates a new PostgreSQL audit repository with logging.
func NewRepositoryWithLogger(pool *pgxpool.Pool, log *slog.Logger) audit.Repository {
	return &Repository{pool: pool, log: log}
}

// Save appends a fiscal trail entry. Entries are insert-only; there is no
// update or delete path on this table.
func (r *Repository) Save(ctx context.Context, entry audit.Entry) error {
	query := `
		INSERT INTO fiscal_audit_log (
			correlation_id, operation, ncf_type, ncf, invoice_id, detail
		) VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.pool.Exec(ctx, query,
		entry.CorrelationID,
		entry.Operation,
		entry.NCFType,
		entry.NCF,
		entry.InvoiceID,
		entry.Detail,
	)
	if err != nil {
		if r.log != nil {
			r.log.Error("Failed to insert fiscal audit entry",
				"correlation_id", entry.CorrelationID,
				"operation", entry.Operation,
				"ncf", entry.NCF,
				"error", err,
			)
		}
		return fmt.Errorf("insert fiscal audit entry: %w", err)
	}

	if r.log != nil {
		r.log.Debug("Fiscal audit entry saved",
			"correlation_id", entry.CorrelationID,
			"operation", entry.Operation,
			"ncf", entry.NCF,
		)
	}

	return nil
}

// FindByNCF retrieves the history of a comprobante, oldest first.
func (r *Repository) FindByNCF(ctx context.Context, ncfCode string) ([]audit.Entry, error) {
	query := `
		SELECT id, correlation_id, operation, ncf_type, ncf, invoice_id, detail, created_at
		FROM fiscal_audit_log
		WHERE ncf = $1
		ORDER BY created_at ASC
	`

	rows, err := r.pool.Query(ctx, query, ncfCode)
	if err != nil {
		return nil, fmt.Errorf("query fiscal audit entries: %w", err)
	}
	defer rows.Close()

	var entries []audit.Entry
	for rows.Next() {
		var entry audit.Entry
		err := rows.Scan(
			&entry.ID,
			&entry.CorrelationID,
			&entry.Operation,
			&entry.NCFType,
			&entry.NCF,
			&entry.InvoiceID,
			&entry.Detail,
			&entry.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan fiscal audit entry: %w", err)
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}

	return entries, nil
}
