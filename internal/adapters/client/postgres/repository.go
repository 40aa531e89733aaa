package postgres

import (
	"context"
	"errors"
	"fmt"

	"lexcaribe/ms_fiscal_core/internal/core/client"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository implements the client.Repository interface using PostgreSQL.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL client repository.
func NewRepository(pool *pgxpool.Pool) client.Repository {
	return &Repository{pool: pool}
}

// Create persists a new client.
func (r *Repository) Create(ctx context.Context, c client.Client) error {
	query := `
		INSERT INTO clients (id, name, document_number, email, phone, active)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.pool.Exec(ctx, query,
		c.ID,
		c.Name,
		c.DocumentNumber,
		c.Email,
		c.Phone,
		c.Active,
	)
	if err != nil {
		return fmt.Errorf("insert client: %w", err)
	}

	return nil
}

// FindByID retrieves a client by ID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*client.Client, error) {
	query := `
		SELECT id, name, document_number, email, phone, active, created_at, updated_at
		FROM clients
		WHERE id = $1
	`

	var c client.Client
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&c.ID,
		&c.Name,
		&c.DocumentNumber,
		&c.Email,
		&c.Phone,
		&c.Active,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, client.ErrNotFound
		}
		return nil, fmt.Errorf("query client: %w", err)
	}

	return &c, nil
}

// List retrieves clients ordered by name.
func (r *Repository) List(ctx context.Context, activeOnly bool) ([]client.Client, error) {
	query := `
		SELECT id, name, document_number, email, phone, active, created_at, updated_at
		FROM clients
	`
	if activeOnly {
		query += " WHERE active"
	}
	query += " ORDER BY name ASC"

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query clients: %w", err)
	}
	defer rows.Close()

	var clients []client.Client
	for rows.Next() {
		var c client.Client
		err := rows.Scan(
			&c.ID,
			&c.Name,
			&c.DocumentNumber,
			&c.Email,
			&c.Phone,
			&c.Active,
			&c.CreatedAt,
			&c.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan client: %w", err)
		}
		clients = append(clients, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}

	return clients, nil
}
