package client

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the persistence contract for clients.
type Repository interface {
	// Create persists a new client.
	Create(ctx context.Context, c Client) error

	// FindByID retrieves a client. Returns ErrNotFound if it does not exist.
	FindByID(ctx context.Context, id uuid.UUID) (*Client, error)

	// List retrieves clients by name order. When activeOnly is set, inactive
	// clients are excluded.
	List(ctx context.Context, activeOnly bool) ([]Client, error)
}
