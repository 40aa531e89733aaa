package invoice

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ListParams narrows List results.
type ListParams struct {
	// Status filters by stored status when non-empty.
	Status Status

	// Search matches against invoice number, concept and client name.
	Search string

	// Limit caps the number of records returned (0 means no cap).
	Limit int
}

// Repository defines the persistence contract for invoices.
type Repository interface {
	// Create persists a new invoice. Insert failures surface verbatim; the
	// caller must not have advanced the NCF counter yet.
	Create(ctx context.Context, inv Invoice) error

	// Update persists lifecycle changes (status, paid date, notes). The NCF
	// and money fields of an existing invoice are immutable.
	Update(ctx context.Context, inv Invoice) error

	// FindByID retrieves an invoice with its client joined.
	// Returns ErrNotFound if it does not exist.
	FindByID(ctx context.Context, id uuid.UUID) (*Invoice, error)

	// List retrieves invoices with their client joined, newest first.
	List(ctx context.Context, params ListParams) ([]Invoice, error)

	// ListByPeriod retrieves invoices with issue date in [from, to), ordered
	// by issue date ascending. Used by the DGII period reports.
	ListByPeriod(ctx context.Context, from, to time.Time) ([]Invoice, error)
}
