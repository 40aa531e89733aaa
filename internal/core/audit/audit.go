package audit

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Fiscal trail operations.
const (
	OpNCFIssued     = "ncf_issued"
	OpNCFVoided     = "ncf_voided"
	OpCountersReset = "counters_reset"
)

// Entry records a fiscal-sequence event. The DGII expects issued and voided
// comprobantes to leave a permanent record, so issuance, cancellation and
// counter resets are all appended here and never deleted.
type Entry struct {
	ID            int64      `json:"id"`
	CorrelationID string     `json:"correlationId,omitempty"`
	Operation     string     `json:"operation"`
	NCFType       string     `json:"ncfType,omitempty"`
	NCF           string     `json:"ncf,omitempty"`
	InvoiceID     *uuid.UUID `json:"invoiceId,omitempty"`
	Detail        string     `json:"detail,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
}

// Repository defines the contract for persisting and retrieving the fiscal
// audit trail.
type Repository interface {
	// Save appends an entry to the trail.
	Save(ctx context.Context, entry Entry) error

	// FindByNCF retrieves the history of a comprobante, oldest first.
	FindByNCF(ctx context.Context, ncfCode string) ([]Entry, error)
}
