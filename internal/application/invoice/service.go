package invoice

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"lexcaribe/ms_fiscal_core/internal/core/audit"
	"lexcaribe/ms_fiscal_core/internal/core/client"
	coreinvoice "lexcaribe/ms_fiscal_core/internal/core/invoice"
	"lexcaribe/ms_fiscal_core/internal/core/ncf"
	"lexcaribe/ms_fiscal_core/internal/core/tax"
	ctxutil "lexcaribe/ms_fiscal_core/internal/infrastructure/context"
)

var (
	// ErrValidation wraps all input rejections. Validation failures are
	// reported to the caller and never partially apply state.
	ErrValidation = errors.New("validation error")

	// ErrResetNotConfirmed guards the destructive counter reset.
	ErrResetNotConfirmed = errors.New("counter reset requires explicit confirmation")

	// ErrTrailDisabled is returned by trail queries when the fiscal audit
	// trail is not configured.
	ErrTrailDisabled = errors.New("fiscal trail is disabled")
)

// Service orchestrates invoice use cases: creation with NCF issuance,
// lifecycle transitions and the sequence administration operations.
type Service struct {
	invoices  coreinvoice.Repository
	clients   client.Repository
	sequencer *ncf.Sequencer
	auditRepo audit.Repository // optional: nil disables the fiscal trail
	now       func() time.Time
}

// NewService creates an invoice service. auditRepo may be nil when the
// fiscal trail is not configured.
func NewService(invoices coreinvoice.Repository, clients client.Repository, sequencer *ncf.Sequencer, auditRepo audit.Repository) *Service {
	return &Service{
		invoices:  invoices,
		clients:   clients,
		sequencer: sequencer,
		auditRepo: auditRepo,
		now:       time.Now,
	}
}

// CreateInput carries the caller-provided fields of a new invoice. Derived
// money fields are always computed server-side.
type CreateInput struct {
	InvoiceNumber    string          `json:"invoiceNumber"`
	ClientID         uuid.UUID       `json:"clientId"`
	NCFType          ncf.Type        `json:"ncfType"`
	RNCCedula        string          `json:"rncCedula"`
	Concept          string          `json:"concept"`
	Amount           decimal.Decimal `json:"amount"`
	TaxRate          decimal.Decimal `json:"taxRate"`
	ISRRetentionRate decimal.Decimal `json:"isrRetentionRate"`
	Currency         coreinvoice.Currency `json:"currency"`
	ExchangeRate     decimal.Decimal `json:"exchangeRate"`
	IssueDate        *time.Time      `json:"issueDate,omitempty"`
	DueDate          *time.Time      `json:"dueDate,omitempty"`
	Notes            string          `json:"notes,omitempty"`
}

// Create validates the input, computes the tax breakdown, issues the next
// NCF for the type and persists the invoice. The counter advances only
// after the insert succeeds; a failed insert leaves it untouched so no
// sequence gap or duplicate can occur.
func (s *Service) Create(ctx context.Context, in CreateInput) (*coreinvoice.Invoice, error) {
	if in.InvoiceNumber == "" {
		return nil, fmt.Errorf("%w: invoice number is required", ErrValidation)
	}
	if in.Concept == "" {
		return nil, fmt.Errorf("%w: concept is required", ErrValidation)
	}
	if in.ClientID == uuid.Nil {
		return nil, fmt.Errorf("%w: client is required", ErrValidation)
	}
	if !ncf.IsValid(in.NCFType) {
		return nil, fmt.Errorf("%w: unknown ncf type %q", ErrValidation, in.NCFType)
	}

	if in.Currency == "" {
		in.Currency = coreinvoice.CurrencyDOP
	}
	if !in.Currency.Valid() {
		return nil, fmt.Errorf("%w: unsupported currency %q", ErrValidation, in.Currency)
	}

	one := decimal.NewFromInt(1)
	if in.ExchangeRate.IsZero() {
		in.ExchangeRate = one
	}
	if in.Currency == coreinvoice.CurrencyUSD && in.ExchangeRate.LessThan(one) {
		return nil, fmt.Errorf("%w: exchange rate must be at least 1", ErrValidation)
	}

	breakdown, err := tax.Compute(in.Amount, in.TaxRate, in.ISRRetentionRate)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidation, err)
	}

	buyer, err := s.clients.FindByID(ctx, in.ClientID)
	if err != nil {
		if errors.Is(err, client.ErrNotFound) {
			return nil, fmt.Errorf("%w: client does not exist", ErrValidation)
		}
		return nil, fmt.Errorf("find client: %w", err)
	}

	now := s.now().UTC()
	issueDate := now.Truncate(24 * time.Hour)
	if in.IssueDate != nil {
		issueDate = *in.IssueDate
	}

	inv := coreinvoice.Invoice{
		ID:                 uuid.New(),
		InvoiceNumber:      in.InvoiceNumber,
		ClientID:           in.ClientID,
		NCFType:            in.NCFType,
		RNCCedula:          coreinvoice.NormalizeTaxID(in.RNCCedula),
		Concept:            in.Concept,
		Amount:             in.Amount.Round(2),
		TaxRate:            in.TaxRate,
		ISRRetentionRate:   in.ISRRetentionRate,
		ISRRetentionAmount: breakdown.ISRRetentionAmount,
		TotalAmount:        breakdown.TotalAmount,
		Currency:           in.Currency,
		ExchangeRate:       in.ExchangeRate,
		Status:             coreinvoice.StatusPending,
		IssueDate:          issueDate,
		DueDate:            in.DueDate,
		Notes:              in.Notes,
		Client:             buyer,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	assigned, err := s.sequencer.Issue(ctx, in.NCFType, func(ncfCode string) error {
		inv.NCF = ncfCode
		return s.invoices.Create(ctx, inv)
	})
	if err != nil {
		return nil, err
	}
	inv.NCF = assigned

	s.record(ctx, audit.Entry{
		Operation: audit.OpNCFIssued,
		NCFType:   string(inv.NCFType),
		NCF:       inv.NCF,
		InvoiceID: &inv.ID,
		Detail:    fmt.Sprintf("invoice %s total %s %s", inv.InvoiceNumber, inv.Currency, inv.TotalAmount.StringFixed(2)),
	})

	return &inv, nil
}

// MarkPaid transitions a pending invoice to paid and stamps the payment
// date.
func (s *Service) MarkPaid(ctx context.Context, id uuid.UUID) (*coreinvoice.Invoice, error) {
	inv, err := s.invoices.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := inv.MarkPaid(s.now().UTC()); err != nil {
		return nil, err
	}
	inv.UpdatedAt = s.now().UTC()

	if err := s.invoices.Update(ctx, *inv); err != nil {
		return nil, fmt.Errorf("update invoice: %w", err)
	}
	return inv, nil
}

// Cancel voids an invoice. The NCF stays on the record and the void is
// appended to the fiscal trail; the comprobante will appear on the 608
// report of its period.
func (s *Service) Cancel(ctx context.Context, id uuid.UUID) (*coreinvoice.Invoice, error) {
	inv, err := s.invoices.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := inv.Cancel(); err != nil {
		return nil, err
	}
	inv.UpdatedAt = s.now().UTC()

	if err := s.invoices.Update(ctx, *inv); err != nil {
		return nil, fmt.Errorf("update invoice: %w", err)
	}

	s.record(ctx, audit.Entry{
		Operation: audit.OpNCFVoided,
		NCFType:   string(inv.NCFType),
		NCF:       inv.NCF,
		InvoiceID: &inv.ID,
		Detail:    "tipo anulación 02: deterioro de factura pre-impresa",
	})

	return inv, nil
}

// Get retrieves a single invoice.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*coreinvoice.Invoice, error) {
	return s.invoices.FindByID(ctx, id)
}

// List retrieves invoices, newest first.
func (s *Service) List(ctx context.Context, params coreinvoice.ListParams) ([]coreinvoice.Invoice, error) {
	if params.Status != "" && !params.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, params.Status)
	}
	return s.invoices.List(ctx, params)
}

// PeekNextNCF previews the NCF the next invoice of a type would receive.
// Pure read: drafts must re-peek every time they open, the preview is never
// cached.
func (s *Service) PeekNextNCF(ctx context.Context, t ncf.Type) (string, error) {
	if !ncf.IsValid(t) {
		return "", fmt.Errorf("%w: unknown ncf type %q", ErrValidation, t)
	}
	return s.sequencer.PeekNext(ctx, t)
}

// NCFHistory returns the fiscal trail of a comprobante, oldest first.
func (s *Service) NCFHistory(ctx context.Context, ncfCode string) ([]audit.Entry, error) {
	if s.auditRepo == nil {
		return nil, ErrTrailDisabled
	}
	if ncfCode == "" {
		return nil, fmt.Errorf("%w: ncf is required", ErrValidation)
	}
	return s.auditRepo.FindByNCF(ctx, ncfCode)
}

// ResetCounters sets every NCF counter back to zero. Irreversible; refuses
// to run without the caller's explicit confirmation.
func (s *Service) ResetCounters(ctx context.Context, confirmed bool) error {
	if !confirmed {
		return ErrResetNotConfirmed
	}
	if err := s.sequencer.Reset(ctx); err != nil {
		return err
	}

	s.record(ctx, audit.Entry{
		Operation: audit.OpCountersReset,
		Detail:    "all ncf counters reset to zero",
	})
	return nil
}

// record appends to the fiscal trail. Trail failures are not allowed to
// fail the fiscal operation itself.
func (s *Service) record(ctx context.Context, entry audit.Entry) {
	if s.auditRepo == nil {
		return
	}
	entry.CorrelationID = ctxutil.GetCorrelationID(ctx)
	entry.CreatedAt = s.now().UTC()
	_ = s.auditRepo.Save(ctx, entry)
}
