package invoice

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"lexcaribe/ms_fiscal_core/internal/core/client"
	"lexcaribe/ms_fiscal_core/internal/core/ncf"
	"lexcaribe/ms_fiscal_core/internal/core/tax"
)

var (
	// ErrNotFound is returned when an invoice does not exist.
	ErrNotFound = errors.New("invoice not found")

	// ErrInvalidTransition is returned for lifecycle moves the DGII rules
	// forbid, including any transition out of cancelled.
	ErrInvalidTransition = errors.New("invalid invoice status transition")
)

// Status is the persisted lifecycle state of an invoice.
type Status string

const (
	StatusPending   Status = "pending"
	StatusPaid      Status = "paid"
	StatusOverdue   Status = "overdue"
	StatusCancelled Status = "cancelled"
)

// Valid reports whether s is a known status value.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusPaid, StatusOverdue, StatusCancelled:
		return true
	}
	return false
}

// Currency is the invoice currency code.
type Currency string

const (
	CurrencyDOP Currency = "DOP"
	CurrencyUSD Currency = "USD"
)

// Valid reports whether c is a supported currency.
func (c Currency) Valid() bool {
	return c == CurrencyDOP || c == CurrencyUSD
}

// Invoice is the central fiscal entity. Money fields use decimal arithmetic
// and keep two decimal places; TotalAmount and ISRRetentionAmount are
// computed once at creation and persisted.
type Invoice struct {
	ID            uuid.UUID `json:"id"`
	InvoiceNumber string    `json:"invoiceNumber"`
	ClientID      uuid.UUID `json:"clientId"`

	NCFType   ncf.Type `json:"ncfType"`
	NCF       string   `json:"ncf"`
	RNCCedula string   `json:"rncCedula"`

	Concept            string          `json:"concept"`
	Amount             decimal.Decimal `json:"amount"`
	TaxRate            decimal.Decimal `json:"taxRate"`
	ISRRetentionRate   decimal.Decimal `json:"isrRetentionRate"`
	ISRRetentionAmount decimal.Decimal `json:"isrRetentionAmount"`
	TotalAmount        decimal.Decimal `json:"totalAmount"`
	Currency           Currency        `json:"currency"`
	ExchangeRate       decimal.Decimal `json:"exchangeRate"`

	Status    Status     `json:"status"`
	IssueDate time.Time  `json:"issueDate"`
	DueDate   *time.Time `json:"dueDate,omitempty"`
	PaidDate  *time.Time `json:"paidDate,omitempty"`
	Notes     string     `json:"notes,omitempty"`

	// Client carries the buyer's name and document when the repository joins
	// the clients relation.
	Client *client.Client `json:"client,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ITBIS returns the ITBIS portion of the invoice, derived from the persisted
// base amount and rate.
func (i *Invoice) ITBIS() decimal.Decimal {
	return tax.ITBIS(i.Amount, i.TaxRate)
}

// BuyerDocument returns the buyer's taxpayer ID, preferring the value
// captured on the invoice over the client record.
func (i *Invoice) BuyerDocument() string {
	if i.RNCCedula != "" {
		return i.RNCCedula
	}
	if i.Client != nil {
		return i.Client.DocumentNumber
	}
	return ""
}

// DisplayStatus derives the read-time label. "Vencida" (overdue) is never a
// stored transition in this core: a pending invoice past its due date is
// reported as overdue without mutating the record.
func (i *Invoice) DisplayStatus(now time.Time) Status {
	if i.Status == StatusPending && i.DueDate != nil && i.DueDate.Before(now) {
		return StatusOverdue
	}
	return i.Status
}

// MarkPaid transitions pending → paid and stamps the payment date.
func (i *Invoice) MarkPaid(now time.Time) error {
	if i.Status != StatusPending {
		return ErrInvalidTransition
	}
	i.Status = StatusPaid
	paid := now
	i.PaidDate = &paid
	return nil
}

// Cancel voids the invoice. The NCF is kept: the DGII requires a permanent
// record of every voided comprobante, so cancellation is a status change,
// never a deletion. Nothing leaves cancelled.
func (i *Invoice) Cancel() error {
	if i.Status == StatusCancelled {
		return ErrInvalidTransition
	}
	i.Status = StatusCancelled
	return nil
}

// NormalizeTaxID strips everything but digits from an RNC or cédula.
func NormalizeTaxID(id string) string {
	var b strings.Builder
	for _, r := range id {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
