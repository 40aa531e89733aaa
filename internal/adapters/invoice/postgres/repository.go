package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"lexcaribe/ms_fiscal_core/internal/core/client"
	"lexcaribe/ms_fiscal_core/internal/core/invoice"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository implements the invoice.Repository interface using PostgreSQL.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL invoice repository.
func NewRepository(pool *pgxpool.Pool) invoice.Repository {
	return &Repository{pool: pool}
}

const invoiceColumns = `
	i.id, i.invoice_number, i.client_id, i.ncf_type, i.ncf, i.rnc_cedula,
	i.concept, i.amount, i.tax_rate, i.isr_retention_rate, i.isr_retention_amount,
	i.total_amount, i.currency, i.exchange_rate, i.status,
	i.issue_date, i.due_date, i.paid_date, i.notes, i.created_at, i.updated_at,
	c.id, c.name, c.document_number, c.email, c.phone, c.active, c.created_at, c.updated_at
`

// Create persists a new invoice. The unique index on ncf makes a duplicated
// comprobante an insert error rather than a silent overwrite.
func (r *Repository) Create(ctx context.Context, inv invoice.Invoice) error {
	query := `
		INSERT INTO invoices (
			id, invoice_number, client_id, ncf_type, ncf, rnc_cedula,
			concept, amount, tax_rate, isr_retention_rate, isr_retention_amount,
			total_amount, currency, exchange_rate, status,
			issue_date, due_date, paid_date, notes
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19
		)
	`

	_, err := r.pool.Exec(ctx, query,
		inv.ID,
		inv.InvoiceNumber,
		inv.ClientID,
		inv.NCFType,
		inv.NCF,
		inv.RNCCedula,
		inv.Concept,
		inv.Amount,
		inv.TaxRate,
		inv.ISRRetentionRate,
		inv.ISRRetentionAmount,
		inv.TotalAmount,
		inv.Currency,
		inv.ExchangeRate,
		inv.Status,
		inv.IssueDate,
		inv.DueDate,
		inv.PaidDate,
		inv.Notes,
	)
	if err != nil {
		return fmt.Errorf("insert invoice: %w", err)
	}

	return nil
}

// Update persists lifecycle changes. The NCF and money columns stay as
// inserted; only status, dates and notes ever move.
func (r *Repository) Update(ctx context.Context, inv invoice.Invoice) error {
	query := `
		UPDATE invoices SET
			status = $2,
			due_date = $3,
			paid_date = $4,
			notes = $5,
			updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.pool.Exec(ctx, query,
		inv.ID,
		inv.Status,
		inv.DueDate,
		inv.PaidDate,
		inv.Notes,
	)
	if err != nil {
		return fmt.Errorf("update invoice: %w", err)
	}

	if result.RowsAffected() == 0 {
		return invoice.ErrNotFound
	}

	return nil
}

// FindByID retrieves an invoice with its client joined.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*invoice.Invoice, error) {
	query := `
		SELECT ` + invoiceColumns + `
		FROM invoices i
		LEFT JOIN clients c ON c.id = i.client_id
		WHERE i.id = $1
	`

	inv, err := scanInvoice(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, invoice.ErrNotFound
		}
		return nil, fmt.Errorf("query invoice: %w", err)
	}

	return inv, nil
}

// List retrieves invoices with their client joined, newest first.
func (r *Repository) List(ctx context.Context, params invoice.ListParams) ([]invoice.Invoice, error) {
	whereConditions := []string{}
	queryArgs := []interface{}{}
	argIndex := 1

	if params.Status != "" {
		whereConditions = append(whereConditions, fmt.Sprintf("i.status = $%d", argIndex))
		queryArgs = append(queryArgs, params.Status)
		argIndex++
	}

	if params.Search != "" {
		pattern := "%" + strings.TrimSpace(params.Search) + "%"
		whereConditions = append(whereConditions, fmt.Sprintf(
			"(i.invoice_number ILIKE $%d OR i.concept ILIKE $%d OR c.name ILIKE $%d)",
			argIndex, argIndex, argIndex,
		))
		queryArgs = append(queryArgs, pattern)
		argIndex++
	}

	whereClause := ""
	if len(whereConditions) > 0 {
		whereClause = "WHERE " + strings.Join(whereConditions, " AND ")
	}

	query := `
		SELECT ` + invoiceColumns + `
		FROM invoices i
		LEFT JOIN clients c ON c.id = i.client_id
		` + whereClause + `
		ORDER BY i.issue_date DESC, i.created_at DESC
	`

	if params.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIndex)
		queryArgs = append(queryArgs, params.Limit)
	}

	return r.queryInvoices(ctx, query, queryArgs...)
}

// ListByPeriod retrieves invoices with issue date in [from, to), ordered by
// issue date ascending.
func (r *Repository) ListByPeriod(ctx context.Context, from, to time.Time) ([]invoice.Invoice, error) {
	query := `
		SELECT ` + invoiceColumns + `
		FROM invoices i
		LEFT JOIN clients c ON c.id = i.client_id
		WHERE i.issue_date >= $1 AND i.issue_date < $2
		ORDER BY i.issue_date ASC, i.created_at ASC
	`

	return r.queryInvoices(ctx, query, from, to)
}

func (r *Repository) queryInvoices(ctx context.Context, query string, args ...interface{}) ([]invoice.Invoice, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query invoices: %w", err)
	}
	defer rows.Close()

	var invoices []invoice.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		invoices = append(invoices, *inv)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}

	return invoices, nil
}

func scanInvoice(row pgx.Row) (*invoice.Invoice, error) {
	var inv invoice.Invoice
	var cli client.Client
	var clientID *uuid.UUID
	var clientName, clientDocument, clientEmail, clientPhone *string
	var clientActive *bool
	var clientCreatedAt, clientUpdatedAt *time.Time

	err := row.Scan(
		&inv.ID,
		&inv.InvoiceNumber,
		&inv.ClientID,
		&inv.NCFType,
		&inv.NCF,
		&inv.RNCCedula,
		&inv.Concept,
		&inv.Amount,
		&inv.TaxRate,
		&inv.ISRRetentionRate,
		&inv.ISRRetentionAmount,
		&inv.TotalAmount,
		&inv.Currency,
		&inv.ExchangeRate,
		&inv.Status,
		&inv.IssueDate,
		&inv.DueDate,
		&inv.PaidDate,
		&inv.Notes,
		&inv.CreatedAt,
		&inv.UpdatedAt,
		&clientID,
		&clientName,
		&clientDocument,
		&clientEmail,
		&clientPhone,
		&clientActive,
		&clientCreatedAt,
		&clientUpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	// The join is LEFT so an invoice survives its client row going missing.
	if clientID != nil {
		cli.ID = *clientID
		if clientName != nil {
			cli.Name = *clientName
		}
		if clientDocument != nil {
			cli.DocumentNumber = *clientDocument
		}
		if clientEmail != nil {
			cli.Email = *clientEmail
		}
		if clientPhone != nil {
			cli.Phone = *clientPhone
		}
		if clientActive != nil {
			cli.Active = *clientActive
		}
		if clientCreatedAt != nil {
			cli.CreatedAt = *clientCreatedAt
		}
		if clientUpdatedAt != nil {
			cli.UpdatedAt = *clientUpdatedAt
		}
		inv.Client = &cli
	}

	return &inv, nil
}
