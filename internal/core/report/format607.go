package report

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"lexcaribe/ms_fiscal_core/internal/core/invoice"
	"lexcaribe/ms_fiscal_core/internal/core/tax"
)

const (
	crlf       = "\r\n"
	zero12     = "000000000000"
	ncfWidth   = 19
	rncWidth   = 11
	dateLayout = "20060102"
)

// Format607 renders the DGII 607 sales report for a period: one detail line
// per non-cancelled invoice, pipe-delimited, CRLF-terminated lines, exactly
// the byte layout the DGII bulk-upload tooling parses. Returns ErrNoData
// when no invoice qualifies.
func Format607(p Period, invoices []invoice.Invoice) (File, error) {
	var qualifying []invoice.Invoice
	for _, inv := range invoices {
		if inv.Status != invoice.StatusCancelled {
			qualifying = append(qualifying, inv)
		}
	}
	if len(qualifying) == 0 {
		return File{}, ErrNoData
	}

	lines := make([]string, 0, len(qualifying)+1)
	lines = append(lines, fmt.Sprintf("607|%s|%s|%d", InformanteRNC, p, len(qualifying)))

	for _, inv := range qualifying {
		lines = append(lines, detail607(inv))
	}

	return File{
		Name:    fmt.Sprintf("607_%s.txt", p),
		MIME:    MIMEText,
		Content: []byte(strings.Join(lines, crlf)),
	}, nil
}

func detail607(inv invoice.Invoice) string {
	// 01 = cash, 02 = credit
	formaPago := "02"
	if inv.Status == invoice.StatusPaid {
		formaPago = "01"
	}

	fields := []string{
		formatRNC(inv.BuyerDocument()),
		string(inv.NCFType),
		padNCF(inv.NCF),
		padNCF(""), // NCF modificado: credit-note linkage not modeled
		"01",       // tipo de ingreso: operaciones
		inv.IssueDate.Format(dateLayout),
		"", // fecha retención
		cents12(inv.Amount),
		cents12(inv.ITBIS()),
		zero12, // ITBIS retenido por terceros
		zero12, // ITBIS sujeto a proporcionalidad
		zero12, // ITBIS llevado al costo
		zero12, // ITBIS por adelantar
		zero12, // ITBIS percibido
		"",     // tipo de retención ISR
		cents12(inv.ISRRetentionAmount),
		zero12, // ISR percibido
		zero12, // impuesto selectivo al consumo
		zero12, // otros impuestos/tasas
		zero12, // monto propina legal
		formaPago,
	}
	return strings.Join(fields, "|")
}

// formatRNC normalizes a taxpayer ID to digits and left-pads it to 11
// positions. An absent ID stays an empty field.
func formatRNC(id string) string {
	digits := invoice.NormalizeTaxID(id)
	if digits == "" {
		return ""
	}
	return fmt.Sprintf("%0*s", rncWidth, digits)
}

// padNCF right-pads an NCF to the fixed 19-character field width.
func padNCF(ncfCode string) string {
	return fmt.Sprintf("%-*s", ncfWidth, ncfCode)
}

// cents12 renders an amount as 12 zero-padded digits of integer cents.
func cents12(amount decimal.Decimal) string {
	return fmt.Sprintf("%012d", tax.Cents(amount))
}
