package report

import (
	"fmt"
	"strings"

	"lexcaribe/ms_fiscal_core/internal/core/invoice"
)

// Format608 renders the DGII 608 voided-NCF report for a period: one line
// per cancelled invoice. Returns ErrNoData when the period has no voided
// comprobantes.
func Format608(p Period, invoices []invoice.Invoice) (File, error) {
	var cancelled []invoice.Invoice
	for _, inv := range invoices {
		if inv.Status == invoice.StatusCancelled {
			cancelled = append(cancelled, inv)
		}
	}
	if len(cancelled) == 0 {
		return File{}, ErrNoData
	}

	lines := make([]string, 0, len(cancelled)+1)
	lines = append(lines, fmt.Sprintf("608|%s|%s|%d", InformanteRNC, p, len(cancelled)))

	for _, inv := range cancelled {
		fields := []string{
			string(inv.NCFType),
			padNCF(inv.NCF),
			inv.IssueDate.Format(dateLayout),
			string(ReasonDamagedPreprinted),
		}
		lines = append(lines, strings.Join(fields, "|"))
	}

	return File{
		Name:    fmt.Sprintf("608_%s.txt", p),
		MIME:    MIMEText,
		Content: []byte(strings.Join(lines, crlf)),
	}, nil
}
