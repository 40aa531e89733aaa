package report

import (
	"context"
	"fmt"

	coreinvoice "lexcaribe/ms_fiscal_core/internal/core/invoice"
	corereport "lexcaribe/ms_fiscal_core/internal/core/report"
)

// Service produces the DGII period exports. It is read-only over the
// invoice store; the formatters are pure transforms.
type Service struct {
	invoices coreinvoice.Repository
}

// NewService creates a report service over the invoice repository.
func NewService(invoices coreinvoice.Repository) *Service {
	return &Service{invoices: invoices}
}

// Generate607 builds the sales report for a period. Returns
// report.ErrNoData when the period has no qualifying invoices.
func (s *Service) Generate607(ctx context.Context, p corereport.Period) (corereport.File, error) {
	invoices, err := s.listPeriod(ctx, p)
	if err != nil {
		return corereport.File{}, err
	}
	return corereport.Format607(p, invoices)
}

// Generate608 builds the voided-NCF report for a period. Returns
// report.ErrNoData when the period has no cancelled invoices.
func (s *Service) Generate608(ctx context.Context, p corereport.Period) (corereport.File, error) {
	invoices, err := s.listPeriod(ctx, p)
	if err != nil {
		return corereport.File{}, err
	}
	return corereport.Format608(p, invoices)
}

func (s *Service) listPeriod(ctx context.Context, p corereport.Period) ([]coreinvoice.Invoice, error) {
	from, to := p.Bounds()
	invoices, err := s.invoices.ListByPeriod(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("list invoices for period %s: %w", p, err)
	}
	return invoices, nil
}
