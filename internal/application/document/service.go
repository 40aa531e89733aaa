package document

import (
	"context"
	"time"

	"github.com/google/uuid"

	coredocument "lexcaribe/ms_fiscal_core/internal/core/document"
	coreinvoice "lexcaribe/ms_fiscal_core/internal/core/invoice"
)

// Service renders downloadable invoice documents.
type Service struct {
	invoices coreinvoice.Repository
	renderer *coredocument.Renderer
	now      func() time.Time
}

// NewService creates a document service with the configured issuer block.
func NewService(invoices coreinvoice.Repository, renderer *coredocument.Renderer) *Service {
	return &Service{
		invoices: invoices,
		renderer: renderer,
		now:      time.Now,
	}
}

// Render loads an invoice with its client and produces the PDF document.
func (s *Service) Render(ctx context.Context, id uuid.UUID) (coredocument.Document, error) {
	inv, err := s.invoices.FindByID(ctx, id)
	if err != nil {
		return coredocument.Document{}, err
	}
	return s.renderer.Render(*inv, s.now())
}
