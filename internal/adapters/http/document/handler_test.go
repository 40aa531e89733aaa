package document

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	appdocument "lexcaribe/ms_fiscal_core/internal/application/document"
	coreclient "lexcaribe/ms_fiscal_core/internal/core/client"
	coredocument "lexcaribe/ms_fiscal_core/internal/core/document"
	coreinvoice "lexcaribe/ms_fiscal_core/internal/core/invoice"
	"lexcaribe/ms_fiscal_core/internal/core/ncf"
	"lexcaribe/ms_fiscal_core/internal/testutil"
)

func newRouter(t *testing.T, invoices ...coreinvoice.Invoice) chi.Router {
	t.Helper()
	repo := testutil.NewMockInvoiceRepository()
	for _, inv := range invoices {
		if err := repo.Create(context.Background(), inv); err != nil {
			t.Fatalf("seed invoice: %v", err)
		}
	}

	renderer := coredocument.NewRenderer(coredocument.CompanyInfo{
		Name: "Lexcaribe SRL",
		RNC:  "131246801",
	})
	h := NewHandler(appdocument.NewService(repo, renderer), testutil.NewNullLogger())

	r := chi.NewRouter()
	r.Get("/facturas/{id}/pdf", h.Download)
	return r
}

func sampleInvoice() coreinvoice.Invoice {
	return coreinvoice.Invoice{
		ID:            uuid.New(),
		InvoiceNumber: "FAC-0042",
		NCFType:       ncf.TipoCreditoFiscal,
		NCF:           "B0100000042",
		Concept:       "Servicios de consultoría",
		Amount:        decimal.RequireFromString("1000.00"),
		TaxRate:       decimal.NewFromInt(18),
		TotalAmount:   decimal.RequireFromString("1180.00"),
		Currency:      coreinvoice.CurrencyDOP,
		ExchangeRate:  decimal.NewFromInt(1),
		Status:        coreinvoice.StatusPending,
		IssueDate:     time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		Client:        &coreclient.Client{ID: uuid.New(), Name: "Comercial Pérez SRL"},
	}
}

func TestHandler_Download(t *testing.T) {
	inv := sampleInvoice()
	router := newRouter(t, inv)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, testutil.CreateRequest(http.MethodGet, "/facturas/"+inv.ID.String()+"/pdf", nil, nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if got := w.Header().Get("Content-Type"); got != coredocument.MIMEPDF {
		t.Errorf("unexpected content type %q", got)
	}
	if got := w.Header().Get("Content-Disposition"); got != `attachment; filename="Factura_B0100000042_20260310.pdf"` {
		t.Errorf("unexpected disposition %q", got)
	}
	if !bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")) {
		t.Error("body is not a PDF")
	}
}

func TestHandler_Download_NotFound(t *testing.T) {
	router := newRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, testutil.CreateRequest(http.MethodGet, "/facturas/"+uuid.NewString()+"/pdf", nil, nil))

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	response := testutil.ReadErrorResponse(t, w)
	if response["message"] != "Factura no encontrada" {
		t.Errorf("expected message 'Factura no encontrada', got %v", response["message"])
	}
}

func TestHandler_Download_InvalidID(t *testing.T) {
	router := newRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, testutil.CreateRequest(http.MethodGet, "/facturas/no-es-uuid/pdf", nil, nil))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}
