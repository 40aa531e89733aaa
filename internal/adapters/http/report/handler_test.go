package report

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	appreport "lexcaribe/ms_fiscal_core/internal/application/report"
	coreinvoice "lexcaribe/ms_fiscal_core/internal/core/invoice"
	"lexcaribe/ms_fiscal_core/internal/core/ncf"
	corereport "lexcaribe/ms_fiscal_core/internal/core/report"
	"lexcaribe/ms_fiscal_core/internal/testutil"
)

func newHandler(t *testing.T, invoices ...coreinvoice.Invoice) *Handler {
	t.Helper()
	repo := testutil.NewMockInvoiceRepository()
	for _, inv := range invoices {
		if err := repo.Create(context.Background(), inv); err != nil {
			t.Fatalf("seed invoice: %v", err)
		}
	}
	return NewHandler(appreport.NewService(repo), testutil.NewNullLogger())
}

func marchInvoice(status coreinvoice.Status) coreinvoice.Invoice {
	return coreinvoice.Invoice{
		ID:            uuid.New(),
		InvoiceNumber: "FAC-0001",
		NCFType:       ncf.TipoCreditoFiscal,
		NCF:           "B0100000001",
		RNCCedula:     "131246801",
		Concept:       "Servicios",
		Amount:        decimal.RequireFromString("1000.00"),
		TaxRate:       decimal.NewFromInt(18),
		TotalAmount:   decimal.RequireFromString("1180.00"),
		Currency:      coreinvoice.CurrencyDOP,
		ExchangeRate:  decimal.NewFromInt(1),
		Status:        status,
		IssueDate:     time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
	}
}

func TestHandler_Download607(t *testing.T) {
	h := newHandler(t, marchInvoice(coreinvoice.StatusPaid))

	w := httptest.NewRecorder()
	h.Download607(w, testutil.CreateRequest(http.MethodGet, "/reportes/607?anio=2026&mes=3", nil, nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if got := w.Header().Get("Content-Disposition"); got != `attachment; filename="607_202603.txt"` {
		t.Errorf("unexpected disposition %q", got)
	}
	if got := w.Header().Get("Content-Type"); got != corereport.MIMEText {
		t.Errorf("unexpected content type %q", got)
	}
	if !strings.HasPrefix(w.Body.String(), "607|") {
		t.Errorf("body does not start with the 607 header: %q", w.Body.String())
	}
}

func TestHandler_Download607_NoData(t *testing.T) {
	h := newHandler(t)

	w := httptest.NewRecorder()
	h.Download607(w, testutil.CreateRequest(http.MethodGet, "/reportes/607?anio=2026&mes=3", nil, nil))

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	response := testutil.ReadErrorResponse(t, w)
	if response["message"] != "Sin datos" {
		t.Errorf("expected message 'Sin datos', got %v", response["message"])
	}
}

func TestHandler_Download607_Validation(t *testing.T) {
	h := newHandler(t)

	tests := []struct {
		name string
		path string
	}{
		{"missing params", "/reportes/607"},
		{"non numeric", "/reportes/607?anio=abc&mes=3"},
		{"month out of range", "/reportes/607?anio=2026&mes=13"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			h.Download607(w, testutil.CreateRequest(http.MethodGet, tt.path, nil, nil))

			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", w.Code)
			}
		})
	}
}

func TestHandler_Download608(t *testing.T) {
	h := newHandler(t, marchInvoice(coreinvoice.StatusCancelled))

	w := httptest.NewRecorder()
	h.Download608(w, testutil.CreateRequest(http.MethodGet, "/reportes/608?anio=2026&mes=3", nil, nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if got := w.Header().Get("Content-Disposition"); got != `attachment; filename="608_202603.txt"` {
		t.Errorf("unexpected disposition %q", got)
	}
	if !strings.HasPrefix(w.Body.String(), "608|") {
		t.Errorf("body does not start with the 608 header: %q", w.Body.String())
	}
}

func TestHandler_Download608_NoCancelled(t *testing.T) {
	h := newHandler(t, marchInvoice(coreinvoice.StatusPaid))

	w := httptest.NewRecorder()
	h.Download608(w, testutil.CreateRequest(http.MethodGet, "/reportes/608?anio=2026&mes=3", nil, nil))

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}
