package invoice

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	appinvoice "lexcaribe/ms_fiscal_core/internal/application/invoice"
	coreinvoice "lexcaribe/ms_fiscal_core/internal/core/invoice"
	httperrors "lexcaribe/ms_fiscal_core/internal/infrastructure/http"
)

// Handler bridges HTTP traffic with the invoice application service.
type Handler struct {
	service *appinvoice.Service
	log     *slog.Logger
}

// NewHandler creates a new invoice HTTP handler.
func NewHandler(service *appinvoice.Service, log *slog.Logger) *Handler {
	return &Handler{service: service, log: log}
}

// invoiceResponse decorates an invoice with its derived display status so
// clients never have to compute "vencida" themselves.
type invoiceResponse struct {
	coreinvoice.Invoice
	DisplayStatus coreinvoice.Status `json:"displayStatus"`
}

func (h *Handler) toResponse(inv coreinvoice.Invoice) invoiceResponse {
	return invoiceResponse{
		Invoice:       inv,
		DisplayStatus: inv.DisplayStatus(nowUTC()),
	}
}

// Create handles POST /api/v1/facturas.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var in appinvoice.CreateInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httperrors.WriteError(w, http.StatusBadRequest, "Error de Validación", []string{"El cuerpo de la petición no es válido"}, h.log)
		return
	}

	inv, err := h.service.Create(r.Context(), in)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, h.toResponse(*inv))
}

// List handles GET /api/v1/facturas with optional status, buscar and
// limit query parameters.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	params := coreinvoice.ListParams{
		Status: coreinvoice.Status(r.URL.Query().Get("status")),
		Search: r.URL.Query().Get("buscar"),
	}

	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			httperrors.WriteError(w, http.StatusBadRequest, "Error de Validación", []string{"limit debe ser un entero no negativo"}, h.log)
			return
		}
		params.Limit = limit
	}

	invoices, err := h.service.List(r.Context(), params)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	out := make([]invoiceResponse, 0, len(invoices))
	for _, inv := range invoices {
		out = append(out, h.toResponse(inv))
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"total": len(out),
		"data":  out,
	})
}

// Get handles GET /api/v1/facturas/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	inv, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, h.toResponse(*inv))
}

// MarkPaid handles POST /api/v1/facturas/{id}/pago.
func (h *Handler) MarkPaid(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	inv, err := h.service.MarkPaid(r.Context(), id)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, h.toResponse(*inv))
}

// Cancel handles POST /api/v1/facturas/{id}/anulacion.
func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	inv, err := h.service.Cancel(r.Context(), id)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, h.toResponse(*inv))
}

func (h *Handler) parseID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	raw := chi.URLParam(r, "id")
	id, err := uuid.Parse(raw)
	if err != nil {
		httperrors.WriteError(w, http.StatusBadRequest, "Error de Validación", []string{"El identificador de factura no es válido"}, h.log)
		return uuid.Nil, false
	}
	return id, true
}

func (h *Handler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, appinvoice.ErrValidation):
		httperrors.WriteError(w, http.StatusBadRequest, "Error de Validación", []string{err.Error()}, h.log)
	case errors.Is(err, coreinvoice.ErrNotFound):
		httperrors.WriteError(w, http.StatusNotFound, "Factura no encontrada", []string{"No existe una factura con ese identificador"}, h.log)
	case errors.Is(err, coreinvoice.ErrInvalidTransition):
		httperrors.WriteError(w, http.StatusConflict, "Transición inválida", []string{err.Error()}, h.log)
	default:
		h.log.Error("invoice handler error", "path", r.URL.Path, "error", err)
		httperrors.WriteError(w, http.StatusInternalServerError, "Error Interno del Servidor", []string{"Ha ocurrido un error interno"}, h.log)
	}
}
