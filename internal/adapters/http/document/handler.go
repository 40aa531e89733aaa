package document

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	appdocument "lexcaribe/ms_fiscal_core/internal/application/document"
	coreinvoice "lexcaribe/ms_fiscal_core/internal/core/invoice"
	httperrors "lexcaribe/ms_fiscal_core/internal/infrastructure/http"
)

// Handler serves rendered invoice documents.
type Handler struct {
	service *appdocument.Service
	log     *slog.Logger
}

// NewHandler creates a new document HTTP handler.
func NewHandler(service *appdocument.Service, log *slog.Logger) *Handler {
	return &Handler{service: service, log: log}
}

// Download handles GET /api/v1/facturas/{id}/pdf.
func (h *Handler) Download(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httperrors.WriteError(w, http.StatusBadRequest, "Error de Validación", []string{"El identificador de factura no es válido"}, h.log)
		return
	}

	doc, err := h.service.Render(r.Context(), id)
	if err != nil {
		h.handleError(w, err)
		return
	}

	w.Header().Set("Content-Type", doc.MIME)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.Name))
	w.Header().Set("Content-Length", strconv.Itoa(len(doc.Content)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(doc.Content)
}

func (h *Handler) handleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, coreinvoice.ErrNotFound):
		httperrors.WriteError(w, http.StatusNotFound, "Factura no encontrada", []string{"No existe una factura con ese identificador"}, h.log)
	default:
		h.log.Error("document handler error", "error", err)
		httperrors.WriteError(w, http.StatusInternalServerError, "Error Interno del Servidor", []string{"Ha ocurrido un error interno"}, h.log)
	}
}
