package ncf

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	appinvoice "lexcaribe/ms_fiscal_core/internal/application/invoice"
	corencf "lexcaribe/ms_fiscal_core/internal/core/ncf"
	httperrors "lexcaribe/ms_fiscal_core/internal/infrastructure/http"
)

// Handler exposes the NCF sequence operations: type catalogue, next-number
// preview and the administrative reset.
type Handler struct {
	service *appinvoice.Service
	log     *slog.Logger
}

// NewHandler creates a new NCF HTTP handler.
func NewHandler(service *appinvoice.Service, log *slog.Logger) *Handler {
	return &Handler{service: service, log: log}
}

// Types handles GET /api/v1/ncf/tipos.
func (h *Handler) Types(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, corencf.Types())
}

// Next handles GET /api/v1/ncf/siguiente?tipo=B01. The preview is computed
// on every call and never cached: a draft re-opened after another invoice
// was issued must show the new next number.
func (h *Handler) Next(w http.ResponseWriter, r *http.Request) {
	tipo := corencf.Type(r.URL.Query().Get("tipo"))
	if tipo == "" {
		httperrors.WriteError(w, http.StatusBadRequest, "Error de Validación", []string{"tipo es requerido"}, h.log)
		return
	}

	next, err := h.service.PeekNextNCF(r.Context(), tipo)
	if err != nil {
		h.handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"tipo": string(tipo),
		"ncf":  next,
	})
}

// History handles GET /api/v1/ncf/{ncf}/historial: the fiscal trail of one
// comprobante, oldest entry first.
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	entries, err := h.service.NCFHistory(r.Context(), chi.URLParam(r, "ncf"))
	if err != nil {
		h.handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"total": len(entries),
		"data":  entries,
	})
}

// ResetRequest is the body of the counter reset endpoint.
type ResetRequest struct {
	Confirmar bool `json:"confirmar"`
}

// Reset handles POST /api/v1/admin/ncf/reset. The operation wipes every
// sequence counter and refuses to run without {"confirmar": true}.
func (h *Handler) Reset(w http.ResponseWriter, r *http.Request) {
	var body ResetRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httperrors.WriteError(w, http.StatusBadRequest, "Error de Validación", []string{"El cuerpo de la petición no es válido"}, h.log)
		return
	}

	if err := h.service.ResetCounters(r.Context(), body.Confirmar); err != nil {
		h.handleError(w, err)
		return
	}

	h.log.Warn("NCF counters reset to zero")
	writeJSON(w, http.StatusOK, map[string]string{
		"mensaje": "Secuencias NCF reiniciadas",
	})
}

func (h *Handler) handleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, appinvoice.ErrValidation):
		httperrors.WriteError(w, http.StatusBadRequest, "Error de Validación", []string{err.Error()}, h.log)
	case errors.Is(err, appinvoice.ErrResetNotConfirmed):
		httperrors.WriteError(w, http.StatusBadRequest, "Confirmación requerida", []string{"El reinicio de secuencias requiere confirmar: true"}, h.log)
	case errors.Is(err, appinvoice.ErrTrailDisabled):
		httperrors.WriteError(w, http.StatusServiceUnavailable, "Auditoría deshabilitada", []string{"La auditoría fiscal está deshabilitada por configuración"}, h.log)
	default:
		h.log.Error("ncf handler error", "error", err)
		httperrors.WriteError(w, http.StatusInternalServerError, "Error Interno del Servidor", []string{"Ha ocurrido un error interno"}, h.log)
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
