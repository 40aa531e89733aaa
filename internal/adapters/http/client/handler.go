package client

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	appclient "lexcaribe/ms_fiscal_core/internal/application/client"
	coreclient "lexcaribe/ms_fiscal_core/internal/core/client"
	httperrors "lexcaribe/ms_fiscal_core/internal/infrastructure/http"
)

// Handler bridges HTTP traffic with the client application service.
type Handler struct {
	service *appclient.Service
	log     *slog.Logger
}

// NewHandler creates a new client HTTP handler.
func NewHandler(service *appclient.Service, log *slog.Logger) *Handler {
	return &Handler{service: service, log: log}
}

// Create handles POST /api/v1/clientes.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var in appclient.CreateInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httperrors.WriteError(w, http.StatusBadRequest, "Error de Validación", []string{"El cuerpo de la petición no es válido"}, h.log)
		return
	}

	c, err := h.service.Create(r.Context(), in)
	if err != nil {
		h.handleError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, c)
}

// Get handles GET /api/v1/clientes/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httperrors.WriteError(w, http.StatusBadRequest, "Error de Validación", []string{"El identificador de cliente no es válido"}, h.log)
		return
	}

	c, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, c)
}

// List handles GET /api/v1/clientes. Pass activos=true to exclude
// inactive clients.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("activos") == "true"

	clients, err := h.service.List(r.Context(), activeOnly)
	if err != nil {
		h.handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"total": len(clients),
		"data":  clients,
	})
}

func (h *Handler) handleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, appclient.ErrValidation):
		httperrors.WriteError(w, http.StatusBadRequest, "Error de Validación", []string{err.Error()}, h.log)
	case errors.Is(err, coreclient.ErrNotFound):
		httperrors.WriteError(w, http.StatusNotFound, "Cliente no encontrado", []string{"No existe un cliente con ese identificador"}, h.log)
	default:
		h.log.Error("client handler error", "error", err)
		httperrors.WriteError(w, http.StatusInternalServerError, "Error Interno del Servidor", []string{"Ha ocurrido un error interno"}, h.log)
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
