package report

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	appreport "lexcaribe/ms_fiscal_core/internal/application/report"
	corereport "lexcaribe/ms_fiscal_core/internal/core/report"
	httperrors "lexcaribe/ms_fiscal_core/internal/infrastructure/http"
)

// Handler serves the DGII period exports as file downloads.
type Handler struct {
	service *appreport.Service
	log     *slog.Logger
}

// NewHandler creates a new report HTTP handler.
func NewHandler(service *appreport.Service, log *slog.Logger) *Handler {
	return &Handler{service: service, log: log}
}

// Download607 handles GET /api/v1/reportes/607?anio=YYYY&mes=MM.
func (h *Handler) Download607(w http.ResponseWriter, r *http.Request) {
	period, ok := h.parsePeriod(w, r)
	if !ok {
		return
	}

	file, err := h.service.Generate607(r.Context(), period)
	if err != nil {
		h.handleError(w, err, "No hay facturas para el período seleccionado")
		return
	}

	h.writeFile(w, file)
}

// Download608 handles GET /api/v1/reportes/608?anio=YYYY&mes=MM.
func (h *Handler) Download608(w http.ResponseWriter, r *http.Request) {
	period, ok := h.parsePeriod(w, r)
	if !ok {
		return
	}

	file, err := h.service.Generate608(r.Context(), period)
	if err != nil {
		h.handleError(w, err, "No hay comprobantes anulados para el período seleccionado")
		return
	}

	h.writeFile(w, file)
}

func (h *Handler) parsePeriod(w http.ResponseWriter, r *http.Request) (corereport.Period, bool) {
	year, errYear := strconv.Atoi(r.URL.Query().Get("anio"))
	month, errMonth := strconv.Atoi(r.URL.Query().Get("mes"))
	if errYear != nil || errMonth != nil {
		httperrors.WriteError(w, http.StatusBadRequest, "Error de Validación", []string{"anio y mes son requeridos y deben ser numéricos"}, h.log)
		return corereport.Period{}, false
	}

	period, err := corereport.NewPeriod(year, month)
	if err != nil {
		httperrors.WriteError(w, http.StatusBadRequest, "Error de Validación", []string{err.Error()}, h.log)
		return corereport.Period{}, false
	}

	return period, true
}

func (h *Handler) writeFile(w http.ResponseWriter, file corereport.File) {
	w.Header().Set("Content-Type", file.MIME)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Name))
	w.Header().Set("Content-Length", strconv.Itoa(len(file.Content)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(file.Content)
}

func (h *Handler) handleError(w http.ResponseWriter, err error, emptyMessage string) {
	switch {
	case errors.Is(err, corereport.ErrNoData):
		httperrors.WriteError(w, http.StatusNotFound, "Sin datos", []string{emptyMessage}, h.log)
	default:
		h.log.Error("report handler error", "error", err)
		httperrors.WriteError(w, http.StatusInternalServerError, "Error Interno del Servidor", []string{"Ha ocurrido un error interno"}, h.log)
	}
}
