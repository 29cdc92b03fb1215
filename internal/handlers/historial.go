package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/facturapp/facturacion-api/internal/domain"
)

// HistorialHandler serves /api/historial.
type HistorialHandler struct {
	service domain.HistorialService
	logger  *zap.Logger
}

func NewHistorialHandler(service domain.HistorialService, logger *zap.Logger) *HistorialHandler {
	return &HistorialHandler{service: service, logger: logger}
}

func (h *HistorialHandler) handleError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, domain.ErrHistorialNotFound):
		respondFail(w, http.StatusNotFound, "Registro de historial no encontrado")
	case errors.Is(err, domain.ErrFacturaNotFound):
		respondFail(w, http.StatusNotFound, "Factura no encontrada")
	case errors.Is(err, domain.ErrInvalidInput):
		respondFail(w, http.StatusBadRequest, "Los campos idFactura, idUsuario, estadoAnterior y estadoNuevo son obligatorios")
	default:
		h.logger.Error("historial handler error", zap.Error(err))
		respondFail(w, http.StatusInternalServerError, fallback)
	}
}

func (h *HistorialHandler) List(w http.ResponseWriter, r *http.Request) {
	historial, err := h.service.List(r.Context())
	if err != nil {
		h.handleError(w, err, "Error al obtener historial")
		return
	}
	respondData(w, http.StatusOK, historial)
}

func (h *HistorialHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		respondFail(w, http.StatusBadRequest, "Identificador inválido")
		return
	}

	entrada, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		h.handleError(w, err, "Error al obtener registro de historial")
		return
	}
	respondData(w, http.StatusOK, entrada)
}

func (h *HistorialHandler) GetByFactura(w http.ResponseWriter, r *http.Request) {
	idFactura, ok := idParam(r, "idFactura")
	if !ok {
		respondFail(w, http.StatusBadRequest, "Identificador inválido")
		return
	}

	historial, err := h.service.GetByFactura(r.Context(), idFactura)
	if err != nil {
		h.handleError(w, err, "Error al obtener historial de la factura")
		return
	}
	respondData(w, http.StatusOK, historial)
}

func (h *HistorialHandler) GetByUsuario(w http.ResponseWriter, r *http.Request) {
	idUsuario, ok := idParam(r, "idUsuario")
	if !ok {
		respondFail(w, http.StatusBadRequest, "Identificador inválido")
		return
	}

	historial, err := h.service.GetByUsuario(r.Context(), idUsuario)
	if err != nil {
		h.handleError(w, err, "Error al obtener historial del usuario")
		return
	}
	respondData(w, http.StatusOK, historial)
}

func (h *HistorialHandler) GetByFechas(w http.ResponseWriter, r *http.Request) {
	inicio, err := domain.ParseDate(r.URL.Query().Get("inicio"))
	if err != nil {
		respondFail(w, http.StatusBadRequest, "Se requieren los parámetros 'inicio' y 'fin' en formato YYYY-MM-DD")
		return
	}
	fin, err := domain.ParseDate(r.URL.Query().Get("fin"))
	if err != nil {
		respondFail(w, http.StatusBadRequest, "Se requieren los parámetros 'inicio' y 'fin' en formato YYYY-MM-DD")
		return
	}

	historial, err := h.service.GetByFechas(r.Context(), inicio, fin)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			respondFail(w, http.StatusBadRequest, "El rango de fechas es inválido")
			return
		}
		h.handleError(w, err, "Error al obtener historial por fechas")
		return
	}
	respondData(w, http.StatusOK, historial)
}

func (h *HistorialHandler) Create(w http.ResponseWriter, r *http.Request) {
	var entrada domain.HistorialFactura
	if !decodeJSON(w, r, &entrada) {
		return
	}

	created, err := h.service.Create(r.Context(), &entrada)
	if err != nil {
		h.handleError(w, err, "Error al crear registro de historial")
		return
	}
	respondCreated(w, created, "Registro de historial creado exitosamente")
}

func (h *HistorialHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		respondFail(w, http.StatusBadRequest, "Identificador inválido")
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		h.handleError(w, err, "Error al eliminar registro de historial")
		return
	}
	respondMessage(w, "Registro de historial eliminado exitosamente")
}

func (h *HistorialHandler) DeleteByFactura(w http.ResponseWriter, r *http.Request) {
	idFactura, ok := idParam(r, "idFactura")
	if !ok {
		respondFail(w, http.StatusBadRequest, "Identificador inválido")
		return
	}

	eliminados, err := h.service.DeleteByFactura(r.Context(), idFactura)
	if err != nil {
		h.handleError(w, err, "Error al eliminar historial de la factura")
		return
	}
	respondMessage(w, fmt.Sprintf("%d registro(s) de historial eliminado(s) para la factura %d", eliminados, idFactura))
}

func (h *HistorialHandler) DeleteByUsuario(w http.ResponseWriter, r *http.Request) {
	idUsuario, ok := idParam(r, "idUsuario")
	if !ok {
		respondFail(w, http.StatusBadRequest, "Identificador inválido")
		return
	}

	eliminados, err := h.service.DeleteByUsuario(r.Context(), idUsuario)
	if err != nil {
		h.handleError(w, err, "Error al eliminar historial del usuario")
		return
	}
	respondMessage(w, fmt.Sprintf("%d registro(s) de historial eliminado(s) para el usuario %d", eliminados, idUsuario))
}
