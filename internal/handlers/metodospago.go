package handlers

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/facturapp/facturacion-api/internal/domain"
)

// MetodosPagoHandler serves /api/metodo-pago.
type MetodosPagoHandler struct {
	service domain.MetodoPagoService
	logger  *zap.Logger
}

func NewMetodosPagoHandler(service domain.MetodoPagoService, logger *zap.Logger) *MetodosPagoHandler {
	return &MetodosPagoHandler{service: service, logger: logger}
}

func (h *MetodosPagoHandler) handleError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, domain.ErrMetodoPagoNotFound):
		respondFail(w, http.StatusNotFound, "Método de pago no encontrado")
	case errors.Is(err, domain.ErrMetodoPagoExists):
		respondFail(w, http.StatusConflict, "Ya existe un método de pago con ese tipo")
	case errors.Is(err, domain.ErrHasReferences):
		respondFail(w, http.StatusConflict, "No se puede eliminar el método de pago porque tiene facturas asociadas")
	case errors.Is(err, domain.ErrInvalidInput):
		respondFail(w, http.StatusBadRequest, "Tipo de pago inválido. Debe ser: Efectivo, Tarjeta, Transferencia o Cheque")
	default:
		h.logger.Error("metodos de pago handler error", zap.Error(err))
		respondFail(w, http.StatusInternalServerError, fallback)
	}
}

func (h *MetodosPagoHandler) List(w http.ResponseWriter, r *http.Request) {
	metodos, err := h.service.List(r.Context())
	if err != nil {
		h.handleError(w, err, "Error al obtener métodos de pago")
		return
	}
	respondData(w, http.StatusOK, metodos)
}

func (h *MetodosPagoHandler) ListDisponibles(w http.ResponseWriter, r *http.Request) {
	metodos, err := h.service.ListDisponibles(r.Context())
	if err != nil {
		h.handleError(w, err, "Error al obtener métodos de pago disponibles")
		return
	}
	respondData(w, http.StatusOK, metodos)
}

func (h *MetodosPagoHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		respondFail(w, http.StatusBadRequest, "Identificador inválido")
		return
	}

	metodo, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		h.handleError(w, err, "Error al obtener método de pago")
		return
	}
	respondData(w, http.StatusOK, metodo)
}

func (h *MetodosPagoHandler) GetByTipo(w http.ResponseWriter, r *http.Request) {
	metodo, err := h.service.GetByTipo(r.Context(), domain.TipoPago(urlParam(r, "tipoPago")))
	if err != nil {
		h.handleError(w, err, "Error al buscar método de pago")
		return
	}
	respondData(w, http.StatusOK, metodo)
}

func (h *MetodosPagoHandler) Create(w http.ResponseWriter, r *http.Request) {
	var metodo domain.MetodoPago
	if !decodeJSON(w, r, &metodo) {
		return
	}

	created, err := h.service.Create(r.Context(), &metodo)
	if err != nil {
		h.handleError(w, err, "Error al crear método de pago")
		return
	}
	respondCreated(w, created, "Método de pago creado exitosamente")
}

func (h *MetodosPagoHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		respondFail(w, http.StatusBadRequest, "Identificador inválido")
		return
	}

	var metodo domain.MetodoPago
	if !decodeJSON(w, r, &metodo) {
		return
	}

	if err := h.service.Update(r.Context(), id, &metodo); err != nil {
		h.handleError(w, err, "Error al actualizar método de pago")
		return
	}
	respondMessage(w, "Método de pago actualizado exitosamente")
}

func (h *MetodosPagoHandler) ToggleDisponible(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		respondFail(w, http.StatusBadRequest, "Identificador inválido")
		return
	}

	if err := h.service.ToggleDisponible(r.Context(), id); err != nil {
		h.handleError(w, err, "Error al cambiar disponibilidad del método de pago")
		return
	}
	respondMessage(w, "Disponibilidad del método de pago actualizada")
}

func (h *MetodosPagoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		respondFail(w, http.StatusBadRequest, "Identificador inválido")
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		h.handleError(w, err, "Error al eliminar método de pago")
		return
	}
	respondMessage(w, "Método de pago eliminado exitosamente")
}
