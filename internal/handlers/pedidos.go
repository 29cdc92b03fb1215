package handlers

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/facturapp/facturacion-api/internal/domain"
)

// PedidosHandler serves /api/pedidos.
type PedidosHandler struct {
	service domain.PedidoService
	logger  *zap.Logger
}

func NewPedidosHandler(service domain.PedidoService, logger *zap.Logger) *PedidosHandler {
	return &PedidosHandler{service: service, logger: logger}
}

type pedidoRequest struct {
	domain.Pedido
	Detalles []domain.Detalle `json:"detalles"`
}

type estadoPedidoRequest struct {
	Estado domain.EstadoPedido `json:"estadoPedido"`
}

func (h *PedidosHandler) handleError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, domain.ErrPedidoNotFound):
		respondFail(w, http.StatusNotFound, "Pedido no encontrado")
	case errors.Is(err, domain.ErrDetalleNotFound):
		respondFail(w, http.StatusNotFound, "Detalle no encontrado")
	case errors.Is(err, domain.ErrClienteNotFound):
		respondFail(w, http.StatusNotFound, "Cliente no encontrado")
	case errors.Is(err, domain.ErrPedidoFacturado):
		respondFail(w, http.StatusConflict, "No se puede modificar un pedido que ya fue facturado")
	case errors.Is(err, domain.ErrHasReferences):
		respondFail(w, http.StatusConflict, "No se puede eliminar un pedido que tiene facturas asociadas. Elimine las facturas primero.")
	case errors.Is(err, domain.ErrSinDetalles):
		respondFail(w, http.StatusBadRequest, "El pedido debe tener al menos un detalle")
	case errors.Is(err, domain.ErrInvalidInput):
		respondFail(w, http.StatusBadRequest, "Cliente, fecha de pedido y fecha de entrega son obligatorios")
	default:
		h.logger.Error("pedidos handler error", zap.Error(err))
		respondFail(w, http.StatusInternalServerError, fallback)
	}
}

func (h *PedidosHandler) List(w http.ResponseWriter, r *http.Request) {
	pedidos, err := h.service.List(r.Context())
	if err != nil {
		h.handleError(w, err, "Error al obtener pedidos")
		return
	}
	respondData(w, http.StatusOK, pedidos)
}

func (h *PedidosHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		respondFail(w, http.StatusBadRequest, "Identificador inválido")
		return
	}

	pedido, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		h.handleError(w, err, "Error al obtener pedido")
		return
	}
	respondData(w, http.StatusOK, pedido)
}

func (h *PedidosHandler) GetByCliente(w http.ResponseWriter, r *http.Request) {
	idCliente, ok := idParam(r, "idCliente")
	if !ok {
		respondFail(w, http.StatusBadRequest, "Identificador inválido")
		return
	}

	pedidos, err := h.service.GetByCliente(r.Context(), idCliente)
	if err != nil {
		h.handleError(w, err, "Error al obtener pedidos del cliente")
		return
	}
	respondData(w, http.StatusOK, pedidos)
}

func (h *PedidosHandler) GetByEstado(w http.ResponseWriter, r *http.Request) {
	pedidos, err := h.service.GetByEstado(r.Context(), domain.EstadoPedido(urlParam(r, "estado")))
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			respondFail(w, http.StatusBadRequest, "Estado inválido. Debe ser: PENDIENTE, CONFIRMADO, CANCELADO o FACTURADO")
			return
		}
		h.handleError(w, err, "Error al obtener pedidos por estado")
		return
	}
	respondData(w, http.StatusOK, pedidos)
}

func (h *PedidosHandler) GetConfirmados(w http.ResponseWriter, r *http.Request) {
	pedidos, err := h.service.GetConfirmados(r.Context())
	if err != nil {
		h.handleError(w, err, "Error al obtener pedidos confirmados")
		return
	}
	respondData(w, http.StatusOK, pedidos)
}

func (h *PedidosHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req pedidoRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	created, err := h.service.Create(r.Context(), &req.Pedido, req.Detalles)
	if err != nil {
		h.handleError(w, err, "Error al crear pedido")
		return
	}
	respondCreated(w, created, "Pedido creado exitosamente")
}

func (h *PedidosHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		respondFail(w, http.StatusBadRequest, "Identificador inválido")
		return
	}

	var pedido domain.Pedido
	if !decodeJSON(w, r, &pedido) {
		return
	}

	if err := h.service.Update(r.Context(), id, &pedido); err != nil {
		h.handleError(w, err, "Error al actualizar pedido")
		return
	}
	respondMessage(w, "Pedido actualizado exitosamente")
}

func (h *PedidosHandler) UpdateEstado(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		respondFail(w, http.StatusBadRequest, "Identificador inválido")
		return
	}

	var req estadoPedidoRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.service.UpdateEstado(r.Context(), id, req.Estado); err != nil {
		if errors.Is(err, domain.ErrPedidoFacturado) {
			respondFail(w, http.StatusConflict, "No se puede cambiar el estado de un pedido ya facturado")
			return
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			respondFail(w, http.StatusBadRequest, "Estado inválido. Debe ser: PENDIENTE, CONFIRMADO, CANCELADO o FACTURADO")
			return
		}
		h.handleError(w, err, "Error al actualizar estado del pedido")
		return
	}
	respondMessage(w, "Estado del pedido actualizado a "+string(req.Estado))
}

func (h *PedidosHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		respondFail(w, http.StatusBadRequest, "Identificador inválido")
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		h.handleError(w, err, "Error al eliminar pedido")
		return
	}
	respondMessage(w, "Pedido y sus detalles eliminados exitosamente")
}

func (h *PedidosHandler) GetDetalles(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		respondFail(w, http.StatusBadRequest, "Identificador inválido")
		return
	}

	detalles, err := h.service.GetDetalles(r.Context(), id)
	if err != nil {
		h.handleError(w, err, "Error al obtener detalles del pedido")
		return
	}
	respondData(w, http.StatusOK, detalles)
}

func (h *PedidosHandler) AddDetalle(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		respondFail(w, http.StatusBadRequest, "Identificador inválido")
		return
	}

	var detalle domain.Detalle
	if !decodeJSON(w, r, &detalle) {
		return
	}

	created, err := h.service.AddDetalle(r.Context(), id, &detalle)
	if err != nil {
		if errors.Is(err, domain.ErrPedidoFacturado) {
			respondFail(w, http.StatusConflict, "No se pueden agregar detalles a un pedido facturado")
			return
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			respondFail(w, http.StatusBadRequest, "Todos los campos del detalle son obligatorios")
			return
		}
		h.handleError(w, err, "Error al agregar detalle al pedido")
		return
	}
	respondCreated(w, created, "Detalle agregado exitosamente")
}

func (h *PedidosHandler) UpdateDetalle(w http.ResponseWriter, r *http.Request) {
	idDetalle, ok := idParam(r, "idDetalle")
	if !ok {
		respondFail(w, http.StatusBadRequest, "Identificador inválido")
		return
	}

	var detalle domain.Detalle
	if !decodeJSON(w, r, &detalle) {
		return
	}

	if err := h.service.UpdateDetalle(r.Context(), idDetalle, &detalle); err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			respondFail(w, http.StatusBadRequest, "Todos los campos del detalle son obligatorios")
			return
		}
		h.handleError(w, err, "Error al actualizar detalle del pedido")
		return
	}
	respondMessage(w, "Detalle actualizado exitosamente")
}

func (h *PedidosHandler) DeleteDetalle(w http.ResponseWriter, r *http.Request) {
	idDetalle, ok := idParam(r, "idDetalle")
	if !ok {
		respondFail(w, http.StatusBadRequest, "Identificador inválido")
		return
	}

	if err := h.service.DeleteDetalle(r.Context(), idDetalle); err != nil {
		h.handleError(w, err, "Error al eliminar detalle del pedido")
		return
	}
	respondMessage(w, "Detalle eliminado exitosamente")
}

func (h *PedidosHandler) ReplaceDetalles(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		respondFail(w, http.StatusBadRequest, "Identificador inválido")
		return
	}

	var req struct {
		Detalles []domain.Detalle `json:"detalles"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.service.ReplaceDetalles(r.Context(), id, req.Detalles); err != nil {
		if errors.Is(err, domain.ErrPedidoFacturado) {
			respondFail(w, http.StatusConflict, "No se pueden reemplazar detalles de un pedido facturado")
			return
		}
		if errors.Is(err, domain.ErrSinDetalles) {
			respondFail(w, http.StatusBadRequest, "Debe proporcionar al menos un detalle")
			return
		}
		h.handleError(w, err, "Error al reemplazar detalles del pedido")
		return
	}
	respondMessage(w, "Detalles reemplazados exitosamente")
}
