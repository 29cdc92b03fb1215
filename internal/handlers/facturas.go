package handlers

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/facturapp/facturacion-api/internal/domain"
)

// FacturasHandler serves /api/facturas.
type FacturasHandler struct {
	service domain.FacturacionService
	logger  *zap.Logger
}

func NewFacturasHandler(service domain.FacturacionService, logger *zap.Logger) *FacturasHandler {
	return &FacturasHandler{service: service, logger: logger}
}

type facturaRequest struct {
	IDCliente int64  `json:"idCliente"`
	Cedula    string `json:"cedula"`
	IDPago    int64  `json:"idPago"`
	IDPedido  int64  `json:"idPedido"`

	FechaFactura domain.Date `json:"fechaFactura"`
	FechaPedido  domain.Date `json:"fechaPedido"`
	FechaEntrega domain.Date `json:"fechaEntrega"`

	Subtotal *float64 `json:"subtotalFactura"`
	ValorIVA *float64 `json:"valorIva"`
	Total    *float64 `json:"totalFactura"`

	Estado   domain.EstadoFactura `json:"estadoFactura"`
	Detalles []domain.Detalle     `json:"detalles"`

	IDUsuario int64 `json:"idUsuario"`
}

type estadoFacturaRequest struct {
	Estado    domain.EstadoFactura `json:"estadoFactura"`
	Motivo    *string              `json:"motivo"`
	IDUsuario int64                `json:"idUsuario"`
}

// actorID prefers the bearer-token identity over the body-supplied one.
func actorID(r *http.Request, bodyID int64) int64 {
	if id := GetActorID(r.Context()); id > 0 {
		return id
	}
	return bodyID
}

func (h *FacturasHandler) handleError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, domain.ErrFacturaNotFound):
		respondFail(w, http.StatusNotFound, "Factura no encontrada")
	case errors.Is(err, domain.ErrDetalleNotFound):
		respondFail(w, http.StatusNotFound, "Detalle no encontrado")
	case errors.Is(err, domain.ErrClienteNotFound):
		respondFail(w, http.StatusNotFound, "Cliente no encontrado")
	case errors.Is(err, domain.ErrMetodoPagoNotFound):
		respondFail(w, http.StatusNotFound, "Método de pago no encontrado")
	case errors.Is(err, domain.ErrPedidoNotFound):
		respondFail(w, http.StatusNotFound, "Pedido no encontrado")
	case errors.Is(err, domain.ErrPedidoFacturado):
		respondFail(w, http.StatusConflict, "El pedido ya fue facturado")
	case errors.Is(err, domain.ErrFacturaAnulada):
		respondFail(w, http.StatusConflict, "No se puede modificar una factura anulada")
	case errors.Is(err, domain.ErrSinDetalles):
		respondFail(w, http.StatusBadRequest, "La factura debe tener al menos un detalle")
	case errors.Is(err, domain.ErrInvalidInput):
		respondFail(w, http.StatusBadRequest, "Cliente, método de pago, pedido y fecha de factura son obligatorios")
	default:
		h.logger.Error("facturas handler error", zap.Error(err))
		respondFail(w, http.StatusInternalServerError, fallback)
	}
}

func (h *FacturasHandler) List(w http.ResponseWriter, r *http.Request) {
	facturas, err := h.service.List(r.Context())
	if err != nil {
		h.handleError(w, err, "Error al obtener facturas")
		return
	}
	respondData(w, http.StatusOK, facturas)
}

func (h *FacturasHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		respondFail(w, http.StatusBadRequest, "Identificador inválido")
		return
	}

	factura, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		h.handleError(w, err, "Error al obtener factura")
		return
	}
	respondData(w, http.StatusOK, factura)
}

func (h *FacturasHandler) GetByCliente(w http.ResponseWriter, r *http.Request) {
	idCliente, ok := idParam(r, "idCliente")
	if !ok {
		respondFail(w, http.StatusBadRequest, "Identificador inválido")
		return
	}

	facturas, err := h.service.GetByCliente(r.Context(), idCliente)
	if err != nil {
		h.handleError(w, err, "Error al obtener facturas del cliente")
		return
	}
	respondData(w, http.StatusOK, facturas)
}

func (h *FacturasHandler) GetByClienteCedula(w http.ResponseWriter, r *http.Request) {
	facturas, err := h.service.GetByClienteCedula(r.Context(), urlParam(r, "cedula"))
	if err != nil {
		h.handleError(w, err, "Error al buscar facturas por cédula")
		return
	}
	respondData(w, http.StatusOK, facturas)
}

func (h *FacturasHandler) GetByEstado(w http.ResponseWriter, r *http.Request) {
	facturas, err := h.service.GetByEstado(r.Context(), domain.EstadoFactura(urlParam(r, "estado")))
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			respondFail(w, http.StatusBadRequest, "Estado inválido. Debe ser: EMITIDA, ANULADA, RECHAZADA o EN PROCESO")
			return
		}
		h.handleError(w, err, "Error al obtener facturas por estado")
		return
	}
	respondData(w, http.StatusOK, facturas)
}

func (h *FacturasHandler) GenerarCodigo(w http.ResponseWriter, r *http.Request) {
	codigo, err := h.service.NextCodigo(r.Context())
	if err != nil {
		h.handleError(w, err, "Error al generar código de factura")
		return
	}
	respondData(w, http.StatusOK, map[string]string{"codigo": codigo})
}

func (h *FacturasHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req facturaRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	input := &domain.EmitirFactura{
		IDCliente:    req.IDCliente,
		Cedula:       req.Cedula,
		IDPago:       req.IDPago,
		IDPedido:     req.IDPedido,
		FechaFactura: req.FechaFactura,
		FechaPedido:  req.FechaPedido,
		FechaEntrega: req.FechaEntrega,
		Subtotal:     req.Subtotal,
		ValorIVA:     req.ValorIVA,
		Total:        req.Total,
		Estado:       req.Estado,
		Detalles:     req.Detalles,
		IDUsuario:    actorID(r, req.IDUsuario),
	}

	factura, err := h.service.Emitir(r.Context(), input)
	if err != nil {
		h.handleError(w, err, "Error al crear factura")
		return
	}
	respondCreated(w, factura, "Factura creada exitosamente")
}

func (h *FacturasHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		respondFail(w, http.StatusBadRequest, "Identificador inválido")
		return
	}

	var factura domain.Factura
	if !decodeJSON(w, r, &factura) {
		return
	}

	if err := h.service.Update(r.Context(), id, &factura); err != nil {
		h.handleError(w, err, "Error al actualizar factura")
		return
	}
	respondMessage(w, "Factura actualizada exitosamente")
}

func (h *FacturasHandler) UpdateEstado(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		respondFail(w, http.StatusBadRequest, "Identificador inválido")
		return
	}

	var req estadoFacturaRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	cambio := &domain.CambioEstadoFactura{
		IDFactura: id,
		Estado:    req.Estado,
		IDUsuario: actorID(r, req.IDUsuario),
		Motivo:    req.Motivo,
	}

	if err := h.service.UpdateEstado(r.Context(), cambio); err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			respondFail(w, http.StatusBadRequest, "Estado inválido. Debe ser: EMITIDA, ANULADA, RECHAZADA o EN PROCESO")
			return
		}
		h.handleError(w, err, "Error al actualizar estado de la factura")
		return
	}
	respondMessage(w, "Estado de la factura actualizado a "+string(req.Estado))
}

func (h *FacturasHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		respondFail(w, http.StatusBadRequest, "Identificador inválido")
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		h.handleError(w, err, "Error al eliminar factura")
		return
	}
	respondMessage(w, "Factura, sus detalles y su historial eliminados exitosamente")
}

func (h *FacturasHandler) GetDetalles(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		respondFail(w, http.StatusBadRequest, "Identificador inválido")
		return
	}

	detalles, err := h.service.GetDetalles(r.Context(), id)
	if err != nil {
		h.handleError(w, err, "Error al obtener detalles de la factura")
		return
	}
	respondData(w, http.StatusOK, detalles)
}

func (h *FacturasHandler) AddDetalle(w http.ResponseWriter, r *http.Request) {
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
		if errors.Is(err, domain.ErrFacturaAnulada) {
			respondFail(w, http.StatusConflict, "No se pueden agregar detalles a una factura anulada")
			return
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			respondFail(w, http.StatusBadRequest, "Todos los campos del detalle son obligatorios")
			return
		}
		h.handleError(w, err, "Error al agregar detalle a la factura")
		return
	}
	respondCreated(w, created, "Detalle agregado exitosamente")
}

func (h *FacturasHandler) UpdateDetalle(w http.ResponseWriter, r *http.Request) {
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
		h.handleError(w, err, "Error al actualizar detalle de la factura")
		return
	}
	respondMessage(w, "Detalle actualizado exitosamente")
}

func (h *FacturasHandler) DeleteDetalle(w http.ResponseWriter, r *http.Request) {
	idDetalle, ok := idParam(r, "idDetalle")
	if !ok {
		respondFail(w, http.StatusBadRequest, "Identificador inválido")
		return
	}

	if err := h.service.DeleteDetalle(r.Context(), idDetalle); err != nil {
		h.handleError(w, err, "Error al eliminar detalle de la factura")
		return
	}
	respondMessage(w, "Detalle eliminado exitosamente")
}

func (h *FacturasHandler) ReplaceDetalles(w http.ResponseWriter, r *http.Request) {
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
		if errors.Is(err, domain.ErrFacturaAnulada) {
			respondFail(w, http.StatusConflict, "No se pueden reemplazar detalles de una factura anulada")
			return
		}
		if errors.Is(err, domain.ErrSinDetalles) {
			respondFail(w, http.StatusBadRequest, "Debe proporcionar al menos un detalle")
			return
		}
		h.handleError(w, err, "Error al reemplazar detalles de la factura")
		return
	}
	respondMessage(w, "Detalles reemplazados exitosamente")
}
