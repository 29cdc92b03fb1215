package handlers

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/facturapp/facturacion-api/internal/domain"
)

// ClientesHandler serves /api/clientes.
type ClientesHandler struct {
	service domain.ClienteService
	logger  *zap.Logger
}

func NewClientesHandler(service domain.ClienteService, logger *zap.Logger) *ClientesHandler {
	return &ClientesHandler{service: service, logger: logger}
}

func (h *ClientesHandler) handleError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, domain.ErrClienteNotFound):
		respondFail(w, http.StatusNotFound, "Cliente no encontrado")
	case errors.Is(err, domain.ErrClienteExists):
		respondFail(w, http.StatusConflict, "Ya existe un cliente con esa cédula")
	case errors.Is(err, domain.ErrHasReferences):
		respondFail(w, http.StatusConflict, "Error al eliminar cliente. Puede tener registros asociados.")
	case errors.Is(err, domain.ErrInvalidInput):
		respondFail(w, http.StatusBadRequest, "Cédula, nombre, apellido, teléfono, dirección y fecha de nacimiento son obligatorios")
	default:
		h.logger.Error("clientes handler error", zap.Error(err))
		respondFail(w, http.StatusInternalServerError, fallback)
	}
}

func (h *ClientesHandler) List(w http.ResponseWriter, r *http.Request) {
	clientes, err := h.service.List(r.Context())
	if err != nil {
		h.handleError(w, err, "Error al obtener clientes")
		return
	}
	respondData(w, http.StatusOK, clientes)
}

func (h *ClientesHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		respondFail(w, http.StatusBadRequest, "Identificador inválido")
		return
	}

	cliente, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		h.handleError(w, err, "Error al obtener cliente")
		return
	}
	respondData(w, http.StatusOK, cliente)
}

func (h *ClientesHandler) GetByCedula(w http.ResponseWriter, r *http.Request) {
	cliente, err := h.service.GetByCedula(r.Context(), urlParam(r, "cedula"))
	if err != nil {
		h.handleError(w, err, "Error al buscar cliente")
		return
	}
	respondData(w, http.StatusOK, cliente)
}

func (h *ClientesHandler) ExistsByCedula(w http.ResponseWriter, r *http.Request) {
	existe, err := h.service.ExistsByCedula(r.Context(), urlParam(r, "cedula"))
	if err != nil {
		h.handleError(w, err, "Error al verificar cliente")
		return
	}
	respondData(w, http.StatusOK, map[string]bool{"existe": existe})
}

func (h *ClientesHandler) Create(w http.ResponseWriter, r *http.Request) {
	var cliente domain.Cliente
	if !decodeJSON(w, r, &cliente) {
		return
	}

	created, err := h.service.Create(r.Context(), &cliente)
	if err != nil {
		h.handleError(w, err, "Error al crear cliente")
		return
	}
	respondCreated(w, created, "Cliente creado exitosamente")
}

func (h *ClientesHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		respondFail(w, http.StatusBadRequest, "Identificador inválido")
		return
	}

	var cliente domain.Cliente
	if !decodeJSON(w, r, &cliente) {
		return
	}

	if err := h.service.Update(r.Context(), id, &cliente); err != nil {
		h.handleError(w, err, "Error al actualizar cliente")
		return
	}
	respondMessage(w, "Cliente actualizado exitosamente")
}

func (h *ClientesHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		respondFail(w, http.StatusBadRequest, "Identificador inválido")
		return
	}

	if err := h.service.Deactivate(r.Context(), id); err != nil {
		h.handleError(w, err, "Error al eliminar cliente")
		return
	}
	respondMessage(w, "Cliente desactivado exitosamente")
}

func (h *ClientesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		respondFail(w, http.StatusBadRequest, "Identificador inválido")
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		h.handleError(w, err, "Error al eliminar cliente")
		return
	}
	respondMessage(w, "Cliente eliminado permanentemente")
}
