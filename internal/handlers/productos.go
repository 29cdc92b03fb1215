package handlers

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/facturapp/facturacion-api/internal/domain"
)

// ProductosHandler serves /api/productos.
type ProductosHandler struct {
	service domain.ProductoService
	logger  *zap.Logger
}

func NewProductosHandler(service domain.ProductoService, logger *zap.Logger) *ProductosHandler {
	return &ProductosHandler{service: service, logger: logger}
}

func (h *ProductosHandler) handleError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, domain.ErrProductoNotFound):
		respondFail(w, http.StatusNotFound, "Producto no encontrado")
	case errors.Is(err, domain.ErrProductoExists):
		respondFail(w, http.StatusConflict, "Ya existe un producto con ese nombre")
	case errors.Is(err, domain.ErrHasReferences):
		respondFail(w, http.StatusConflict, "Error al eliminar producto. Puede tener registros asociados.")
	case errors.Is(err, domain.ErrInvalidInput):
		respondFail(w, http.StatusBadRequest, "Los campos nombre, categoría, descripción y precio unitario son obligatorios")
	default:
		h.logger.Error("productos handler error", zap.Error(err))
		respondFail(w, http.StatusInternalServerError, fallback)
	}
}

func (h *ProductosHandler) List(w http.ResponseWriter, r *http.Request) {
	productos, err := h.service.List(r.Context())
	if err != nil {
		h.handleError(w, err, "Error al obtener productos")
		return
	}
	respondData(w, http.StatusOK, productos)
}

func (h *ProductosHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	productos, err := h.service.ListAll(r.Context())
	if err != nil {
		h.handleError(w, err, "Error al obtener productos")
		return
	}
	respondData(w, http.StatusOK, productos)
}

func (h *ProductosHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		respondFail(w, http.StatusBadRequest, "Identificador inválido")
		return
	}

	producto, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		h.handleError(w, err, "Error al obtener producto")
		return
	}
	respondData(w, http.StatusOK, producto)
}

func (h *ProductosHandler) SearchByNombre(w http.ResponseWriter, r *http.Request) {
	productos, err := h.service.SearchByNombre(r.Context(), urlParam(r, "nombre"))
	if err != nil {
		h.handleError(w, err, "Error al buscar productos")
		return
	}
	respondData(w, http.StatusOK, productos)
}

func (h *ProductosHandler) GetByCategoria(w http.ResponseWriter, r *http.Request) {
	productos, err := h.service.GetByCategoria(r.Context(), urlParam(r, "categoria"))
	if err != nil {
		h.handleError(w, err, "Error al obtener productos por categoría")
		return
	}
	respondData(w, http.StatusOK, productos)
}

func (h *ProductosHandler) Create(w http.ResponseWriter, r *http.Request) {
	var producto domain.Producto
	if !decodeJSON(w, r, &producto) {
		return
	}

	created, err := h.service.Create(r.Context(), &producto)
	if err != nil {
		h.handleError(w, err, "Error al crear producto")
		return
	}
	respondCreated(w, created, "Producto creado exitosamente")
}

func (h *ProductosHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		respondFail(w, http.StatusBadRequest, "Identificador inválido")
		return
	}

	var producto domain.Producto
	if !decodeJSON(w, r, &producto) {
		return
	}

	if err := h.service.Update(r.Context(), id, &producto); err != nil {
		h.handleError(w, err, "Error al actualizar producto")
		return
	}
	respondMessage(w, "Producto actualizado exitosamente")
}

func (h *ProductosHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		respondFail(w, http.StatusBadRequest, "Identificador inválido")
		return
	}

	if err := h.service.Deactivate(r.Context(), id); err != nil {
		h.handleError(w, err, "Error al eliminar producto")
		return
	}
	respondMessage(w, "Producto desactivado exitosamente")
}

func (h *ProductosHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		respondFail(w, http.StatusBadRequest, "Identificador inválido")
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		h.handleError(w, err, "Error al eliminar producto")
		return
	}
	respondMessage(w, "Producto eliminado permanentemente")
}
