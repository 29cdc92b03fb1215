package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/facturapp/facturacion-api/internal/domain"
)

// withURLParam injects a chi URL parameter into the request context.
func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func TestClientesHandler_GetByID(t *testing.T) {
	mockService := new(clienteServiceMock)
	logger, _ := zap.NewDevelopment()
	handler := NewClientesHandler(mockService, logger)

	t.Run("Success", func(t *testing.T) {
		cliente := &domain.Cliente{ID: 3, Cedula: "1712345678", Nombre: "Maria", Apellido: "Lopez"}
		mockService.On("GetByID", mock.Anything, int64(3)).Return(cliente, nil).Once()

		req := withURLParam(httptest.NewRequest(http.MethodGet, "/api/clientes/3", nil), "id", "3")
		w := httptest.NewRecorder()

		handler.GetByID(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		env := decodeEnvelope(t, w)
		assert.True(t, env.Success)
		assert.Contains(t, string(env.Data), "1712345678")
	})

	t.Run("Not found", func(t *testing.T) {
		mockService.On("GetByID", mock.Anything, int64(99)).Return(nil, domain.ErrClienteNotFound).Once()

		req := withURLParam(httptest.NewRequest(http.MethodGet, "/api/clientes/99", nil), "id", "99")
		w := httptest.NewRecorder()

		handler.GetByID(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		env := decodeEnvelope(t, w)
		assert.False(t, env.Success)
		assert.Equal(t, "Cliente no encontrado", env.Message)
	})

	t.Run("Invalid id", func(t *testing.T) {
		req := withURLParam(httptest.NewRequest(http.MethodGet, "/api/clientes/abc", nil), "id", "abc")
		w := httptest.NewRecorder()

		handler.GetByID(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	mockService.AssertExpectations(t)
}

func TestClientesHandler_Create(t *testing.T) {
	mockService := new(clienteServiceMock)
	logger, _ := zap.NewDevelopment()
	handler := NewClientesHandler(mockService, logger)

	t.Run("Success", func(t *testing.T) {
		created := &domain.Cliente{ID: 7, Cedula: "1712345678", Nombre: "Maria"}
		mockService.On("Create", mock.Anything, mock.MatchedBy(func(c *domain.Cliente) bool {
			return c.Cedula == "1712345678" && c.Nombre == "Maria"
		})).Return(created, nil).Once()

		body := `{"cedula":"1712345678","nombre":"Maria","apellido":"Lopez","telefono":"0991234567","direccion":"Quito","fechaNacimiento":"1990-05-10"}`
		req := httptest.NewRequest(http.MethodPost, "/api/clientes", bytes.NewBufferString(body))
		w := httptest.NewRecorder()

		handler.Create(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		env := decodeEnvelope(t, w)
		assert.True(t, env.Success)
		assert.Equal(t, "Cliente creado exitosamente", env.Message)
	})

	t.Run("Duplicate cedula", func(t *testing.T) {
		mockService.On("Create", mock.Anything, mock.Anything).Return(nil, domain.ErrClienteExists).Once()

		body := `{"cedula":"1712345678","nombre":"Maria","apellido":"Lopez"}`
		req := httptest.NewRequest(http.MethodPost, "/api/clientes", bytes.NewBufferString(body))
		w := httptest.NewRecorder()

		handler.Create(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
		env := decodeEnvelope(t, w)
		assert.Equal(t, "Ya existe un cliente con esa cédula", env.Message)
	})

	t.Run("Invalid JSON", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/clientes", bytes.NewBufferString(`{"cedula":}`))
		w := httptest.NewRecorder()

		handler.Create(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	mockService.AssertExpectations(t)
}

func TestPedidosHandler_UpdateEstado(t *testing.T) {
	mockService := new(pedidoServiceMock)
	logger, _ := zap.NewDevelopment()
	handler := NewPedidosHandler(mockService, logger)

	t.Run("Success", func(t *testing.T) {
		mockService.On("UpdateEstado", mock.Anything, int64(5), domain.PedidoConfirmado).Return(nil).Once()

		body := `{"estadoPedido":"CONFIRMADO"}`
		req := withURLParam(httptest.NewRequest(http.MethodPatch, "/api/pedidos/5/estado", bytes.NewBufferString(body)), "id", "5")
		w := httptest.NewRecorder()

		handler.UpdateEstado(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		env := decodeEnvelope(t, w)
		assert.Equal(t, "Estado del pedido actualizado a CONFIRMADO", env.Message)
	})

	t.Run("Pedido facturado", func(t *testing.T) {
		mockService.On("UpdateEstado", mock.Anything, int64(5), domain.PedidoCancelado).Return(domain.ErrPedidoFacturado).Once()

		body := `{"estadoPedido":"CANCELADO"}`
		req := withURLParam(httptest.NewRequest(http.MethodPatch, "/api/pedidos/5/estado", bytes.NewBufferString(body)), "id", "5")
		w := httptest.NewRecorder()

		handler.UpdateEstado(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
		env := decodeEnvelope(t, w)
		assert.Equal(t, "No se puede cambiar el estado de un pedido ya facturado", env.Message)
	})

	mockService.AssertExpectations(t)
}

func TestFacturasHandler_Create(t *testing.T) {
	mockService := new(facturacionServiceMock)
	logger, _ := zap.NewDevelopment()
	handler := NewFacturasHandler(mockService, logger)

	t.Run("Success with actor", func(t *testing.T) {
		factura := &domain.Factura{ID: 12, IDCliente: 3, Estado: domain.FacturaEmitida}
		mockService.On("Emitir", mock.Anything, mock.MatchedBy(func(in *domain.EmitirFactura) bool {
			return in.IDCliente == 3 && in.IDPago == 1 && in.IDUsuario == 4 && len(in.Detalles) == 1
		})).Return(factura, nil).Once()

		body := `{"idCliente":3,"idPago":1,"fechaFactura":"2024-03-15","detalles":[{"idProducto":2,"descripcion":"Pan","precio":2.5,"cantidad":2}]}`
		req := httptest.NewRequest(http.MethodPost, "/api/facturas", bytes.NewBufferString(body))
		req = req.WithContext(context.WithValue(req.Context(), ActorIDKey, int64(4)))
		w := httptest.NewRecorder()

		handler.Create(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		env := decodeEnvelope(t, w)
		assert.True(t, env.Success)
		assert.Equal(t, "Factura creada exitosamente", env.Message)
	})

	t.Run("Sin detalles", func(t *testing.T) {
		mockService.On("Emitir", mock.Anything, mock.Anything).Return(nil, domain.ErrSinDetalles).Once()

		body := `{"idCliente":3,"idPago":1,"fechaFactura":"2024-03-15","detalles":[]}`
		req := httptest.NewRequest(http.MethodPost, "/api/facturas", bytes.NewBufferString(body))
		w := httptest.NewRecorder()

		handler.Create(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w)
		assert.Equal(t, "La factura debe tener al menos un detalle", env.Message)
	})

	t.Run("Pedido ya facturado", func(t *testing.T) {
		mockService.On("Emitir", mock.Anything, mock.Anything).Return(nil, domain.ErrPedidoFacturado).Once()

		body := `{"idCliente":3,"idPago":1,"idPedido":9,"fechaFactura":"2024-03-15","detalles":[{"idProducto":2,"descripcion":"Pan","precio":2.5,"cantidad":2}]}`
		req := httptest.NewRequest(http.MethodPost, "/api/facturas", bytes.NewBufferString(body))
		w := httptest.NewRecorder()

		handler.Create(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	mockService.AssertExpectations(t)
}

func TestFacturasHandler_GenerarCodigo(t *testing.T) {
	mockService := new(facturacionServiceMock)
	logger, _ := zap.NewDevelopment()
	handler := NewFacturasHandler(mockService, logger)

	mockService.On("NextCodigo", mock.Anything).Return("FAC-013", nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/facturas/codigo", nil)
	w := httptest.NewRecorder()

	handler.GenerarCodigo(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	env := decodeEnvelope(t, w)
	assert.JSONEq(t, `{"codigo":"FAC-013"}`, string(env.Data))
	mockService.AssertExpectations(t)
}

func TestFacturasHandler_UpdateEstado(t *testing.T) {
	mockService := new(facturacionServiceMock)
	logger, _ := zap.NewDevelopment()
	handler := NewFacturasHandler(mockService, logger)

	t.Run("Success", func(t *testing.T) {
		mockService.On("UpdateEstado", mock.Anything, mock.MatchedBy(func(c *domain.CambioEstadoFactura) bool {
			return c.IDFactura == 12 && c.Estado == domain.FacturaAnulada && c.Motivo != nil && *c.Motivo == "error de digitación"
		})).Return(nil).Once()

		body := `{"estadoFactura":"ANULADA","motivo":"error de digitación"}`
		req := withURLParam(httptest.NewRequest(http.MethodPatch, "/api/facturas/12/estado", bytes.NewBufferString(body)), "id", "12")
		w := httptest.NewRecorder()

		handler.UpdateEstado(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		env := decodeEnvelope(t, w)
		assert.Equal(t, "Estado de la factura actualizado a ANULADA", env.Message)
	})

	t.Run("Invalid estado", func(t *testing.T) {
		mockService.On("UpdateEstado", mock.Anything, mock.Anything).Return(domain.ErrInvalidInput).Once()

		body := `{"estadoFactura":"PAGADA"}`
		req := withURLParam(httptest.NewRequest(http.MethodPatch, "/api/facturas/12/estado", bytes.NewBufferString(body)), "id", "12")
		w := httptest.NewRecorder()

		handler.UpdateEstado(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w)
		assert.Equal(t, "Estado inválido. Debe ser: EMITIDA, ANULADA, RECHAZADA o EN PROCESO", env.Message)
	})

	mockService.AssertExpectations(t)
}

func TestUsuariosHandler_Login(t *testing.T) {
	mockService := new(usuarioServiceMock)
	logger, _ := zap.NewDevelopment()
	handler := NewUsuariosHandler(mockService, logger)

	t.Run("Success", func(t *testing.T) {
		usuario := &domain.Usuario{ID: 4, Usuario: "facturador1", Hash: "secret-hash", Rol: domain.RolFacturacion, Estado: domain.EstadoActivo}
		mockService.On("Login", mock.Anything, "facturador1", "clave123").Return(usuario, "jwt-token", nil).Once()

		body := `{"usuario":"facturador1","contrasena":"clave123"}`
		req := httptest.NewRequest(http.MethodPost, "/api/usuarios/login", bytes.NewBufferString(body))
		w := httptest.NewRecorder()

		handler.Login(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		env := decodeEnvelope(t, w)
		assert.True(t, env.Success)
		assert.Equal(t, "Login exitoso", env.Message)
		assert.Contains(t, string(env.Data), "jwt-token")
		// The password hash must never be serialized.
		assert.NotContains(t, w.Body.String(), "secret-hash")
	})

	t.Run("Invalid credentials", func(t *testing.T) {
		mockService.On("Login", mock.Anything, "facturador1", "mala").Return(nil, "", domain.ErrInvalidCredentials).Once()

		body := `{"usuario":"facturador1","contrasena":"mala"}`
		req := httptest.NewRequest(http.MethodPost, "/api/usuarios/login", bytes.NewBufferString(body))
		w := httptest.NewRecorder()

		handler.Login(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		env := decodeEnvelope(t, w)
		assert.Equal(t, "Credenciales inválidas o usuario inactivo", env.Message)
	})

	t.Run("Missing fields", func(t *testing.T) {
		body := `{"usuario":"facturador1"}`
		req := httptest.NewRequest(http.MethodPost, "/api/usuarios/login", bytes.NewBufferString(body))
		w := httptest.NewRecorder()

		handler.Login(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w)
		assert.Equal(t, "Usuario y contraseña son obligatorios", env.Message)
	})

	mockService.AssertExpectations(t)
}

func TestUsuariosHandler_Create(t *testing.T) {
	mockService := new(usuarioServiceMock)
	logger, _ := zap.NewDevelopment()
	handler := NewUsuariosHandler(mockService, logger)

	t.Run("Success", func(t *testing.T) {
		created := &domain.Usuario{ID: 9, Usuario: "contadora1", Hash: "secret-hash", Rol: domain.RolContabilidad}
		mockService.On("Create", mock.Anything, mock.MatchedBy(func(u *domain.Usuario) bool {
			return u.Usuario == "contadora1" && u.Rol == domain.RolContabilidad
		}), "clave123").Return(created, nil).Once()

		body := `{"usuario":"contadora1","contrasena":"clave123","nombre":"Ana","apellido":"Mora","rol":"CONTABILIDAD"}`
		req := httptest.NewRequest(http.MethodPost, "/api/usuarios", bytes.NewBufferString(body))
		w := httptest.NewRecorder()

		handler.Create(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.NotContains(t, w.Body.String(), "secret-hash")
	})

	t.Run("Duplicate usuario", func(t *testing.T) {
		mockService.On("Create", mock.Anything, mock.Anything, "clave123").Return(nil, domain.ErrUsuarioExists).Once()

		body := `{"usuario":"contadora1","contrasena":"clave123","nombre":"Ana","apellido":"Mora","rol":"CONTABILIDAD"}`
		req := httptest.NewRequest(http.MethodPost, "/api/usuarios", bytes.NewBufferString(body))
		w := httptest.NewRecorder()

		handler.Create(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
		env := decodeEnvelope(t, w)
		assert.Equal(t, "Ya existe un usuario con ese nombre de usuario", env.Message)
	})

	mockService.AssertExpectations(t)
}
