package handlers

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/facturapp/facturacion-api/internal/domain"
)

// Hand-written testify mocks for the service interfaces exercised by the
// handler tests.

type clienteServiceMock struct {
	mock.Mock
}

func (m *clienteServiceMock) List(ctx context.Context) ([]*domain.Cliente, error) {
	args := m.Called(ctx)
	if v := args.Get(0); v != nil {
		return v.([]*domain.Cliente), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *clienteServiceMock) GetByID(ctx context.Context, id int64) (*domain.Cliente, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*domain.Cliente), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *clienteServiceMock) GetByCedula(ctx context.Context, cedula string) (*domain.Cliente, error) {
	args := m.Called(ctx, cedula)
	if v := args.Get(0); v != nil {
		return v.(*domain.Cliente), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *clienteServiceMock) ExistsByCedula(ctx context.Context, cedula string) (bool, error) {
	args := m.Called(ctx, cedula)
	return args.Bool(0), args.Error(1)
}

func (m *clienteServiceMock) Create(ctx context.Context, cliente *domain.Cliente) (*domain.Cliente, error) {
	args := m.Called(ctx, cliente)
	if v := args.Get(0); v != nil {
		return v.(*domain.Cliente), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *clienteServiceMock) Update(ctx context.Context, id int64, cliente *domain.Cliente) error {
	return m.Called(ctx, id, cliente).Error(0)
}

func (m *clienteServiceMock) Deactivate(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *clienteServiceMock) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type pedidoServiceMock struct {
	mock.Mock
}

func (m *pedidoServiceMock) List(ctx context.Context) ([]*domain.Pedido, error) {
	args := m.Called(ctx)
	if v := args.Get(0); v != nil {
		return v.([]*domain.Pedido), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *pedidoServiceMock) GetByID(ctx context.Context, id int64) (*domain.Pedido, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*domain.Pedido), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *pedidoServiceMock) GetByCliente(ctx context.Context, idCliente int64) ([]*domain.Pedido, error) {
	args := m.Called(ctx, idCliente)
	if v := args.Get(0); v != nil {
		return v.([]*domain.Pedido), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *pedidoServiceMock) GetByEstado(ctx context.Context, estado domain.EstadoPedido) ([]*domain.Pedido, error) {
	args := m.Called(ctx, estado)
	if v := args.Get(0); v != nil {
		return v.([]*domain.Pedido), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *pedidoServiceMock) GetConfirmados(ctx context.Context) ([]*domain.Pedido, error) {
	args := m.Called(ctx)
	if v := args.Get(0); v != nil {
		return v.([]*domain.Pedido), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *pedidoServiceMock) Create(ctx context.Context, pedido *domain.Pedido, detalles []domain.Detalle) (*domain.Pedido, error) {
	args := m.Called(ctx, pedido, detalles)
	if v := args.Get(0); v != nil {
		return v.(*domain.Pedido), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *pedidoServiceMock) Update(ctx context.Context, id int64, pedido *domain.Pedido) error {
	return m.Called(ctx, id, pedido).Error(0)
}

func (m *pedidoServiceMock) UpdateEstado(ctx context.Context, id int64, estado domain.EstadoPedido) error {
	return m.Called(ctx, id, estado).Error(0)
}

func (m *pedidoServiceMock) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *pedidoServiceMock) GetDetalles(ctx context.Context, idPedido int64) ([]*domain.Detalle, error) {
	args := m.Called(ctx, idPedido)
	if v := args.Get(0); v != nil {
		return v.([]*domain.Detalle), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *pedidoServiceMock) AddDetalle(ctx context.Context, idPedido int64, detalle *domain.Detalle) (*domain.Detalle, error) {
	args := m.Called(ctx, idPedido, detalle)
	if v := args.Get(0); v != nil {
		return v.(*domain.Detalle), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *pedidoServiceMock) UpdateDetalle(ctx context.Context, idDetalle int64, detalle *domain.Detalle) error {
	return m.Called(ctx, idDetalle, detalle).Error(0)
}

func (m *pedidoServiceMock) DeleteDetalle(ctx context.Context, idDetalle int64) error {
	return m.Called(ctx, idDetalle).Error(0)
}

func (m *pedidoServiceMock) ReplaceDetalles(ctx context.Context, idPedido int64, detalles []domain.Detalle) error {
	return m.Called(ctx, idPedido, detalles).Error(0)
}

type facturacionServiceMock struct {
	mock.Mock
}

func (m *facturacionServiceMock) List(ctx context.Context) ([]*domain.Factura, error) {
	args := m.Called(ctx)
	if v := args.Get(0); v != nil {
		return v.([]*domain.Factura), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *facturacionServiceMock) GetByID(ctx context.Context, id int64) (*domain.Factura, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*domain.Factura), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *facturacionServiceMock) GetByCliente(ctx context.Context, idCliente int64) ([]*domain.Factura, error) {
	args := m.Called(ctx, idCliente)
	if v := args.Get(0); v != nil {
		return v.([]*domain.Factura), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *facturacionServiceMock) GetByClienteCedula(ctx context.Context, cedula string) ([]*domain.Factura, error) {
	args := m.Called(ctx, cedula)
	if v := args.Get(0); v != nil {
		return v.([]*domain.Factura), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *facturacionServiceMock) GetByEstado(ctx context.Context, estado domain.EstadoFactura) ([]*domain.Factura, error) {
	args := m.Called(ctx, estado)
	if v := args.Get(0); v != nil {
		return v.([]*domain.Factura), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *facturacionServiceMock) NextCodigo(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *facturacionServiceMock) Emitir(ctx context.Context, input *domain.EmitirFactura) (*domain.Factura, error) {
	args := m.Called(ctx, input)
	if v := args.Get(0); v != nil {
		return v.(*domain.Factura), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *facturacionServiceMock) Update(ctx context.Context, id int64, factura *domain.Factura) error {
	return m.Called(ctx, id, factura).Error(0)
}

func (m *facturacionServiceMock) UpdateEstado(ctx context.Context, cambio *domain.CambioEstadoFactura) error {
	return m.Called(ctx, cambio).Error(0)
}

func (m *facturacionServiceMock) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *facturacionServiceMock) GetDetalles(ctx context.Context, idFactura int64) ([]*domain.Detalle, error) {
	args := m.Called(ctx, idFactura)
	if v := args.Get(0); v != nil {
		return v.([]*domain.Detalle), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *facturacionServiceMock) AddDetalle(ctx context.Context, idFactura int64, detalle *domain.Detalle) (*domain.Detalle, error) {
	args := m.Called(ctx, idFactura, detalle)
	if v := args.Get(0); v != nil {
		return v.(*domain.Detalle), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *facturacionServiceMock) UpdateDetalle(ctx context.Context, idDetalle int64, detalle *domain.Detalle) error {
	return m.Called(ctx, idDetalle, detalle).Error(0)
}

func (m *facturacionServiceMock) DeleteDetalle(ctx context.Context, idDetalle int64) error {
	return m.Called(ctx, idDetalle).Error(0)
}

func (m *facturacionServiceMock) ReplaceDetalles(ctx context.Context, idFactura int64, detalles []domain.Detalle) error {
	return m.Called(ctx, idFactura, detalles).Error(0)
}

type usuarioServiceMock struct {
	mock.Mock
}

func (m *usuarioServiceMock) List(ctx context.Context) ([]*domain.Usuario, error) {
	args := m.Called(ctx)
	if v := args.Get(0); v != nil {
		return v.([]*domain.Usuario), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *usuarioServiceMock) GetByID(ctx context.Context, id int64) (*domain.Usuario, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*domain.Usuario), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *usuarioServiceMock) GetByUsuario(ctx context.Context, nombre string) (*domain.Usuario, error) {
	args := m.Called(ctx, nombre)
	if v := args.Get(0); v != nil {
		return v.(*domain.Usuario), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *usuarioServiceMock) ExistsByUsuario(ctx context.Context, nombre string) (bool, error) {
	args := m.Called(ctx, nombre)
	return args.Bool(0), args.Error(1)
}

func (m *usuarioServiceMock) Create(ctx context.Context, usuario *domain.Usuario, contrasena string) (*domain.Usuario, error) {
	args := m.Called(ctx, usuario, contrasena)
	if v := args.Get(0); v != nil {
		return v.(*domain.Usuario), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *usuarioServiceMock) Update(ctx context.Context, id int64, usuario *domain.Usuario, contrasena string) error {
	return m.Called(ctx, id, usuario, contrasena).Error(0)
}

func (m *usuarioServiceMock) Deactivate(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *usuarioServiceMock) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *usuarioServiceMock) Login(ctx context.Context, nombre, contrasena string) (*domain.Usuario, string, error) {
	args := m.Called(ctx, nombre, contrasena)
	if v := args.Get(0); v != nil {
		return v.(*domain.Usuario), args.String(1), args.Error(2)
	}
	return nil, args.String(1), args.Error(2)
}
