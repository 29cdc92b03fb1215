package domain

import "context"

// EmitirFactura is the request-scoped input of the invoice emission workflow.
// The cliente is resolved by id when set, by cedula otherwise. IDPedido, when
// set, reuses an existing pedido instead of creating one. Nil totals are
// computed from the detalle lines. IDUsuario identifies the acting user for
// the audit trail and may be zero when unknown.
type EmitirFactura struct {
	IDCliente int64
	Cedula    string
	IDPago    int64
	IDPedido  int64

	FechaFactura Date
	FechaPedido  Date
	FechaEntrega Date

	Subtotal *float64
	ValorIVA *float64
	Total    *float64

	Estado   EstadoFactura
	Detalles []Detalle

	IDUsuario int64
}

// CambioEstadoFactura is the input of an invoice status transition.
type CambioEstadoFactura struct {
	IDFactura int64
	Estado    EstadoFactura
	IDUsuario int64
	Motivo    *string
}

// ClienteService manages clientes.
type ClienteService interface {
	List(ctx context.Context) ([]*Cliente, error)
	GetByID(ctx context.Context, id int64) (*Cliente, error)
	GetByCedula(ctx context.Context, cedula string) (*Cliente, error)
	ExistsByCedula(ctx context.Context, cedula string) (bool, error)
	Create(ctx context.Context, cliente *Cliente) (*Cliente, error)
	Update(ctx context.Context, id int64, cliente *Cliente) error
	Deactivate(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
}

// ProductoService manages productos.
type ProductoService interface {
	List(ctx context.Context) ([]*Producto, error)
	ListAll(ctx context.Context) ([]*Producto, error)
	GetByID(ctx context.Context, id int64) (*Producto, error)
	SearchByNombre(ctx context.Context, nombre string) ([]*Producto, error)
	GetByCategoria(ctx context.Context, categoria string) ([]*Producto, error)
	Create(ctx context.Context, producto *Producto) (*Producto, error)
	Update(ctx context.Context, id int64, producto *Producto) error
	Deactivate(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
}

// MetodoPagoService manages payment methods.
type MetodoPagoService interface {
	List(ctx context.Context) ([]*MetodoPago, error)
	ListDisponibles(ctx context.Context) ([]*MetodoPago, error)
	GetByID(ctx context.Context, id int64) (*MetodoPago, error)
	GetByTipo(ctx context.Context, tipo TipoPago) (*MetodoPago, error)
	Create(ctx context.Context, metodo *MetodoPago) (*MetodoPago, error)
	Update(ctx context.Context, id int64, metodo *MetodoPago) error
	ToggleDisponible(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
}

// PedidoService manages pedidos and their detalle lines.
type PedidoService interface {
	List(ctx context.Context) ([]*Pedido, error)
	GetByID(ctx context.Context, id int64) (*Pedido, error)
	GetByCliente(ctx context.Context, idCliente int64) ([]*Pedido, error)
	GetByEstado(ctx context.Context, estado EstadoPedido) ([]*Pedido, error)
	GetConfirmados(ctx context.Context) ([]*Pedido, error)
	Create(ctx context.Context, pedido *Pedido, detalles []Detalle) (*Pedido, error)
	Update(ctx context.Context, id int64, pedido *Pedido) error
	UpdateEstado(ctx context.Context, id int64, estado EstadoPedido) error
	Delete(ctx context.Context, id int64) error
	GetDetalles(ctx context.Context, idPedido int64) ([]*Detalle, error)
	AddDetalle(ctx context.Context, idPedido int64, detalle *Detalle) (*Detalle, error)
	UpdateDetalle(ctx context.Context, idDetalle int64, detalle *Detalle) error
	DeleteDetalle(ctx context.Context, idDetalle int64) error
	ReplaceDetalles(ctx context.Context, idPedido int64, detalles []Detalle) error
}

// FacturacionService orchestrates the invoice workflow and manages facturas.
type FacturacionService interface {
	List(ctx context.Context) ([]*Factura, error)
	GetByID(ctx context.Context, id int64) (*Factura, error)
	GetByCliente(ctx context.Context, idCliente int64) ([]*Factura, error)
	GetByClienteCedula(ctx context.Context, cedula string) ([]*Factura, error)
	GetByEstado(ctx context.Context, estado EstadoFactura) ([]*Factura, error)
	NextCodigo(ctx context.Context) (string, error)
	Emitir(ctx context.Context, input *EmitirFactura) (*Factura, error)
	Update(ctx context.Context, id int64, factura *Factura) error
	UpdateEstado(ctx context.Context, cambio *CambioEstadoFactura) error
	Delete(ctx context.Context, id int64) error
	GetDetalles(ctx context.Context, idFactura int64) ([]*Detalle, error)
	AddDetalle(ctx context.Context, idFactura int64, detalle *Detalle) (*Detalle, error)
	UpdateDetalle(ctx context.Context, idDetalle int64, detalle *Detalle) error
	DeleteDetalle(ctx context.Context, idDetalle int64) error
	ReplaceDetalles(ctx context.Context, idFactura int64, detalles []Detalle) error
}

// HistorialService manages the invoice status audit trail.
type HistorialService interface {
	List(ctx context.Context) ([]*HistorialFactura, error)
	GetByID(ctx context.Context, id int64) (*HistorialFactura, error)
	GetByFactura(ctx context.Context, idFactura int64) ([]*HistorialFactura, error)
	GetByUsuario(ctx context.Context, idUsuario int64) ([]*HistorialFactura, error)
	GetByFechas(ctx context.Context, inicio, fin Date) ([]*HistorialFactura, error)
	Create(ctx context.Context, entrada *HistorialFactura) (*HistorialFactura, error)
	Delete(ctx context.Context, id int64) error
	DeleteByFactura(ctx context.Context, idFactura int64) (int64, error)
	DeleteByUsuario(ctx context.Context, idUsuario int64) (int64, error)
}

// UsuarioService manages system users and authentication.
type UsuarioService interface {
	List(ctx context.Context) ([]*Usuario, error)
	GetByID(ctx context.Context, id int64) (*Usuario, error)
	GetByUsuario(ctx context.Context, nombre string) (*Usuario, error)
	ExistsByUsuario(ctx context.Context, nombre string) (bool, error)
	Create(ctx context.Context, usuario *Usuario, contrasena string) (*Usuario, error)
	Update(ctx context.Context, id int64, usuario *Usuario, contrasena string) error
	Deactivate(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
	Login(ctx context.Context, nombre, contrasena string) (*Usuario, string, error)
}
