package domain

import "context"

// ClienteRepository persists clientes.
type ClienteRepository interface {
	List(ctx context.Context) ([]*Cliente, error)
	GetByID(ctx context.Context, id int64) (*Cliente, error)
	GetByCedula(ctx context.Context, cedula string) (*Cliente, error)
	ExistsByCedula(ctx context.Context, cedula string) (bool, error)
	Create(ctx context.Context, cliente *Cliente) (*Cliente, error)
	Update(ctx context.Context, id int64, cliente *Cliente) error
	SoftDelete(ctx context.Context, id int64) error
	HardDelete(ctx context.Context, id int64) error
}

// ProductoRepository persists productos.
type ProductoRepository interface {
	List(ctx context.Context) ([]*Producto, error)
	ListAll(ctx context.Context) ([]*Producto, error)
	GetByID(ctx context.Context, id int64) (*Producto, error)
	SearchByNombre(ctx context.Context, nombre string) ([]*Producto, error)
	GetByCategoria(ctx context.Context, categoria string) ([]*Producto, error)
	ExistsByNombre(ctx context.Context, nombre string) (bool, error)
	Create(ctx context.Context, producto *Producto) (*Producto, error)
	Update(ctx context.Context, id int64, producto *Producto) error
	SoftDelete(ctx context.Context, id int64) error
	HardDelete(ctx context.Context, id int64) error
}

// MetodoPagoRepository persists payment methods.
type MetodoPagoRepository interface {
	List(ctx context.Context) ([]*MetodoPago, error)
	ListDisponibles(ctx context.Context) ([]*MetodoPago, error)
	GetByID(ctx context.Context, id int64) (*MetodoPago, error)
	GetByTipo(ctx context.Context, tipo TipoPago) (*MetodoPago, error)
	ExistsByTipo(ctx context.Context, tipo TipoPago) (bool, error)
	Create(ctx context.Context, metodo *MetodoPago) (*MetodoPago, error)
	Update(ctx context.Context, id int64, metodo *MetodoPago) error
	ToggleDisponible(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
	EnsureDefaults(ctx context.Context) error
}

// PedidoRepository persists pedidos and their detalle lines.
type PedidoRepository interface {
	List(ctx context.Context) ([]*Pedido, error)
	GetByID(ctx context.Context, id int64) (*Pedido, error)
	GetByCliente(ctx context.Context, idCliente int64) ([]*Pedido, error)
	GetByEstado(ctx context.Context, estado EstadoPedido) ([]*Pedido, error)
	GetConfirmados(ctx context.Context) ([]*Pedido, error)
	CreateWithDetalles(ctx context.Context, pedido *Pedido, detalles []Detalle) (*Pedido, error)
	Update(ctx context.Context, id int64, pedido *Pedido) error
	UpdateEstado(ctx context.Context, id int64, estado EstadoPedido) error
	CountFacturas(ctx context.Context, id int64) (int64, error)
	Delete(ctx context.Context, id int64) error
	GetDetalles(ctx context.Context, idPedido int64) ([]*Detalle, error)
	AddDetalle(ctx context.Context, idPedido int64, detalle *Detalle) (*Detalle, error)
	UpdateDetalle(ctx context.Context, idDetalle int64, detalle *Detalle) error
	DeleteDetalle(ctx context.Context, idDetalle int64) error
	ReplaceDetalles(ctx context.Context, idPedido int64, detalles []Detalle) error
}

// FacturaRepository persists facturas and their detalle lines. The multi-table
// writes (create, emitir, delete, replace) run inside a single transaction.
type FacturaRepository interface {
	List(ctx context.Context) ([]*Factura, error)
	GetByID(ctx context.Context, id int64) (*Factura, error)
	GetByCliente(ctx context.Context, idCliente int64) ([]*Factura, error)
	GetByClienteCedula(ctx context.Context, cedula string) ([]*Factura, error)
	GetByEstado(ctx context.Context, estado EstadoFactura) ([]*Factura, error)
	NextID(ctx context.Context) (int64, error)
	CreateWithDetalles(ctx context.Context, factura *Factura, detalles []Detalle) (*Factura, error)
	EmitirConPedido(ctx context.Context, pedido *Pedido, detallesPedido []Detalle, factura *Factura, detallesFactura []Detalle) (*Factura, error)
	Update(ctx context.Context, id int64, factura *Factura) error
	UpdateEstado(ctx context.Context, id int64, estado EstadoFactura) error
	Delete(ctx context.Context, id int64) error
	GetDetalles(ctx context.Context, idFactura int64) ([]*Detalle, error)
	AddDetalle(ctx context.Context, idFactura int64, detalle *Detalle) (*Detalle, error)
	UpdateDetalle(ctx context.Context, idDetalle int64, detalle *Detalle) error
	DeleteDetalle(ctx context.Context, idDetalle int64) error
	ReplaceDetalles(ctx context.Context, idFactura int64, detalles []Detalle) error
}

// HistorialRepository persists the invoice status audit trail.
type HistorialRepository interface {
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

// UsuarioRepository persists system users.
type UsuarioRepository interface {
	List(ctx context.Context) ([]*Usuario, error)
	GetByID(ctx context.Context, id int64) (*Usuario, error)
	GetByUsuario(ctx context.Context, nombre string) (*Usuario, error)
	ExistsByUsuario(ctx context.Context, nombre string) (bool, error)
	Create(ctx context.Context, usuario *Usuario) (*Usuario, error)
	Update(ctx context.Context, id int64, usuario *Usuario) error
	SoftDelete(ctx context.Context, id int64) error
	HardDelete(ctx context.Context, id int64) error
}
