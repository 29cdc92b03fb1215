package domain

import "time"

// EstadoRegistro is the lifecycle status shared by clientes, productos and usuarios.
type EstadoRegistro string

const (
	EstadoActivo   EstadoRegistro = "ACTIVO"
	EstadoInactivo EstadoRegistro = "INACTIVO"
)

// EstadoPedido represents the order lifecycle.
type EstadoPedido string

const (
	PedidoPendiente  EstadoPedido = "PENDIENTE"
	PedidoConfirmado EstadoPedido = "CONFIRMADO"
	PedidoCancelado  EstadoPedido = "CANCELADO"
	PedidoFacturado  EstadoPedido = "FACTURADO"
)

// EstadoFactura represents the invoice lifecycle.
type EstadoFactura string

const (
	FacturaEmitida   EstadoFactura = "EMITIDA"
	FacturaEnProceso EstadoFactura = "EN PROCESO"
	FacturaAnulada   EstadoFactura = "ANULADA"
	FacturaRechazada EstadoFactura = "RECHAZADA"
)

// TipoPago is the payment method kind.
type TipoPago string

const (
	PagoEfectivo      TipoPago = "Efectivo"
	PagoTarjeta       TipoPago = "Tarjeta"
	PagoTransferencia TipoPago = "Transferencia"
	PagoCheque        TipoPago = "Cheque"
)

// TiposPagoValidos lists the payment kinds accepted on create/update and
// seeded at startup.
var TiposPagoValidos = []TipoPago{PagoEfectivo, PagoTarjeta, PagoTransferencia, PagoCheque}

// Rol is the role of a system user.
type Rol string

const (
	RolAdministrador Rol = "ADMINISTRADOR"
	RolFacturacion   Rol = "FACTURACION"
	RolContabilidad  Rol = "CONTABILIDAD"
)

// Cliente is a registered buyer, referenced by pedidos and facturas.
// Not to be confused with Usuario (system login).
type Cliente struct {
	ID              int64          `json:"idCliente"`
	Cedula          string         `json:"cedula"`
	Nombre          string         `json:"nombre"`
	Apellido        string         `json:"apellido"`
	Telefono        string         `json:"telefono"`
	Correo          string         `json:"correo"`
	Direccion       string         `json:"direccion"`
	FechaNacimiento Date           `json:"fechaNacimiento"`
	Estado          EstadoRegistro `json:"estadoCliente"`
}

// Producto is a sellable item. PrecioUnitario is the current unit price;
// detalle lines keep their own snapshot.
type Producto struct {
	ID              int64          `json:"idProducto"`
	Nombre          string         `json:"nombre"`
	Categoria       string         `json:"categoria"`
	Descripcion     string         `json:"descripcion"`
	PrecioUnitario  float64        `json:"precioUnitario"`
	AplicaIVA       bool           `json:"aplicaIVA"`
	AplicaDescuento bool           `json:"aplicaDescuento"`
	Estado          EstadoRegistro `json:"estadoProducto"`
}

// MetodoPago is a payment method offered at invoicing time.
type MetodoPago struct {
	ID         int64    `json:"idPago"`
	Tipo       TipoPago `json:"tipoPago"`
	Disponible bool     `json:"disponible"`
}

// Pedido is a confirmed cart of line items for a cliente, prior to invoicing.
// The cliente fields are populated on joined reads.
type Pedido struct {
	ID             int64        `json:"idPedido"`
	IDCliente      int64        `json:"idCliente"`
	FechaPedido    Date         `json:"fechaPedido"`
	FechaEntrega   Date         `json:"fechaEntrega"`
	Subtotal       float64      `json:"subtotalPedido"`
	ValorDescuento float64      `json:"valorDescuento"`
	Total          float64      `json:"totalPedido"`
	Estado         EstadoPedido `json:"estadoPedido"`

	Cedula          string `json:"cedula,omitempty"`
	NombreCliente   string `json:"nombreCliente,omitempty"`
	ApellidoCliente string `json:"apellidoCliente,omitempty"`
}

// Factura is the billed, tax-inclusive document derived from exactly one
// pedido.
type Factura struct {
	ID        int64         `json:"idFactura"`
	IDCliente int64         `json:"idCliente"`
	IDPago    int64         `json:"idPago"`
	IDPedido  int64         `json:"idPedido"`
	Fecha     Date          `json:"fechaFactura"`
	Subtotal  float64       `json:"subtotalFactura"`
	ValorIVA  float64       `json:"valorIva"`
	Total     float64       `json:"totalFactura"`
	Estado    EstadoFactura `json:"estadoFactura"`

	Cedula          string       `json:"cedula,omitempty"`
	NombreCliente   string       `json:"nombreCliente,omitempty"`
	ApellidoCliente string       `json:"apellidoCliente,omitempty"`
	TipoPago        TipoPago     `json:"tipoPago,omitempty"`
	EstadoPedido    EstadoPedido `json:"estadoPedido,omitempty"`
}

// Detalle is a line item attached to a pedido or a factura. Descripcion and
// Precio are snapshots taken at entry time, independent of the producto row.
type Detalle struct {
	ID          int64   `json:"idDetalle"`
	IDProducto  int64   `json:"idProducto"`
	Descripcion string  `json:"descripcion"`
	Precio      float64 `json:"precio"`
	Cantidad    int     `json:"cantidad"`
	Subtotal    float64 `json:"subtotalDetalle"`

	NombreProducto string `json:"nombreProducto,omitempty"`
	Categoria      string `json:"categoria,omitempty"`
}

// HistorialFactura is one entry of the append-only audit trail of invoice
// status transitions. The usuario fields are populated on joined reads.
type HistorialFactura struct {
	ID             int64         `json:"idHistorial"`
	IDFactura      int64         `json:"idFactura"`
	IDUsuario      int64         `json:"idUsuario"`
	EstadoAnterior EstadoFactura `json:"estadoAnterior"`
	EstadoNuevo    EstadoFactura `json:"estadoNuevo"`
	FechaCambio    time.Time     `json:"fechaCambio"`
	Motivo         *string       `json:"motivo"`

	Usuario         string `json:"usuario,omitempty"`
	NombreUsuario   string `json:"nombreUsuario,omitempty"`
	ApellidoUsuario string `json:"apellidoUsuario,omitempty"`
}

// Usuario is a system login (employee), not a buyer. The password hash never
// leaves the server.
type Usuario struct {
	ID       int64          `json:"idUsuario"`
	Usuario  string         `json:"usuario"`
	Hash     string         `json:"-"`
	Nombre   string         `json:"nombre"`
	Apellido string         `json:"apellido"`
	Rol      Rol            `json:"rol"`
	Estado   EstadoRegistro `json:"estadoUsuario"`
}
