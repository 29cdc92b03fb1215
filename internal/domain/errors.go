package domain

import "errors"

// Input and credential errors.
var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Cliente errors.
var (
	ErrClienteNotFound = errors.New("cliente not found")
	ErrClienteExists   = errors.New("cliente already exists")
)

// Producto errors.
var (
	ErrProductoNotFound = errors.New("producto not found")
	ErrProductoExists   = errors.New("producto already exists")
)

// MetodoPago errors.
var (
	ErrMetodoPagoNotFound = errors.New("metodo de pago not found")
	ErrMetodoPagoExists   = errors.New("metodo de pago already exists")
)

// Pedido errors.
var (
	ErrPedidoNotFound  = errors.New("pedido not found")
	ErrPedidoFacturado = errors.New("pedido already invoiced")
)

// Factura errors.
var (
	ErrFacturaNotFound = errors.New("factura not found")
	ErrFacturaAnulada  = errors.New("factura is voided")
	ErrDetalleNotFound = errors.New("detalle not found")
	ErrSinDetalles     = errors.New("at least one detalle is required")
)

// Historial errors.
var (
	ErrHistorialNotFound = errors.New("historial entry not found")
)

// Usuario errors.
var (
	ErrUsuarioNotFound = errors.New("usuario not found")
	ErrUsuarioExists   = errors.New("usuario already exists")
)

// ErrHasReferences reports a hard delete blocked by dependent rows.
var ErrHasReferences = errors.New("record has dependent rows")
