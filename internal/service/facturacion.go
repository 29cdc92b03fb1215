package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/facturapp/facturacion-api/internal/domain"
	"github.com/facturapp/facturacion-api/internal/utils/money"
)

// FacturacionService implements domain.FacturacionService. It owns the
// multi-entity emission sequence (pedido, factura, historial) and keeps the
// store consistent when any step fails.
type FacturacionService struct {
	facturaRepo   domain.FacturaRepository
	pedidoRepo    domain.PedidoRepository
	clienteRepo   domain.ClienteRepository
	metodoRepo    domain.MetodoPagoRepository
	historialRepo domain.HistorialRepository
	logger        *zap.Logger
}

func NewFacturacionService(
	facturaRepo domain.FacturaRepository,
	pedidoRepo domain.PedidoRepository,
	clienteRepo domain.ClienteRepository,
	metodoRepo domain.MetodoPagoRepository,
	historialRepo domain.HistorialRepository,
	logger *zap.Logger,
) *FacturacionService {
	return &FacturacionService{
		facturaRepo:   facturaRepo,
		pedidoRepo:    pedidoRepo,
		clienteRepo:   clienteRepo,
		metodoRepo:    metodoRepo,
		historialRepo: historialRepo,
		logger:        logger,
	}
}

// Codigo derives the display code from the factura id. The code is never
// stored or counted separately, so concurrent emissions cannot race on it.
func Codigo(id int64) string {
	return fmt.Sprintf("FAC-%03d", id)
}

func validEstadoFactura(estado domain.EstadoFactura) bool {
	switch estado {
	case domain.FacturaEmitida, domain.FacturaEnProceso, domain.FacturaAnulada, domain.FacturaRechazada:
		return true
	}
	return false
}

func (s *FacturacionService) List(ctx context.Context) ([]*domain.Factura, error) {
	facturas, err := s.facturaRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("facturacion service: failed to list facturas: %w", err)
	}
	return facturas, nil
}

func (s *FacturacionService) GetByID(ctx context.Context, id int64) (*domain.Factura, error) {
	factura, err := s.facturaRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrFacturaNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("facturacion service: failed to get factura %d: %w", id, err)
	}
	return factura, nil
}

func (s *FacturacionService) GetByCliente(ctx context.Context, idCliente int64) ([]*domain.Factura, error) {
	facturas, err := s.facturaRepo.GetByCliente(ctx, idCliente)
	if err != nil {
		return nil, fmt.Errorf("facturacion service: failed to get facturas of cliente %d: %w", idCliente, err)
	}
	return facturas, nil
}

func (s *FacturacionService) GetByClienteCedula(ctx context.Context, cedula string) ([]*domain.Factura, error) {
	facturas, err := s.facturaRepo.GetByClienteCedula(ctx, cedula)
	if err != nil {
		return nil, fmt.Errorf("facturacion service: failed to get facturas by cedula %q: %w", cedula, err)
	}
	return facturas, nil
}

func (s *FacturacionService) GetByEstado(ctx context.Context, estado domain.EstadoFactura) ([]*domain.Factura, error) {
	if !validEstadoFactura(estado) {
		return nil, domain.ErrInvalidInput
	}

	facturas, err := s.facturaRepo.GetByEstado(ctx, estado)
	if err != nil {
		return nil, fmt.Errorf("facturacion service: failed to get facturas by estado %q: %w", estado, err)
	}
	return facturas, nil
}

// NextCodigo previews the display code the next emission would take.
func (s *FacturacionService) NextCodigo(ctx context.Context) (string, error) {
	next, err := s.facturaRepo.NextID(ctx)
	if err != nil {
		return "", fmt.Errorf("facturacion service: failed to preview codigo: %w", err)
	}
	return Codigo(next), nil
}

// Emitir runs the invoice workflow: resolve the cliente and metodo de pago,
// normalize the lines and totals, then persist pedido and factura in a single
// transaction. The historial append afterwards is best-effort.
func (s *FacturacionService) Emitir(ctx context.Context, input *domain.EmitirFactura) (*domain.Factura, error) {
	detalles, err := normalizeDetalles(input.Detalles)
	if err != nil {
		return nil, err
	}

	cliente, err := s.resolveCliente(ctx, input)
	if err != nil {
		return nil, err
	}

	if input.IDPago <= 0 {
		return nil, domain.ErrInvalidInput
	}
	metodo, err := s.metodoRepo.GetByID(ctx, input.IDPago)
	if err != nil {
		if errors.Is(err, domain.ErrMetodoPagoNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("facturacion service: failed to get metodo de pago %d: %w", input.IDPago, err)
	}

	subtotal := sumDetalles(detalles)
	if input.Subtotal != nil {
		subtotal = money.Round2(*input.Subtotal)
	}
	iva := money.IVA(subtotal)
	if input.ValorIVA != nil {
		iva = money.Round2(*input.ValorIVA)
	}
	total := money.Sum(subtotal, iva)
	if input.Total != nil {
		total = money.Round2(*input.Total)
	}
	if total <= 0 {
		return nil, domain.ErrInvalidInput
	}

	estado := input.Estado
	if estado == "" {
		estado = domain.FacturaEmitida
	}
	if estado != domain.FacturaEmitida && estado != domain.FacturaEnProceso {
		return nil, domain.ErrInvalidInput
	}

	hoy := domain.NewDate(time.Now().Date())
	fechaFactura := input.FechaFactura
	if fechaFactura.IsZero() {
		fechaFactura = hoy
	}

	factura := &domain.Factura{
		IDCliente: cliente.ID,
		IDPago:    metodo.ID,
		Fecha:     fechaFactura,
		Subtotal:  subtotal,
		ValorIVA:  iva,
		Total:     total,
		Estado:    estado,
	}

	var created *domain.Factura
	if input.IDPedido > 0 {
		created, err = s.emitirSobrePedido(ctx, input.IDPedido, factura, detalles)
	} else {
		created, err = s.emitirConPedidoNuevo(ctx, input, factura, detalles)
	}
	if err != nil {
		return nil, err
	}

	s.appendHistorial(ctx, &domain.HistorialFactura{
		IDFactura:   created.ID,
		IDUsuario:   input.IDUsuario,
		EstadoNuevo: created.Estado,
	})

	return created, nil
}

func (s *FacturacionService) resolveCliente(ctx context.Context, input *domain.EmitirFactura) (*domain.Cliente, error) {
	var (
		cliente *domain.Cliente
		err     error
	)
	switch {
	case input.IDCliente > 0:
		cliente, err = s.clienteRepo.GetByID(ctx, input.IDCliente)
	case input.Cedula != "":
		cliente, err = s.clienteRepo.GetByCedula(ctx, input.Cedula)
	default:
		return nil, domain.ErrInvalidInput
	}
	if err != nil {
		// Emission never registers a cliente on the fly.
		if errors.Is(err, domain.ErrClienteNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("facturacion service: failed to resolve cliente: %w", err)
	}
	return cliente, nil
}

func (s *FacturacionService) emitirSobrePedido(ctx context.Context, idPedido int64, factura *domain.Factura, detalles []domain.Detalle) (*domain.Factura, error) {
	pedido, err := s.pedidoRepo.GetByID(ctx, idPedido)
	if err != nil {
		if errors.Is(err, domain.ErrPedidoNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("facturacion service: failed to get pedido %d: %w", idPedido, err)
	}
	if pedido.Estado == domain.PedidoFacturado {
		return nil, domain.ErrPedidoFacturado
	}

	factura.IDPedido = pedido.ID
	created, err := s.facturaRepo.CreateWithDetalles(ctx, factura, detalles)
	if err != nil {
		return nil, fmt.Errorf("facturacion service: failed to emit factura for pedido %d: %w", idPedido, err)
	}
	return created, nil
}

func (s *FacturacionService) emitirConPedidoNuevo(ctx context.Context, input *domain.EmitirFactura, factura *domain.Factura, detalles []domain.Detalle) (*domain.Factura, error) {
	fechaPedido := input.FechaPedido
	if fechaPedido.IsZero() {
		fechaPedido = factura.Fecha
	}
	fechaEntrega := input.FechaEntrega
	if fechaEntrega.IsZero() {
		fechaEntrega = fechaPedido
	}

	pedido := &domain.Pedido{
		IDCliente:    factura.IDCliente,
		FechaPedido:  fechaPedido,
		FechaEntrega: fechaEntrega,
		Subtotal:     factura.Subtotal,
		Total:        factura.Subtotal,
	}

	created, err := s.facturaRepo.EmitirConPedido(ctx, pedido, detalles, factura, detalles)
	if err != nil {
		return nil, fmt.Errorf("facturacion service: failed to emit factura: %w", err)
	}
	return created, nil
}

// appendHistorial records the transition when the acting user is known.
// Failures are logged and swallowed, never rolling back the factura.
func (s *FacturacionService) appendHistorial(ctx context.Context, entrada *domain.HistorialFactura) {
	if entrada.IDUsuario <= 0 {
		return
	}

	if _, err := s.historialRepo.Create(ctx, entrada); err != nil {
		s.logger.Warn("failed to append historial entry",
			zap.Int64("id_factura", entrada.IDFactura),
			zap.Int64("id_usuario", entrada.IDUsuario),
			zap.String("estado_nuevo", string(entrada.EstadoNuevo)),
			zap.Error(err),
		)
	}
}

// Update rewrites the factura header. ANULADA facturas are frozen.
func (s *FacturacionService) Update(ctx context.Context, id int64, factura *domain.Factura) error {
	if factura.IDCliente <= 0 || factura.IDPago <= 0 || factura.IDPedido <= 0 || factura.Fecha.IsZero() {
		return domain.ErrInvalidInput
	}
	if !validEstadoFactura(factura.Estado) {
		return domain.ErrInvalidInput
	}

	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing.Estado == domain.FacturaAnulada {
		return domain.ErrFacturaAnulada
	}

	if err := s.facturaRepo.Update(ctx, id, factura); err != nil {
		if errors.Is(err, domain.ErrFacturaNotFound) || errors.Is(err, domain.ErrPedidoNotFound) {
			return err
		}
		return fmt.Errorf("facturacion service: failed to update factura %d: %w", id, err)
	}
	return nil
}

// UpdateEstado moves the factura to any of the four estados and appends a
// best-effort historial entry with the previous and new values.
func (s *FacturacionService) UpdateEstado(ctx context.Context, cambio *domain.CambioEstadoFactura) error {
	if !validEstadoFactura(cambio.Estado) {
		return domain.ErrInvalidInput
	}

	existing, err := s.GetByID(ctx, cambio.IDFactura)
	if err != nil {
		return err
	}

	if err := s.facturaRepo.UpdateEstado(ctx, cambio.IDFactura, cambio.Estado); err != nil {
		if errors.Is(err, domain.ErrFacturaNotFound) {
			return err
		}
		return fmt.Errorf("facturacion service: failed to update estado of factura %d: %w", cambio.IDFactura, err)
	}

	s.appendHistorial(ctx, &domain.HistorialFactura{
		IDFactura:      cambio.IDFactura,
		IDUsuario:      cambio.IDUsuario,
		EstadoAnterior: existing.Estado,
		EstadoNuevo:    cambio.Estado,
		Motivo:         cambio.Motivo,
	})

	return nil
}

// Delete removes the factura with its detalles and historial.
func (s *FacturacionService) Delete(ctx context.Context, id int64) error {
	if err := s.facturaRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrFacturaNotFound) {
			return err
		}
		return fmt.Errorf("facturacion service: failed to delete factura %d: %w", id, err)
	}
	return nil
}

func (s *FacturacionService) GetDetalles(ctx context.Context, idFactura int64) ([]*domain.Detalle, error) {
	if _, err := s.GetByID(ctx, idFactura); err != nil {
		return nil, err
	}

	detalles, err := s.facturaRepo.GetDetalles(ctx, idFactura)
	if err != nil {
		return nil, fmt.Errorf("facturacion service: failed to get detalles of factura %d: %w", idFactura, err)
	}
	return detalles, nil
}

func (s *FacturacionService) AddDetalle(ctx context.Context, idFactura int64, detalle *domain.Detalle) (*domain.Detalle, error) {
	if err := validateDetalle(detalle); err != nil {
		return nil, err
	}

	existing, err := s.GetByID(ctx, idFactura)
	if err != nil {
		return nil, err
	}
	if existing.Estado == domain.FacturaAnulada {
		return nil, domain.ErrFacturaAnulada
	}

	created, err := s.facturaRepo.AddDetalle(ctx, idFactura, detalle)
	if err != nil {
		if errors.Is(err, domain.ErrFacturaNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("facturacion service: failed to add detalle to factura %d: %w", idFactura, err)
	}
	return created, nil
}

func (s *FacturacionService) UpdateDetalle(ctx context.Context, idDetalle int64, detalle *domain.Detalle) error {
	if err := validateDetalle(detalle); err != nil {
		return err
	}

	if err := s.facturaRepo.UpdateDetalle(ctx, idDetalle, detalle); err != nil {
		if errors.Is(err, domain.ErrDetalleNotFound) {
			return err
		}
		return fmt.Errorf("facturacion service: failed to update detalle %d: %w", idDetalle, err)
	}
	return nil
}

func (s *FacturacionService) DeleteDetalle(ctx context.Context, idDetalle int64) error {
	if err := s.facturaRepo.DeleteDetalle(ctx, idDetalle); err != nil {
		if errors.Is(err, domain.ErrDetalleNotFound) {
			return err
		}
		return fmt.Errorf("facturacion service: failed to delete detalle %d: %w", idDetalle, err)
	}
	return nil
}

func (s *FacturacionService) ReplaceDetalles(ctx context.Context, idFactura int64, detalles []domain.Detalle) error {
	normalized, err := normalizeDetalles(detalles)
	if err != nil {
		return err
	}

	existing, err := s.GetByID(ctx, idFactura)
	if err != nil {
		return err
	}
	if existing.Estado == domain.FacturaAnulada {
		return domain.ErrFacturaAnulada
	}

	if err := s.facturaRepo.ReplaceDetalles(ctx, idFactura, normalized); err != nil {
		return fmt.Errorf("facturacion service: failed to replace detalles of factura %d: %w", idFactura, err)
	}
	return nil
}
