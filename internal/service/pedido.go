package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/facturapp/facturacion-api/internal/domain"
	"github.com/facturapp/facturacion-api/internal/utils/money"
)

// PedidoService implements domain.PedidoService.
type PedidoService struct {
	pedidoRepo domain.PedidoRepository
}

func NewPedidoService(pedidoRepo domain.PedidoRepository) *PedidoService {
	return &PedidoService{pedidoRepo: pedidoRepo}
}

func validEstadoPedido(estado domain.EstadoPedido) bool {
	switch estado {
	case domain.PedidoPendiente, domain.PedidoConfirmado, domain.PedidoCancelado, domain.PedidoFacturado:
		return true
	}
	return false
}

func (s *PedidoService) List(ctx context.Context) ([]*domain.Pedido, error) {
	pedidos, err := s.pedidoRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("pedido service: failed to list pedidos: %w", err)
	}
	return pedidos, nil
}

func (s *PedidoService) GetByID(ctx context.Context, id int64) (*domain.Pedido, error) {
	pedido, err := s.pedidoRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrPedidoNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("pedido service: failed to get pedido %d: %w", id, err)
	}
	return pedido, nil
}

func (s *PedidoService) GetByCliente(ctx context.Context, idCliente int64) ([]*domain.Pedido, error) {
	pedidos, err := s.pedidoRepo.GetByCliente(ctx, idCliente)
	if err != nil {
		return nil, fmt.Errorf("pedido service: failed to get pedidos of cliente %d: %w", idCliente, err)
	}
	return pedidos, nil
}

func (s *PedidoService) GetByEstado(ctx context.Context, estado domain.EstadoPedido) ([]*domain.Pedido, error) {
	if !validEstadoPedido(estado) {
		return nil, domain.ErrInvalidInput
	}

	pedidos, err := s.pedidoRepo.GetByEstado(ctx, estado)
	if err != nil {
		return nil, fmt.Errorf("pedido service: failed to get pedidos by estado %q: %w", estado, err)
	}
	return pedidos, nil
}

func (s *PedidoService) GetConfirmados(ctx context.Context) ([]*domain.Pedido, error) {
	pedidos, err := s.pedidoRepo.GetConfirmados(ctx)
	if err != nil {
		return nil, fmt.Errorf("pedido service: failed to get pedidos confirmados: %w", err)
	}
	return pedidos, nil
}

// Create validates and persists a pedido with its lines. Line subtotals are
// recomputed; header totals are computed from the lines when left at zero.
func (s *PedidoService) Create(ctx context.Context, pedido *domain.Pedido, detalles []domain.Detalle) (*domain.Pedido, error) {
	if pedido.IDCliente <= 0 || pedido.FechaPedido.IsZero() || pedido.FechaEntrega.IsZero() {
		return nil, domain.ErrInvalidInput
	}

	normalized, err := normalizeDetalles(detalles)
	if err != nil {
		return nil, err
	}

	if pedido.Estado == "" {
		pedido.Estado = domain.PedidoPendiente
	}
	if !validEstadoPedido(pedido.Estado) {
		return nil, domain.ErrInvalidInput
	}

	if pedido.Subtotal == 0 {
		pedido.Subtotal = sumDetalles(normalized)
	}
	if pedido.Total == 0 {
		pedido.Total = money.Sum(pedido.Subtotal, -pedido.ValorDescuento)
	}

	created, err := s.pedidoRepo.CreateWithDetalles(ctx, pedido, normalized)
	if err != nil {
		if errors.Is(err, domain.ErrClienteNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("pedido service: failed to create pedido: %w", err)
	}
	return created, nil
}

// Update rewrites the pedido header. FACTURADO pedidos are frozen.
func (s *PedidoService) Update(ctx context.Context, id int64, pedido *domain.Pedido) error {
	if pedido.IDCliente <= 0 || pedido.FechaPedido.IsZero() || pedido.FechaEntrega.IsZero() {
		return domain.ErrInvalidInput
	}
	if !validEstadoPedido(pedido.Estado) {
		return domain.ErrInvalidInput
	}

	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing.Estado == domain.PedidoFacturado {
		return domain.ErrPedidoFacturado
	}

	if err := s.pedidoRepo.Update(ctx, id, pedido); err != nil {
		if errors.Is(err, domain.ErrPedidoNotFound) || errors.Is(err, domain.ErrClienteNotFound) {
			return err
		}
		return fmt.Errorf("pedido service: failed to update pedido %d: %w", id, err)
	}
	return nil
}

// UpdateEstado changes the pedido status. Once FACTURADO the pedido belongs
// to its factura and cannot move back.
func (s *PedidoService) UpdateEstado(ctx context.Context, id int64, estado domain.EstadoPedido) error {
	if !validEstadoPedido(estado) {
		return domain.ErrInvalidInput
	}

	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing.Estado == domain.PedidoFacturado && estado != domain.PedidoFacturado {
		return domain.ErrPedidoFacturado
	}

	if err := s.pedidoRepo.UpdateEstado(ctx, id, estado); err != nil {
		if errors.Is(err, domain.ErrPedidoNotFound) {
			return err
		}
		return fmt.Errorf("pedido service: failed to update estado of pedido %d: %w", id, err)
	}
	return nil
}

// Delete removes a pedido unless a factura references it.
func (s *PedidoService) Delete(ctx context.Context, id int64) error {
	total, err := s.pedidoRepo.CountFacturas(ctx, id)
	if err != nil {
		return fmt.Errorf("pedido service: failed to count facturas of pedido %d: %w", id, err)
	}
	if total > 0 {
		return domain.ErrHasReferences
	}

	if err := s.pedidoRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrPedidoNotFound) || errors.Is(err, domain.ErrHasReferences) {
			return err
		}
		return fmt.Errorf("pedido service: failed to delete pedido %d: %w", id, err)
	}
	return nil
}

func (s *PedidoService) GetDetalles(ctx context.Context, idPedido int64) ([]*domain.Detalle, error) {
	if _, err := s.GetByID(ctx, idPedido); err != nil {
		return nil, err
	}

	detalles, err := s.pedidoRepo.GetDetalles(ctx, idPedido)
	if err != nil {
		return nil, fmt.Errorf("pedido service: failed to get detalles of pedido %d: %w", idPedido, err)
	}
	return detalles, nil
}

func (s *PedidoService) AddDetalle(ctx context.Context, idPedido int64, detalle *domain.Detalle) (*domain.Detalle, error) {
	if err := validateDetalle(detalle); err != nil {
		return nil, err
	}

	existing, err := s.GetByID(ctx, idPedido)
	if err != nil {
		return nil, err
	}
	if existing.Estado == domain.PedidoFacturado {
		return nil, domain.ErrPedidoFacturado
	}

	created, err := s.pedidoRepo.AddDetalle(ctx, idPedido, detalle)
	if err != nil {
		if errors.Is(err, domain.ErrPedidoNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("pedido service: failed to add detalle to pedido %d: %w", idPedido, err)
	}
	return created, nil
}

func (s *PedidoService) UpdateDetalle(ctx context.Context, idDetalle int64, detalle *domain.Detalle) error {
	if err := validateDetalle(detalle); err != nil {
		return err
	}

	if err := s.pedidoRepo.UpdateDetalle(ctx, idDetalle, detalle); err != nil {
		if errors.Is(err, domain.ErrDetalleNotFound) {
			return err
		}
		return fmt.Errorf("pedido service: failed to update detalle %d: %w", idDetalle, err)
	}
	return nil
}

func (s *PedidoService) DeleteDetalle(ctx context.Context, idDetalle int64) error {
	if err := s.pedidoRepo.DeleteDetalle(ctx, idDetalle); err != nil {
		if errors.Is(err, domain.ErrDetalleNotFound) {
			return err
		}
		return fmt.Errorf("pedido service: failed to delete detalle %d: %w", idDetalle, err)
	}
	return nil
}

func (s *PedidoService) ReplaceDetalles(ctx context.Context, idPedido int64, detalles []domain.Detalle) error {
	normalized, err := normalizeDetalles(detalles)
	if err != nil {
		return err
	}

	existing, err := s.GetByID(ctx, idPedido)
	if err != nil {
		return err
	}
	if existing.Estado == domain.PedidoFacturado {
		return domain.ErrPedidoFacturado
	}

	if err := s.pedidoRepo.ReplaceDetalles(ctx, idPedido, normalized); err != nil {
		return fmt.Errorf("pedido service: failed to replace detalles of pedido %d: %w", idPedido, err)
	}
	return nil
}
