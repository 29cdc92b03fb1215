package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/facturapp/facturacion-api/internal/domain"
)

// HistorialService implements domain.HistorialService.
type HistorialService struct {
	historialRepo domain.HistorialRepository
}

func NewHistorialService(historialRepo domain.HistorialRepository) *HistorialService {
	return &HistorialService{historialRepo: historialRepo}
}

func (s *HistorialService) List(ctx context.Context) ([]*domain.HistorialFactura, error) {
	entradas, err := s.historialRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("historial service: failed to list historial: %w", err)
	}
	return entradas, nil
}

func (s *HistorialService) GetByID(ctx context.Context, id int64) (*domain.HistorialFactura, error) {
	entrada, err := s.historialRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrHistorialNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("historial service: failed to get historial %d: %w", id, err)
	}
	return entrada, nil
}

func (s *HistorialService) GetByFactura(ctx context.Context, idFactura int64) ([]*domain.HistorialFactura, error) {
	entradas, err := s.historialRepo.GetByFactura(ctx, idFactura)
	if err != nil {
		return nil, fmt.Errorf("historial service: failed to get historial of factura %d: %w", idFactura, err)
	}
	return entradas, nil
}

func (s *HistorialService) GetByUsuario(ctx context.Context, idUsuario int64) ([]*domain.HistorialFactura, error) {
	entradas, err := s.historialRepo.GetByUsuario(ctx, idUsuario)
	if err != nil {
		return nil, fmt.Errorf("historial service: failed to get historial of usuario %d: %w", idUsuario, err)
	}
	return entradas, nil
}

func (s *HistorialService) GetByFechas(ctx context.Context, inicio, fin domain.Date) ([]*domain.HistorialFactura, error) {
	if inicio.IsZero() || fin.IsZero() || fin.Before(inicio.Time) {
		return nil, domain.ErrInvalidInput
	}

	entradas, err := s.historialRepo.GetByFechas(ctx, inicio, fin)
	if err != nil {
		return nil, fmt.Errorf("historial service: failed to get historial by fechas: %w", err)
	}
	return entradas, nil
}

func (s *HistorialService) Create(ctx context.Context, entrada *domain.HistorialFactura) (*domain.HistorialFactura, error) {
	if entrada.IDFactura <= 0 || entrada.IDUsuario <= 0 {
		return nil, domain.ErrInvalidInput
	}
	if !validEstadoFactura(entrada.EstadoAnterior) || !validEstadoFactura(entrada.EstadoNuevo) {
		return nil, domain.ErrInvalidInput
	}

	created, err := s.historialRepo.Create(ctx, entrada)
	if err != nil {
		if errors.Is(err, domain.ErrFacturaNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("historial service: failed to create historial: %w", err)
	}
	return created, nil
}

func (s *HistorialService) Delete(ctx context.Context, id int64) error {
	if err := s.historialRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrHistorialNotFound) {
			return err
		}
		return fmt.Errorf("historial service: failed to delete historial %d: %w", id, err)
	}
	return nil
}

func (s *HistorialService) DeleteByFactura(ctx context.Context, idFactura int64) (int64, error) {
	deleted, err := s.historialRepo.DeleteByFactura(ctx, idFactura)
	if err != nil {
		return 0, fmt.Errorf("historial service: failed to delete historial of factura %d: %w", idFactura, err)
	}
	return deleted, nil
}

func (s *HistorialService) DeleteByUsuario(ctx context.Context, idUsuario int64) (int64, error) {
	deleted, err := s.historialRepo.DeleteByUsuario(ctx, idUsuario)
	if err != nil {
		return 0, fmt.Errorf("historial service: failed to delete historial of usuario %d: %w", idUsuario, err)
	}
	return deleted, nil
}
