package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/facturapp/facturacion-api/internal/domain"
)

// MetodoPagoService implements domain.MetodoPagoService.
type MetodoPagoService struct {
	metodoRepo domain.MetodoPagoRepository
}

func NewMetodoPagoService(metodoRepo domain.MetodoPagoRepository) *MetodoPagoService {
	return &MetodoPagoService{metodoRepo: metodoRepo}
}

func validTipoPago(tipo domain.TipoPago) bool {
	for _, t := range domain.TiposPagoValidos {
		if t == tipo {
			return true
		}
	}
	return false
}

func (s *MetodoPagoService) List(ctx context.Context) ([]*domain.MetodoPago, error) {
	metodos, err := s.metodoRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("metodo pago service: failed to list metodos: %w", err)
	}
	return metodos, nil
}

func (s *MetodoPagoService) ListDisponibles(ctx context.Context) ([]*domain.MetodoPago, error) {
	metodos, err := s.metodoRepo.ListDisponibles(ctx)
	if err != nil {
		return nil, fmt.Errorf("metodo pago service: failed to list metodos disponibles: %w", err)
	}
	return metodos, nil
}

func (s *MetodoPagoService) GetByID(ctx context.Context, id int64) (*domain.MetodoPago, error) {
	metodo, err := s.metodoRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrMetodoPagoNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("metodo pago service: failed to get metodo %d: %w", id, err)
	}
	return metodo, nil
}

func (s *MetodoPagoService) GetByTipo(ctx context.Context, tipo domain.TipoPago) (*domain.MetodoPago, error) {
	if !validTipoPago(tipo) {
		return nil, domain.ErrInvalidInput
	}

	metodo, err := s.metodoRepo.GetByTipo(ctx, tipo)
	if err != nil {
		if errors.Is(err, domain.ErrMetodoPagoNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("metodo pago service: failed to get metodo %q: %w", tipo, err)
	}
	return metodo, nil
}

func (s *MetodoPagoService) Create(ctx context.Context, metodo *domain.MetodoPago) (*domain.MetodoPago, error) {
	if !validTipoPago(metodo.Tipo) {
		return nil, domain.ErrInvalidInput
	}

	created, err := s.metodoRepo.Create(ctx, metodo)
	if err != nil {
		if errors.Is(err, domain.ErrMetodoPagoExists) {
			return nil, err
		}
		return nil, fmt.Errorf("metodo pago service: failed to create metodo %q: %w", metodo.Tipo, err)
	}
	return created, nil
}

func (s *MetodoPagoService) Update(ctx context.Context, id int64, metodo *domain.MetodoPago) error {
	if !validTipoPago(metodo.Tipo) {
		return domain.ErrInvalidInput
	}

	if err := s.metodoRepo.Update(ctx, id, metodo); err != nil {
		if errors.Is(err, domain.ErrMetodoPagoNotFound) || errors.Is(err, domain.ErrMetodoPagoExists) {
			return err
		}
		return fmt.Errorf("metodo pago service: failed to update metodo %d: %w", id, err)
	}
	return nil
}

func (s *MetodoPagoService) ToggleDisponible(ctx context.Context, id int64) error {
	if err := s.metodoRepo.ToggleDisponible(ctx, id); err != nil {
		if errors.Is(err, domain.ErrMetodoPagoNotFound) {
			return err
		}
		return fmt.Errorf("metodo pago service: failed to toggle metodo %d: %w", id, err)
	}
	return nil
}

func (s *MetodoPagoService) Delete(ctx context.Context, id int64) error {
	if err := s.metodoRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrMetodoPagoNotFound) || errors.Is(err, domain.ErrHasReferences) {
			return err
		}
		return fmt.Errorf("metodo pago service: failed to delete metodo %d: %w", id, err)
	}
	return nil
}
