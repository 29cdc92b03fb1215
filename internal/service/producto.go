package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/facturapp/facturacion-api/internal/domain"
)

// ProductoService implements domain.ProductoService.
type ProductoService struct {
	productoRepo domain.ProductoRepository
}

func NewProductoService(productoRepo domain.ProductoRepository) *ProductoService {
	return &ProductoService{productoRepo: productoRepo}
}

func validateProducto(p *domain.Producto) error {
	if p.Nombre == "" || p.Categoria == "" || p.PrecioUnitario < 0 {
		return domain.ErrInvalidInput
	}
	return nil
}

func (s *ProductoService) List(ctx context.Context) ([]*domain.Producto, error) {
	productos, err := s.productoRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("producto service: failed to list productos: %w", err)
	}
	return productos, nil
}

func (s *ProductoService) ListAll(ctx context.Context) ([]*domain.Producto, error) {
	productos, err := s.productoRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("producto service: failed to list all productos: %w", err)
	}
	return productos, nil
}

func (s *ProductoService) GetByID(ctx context.Context, id int64) (*domain.Producto, error) {
	producto, err := s.productoRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrProductoNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("producto service: failed to get producto %d: %w", id, err)
	}
	return producto, nil
}

func (s *ProductoService) SearchByNombre(ctx context.Context, nombre string) ([]*domain.Producto, error) {
	if nombre == "" {
		return nil, domain.ErrInvalidInput
	}

	productos, err := s.productoRepo.SearchByNombre(ctx, nombre)
	if err != nil {
		return nil, fmt.Errorf("producto service: failed to search productos by %q: %w", nombre, err)
	}
	return productos, nil
}

func (s *ProductoService) GetByCategoria(ctx context.Context, categoria string) ([]*domain.Producto, error) {
	if categoria == "" {
		return nil, domain.ErrInvalidInput
	}

	productos, err := s.productoRepo.GetByCategoria(ctx, categoria)
	if err != nil {
		return nil, fmt.Errorf("producto service: failed to get productos by categoria %q: %w", categoria, err)
	}
	return productos, nil
}

func (s *ProductoService) Create(ctx context.Context, producto *domain.Producto) (*domain.Producto, error) {
	if err := validateProducto(producto); err != nil {
		return nil, err
	}

	exists, err := s.productoRepo.ExistsByNombre(ctx, producto.Nombre)
	if err != nil {
		return nil, fmt.Errorf("producto service: failed to check producto %q: %w", producto.Nombre, err)
	}
	if exists {
		return nil, domain.ErrProductoExists
	}

	created, err := s.productoRepo.Create(ctx, producto)
	if err != nil {
		return nil, fmt.Errorf("producto service: failed to create producto: %w", err)
	}
	return created, nil
}

func (s *ProductoService) Update(ctx context.Context, id int64, producto *domain.Producto) error {
	if err := validateProducto(producto); err != nil {
		return err
	}
	if producto.Estado != domain.EstadoActivo && producto.Estado != domain.EstadoInactivo {
		return domain.ErrInvalidInput
	}

	existing, err := s.productoRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrProductoNotFound) {
			return err
		}
		return fmt.Errorf("producto service: failed to get producto %d: %w", id, err)
	}

	if producto.Nombre != existing.Nombre {
		exists, err := s.productoRepo.ExistsByNombre(ctx, producto.Nombre)
		if err != nil {
			return fmt.Errorf("producto service: failed to check producto %q: %w", producto.Nombre, err)
		}
		if exists {
			return domain.ErrProductoExists
		}
	}

	if err := s.productoRepo.Update(ctx, id, producto); err != nil {
		if errors.Is(err, domain.ErrProductoNotFound) {
			return err
		}
		return fmt.Errorf("producto service: failed to update producto %d: %w", id, err)
	}
	return nil
}

func (s *ProductoService) Deactivate(ctx context.Context, id int64) error {
	if err := s.productoRepo.SoftDelete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrProductoNotFound) {
			return err
		}
		return fmt.Errorf("producto service: failed to deactivate producto %d: %w", id, err)
	}
	return nil
}

func (s *ProductoService) Delete(ctx context.Context, id int64) error {
	if err := s.productoRepo.HardDelete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrProductoNotFound) || errors.Is(err, domain.ErrHasReferences) {
			return err
		}
		return fmt.Errorf("producto service: failed to delete producto %d: %w", id, err)
	}
	return nil
}
