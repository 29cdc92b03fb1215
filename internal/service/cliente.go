package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/facturapp/facturacion-api/internal/domain"
	"github.com/facturapp/facturacion-api/internal/utils/cedula"
)

const correoPorDefecto = "sin-correo@mail.com"

// ClienteService implements domain.ClienteService.
type ClienteService struct {
	clienteRepo domain.ClienteRepository
}

func NewClienteService(clienteRepo domain.ClienteRepository) *ClienteService {
	return &ClienteService{clienteRepo: clienteRepo}
}

func validateCliente(c *domain.Cliente) error {
	if c.Nombre == "" || c.Apellido == "" || c.Telefono == "" || c.Direccion == "" {
		return domain.ErrInvalidInput
	}
	if c.FechaNacimiento.IsZero() {
		return domain.ErrInvalidInput
	}
	if !cedula.Validate(c.Cedula) {
		return domain.ErrInvalidInput
	}
	return nil
}

func (s *ClienteService) List(ctx context.Context) ([]*domain.Cliente, error) {
	clientes, err := s.clienteRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("cliente service: failed to list clientes: %w", err)
	}
	return clientes, nil
}

func (s *ClienteService) GetByID(ctx context.Context, id int64) (*domain.Cliente, error) {
	cliente, err := s.clienteRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrClienteNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("cliente service: failed to get cliente %d: %w", id, err)
	}
	return cliente, nil
}

func (s *ClienteService) GetByCedula(ctx context.Context, ced string) (*domain.Cliente, error) {
	if !cedula.Validate(ced) {
		return nil, domain.ErrInvalidInput
	}

	cliente, err := s.clienteRepo.GetByCedula(ctx, ced)
	if err != nil {
		if errors.Is(err, domain.ErrClienteNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("cliente service: failed to get cliente by cedula %q: %w", ced, err)
	}
	return cliente, nil
}

func (s *ClienteService) ExistsByCedula(ctx context.Context, ced string) (bool, error) {
	if !cedula.Validate(ced) {
		return false, domain.ErrInvalidInput
	}

	exists, err := s.clienteRepo.ExistsByCedula(ctx, ced)
	if err != nil {
		return false, fmt.Errorf("cliente service: failed to check cedula %q: %w", ced, err)
	}
	return exists, nil
}

func (s *ClienteService) Create(ctx context.Context, cliente *domain.Cliente) (*domain.Cliente, error) {
	if err := validateCliente(cliente); err != nil {
		return nil, err
	}
	if cliente.Correo == "" {
		cliente.Correo = correoPorDefecto
	}

	exists, err := s.clienteRepo.ExistsByCedula(ctx, cliente.Cedula)
	if err != nil {
		return nil, fmt.Errorf("cliente service: failed to check cedula %q: %w", cliente.Cedula, err)
	}
	if exists {
		return nil, domain.ErrClienteExists
	}

	created, err := s.clienteRepo.Create(ctx, cliente)
	if err != nil {
		return nil, fmt.Errorf("cliente service: failed to create cliente: %w", err)
	}
	return created, nil
}

func (s *ClienteService) Update(ctx context.Context, id int64, cliente *domain.Cliente) error {
	if err := validateCliente(cliente); err != nil {
		return err
	}
	if cliente.Estado != domain.EstadoActivo && cliente.Estado != domain.EstadoInactivo {
		return domain.ErrInvalidInput
	}

	existing, err := s.clienteRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrClienteNotFound) {
			return err
		}
		return fmt.Errorf("cliente service: failed to get cliente %d: %w", id, err)
	}

	// A cedula change must not collide with another cliente.
	if cliente.Cedula != existing.Cedula {
		exists, err := s.clienteRepo.ExistsByCedula(ctx, cliente.Cedula)
		if err != nil {
			return fmt.Errorf("cliente service: failed to check cedula %q: %w", cliente.Cedula, err)
		}
		if exists {
			return domain.ErrClienteExists
		}
	}

	if err := s.clienteRepo.Update(ctx, id, cliente); err != nil {
		if errors.Is(err, domain.ErrClienteNotFound) {
			return err
		}
		return fmt.Errorf("cliente service: failed to update cliente %d: %w", id, err)
	}
	return nil
}

func (s *ClienteService) Deactivate(ctx context.Context, id int64) error {
	if err := s.clienteRepo.SoftDelete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrClienteNotFound) {
			return err
		}
		return fmt.Errorf("cliente service: failed to deactivate cliente %d: %w", id, err)
	}
	return nil
}

func (s *ClienteService) Delete(ctx context.Context, id int64) error {
	if err := s.clienteRepo.HardDelete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrClienteNotFound) || errors.Is(err, domain.ErrHasReferences) {
			return err
		}
		return fmt.Errorf("cliente service: failed to delete cliente %d: %w", id, err)
	}
	return nil
}
