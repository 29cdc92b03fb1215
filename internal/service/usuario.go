package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/facturapp/facturacion-api/internal/domain"
	"github.com/facturapp/facturacion-api/internal/utils/jwt"
	"github.com/facturapp/facturacion-api/internal/utils/password"
)

var usuarioNamePattern = regexp.MustCompile(`^[A-Za-z0-9._]{8,20}$`)

// UsuarioService implements domain.UsuarioService.
type UsuarioService struct {
	usuarioRepo    domain.UsuarioRepository
	passwordHasher password.Hasher
	jwtManager     *jwt.Manager
}

func NewUsuarioService(
	usuarioRepo domain.UsuarioRepository,
	passwordHasher password.Hasher,
	jwtManager *jwt.Manager,
) *UsuarioService {
	return &UsuarioService{
		usuarioRepo:    usuarioRepo,
		passwordHasher: passwordHasher,
		jwtManager:     jwtManager,
	}
}

func validRol(rol domain.Rol) bool {
	switch rol {
	case domain.RolAdministrador, domain.RolFacturacion, domain.RolContabilidad:
		return true
	}
	return false
}

func validateUsuario(u *domain.Usuario) error {
	if !usuarioNamePattern.MatchString(u.Usuario) {
		return domain.ErrInvalidInput
	}
	if u.Nombre == "" || u.Apellido == "" {
		return domain.ErrInvalidInput
	}
	if !validRol(u.Rol) {
		return domain.ErrInvalidInput
	}
	return nil
}

func (s *UsuarioService) List(ctx context.Context) ([]*domain.Usuario, error) {
	usuarios, err := s.usuarioRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("usuario service: failed to list usuarios: %w", err)
	}
	return usuarios, nil
}

func (s *UsuarioService) GetByID(ctx context.Context, id int64) (*domain.Usuario, error) {
	usuario, err := s.usuarioRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrUsuarioNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("usuario service: failed to get usuario %d: %w", id, err)
	}
	return usuario, nil
}

func (s *UsuarioService) GetByUsuario(ctx context.Context, nombre string) (*domain.Usuario, error) {
	if nombre == "" {
		return nil, domain.ErrInvalidInput
	}

	usuario, err := s.usuarioRepo.GetByUsuario(ctx, nombre)
	if err != nil {
		if errors.Is(err, domain.ErrUsuarioNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("usuario service: failed to get usuario %q: %w", nombre, err)
	}
	return usuario, nil
}

func (s *UsuarioService) ExistsByUsuario(ctx context.Context, nombre string) (bool, error) {
	if nombre == "" {
		return false, domain.ErrInvalidInput
	}

	exists, err := s.usuarioRepo.ExistsByUsuario(ctx, nombre)
	if err != nil {
		return false, fmt.Errorf("usuario service: failed to check usuario %q: %w", nombre, err)
	}
	return exists, nil
}

func (s *UsuarioService) Create(ctx context.Context, usuario *domain.Usuario, contrasena string) (*domain.Usuario, error) {
	if err := validateUsuario(usuario); err != nil {
		return nil, err
	}
	if contrasena == "" {
		return nil, domain.ErrInvalidInput
	}

	hash, err := s.passwordHasher.Hash(contrasena)
	if err != nil {
		return nil, fmt.Errorf("usuario service: failed to hash password for %q: %w", usuario.Usuario, err)
	}
	usuario.Hash = hash

	created, err := s.usuarioRepo.Create(ctx, usuario)
	if err != nil {
		if errors.Is(err, domain.ErrUsuarioExists) {
			return nil, err
		}
		return nil, fmt.Errorf("usuario service: failed to create usuario %q: %w", usuario.Usuario, err)
	}
	return created, nil
}

// Update rewrites the usuario. An empty contrasena keeps the stored hash.
func (s *UsuarioService) Update(ctx context.Context, id int64, usuario *domain.Usuario, contrasena string) error {
	if err := validateUsuario(usuario); err != nil {
		return err
	}
	if usuario.Estado != domain.EstadoActivo && usuario.Estado != domain.EstadoInactivo {
		return domain.ErrInvalidInput
	}

	existing, err := s.usuarioRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrUsuarioNotFound) {
			return err
		}
		return fmt.Errorf("usuario service: failed to get usuario %d: %w", id, err)
	}

	if contrasena == "" {
		usuario.Hash = existing.Hash
	} else {
		hash, err := s.passwordHasher.Hash(contrasena)
		if err != nil {
			return fmt.Errorf("usuario service: failed to hash password for %q: %w", usuario.Usuario, err)
		}
		usuario.Hash = hash
	}

	if err := s.usuarioRepo.Update(ctx, id, usuario); err != nil {
		if errors.Is(err, domain.ErrUsuarioNotFound) || errors.Is(err, domain.ErrUsuarioExists) {
			return err
		}
		return fmt.Errorf("usuario service: failed to update usuario %d: %w", id, err)
	}
	return nil
}

func (s *UsuarioService) Deactivate(ctx context.Context, id int64) error {
	if err := s.usuarioRepo.SoftDelete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrUsuarioNotFound) {
			return err
		}
		return fmt.Errorf("usuario service: failed to deactivate usuario %d: %w", id, err)
	}
	return nil
}

func (s *UsuarioService) Delete(ctx context.Context, id int64) error {
	if err := s.usuarioRepo.HardDelete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrUsuarioNotFound) || errors.Is(err, domain.ErrHasReferences) {
			return err
		}
		return fmt.Errorf("usuario service: failed to delete usuario %d: %w", id, err)
	}
	return nil
}

// Login verifies the credentials of an ACTIVO usuario and returns it with a
// signed session token. Unknown names, wrong passwords and inactive accounts
// all report the same credential error.
func (s *UsuarioService) Login(ctx context.Context, nombre, contrasena string) (*domain.Usuario, string, error) {
	if nombre == "" || contrasena == "" {
		return nil, "", domain.ErrInvalidInput
	}

	usuario, err := s.usuarioRepo.GetByUsuario(ctx, nombre)
	if err != nil {
		if errors.Is(err, domain.ErrUsuarioNotFound) {
			return nil, "", domain.ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("usuario service: failed to get usuario %q: %w", nombre, err)
	}

	if usuario.Estado != domain.EstadoActivo {
		return nil, "", domain.ErrInvalidCredentials
	}
	if err := s.passwordHasher.Check(usuario.Hash, contrasena); err != nil {
		return nil, "", domain.ErrInvalidCredentials
	}

	token, err := s.jwtManager.Generate(usuario.ID, string(usuario.Rol))
	if err != nil {
		return nil, "", fmt.Errorf("usuario service: failed to generate token for %q: %w", nombre, err)
	}

	return usuario, token, nil
}
