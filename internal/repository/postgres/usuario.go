package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/facturapp/facturacion-api/internal/domain"
	"github.com/jackc/pgx/v5"
)

// UsuarioRepository implements domain.UsuarioRepository.
type UsuarioRepository struct {
	db DBTX
}

func NewUsuarioRepository(db DBTX) *UsuarioRepository {
	return &UsuarioRepository{db: db}
}

const usuarioColumns = `id_usuario, usuario, contrasena_hash, nombre, apellido, rol, estado_usuario`

func scanUsuario(row pgx.Row) (*domain.Usuario, error) {
	u := &domain.Usuario{}
	err := row.Scan(&u.ID, &u.Usuario, &u.Hash, &u.Nombre, &u.Apellido, &u.Rol, &u.Estado)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *UsuarioRepository) List(ctx context.Context) ([]*domain.Usuario, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+usuarioColumns+`
		 FROM usuarios
		 WHERE estado_usuario = $1
		 ORDER BY id_usuario DESC`,
		domain.EstadoActivo,
	)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to list usuarios: %w", err)
	}
	defer rows.Close()

	var usuarios []*domain.Usuario
	for rows.Next() {
		u, err := scanUsuario(rows)
		if err != nil {
			return nil, fmt.Errorf("repository: failed to scan usuario: %w", err)
		}
		usuarios = append(usuarios, u)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating usuarios: %w", err)
	}

	return usuarios, nil
}

func (r *UsuarioRepository) GetByID(ctx context.Context, id int64) (*domain.Usuario, error) {
	u, err := scanUsuario(r.db.QueryRow(ctx,
		`SELECT `+usuarioColumns+` FROM usuarios WHERE id_usuario = $1`,
		id,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUsuarioNotFound
		}
		return nil, fmt.Errorf("repository: failed to get usuario %d: %w", id, err)
	}

	return u, nil
}

func (r *UsuarioRepository) GetByUsuario(ctx context.Context, nombre string) (*domain.Usuario, error) {
	u, err := scanUsuario(r.db.QueryRow(ctx,
		`SELECT `+usuarioColumns+` FROM usuarios WHERE usuario = $1`,
		nombre,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUsuarioNotFound
		}
		return nil, fmt.Errorf("repository: failed to get usuario %q: %w", nombre, err)
	}

	return u, nil
}

func (r *UsuarioRepository) ExistsByUsuario(ctx context.Context, nombre string) (bool, error) {
	var total int64
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM usuarios WHERE usuario = $1`,
		nombre,
	).Scan(&total)
	if err != nil {
		return false, fmt.Errorf("repository: failed to check usuario %q: %w", nombre, err)
	}

	return total > 0, nil
}

func (r *UsuarioRepository) Create(ctx context.Context, usuario *domain.Usuario) (*domain.Usuario, error) {
	created := *usuario
	created.Estado = domain.EstadoActivo

	err := r.db.QueryRow(ctx,
		`INSERT INTO usuarios (usuario, contrasena_hash, nombre, apellido, rol, estado_usuario)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id_usuario`,
		usuario.Usuario, usuario.Hash, usuario.Nombre, usuario.Apellido, usuario.Rol, domain.EstadoActivo,
	).Scan(&created.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrUsuarioExists
		}
		return nil, fmt.Errorf("repository: failed to create usuario %q: %w", usuario.Usuario, err)
	}

	return &created, nil
}

func (r *UsuarioRepository) Update(ctx context.Context, id int64, usuario *domain.Usuario) error {
	result, err := r.db.Exec(ctx,
		`UPDATE usuarios
		 SET usuario = $1, contrasena_hash = $2, nombre = $3, apellido = $4, rol = $5, estado_usuario = $6
		 WHERE id_usuario = $7`,
		usuario.Usuario, usuario.Hash, usuario.Nombre, usuario.Apellido, usuario.Rol, usuario.Estado, id,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrUsuarioExists
		}
		return fmt.Errorf("repository: failed to update usuario %d: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return domain.ErrUsuarioNotFound
	}

	return nil
}

func (r *UsuarioRepository) SoftDelete(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx,
		`UPDATE usuarios SET estado_usuario = $1 WHERE id_usuario = $2`,
		domain.EstadoInactivo, id,
	)
	if err != nil {
		return fmt.Errorf("repository: failed to deactivate usuario %d: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return domain.ErrUsuarioNotFound
	}

	return nil
}

// HardDelete removes the row. Historial entries referencing the usuario
// surface as ErrHasReferences.
func (r *UsuarioRepository) HardDelete(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx,
		`DELETE FROM usuarios WHERE id_usuario = $1`,
		id,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrHasReferences
		}
		return fmt.Errorf("repository: failed to delete usuario %d: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return domain.ErrUsuarioNotFound
	}

	return nil
}
