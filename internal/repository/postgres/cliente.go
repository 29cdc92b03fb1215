package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/facturapp/facturacion-api/internal/domain"
	"github.com/jackc/pgx/v5"
)

// ClienteRepository implements domain.ClienteRepository.
type ClienteRepository struct {
	db DBTX
}

func NewClienteRepository(db DBTX) *ClienteRepository {
	return &ClienteRepository{db: db}
}

const clienteColumns = `id_cliente, cedula, nombre, apellido, telefono, correo, direccion, fecha_nacimiento, estado_cliente`

func scanCliente(row pgx.Row) (*domain.Cliente, error) {
	c := &domain.Cliente{}
	err := row.Scan(&c.ID, &c.Cedula, &c.Nombre, &c.Apellido, &c.Telefono, &c.Correo, &c.Direccion, &c.FechaNacimiento, &c.Estado)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// List returns the ACTIVO clientes, newest first.
func (r *ClienteRepository) List(ctx context.Context) ([]*domain.Cliente, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+clienteColumns+`
		 FROM clientes
		 WHERE estado_cliente = $1
		 ORDER BY id_cliente DESC`,
		domain.EstadoActivo,
	)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to list clientes: %w", err)
	}
	defer rows.Close()

	var clientes []*domain.Cliente
	for rows.Next() {
		c, err := scanCliente(rows)
		if err != nil {
			return nil, fmt.Errorf("repository: failed to scan cliente: %w", err)
		}
		clientes = append(clientes, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating clientes: %w", err)
	}

	return clientes, nil
}

// GetByID returns the cliente regardless of estado, so soft-deleted rows stay
// reachable by internal id.
func (r *ClienteRepository) GetByID(ctx context.Context, id int64) (*domain.Cliente, error) {
	c, err := scanCliente(r.db.QueryRow(ctx,
		`SELECT `+clienteColumns+` FROM clientes WHERE id_cliente = $1`,
		id,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrClienteNotFound
		}
		return nil, fmt.Errorf("repository: failed to get cliente %d: %w", id, err)
	}

	return c, nil
}

func (r *ClienteRepository) GetByCedula(ctx context.Context, cedula string) (*domain.Cliente, error) {
	c, err := scanCliente(r.db.QueryRow(ctx,
		`SELECT `+clienteColumns+` FROM clientes WHERE cedula = $1`,
		cedula,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrClienteNotFound
		}
		return nil, fmt.Errorf("repository: failed to get cliente by cedula %q: %w", cedula, err)
	}

	return c, nil
}

func (r *ClienteRepository) ExistsByCedula(ctx context.Context, cedula string) (bool, error) {
	var total int64
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM clientes WHERE cedula = $1`,
		cedula,
	).Scan(&total)
	if err != nil {
		return false, fmt.Errorf("repository: failed to check cliente by cedula %q: %w", cedula, err)
	}

	return total > 0, nil
}

func (r *ClienteRepository) Create(ctx context.Context, cliente *domain.Cliente) (*domain.Cliente, error) {
	created := *cliente
	created.Estado = domain.EstadoActivo

	err := r.db.QueryRow(ctx,
		`INSERT INTO clientes (cedula, nombre, apellido, telefono, correo, direccion, fecha_nacimiento, estado_cliente)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id_cliente`,
		cliente.Cedula, cliente.Nombre, cliente.Apellido, cliente.Telefono,
		cliente.Correo, cliente.Direccion, cliente.FechaNacimiento, domain.EstadoActivo,
	).Scan(&created.ID)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to create cliente %q: %w", cliente.Cedula, err)
	}

	return &created, nil
}

func (r *ClienteRepository) Update(ctx context.Context, id int64, cliente *domain.Cliente) error {
	result, err := r.db.Exec(ctx,
		`UPDATE clientes
		 SET cedula = $1, nombre = $2, apellido = $3, telefono = $4, correo = $5,
		     direccion = $6, fecha_nacimiento = $7, estado_cliente = $8
		 WHERE id_cliente = $9`,
		cliente.Cedula, cliente.Nombre, cliente.Apellido, cliente.Telefono,
		cliente.Correo, cliente.Direccion, cliente.FechaNacimiento, cliente.Estado, id,
	)
	if err != nil {
		return fmt.Errorf("repository: failed to update cliente %d: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return domain.ErrClienteNotFound
	}

	return nil
}

// SoftDelete flips the cliente to INACTIVO, keeping the row.
func (r *ClienteRepository) SoftDelete(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx,
		`UPDATE clientes SET estado_cliente = $1 WHERE id_cliente = $2`,
		domain.EstadoInactivo, id,
	)
	if err != nil {
		return fmt.Errorf("repository: failed to deactivate cliente %d: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return domain.ErrClienteNotFound
	}

	return nil
}

// HardDelete removes the row. Pedidos or facturas referencing the cliente
// surface as ErrHasReferences.
func (r *ClienteRepository) HardDelete(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx,
		`DELETE FROM clientes WHERE id_cliente = $1`,
		id,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrHasReferences
		}
		return fmt.Errorf("repository: failed to delete cliente %d: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return domain.ErrClienteNotFound
	}

	return nil
}
