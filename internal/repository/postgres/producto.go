package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/facturapp/facturacion-api/internal/domain"
	"github.com/jackc/pgx/v5"
)

// ProductoRepository implements domain.ProductoRepository.
type ProductoRepository struct {
	db DBTX
}

func NewProductoRepository(db DBTX) *ProductoRepository {
	return &ProductoRepository{db: db}
}

const productoColumns = `id_producto, nombre, categoria, descripcion, precio_unitario, aplica_iva, aplica_descuento, estado_producto`

func scanProducto(row pgx.Row) (*domain.Producto, error) {
	p := &domain.Producto{}
	err := row.Scan(&p.ID, &p.Nombre, &p.Categoria, &p.Descripcion, &p.PrecioUnitario, &p.AplicaIVA, &p.AplicaDescuento, &p.Estado)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *ProductoRepository) collect(rows pgx.Rows, queryErr error, op string) ([]*domain.Producto, error) {
	if queryErr != nil {
		return nil, fmt.Errorf("repository: failed to %s: %w", op, queryErr)
	}
	defer rows.Close()

	var productos []*domain.Producto
	for rows.Next() {
		p, err := scanProducto(rows)
		if err != nil {
			return nil, fmt.Errorf("repository: failed to scan producto: %w", err)
		}
		productos = append(productos, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating productos: %w", err)
	}

	return productos, nil
}

// List returns the ACTIVO productos, newest first.
func (r *ProductoRepository) List(ctx context.Context) ([]*domain.Producto, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+productoColumns+`
		 FROM productos
		 WHERE estado_producto = $1
		 ORDER BY id_producto DESC`,
		domain.EstadoActivo,
	)
	return r.collect(rows, err, "list productos")
}

// ListAll returns every producto, inactive included.
func (r *ProductoRepository) ListAll(ctx context.Context) ([]*domain.Producto, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+productoColumns+` FROM productos ORDER BY id_producto DESC`,
	)
	return r.collect(rows, err, "list all productos")
}

func (r *ProductoRepository) GetByID(ctx context.Context, id int64) (*domain.Producto, error) {
	p, err := scanProducto(r.db.QueryRow(ctx,
		`SELECT `+productoColumns+` FROM productos WHERE id_producto = $1`,
		id,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrProductoNotFound
		}
		return nil, fmt.Errorf("repository: failed to get producto %d: %w", id, err)
	}

	return p, nil
}

// SearchByNombre matches actives by name substring.
func (r *ProductoRepository) SearchByNombre(ctx context.Context, nombre string) ([]*domain.Producto, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+productoColumns+`
		 FROM productos
		 WHERE nombre LIKE '%' || $1 || '%' AND estado_producto = $2
		 ORDER BY id_producto DESC`,
		nombre, domain.EstadoActivo,
	)
	return r.collect(rows, err, "search productos by nombre")
}

// GetByCategoria matches actives by exact category.
func (r *ProductoRepository) GetByCategoria(ctx context.Context, categoria string) ([]*domain.Producto, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+productoColumns+`
		 FROM productos
		 WHERE categoria = $1 AND estado_producto = $2
		 ORDER BY id_producto DESC`,
		categoria, domain.EstadoActivo,
	)
	return r.collect(rows, err, "get productos by categoria")
}

func (r *ProductoRepository) ExistsByNombre(ctx context.Context, nombre string) (bool, error) {
	var total int64
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM productos WHERE nombre = $1`,
		nombre,
	).Scan(&total)
	if err != nil {
		return false, fmt.Errorf("repository: failed to check producto by nombre %q: %w", nombre, err)
	}

	return total > 0, nil
}

func (r *ProductoRepository) Create(ctx context.Context, producto *domain.Producto) (*domain.Producto, error) {
	created := *producto
	created.Estado = domain.EstadoActivo

	err := r.db.QueryRow(ctx,
		`INSERT INTO productos (nombre, categoria, descripcion, precio_unitario, aplica_iva, aplica_descuento, estado_producto)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id_producto`,
		producto.Nombre, producto.Categoria, producto.Descripcion,
		producto.PrecioUnitario, producto.AplicaIVA, producto.AplicaDescuento, domain.EstadoActivo,
	).Scan(&created.ID)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to create producto %q: %w", producto.Nombre, err)
	}

	return &created, nil
}

func (r *ProductoRepository) Update(ctx context.Context, id int64, producto *domain.Producto) error {
	result, err := r.db.Exec(ctx,
		`UPDATE productos
		 SET nombre = $1, categoria = $2, descripcion = $3, precio_unitario = $4,
		     aplica_iva = $5, aplica_descuento = $6, estado_producto = $7
		 WHERE id_producto = $8`,
		producto.Nombre, producto.Categoria, producto.Descripcion, producto.PrecioUnitario,
		producto.AplicaIVA, producto.AplicaDescuento, producto.Estado, id,
	)
	if err != nil {
		return fmt.Errorf("repository: failed to update producto %d: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return domain.ErrProductoNotFound
	}

	return nil
}

func (r *ProductoRepository) SoftDelete(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx,
		`UPDATE productos SET estado_producto = $1 WHERE id_producto = $2`,
		domain.EstadoInactivo, id,
	)
	if err != nil {
		return fmt.Errorf("repository: failed to deactivate producto %d: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return domain.ErrProductoNotFound
	}

	return nil
}

func (r *ProductoRepository) HardDelete(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx,
		`DELETE FROM productos WHERE id_producto = $1`,
		id,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrHasReferences
		}
		return fmt.Errorf("repository: failed to delete producto %d: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return domain.ErrProductoNotFound
	}

	return nil
}
