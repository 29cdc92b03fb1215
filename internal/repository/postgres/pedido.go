package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/facturapp/facturacion-api/internal/domain"
	"github.com/jackc/pgx/v5"
)

// PedidoRepository implements domain.PedidoRepository.
type PedidoRepository struct {
	db DBTX
}

func NewPedidoRepository(db DBTX) *PedidoRepository {
	return &PedidoRepository{db: db}
}

const pedidoColumns = `p.id_pedido, p.id_cliente, p.fecha_pedido, p.fecha_entrega,
	p.subtotal_pedido, p.valor_descuento, p.total_pedido, p.estado_pedido,
	c.cedula, c.nombre, c.apellido`

const pedidoFrom = ` FROM pedidos p JOIN clientes c ON c.id_cliente = p.id_cliente `

func scanPedido(row pgx.Row) (*domain.Pedido, error) {
	p := &domain.Pedido{}
	err := row.Scan(&p.ID, &p.IDCliente, &p.FechaPedido, &p.FechaEntrega,
		&p.Subtotal, &p.ValorDescuento, &p.Total, &p.Estado,
		&p.Cedula, &p.NombreCliente, &p.ApellidoCliente)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *PedidoRepository) collect(rows pgx.Rows, queryErr error, op string) ([]*domain.Pedido, error) {
	if queryErr != nil {
		return nil, fmt.Errorf("repository: failed to %s: %w", op, queryErr)
	}
	defer rows.Close()

	var pedidos []*domain.Pedido
	for rows.Next() {
		p, err := scanPedido(rows)
		if err != nil {
			return nil, fmt.Errorf("repository: failed to scan pedido: %w", err)
		}
		pedidos = append(pedidos, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating pedidos: %w", err)
	}

	return pedidos, nil
}

func (r *PedidoRepository) List(ctx context.Context) ([]*domain.Pedido, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+pedidoColumns+pedidoFrom+`ORDER BY p.id_pedido DESC`,
	)
	return r.collect(rows, err, "list pedidos")
}

func (r *PedidoRepository) GetByID(ctx context.Context, id int64) (*domain.Pedido, error) {
	p, err := scanPedido(r.db.QueryRow(ctx,
		`SELECT `+pedidoColumns+pedidoFrom+`WHERE p.id_pedido = $1`,
		id,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPedidoNotFound
		}
		return nil, fmt.Errorf("repository: failed to get pedido %d: %w", id, err)
	}

	return p, nil
}

func (r *PedidoRepository) GetByCliente(ctx context.Context, idCliente int64) ([]*domain.Pedido, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+pedidoColumns+pedidoFrom+`WHERE p.id_cliente = $1 ORDER BY p.id_pedido DESC`,
		idCliente,
	)
	return r.collect(rows, err, "get pedidos by cliente")
}

func (r *PedidoRepository) GetByEstado(ctx context.Context, estado domain.EstadoPedido) ([]*domain.Pedido, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+pedidoColumns+pedidoFrom+`WHERE p.estado_pedido = $1 ORDER BY p.id_pedido DESC`,
		estado,
	)
	return r.collect(rows, err, "get pedidos by estado")
}

// GetConfirmados lists the pedidos ready to be invoiced.
func (r *PedidoRepository) GetConfirmados(ctx context.Context) ([]*domain.Pedido, error) {
	return r.GetByEstado(ctx, domain.PedidoConfirmado)
}

// CreateWithDetalles inserts the pedido header and its lines in one
// transaction, so a pedido can never exist half written.
func (r *PedidoRepository) CreateWithDetalles(ctx context.Context, pedido *domain.Pedido, detalles []domain.Detalle) (*domain.Pedido, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	created := *pedido

	err = tx.QueryRow(ctx,
		`INSERT INTO pedidos (id_cliente, fecha_pedido, fecha_entrega, subtotal_pedido, valor_descuento, total_pedido, estado_pedido)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id_pedido`,
		pedido.IDCliente, pedido.FechaPedido, pedido.FechaEntrega,
		pedido.Subtotal, pedido.ValorDescuento, pedido.Total, pedido.Estado,
	).Scan(&created.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, domain.ErrClienteNotFound
		}
		return nil, fmt.Errorf("repository: failed to create pedido: %w", err)
	}

	if err := copyDetalles(ctx, tx, "detalle_pedido", "id_pedido", created.ID, detalles); err != nil {
		return nil, fmt.Errorf("repository: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("repository: failed to commit pedido: %w", err)
	}

	return &created, nil
}

func (r *PedidoRepository) Update(ctx context.Context, id int64, pedido *domain.Pedido) error {
	result, err := r.db.Exec(ctx,
		`UPDATE pedidos
		 SET id_cliente = $1, fecha_pedido = $2, fecha_entrega = $3,
		     subtotal_pedido = $4, valor_descuento = $5, total_pedido = $6, estado_pedido = $7
		 WHERE id_pedido = $8`,
		pedido.IDCliente, pedido.FechaPedido, pedido.FechaEntrega,
		pedido.Subtotal, pedido.ValorDescuento, pedido.Total, pedido.Estado, id,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrClienteNotFound
		}
		return fmt.Errorf("repository: failed to update pedido %d: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return domain.ErrPedidoNotFound
	}

	return nil
}

func (r *PedidoRepository) UpdateEstado(ctx context.Context, id int64, estado domain.EstadoPedido) error {
	result, err := r.db.Exec(ctx,
		`UPDATE pedidos SET estado_pedido = $1 WHERE id_pedido = $2`,
		estado, id,
	)
	if err != nil {
		return fmt.Errorf("repository: failed to update estado of pedido %d: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return domain.ErrPedidoNotFound
	}

	return nil
}

// CountFacturas reports how many facturas reference the pedido. Deleting is
// blocked while the count is non-zero.
func (r *PedidoRepository) CountFacturas(ctx context.Context, id int64) (int64, error) {
	var total int64
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM facturas WHERE id_pedido = $1`,
		id,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("repository: failed to count facturas of pedido %d: %w", id, err)
	}

	return total, nil
}

// Delete removes the pedido and its lines in one transaction.
func (r *PedidoRepository) Delete(ctx context.Context, id int64) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("repository: failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM detalle_pedido WHERE id_pedido = $1`, id); err != nil {
		return fmt.Errorf("repository: failed to delete detalles of pedido %d: %w", id, err)
	}

	result, err := tx.Exec(ctx, `DELETE FROM pedidos WHERE id_pedido = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrHasReferences
		}
		return fmt.Errorf("repository: failed to delete pedido %d: %w", id, err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrPedidoNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("repository: failed to commit pedido delete: %w", err)
	}

	return nil
}

func (r *PedidoRepository) GetDetalles(ctx context.Context, idPedido int64) ([]*domain.Detalle, error) {
	rows, err := r.db.Query(ctx,
		`SELECT d.id_detalle, d.id_producto, d.descripcion, d.precio, d.cantidad, d.subtotal_detalle,
		        pr.nombre, pr.categoria
		 FROM detalle_pedido d
		 JOIN productos pr ON pr.id_producto = d.id_producto
		 WHERE d.id_pedido = $1
		 ORDER BY d.id_detalle ASC`,
		idPedido,
	)
	return collectDetalles(rows, err, "get detalles of pedido")
}

func (r *PedidoRepository) AddDetalle(ctx context.Context, idPedido int64, detalle *domain.Detalle) (*domain.Detalle, error) {
	created := *detalle

	err := r.db.QueryRow(ctx,
		`INSERT INTO detalle_pedido (id_producto, id_pedido, descripcion, precio, cantidad, subtotal_detalle)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id_detalle`,
		detalle.IDProducto, idPedido, detalle.Descripcion, detalle.Precio, detalle.Cantidad, detalle.Subtotal,
	).Scan(&created.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, domain.ErrPedidoNotFound
		}
		return nil, fmt.Errorf("repository: failed to add detalle to pedido %d: %w", idPedido, err)
	}

	return &created, nil
}

func (r *PedidoRepository) UpdateDetalle(ctx context.Context, idDetalle int64, detalle *domain.Detalle) error {
	result, err := r.db.Exec(ctx,
		`UPDATE detalle_pedido
		 SET id_producto = $1, descripcion = $2, precio = $3, cantidad = $4, subtotal_detalle = $5
		 WHERE id_detalle = $6`,
		detalle.IDProducto, detalle.Descripcion, detalle.Precio, detalle.Cantidad, detalle.Subtotal, idDetalle,
	)
	if err != nil {
		return fmt.Errorf("repository: failed to update detalle %d: %w", idDetalle, err)
	}

	if result.RowsAffected() == 0 {
		return domain.ErrDetalleNotFound
	}

	return nil
}

func (r *PedidoRepository) DeleteDetalle(ctx context.Context, idDetalle int64) error {
	result, err := r.db.Exec(ctx,
		`DELETE FROM detalle_pedido WHERE id_detalle = $1`,
		idDetalle,
	)
	if err != nil {
		return fmt.Errorf("repository: failed to delete detalle %d: %w", idDetalle, err)
	}

	if result.RowsAffected() == 0 {
		return domain.ErrDetalleNotFound
	}

	return nil
}

// ReplaceDetalles swaps the full line set of a pedido in one transaction.
func (r *PedidoRepository) ReplaceDetalles(ctx context.Context, idPedido int64, detalles []domain.Detalle) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("repository: failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM detalle_pedido WHERE id_pedido = $1`, idPedido); err != nil {
		return fmt.Errorf("repository: failed to clear detalles of pedido %d: %w", idPedido, err)
	}

	if err := copyDetalles(ctx, tx, "detalle_pedido", "id_pedido", idPedido, detalles); err != nil {
		return fmt.Errorf("repository: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("repository: failed to commit detalle replace: %w", err)
	}

	return nil
}
