package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/facturapp/facturacion-api/internal/domain"
	"github.com/jackc/pgx/v5"
)

// FacturaRepository implements domain.FacturaRepository.
type FacturaRepository struct {
	db DBTX
}

func NewFacturaRepository(db DBTX) *FacturaRepository {
	return &FacturaRepository{db: db}
}

const facturaColumns = `f.id_factura, f.id_cliente, f.id_pago, f.id_pedido, f.fecha_factura,
	f.subtotal_factura, f.valor_iva, f.total_factura, f.estado_factura,
	c.cedula, c.nombre, c.apellido, m.tipo_pago, p.estado_pedido`

const facturaFrom = ` FROM facturas f
	JOIN clientes c ON c.id_cliente = f.id_cliente
	JOIN metodos_pago m ON m.id_pago = f.id_pago
	JOIN pedidos p ON p.id_pedido = f.id_pedido `

func scanFactura(row pgx.Row) (*domain.Factura, error) {
	f := &domain.Factura{}
	err := row.Scan(&f.ID, &f.IDCliente, &f.IDPago, &f.IDPedido, &f.Fecha,
		&f.Subtotal, &f.ValorIVA, &f.Total, &f.Estado,
		&f.Cedula, &f.NombreCliente, &f.ApellidoCliente, &f.TipoPago, &f.EstadoPedido)
	if err != nil {
		return nil, err
	}
	return f, nil
}

func (r *FacturaRepository) collect(rows pgx.Rows, queryErr error, op string) ([]*domain.Factura, error) {
	if queryErr != nil {
		return nil, fmt.Errorf("repository: failed to %s: %w", op, queryErr)
	}
	defer rows.Close()

	var facturas []*domain.Factura
	for rows.Next() {
		f, err := scanFactura(rows)
		if err != nil {
			return nil, fmt.Errorf("repository: failed to scan factura: %w", err)
		}
		facturas = append(facturas, f)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating facturas: %w", err)
	}

	return facturas, nil
}

func (r *FacturaRepository) List(ctx context.Context) ([]*domain.Factura, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+facturaColumns+facturaFrom+`ORDER BY f.id_factura DESC`,
	)
	return r.collect(rows, err, "list facturas")
}

func (r *FacturaRepository) GetByID(ctx context.Context, id int64) (*domain.Factura, error) {
	f, err := scanFactura(r.db.QueryRow(ctx,
		`SELECT `+facturaColumns+facturaFrom+`WHERE f.id_factura = $1`,
		id,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrFacturaNotFound
		}
		return nil, fmt.Errorf("repository: failed to get factura %d: %w", id, err)
	}

	return f, nil
}

func (r *FacturaRepository) GetByCliente(ctx context.Context, idCliente int64) ([]*domain.Factura, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+facturaColumns+facturaFrom+`WHERE f.id_cliente = $1 ORDER BY f.id_factura DESC`,
		idCliente,
	)
	return r.collect(rows, err, "get facturas by cliente")
}

func (r *FacturaRepository) GetByClienteCedula(ctx context.Context, cedula string) ([]*domain.Factura, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+facturaColumns+facturaFrom+`WHERE c.cedula = $1 ORDER BY f.id_factura DESC`,
		cedula,
	)
	return r.collect(rows, err, "get facturas by cedula")
}

func (r *FacturaRepository) GetByEstado(ctx context.Context, estado domain.EstadoFactura) ([]*domain.Factura, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+facturaColumns+facturaFrom+`WHERE f.estado_factura = $1 ORDER BY f.id_factura DESC`,
		estado,
	)
	return r.collect(rows, err, "get facturas by estado")
}

// NextID previews the id the next factura would take. Advisory only, it is
// not reserved.
func (r *FacturaRepository) NextID(ctx context.Context) (int64, error) {
	var next int64
	err := r.db.QueryRow(ctx,
		`SELECT COALESCE(MAX(id_factura), 0) + 1 FROM facturas`,
	).Scan(&next)
	if err != nil {
		return 0, fmt.Errorf("repository: failed to get next factura id: %w", err)
	}

	return next, nil
}

// CreateWithDetalles inserts the factura with its lines and marks the source
// pedido FACTURADO, all in one transaction.
func (r *FacturaRepository) CreateWithDetalles(ctx context.Context, factura *domain.Factura, detalles []domain.Detalle) (*domain.Factura, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	created, err := insertFactura(ctx, tx, factura, detalles)
	if err != nil {
		return nil, err
	}

	if _, err := tx.Exec(ctx,
		`UPDATE pedidos SET estado_pedido = $1 WHERE id_pedido = $2`,
		domain.PedidoFacturado, factura.IDPedido,
	); err != nil {
		return nil, fmt.Errorf("repository: failed to mark pedido %d facturado: %w", factura.IDPedido, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("repository: failed to commit factura: %w", err)
	}

	return created, nil
}

// EmitirConPedido creates the pedido, its lines, the factura and its lines,
// then marks the pedido FACTURADO. Everything runs in a single transaction so
// emission either lands whole or not at all.
func (r *FacturaRepository) EmitirConPedido(ctx context.Context, pedido *domain.Pedido, detallesPedido []domain.Detalle, factura *domain.Factura, detallesFactura []domain.Detalle) (*domain.Factura, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var idPedido int64
	err = tx.QueryRow(ctx,
		`INSERT INTO pedidos (id_cliente, fecha_pedido, fecha_entrega, subtotal_pedido, valor_descuento, total_pedido, estado_pedido)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id_pedido`,
		pedido.IDCliente, pedido.FechaPedido, pedido.FechaEntrega,
		pedido.Subtotal, pedido.ValorDescuento, pedido.Total, domain.PedidoConfirmado,
	).Scan(&idPedido)
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, domain.ErrClienteNotFound
		}
		return nil, fmt.Errorf("repository: failed to create pedido for factura: %w", err)
	}

	if err := copyDetalles(ctx, tx, "detalle_pedido", "id_pedido", idPedido, detallesPedido); err != nil {
		return nil, fmt.Errorf("repository: %w", err)
	}

	header := *factura
	header.IDPedido = idPedido

	created, err := insertFactura(ctx, tx, &header, detallesFactura)
	if err != nil {
		return nil, err
	}

	if _, err := tx.Exec(ctx,
		`UPDATE pedidos SET estado_pedido = $1 WHERE id_pedido = $2`,
		domain.PedidoFacturado, idPedido,
	); err != nil {
		return nil, fmt.Errorf("repository: failed to mark pedido %d facturado: %w", idPedido, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("repository: failed to commit factura emission: %w", err)
	}

	return created, nil
}

func insertFactura(ctx context.Context, tx pgx.Tx, factura *domain.Factura, detalles []domain.Detalle) (*domain.Factura, error) {
	created := *factura

	err := tx.QueryRow(ctx,
		`INSERT INTO facturas (id_cliente, id_pago, id_pedido, fecha_factura, subtotal_factura, valor_iva, total_factura, estado_factura)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id_factura`,
		factura.IDCliente, factura.IDPago, factura.IDPedido, factura.Fecha,
		factura.Subtotal, factura.ValorIVA, factura.Total, factura.Estado,
	).Scan(&created.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, domain.ErrPedidoNotFound
		}
		return nil, fmt.Errorf("repository: failed to create factura: %w", err)
	}

	if err := copyDetalles(ctx, tx, "detalle_factura", "id_factura", created.ID, detalles); err != nil {
		return nil, fmt.Errorf("repository: %w", err)
	}

	return &created, nil
}

func (r *FacturaRepository) Update(ctx context.Context, id int64, factura *domain.Factura) error {
	result, err := r.db.Exec(ctx,
		`UPDATE facturas
		 SET id_cliente = $1, id_pago = $2, id_pedido = $3, fecha_factura = $4,
		     subtotal_factura = $5, valor_iva = $6, total_factura = $7, estado_factura = $8
		 WHERE id_factura = $9`,
		factura.IDCliente, factura.IDPago, factura.IDPedido, factura.Fecha,
		factura.Subtotal, factura.ValorIVA, factura.Total, factura.Estado, id,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrPedidoNotFound
		}
		return fmt.Errorf("repository: failed to update factura %d: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return domain.ErrFacturaNotFound
	}

	return nil
}

func (r *FacturaRepository) UpdateEstado(ctx context.Context, id int64, estado domain.EstadoFactura) error {
	result, err := r.db.Exec(ctx,
		`UPDATE facturas SET estado_factura = $1 WHERE id_factura = $2`,
		estado, id,
	)
	if err != nil {
		return fmt.Errorf("repository: failed to update estado of factura %d: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return domain.ErrFacturaNotFound
	}

	return nil
}

// Delete removes the factura together with its historial entries and lines in
// one transaction.
func (r *FacturaRepository) Delete(ctx context.Context, id int64) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("repository: failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM historial_facturas WHERE id_factura = $1`, id); err != nil {
		return fmt.Errorf("repository: failed to delete historial of factura %d: %w", id, err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM detalle_factura WHERE id_factura = $1`, id); err != nil {
		return fmt.Errorf("repository: failed to delete detalles of factura %d: %w", id, err)
	}

	result, err := tx.Exec(ctx, `DELETE FROM facturas WHERE id_factura = $1`, id)
	if err != nil {
		return fmt.Errorf("repository: failed to delete factura %d: %w", id, err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrFacturaNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("repository: failed to commit factura delete: %w", err)
	}

	return nil
}

func (r *FacturaRepository) GetDetalles(ctx context.Context, idFactura int64) ([]*domain.Detalle, error) {
	rows, err := r.db.Query(ctx,
		`SELECT d.id_detalle, d.id_producto, d.descripcion, d.precio, d.cantidad, d.subtotal_detalle,
		        pr.nombre, pr.categoria
		 FROM detalle_factura d
		 JOIN productos pr ON pr.id_producto = d.id_producto
		 WHERE d.id_factura = $1
		 ORDER BY d.id_detalle ASC`,
		idFactura,
	)
	return collectDetalles(rows, err, "get detalles of factura")
}

func (r *FacturaRepository) AddDetalle(ctx context.Context, idFactura int64, detalle *domain.Detalle) (*domain.Detalle, error) {
	created := *detalle

	err := r.db.QueryRow(ctx,
		`INSERT INTO detalle_factura (id_producto, id_factura, descripcion, precio, cantidad, subtotal_detalle)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id_detalle`,
		detalle.IDProducto, idFactura, detalle.Descripcion, detalle.Precio, detalle.Cantidad, detalle.Subtotal,
	).Scan(&created.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, domain.ErrFacturaNotFound
		}
		return nil, fmt.Errorf("repository: failed to add detalle to factura %d: %w", idFactura, err)
	}

	return &created, nil
}

func (r *FacturaRepository) UpdateDetalle(ctx context.Context, idDetalle int64, detalle *domain.Detalle) error {
	result, err := r.db.Exec(ctx,
		`UPDATE detalle_factura
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

func (r *FacturaRepository) DeleteDetalle(ctx context.Context, idDetalle int64) error {
	result, err := r.db.Exec(ctx,
		`DELETE FROM detalle_factura WHERE id_detalle = $1`,
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

// ReplaceDetalles swaps the full line set of a factura in one transaction.
func (r *FacturaRepository) ReplaceDetalles(ctx context.Context, idFactura int64, detalles []domain.Detalle) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("repository: failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM detalle_factura WHERE id_factura = $1`, idFactura); err != nil {
		return fmt.Errorf("repository: failed to clear detalles of factura %d: %w", idFactura, err)
	}

	if err := copyDetalles(ctx, tx, "detalle_factura", "id_factura", idFactura, detalles); err != nil {
		return fmt.Errorf("repository: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("repository: failed to commit detalle replace: %w", err)
	}

	return nil
}
