package postgres

import (
	"context"
	"fmt"

	"github.com/facturapp/facturacion-api/internal/domain"
	"github.com/jackc/pgx/v5"
)

// copyDetalles bulk-inserts the detalle lines of a pedido or factura inside
// the caller's transaction, as a single COPY so partial line sets cannot be
// left behind.
func copyDetalles(ctx context.Context, tx pgx.Tx, table, parentColumn string, parentID int64, detalles []domain.Detalle) error {
	rows := make([][]any, 0, len(detalles))
	for _, d := range detalles {
		rows = append(rows, []any{d.IDProducto, parentID, d.Descripcion, d.Precio, d.Cantidad, d.Subtotal})
	}

	copied, err := tx.CopyFrom(ctx,
		pgx.Identifier{table},
		[]string{"id_producto", parentColumn, "descripcion", "precio", "cantidad", "subtotal_detalle"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return fmt.Errorf("failed to copy detalles into %s: %w", table, err)
	}
	if copied != int64(len(detalles)) {
		return fmt.Errorf("copied %d of %d detalles into %s", copied, len(detalles), table)
	}

	return nil
}

// collectDetalles drains a detalle query joined with producto data.
func collectDetalles(rows pgx.Rows, queryErr error, op string) ([]*domain.Detalle, error) {
	if queryErr != nil {
		return nil, fmt.Errorf("repository: failed to %s: %w", op, queryErr)
	}
	defer rows.Close()

	var detalles []*domain.Detalle
	for rows.Next() {
		d := &domain.Detalle{}
		err := rows.Scan(&d.ID, &d.IDProducto, &d.Descripcion, &d.Precio, &d.Cantidad, &d.Subtotal, &d.NombreProducto, &d.Categoria)
		if err != nil {
			return nil, fmt.Errorf("repository: failed to scan detalle: %w", err)
		}
		detalles = append(detalles, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating detalles: %w", err)
	}

	return detalles, nil
}
