package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/facturapp/facturacion-api/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var facturaCopyColumns = []string{"id_producto", "id_factura", "descripcion", "precio", "cantidad", "subtotal_detalle"}

func TestFacturaRepository_NextID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewFacturaRepository(mock)
	ctx := context.Background()

	mock.ExpectQuery(`SELECT COALESCE\(MAX\(id_factura\), 0\) \+ 1 FROM facturas`).
		WillReturnRows(pgxmock.NewRows([]string{"next"}).AddRow(int64(7)))

	next, err := repo.NextID(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(7), next)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFacturaRepository_EmitirConPedido(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewFacturaRepository(mock)
	ctx := context.Background()

	pedido := &domain.Pedido{
		IDCliente:    4,
		FechaPedido:  domain.NewDate(2024, 3, 1),
		FechaEntrega: domain.NewDate(2024, 3, 5),
		Subtotal:     20.00,
		Total:        20.00,
	}
	factura := &domain.Factura{
		IDCliente: 4,
		IDPago:    1,
		Fecha:     domain.NewDate(2024, 3, 1),
		Subtotal:  20.00,
		ValorIVA:  3.00,
		Total:     23.00,
		Estado:    domain.FacturaEmitida,
	}
	detalles := []domain.Detalle{
		{IDProducto: 1, Descripcion: "Teclado", Precio: 10.00, Cantidad: 2, Subtotal: 20.00},
	}

	t.Run("Success", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO pedidos`).
			WithArgs(pedido.IDCliente, pedido.FechaPedido, pedido.FechaEntrega,
				pedido.Subtotal, pedido.ValorDescuento, pedido.Total, domain.PedidoConfirmado).
			WillReturnRows(pgxmock.NewRows([]string{"id_pedido"}).AddRow(int64(21)))
		mock.ExpectCopyFrom(pgx.Identifier{"detalle_pedido"}, detalleCopyColumns).
			WillReturnResult(1)
		mock.ExpectQuery(`INSERT INTO facturas`).
			WithArgs(factura.IDCliente, factura.IDPago, int64(21), factura.Fecha,
				factura.Subtotal, factura.ValorIVA, factura.Total, factura.Estado).
			WillReturnRows(pgxmock.NewRows([]string{"id_factura"}).AddRow(int64(7)))
		mock.ExpectCopyFrom(pgx.Identifier{"detalle_factura"}, facturaCopyColumns).
			WillReturnResult(1)
		mock.ExpectExec(`UPDATE pedidos SET estado_pedido`).
			WithArgs(domain.PedidoFacturado, int64(21)).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))
		mock.ExpectCommit()
		mock.ExpectRollback()

		created, err := repo.EmitirConPedido(ctx, pedido, detalles, factura, detalles)
		require.NoError(t, err)
		assert.Equal(t, int64(7), created.ID)
		assert.Equal(t, int64(21), created.IDPedido)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Factura insert failure rolls everything back", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO pedidos`).
			WithArgs(pedido.IDCliente, pedido.FechaPedido, pedido.FechaEntrega,
				pedido.Subtotal, pedido.ValorDescuento, pedido.Total, domain.PedidoConfirmado).
			WillReturnRows(pgxmock.NewRows([]string{"id_pedido"}).AddRow(int64(22)))
		mock.ExpectCopyFrom(pgx.Identifier{"detalle_pedido"}, detalleCopyColumns).
			WillReturnResult(1)
		mock.ExpectQuery(`INSERT INTO facturas`).
			WithArgs(factura.IDCliente, factura.IDPago, int64(22), factura.Fecha,
				factura.Subtotal, factura.ValorIVA, factura.Total, factura.Estado).
			WillReturnError(errors.New("database error"))
		mock.ExpectRollback()

		created, err := repo.EmitirConPedido(ctx, pedido, detalles, factura, detalles)
		assert.Error(t, err)
		assert.Nil(t, created)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestFacturaRepository_UpdateEstado(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewFacturaRepository(mock)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec(`UPDATE facturas SET estado_factura`).
			WithArgs(domain.FacturaAnulada, int64(7)).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		assert.NoError(t, repo.UpdateEstado(ctx, 7, domain.FacturaAnulada))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Not found", func(t *testing.T) {
		mock.ExpectExec(`UPDATE facturas SET estado_factura`).
			WithArgs(domain.FacturaAnulada, int64(99)).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		assert.ErrorIs(t, repo.UpdateEstado(ctx, 99, domain.FacturaAnulada), domain.ErrFacturaNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestFacturaRepository_Delete(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewFacturaRepository(mock)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM historial_facturas WHERE id_factura`).
		WithArgs(int64(7)).
		WillReturnResult(pgxmock.NewResult("DELETE", 3))
	mock.ExpectExec(`DELETE FROM detalle_factura WHERE id_factura`).
		WithArgs(int64(7)).
		WillReturnResult(pgxmock.NewResult("DELETE", 2))
	mock.ExpectExec(`DELETE FROM facturas WHERE id_factura`).
		WithArgs(int64(7)).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectCommit()
	mock.ExpectRollback()

	assert.NoError(t, repo.Delete(ctx, 7))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFacturaRepository_GetByID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewFacturaRepository(mock)
	ctx := context.Background()

	columns := []string{
		"id_factura", "id_cliente", "id_pago", "id_pedido", "fecha_factura",
		"subtotal_factura", "valor_iva", "total_factura", "estado_factura",
		"cedula", "nombre", "apellido", "tipo_pago", "estado_pedido",
	}

	t.Run("Success", func(t *testing.T) {
		fecha := domain.NewDate(2024, 3, 1)
		rows := pgxmock.NewRows(columns).
			AddRow(int64(7), int64(4), int64(1), int64(21), fecha,
				20.00, 3.00, 23.00, domain.FacturaEmitida,
				"1712345678", "Maria", "Paz", domain.PagoEfectivo, domain.PedidoFacturado)

		mock.ExpectQuery(`SELECT (.+) FROM facturas f`).
			WithArgs(int64(7)).
			WillReturnRows(rows)

		factura, err := repo.GetByID(ctx, 7)
		require.NoError(t, err)
		assert.Equal(t, int64(7), factura.ID)
		assert.Equal(t, domain.FacturaEmitida, factura.Estado)
		assert.Equal(t, domain.PagoEfectivo, factura.TipoPago)
		assert.Equal(t, domain.PedidoFacturado, factura.EstadoPedido)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Not found", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM facturas f`).
			WithArgs(int64(99)).
			WillReturnRows(pgxmock.NewRows(columns))

		factura, err := repo.GetByID(ctx, 99)
		assert.ErrorIs(t, err, domain.ErrFacturaNotFound)
		assert.Nil(t, factura)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
