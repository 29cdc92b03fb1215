package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/facturapp/facturacion-api/internal/domain"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistorialRepository_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewHistorialRepository(mock)
	ctx := context.Background()

	motivo := "Pago rechazado por el banco"
	entrada := &domain.HistorialFactura{
		IDFactura:      7,
		IDUsuario:      2,
		EstadoAnterior: domain.FacturaEmitida,
		EstadoNuevo:    domain.FacturaRechazada,
		Motivo:         &motivo,
	}

	t.Run("Success", func(t *testing.T) {
		cambio := time.Date(2024, 3, 2, 15, 4, 5, 0, time.UTC)

		mock.ExpectQuery(`INSERT INTO historial_facturas`).
			WithArgs(entrada.IDFactura, entrada.IDUsuario, entrada.EstadoAnterior, entrada.EstadoNuevo, entrada.Motivo).
			WillReturnRows(pgxmock.NewRows([]string{"id_historial", "fecha_cambio"}).AddRow(int64(5), cambio))

		created, err := repo.Create(ctx, entrada)
		require.NoError(t, err)
		assert.Equal(t, int64(5), created.ID)
		assert.Equal(t, cambio, created.FechaCambio)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Unknown factura", func(t *testing.T) {
		mock.ExpectQuery(`INSERT INTO historial_facturas`).
			WithArgs(entrada.IDFactura, entrada.IDUsuario, entrada.EstadoAnterior, entrada.EstadoNuevo, entrada.Motivo).
			WillReturnError(&pgconn.PgError{Code: "23503"})

		created, err := repo.Create(ctx, entrada)
		assert.ErrorIs(t, err, domain.ErrFacturaNotFound)
		assert.Nil(t, created)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestHistorialRepository_DeleteByFactura(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewHistorialRepository(mock)
	ctx := context.Background()

	mock.ExpectExec(`DELETE FROM historial_facturas WHERE id_factura`).
		WithArgs(int64(7)).
		WillReturnResult(pgxmock.NewResult("DELETE", 3))

	deleted, err := repo.DeleteByFactura(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, int64(3), deleted)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHistorialRepository_GetByFechas(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewHistorialRepository(mock)
	ctx := context.Background()

	inicio := domain.NewDate(2024, 3, 1)
	fin := domain.NewDate(2024, 3, 31)
	cambio := time.Date(2024, 3, 2, 15, 4, 5, 0, time.UTC)
	var motivo *string

	rows := pgxmock.NewRows([]string{
		"id_historial", "id_factura", "id_usuario", "estado_anterior",
		"estado_nuevo", "fecha_cambio", "motivo", "usuario", "nombre", "apellido",
	}).
		AddRow(int64(5), int64(7), int64(2), domain.FacturaEnProceso,
			domain.FacturaEmitida, cambio, motivo, "jperez", "Juan", "Perez")

	mock.ExpectQuery(`SELECT (.+) FROM historial_facturas h`).
		WithArgs(inicio, fin).
		WillReturnRows(rows)

	entradas, err := repo.GetByFechas(ctx, inicio, fin)
	require.NoError(t, err)
	require.Len(t, entradas, 1)
	assert.Equal(t, domain.FacturaEmitida, entradas[0].EstadoNuevo)
	assert.Nil(t, entradas[0].Motivo)
	assert.Equal(t, "jperez", entradas[0].Usuario)

	assert.NoError(t, mock.ExpectationsWereMet())
}
