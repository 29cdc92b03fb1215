package postgres

import (
	"context"
	"testing"

	"github.com/facturapp/facturacion-api/internal/domain"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetodoPagoRepository_ToggleDisponible(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewMetodoPagoRepository(mock)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec(`UPDATE metodos_pago SET disponible = NOT disponible`).
			WithArgs(int64(1)).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		assert.NoError(t, repo.ToggleDisponible(ctx, 1))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Not found", func(t *testing.T) {
		mock.ExpectExec(`UPDATE metodos_pago SET disponible = NOT disponible`).
			WithArgs(int64(99)).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		assert.ErrorIs(t, repo.ToggleDisponible(ctx, 99), domain.ErrMetodoPagoNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestMetodoPagoRepository_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewMetodoPagoRepository(mock)
	ctx := context.Background()

	metodo := &domain.MetodoPago{Tipo: domain.PagoTarjeta, Disponible: true}

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery(`INSERT INTO metodos_pago`).
			WithArgs(metodo.Tipo, metodo.Disponible).
			WillReturnRows(pgxmock.NewRows([]string{"id_pago"}).AddRow(int64(2)))

		created, err := repo.Create(ctx, metodo)
		require.NoError(t, err)
		assert.Equal(t, int64(2), created.ID)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Tipo already exists", func(t *testing.T) {
		mock.ExpectQuery(`INSERT INTO metodos_pago`).
			WithArgs(metodo.Tipo, metodo.Disponible).
			WillReturnError(&pgconn.PgError{Code: "23505"})

		created, err := repo.Create(ctx, metodo)
		assert.ErrorIs(t, err, domain.ErrMetodoPagoExists)
		assert.Nil(t, created)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestMetodoPagoRepository_EnsureDefaults(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewMetodoPagoRepository(mock)
	ctx := context.Background()

	for _, tipo := range domain.TiposPagoValidos {
		mock.ExpectExec(`INSERT INTO metodos_pago`).
			WithArgs(tipo).
			WillReturnResult(pgxmock.NewResult("INSERT", 0))
	}

	assert.NoError(t, repo.EnsureDefaults(ctx))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMetodoPagoRepository_Delete(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewMetodoPagoRepository(mock)
	ctx := context.Background()

	t.Run("Referenced by facturas", func(t *testing.T) {
		mock.ExpectExec(`DELETE FROM metodos_pago`).
			WithArgs(int64(1)).
			WillReturnError(&pgconn.PgError{Code: "23503"})

		assert.ErrorIs(t, repo.Delete(ctx, 1), domain.ErrHasReferences)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec(`DELETE FROM metodos_pago`).
			WithArgs(int64(2)).
			WillReturnResult(pgxmock.NewResult("DELETE", 1))

		assert.NoError(t, repo.Delete(ctx, 2))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
