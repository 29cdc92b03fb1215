package service

import (
	"context"
	"testing"

	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/facturapp/facturacion-api/internal/domain"
	"github.com/facturapp/facturacion-api/internal/repository/postgres"
)

func newClienteService(t *testing.T) (*ClienteService, pgxmock.PgxPoolIface) {
	t.Helper()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	return NewClienteService(postgres.NewClienteRepository(mock)), mock
}

func TestClienteService_Create(t *testing.T) {
	ctx := context.Background()

	nuevo := func() *domain.Cliente {
		return &domain.Cliente{
			Cedula:          "1710034065",
			Nombre:          "Ana",
			Apellido:        "Diaz",
			Telefono:        "0991234567",
			Direccion:       "Av. Amazonas",
			FechaNacimiento: domain.NewDate(1990, 1, 1),
		}
	}

	t.Run("Success defaults correo", func(t *testing.T) {
		svc, mock := newClienteService(t)

		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM clientes WHERE cedula`).
			WithArgs("1710034065").
			WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(0)))
		mock.ExpectQuery(`INSERT INTO clientes`).
			WithArgs("1710034065", "Ana", "Diaz", "0991234567",
				correoPorDefecto, "Av. Amazonas", domain.NewDate(1990, 1, 1), domain.EstadoActivo).
			WillReturnRows(pgxmock.NewRows([]string{"id_cliente"}).AddRow(int64(4)))

		created, err := svc.Create(ctx, nuevo())
		require.NoError(t, err)
		assert.Equal(t, int64(4), created.ID)
		assert.Equal(t, correoPorDefecto, created.Correo)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Duplicate cedula", func(t *testing.T) {
		svc, mock := newClienteService(t)

		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM clientes WHERE cedula`).
			WithArgs("1710034065").
			WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(1)))

		created, err := svc.Create(ctx, nuevo())
		assert.ErrorIs(t, err, domain.ErrClienteExists)
		assert.Nil(t, created)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Malformed cedula", func(t *testing.T) {
		svc, mock := newClienteService(t)

		c := nuevo()
		c.Cedula = "12AB"

		created, err := svc.Create(ctx, c)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
		assert.Nil(t, created)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Missing required fields", func(t *testing.T) {
		svc, mock := newClienteService(t)

		c := nuevo()
		c.Nombre = ""

		created, err := svc.Create(ctx, c)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
		assert.Nil(t, created)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
