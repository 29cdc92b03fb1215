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

var usuarioColumnNames = []string{
	"id_usuario", "usuario", "contrasena_hash", "nombre", "apellido", "rol", "estado_usuario",
}

func TestUsuarioRepository_GetByUsuario(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewUsuarioRepository(mock)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		rows := pgxmock.NewRows(usuarioColumnNames).
			AddRow(int64(2), "jperez", "$2a$10$hash", "Juan", "Perez",
				domain.RolFacturacion, domain.EstadoActivo)

		mock.ExpectQuery(`SELECT (.+) FROM usuarios WHERE usuario`).
			WithArgs("jperez").
			WillReturnRows(rows)

		usuario, err := repo.GetByUsuario(ctx, "jperez")
		require.NoError(t, err)
		assert.Equal(t, int64(2), usuario.ID)
		assert.Equal(t, "$2a$10$hash", usuario.Hash)
		assert.Equal(t, domain.RolFacturacion, usuario.Rol)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Not found", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM usuarios WHERE usuario`).
			WithArgs("nadie").
			WillReturnRows(pgxmock.NewRows(usuarioColumnNames))

		usuario, err := repo.GetByUsuario(ctx, "nadie")
		assert.ErrorIs(t, err, domain.ErrUsuarioNotFound)
		assert.Nil(t, usuario)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUsuarioRepository_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewUsuarioRepository(mock)
	ctx := context.Background()

	usuario := &domain.Usuario{
		Usuario:  "jperez",
		Hash:     "$2a$10$hash",
		Nombre:   "Juan",
		Apellido: "Perez",
		Rol:      domain.RolFacturacion,
	}

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery(`INSERT INTO usuarios`).
			WithArgs(usuario.Usuario, usuario.Hash, usuario.Nombre, usuario.Apellido,
				usuario.Rol, domain.EstadoActivo).
			WillReturnRows(pgxmock.NewRows([]string{"id_usuario"}).AddRow(int64(2)))

		created, err := repo.Create(ctx, usuario)
		require.NoError(t, err)
		assert.Equal(t, int64(2), created.ID)
		assert.Equal(t, domain.EstadoActivo, created.Estado)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Usuario already exists", func(t *testing.T) {
		mock.ExpectQuery(`INSERT INTO usuarios`).
			WithArgs(usuario.Usuario, usuario.Hash, usuario.Nombre, usuario.Apellido,
				usuario.Rol, domain.EstadoActivo).
			WillReturnError(&pgconn.PgError{Code: "23505"})

		created, err := repo.Create(ctx, usuario)
		assert.ErrorIs(t, err, domain.ErrUsuarioExists)
		assert.Nil(t, created)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
