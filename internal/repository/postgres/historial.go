package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/facturapp/facturacion-api/internal/domain"
	"github.com/jackc/pgx/v5"
)

// HistorialRepository implements domain.HistorialRepository.
type HistorialRepository struct {
	db DBTX
}

func NewHistorialRepository(db DBTX) *HistorialRepository {
	return &HistorialRepository{db: db}
}

const historialColumns = `h.id_historial, h.id_factura, h.id_usuario, h.estado_anterior,
	h.estado_nuevo, h.fecha_cambio, h.motivo, u.usuario, u.nombre, u.apellido`

const historialFrom = ` FROM historial_facturas h JOIN usuarios u ON u.id_usuario = h.id_usuario `

func scanHistorial(row pgx.Row) (*domain.HistorialFactura, error) {
	h := &domain.HistorialFactura{}
	err := row.Scan(&h.ID, &h.IDFactura, &h.IDUsuario, &h.EstadoAnterior,
		&h.EstadoNuevo, &h.FechaCambio, &h.Motivo,
		&h.Usuario, &h.NombreUsuario, &h.ApellidoUsuario)
	if err != nil {
		return nil, err
	}
	return h, nil
}

func (r *HistorialRepository) collect(rows pgx.Rows, queryErr error, op string) ([]*domain.HistorialFactura, error) {
	if queryErr != nil {
		return nil, fmt.Errorf("repository: failed to %s: %w", op, queryErr)
	}
	defer rows.Close()

	var entradas []*domain.HistorialFactura
	for rows.Next() {
		h, err := scanHistorial(rows)
		if err != nil {
			return nil, fmt.Errorf("repository: failed to scan historial: %w", err)
		}
		entradas = append(entradas, h)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating historial: %w", err)
	}

	return entradas, nil
}

func (r *HistorialRepository) List(ctx context.Context) ([]*domain.HistorialFactura, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+historialColumns+historialFrom+`ORDER BY h.fecha_cambio DESC, h.id_historial DESC`,
	)
	return r.collect(rows, err, "list historial")
}

func (r *HistorialRepository) GetByID(ctx context.Context, id int64) (*domain.HistorialFactura, error) {
	h, err := scanHistorial(r.db.QueryRow(ctx,
		`SELECT `+historialColumns+historialFrom+`WHERE h.id_historial = $1`,
		id,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrHistorialNotFound
		}
		return nil, fmt.Errorf("repository: failed to get historial %d: %w", id, err)
	}

	return h, nil
}

func (r *HistorialRepository) GetByFactura(ctx context.Context, idFactura int64) ([]*domain.HistorialFactura, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+historialColumns+historialFrom+`WHERE h.id_factura = $1 ORDER BY h.fecha_cambio DESC, h.id_historial DESC`,
		idFactura,
	)
	return r.collect(rows, err, "get historial by factura")
}

func (r *HistorialRepository) GetByUsuario(ctx context.Context, idUsuario int64) ([]*domain.HistorialFactura, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+historialColumns+historialFrom+`WHERE h.id_usuario = $1 ORDER BY h.fecha_cambio DESC, h.id_historial DESC`,
		idUsuario,
	)
	return r.collect(rows, err, "get historial by usuario")
}

// GetByFechas returns the entries whose change date falls inside the closed
// day range [inicio, fin].
func (r *HistorialRepository) GetByFechas(ctx context.Context, inicio, fin domain.Date) ([]*domain.HistorialFactura, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+historialColumns+historialFrom+`
		 WHERE h.fecha_cambio >= $1::date AND h.fecha_cambio < ($2::date + INTERVAL '1 day')
		 ORDER BY h.fecha_cambio DESC, h.id_historial DESC`,
		inicio, fin,
	)
	return r.collect(rows, err, "get historial by fechas")
}

func (r *HistorialRepository) Create(ctx context.Context, entrada *domain.HistorialFactura) (*domain.HistorialFactura, error) {
	created := *entrada

	err := r.db.QueryRow(ctx,
		`INSERT INTO historial_facturas (id_factura, id_usuario, estado_anterior, estado_nuevo, motivo)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id_historial, fecha_cambio`,
		entrada.IDFactura, entrada.IDUsuario, entrada.EstadoAnterior, entrada.EstadoNuevo, entrada.Motivo,
	).Scan(&created.ID, &created.FechaCambio)
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, domain.ErrFacturaNotFound
		}
		return nil, fmt.Errorf("repository: failed to create historial for factura %d: %w", entrada.IDFactura, err)
	}

	return &created, nil
}

func (r *HistorialRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx,
		`DELETE FROM historial_facturas WHERE id_historial = $1`,
		id,
	)
	if err != nil {
		return fmt.Errorf("repository: failed to delete historial %d: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return domain.ErrHistorialNotFound
	}

	return nil
}

func (r *HistorialRepository) DeleteByFactura(ctx context.Context, idFactura int64) (int64, error) {
	result, err := r.db.Exec(ctx,
		`DELETE FROM historial_facturas WHERE id_factura = $1`,
		idFactura,
	)
	if err != nil {
		return 0, fmt.Errorf("repository: failed to delete historial of factura %d: %w", idFactura, err)
	}

	return result.RowsAffected(), nil
}

func (r *HistorialRepository) DeleteByUsuario(ctx context.Context, idUsuario int64) (int64, error) {
	result, err := r.db.Exec(ctx,
		`DELETE FROM historial_facturas WHERE id_usuario = $1`,
		idUsuario,
	)
	if err != nil {
		return 0, fmt.Errorf("repository: failed to delete historial of usuario %d: %w", idUsuario, err)
	}

	return result.RowsAffected(), nil
}
