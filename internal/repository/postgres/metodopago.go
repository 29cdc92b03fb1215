package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/facturapp/facturacion-api/internal/domain"
	"github.com/jackc/pgx/v5"
)

// MetodoPagoRepository implements domain.MetodoPagoRepository.
type MetodoPagoRepository struct {
	db DBTX
}

func NewMetodoPagoRepository(db DBTX) *MetodoPagoRepository {
	return &MetodoPagoRepository{db: db}
}

func (r *MetodoPagoRepository) collect(rows pgx.Rows, queryErr error, op string) ([]*domain.MetodoPago, error) {
	if queryErr != nil {
		return nil, fmt.Errorf("repository: failed to %s: %w", op, queryErr)
	}
	defer rows.Close()

	var metodos []*domain.MetodoPago
	for rows.Next() {
		m := &domain.MetodoPago{}
		if err := rows.Scan(&m.ID, &m.Tipo, &m.Disponible); err != nil {
			return nil, fmt.Errorf("repository: failed to scan metodo de pago: %w", err)
		}
		metodos = append(metodos, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating metodos de pago: %w", err)
	}

	return metodos, nil
}

func (r *MetodoPagoRepository) List(ctx context.Context) ([]*domain.MetodoPago, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id_pago, tipo_pago, disponible FROM metodos_pago ORDER BY id_pago ASC`,
	)
	return r.collect(rows, err, "list metodos de pago")
}

func (r *MetodoPagoRepository) ListDisponibles(ctx context.Context) ([]*domain.MetodoPago, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id_pago, tipo_pago, disponible FROM metodos_pago WHERE disponible ORDER BY id_pago ASC`,
	)
	return r.collect(rows, err, "list metodos de pago disponibles")
}

func (r *MetodoPagoRepository) GetByID(ctx context.Context, id int64) (*domain.MetodoPago, error) {
	m := &domain.MetodoPago{}
	err := r.db.QueryRow(ctx,
		`SELECT id_pago, tipo_pago, disponible FROM metodos_pago WHERE id_pago = $1`,
		id,
	).Scan(&m.ID, &m.Tipo, &m.Disponible)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrMetodoPagoNotFound
		}
		return nil, fmt.Errorf("repository: failed to get metodo de pago %d: %w", id, err)
	}

	return m, nil
}

func (r *MetodoPagoRepository) GetByTipo(ctx context.Context, tipo domain.TipoPago) (*domain.MetodoPago, error) {
	m := &domain.MetodoPago{}
	err := r.db.QueryRow(ctx,
		`SELECT id_pago, tipo_pago, disponible FROM metodos_pago WHERE tipo_pago = $1`,
		tipo,
	).Scan(&m.ID, &m.Tipo, &m.Disponible)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrMetodoPagoNotFound
		}
		return nil, fmt.Errorf("repository: failed to get metodo de pago %q: %w", tipo, err)
	}

	return m, nil
}

func (r *MetodoPagoRepository) ExistsByTipo(ctx context.Context, tipo domain.TipoPago) (bool, error) {
	var total int64
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM metodos_pago WHERE tipo_pago = $1`,
		tipo,
	).Scan(&total)
	if err != nil {
		return false, fmt.Errorf("repository: failed to check metodo de pago %q: %w", tipo, err)
	}

	return total > 0, nil
}

func (r *MetodoPagoRepository) Create(ctx context.Context, metodo *domain.MetodoPago) (*domain.MetodoPago, error) {
	created := *metodo

	err := r.db.QueryRow(ctx,
		`INSERT INTO metodos_pago (tipo_pago, disponible) VALUES ($1, $2) RETURNING id_pago`,
		metodo.Tipo, metodo.Disponible,
	).Scan(&created.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrMetodoPagoExists
		}
		return nil, fmt.Errorf("repository: failed to create metodo de pago %q: %w", metodo.Tipo, err)
	}

	return &created, nil
}

func (r *MetodoPagoRepository) Update(ctx context.Context, id int64, metodo *domain.MetodoPago) error {
	result, err := r.db.Exec(ctx,
		`UPDATE metodos_pago SET tipo_pago = $1, disponible = $2 WHERE id_pago = $3`,
		metodo.Tipo, metodo.Disponible, id,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrMetodoPagoExists
		}
		return fmt.Errorf("repository: failed to update metodo de pago %d: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return domain.ErrMetodoPagoNotFound
	}

	return nil
}

// ToggleDisponible flips availability in place; two toggles restore the
// original value.
func (r *MetodoPagoRepository) ToggleDisponible(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx,
		`UPDATE metodos_pago SET disponible = NOT disponible WHERE id_pago = $1`,
		id,
	)
	if err != nil {
		return fmt.Errorf("repository: failed to toggle metodo de pago %d: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return domain.ErrMetodoPagoNotFound
	}

	return nil
}

func (r *MetodoPagoRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx,
		`DELETE FROM metodos_pago WHERE id_pago = $1`,
		id,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrHasReferences
		}
		return fmt.Errorf("repository: failed to delete metodo de pago %d: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return domain.ErrMetodoPagoNotFound
	}

	return nil
}

// EnsureDefaults seeds the standard payment kinds. ON CONFLICT keeps the
// operation idempotent across restarts.
func (r *MetodoPagoRepository) EnsureDefaults(ctx context.Context) error {
	for _, tipo := range domain.TiposPagoValidos {
		_, err := r.db.Exec(ctx,
			`INSERT INTO metodos_pago (tipo_pago, disponible)
			 VALUES ($1, TRUE)
			 ON CONFLICT (tipo_pago) DO NOTHING`,
			tipo,
		)
		if err != nil {
			return fmt.Errorf("repository: failed to seed metodo de pago %q: %w", tipo, err)
		}
	}

	return nil
}
