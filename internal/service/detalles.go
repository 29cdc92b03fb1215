package service

import (
	"github.com/facturapp/facturacion-api/internal/domain"
	"github.com/facturapp/facturacion-api/internal/utils/money"
)

// normalizeDetalles validates line items and recomputes every line subtotal
// as precio x cantidad. Caller-supplied line subtotals are never trusted.
func normalizeDetalles(detalles []domain.Detalle) ([]domain.Detalle, error) {
	if len(detalles) == 0 {
		return nil, domain.ErrSinDetalles
	}

	out := make([]domain.Detalle, len(detalles))
	for i, d := range detalles {
		if d.IDProducto <= 0 || d.Descripcion == "" || d.Precio < 0 || d.Cantidad <= 0 {
			return nil, domain.ErrInvalidInput
		}
		d.Subtotal = money.SubtotalLinea(d.Precio, d.Cantidad)
		out[i] = d
	}

	return out, nil
}

func validateDetalle(d *domain.Detalle) error {
	if d.IDProducto <= 0 || d.Descripcion == "" || d.Precio < 0 || d.Cantidad <= 0 {
		return domain.ErrInvalidInput
	}
	d.Subtotal = money.SubtotalLinea(d.Precio, d.Cantidad)
	return nil
}

func sumDetalles(detalles []domain.Detalle) float64 {
	subtotales := make([]float64, len(detalles))
	for i, d := range detalles {
		subtotales[i] = d.Subtotal
	}
	return money.Sum(subtotales...)
}
