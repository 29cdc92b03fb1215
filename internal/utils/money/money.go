// Package money centralizes the 2-decimal money arithmetic of the billing
// flow so that line subtotals and tax never drift from float rounding.
package money

import "github.com/shopspring/decimal"

// TasaIVA is the flat tax rate applied to invoice subtotals.
const TasaIVA = "0.15"

var tasaIVA = decimal.RequireFromString(TasaIVA)

// Round2 rounds to 2 decimal places, half away from zero.
func Round2(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}

// SubtotalLinea computes precio × cantidad rounded to 2 decimals. Line
// subtotals are always recomputed server-side, never trusted from the caller.
func SubtotalLinea(precio float64, cantidad int) float64 {
	sub := decimal.NewFromFloat(precio).Mul(decimal.NewFromInt(int64(cantidad)))
	f, _ := sub.Round(2).Float64()
	return f
}

// IVA computes the tax over a subtotal, rounded to 2 decimals.
func IVA(subtotal float64) float64 {
	f, _ := decimal.NewFromFloat(subtotal).Mul(tasaIVA).Round(2).Float64()
	return f
}

// Sum adds amounts exactly and rounds the result to 2 decimals.
func Sum(valores ...float64) float64 {
	total := decimal.Zero
	for _, v := range valores {
		total = total.Add(decimal.NewFromFloat(v))
	}
	f, _ := total.Round(2).Float64()
	return f
}
