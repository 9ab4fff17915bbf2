package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale representa una venta. Total siempre es igual a la suma de los
// subtotales de sus ítems; la fecha se fija al crear y no cambia.
type Sale struct {
	ID        string
	SKU       string // código único, ej. VENT-67890
	ClientID  string
	Date      time.Time
	Total     decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SaleItem es una línea de venta. Subtotal es derivado (cantidad * precio
// unitario) y se recalcula en cada guardado; nunca existe sin su venta.
type SaleItem struct {
	ID        string
	SaleID    string
	ProductID string
	Quantity  int
	UnitPrice decimal.Decimal
	Subtotal  decimal.Decimal
}

// Subtotal calcula cantidad * precio unitario redondeado a 2 decimales.
// Función pura, separada de la persistencia.
func Subtotal(quantity int, unitPrice decimal.Decimal) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity))).Round(2)
}

// SaleTotal suma los subtotales de los ítems, a 2 decimales.
func SaleTotal(items []*SaleItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Subtotal)
	}
	return total.Round(2)
}

// SalesByDay agrega el total vendido por fecha (reporte de ventas diarias).
type SalesByDay struct {
	Date  time.Time
	Total decimal.Decimal
}
